// Package places knows the city areas that get local routing treatment and
// the preset list of popular Tanzanian destinations.
package places

import (
	"math"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"smartroute/internal/i18n"
	"smartroute/internal/model"
)

type Landmark struct {
	Name     string    `json:"name"`
	Kind     string    `json:"kind"`
	Position orb.Point `json:"position"`
}

// Area is a city whose trips are routed with wider snapping radii and get
// local context in their recommendations.
type Area struct {
	Name      string
	Bound     orb.Bound
	Landmarks []Landmark
}

// Contains is inclusive on every edge.
func (a Area) Contains(l model.Location) bool {
	return l.Lat >= a.Bound.Min[1] && l.Lat <= a.Bound.Max[1] &&
		l.Lng >= a.Bound.Min[0] && l.Lng <= a.Bound.Max[0]
}

// NearestLandmark picks the landmark closest to any vertex of g, or the
// first landmark when g carries no points.
func (a Area) NearestLandmark(g orb.Geometry) (Landmark, bool) {
	if len(a.Landmarks) == 0 {
		return Landmark{}, false
	}
	pts := points(g)
	if len(pts) == 0 {
		return a.Landmarks[0], true
	}
	best, bestD := 0, math.Inf(1)
	for i, lm := range a.Landmarks {
		for _, p := range pts {
			if d := geo.Distance(lm.Position, p); d < bestD {
				best, bestD = i, d
			}
		}
	}
	return a.Landmarks[best], true
}

func points(g orb.Geometry) []orb.Point {
	switch c := g.(type) {
	case orb.Point:
		return []orb.Point{c}
	case orb.LineString:
		return c
	case orb.MultiLineString:
		var out []orb.Point
		for _, l := range c {
			out = append(out, l...)
		}
		return out
	}
	return nil
}

// Category groups popular places in the picker.
type Category string

const (
	City      Category = "city"
	Market    Category = "market"
	Transport Category = "transport"
	Hospital  Category = "hospital"
	Education Category = "education"
	Shopping  Category = "shopping"
)

var categoryLabels = map[Category]i18n.Text{
	City:      {SW: "Miji", EN: "Cities"},
	Market:    {SW: "Masoko", EN: "Markets"},
	Transport: {SW: "Usafiri", EN: "Transport"},
	Hospital:  {SW: "Hospitali", EN: "Hospitals"},
	Education: {SW: "Elimu", EN: "Education"},
	Shopping:  {SW: "Ununuzi", EN: "Shopping"},
}

// Label is the localised group heading for c.
func (c Category) Label(l i18n.Lang) string {
	if t, ok := categoryLabels[c]; ok {
		return t.In(l)
	}
	return string(c)
}

type Place struct {
	Name     i18n.Text
	Category Category
	Lat, Lng float64
}

// Location renders p as a request endpoint named in language l.
func (p Place) Location(l i18n.Lang) model.Location {
	return model.Location{Lat: p.Lat, Lng: p.Lng, Address: p.Name.In(l)}
}

// View is the localised JSON shape of a place.
type View struct {
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	CategoryLabel string   `json:"categoryLabel"`
	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
}

func (p Place) View(l i18n.Lang) View {
	return View{Name: p.Name.In(l), Category: p.Category, CategoryLabel: p.Category.Label(l), Lat: p.Lat, Lng: p.Lng}
}

type Catalog struct {
	areas  []Area
	places []Place
}

// NewCatalog builds a catalog over the given data; Default uses the built-in lists.
func NewCatalog(areas []Area, places []Place) *Catalog {
	return &Catalog{areas: areas, places: places}
}

func Default() *Catalog { return NewCatalog(DefaultAreas(), DefaultPlaces()) }

// AreaFor returns the first area containing both endpoints.
func (c *Catalog) AreaFor(origin, destination model.Location) (Area, bool) {
	if c == nil {
		return Area{}, false
	}
	for _, a := range c.areas {
		if a.Contains(origin) && a.Contains(destination) {
			return a, true
		}
	}
	return Area{}, false
}

func (c *Catalog) Areas() []Area {
	if c == nil {
		return nil
	}
	return append([]Area(nil), c.areas...)
}

// Places lists presets, optionally filtered by category, in catalog order.
func (c *Catalog) Places(category Category) []Place {
	if c == nil {
		return nil
	}
	out := make([]Place, 0, len(c.places))
	for _, p := range c.places {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Search matches query case-insensitively against both names. Prefix
// matches on the name in l come first.
func (c *Catalog) Search(query string, l i18n.Lang) []Place {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Places("")
	}
	type hit struct {
		p    Place
		rank int
	}
	var hits []hit
	for _, p := range c.Places("") {
		own := strings.ToLower(p.Name.In(l))
		other := strings.ToLower(p.Name.SW + " " + p.Name.EN)
		switch {
		case strings.HasPrefix(own, q):
			hits = append(hits, hit{p, 0})
		case strings.Contains(own, q):
			hits = append(hits, hit{p, 1})
		case strings.Contains(other, q):
			hits = append(hits, hit{p, 2})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })
	out := make([]Place, len(hits))
	for i, h := range hits {
		out[i] = h.p
	}
	return out
}
