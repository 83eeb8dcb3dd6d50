package model

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

// Core domain types shared by the engine, the API and the CLI.

type Location struct {
	Lat     float64 `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lng     float64 `json:"lng" yaml:"lng" validate:"gte=-180,lte=180"`
	Address string  `json:"address,omitempty" yaml:"address,omitempty"`
}

type RouteRequest struct {
	Origin             *Location `json:"origin" validate:"required"`
	Destination        *Location `json:"destination" validate:"required"`
	AvoidHighways      bool      `json:"avoidHighways,omitempty"`
	AvoidTolls         bool      `json:"avoidTolls,omitempty"`
	OptimizeForTraffic bool      `json:"optimizeForTraffic,omitempty"`
	Language           string    `json:"language,omitempty" validate:"omitempty,oneof=sw en"`
}

// Ready reports whether both endpoints are set.
func (r RouteRequest) Ready() bool { return r.Origin != nil && r.Destination != nil }

type TrafficLevel string

const (
	TrafficLight    TrafficLevel = "light"
	TrafficModerate TrafficLevel = "moderate"
	TrafficHeavy    TrafficLevel = "heavy"
)

// Rank orders levels light < moderate < heavy; unknown levels sort last.
func (l TrafficLevel) Rank() int {
	switch l {
	case TrafficLight:
		return 0
	case TrafficModerate:
		return 1
	case TrafficHeavy:
		return 2
	}
	return 3
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is an axis-aligned box. The zero value means "no geometry".
type Bounds struct {
	Southwest LatLng `json:"southwest"`
	Northeast LatLng `json:"northeast"`
}

func (b Bounds) IsZero() bool { return b == Bounds{} }

type RouteStep struct {
	Instruction string            `json:"instruction"`
	Distance    string            `json:"distance"`
	Duration    string            `json:"duration"`
	RoadName    string            `json:"roadName,omitempty"`
	Geometry    *geojson.Geometry `json:"geometry,omitempty"`
}

type Route struct {
	ID                       string            `json:"id"`
	Profile                  string            `json:"profile"`
	Summary                  string            `json:"summary"`
	Distance                 string            `json:"distance"`
	Duration                 string            `json:"duration"`
	DurationInTraffic        string            `json:"durationInTraffic"`
	DistanceMeters           float64           `json:"distanceMeters"`
	DurationSeconds          int               `json:"durationSeconds"`
	DurationInTrafficSeconds int               `json:"durationInTrafficSeconds"`
	TrafficLevel             TrafficLevel      `json:"trafficLevel"`
	Steps                    []RouteStep       `json:"steps"`
	Geometry                 *geojson.Geometry `json:"geometry,omitempty"`
	Bounds                   Bounds            `json:"bounds"`
	SmartScore               int               `json:"smartScore"`
	Recommendation           string            `json:"recommendation"`
	// Vertices counts geometry points; only used to spot duplicate alternatives.
	Vertices int `json:"-"`
}

// Plan is one query's ranked result set as handed to the presentation layer.
type Plan struct {
	ID              string       `json:"id"`
	CreatedAt       time.Time    `json:"createdAt"`
	Language        string       `json:"language"`
	Request         RouteRequest `json:"request"`
	Routes          []Route      `json:"routes"`
	Found           bool         `json:"found"`
	SelectedRouteID string       `json:"selectedRouteId,omitempty"`
}

// Route returns the route with the given id, if present.
func (p Plan) Route(id string) (Route, bool) {
	for _, r := range p.Routes {
		if r.ID == id {
			return r, true
		}
	}
	return Route{}, false
}

type SelectRequest struct {
	RouteID string `json:"routeId" validate:"required"`
}
