package routing

import (
	"encoding/json"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"smartroute/internal/advice"
	"smartroute/internal/directions"
	"smartroute/internal/i18n"
	"smartroute/internal/model"
	"smartroute/internal/traffic"
)

// Transformer turns one provider route into an annotated candidate.
// Nil fields fall back to defaults.
type Transformer struct {
	Analyzer   *traffic.Analyzer
	Advice     *advice.Generator
	Translator *Translator
}

func NewTransformer(a *traffic.Analyzer, g *advice.Generator, tr *Translator) *Transformer {
	return &Transformer{Analyzer: a, Advice: g, Translator: tr}
}

// Transform never fails: unusable geometry leaves Geometry nil and Bounds zero.
func (t *Transformer) Transform(raw directions.Route, index int, lang i18n.Lang) model.Route {
	analysis := t.Analyzer.Analyze(traffic.ParseAll(raw.Congestion()))

	dur := int(math.Round(raw.Duration))
	inTraffic := int(math.Round(raw.Duration * analysis.Multiplier))
	if inTraffic < dur {
		inTraffic = dur
	}

	steps := raw.Steps()
	names := make([]string, 0, len(steps))
	out := make([]model.RouteStep, 0, len(steps))
	for _, s := range steps {
		names = append(names, s.Name)
		instr := s.Maneuver.Instruction
		if instr == "" {
			instr = "Continue"
		}
		step := model.RouteStep{
			Instruction: t.Translator.Translate(instr, lang),
			Distance:    FormatDistance(s.Distance),
			Duration:    FormatDuration(int(math.Round(s.Duration))),
			RoadName:    s.Name,
		}
		if g, ok := parseGeometry(s.Geometry); ok {
			step.Geometry = geojson.NewGeometry(g)
		}
		out = append(out, step)
	}
	roads := advice.ExtractRoadNames(names, lang)

	r := model.Route{
		Summary:                  t.Advice.Summary(analysis.Level, index, lang),
		Distance:                 FormatDistance(raw.Distance),
		Duration:                 FormatDuration(dur),
		DurationInTraffic:        FormatDuration(inTraffic),
		DistanceMeters:           raw.Distance,
		DurationSeconds:          dur,
		DurationInTrafficSeconds: inTraffic,
		TrafficLevel:             analysis.Level,
		Steps:                    out,
		SmartScore:               analysis.Score,
		Recommendation:           t.Advice.Recommend(analysis, roads, raw.Distance, raw.Duration, lang),
	}
	if g, ok := parseGeometry(raw.Geometry); ok {
		r.Geometry = geojson.NewGeometry(g)
		r.Bounds = boundsOf(g)
		r.Vertices = vertexCount(g)
	}
	return r
}

// parseGeometry accepts any non-empty GeoJSON line geometry.
func parseGeometry(raw json.RawMessage) (orb.Geometry, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil || g == nil || g.Coordinates == nil {
		return nil, false
	}
	switch c := g.Coordinates.(type) {
	case orb.LineString:
		if len(c) == 0 {
			return nil, false
		}
	case orb.MultiLineString:
		if vertexCount(c) == 0 {
			return nil, false
		}
	case orb.Point:
	default:
		return nil, false
	}
	if !finite(g.Coordinates.Bound()) {
		return nil, false
	}
	return g.Coordinates, true
}

func finite(b orb.Bound) bool {
	for _, v := range []float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func boundsOf(g orb.Geometry) model.Bounds {
	b := g.Bound()
	return model.Bounds{
		Southwest: model.LatLng{Lat: b.Min[1], Lng: b.Min[0]},
		Northeast: model.LatLng{Lat: b.Max[1], Lng: b.Max[0]},
	}
}

func vertexCount(g orb.Geometry) int {
	switch c := g.(type) {
	case orb.LineString:
		return len(c)
	case orb.MultiLineString:
		n := 0
		for _, l := range c {
			n += len(l)
		}
		return n
	case orb.Point:
		return 1
	}
	return 0
}
