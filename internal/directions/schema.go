package directions

import (
	"encoding/json"
	"math"
)

// Response is the subset of the Mapbox Directions v5 payload the planner reads.
type Response struct {
	Code    string  `json:"code"`
	Message string  `json:"message,omitempty"`
	Routes  []Route `json:"routes"`
}

// Route is one alternative. Geometry stays raw so a malformed shape only
// costs the route its bounds, not the whole response.
type Route struct {
	Duration   float64         `json:"duration"`
	Distance   float64         `json:"distance"`
	Weight     float64         `json:"weight,omitempty"`
	WeightName string          `json:"weight_name,omitempty"`
	Geometry   json.RawMessage `json:"geometry,omitempty"`
	Legs       []Leg           `json:"legs"`
}

type Leg struct {
	Summary    string      `json:"summary,omitempty"`
	Duration   float64     `json:"duration"`
	Distance   float64     `json:"distance"`
	Steps      []Step      `json:"steps"`
	Annotation *Annotation `json:"annotation,omitempty"`
}

// Annotation holds per-segment values; every slice may be absent.
type Annotation struct {
	Congestion []string  `json:"congestion,omitempty"`
	Duration   []float64 `json:"duration,omitempty"`
	Distance   []float64 `json:"distance,omitempty"`
	Speed      []float64 `json:"speed,omitempty"`
}

type Step struct {
	Distance float64         `json:"distance"`
	Duration float64         `json:"duration"`
	Name     string          `json:"name,omitempty"`
	Mode     string          `json:"mode,omitempty"`
	Geometry json.RawMessage `json:"geometry,omitempty"`
	Maneuver Maneuver        `json:"maneuver"`
}

type Maneuver struct {
	Type        string    `json:"type,omitempty"`
	Modifier    string    `json:"modifier,omitempty"`
	Instruction string    `json:"instruction,omitempty"`
	Location    []float64 `json:"location,omitempty"`
}

// Congestion concatenates the congestion labels of every leg in order.
func (r Route) Congestion() []string {
	var out []string
	for _, l := range r.Legs {
		if l.Annotation != nil {
			out = append(out, l.Annotation.Congestion...)
		}
	}
	return out
}

// Steps flattens the steps of every leg.
func (r Route) Steps() []Step {
	var out []Step
	for _, l := range r.Legs {
		out = append(out, l.Steps...)
	}
	return out
}

func validNumber(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 }

// Validate drops routes whose totals are unusable and clears step values
// that are. It returns ErrNoRoute when nothing usable remains.
func (r *Response) Validate() error {
	if r.Code != "" && r.Code != "Ok" {
		return &ProviderError{Code: r.Code, Message: r.Message}
	}
	kept := r.Routes[:0]
	for _, rt := range r.Routes {
		if !validNumber(rt.Duration) || !validNumber(rt.Distance) {
			continue
		}
		for i := range rt.Legs {
			for j := range rt.Legs[i].Steps {
				s := &rt.Legs[i].Steps[j]
				if !validNumber(s.Distance) {
					s.Distance = 0
				}
				if !validNumber(s.Duration) {
					s.Duration = 0
				}
			}
		}
		kept = append(kept, rt)
	}
	r.Routes = kept
	if len(r.Routes) == 0 {
		return ErrNoRoute
	}
	return nil
}
