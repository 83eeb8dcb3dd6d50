// Package traffic turns per-segment congestion labels into a traffic
// classification, a duration multiplier and a smart score.
package traffic

import (
	"fmt"
	"math"
	"strings"

	"smartroute/internal/model"
)

// Congestion is one provider label for a geometry segment.
type Congestion string

const (
	Unknown  Congestion = "unknown"
	Low      Congestion = "low"
	Moderate Congestion = "moderate"
	Heavy    Congestion = "heavy"
	Severe   Congestion = "severe"
)

// ParseCongestion maps a provider label to the closed label set.
// Anything unrecognised is Unknown.
func ParseCongestion(s string) Congestion {
	switch Congestion(strings.ToLower(strings.TrimSpace(s))) {
	case Low:
		return Low
	case Moderate:
		return Moderate
	case Heavy:
		return Heavy
	case Severe:
		return Severe
	}
	return Unknown
}

// ParseAll converts a provider annotation sequence.
func ParseAll(labels []string) []Congestion {
	out := make([]Congestion, 0, len(labels))
	for _, l := range labels {
		out = append(out, ParseCongestion(l))
	}
	return out
}

// Analysis is the derived classification of one route.
type Analysis struct {
	Level      model.TrafficLevel `json:"level"`
	Multiplier float64            `json:"multiplier"`
	Score      int                `json:"score"`
}

// Outcome is the classification a rule yields when it matches.
type Outcome struct {
	Level      model.TrafficLevel `yaml:"level"`
	Multiplier float64            `yaml:"multiplier"`
	Score      int                `yaml:"score"`
}

// Rule fires when the fraction of samples labelled Label is strictly above Threshold.
type Rule struct {
	Label     Congestion `yaml:"label"`
	Threshold float64    `yaml:"threshold"`
	Outcome   `yaml:",inline"`
}

// Rules holds the priority-ordered rules plus the empty and fallback outcomes.
type Rules struct {
	Empty    Outcome `yaml:"empty"`
	Ordered  []Rule  `yaml:"rules"`
	Fallback Outcome `yaml:"fallback"`
}

// DefaultRules returns the empirically chosen thresholds the planner ships with.
func DefaultRules() Rules {
	return Rules{
		Empty: Outcome{Level: model.TrafficLight, Multiplier: 1.0, Score: 95},
		Ordered: []Rule{
			{Label: Severe, Threshold: 0.3, Outcome: Outcome{Level: model.TrafficHeavy, Multiplier: 2.0, Score: 25}},
			{Label: Heavy, Threshold: 0.4, Outcome: Outcome{Level: model.TrafficHeavy, Multiplier: 1.7, Score: 35}},
			{Label: Moderate, Threshold: 0.5, Outcome: Outcome{Level: model.TrafficModerate, Multiplier: 1.3, Score: 65}},
			{Label: Low, Threshold: 0.6, Outcome: Outcome{Level: model.TrafficLight, Multiplier: 1.05, Score: 95}},
		},
		Fallback: Outcome{Level: model.TrafficModerate, Multiplier: 1.2, Score: 70},
	}
}

// Analyzer classifies congestion samples. The zero value uses DefaultRules.
type Analyzer struct {
	rules Rules
}

// NewAnalyzer builds an analyzer over the given rules.
func NewAnalyzer(rules Rules) *Analyzer {
	return &Analyzer{rules: rules}
}

func (a *Analyzer) ruleset() Rules {
	if a == nil {
		return DefaultRules()
	}
	return a.rules.WithDefaults()
}

// WithDefaults fills every part left unset from DefaultRules, so a partial
// configuration only overrides what it names.
func (r Rules) WithDefaults() Rules {
	d := DefaultRules()
	if len(r.Ordered) == 0 {
		r.Ordered = d.Ordered
	}
	if r.Empty == (Outcome{}) {
		r.Empty = d.Empty
	}
	if r.Fallback == (Outcome{}) {
		r.Fallback = d.Fallback
	}
	return r
}

// Validate rejects rules that would silently never fire or be rewritten by
// clamping: unknown labels or levels, thresholds outside [0,1], multipliers
// below 1 and scores outside [0,100].
func (r Rules) Validate() error {
	for i, rule := range r.Ordered {
		if ParseCongestion(string(rule.Label)) != rule.Label {
			return fmt.Errorf("rule %d: unknown label %q", i, rule.Label)
		}
		if math.IsNaN(rule.Threshold) || rule.Threshold < 0 || rule.Threshold > 1 {
			return fmt.Errorf("rule %d: threshold %v outside [0,1]", i, rule.Threshold)
		}
		if err := rule.Outcome.validate(); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}
	if err := r.Empty.validate(); err != nil {
		return fmt.Errorf("empty: %w", err)
	}
	if err := r.Fallback.validate(); err != nil {
		return fmt.Errorf("fallback: %w", err)
	}
	return nil
}

func (o Outcome) validate() error {
	if o.Level.Rank() > 2 {
		return fmt.Errorf("unknown level %q", o.Level)
	}
	if math.IsNaN(o.Multiplier) || math.IsInf(o.Multiplier, 0) || o.Multiplier < 1 {
		return fmt.Errorf("multiplier %v below 1", o.Multiplier)
	}
	if o.Score < 0 || o.Score > 100 {
		return fmt.Errorf("score %d outside [0,100]", o.Score)
	}
	return nil
}

// Analyze never fails: every sequence over the label set gets a classification.
func (a *Analyzer) Analyze(samples []Congestion) Analysis {
	rules := a.ruleset()
	if len(samples) == 0 {
		return rules.Empty.analysis()
	}

	counts := make(map[Congestion]int, 5)
	for _, s := range samples {
		counts[s]++
	}
	total := float64(len(samples))
	for _, r := range rules.Ordered {
		if float64(counts[r.Label])/total > r.Threshold {
			return r.Outcome.analysis()
		}
	}
	return rules.Fallback.analysis()
}

// analysis clamps configured values so the multiplier stays >= 1 and the score within [0,100].
func (o Outcome) analysis() Analysis {
	m := o.Multiplier
	if m < 1.0 || m != m {
		m = 1.0
	}
	score := o.Score
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	level := o.Level
	if level.Rank() > 2 {
		level = model.TrafficModerate
	}
	return Analysis{Level: level, Multiplier: m, Score: score}
}
