package traffic

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartroute/internal/model"
)

func repeat(c Congestion, n int) []Congestion {
	out := make([]Congestion, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func mix(parts ...[]Congestion) []Congestion {
	var out []Congestion
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestAnalyzeEmpty(t *testing.T) {
	var a Analyzer
	got := a.Analyze(nil)
	assert.Equal(t, Analysis{Level: model.TrafficLight, Multiplier: 1.0, Score: 95}, got)
}

func TestAnalyzeRules(t *testing.T) {
	tests := []struct {
		name    string
		samples []Congestion
		want    Analysis
	}{
		{"severe wins over everything", mix(repeat(Severe, 4), repeat(Heavy, 5), repeat(Low, 1)), Analysis{model.TrafficHeavy, 2.0, 25}},
		{"severe exactly 30% does not fire", mix(repeat(Severe, 3), repeat(Low, 7)), Analysis{model.TrafficLight, 1.05, 95}},
		{"heavy above 40%", mix(repeat(Heavy, 5), repeat(Low, 5)), Analysis{model.TrafficHeavy, 1.7, 35}},
		{"moderate above 50%", mix(repeat(Moderate, 6), repeat(Low, 4)), Analysis{model.TrafficModerate, 1.3, 65}},
		{"low above 60%", mix(repeat(Low, 7), repeat(Unknown, 3)), Analysis{model.TrafficLight, 1.05, 95}},
		{"mixed falls back", mix(repeat(Low, 5), repeat(Moderate, 3), repeat(Heavy, 2)), Analysis{model.TrafficModerate, 1.2, 70}},
		{"all unknown falls back", repeat(Unknown, 4), Analysis{model.TrafficModerate, 1.2, 70}},
	}
	a := NewAnalyzer(DefaultRules())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Analyze(tt.samples))
		})
	}
}

func TestAnalyzeSevereRegardlessOfDistribution(t *testing.T) {
	a := NewAnalyzer(DefaultRules())
	rng := rand.New(rand.NewPCG(7, 11))
	others := []Congestion{Unknown, Low, Moderate, Heavy}
	for i := 0; i < 200; i++ {
		n := 10 + rng.IntN(40)
		samples := repeat(Severe, n*3/10+1)
		for len(samples) < n {
			samples = append(samples, others[rng.IntN(len(others))])
		}
		got := a.Analyze(samples)
		require.Equal(t, Analysis{model.TrafficHeavy, 2.0, 25}, got, "samples=%v", samples)
	}
}

func TestAnalyzeBounds(t *testing.T) {
	a := NewAnalyzer(DefaultRules())
	rng := rand.New(rand.NewPCG(1, 2))
	labels := []Congestion{Unknown, Low, Moderate, Heavy, Severe}
	for i := 0; i < 500; i++ {
		samples := make([]Congestion, rng.IntN(30))
		for j := range samples {
			samples[j] = labels[rng.IntN(len(labels))]
		}
		got := a.Analyze(samples)
		assert.GreaterOrEqual(t, got.Multiplier, 1.0)
		assert.GreaterOrEqual(t, got.Score, 0)
		assert.LessOrEqual(t, got.Score, 100)
	}
}

func TestConfiguredRulesAreClamped(t *testing.T) {
	a := NewAnalyzer(Rules{
		Empty:    Outcome{Level: model.TrafficLight, Multiplier: 0.5, Score: 140},
		Fallback: Outcome{Level: "gridlock", Multiplier: 1.1, Score: -3},
	})
	assert.Equal(t, Analysis{model.TrafficLight, 1.0, 100}, a.Analyze(nil))
	// no rules configured: the default rules apply, unknown falls through
	assert.Equal(t, Analysis{model.TrafficModerate, 1.1, 0}, a.Analyze([]Congestion{Unknown}))
}

func TestPartialRulesKeepDefaults(t *testing.T) {
	a := NewAnalyzer(Rules{Ordered: []Rule{
		{Label: Severe, Threshold: 0.5, Outcome: Outcome{Level: model.TrafficHeavy, Multiplier: 2.5, Score: 10}},
	}})
	assert.Equal(t, Analysis{model.TrafficLight, 1.0, 95}, a.Analyze(nil))
	assert.Equal(t, Analysis{model.TrafficModerate, 1.2, 70}, a.Analyze([]Congestion{Low, Low}))
	assert.Equal(t, Analysis{model.TrafficHeavy, 2.5, 10}, a.Analyze([]Congestion{Severe}))
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())

	mutate := func(f func(*Rules)) Rules {
		r := DefaultRules()
		f(&r)
		return r
	}
	tests := []struct {
		name  string
		rules Rules
		want  string
	}{
		{"misspelt label", mutate(func(r *Rules) { r.Ordered[0].Label = "sever" }), "unknown label"},
		{"capitalised level", mutate(func(r *Rules) { r.Ordered[1].Level = "Heavy" }), "unknown level"},
		{"threshold above one", mutate(func(r *Rules) { r.Ordered[2].Threshold = 1.5 }), "threshold"},
		{"negative threshold", mutate(func(r *Rules) { r.Ordered[2].Threshold = -0.1 }), "threshold"},
		{"multiplier below one", mutate(func(r *Rules) { r.Ordered[3].Multiplier = 0.5 }), "multiplier"},
		{"score above hundred", mutate(func(r *Rules) { r.Empty.Score = 120 }), "score"},
		{"fallback level", mutate(func(r *Rules) { r.Fallback.Level = "gridlock" }), "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rules.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseCongestion(t *testing.T) {
	assert.Equal(t, Severe, ParseCongestion("SEVERE"))
	assert.Equal(t, Low, ParseCongestion(" low "))
	assert.Equal(t, Unknown, ParseCongestion("jammed"))
	assert.Equal(t, Unknown, ParseCongestion(""))
	assert.Equal(t, []Congestion{Heavy, Unknown}, ParseAll([]string{"heavy", "x"}))
}
