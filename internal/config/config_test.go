package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartroute/internal/i18n"
	"smartroute/internal/model"
	"smartroute/internal/traffic"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "smartroute.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Engine.MaxRoutes)
	assert.Equal(t, []string{"driving-traffic", "driving"}, cfg.Provider.Profiles)
	assert.Equal(t, traffic.DefaultRules(), cfg.Rules())
}

func TestLoadShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load("../../config/smartroute.yaml")
	require.NoError(t, err)
	assert.Equal(t, traffic.DefaultRules(), cfg.Rules())
	assert.Equal(t, 30*time.Minute, cfg.Store.PlanTTL)
	assert.Equal(t, 10*time.Second, cfg.Provider.Timeout)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	p := writeFile(t, `
server: {port: "9000"}
provider: {timeout: 3s, profiles: [driving]}
engine:
  max_routes: 2
  default_language: en
  traffic:
    empty: {level: light, multiplier: 1, score: 90}
    rules:
      - {label: severe, threshold: 0.5, level: heavy, multiplier: 2.5, score: 10}
    fallback: {level: moderate, multiplier: 1.1, score: 60}
store: {plan_ttl: 5m}
`)
	t.Setenv("PORT", "7000")
	t.Setenv("MAPBOX_ACCESS_TOKEN", "pk.test")
	t.Setenv("PLAN_TTL", "90s")
	t.Setenv("PROVIDER_RATE_RPS", "2.5")
	t.Setenv("PROVIDER_RATE_BURST", "4")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.True(t, cfg.Provider.HasToken())
	assert.Equal(t, 3*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, []string{"driving"}, cfg.Provider.Profiles)
	assert.Equal(t, 90*time.Second, cfg.Store.PlanTTL)
	assert.Equal(t, 2.5, cfg.Provider.RateRPS)
	assert.Equal(t, 4, cfg.Provider.RateBurst)
	assert.Equal(t, 2, cfg.Engine.MaxRoutes)
	assert.Equal(t, i18n.English, cfg.Engine.DefaultLanguage)

	rules := cfg.Rules()
	require.Len(t, rules.Ordered, 1)
	assert.Equal(t, traffic.Severe, rules.Ordered[0].Label)
	assert.Equal(t, 0.5, rules.Ordered[0].Threshold)
	assert.Equal(t, model.TrafficHeavy, rules.Ordered[0].Level)
	assert.Equal(t, 2.5, rules.Ordered[0].Multiplier)
	assert.Equal(t, 90, rules.Empty.Score)

	pub := cfg.Public()
	assert.Equal(t, true, pub["hasProviderToken"])
	assert.NotContains(t, pub, "token")
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("language", func(t *testing.T) {
		t.Setenv("DEFAULT_LANGUAGE", "fr")
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
	t.Run("duration", func(t *testing.T) {
		t.Setenv("PROVIDER_TIMEOUT", "soon")
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
	t.Run("yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "engine: [not, a, map]"))
		assert.Error(t, err)
	})
	t.Run("max routes", func(t *testing.T) {
		_, err := Load(writeFile(t, "engine: {max_routes: 0}"))
		assert.Error(t, err)
	})
}

func TestPartialTrafficBlockKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, `
engine:
  traffic:
    rules:
      - {label: severe, threshold: 0.5, level: heavy, multiplier: 2.5, score: 10}
`))
	require.NoError(t, err)
	rules := cfg.Rules()
	assert.Equal(t, traffic.DefaultRules().Empty, rules.Empty)
	assert.Equal(t, traffic.DefaultRules().Fallback, rules.Fallback)
	require.Len(t, rules.Ordered, 1)

	a := traffic.NewAnalyzer(rules)
	assert.Equal(t, traffic.Analysis{Level: model.TrafficLight, Multiplier: 1.0, Score: 95}, a.Analyze(nil))
	assert.Equal(t, traffic.Analysis{Level: model.TrafficModerate, Multiplier: 1.2, Score: 70},
		a.Analyze([]traffic.Congestion{traffic.Low, traffic.Low}))
}

func TestLoadRejectsBadTrafficRules(t *testing.T) {
	tests := []struct {
		name string
		rule string
		want string
	}{
		{"label outside the closed set", `{label: sever, threshold: 0.3, level: heavy, multiplier: 2.0, score: 25}`, "unknown label"},
		{"level outside the closed set", `{label: severe, threshold: 0.3, level: Heavy, multiplier: 2.0, score: 25}`, "unknown level"},
		{"threshold above one", `{label: severe, threshold: 1.3, level: heavy, multiplier: 2.0, score: 25}`, "threshold"},
		{"threshold below zero", `{label: severe, threshold: -0.3, level: heavy, multiplier: 2.0, score: 25}`, "threshold"},
		{"multiplier below one", `{label: low, threshold: 0.6, level: light, multiplier: 0.5, score: 95}`, "multiplier"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "engine:\n  traffic:\n    rules:\n      - "+tt.rule+"\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "engine.traffic")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMissingTokenIsExplicit(t *testing.T) {
	t.Setenv("MAPBOX_ACCESS_TOKEN", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.False(t, cfg.Provider.HasToken())
	assert.Equal(t, false, cfg.Public()["hasProviderToken"])
}
