// Package config loads the service configuration from an optional YAML file
// overlaid by environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	yaml "gopkg.in/yaml.v3"

	"smartroute/internal/i18n"
	"smartroute/internal/traffic"
)

const DefaultPath = "config/smartroute.yaml"

type Config struct {
	Env      string   `yaml:"env"`
	Server   Server   `yaml:"server"`
	Provider Provider `yaml:"provider"`
	Engine   Engine   `yaml:"engine"`
	Store    Store    `yaml:"store"`
}

type Server struct {
	Port string `yaml:"port"`
	// RateRPS limits inbound API requests per second; 0 disables it.
	RateRPS   float64 `yaml:"rate_rps"`
	RateBurst int     `yaml:"rate_burst"`
}

type Provider struct {
	Token     string        `yaml:"token"`
	BaseURL   string        `yaml:"base_url"`
	Profiles  []string      `yaml:"profiles"`
	Timeout   time.Duration `yaml:"timeout"`
	RateRPS   float64       `yaml:"rate_rps"`
	RateBurst int           `yaml:"rate_burst"`
}

// HasToken reports whether a directions access token is configured.
func (p Provider) HasToken() bool { return strings.TrimSpace(p.Token) != "" }

type Engine struct {
	MaxRoutes       int            `yaml:"max_routes"`
	DefaultLanguage i18n.Lang      `yaml:"default_language"`
	PhraseSeed      uint64         `yaml:"phrase_seed"`
	Traffic         *traffic.Rules `yaml:"traffic"`
}

type Store struct {
	RedisURL string        `yaml:"redis_url"`
	PlanTTL  time.Duration `yaml:"plan_ttl"`
}

func Default() Config {
	return Config{
		Env:    "development",
		Server: Server{Port: "8080"},
		Provider: Provider{
			BaseURL:   "https://api.mapbox.com",
			Profiles:  []string{"driving-traffic", "driving"},
			Timeout:   10 * time.Second,
			RateRPS:   5,
			RateBurst: 10,
		},
		Engine: Engine{MaxRoutes: 3, DefaultLanguage: i18n.Swahili},
		Store:  Store{PlanTTL: 30 * time.Minute},
	}
}

// Load reads path (a missing file is fine), then .env, then the process
// environment. Later sources win.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	// .env never overrides variables already set in the environment
	_ = godotenv.Load()

	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str("APP_ENV", &cfg.Env)
	str("PORT", &cfg.Server.Port)
	str("MAPBOX_ACCESS_TOKEN", &cfg.Provider.Token)
	str("MAPBOX_BASE_URL", &cfg.Provider.BaseURL)
	str("REDIS_URL", &cfg.Store.RedisURL)
	if v := strings.TrimSpace(getenv("DEFAULT_LANGUAGE")); v != "" {
		cfg.Engine.DefaultLanguage = i18n.Lang(strings.ToLower(v))
	}
	if v := strings.TrimSpace(getenv("DIRECTIONS_PROFILES")); v != "" {
		cfg.Provider.Profiles = splitList(v)
	}

	durations := map[string]*time.Duration{
		"PLAN_TTL":         &cfg.Store.PlanTTL,
		"PROVIDER_TIMEOUT": &cfg.Provider.Timeout,
	}
	for k, dst := range durations {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			*dst = d
		}
	}
	floats := map[string]*float64{
		"PROVIDER_RATE_RPS": &cfg.Provider.RateRPS,
		"RATE_RPS":          &cfg.Server.RateRPS,
	}
	for k, dst := range floats {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			*dst = f
		}
	}
	ints := map[string]*int{
		"PROVIDER_RATE_BURST": &cfg.Provider.RateBurst,
		"RATE_BURST":          &cfg.Server.RateBurst,
		"MAX_ROUTES":          &cfg.Engine.MaxRoutes,
	}
	for k, dst := range ints {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			*dst = n
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate rejects values the service cannot run with. A missing token is
// allowed: the engine then answers every query with no routes.
func (c Config) Validate() error {
	if _, ok := i18n.Parse(string(c.Engine.DefaultLanguage)); !ok {
		return fmt.Errorf("default_language %q: want sw or en", c.Engine.DefaultLanguage)
	}
	if c.Engine.MaxRoutes < 1 {
		return fmt.Errorf("max_routes must be >= 1")
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("provider timeout must be > 0")
	}
	if c.Provider.RateRPS < 0 || c.Server.RateRPS < 0 {
		return fmt.Errorf("rate limits must be >= 0")
	}
	if c.Store.PlanTTL <= 0 {
		return fmt.Errorf("plan_ttl must be > 0")
	}
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("engine.traffic: %w", err)
	}
	return nil
}

// Rules returns the configured traffic rules with unset parts taken from
// the defaults.
func (c Config) Rules() traffic.Rules {
	if c.Engine.Traffic == nil {
		return traffic.DefaultRules()
	}
	return c.Engine.Traffic.WithDefaults()
}

// Public is the effective configuration with secrets reduced to flags.
func (c Config) Public() map[string]any {
	return map[string]any{
		"env":              c.Env,
		"port":             c.Server.Port,
		"rateRps":          c.Server.RateRPS,
		"providerBaseUrl":  c.Provider.BaseURL,
		"profiles":         c.Provider.Profiles,
		"providerTimeout":  c.Provider.Timeout.String(),
		"providerRateRps":  c.Provider.RateRPS,
		"maxRoutes":        c.Engine.MaxRoutes,
		"defaultLanguage":  c.Engine.DefaultLanguage,
		"planTtl":          c.Store.PlanTTL.String(),
		"hasProviderToken": c.Provider.HasToken(),
		"hasRedisUrl":      c.Store.RedisURL != "",
	}
}
