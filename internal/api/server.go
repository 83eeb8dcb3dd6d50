package api

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"smartroute/internal/advice"
	"smartroute/internal/config"
	"smartroute/internal/directions"
	"smartroute/internal/places"
	"smartroute/internal/routing"
	"smartroute/internal/store"
)

type Server struct {
	Engine  *routing.Engine
	Store   store.Store
	Broker  EventBroker
	Catalog *places.Catalog
	Config  config.Config
	Log     *zap.Logger

	validate *validator.Validate
	now      func() time.Time
}

// NewServer wires the engine and its collaborators from cfg. With no Redis
// URL the plan store and event broker stay in memory.
func NewServer(cfg config.Config, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	catalog := places.Default()

	if !cfg.Provider.HasToken() {
		log.Warn("MAPBOX_ACCESS_TOKEN is not set; every plan will come back empty")
	}
	engine := NewEngine(cfg, catalog, log)

	var (
		st     store.Store
		broker EventBroker
	)
	if cfg.Store.RedisURL != "" {
		rs, err := store.NewRedisFromURL(cfg.Store.RedisURL, cfg.Store.PlanTTL)
		if err != nil {
			return nil, fmt.Errorf("plan store: %w", err)
		}
		st = rs
		broker = NewRedisBroker(rs.Client(), log.Named("broker"))
	} else {
		st = store.NewMemory(cfg.Store.PlanTTL)
		broker = NewBroker()
	}

	return &Server{
		Engine:   engine,
		Store:    st,
		Broker:   broker,
		Catalog:  catalog,
		Config:   cfg,
		Log:      log,
		validate: newValidator(),
		now:      time.Now,
	}, nil
}

// NewEngine builds the route engine over the Mapbox client described by cfg.
func NewEngine(cfg config.Config, catalog *places.Catalog, log *zap.Logger) *routing.Engine {
	client := directions.NewClient(directions.Options{
		BaseURL: cfg.Provider.BaseURL,
		Token:   cfg.Provider.Token,
		Timeout: cfg.Provider.Timeout,
		RPS:     cfg.Provider.RateRPS,
		Burst:   cfg.Provider.RateBurst,
		Log:     log.Named("directions"),
	})
	var chooser advice.Chooser
	if cfg.Engine.PhraseSeed != 0 {
		chooser = advice.NewSeededChooser(cfg.Engine.PhraseSeed)
	}
	return routing.NewEngine(client, routing.Options{
		Profiles:    cfg.Provider.Profiles,
		MaxRoutes:   cfg.Engine.MaxRoutes,
		CallTimeout: cfg.Provider.Timeout,
		Language:    cfg.Engine.DefaultLanguage,
		Rules:       cfg.Rules(),
		Chooser:     chooser,
		Catalog:     catalog,
		Log:         log.Named("engine"),
	})
}
