// Package routing turns provider alternatives into ranked, annotated route
// candidates.
package routing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"smartroute/internal/advice"
	"smartroute/internal/directions"
	"smartroute/internal/i18n"
	"smartroute/internal/metrics"
	"smartroute/internal/model"
	"smartroute/internal/places"
	"smartroute/internal/traffic"
)

// DefaultProfiles are queried when none are configured: traffic-aware first.
var DefaultProfiles = []string{"driving-traffic", "driving"}

const DefaultMaxRoutes = 3

// Provider fetches alternatives for one profile. *directions.Client implements it.
type Provider interface {
	HasToken() bool
	Routes(ctx context.Context, q directions.Query) ([]directions.Route, error)
}

type Options struct {
	Profiles    []string
	MaxRoutes   int
	CallTimeout time.Duration
	Language    i18n.Lang
	Rules       traffic.Rules
	Chooser     advice.Chooser
	Catalog     *places.Catalog
	Log         *zap.Logger
}

// Engine is safe for concurrent use; it keeps no state between calls.
type Engine struct {
	provider    Provider
	transformer *Transformer
	catalog     *places.Catalog
	profiles    []string
	maxRoutes   int
	callTimeout time.Duration
	lang        i18n.Lang
	log         *zap.Logger
}

func NewEngine(p Provider, o Options) *Engine {
	e := &Engine{
		provider: p,
		transformer: NewTransformer(
			traffic.NewAnalyzer(o.Rules),
			advice.NewGenerator(o.Chooser),
			NewTranslator(SwahiliPhrases),
		),
		catalog:     o.Catalog,
		profiles:    o.Profiles,
		maxRoutes:   o.MaxRoutes,
		callTimeout: o.CallTimeout,
		lang:        o.Language,
		log:         o.Log,
	}
	if len(e.profiles) == 0 {
		e.profiles = DefaultProfiles
	}
	if e.maxRoutes <= 0 {
		e.maxRoutes = DefaultMaxRoutes
	}
	if e.lang == "" {
		e.lang = i18n.Swahili
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	return e
}

// DefaultLanguage is the language used when a request names none.
func (e *Engine) DefaultLanguage() i18n.Lang { return e.lang }

// Language resolves the display language for req.
func (e *Engine) Language(req model.RouteRequest) i18n.Lang {
	if l, ok := i18n.Parse(req.Language); ok {
		return l
	}
	return e.lang
}

// PlanRoutes returns at most MaxRoutes candidates, best first. An empty
// result means no route was found; provider failures are logged, not returned.
func (e *Engine) PlanRoutes(ctx context.Context, req model.RouteRequest) []model.Route {
	if e.provider == nil || !e.provider.HasToken() {
		e.log.Error("directions access token is not configured")
		return []model.Route{}
	}
	if !req.Ready() {
		e.log.Warn("route request is missing an endpoint",
			zap.Bool("origin", req.Origin != nil), zap.Bool("destination", req.Destination != nil))
		return []model.Route{}
	}

	lang := e.Language(req)
	area, local := e.catalog.AreaFor(*req.Origin, *req.Destination)
	exclude := directions.ExcludeFor(req)

	// one slot per profile so candidates merge in profile order
	results := make([][]model.Route, len(e.profiles))
	var g errgroup.Group
	for i, profile := range e.profiles {
		g.Go(func() error {
			results[i] = e.fetch(ctx, directions.Query{
				Profile:      profile,
				Origin:       *req.Origin,
				Destination:  *req.Destination,
				Exclude:      exclude,
				Local:        local,
				Alternatives: true,
			}, lang)
			return nil
		})
	}
	_ = g.Wait()

	var candidates []model.Route
	for _, rs := range results {
		candidates = append(candidates, rs...)
	}
	metrics.RouteCandidates.Observe(float64(len(candidates)))

	if local {
		for i := range candidates {
			withArea(&candidates[i], area, lang)
		}
	}

	Rank(candidates, req.OptimizeForTraffic)
	candidates = Dedupe(candidates)
	if len(candidates) > e.maxRoutes {
		candidates = candidates[:e.maxRoutes]
	}
	// names follow the merged rank, not each profile's own alternative order
	for i := range candidates {
		candidates[i].Summary = e.transformer.Advice.Summary(candidates[i].TrafficLevel, i, lang)
		metrics.RouteTrafficLevels.WithLabelValues(string(candidates[i].TrafficLevel)).Inc()
	}
	if candidates == nil {
		candidates = []model.Route{}
	}
	e.log.Info("routes planned",
		zap.Int("routes", len(candidates)), zap.Bool("local", local), zap.String("lang", string(lang)))
	return candidates
}

func (e *Engine) fetch(ctx context.Context, q directions.Query, lang i18n.Lang) []model.Route {
	if e.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.callTimeout)
		defer cancel()
	}
	raw, err := e.provider.Routes(ctx, q)
	if err != nil {
		level := e.log.Warn
		if errors.Is(err, directions.ErrNoRoute) {
			level = e.log.Info
		}
		level("profile skipped", zap.String("profile", q.Profile), zap.Error(err))
		return nil
	}
	out := make([]model.Route, 0, len(raw))
	for i, r := range raw {
		route := e.transformer.Transform(r, i, lang)
		route.ID = fmt.Sprintf("%s-%d", q.Profile, i)
		route.Profile = q.Profile
		out = append(out, route)
	}
	return out
}

func withArea(r *model.Route, area places.Area, lang i18n.Lang) {
	var g orb.Geometry
	if r.Geometry != nil {
		g = r.Geometry.Coordinates
	}
	landmark := ""
	if lm, ok := area.NearestLandmark(g); ok {
		landmark = lm.Name
	}
	r.Recommendation = advice.WithArea(r.Recommendation, area.Name, landmark, lang)
}
