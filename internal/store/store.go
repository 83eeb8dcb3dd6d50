package store

import (
	"context"
	"errors"
	"time"

	"smartroute/internal/model"
)

// Store caches plan results for the presentation layer. Entries expire;
// nothing here outlives its TTL.
type Store interface {
	SavePlan(ctx context.Context, p model.Plan) error
	GetPlan(ctx context.Context, id string) (model.Plan, error)
	// SelectRoute records the chosen route and returns the updated plan.
	SelectRoute(ctx context.Context, planID, routeID string) (model.Plan, error)
}

var (
	ErrNotFound     = errors.New("not found")
	ErrUnknownRoute = errors.New("route not in plan")
)

// DefaultTTL applies when a store is built with a non-positive TTL.
const DefaultTTL = 30 * time.Minute

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}
