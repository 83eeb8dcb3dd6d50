package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"smartroute/internal/model"
)

// Redis keeps plans as JSON strings under plan:{id} with SET ... EX.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttlOrDefault(ttl)}
}

// NewRedisFromURL parses a redis:// URL.
func NewRedisFromURL(url string, ttl time.Duration) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedis(redis.NewClient(opt), ttl), nil
}

func (r *Redis) Client() *redis.Client { return r.rdb }

func key(id string) string { return "plan:" + id }

func (r *Redis) SavePlan(ctx context.Context, p model.Plan) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return r.rdb.Set(ctx, key(p.ID), b, r.ttl).Err()
}

func (r *Redis) GetPlan(ctx context.Context, id string) (model.Plan, error) {
	b, err := r.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Plan{}, ErrNotFound
	}
	if err != nil {
		return model.Plan{}, err
	}
	var p model.Plan
	if err := json.Unmarshal(b, &p); err != nil {
		return model.Plan{}, fmt.Errorf("decode plan %s: %w", id, err)
	}
	return p, nil
}

// SelectRoute updates the plan under WATCH so concurrent selections do not
// clobber each other; the remaining TTL is kept.
func (r *Redis) SelectRoute(ctx context.Context, planID, routeID string) (model.Plan, error) {
	var out model.Plan
	k := key(planID)
	txf := func(tx *redis.Tx) error {
		b, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		var p model.Plan
		if err := json.Unmarshal(b, &p); err != nil {
			return fmt.Errorf("decode plan %s: %w", planID, err)
		}
		if _, ok := p.Route(routeID); !ok {
			return ErrUnknownRoute
		}
		p.SelectedRouteID = routeID
		nb, err := json.Marshal(p)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetArgs(ctx, k, nb, redis.SetArgs{KeepTTL: true})
			return nil
		})
		if err == nil {
			out = p
		}
		return err
	}
	for i := 0; i < 3; i++ {
		err := r.rdb.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return out, err
	}
	return model.Plan{}, redis.TxFailedErr
}

// Ping satisfies the readiness probe.
func (r *Redis) Ping(ctx context.Context) error { return r.rdb.Ping(ctx).Err() }
