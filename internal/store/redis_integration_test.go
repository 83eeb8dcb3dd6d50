package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only when REDIS_URL points at a disposable instance.
func TestRedisStoreIntegration(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()
	r, err := NewRedisFromURL(url, time.Minute)
	require.NoError(t, err)
	require.NoError(t, r.Ping(ctx))

	id := uuid.NewString()
	t.Cleanup(func() { r.Client().Del(context.Background(), key(id)) })

	require.NoError(t, r.SavePlan(ctx, plan(id, "driving-traffic-0")))
	got, err := r.GetPlan(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	got, err = r.SelectRoute(ctx, id, "driving-traffic-0")
	require.NoError(t, err)
	assert.Equal(t, "driving-traffic-0", got.SelectedRouteID)

	ttl, err := r.Client().TTL(ctx, key(id)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0), "selection keeps the expiry")

	_, err = r.SelectRoute(ctx, id, "driving-9")
	assert.ErrorIs(t, err, ErrUnknownRoute)
	_, err = r.GetPlan(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}
