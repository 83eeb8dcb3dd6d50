package store

import (
	"context"
	"sync"
	"time"

	"smartroute/internal/model"
)

type memEntry struct {
	plan    model.Plan
	expires time.Time
}

// Memory is an in-process Store. Expired plans are dropped lazily on access
// and by Sweep.
type Memory struct {
	mu    sync.Mutex
	plans map[string]memEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{plans: map[string]memEntry{}, ttl: ttlOrDefault(ttl), now: time.Now}
}

func (m *Memory) SavePlan(_ context.Context, p model.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[p.ID] = memEntry{plan: p, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) GetPlan(_ context.Context, id string) (model.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(id)
}

func (m *Memory) get(id string) (model.Plan, error) {
	e, ok := m.plans[id]
	if !ok {
		return model.Plan{}, ErrNotFound
	}
	if !m.now().Before(e.expires) {
		delete(m.plans, id)
		return model.Plan{}, ErrNotFound
	}
	return e.plan, nil
}

func (m *Memory) SelectRoute(_ context.Context, planID, routeID string) (model.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.get(planID)
	if err != nil {
		return model.Plan{}, err
	}
	if _, ok := p.Route(routeID); !ok {
		return model.Plan{}, ErrUnknownRoute
	}
	p.SelectedRouteID = routeID
	e := m.plans[planID]
	e.plan = p
	m.plans[planID] = e
	return p, nil
}

// Sweep removes expired plans and reports how many were dropped.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for id, e := range m.plans {
		if !now.Before(e.expires) {
			delete(m.plans, id)
			n++
		}
	}
	return n
}

// StartSweeper runs Sweep every interval until ctx is done.
func (m *Memory) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}
