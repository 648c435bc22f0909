package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"optifuel/api/internal/model"
	"optifuel/api/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memoryVoyages struct {
	mu      sync.Mutex
	nextID  uint
	records []model.Voyage
	err     error
	lists   int
}

func (m *memoryVoyages) Create(_ context.Context, v *model.Voyage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	v.ID = m.nextID
	m.records = append(m.records, *v)
	return nil
}

func (m *memoryVoyages) ListByOwner(_ context.Context, ownerID uint) ([]model.Voyage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.Voyage, 0)
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].OwnerID == ownerID {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

func (m *memoryVoyages) Get(_ context.Context, ownerID, id uint) (*model.Voyage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id && m.records[i].OwnerID == ownerID {
			v := m.records[i]
			return &v, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memoryVoyages) UpdateActual(_ context.Context, ownerID, id uint, actual float64) (*model.Voyage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id && m.records[i].OwnerID == ownerID {
			m.records[i].ActualFuelConsumption = &actual
			v := m.records[i]
			return &v, nil
		}
	}
	return nil, store.ErrNotFound
}

type stubPredictor struct {
	predicted   float64
	explanation map[string]float64
	err         error
	calls       int
	last        *model.PredictionRequest
}

func (p *stubPredictor) Predict(_ context.Context, req *model.PredictionRequest) (float64, error) {
	p.calls++
	p.last = req
	if p.err != nil {
		return 0, p.err
	}
	return p.predicted, nil
}

func (p *stubPredictor) Explain(_ context.Context, req *model.PredictionRequest) (map[string]float64, error) {
	p.calls++
	p.last = req
	if p.err != nil {
		return nil, p.err
	}
	return p.explanation, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.VoyageEvent
	err    error
}

func (p *recordingPublisher) PublishVoyageEvent(_ context.Context, event *model.VoyageEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *event)
	return p.err
}

type recordingInvalidator struct {
	owners []uint
	err    error
}

func (r *recordingInvalidator) Invalidate(_ context.Context, ownerID uint) error {
	r.owners = append(r.owners, ownerID)
	return r.err
}

// memoryCache stores values by reference, which is enough for in-process tests
type memoryCache struct {
	mu     sync.Mutex
	values   map[string]interface{}
	ttls     map[string]time.Duration
	counters map[string]int64
	getErr   error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]interface{}{}, ttls: map[string]time.Duration{}, counters: map[string]int64{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	if n, ok := c.counters[key]; ok {
		*dest.(*int64) = n
		return true, nil
	}
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	switch d := dest.(type) {
	case *model.AnalyticsSummary:
		*d = v.(model.AnalyticsSummary)
	case *model.AnalyticsCharts:
		*d = v.(model.AnalyticsCharts)
	}
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[key]++
	return c.counters[key], nil
}

type memoryUsers struct {
	mu     sync.Mutex
	nextID uint
	users  []model.User
}

func (m *memoryUsers) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	m.nextID++
	u.ID = m.nextID
	m.users = append(m.users, *u)
	return nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memoryUsers) FindByID(_ context.Context, id uint) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func validRequest() *model.PredictionRequest {
	return &model.PredictionRequest{
		Distance:          250,
		EngineEfficiency:  82,
		ShipType:          model.ShipTypeTankerShip,
		RouteID:           model.RouteWarriBonny,
		FuelType:          model.FuelTypeHFO,
		WeatherConditions: model.WeatherModerate,
		Month:             6,
	}
}
