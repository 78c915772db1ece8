package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrymomot/subtrack/subscription"
)

// Memory keeps snapshots in process memory. Intended for tests and ephemeral
// runs; contents are lost on restart.
type Memory struct {
	mu       sync.RWMutex
	subs     []subscription.Subscription
	products []string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadSubscriptions(ctx context.Context) ([]subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.subs), nil
}

func (m *Memory) SaveSubscriptions(ctx context.Context, subs []subscription.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = slices.Clone(subs)
	return nil
}

func (m *Memory) LoadProducts(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.products), nil
}

func (m *Memory) SaveProducts(ctx context.Context, products []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = slices.Clone(products)
	return nil
}
