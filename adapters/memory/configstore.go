// Package memory provides in-memory implementations of storage ports,
// used in tests and as reference implementations of the contracts.
package memory

import (
	"context"
	"sync"

	"github.com/rotavan/rotavan/domain/billing"
	"github.com/rotavan/rotavan/ports"
)

// ErrNotFound is returned when an entity is not found.
var ErrNotFound = ports.ErrNotFound

// ConfigStore is an in-memory implementation of ports.ConfigStore.
type ConfigStore struct {
	mu  sync.RWMutex
	cfg *billing.Config
}

// NewConfigStore creates a new in-memory billing config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{}
}

// Get retrieves the singleton configuration.
func (s *ConfigStore) Get(ctx context.Context) (billing.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cfg == nil {
		return billing.Config{}, ErrNotFound
	}
	return *s.cfg, nil
}

// Save creates or replaces the singleton configuration.
func (s *ConfigStore) Save(ctx context.Context, cfg billing.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = &cfg
	return nil
}

// Ensure interface compliance.
var _ ports.ConfigStore = (*ConfigStore)(nil)
