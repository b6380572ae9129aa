package repository

import (
	"context"
	"sync"
)

const (
	NewsKey        = "donkin-news"
	SeenKey        = "donkin-seen"
	SettingsKey    = "donkin-settings"
	LastRefreshKey = "last-refresh"
)

// KVStore persists opaque string records under independent keys. Writes to
// different keys are not transactional.
type KVStore interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
}

type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Load(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Save(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}
