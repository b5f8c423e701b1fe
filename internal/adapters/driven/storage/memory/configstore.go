package memory

import (
	"sync"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore holds passman settings in a map. Tests use it in place of
// the TOML file store; nothing is ever written to disk.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty store. Every setting reads as its default.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

// Get returns the raw value stored under key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// typed returns the value under key if it has type T, else T's zero value.
func typed[T any](s *ConfigStore, key string) T {
	var zero T
	val, ok := s.Get(key)
	if !ok {
		return zero
	}
	if v, ok := val.(T); ok {
		return v
	}
	return zero
}

// number widens the numeric kinds a decoded TOML or JSON value may take.
func (s *ConfigStore) number(key string) (float64, bool) {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// GetString returns a string setting such as the store backend or path.
func (s *ConfigStore) GetString(key string) string { return typed[string](s, key) }

// GetBool returns a boolean setting such as verbose logging.
func (s *ConfigStore) GetBool(key string) bool { return typed[bool](s, key) }

// GetInt returns a numeric setting truncated to int, e.g. the web burst.
func (s *ConfigStore) GetInt(key string) int {
	n, _ := s.number(key)
	return int(n)
}

// GetFloat returns a numeric setting, e.g. the web rate limit.
func (s *ConfigStore) GetFloat(key string) float64 {
	n, _ := s.number(key)
	return n
}

// Set stores value under key.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save is a no-op.
func (s *ConfigStore) Save() error { return nil }

// Load is a no-op.
func (s *ConfigStore) Load() error { return nil }

// Path reports that the settings live in memory.
func (s *ConfigStore) Path() string { return ":memory:" }
