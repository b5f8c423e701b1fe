package file

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driven"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "PASSMAN_"

// Ensure EnvConfigStore implements the interface.
var _ driven.ConfigStore = (*EnvConfigStore)(nil)

// EnvConfigStore layers environment variables over another ConfigStore.
// The key "store.mongo_uri" is overridden by PASSMAN_STORE_MONGO_URI.
// Writes go to the underlying store; overrides are never persisted.
type EnvConfigStore struct {
	base   driven.ConfigStore
	lookup func(string) (string, bool)
}

// NewEnvConfigStore wraps base with overrides read from the process environment.
func NewEnvConfigStore(base driven.ConfigStore) *EnvConfigStore {
	return &EnvConfigStore{base: base, lookup: os.LookupEnv}
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without replacing variables that are already set.
// Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// EnvKey returns the environment variable that overrides key.
func EnvKey(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func (s *EnvConfigStore) env(key string) (string, bool) {
	v, ok := s.lookup(EnvKey(key))
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Get returns the override if set, else the underlying value.
func (s *EnvConfigStore) Get(key string) (any, bool) {
	if v, ok := s.env(key); ok {
		return v, true
	}
	return s.base.Get(key)
}

// GetString retrieves a string value.
func (s *EnvConfigStore) GetString(key string) string {
	if v, ok := s.env(key); ok {
		return v
	}
	return s.base.GetString(key)
}

// GetInt retrieves an integer value. An unparsable override reads as 0.
func (s *EnvConfigStore) GetInt(key string) int {
	if v, ok := s.env(key); ok {
		n, _ := strconv.Atoi(v)
		return n
	}
	return s.base.GetInt(key)
}

// GetFloat retrieves a float value. An unparsable override reads as 0.
func (s *EnvConfigStore) GetFloat(key string) float64 {
	if v, ok := s.env(key); ok {
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return s.base.GetFloat(key)
}

// GetBool retrieves a boolean value. An unparsable override reads as false.
func (s *EnvConfigStore) GetBool(key string) bool {
	if v, ok := s.env(key); ok {
		b, _ := strconv.ParseBool(v)
		return b
	}
	return s.base.GetBool(key)
}

// Set writes to the underlying store.
func (s *EnvConfigStore) Set(key string, value any) error {
	return s.base.Set(key, value)
}

// Save persists the underlying store.
func (s *EnvConfigStore) Save() error {
	return s.base.Save()
}

// Load reloads the underlying store.
func (s *EnvConfigStore) Load() error {
	return s.base.Load()
}

// Path returns the underlying store's path.
func (s *EnvConfigStore) Path() string {
	return s.base.Path()
}
