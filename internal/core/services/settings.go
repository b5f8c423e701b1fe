package services

import (
	"fmt"
	"strconv"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driven"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyStoreBackend      = "store.backend"
	KeyStorePath         = "store.path"
	KeyMongoURI          = "store.mongo_uri"
	KeyMongoDatabase     = "store.mongo_database"
	KeyDatastoreProject  = "store.datastore_project"
	KeyDatastoreEndpoint = "store.datastore_endpoint"
	KeyWebAddr           = "web.addr"
	KeyWebRateLimit      = "web.rate_limit"
	KeyWebBurst          = "web.burst"
	KeyLogFormat         = "log.format"
	KeyLogVerbose        = "log.verbose"
)

var settingKeys = []string{
	KeyStoreBackend,
	KeyStorePath,
	KeyMongoURI,
	KeyMongoDatabase,
	KeyDatastoreProject,
	KeyDatastoreEndpoint,
	KeyWebAddr,
	KeyWebRateLimit,
	KeyWebBurst,
	KeyLogFormat,
	KeyLogVerbose,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Store: domain.StoreSettings{
			Backend:           s.getBackend(defaults.Store.Backend),
			Path:              s.configStore.GetString(KeyStorePath),
			MongoURI:          s.configStore.GetString(KeyMongoURI),
			MongoDatabase:     s.getString(KeyMongoDatabase, defaults.Store.MongoDatabase),
			DatastoreProject:  s.configStore.GetString(KeyDatastoreProject),
			DatastoreEndpoint: s.configStore.GetString(KeyDatastoreEndpoint),
		},
		Web: domain.WebSettings{
			Addr:      s.getString(KeyWebAddr, defaults.Web.Addr),
			RateLimit: s.getFloat(KeyWebRateLimit, defaults.Web.RateLimit),
			Burst:     s.getInt(KeyWebBurst, defaults.Web.Burst),
		},
		Log: domain.LogSettings{
			Format:  s.getFormat(defaults.Log.Format),
			Verbose: s.getBool(KeyLogVerbose, defaults.Log.Verbose),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyStoreBackend, settings.Store.Backend.String()},
		{KeyStorePath, settings.Store.Path},
		{KeyMongoURI, settings.Store.MongoURI},
		{KeyMongoDatabase, settings.Store.MongoDatabase},
		{KeyDatastoreProject, settings.Store.DatastoreProject},
		{KeyDatastoreEndpoint, settings.Store.DatastoreEndpoint},
		{KeyWebAddr, settings.Web.Addr},
		{KeyWebRateLimit, settings.Web.RateLimit},
		{KeyWebBurst, settings.Web.Burst},
		{KeyLogFormat, settings.Log.Format},
		{KeyLogVerbose, settings.Log.Verbose},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value according to the key's type and persists it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	var parsed any
	switch key {
	case KeyStoreBackend:
		if !domain.StoreBackend(value).IsValid() {
			return fmt.Errorf("%w: %s", domain.ErrUnsupportedBackend, value)
		}
		parsed = value
	case KeyLogFormat:
		if value != "text" && value != "json" {
			return fmt.Errorf("%w: log format must be text or json", domain.ErrInvalidInput)
		}
		parsed = value
	case KeyWebBurst:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s must be a positive whole number", domain.ErrInvalidInput, key)
		}
		parsed = n
	case KeyWebRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, key)
		}
		parsed = f
	case KeyLogVerbose:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	case KeyStorePath, KeyMongoURI, KeyMongoDatabase, KeyDatastoreProject,
		KeyDatastoreEndpoint, KeyWebAddr:
		parsed = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.configStore.Set(key, parsed)
}

// Validate checks the current settings can open a store.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Store.IsConfigured() {
		switch settings.Store.Backend {
		case domain.BackendMongo:
			return fmt.Errorf("store backend %q requires %s", settings.Store.Backend, KeyMongoURI)
		case domain.BackendDatastore:
			return fmt.Errorf("store backend %q requires %s", settings.Store.Backend, KeyDatastoreProject)
		default:
			return fmt.Errorf("%w: %s", domain.ErrUnsupportedBackend, settings.Store.Backend)
		}
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Keys lists the settable keys in display order.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	val := domain.StoreBackend(s.configStore.GetString(KeyStoreBackend))
	if !val.IsValid() {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFormat(defaultVal string) string {
	switch val := s.configStore.GetString(KeyLogFormat); val {
	case "text", "json":
		return val
	default:
		return defaultVal
	}
}
