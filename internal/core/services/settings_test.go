package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driven/storage/memory"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NotNil(t, service)
	assert.NotNil(t, service.configStore)
}

func TestSettingsService_NilStore(t *testing.T) {
	service := NewSettingsService(nil)

	_, err := service.Get()
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, service.Set(KeyWebAddr, "x"), domain.ErrNotImplemented)
	assert.ErrorIs(t, service.Save(&domain.AppSettings{}), domain.ErrNotImplemented)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyStoreBackend, "mongo")
	_ = store.Set(KeyMongoURI, "mongodb://localhost:27017")
	_ = store.Set(KeyWebBurst, 5)
	_ = store.Set(KeyWebRateLimit, 2.5)
	_ = store.Set(KeyLogFormat, "json")
	_ = store.Set(KeyLogVerbose, true)
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.BackendMongo, settings.Store.Backend)
	assert.Equal(t, "mongodb://localhost:27017", settings.Store.MongoURI)
	assert.Equal(t, "passman", settings.Store.MongoDatabase)
	assert.Equal(t, 5, settings.Web.Burst)
	assert.InDelta(t, 2.5, settings.Web.RateLimit, 0.0001)
	assert.Equal(t, "json", settings.Log.Format)
	assert.True(t, settings.Log.Verbose)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyStoreBackend, "cassandra")
	_ = store.Set(KeyLogFormat, "xml")
	_ = store.Set(KeyWebBurst, -3)
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.BackendSQLite, settings.Store.Backend)
	assert.Equal(t, "text", settings.Log.Format)
	assert.Equal(t, 20, settings.Web.Burst)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	want := domain.DefaultAppSettings()
	want.Store.Backend = domain.BackendBolt
	want.Store.Path = "/tmp/passman"
	want.Web.Addr = ":9090"
	want.Log.Verbose = true

	require.NoError(t, service.Save(&want))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"backend", KeyStoreBackend, "bolt", nil},
		{"unknown backend", KeyStoreBackend, "redis", domain.ErrUnsupportedBackend},
		{"format", KeyLogFormat, "json", nil},
		{"bad format", KeyLogFormat, "yaml", domain.ErrInvalidInput},
		{"burst", KeyWebBurst, "3", nil},
		{"zero burst", KeyWebBurst, "0", domain.ErrInvalidInput},
		{"rate", KeyWebRateLimit, "0.5", nil},
		{"bad rate", KeyWebRateLimit, "fast", domain.ErrInvalidInput},
		{"verbose", KeyLogVerbose, "true", nil},
		{"bad verbose", KeyLogVerbose, "sometimes", domain.ErrInvalidInput},
		{"addr", KeyWebAddr, ":8081", nil},
		{"unknown key", "ui.theme", "dark", domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())
			err := service.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSettingsService_Set_ParsesTypes(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set(KeyWebBurst, "7"))
	require.NoError(t, service.Set(KeyLogVerbose, "true"))

	assert.Equal(t, 7, store.GetInt(KeyWebBurst))
	assert.True(t, store.GetBool(KeyLogVerbose))
}

func TestSettingsService_Validate(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	assert.NoError(t, service.Validate())

	_ = store.Set(KeyStoreBackend, "mongo")
	err := service.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyMongoURI)

	_ = store.Set(KeyStoreBackend, "datastore")
	err = service.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyDatastoreProject)

	_ = store.Set(KeyDatastoreProject, "demo")
	assert.NoError(t, service.Validate())
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()
	keys[0] = "mutated"

	assert.Equal(t, KeyStoreBackend, service.Keys()[0])
	assert.Len(t, service.Keys(), 11)
}
