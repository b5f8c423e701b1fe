package domain

const unknownDescription = "Unknown"

// StoreBackend identifies the document store holding the two collections.
type StoreBackend string

// Available storage backends.
const (
	// BackendMemory keeps everything in process memory. Nothing survives exit.
	BackendMemory StoreBackend = "memory"

	// BackendSQLite stores JSON documents in a local SQLite database.
	BackendSQLite StoreBackend = "sqlite"

	// BackendBolt stores JSON documents in a local bbolt file.
	BackendBolt StoreBackend = "bolt"

	// BackendMongo stores documents in a MongoDB database.
	BackendMongo StoreBackend = "mongo"

	// BackendDatastore stores entities in Google Cloud Datastore.
	BackendDatastore StoreBackend = "datastore"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case BackendMemory, BackendSQLite, BackendBolt, BackendMongo, BackendDatastore:
		return true
	default:
		return false
	}
}

// IsLocal returns true if the backend lives in a local file.
func (b StoreBackend) IsLocal() bool {
	return b == BackendSQLite || b == BackendBolt
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case BackendMemory:
		return "Memory (not persisted)"
	case BackendSQLite:
		return "SQLite (local file)"
	case BackendBolt:
		return "Bolt (local file)"
	case BackendMongo:
		return "MongoDB (connection string)"
	case BackendDatastore:
		return "Cloud Datastore (project)"
	default:
		return unknownDescription
	}
}

// AllStoreBackends returns all available storage backends.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{
		BackendSQLite,
		BackendBolt,
		BackendMongo,
		BackendDatastore,
		BackendMemory,
	}
}

// StoreSettings holds document store configuration.
type StoreSettings struct {
	// Backend selects the store implementation.
	Backend StoreBackend

	// Path is the data directory for local backends.
	// Empty means ~/.passman/data.
	Path string

	// MongoURI is the MongoDB connection string.
	MongoURI string

	// MongoDatabase is the MongoDB database name.
	MongoDatabase string

	// DatastoreProject is the Google Cloud project ID.
	DatastoreProject string

	// DatastoreEndpoint overrides the Datastore endpoint (e.g. the emulator).
	DatastoreEndpoint string
}

// IsConfigured returns true if the backend has what it needs to connect.
func (s StoreSettings) IsConfigured() bool {
	switch s.Backend {
	case BackendMemory, BackendSQLite, BackendBolt:
		return true
	case BackendMongo:
		return s.MongoURI != ""
	case BackendDatastore:
		return s.DatastoreProject != ""
	default:
		return false
	}
}

// WebSettings holds the browser front end configuration.
type WebSettings struct {
	// Addr is the listen address.
	Addr string

	// RateLimit is the sustained requests per second allowed per client.
	RateLimit float64

	// Burst is the number of requests a client may make at once.
	Burst int
}

// LogSettings holds logging configuration.
type LogSettings struct {
	// Format is "text" or "json" for structured server logs.
	Format string

	// Verbose enables debug output.
	Verbose bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Store holds document store settings.
	Store StoreSettings

	// Web holds browser front end settings.
	Web WebSettings

	// Log holds logging settings.
	Log LogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Store: StoreSettings{
			Backend:       BackendSQLite,
			MongoDatabase: "passman",
		},
		Web: WebSettings{
			Addr:      "127.0.0.1:8080",
			RateLimit: 10,
			Burst:     20,
		},
		Log: LogSettings{
			Format: "text",
		},
	}
}
