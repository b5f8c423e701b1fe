// Package storage opens the document store selected by configuration.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driven/storage/bolt"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driven/storage/datastore"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driven/storage/memory"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driven/storage/mongo"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driven/storage/sqlite"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driven"
)

// Stores is an opened backend: both collections plus a way to release it.
type Stores struct {
	Backend     domain.StoreBackend
	Credentials driven.CredentialStore
	Groups      driven.GroupStore
	closer      func() error
}

// Close releases the backend's connection or file handle.
func (s *Stores) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer()
}

// Open connects to the backend named in settings.
func Open(ctx context.Context, settings domain.StoreSettings) (*Stores, error) {
	if !settings.Backend.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, settings.Backend)
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("store backend %q is not configured", settings.Backend)
	}

	out := &Stores{Backend: settings.Backend}

	switch settings.Backend {
	case domain.BackendMemory:
		out.Credentials = memory.NewCredentialStore()
		out.Groups = memory.NewGroupStore()

	case domain.BackendSQLite:
		s, err := sqlite.NewStore(settings.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		out.Credentials, out.Groups, out.closer = s.CredentialStore(), s.GroupStore(), s.Close

	case domain.BackendBolt:
		s, err := bolt.NewStore(settings.Path)
		if err != nil {
			return nil, fmt.Errorf("opening bolt store: %w", err)
		}
		out.Credentials, out.Groups, out.closer = s.CredentialStore(), s.GroupStore(), s.Close

	case domain.BackendMongo:
		s, err := mongo.NewStore(ctx, settings.MongoURI, settings.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("opening mongo store: %w", err)
		}
		out.Credentials, out.Groups, out.closer = s.CredentialStore(), s.GroupStore(), s.Close

	case domain.BackendDatastore:
		s, err := datastore.NewStore(ctx, settings.DatastoreProject, settings.DatastoreEndpoint)
		if err != nil {
			return nil, fmt.Errorf("opening datastore store: %w", err)
		}
		out.Credentials, out.Groups, out.closer = s.CredentialStore(), s.GroupStore(), s.Close
	}

	return out, nil
}

// DataDir returns the directory holding a local backend's file.
func DataDir(settings domain.StoreSettings) (string, error) {
	if settings.Path != "" {
		return settings.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".passman", "data"), nil
}
