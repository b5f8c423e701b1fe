// Package bolt stores the credentials and groups collections in a single
// bbolt file, one bucket per collection, values JSON-encoded.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driven"
)

const dbFile = "passman.bolt"

// Store is a bbolt-backed document store.
type Store struct {
	db   *bbolt.DB
	path string
}

// NewStore opens (or creates) the bolt file in dataDir.
// If dataDir is empty, defaults to ~/.passman/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".passman", "data")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, dbFile)
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening bolt file: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{domain.CredentialsCollection, domain.GroupsCollection} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the bolt file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the bolt file path.
func (s *Store) Path() string {
	return s.path
}

// CredentialStore returns the credentials collection.
func (s *Store) CredentialStore() driven.CredentialStore {
	return &credentialStore{store: s}
}

// GroupStore returns the groups collection.
func (s *Store) GroupStore() driven.GroupStore {
	return &groupStore{store: s}
}

func (s *Store) put(ctx context.Context, bucket, id string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	val, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(id), val)
	})
}

// each decodes every value in bucket in key order.
func (s *Store) each(ctx context.Context, bucket string, fn func(val []byte) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucket)).ForEach(func(_, v []byte) error {
			return fn(v)
		})
	})
}

// clear drops and recreates bucket.
func (s *Store) clear(ctx context.Context, bucket string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucket))
		return err
	})
}

type credentialStore struct {
	store *Store
}

var _ driven.CredentialStore = (*credentialStore)(nil)

func (s *credentialStore) Save(ctx context.Context, doc domain.CredentialDocument) error {
	if err := s.store.put(ctx, domain.CredentialsCollection, doc.ID, doc); err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	return nil
}

func (s *credentialStore) List(ctx context.Context) ([]domain.CredentialDocument, error) {
	var docs []domain.CredentialDocument
	err := s.store.each(ctx, domain.CredentialsCollection, func(val []byte) error {
		var doc domain.CredentialDocument
		if err := json.Unmarshal(val, &doc); err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing credentials: %w", err)
	}
	return docs, nil
}

func (s *credentialStore) Clear(ctx context.Context) error {
	if err := s.store.clear(ctx, domain.CredentialsCollection); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

type groupStore struct {
	store *Store
}

var _ driven.GroupStore = (*groupStore)(nil)

func (s *groupStore) Save(ctx context.Context, doc domain.GroupDocument) error {
	if doc.MemberKeys == nil {
		doc.MemberKeys = []string{}
	}
	if err := s.store.put(ctx, domain.GroupsCollection, doc.ID, doc); err != nil {
		return fmt.Errorf("saving group: %w", err)
	}
	return nil
}

func (s *groupStore) List(ctx context.Context) ([]domain.GroupDocument, error) {
	var docs []domain.GroupDocument
	err := s.store.each(ctx, domain.GroupsCollection, func(val []byte) error {
		var doc domain.GroupDocument
		if err := json.Unmarshal(val, &doc); err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	return docs, nil
}

// Delete removes a group. Deleting a missing key is a no-op in bbolt.
func (s *groupStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(domain.GroupsCollection)).Delete([]byte(id))
	})
	if err != nil {
		return fmt.Errorf("deleting group: %w", err)
	}
	return nil
}

func (s *groupStore) Clear(ctx context.Context) error {
	if err := s.store.clear(ctx, domain.GroupsCollection); err != nil {
		return fmt.Errorf("clearing groups: %w", err)
	}
	return nil
}
