// Package datastore stores the credentials and groups collections as
// Google Cloud Datastore kinds of the same names.
package datastore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/datastore"
	"google.golang.org/api/option"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driven"
)

// Store wraps a Datastore client.
type Store struct {
	client *datastore.Client
}

// NewStore creates a client for projectID. A non-empty endpoint (such as
// the emulator host) overrides the default.
func NewStore(ctx context.Context, projectID, endpoint string) (*Store, error) {
	if projectID == "" {
		return nil, errors.New("datastore project is required")
	}

	var opts []option.ClientOption
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	client, err := datastore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating datastore client: %w", err)
	}
	return NewStoreWithClient(client), nil
}

// NewStoreWithClient wraps an existing client.
func NewStoreWithClient(client *datastore.Client) *Store {
	return &Store{client: client}
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// CredentialStore returns the credentials kind.
func (s *Store) CredentialStore() driven.CredentialStore {
	return &credentialStore{client: s.client}
}

// GroupStore returns the groups kind.
func (s *Store) GroupStore() driven.GroupStore {
	return &groupStore{client: s.client}
}

func clearKind(ctx context.Context, client *datastore.Client, kind string) error {
	keys, err := client.GetAll(ctx, datastore.NewQuery(kind).KeysOnly(), nil)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return client.DeleteMulti(ctx, keys)
}

type credentialStore struct {
	client *datastore.Client
}

var _ driven.CredentialStore = (*credentialStore)(nil)

func credentialKey(id string) *datastore.Key {
	return datastore.NameKey(domain.CredentialsCollection, id, nil)
}

func (s *credentialStore) Save(ctx context.Context, doc domain.CredentialDocument) error {
	if _, err := s.client.Put(ctx, credentialKey(doc.ID), &doc); err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	return nil
}

func (s *credentialStore) List(ctx context.Context) ([]domain.CredentialDocument, error) {
	var docs []domain.CredentialDocument
	q := datastore.NewQuery(domain.CredentialsCollection).Order("__key__")
	if _, err := s.client.GetAll(ctx, q, &docs); err != nil {
		return nil, fmt.Errorf("listing credentials: %w", err)
	}
	return docs, nil
}

func (s *credentialStore) Clear(ctx context.Context) error {
	if err := clearKind(ctx, s.client, domain.CredentialsCollection); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

type groupStore struct {
	client *datastore.Client
}

var _ driven.GroupStore = (*groupStore)(nil)

func groupKey(id string) *datastore.Key {
	return datastore.NameKey(domain.GroupsCollection, id, nil)
}

func (s *groupStore) Save(ctx context.Context, doc domain.GroupDocument) error {
	if _, err := s.client.Put(ctx, groupKey(doc.ID), &doc); err != nil {
		return fmt.Errorf("saving group: %w", err)
	}
	return nil
}

func (s *groupStore) List(ctx context.Context) ([]domain.GroupDocument, error) {
	var docs []domain.GroupDocument
	q := datastore.NewQuery(domain.GroupsCollection).Order("__key__")
	if _, err := s.client.GetAll(ctx, q, &docs); err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	for i := range docs {
		if docs[i].MemberKeys == nil {
			docs[i].MemberKeys = []string{}
		}
	}
	return docs, nil
}

// Delete removes a group. Datastore treats deleting a missing key as success.
func (s *groupStore) Delete(ctx context.Context, id string) error {
	err := s.client.Delete(ctx, groupKey(id))
	if err != nil && !errors.Is(err, datastore.ErrNoSuchEntity) {
		return fmt.Errorf("deleting group: %w", err)
	}
	return nil
}

func (s *groupStore) Clear(ctx context.Context) error {
	if err := clearKind(ctx, s.client, domain.GroupsCollection); err != nil {
		return fmt.Errorf("clearing groups: %w", err)
	}
	return nil
}
