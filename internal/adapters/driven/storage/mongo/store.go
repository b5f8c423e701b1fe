// Package mongo stores the credentials and groups collections in MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driven"
)

// Store wraps a MongoDB database holding both collections.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to uri and selects database. The connection is pinged
// before returning.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is required")
	}
	if database == "" {
		database = "passman"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

// Drop removes the whole database. Used by tests.
func (s *Store) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}

// CredentialStore returns the credentials collection.
func (s *Store) CredentialStore() driven.CredentialStore {
	return &credentialStore{coll: s.db.Collection(domain.CredentialsCollection)}
}

// GroupStore returns the groups collection.
func (s *Store) GroupStore() driven.GroupStore {
	return &groupStore{coll: s.db.Collection(domain.GroupsCollection)}
}

var sortByID = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

func upsert(ctx context.Context, coll *mongo.Collection, id string, doc any) error {
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

type credentialStore struct {
	coll *mongo.Collection
}

var _ driven.CredentialStore = (*credentialStore)(nil)

func (s *credentialStore) Save(ctx context.Context, doc domain.CredentialDocument) error {
	if err := upsert(ctx, s.coll, doc.ID, doc); err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	return nil
}

func (s *credentialStore) List(ctx context.Context) ([]domain.CredentialDocument, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, sortByID)
	if err != nil {
		return nil, fmt.Errorf("finding credentials: %w", err)
	}
	var docs []domain.CredentialDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding credentials: %w", err)
	}
	return docs, nil
}

func (s *credentialStore) Clear(ctx context.Context) error {
	if _, err := s.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

type groupStore struct {
	coll *mongo.Collection
}

var _ driven.GroupStore = (*groupStore)(nil)

func (s *groupStore) Save(ctx context.Context, doc domain.GroupDocument) error {
	if doc.MemberKeys == nil {
		doc.MemberKeys = []string{}
	}
	if err := upsert(ctx, s.coll, doc.ID, doc); err != nil {
		return fmt.Errorf("saving group: %w", err)
	}
	return nil
}

func (s *groupStore) List(ctx context.Context) ([]domain.GroupDocument, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, sortByID)
	if err != nil {
		return nil, fmt.Errorf("finding groups: %w", err)
	}
	var docs []domain.GroupDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding groups: %w", err)
	}
	return docs, nil
}

func (s *groupStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("deleting group: %w", err)
	}
	return nil
}

func (s *groupStore) Clear(ctx context.Context) error {
	if _, err := s.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clearing groups: %w", err)
	}
	return nil
}
