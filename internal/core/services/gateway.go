package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driven"
)

// Gateway is the only component that performs I/O against the document
// store. It translates entities to and from documents.
// Failures are wrapped and returned; nothing is retried.
type Gateway struct {
	credentials driven.CredentialStore
	groups      driven.GroupStore
}

// NewGateway creates a gateway over the two collections.
func NewGateway(credentials driven.CredentialStore, groups driven.GroupStore) *Gateway {
	return &Gateway{
		credentials: credentials,
		groups:      groups,
	}
}

func (g *Gateway) ready() error {
	if g == nil || g.credentials == nil || g.groups == nil {
		return domain.ErrNotImplemented
	}
	return nil
}

// FetchAll reads both collections and materialises every entity.
// Group members are resolved against the credentials just read; a member
// key with no credential document fails the whole fetch.
func (g *Gateway) FetchAll(ctx context.Context) (*domain.Snapshot, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}

	credDocs, err := g.credentials.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing credentials: %w", err)
	}

	snap := &domain.Snapshot{Credentials: make([]*domain.Credential, 0, len(credDocs))}
	for _, doc := range credDocs {
		c, err := domain.CredentialFromDocument(doc)
		if err != nil {
			return nil, err
		}
		snap.Credentials = append(snap.Credentials, c)
	}
	sort.Slice(snap.Credentials, func(i, j int) bool {
		return snap.Credentials[i].Key() < snap.Credentials[j].Key()
	})

	groupDocs, err := g.groups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}

	byKey := snap.CredentialsByKey()
	snap.Groups = make([]*domain.Group, 0, len(groupDocs))
	for _, doc := range groupDocs {
		grp, err := domain.GroupFromDocument(doc, byKey)
		if err != nil {
			return nil, err
		}
		snap.Groups = append(snap.Groups, grp)
	}
	sort.Slice(snap.Groups, func(i, j int) bool {
		return snap.Groups[i].Key() < snap.Groups[j].Key()
	})

	return snap, nil
}

// UpsertCredential creates or replaces the credential's document.
func (g *Gateway) UpsertCredential(ctx context.Context, c *domain.Credential) error {
	if err := g.ready(); err != nil {
		return err
	}
	if err := g.credentials.Save(ctx, c.ToDocument()); err != nil {
		return fmt.Errorf("saving credential %q: %w", c.Key(), err)
	}
	return nil
}

// UpsertGroup creates or replaces the group's document.
func (g *Gateway) UpsertGroup(ctx context.Context, grp *domain.Group) error {
	if err := g.ready(); err != nil {
		return err
	}
	if err := g.groups.Save(ctx, grp.ToDocument()); err != nil {
		return fmt.Errorf("saving group %q: %w", grp.Name, err)
	}
	return nil
}

// DeleteGroup removes the group's document. Credentials are untouched.
func (g *Gateway) DeleteGroup(ctx context.Context, grp *domain.Group) error {
	if err := g.ready(); err != nil {
		return err
	}
	if err := g.groups.Delete(ctx, grp.Name); err != nil {
		return fmt.Errorf("deleting group %q: %w", grp.Name, err)
	}
	return nil
}

// ResetSeedData drops both collections and writes the demonstration data.
func (g *Gateway) ResetSeedData(ctx context.Context) error {
	if err := g.ready(); err != nil {
		return err
	}

	if err := g.groups.Clear(ctx); err != nil {
		return fmt.Errorf("clearing groups: %w", err)
	}
	if err := g.credentials.Clear(ctx); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}

	seed := domain.SeedData()
	for _, c := range seed.Credentials {
		if err := g.UpsertCredential(ctx, c); err != nil {
			return err
		}
	}
	for _, grp := range seed.Groups {
		if err := g.UpsertGroup(ctx, grp); err != nil {
			return err
		}
	}
	return nil
}
