package driving

import (
	"context"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
)

// VaultService is the working set every front end drives: the credentials
// and groups loaded from the store, plus the operations that change them.
// Every mutation is written through to the store before it returns.
// Returned entities are copies; mutating them has no effect on the vault.
type VaultService interface {
	// Load replaces the working set with a fresh read of the store.
	Load(ctx context.Context) error

	// ListGroups returns every group, sorted by key.
	ListGroups(ctx context.Context) ([]*domain.Group, error)

	// GetGroup looks a group up by name, case-insensitively.
	GetGroup(ctx context.Context, name string) (*domain.Group, error)

	// CreateGroup creates an empty group. The name is normalised and must
	// not collide with an existing group.
	CreateGroup(ctx context.Context, name string, securityFactor int) (*domain.Group, error)

	// DeleteGroup removes a group. Its credentials are kept.
	DeleteGroup(ctx context.Context, name string) error

	// ListCredentials returns every credential, sorted by key.
	ListCredentials(ctx context.Context) ([]*domain.Credential, error)

	// GetCredential looks a credential up by key, case-insensitively.
	GetCredential(ctx context.Context, key string) (*domain.Credential, error)

	// AddCredential stores a new credential and adds it to the named group.
	// A credential with the same key must not already exist.
	// An empty last-changed date is set to today.
	AddCredential(ctx context.Context, groupName string, cred *domain.Credential) (*domain.Credential, error)

	// AddToGroup adds an existing credential to a group.
	AddToGroup(ctx context.Context, groupName, key string) error

	// RemoveFromGroup removes a credential from a group.
	// Removing a non-member fails with domain.ErrNotFound.
	RemoveFromGroup(ctx context.Context, groupName, key string) error

	// ChangePassword replaces a credential's password and stamps today's date.
	ChangePassword(ctx context.Context, key, password string) (*domain.Credential, error)

	// UnionGroups stores and returns the union of two groups.
	UnionGroups(ctx context.Context, first, second string) (*domain.Group, error)

	// Reset drops both collections, writes the demonstration data and reloads.
	Reset(ctx context.Context) error
}
