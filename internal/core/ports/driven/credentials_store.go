package driven

import (
	"context"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
)

// CredentialStore persists credential documents in the "credentials" collection.
// Documents are keyed by CredentialDocument.ID.
type CredentialStore interface {
	// Save creates or replaces the document with doc.ID.
	// Saving the same document twice leaves the store unchanged.
	Save(ctx context.Context, doc domain.CredentialDocument) error

	// List returns every credential document. Order is unspecified.
	List(ctx context.Context) ([]domain.CredentialDocument, error)

	// Clear removes every credential document.
	Clear(ctx context.Context) error
}

// GroupStore persists group documents in the "groups" collection.
// Documents are keyed by GroupDocument.ID.
type GroupStore interface {
	// Save creates or replaces the document with doc.ID.
	Save(ctx context.Context, doc domain.GroupDocument) error

	// List returns every group document. Order is unspecified.
	List(ctx context.Context) ([]domain.GroupDocument, error)

	// Delete removes the document with the given ID.
	// Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	// Clear removes every group document.
	Clear(ctx context.Context) error
}
