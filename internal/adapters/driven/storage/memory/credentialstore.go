package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore is an in-memory implementation of driven.CredentialStore.
type CredentialStore struct {
	mu   sync.RWMutex
	docs map[string]domain.CredentialDocument
}

// NewCredentialStore creates a new in-memory credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		docs: make(map[string]domain.CredentialDocument),
	}
}

// Save stores or replaces a credential document.
func (s *CredentialStore) Save(_ context.Context, doc domain.CredentialDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	return nil
}

// List returns all credential documents sorted by ID.
func (s *CredentialStore) List(_ context.Context) ([]domain.CredentialDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.CredentialDocument, 0, len(s.docs))
	for _, doc := range s.docs {
		result = append(result, doc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Clear removes every credential document.
func (s *CredentialStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string]domain.CredentialDocument)
	return nil
}

// Len returns the number of stored documents.
func (s *CredentialStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
