package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driven"
)

// Ensure GroupStore implements the interface.
var _ driven.GroupStore = (*GroupStore)(nil)

// GroupStore is an in-memory implementation of driven.GroupStore.
type GroupStore struct {
	mu   sync.RWMutex
	docs map[string]domain.GroupDocument
}

// NewGroupStore creates a new in-memory group store.
func NewGroupStore() *GroupStore {
	return &GroupStore{
		docs: make(map[string]domain.GroupDocument),
	}
}

// Save stores or replaces a group document.
// The member key slice is copied so later caller edits are not visible.
func (s *GroupStore) Save(_ context.Context, doc domain.GroupDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc.MemberKeys = append([]string(nil), doc.MemberKeys...)
	s.docs[doc.ID] = doc
	return nil
}

// List returns all group documents sorted by ID.
func (s *GroupStore) List(_ context.Context) ([]domain.GroupDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.GroupDocument, 0, len(s.docs))
	for _, doc := range s.docs {
		doc.MemberKeys = append([]string(nil), doc.MemberKeys...)
		result = append(result, doc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Delete removes a group document. Missing IDs are ignored.
func (s *GroupStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

// Clear removes every group document.
func (s *GroupStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string]domain.GroupDocument)
	return nil
}

// Len returns the number of stored documents.
func (s *GroupStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
