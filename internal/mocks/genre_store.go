package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/mfarias/biblioteca-api/internal/store"
)

// MockGenreStore implements store.GenreStore for testing
type MockGenreStore struct {
	// ExistsFn allows test cases to mock the Exists behavior
	ExistsFn func(ctx context.Context, id uuid.UUID) (bool, error)

	// Data for default implementation
	ExistingIDs map[uuid.UUID]bool

	// ExistsError is returned by the default implementation when set
	ExistsError error
}

// NewMockGenreStore creates a new mock store with initialized defaults
func NewMockGenreStore() *MockGenreStore {
	return &MockGenreStore{
		ExistingIDs: make(map[uuid.UUID]bool),
	}
}

// Exists implements the GenreStore interface
func (m *MockGenreStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}

	if m.ExistsError != nil {
		return false, m.ExistsError
	}

	return m.ExistingIDs[id], nil
}

// Ensure MockGenreStore implements store.GenreStore
var _ store.GenreStore = (*MockGenreStore)(nil)
