package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/mfarias/biblioteca-api/internal/store"
)

// MockAuthorStore implements store.AuthorStore for testing
type MockAuthorStore struct {
	// Function fields for customizable behavior
	ExistsFn             func(ctx context.Context, id uuid.UUID) (bool, error)
	ListWithBookCountsFn func(ctx context.Context) ([]*store.AuthorSummary, error)

	// Data for default implementation
	ExistingIDs map[uuid.UUID]bool
	Summaries   []*store.AuthorSummary

	// Errors returned by the default implementation when set
	ExistsError error
	ListError   error
}

// NewMockAuthorStore creates a new mock store with initialized defaults
func NewMockAuthorStore() *MockAuthorStore {
	return &MockAuthorStore{
		ExistingIDs: make(map[uuid.UUID]bool),
	}
}

// Exists implements the AuthorStore interface
func (m *MockAuthorStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}

	if m.ExistsError != nil {
		return false, m.ExistsError
	}

	return m.ExistingIDs[id], nil
}

// ListWithBookCounts implements the AuthorStore interface
func (m *MockAuthorStore) ListWithBookCounts(ctx context.Context) ([]*store.AuthorSummary, error) {
	if m.ListWithBookCountsFn != nil {
		return m.ListWithBookCountsFn(ctx)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	return m.Summaries, nil
}

// Ensure MockAuthorStore implements store.AuthorStore
var _ store.AuthorStore = (*MockAuthorStore)(nil)
