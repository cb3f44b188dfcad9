package store

import (
	"context"

	"github.com/google/uuid"
)

// AuthorSummary is an author projection with the number of books currently
// referencing the author. The count is derived at query time, never stored.
type AuthorSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Nationality string    `json:"nationality"`
	BookCount   int       `json:"book_count"`
}

// AuthorStore defines the interface for author data persistence.
type AuthorStore interface {
	// Exists reports whether an author with the given ID is present.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ListWithBookCounts returns every author with a derived book count.
	ListWithBookCounts(ctx context.Context) ([]*AuthorSummary, error)
}
