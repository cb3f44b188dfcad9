package store

import (
	"context"

	"github.com/google/uuid"
)

// GenreStore defines the interface for genre data persistence.
type GenreStore interface {
	// Exists reports whether a genre with the given ID is present.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
