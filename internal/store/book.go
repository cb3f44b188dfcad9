package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/mfarias/biblioteca-api/internal/domain"
)

// BookFilter narrows a book listing. Zero-valued fields are ignored.
// All populated filters are combined with AND.
type BookFilter struct {
	// Title matches books whose title contains this substring
	// (case-sensitive).
	Title string

	// ISBN matches exactly.
	ISBN string

	// AuthorID matches the book's author foreign key.
	AuthorID *uuid.UUID

	// GenreID matches the book's genre foreign key.
	GenreID *uuid.UUID
}

// BookDetail is a book joined eagerly with its author and genre rows.
type BookDetail struct {
	Book   domain.Book
	Author domain.Author
	Genre  domain.Genre
}

// BookStore defines the interface for book data persistence.
type BookStore interface {
	// Create saves a new book to the store.
	// Returns ErrISBNExists if the ISBN is already taken and
	// ErrInvalidEntity if the referenced author or genre does not exist.
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves a book by its unique ID.
	// Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)

	// GetDetail retrieves a book together with its author and genre.
	// Returns ErrBookNotFound if the book does not exist.
	GetDetail(ctx context.Context, id uuid.UUID) (*BookDetail, error)

	// List returns all books matching the filter, unpaginated.
	List(ctx context.Context, filter BookFilter) ([]*domain.Book, error)

	// Update replaces all mutable fields of an existing book.
	// Returns ErrBookNotFound if the book does not exist, ErrISBNExists on
	// an ISBN collision and ErrInvalidEntity on a missing author or genre.
	Update(ctx context.Context, book *domain.Book) error

	// Delete removes a book from the store by its ID.
	// Returns ErrBookNotFound if the book does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ISBNExists reports whether any book already uses the given ISBN.
	ISBNExists(ctx context.Context, isbn string) (bool, error)
}
