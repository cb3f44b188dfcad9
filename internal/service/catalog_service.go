// Package service implements the application's business operations over the
// storage ports.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mfarias/biblioteca-api/internal/domain"
	"github.com/mfarias/biblioteca-api/internal/store"
)

// BookParams carries the mutable fields of a book for create and update
// operations.
type BookParams struct {
	Title    string
	Synopsis string
	Year     int
	ImageURL string
	ISBN     string
	Stock    int
	AuthorID uuid.UUID
	GenreID  uuid.UUID
}

// CatalogService provides query and write operations over the book catalog.
type CatalogService interface {
	// ListBooks returns summary data for every book matching the filter.
	// All filters are optional and conjunctive.
	ListBooks(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error)

	// GetBook retrieves a book with its author and genre joined eagerly.
	// Returns store.ErrBookNotFound if no book has that ID.
	GetBook(ctx context.Context, id uuid.UUID) (*store.BookDetail, error)

	// CreateBook validates that the referenced author and genre exist and
	// that the ISBN is unused, then persists a new book.
	// Returns ErrAuthorNotFound, ErrGenreNotFound or store.ErrISBNExists on
	// a validation failure.
	CreateBook(ctx context.Context, params BookParams) (*domain.Book, error)

	// UpdateBook replaces all mutable fields of an existing book.
	// The ISBN uniqueness check only runs when the ISBN actually changes,
	// so an update carrying the book's current ISBN always passes it.
	// Returns store.ErrBookNotFound if the ID is absent, plus the same
	// validation errors as CreateBook.
	UpdateBook(ctx context.Context, id uuid.UUID, params BookParams) error

	// DeleteBook removes a book.
	// Returns store.ErrBookNotFound if the ID is absent.
	DeleteBook(ctx context.Context, id uuid.UUID) error

	// ListAuthors returns every author with a derived count of the books
	// currently referencing them.
	ListAuthors(ctx context.Context) ([]*store.AuthorSummary, error)
}

// CatalogServiceImpl implements the CatalogService interface.
type CatalogServiceImpl struct {
	bookStore   store.BookStore
	authorStore store.AuthorStore
	genreStore  store.GenreStore
	logger      *slog.Logger
}

// Ensure CatalogServiceImpl implements CatalogService interface
var _ CatalogService = (*CatalogServiceImpl)(nil)

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	bookStore store.BookStore,
	authorStore store.AuthorStore,
	genreStore store.GenreStore,
	logger *slog.Logger,
) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		bookStore:   bookStore,
		authorStore: authorStore,
		genreStore:  genreStore,
		logger:      logger.With("component", "catalog_service"),
	}
}

// ListBooks returns all books matching the filter.
func (s *CatalogServiceImpl) ListBooks(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	books, err := s.bookStore.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list books", "error", err)
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	s.logger.Debug("listed books", "count", len(books))
	return books, nil
}

// GetBook retrieves a book with its author and genre.
func (s *CatalogServiceImpl) GetBook(ctx context.Context, id uuid.UUID) (*store.BookDetail, error) {
	detail, err := s.bookStore.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			s.logger.Debug("book not found", "book_id", id)
		} else {
			s.logger.Error("failed to retrieve book", "error", err, "book_id", id)
		}
		return nil, err
	}

	return detail, nil
}

// CreateBook validates the referenced rows and ISBN, then persists the book.
//
// The three checks and the insert are separate round trips, matching the
// endpoint's documented behavior; the schema's unique index and foreign keys
// close the remaining race, with the store mapping those violations to the
// same errors the checks produce.
func (s *CatalogServiceImpl) CreateBook(ctx context.Context, params BookParams) (*domain.Book, error) {
	if err := s.validateReferences(ctx, params); err != nil {
		return nil, err
	}

	exists, err := s.bookStore.ISBNExists(ctx, params.ISBN)
	if err != nil {
		s.logger.Error("failed to check ISBN uniqueness", "error", err)
		return nil, fmt.Errorf("failed to check ISBN uniqueness: %w", err)
	}
	if exists {
		s.logger.Debug("attempted to create book with existing ISBN")
		return nil, store.ErrISBNExists
	}

	book, err := domain.NewBook(
		params.Title,
		params.Synopsis,
		params.Year,
		params.ImageURL,
		params.ISBN,
		params.Stock,
		params.AuthorID,
		params.GenreID,
	)
	if err != nil {
		s.logger.Warn("invalid book data", "error", err)
		return nil, err
	}

	if err := s.bookStore.Create(ctx, book); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) || errors.Is(err, store.ErrISBNExists) {
			// A concurrent write invalidated one of the checks above.
			s.logger.Debug("book creation lost validation race", "error", err)
			return nil, err
		}
		s.logger.Error("failed to create book", "error", err, "book_id", book.ID)
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	s.logger.Info("book created", "book_id", book.ID, "title", book.Title)
	return book, nil
}

// UpdateBook replaces all mutable fields of an existing book in place.
func (s *CatalogServiceImpl) UpdateBook(ctx context.Context, id uuid.UUID, params BookParams) error {
	current, err := s.bookStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			s.logger.Debug("book not found during update", "book_id", id)
		} else {
			s.logger.Error("failed to retrieve book for update", "error", err, "book_id", id)
		}
		return err
	}

	if err := s.validateReferences(ctx, params); err != nil {
		return err
	}

	// ISBN uniqueness only matters when the value changes; updating a book
	// with its own current ISBN is always allowed.
	if params.ISBN != current.ISBN {
		exists, err := s.bookStore.ISBNExists(ctx, params.ISBN)
		if err != nil {
			s.logger.Error("failed to check ISBN uniqueness", "error", err)
			return fmt.Errorf("failed to check ISBN uniqueness: %w", err)
		}
		if exists {
			s.logger.Debug("attempted to update book to existing ISBN", "book_id", id)
			return store.ErrISBNExists
		}
	}

	current.Title = params.Title
	current.Synopsis = params.Synopsis
	current.Year = params.Year
	current.ImageURL = params.ImageURL
	current.ISBN = params.ISBN
	current.Stock = params.Stock
	current.AuthorID = params.AuthorID
	current.GenreID = params.GenreID

	if err := s.bookStore.Update(ctx, current); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) ||
			errors.Is(err, store.ErrISBNExists) ||
			errors.Is(err, store.ErrBookNotFound) {
			s.logger.Debug("book update rejected", "error", err, "book_id", id)
			return err
		}
		s.logger.Error("failed to update book", "error", err, "book_id", id)
		return fmt.Errorf("failed to update book: %w", err)
	}

	s.logger.Info("book updated", "book_id", id)
	return nil
}

// DeleteBook removes a book by ID.
func (s *CatalogServiceImpl) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := s.bookStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			s.logger.Debug("book not found during delete", "book_id", id)
			return err
		}
		s.logger.Error("failed to delete book", "error", err, "book_id", id)
		return fmt.Errorf("failed to delete book: %w", err)
	}

	s.logger.Info("book deleted", "book_id", id)
	return nil
}

// ListAuthors returns every author with a derived book count.
func (s *CatalogServiceImpl) ListAuthors(ctx context.Context) ([]*store.AuthorSummary, error) {
	authors, err := s.authorStore.ListWithBookCounts(ctx)
	if err != nil {
		s.logger.Error("failed to list authors", "error", err)
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}

	s.logger.Debug("listed authors", "count", len(authors))
	return authors, nil
}

// validateReferences verifies the author and genre referenced by the params
// exist. The two checks are independent reads; author is reported first when
// both are missing.
func (s *CatalogServiceImpl) validateReferences(ctx context.Context, params BookParams) error {
	authorExists, err := s.authorStore.Exists(ctx, params.AuthorID)
	if err != nil {
		s.logger.Error("failed to check author existence", "error", err, "author_id", params.AuthorID)
		return fmt.Errorf("failed to check author existence: %w", err)
	}
	if !authorExists {
		s.logger.Debug("referenced author not found", "author_id", params.AuthorID)
		return ErrAuthorNotFound
	}

	genreExists, err := s.genreStore.Exists(ctx, params.GenreID)
	if err != nil {
		s.logger.Error("failed to check genre existence", "error", err, "genre_id", params.GenreID)
		return fmt.Errorf("failed to check genre existence: %w", err)
	}
	if !genreExists {
		s.logger.Debug("referenced genre not found", "genre_id", params.GenreID)
		return ErrGenreNotFound
	}

	return nil
}
