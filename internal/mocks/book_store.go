package mocks

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mfarias/biblioteca-api/internal/domain"
	"github.com/mfarias/biblioteca-api/internal/store"
)

// MockBookStore implements store.BookStore for testing
type MockBookStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, book *domain.Book) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	GetDetailFn  func(ctx context.Context, id uuid.UUID) (*store.BookDetail, error)
	ListFn       func(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error)
	UpdateFn     func(ctx context.Context, book *domain.Book) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
	ISBNExistsFn func(ctx context.Context, isbn string) (bool, error)

	// Data for default implementation, keyed by book ID
	Books map[uuid.UUID]*domain.Book

	// Errors returned by the default implementation when set
	CreateError error
	ListError   error
	UpdateError error
}

// NewMockBookStore creates a new mock store with initialized defaults
func NewMockBookStore() *MockBookStore {
	return &MockBookStore{
		Books: make(map[uuid.UUID]*domain.Book),
	}
}

// Create implements the BookStore interface
func (m *MockBookStore) Create(ctx context.Context, book *domain.Book) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, book)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	for _, existing := range m.Books {
		if existing.ISBN == book.ISBN {
			return store.ErrISBNExists
		}
	}

	m.Books[book.ID] = book
	return nil
}

// GetByID implements the BookStore interface
func (m *MockBookStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	book, exists := m.Books[id]
	if !exists {
		return nil, store.ErrBookNotFound
	}
	return book, nil
}

// GetDetail implements the BookStore interface
func (m *MockBookStore) GetDetail(ctx context.Context, id uuid.UUID) (*store.BookDetail, error) {
	if m.GetDetailFn != nil {
		return m.GetDetailFn(ctx, id)
	}

	book, exists := m.Books[id]
	if !exists {
		return nil, store.ErrBookNotFound
	}
	return &store.BookDetail{Book: *book}, nil
}

// List implements the BookStore interface. The default implementation
// applies the filter the same way the persistent store does: conjunctive,
// with a case-sensitive substring match on the title.
func (m *MockBookStore) List(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	var books []*domain.Book
	for _, book := range m.Books {
		if filter.Title != "" && !strings.Contains(book.Title, filter.Title) {
			continue
		}
		if filter.ISBN != "" && book.ISBN != filter.ISBN {
			continue
		}
		if filter.AuthorID != nil && book.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.GenreID != nil && book.GenreID != *filter.GenreID {
			continue
		}
		books = append(books, book)
	}
	return books, nil
}

// Update implements the BookStore interface
func (m *MockBookStore) Update(ctx context.Context, book *domain.Book) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, book)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	if _, exists := m.Books[book.ID]; !exists {
		return store.ErrBookNotFound
	}
	m.Books[book.ID] = book
	return nil
}

// Delete implements the BookStore interface
func (m *MockBookStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Books[id]; !exists {
		return store.ErrBookNotFound
	}
	delete(m.Books, id)
	return nil
}

// ISBNExists implements the BookStore interface
func (m *MockBookStore) ISBNExists(ctx context.Context, isbn string) (bool, error) {
	if m.ISBNExistsFn != nil {
		return m.ISBNExistsFn(ctx, isbn)
	}

	for _, book := range m.Books {
		if book.ISBN == isbn {
			return true, nil
		}
	}
	return false, nil
}

// Ensure MockBookStore implements store.BookStore
var _ store.BookStore = (*MockBookStore)(nil)
