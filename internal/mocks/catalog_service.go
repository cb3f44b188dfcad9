package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/mfarias/biblioteca-api/internal/domain"
	"github.com/mfarias/biblioteca-api/internal/service"
	"github.com/mfarias/biblioteca-api/internal/store"
)

// MockCatalogService implements service.CatalogService for testing
type MockCatalogService struct {
	// Function fields for customizable behavior
	ListBooksFn   func(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error)
	GetBookFn     func(ctx context.Context, id uuid.UUID) (*store.BookDetail, error)
	CreateBookFn  func(ctx context.Context, params service.BookParams) (*domain.Book, error)
	UpdateBookFn  func(ctx context.Context, id uuid.UUID, params service.BookParams) error
	DeleteBookFn  func(ctx context.Context, id uuid.UUID) error
	ListAuthorsFn func(ctx context.Context) ([]*store.AuthorSummary, error)

	// Call counters for test verification
	ListBooksCallCount   int
	GetBookCallCount     int
	CreateBookCallCount  int
	UpdateBookCallCount  int
	DeleteBookCallCount  int
	ListAuthorsCallCount int

	// Default values used when functions aren't explicitly defined
	Books    []*domain.Book
	Detail   *store.BookDetail
	Created  *domain.Book
	Authors  []*store.AuthorSummary
	Err      error
	WriteErr error
}

// ListBooks implements the service.CatalogService interface
func (m *MockCatalogService) ListBooks(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	m.ListBooksCallCount++
	if m.ListBooksFn != nil {
		return m.ListBooksFn(ctx, filter)
	}
	return m.Books, m.Err
}

// GetBook implements the service.CatalogService interface
func (m *MockCatalogService) GetBook(ctx context.Context, id uuid.UUID) (*store.BookDetail, error) {
	m.GetBookCallCount++
	if m.GetBookFn != nil {
		return m.GetBookFn(ctx, id)
	}
	return m.Detail, m.Err
}

// CreateBook implements the service.CatalogService interface
func (m *MockCatalogService) CreateBook(ctx context.Context, params service.BookParams) (*domain.Book, error) {
	m.CreateBookCallCount++
	if m.CreateBookFn != nil {
		return m.CreateBookFn(ctx, params)
	}
	return m.Created, m.WriteErr
}

// UpdateBook implements the service.CatalogService interface
func (m *MockCatalogService) UpdateBook(ctx context.Context, id uuid.UUID, params service.BookParams) error {
	m.UpdateBookCallCount++
	if m.UpdateBookFn != nil {
		return m.UpdateBookFn(ctx, id, params)
	}
	return m.WriteErr
}

// DeleteBook implements the service.CatalogService interface
func (m *MockCatalogService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	m.DeleteBookCallCount++
	if m.DeleteBookFn != nil {
		return m.DeleteBookFn(ctx, id)
	}
	return m.WriteErr
}

// ListAuthors implements the service.CatalogService interface
func (m *MockCatalogService) ListAuthors(ctx context.Context) ([]*store.AuthorSummary, error) {
	m.ListAuthorsCallCount++
	if m.ListAuthorsFn != nil {
		return m.ListAuthorsFn(ctx)
	}
	return m.Authors, m.Err
}

// Ensure MockCatalogService implements service.CatalogService
var _ service.CatalogService = (*MockCatalogService)(nil)
