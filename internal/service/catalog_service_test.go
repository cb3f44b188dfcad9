package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfarias/biblioteca-api/internal/domain"
	"github.com/mfarias/biblioteca-api/internal/mocks"
	"github.com/mfarias/biblioteca-api/internal/service"
	"github.com/mfarias/biblioteca-api/internal/store"
)

// newTestCatalogService wires a service against fresh in-memory mocks with a
// discarding logger.
func newTestCatalogService() (*service.CatalogServiceImpl, *mocks.MockBookStore, *mocks.MockAuthorStore, *mocks.MockGenreStore) {
	bookStore := mocks.NewMockBookStore()
	authorStore := mocks.NewMockAuthorStore()
	genreStore := mocks.NewMockGenreStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := service.NewCatalogService(bookStore, authorStore, genreStore, logger)
	return svc, bookStore, authorStore, genreStore
}

func validBookParams(authorID, genreID uuid.UUID) service.BookParams {
	return service.BookParams{
		Title:    "La casa de los espíritus",
		Synopsis: "A family saga",
		Year:     1982,
		ImageURL: "https://images.example.com/espiritus.jpg",
		ISBN:     "978-8401242182",
		Stock:    5,
		AuthorID: authorID,
		GenreID:  genreID,
	}
}

func TestCreateBook(t *testing.T) {
	t.Parallel()

	authorID := uuid.New()
	genreID := uuid.New()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc, bookStore, authorStore, genreStore := newTestCatalogService()
		authorStore.ExistingIDs[authorID] = true
		genreStore.ExistingIDs[genreID] = true

		book, err := svc.CreateBook(context.Background(), validBookParams(authorID, genreID))
		require.NoError(t, err)
		require.NotNil(t, book)

		assert.NotEqual(t, uuid.Nil, book.ID)
		assert.Equal(t, "La casa de los espíritus", book.Title)
		assert.Equal(t, authorID, book.AuthorID)
		assert.Contains(t, bookStore.Books, book.ID)
	})

	t.Run("author does not exist", func(t *testing.T) {
		t.Parallel()

		svc, bookStore, _, genreStore := newTestCatalogService()
		genreStore.ExistingIDs[genreID] = true

		_, err := svc.CreateBook(context.Background(), validBookParams(authorID, genreID))
		assert.ErrorIs(t, err, service.ErrAuthorNotFound)
		assert.Empty(t, bookStore.Books)
	})

	t.Run("genre does not exist", func(t *testing.T) {
		t.Parallel()

		svc, bookStore, authorStore, _ := newTestCatalogService()
		authorStore.ExistingIDs[authorID] = true

		_, err := svc.CreateBook(context.Background(), validBookParams(authorID, genreID))
		assert.ErrorIs(t, err, service.ErrGenreNotFound)
		assert.Empty(t, bookStore.Books)
	})

	t.Run("author reported first when both missing", func(t *testing.T) {
		t.Parallel()

		svc, _, _, _ := newTestCatalogService()

		_, err := svc.CreateBook(context.Background(), validBookParams(authorID, genreID))
		assert.ErrorIs(t, err, service.ErrAuthorNotFound)
	})

	t.Run("duplicate ISBN", func(t *testing.T) {
		t.Parallel()

		svc, bookStore, authorStore, genreStore := newTestCatalogService()
		authorStore.ExistingIDs[authorID] = true
		genreStore.ExistingIDs[genreID] = true

		existing, err := domain.NewBook("Other", "", 1990, "", "978-8401242182", 1, authorID, genreID)
		require.NoError(t, err)
		bookStore.Books[existing.ID] = existing

		_, err = svc.CreateBook(context.Background(), validBookParams(authorID, genreID))
		assert.ErrorIs(t, err, store.ErrISBNExists)
	})

	t.Run("race loss on insert surfaces typed error", func(t *testing.T) {
		t.Parallel()

		svc, bookStore, authorStore, genreStore := newTestCatalogService()
		authorStore.ExistingIDs[authorID] = true
		genreStore.ExistingIDs[genreID] = true

		// The uniqueness pre-check passes but the insert hits the unique
		// index, as happens when a concurrent create wins.
		bookStore.ISBNExistsFn = func(ctx context.Context, isbn string) (bool, error) {
			return false, nil
		}
		bookStore.CreateFn = func(ctx context.Context, book *domain.Book) error {
			return store.ErrISBNExists
		}

		_, err := svc.CreateBook(context.Background(), validBookParams(authorID, genreID))
		assert.ErrorIs(t, err, store.ErrISBNExists)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		t.Parallel()

		svc, bookStore, authorStore, genreStore := newTestCatalogService()
		authorStore.ExistingIDs[authorID] = true
		genreStore.ExistingIDs[genreID] = true
		bookStore.CreateError = errors.New("connection reset")

		_, err := svc.CreateBook(context.Background(), validBookParams(authorID, genreID))
		require.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrISBNExists)
	})
}

func TestUpdateBook(t *testing.T) {
	t.Parallel()

	authorID := uuid.New()
	genreID := uuid.New()

	seedBook := func(t *testing.T, bookStore *mocks.MockBookStore, isbn string) *domain.Book {
		t.Helper()
		book, err := domain.NewBook("Seed title", "", 1982, "", isbn, 2, authorID, genreID)
		require.NoError(t, err)
		bookStore.Books[book.ID] = book
		return book
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc, bookStore, authorStore, genreStore := newTestCatalogService()
		authorStore.ExistingIDs[authorID] = true
		genreStore.ExistingIDs[genreID] = true
		book := seedBook(t, bookStore, "978-8401242182")

		params := validBookParams(authorID, genreID)
		params.ISBN = "978-0000000001"
		params.Stock = 0

		err := svc.UpdateBook(context.Background(), book.ID, params)
		require.NoError(t, err)

		updated := bookStore.Books[book.ID]
		assert.Equal(t, params.Title, updated.Title)
		assert.Equal(t, "978-0000000001", updated.ISBN)
		assert.Equal(t, 0, updated.Stock)
	})

	t.Run("keeping own ISBN skips the uniqueness check", func(t *testing.T) {
		t.Parallel()

		svc, bookStore, authorStore, genreStore := newTestCatalogService()
		authorStore.ExistingIDs[authorID] = true
		genreStore.ExistingIDs[genreID] = true
		book := seedBook(t, bookStore, "978-8401242182")

		isbnChecks := 0
		bookStore.ISBNExistsFn = func(ctx context.Context, isbn string) (bool, error) {
			isbnChecks++
			return true, nil
		}

		params := validBookParams(authorID, genreID)

		err := svc.UpdateBook(context.Background(), book.ID, params)
		require.NoError(t, err)
		assert.Zero(t, isbnChecks, "unchanged ISBN must not be re-checked")
	})

	t.Run("changing to a taken ISBN fails", func(t *testing.T) {
		t.Parallel()

		svc, bookStore, authorStore, genreStore := newTestCatalogService()
		authorStore.ExistingIDs[authorID] = true
		genreStore.ExistingIDs[genreID] = true
		book := seedBook(t, bookStore, "978-8401242182")
		seedBook(t, bookStore, "978-0000000002")

		params := validBookParams(authorID, genreID)
		params.ISBN = "978-0000000002"

		err := svc.UpdateBook(context.Background(), book.ID, params)
		assert.ErrorIs(t, err, store.ErrISBNExists)
	})

	t.Run("book not found", func(t *testing.T) {
		t.Parallel()

		svc, _, authorStore, genreStore := newTestCatalogService()
		authorStore.ExistingIDs[authorID] = true
		genreStore.ExistingIDs[genreID] = true

		err := svc.UpdateBook(context.Background(), uuid.New(), validBookParams(authorID, genreID))
		assert.ErrorIs(t, err, store.ErrBookNotFound)
	})

	t.Run("author does not exist", func(t *testing.T) {
		t.Parallel()

		svc, bookStore, _, genreStore := newTestCatalogService()
		genreStore.ExistingIDs[genreID] = true
		book := seedBook(t, bookStore, "978-8401242182")

		err := svc.UpdateBook(context.Background(), book.ID, validBookParams(authorID, genreID))
		assert.ErrorIs(t, err, service.ErrAuthorNotFound)
	})
}

func TestDeleteBook(t *testing.T) {
	t.Parallel()

	authorID := uuid.New()
	genreID := uuid.New()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc, bookStore, _, _ := newTestCatalogService()
		book, err := domain.NewBook("To delete", "", 2000, "", "978-0000000003", 1, authorID, genreID)
		require.NoError(t, err)
		bookStore.Books[book.ID] = book

		require.NoError(t, svc.DeleteBook(context.Background(), book.ID))
		assert.NotContains(t, bookStore.Books, book.ID)
	})

	t.Run("book not found", func(t *testing.T) {
		t.Parallel()

		svc, _, _, _ := newTestCatalogService()

		err := svc.DeleteBook(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrBookNotFound)
	})
}

func TestListBooks(t *testing.T) {
	t.Parallel()

	authorID := uuid.New()
	otherAuthorID := uuid.New()
	genreID := uuid.New()

	svc, bookStore, _, _ := newTestCatalogService()

	matching, err := domain.NewBook("El amor en los tiempos del cólera", "", 1985, "", "978-0307389732", 1, authorID, genreID)
	require.NoError(t, err)
	bookStore.Books[matching.ID] = matching

	other, err := domain.NewBook("Rayuela", "", 1963, "", "978-8437604572", 0, otherAuthorID, genreID)
	require.NoError(t, err)
	bookStore.Books[other.ID] = other

	t.Run("no filter returns everything", func(t *testing.T) {
		books, err := svc.ListBooks(context.Background(), store.BookFilter{})
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("filters are conjunctive", func(t *testing.T) {
		books, err := svc.ListBooks(context.Background(), store.BookFilter{
			Title:    "amor",
			AuthorID: &authorID,
		})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, matching.ID, books[0].ID)

		// Same title substring, wrong author: nothing matches.
		books, err = svc.ListBooks(context.Background(), store.BookFilter{
			Title:    "amor",
			AuthorID: &otherAuthorID,
		})
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("title match is case sensitive", func(t *testing.T) {
		books, err := svc.ListBooks(context.Background(), store.BookFilter{Title: "AMOR"})
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		svcFail, bookStoreFail, _, _ := newTestCatalogService()
		bookStoreFail.ListError = errors.New("connection reset")

		_, err := svcFail.ListBooks(context.Background(), store.BookFilter{})
		assert.Error(t, err)
	})
}

func TestGetBook(t *testing.T) {
	t.Parallel()

	svc, bookStore, _, _ := newTestCatalogService()

	book, err := domain.NewBook("Ficciones", "", 1944, "", "978-0802130303", 4, uuid.New(), uuid.New())
	require.NoError(t, err)
	bookStore.Books[book.ID] = book

	detail, err := svc.GetBook(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, detail.Book.ID)

	_, err = svc.GetBook(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrBookNotFound)
}

func TestListAuthors(t *testing.T) {
	t.Parallel()

	t.Run("returns store summaries", func(t *testing.T) {
		t.Parallel()

		svc, _, authorStore, _ := newTestCatalogService()
		authorStore.Summaries = []*store.AuthorSummary{
			{ID: uuid.New(), Name: "Isabel Allende", Nationality: "Chilean", BookCount: 3},
			{ID: uuid.New(), Name: "Jorge Luis Borges", Nationality: "Argentine", BookCount: 0},
		}

		authors, err := svc.ListAuthors(context.Background())
		require.NoError(t, err)
		require.Len(t, authors, 2)
		assert.Equal(t, 3, authors[0].BookCount)
		assert.Equal(t, 0, authors[1].BookCount, "authors without books still appear")
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		t.Parallel()

		svc, _, authorStore, _ := newTestCatalogService()
		authorStore.ListError = errors.New("connection reset")

		_, err := svc.ListAuthors(context.Background())
		assert.Error(t, err)
	})
}
