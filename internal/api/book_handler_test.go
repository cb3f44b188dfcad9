package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfarias/biblioteca-api/internal/api/shared"
	"github.com/mfarias/biblioteca-api/internal/domain"
	"github.com/mfarias/biblioteca-api/internal/mocks"
	"github.com/mfarias/biblioteca-api/internal/service"
	"github.com/mfarias/biblioteca-api/internal/store"
)

// withPathID attaches a chi route parameter to the request.
func withPathID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// withUserID places an authenticated user ID in the request context, the way
// the auth middleware does.
func withUserID(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
}

func validBookPayload(authorID, genreID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"title":     "Pedro Páramo",
		"synopsis":  "A man searches for his father in a town of ghosts",
		"year":      1955,
		"image":     "https://images.example.com/paramo.jpg",
		"isbn":      "978-0802133908",
		"stock":     2,
		"author_id": authorID.String(),
		"genre_id":  genreID.String(),
	}
}

func TestListBooks(t *testing.T) {
	t.Parallel()

	authorID := uuid.New()

	t.Run("returns summaries with derived availability", func(t *testing.T) {
		t.Parallel()

		inStock := &domain.Book{ID: uuid.New(), Title: "Pedro Páramo", Year: 1955, Stock: 2}
		outOfStock := &domain.Book{ID: uuid.New(), Title: "El llano en llamas", Year: 1953, Stock: 0}

		catalog := &mocks.MockCatalogService{Books: []*domain.Book{inStock, outOfStock}}
		handler := NewBookHandler(catalog)

		req := httptest.NewRequest("GET", "/api/books", nil)
		recorder := httptest.NewRecorder()

		handler.ListBooks(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp []BookSummaryResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		require.Len(t, resp, 2)
		assert.True(t, resp[0].Available)
		assert.False(t, resp[1].Available)
	})

	t.Run("passes query filters to the service", func(t *testing.T) {
		t.Parallel()

		var gotFilter store.BookFilter
		catalog := &mocks.MockCatalogService{
			ListBooksFn: func(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
				gotFilter = filter
				return nil, nil
			},
		}
		handler := NewBookHandler(catalog)

		url := "/api/books?title=amor&isbn=978-0307389732&author=" + authorID.String()
		req := httptest.NewRequest("GET", url, nil)
		recorder := httptest.NewRecorder()

		handler.ListBooks(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "amor", gotFilter.Title)
		assert.Equal(t, "978-0307389732", gotFilter.ISBN)
		require.NotNil(t, gotFilter.AuthorID)
		assert.Equal(t, authorID, *gotFilter.AuthorID)
		assert.Nil(t, gotFilter.GenreID)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		t.Parallel()

		catalog := &mocks.MockCatalogService{}
		handler := NewBookHandler(catalog)

		req := httptest.NewRequest("GET", "/api/books", nil)
		recorder := httptest.NewRecorder()

		handler.ListBooks(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, "[]", recorder.Body.String())
	})

	t.Run("malformed author filter", func(t *testing.T) {
		t.Parallel()

		catalog := &mocks.MockCatalogService{}
		handler := NewBookHandler(catalog)

		req := httptest.NewRequest("GET", "/api/books?author=not-a-uuid", nil)
		recorder := httptest.NewRecorder()

		handler.ListBooks(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Zero(t, catalog.ListBooksCallCount)
	})
}

func TestGetBook(t *testing.T) {
	t.Parallel()

	bookID := uuid.New()
	birth := time.Date(1917, time.May, 16, 0, 0, 0, 0, time.UTC)

	detail := &store.BookDetail{
		Book: domain.Book{
			ID:    bookID,
			Title: "Pedro Páramo",
			Year:  1955,
			ISBN:  "978-0802133908",
			Stock: 2,
		},
		Author: domain.Author{
			ID:          uuid.New(),
			Name:        "Juan Rulfo",
			Nationality: "Mexican",
			BirthDate:   birth,
		},
		Genre: domain.Genre{
			ID:   uuid.New(),
			Name: "Magical realism",
		},
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		catalog := &mocks.MockCatalogService{Detail: detail}
		handler := NewBookHandler(catalog)

		req := withPathID(httptest.NewRequest("GET", "/api/books/"+bookID.String(), nil), bookID.String())
		recorder := httptest.NewRecorder()

		handler.GetBook(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp BookDetailResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, bookID.String(), resp.ID)
		assert.Equal(t, "Juan Rulfo", resp.Author.Name)
		assert.Equal(t, "1917-05-16", resp.Author.BirthDate)
		assert.Equal(t, "Magical realism", resp.Genre.Name)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		catalog := &mocks.MockCatalogService{Err: store.ErrBookNotFound}
		handler := NewBookHandler(catalog)

		req := withPathID(httptest.NewRequest("GET", "/api/books/"+bookID.String(), nil), bookID.String())
		recorder := httptest.NewRecorder()

		handler.GetBook(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()

		catalog := &mocks.MockCatalogService{}
		handler := NewBookHandler(catalog)

		req := withPathID(httptest.NewRequest("GET", "/api/books/abc", nil), "abc")
		recorder := httptest.NewRecorder()

		handler.GetBook(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Zero(t, catalog.GetBookCallCount)
	})
}

func TestCreateBook(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	authorID := uuid.New()
	genreID := uuid.New()

	created, err := domain.NewBook(
		"Pedro Páramo",
		"A man searches for his father in a town of ghosts",
		1955,
		"https://images.example.com/paramo.jpg",
		"978-0802133908",
		2,
		authorID,
		genreID,
	)
	require.NoError(t, err)

	tests := []struct {
		name        string
		payload     map[string]interface{}
		serviceErr  error
		noUserInCtx bool
		wantStatus  int
	}{
		{
			name:       "success",
			payload:    validBookPayload(authorID, genreID),
			wantStatus: http.StatusCreated,
		},
		{
			name:        "missing authenticated user",
			payload:     validBookPayload(authorID, genreID),
			noUserInCtx: true,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:       "unknown author",
			payload:    validBookPayload(authorID, genreID),
			serviceErr: service.ErrAuthorNotFound,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown genre",
			payload:    validBookPayload(authorID, genreID),
			serviceErr: service.ErrGenreNotFound,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate isbn",
			payload:    validBookPayload(authorID, genreID),
			serviceErr: store.ErrISBNExists,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing title",
			payload: func() map[string]interface{} {
				p := validBookPayload(authorID, genreID)
				delete(p, "title")
				return p
			}(),
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "negative stock",
			payload: func() map[string]interface{} {
				p := validBookPayload(authorID, genreID)
				p["stock"] = -1
				return p
			}(),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			catalog := &mocks.MockCatalogService{Created: created, WriteErr: tt.serviceErr}
			handler := NewBookHandler(catalog)

			payloadBytes, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/api/books", bytes.NewBuffer(payloadBytes))
			req.Header.Set("Content-Type", "application/json")
			if !tt.noUserInCtx {
				req = withUserID(req, userID)
			}
			recorder := httptest.NewRecorder()

			handler.CreateBook(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, "/api/books/"+created.ID.String(), recorder.Header().Get("Location"))

				var resp BookCreatedResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, created.ID.String(), resp.ID)
				assert.Equal(t, created.ISBN, resp.ISBN)
				assert.Equal(t, authorID, resp.AuthorID)
			}

			if tt.noUserInCtx {
				assert.Zero(t, catalog.CreateBookCallCount, "unauthenticated requests never reach the service")
			}
		})
	}
}

func TestUpdateBook(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	authorID := uuid.New()
	genreID := uuid.New()
	bookID := uuid.New()

	t.Run("success returns no content", func(t *testing.T) {
		t.Parallel()

		var gotID uuid.UUID
		var gotParams service.BookParams
		catalog := &mocks.MockCatalogService{
			UpdateBookFn: func(ctx context.Context, id uuid.UUID, params service.BookParams) error {
				gotID = id
				gotParams = params
				return nil
			},
		}
		handler := NewBookHandler(catalog)

		payloadBytes, err := json.Marshal(validBookPayload(authorID, genreID))
		require.NoError(t, err)

		req := httptest.NewRequest("PUT", "/api/books/"+bookID.String(), bytes.NewBuffer(payloadBytes))
		req = withUserID(withPathID(req, bookID.String()), userID)
		recorder := httptest.NewRecorder()

		handler.UpdateBook(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Empty(t, recorder.Body.String())
		assert.Equal(t, bookID, gotID)
		assert.Equal(t, "Pedro Páramo", gotParams.Title)
		assert.Equal(t, authorID, gotParams.AuthorID)
	})

	t.Run("book not found", func(t *testing.T) {
		t.Parallel()

		catalog := &mocks.MockCatalogService{WriteErr: store.ErrBookNotFound}
		handler := NewBookHandler(catalog)

		payloadBytes, err := json.Marshal(validBookPayload(authorID, genreID))
		require.NoError(t, err)

		req := httptest.NewRequest("PUT", "/api/books/"+bookID.String(), bytes.NewBuffer(payloadBytes))
		req = withUserID(withPathID(req, bookID.String()), userID)
		recorder := httptest.NewRecorder()

		handler.UpdateBook(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("missing authenticated user", func(t *testing.T) {
		t.Parallel()

		catalog := &mocks.MockCatalogService{}
		handler := NewBookHandler(catalog)

		payloadBytes, err := json.Marshal(validBookPayload(authorID, genreID))
		require.NoError(t, err)

		req := httptest.NewRequest("PUT", "/api/books/"+bookID.String(), bytes.NewBuffer(payloadBytes))
		req = withPathID(req, bookID.String())
		recorder := httptest.NewRecorder()

		handler.UpdateBook(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Zero(t, catalog.UpdateBookCallCount)
	})
}

func TestDeleteBook(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	bookID := uuid.New()

	tests := []struct {
		name        string
		pathID      string
		serviceErr  error
		noUserInCtx bool
		wantStatus  int
	}{
		{
			name:       "success returns no content",
			pathID:     bookID.String(),
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "book not found",
			pathID:     bookID.String(),
			serviceErr: store.ErrBookNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed id",
			pathID:     "abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:        "missing authenticated user",
			pathID:      bookID.String(),
			noUserInCtx: true,
			wantStatus:  http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			catalog := &mocks.MockCatalogService{WriteErr: tt.serviceErr}
			handler := NewBookHandler(catalog)

			req := httptest.NewRequest("DELETE", "/api/books/"+tt.pathID, nil)
			req = withPathID(req, tt.pathID)
			if !tt.noUserInCtx {
				req = withUserID(req, userID)
			}
			recorder := httptest.NewRecorder()

			handler.DeleteBook(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}
