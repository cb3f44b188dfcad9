package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mfarias/biblioteca-api/internal/domain"
	"github.com/mfarias/biblioteca-api/internal/service"
	"github.com/mfarias/biblioteca-api/internal/store"

	"github.com/mfarias/biblioteca-api/internal/api/shared"
)

// BookRequest represents the request body for creating or updating a book.
type BookRequest struct {
	Title    string    `json:"title"     validate:"required,min=1"`
	Synopsis string    `json:"synopsis"`
	Year     int       `json:"year"      validate:"required"`
	Image    string    `json:"image"`
	ISBN     string    `json:"isbn"      validate:"required,min=1"`
	Stock    int       `json:"stock"     validate:"gte=0"`
	AuthorID uuid.UUID `json:"author_id" validate:"required"`
	GenreID  uuid.UUID `json:"genre_id"  validate:"required"`
}

// BookSummaryResponse is the projection returned by the book listing.
// Available is derived from the stock count; it is never stored.
type BookSummaryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
	Image     string `json:"image"`
	Available bool   `json:"available"`
}

// BookDetailResponse is the full projection returned for a single book,
// with its author and genre nested.
type BookDetailResponse struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Synopsis string         `json:"synopsis"`
	Year     int            `json:"year"`
	Image    string         `json:"image"`
	ISBN     string         `json:"isbn"`
	Stock    int            `json:"stock"`
	Author   AuthorResponse `json:"author"`
	Genre    GenreResponse  `json:"genre"`
}

// AuthorResponse is the nested author projection inside a book detail.
type AuthorResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	BirthDate   string `json:"birth_date"`
}

// GenreResponse is the nested genre projection inside a book detail.
type GenreResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BookCreatedResponse is returned from a successful book creation.
type BookCreatedResponse struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Synopsis string    `json:"synopsis"`
	Year     int       `json:"year"`
	Image    string    `json:"image"`
	ISBN     string    `json:"isbn"`
	Stock    int       `json:"stock"`
	AuthorID uuid.UUID `json:"author_id"`
	GenreID  uuid.UUID `json:"genre_id"`
}

// BookHandler handles book-related HTTP requests.
type BookHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(catalogService service.CatalogService) *BookHandler {
	return &BookHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// ListBooks handles GET /api/books requests.
// All query filters (title, isbn, author, genre) are optional and combined
// with AND.
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	authorID, err := getQueryUUID(r, "author")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	genreID, err := getQueryUUID(r, "genre")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	filter := store.BookFilter{
		Title:    r.URL.Query().Get("title"),
		ISBN:     r.URL.Query().Get("isbn"),
		AuthorID: authorID,
		GenreID:  genreID,
	}

	books, err := h.catalogService.ListBooks(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list books", "error", err)
		HandleAPIError(w, r, err, "")
		return
	}

	summaries := make([]BookSummaryResponse, 0, len(books))
	for _, book := range books {
		summaries = append(summaries, bookToSummaryResponse(book))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summaries)
}

// GetBook handles GET /api/books/{id} requests.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	detail, err := h.catalogService.GetBook(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bookToDetailResponse(detail))
}

// CreateBook handles POST /api/books requests. Requires a valid bearer token.
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserIDFromContext(r); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req BookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	book, err := h.catalogService.CreateBook(r.Context(), bookRequestToParams(req))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.Header().Set("Location", "/api/books/"+book.ID.String())
	shared.RespondWithJSON(w, r, http.StatusCreated, BookCreatedResponse{
		ID:       book.ID.String(),
		Title:    book.Title,
		Synopsis: book.Synopsis,
		Year:     book.Year,
		Image:    book.ImageURL,
		ISBN:     book.ISBN,
		Stock:    book.Stock,
		AuthorID: book.AuthorID,
		GenreID:  book.GenreID,
	})
}

// UpdateBook handles PUT /api/books/{id} requests. Requires a valid bearer
// token. All mutable fields are replaced.
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserIDFromContext(r); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req BookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.catalogService.UpdateBook(r.Context(), id, bookRequestToParams(req)); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteBook handles DELETE /api/books/{id} requests. Requires a valid
// bearer token.
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserIDFromContext(r); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.catalogService.DeleteBook(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// bookRequestToParams converts a validated BookRequest into service params.
func bookRequestToParams(req BookRequest) service.BookParams {
	return service.BookParams{
		Title:    req.Title,
		Synopsis: req.Synopsis,
		Year:     req.Year,
		ImageURL: req.Image,
		ISBN:     req.ISBN,
		Stock:    req.Stock,
		AuthorID: req.AuthorID,
		GenreID:  req.GenreID,
	}
}

// bookToSummaryResponse converts a domain.Book to its listing projection.
func bookToSummaryResponse(book *domain.Book) BookSummaryResponse {
	return BookSummaryResponse{
		ID:        book.ID.String(),
		Title:     book.Title,
		Year:      book.Year,
		Image:     book.ImageURL,
		Available: book.Available(),
	}
}

// bookToDetailResponse converts a store.BookDetail to its response shape.
func bookToDetailResponse(detail *store.BookDetail) BookDetailResponse {
	return BookDetailResponse{
		ID:       detail.Book.ID.String(),
		Title:    detail.Book.Title,
		Synopsis: detail.Book.Synopsis,
		Year:     detail.Book.Year,
		Image:    detail.Book.ImageURL,
		ISBN:     detail.Book.ISBN,
		Stock:    detail.Book.Stock,
		Author: AuthorResponse{
			ID:          detail.Author.ID.String(),
			Name:        detail.Author.Name,
			Nationality: detail.Author.Nationality,
			BirthDate:   detail.Author.BirthDate.Format("2006-01-02"),
		},
		Genre: GenreResponse{
			ID:          detail.Genre.ID.String(),
			Name:        detail.Genre.Name,
			Description: detail.Genre.Description,
		},
	}
}
