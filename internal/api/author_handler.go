package api

import (
	"log/slog"
	"net/http"

	"github.com/mfarias/biblioteca-api/internal/service"
	"github.com/mfarias/biblioteca-api/internal/store"

	"github.com/mfarias/biblioteca-api/internal/api/shared"
)

// AuthorListItem is the projection returned by the author listing.
// BookCount is derived at query time from the books referencing the author.
type AuthorListItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	BookCount   int    `json:"book_count"`
}

// AuthorHandler handles author-related HTTP requests.
type AuthorHandler struct {
	catalogService service.CatalogService
}

// NewAuthorHandler creates a new AuthorHandler.
func NewAuthorHandler(catalogService service.CatalogService) *AuthorHandler {
	return &AuthorHandler{
		catalogService: catalogService,
	}
}

// ListAuthors handles GET /api/authors requests.
func (h *AuthorHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.catalogService.ListAuthors(r.Context())
	if err != nil {
		slog.Error("failed to list authors", "error", err)
		HandleAPIError(w, r, err, "")
		return
	}

	items := make([]AuthorListItem, 0, len(authors))
	for _, author := range authors {
		items = append(items, authorToListItem(author))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// authorToListItem converts an author summary to its response shape.
func authorToListItem(author *store.AuthorSummary) AuthorListItem {
	return AuthorListItem{
		ID:          author.ID.String(),
		Name:        author.Name,
		Nationality: author.Nationality,
		BookCount:   author.BookCount,
	}
}
