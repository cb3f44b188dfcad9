package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mfarias/biblioteca-api/internal/platform/logger"
	"github.com/mfarias/biblioteca-api/internal/store"
)

// PostgresAuthorStore implements the store.AuthorStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAuthorStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAuthorStore creates a new PostgreSQL implementation of the
// AuthorStore interface. If logger is nil, a default logger will be used.
func NewPostgresAuthorStore(db store.DBTX, logger *slog.Logger) *PostgresAuthorStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAuthorStore{
		db:     db,
		logger: logger.With(slog.String("component", "author_store")),
	}
}

// Ensure PostgresAuthorStore implements store.AuthorStore interface
var _ store.AuthorStore = (*PostgresAuthorStore)(nil)

// Exists implements store.AuthorStore.Exists
func (s *PostgresAuthorStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		log.Error("failed to check author existence",
			slog.String("error", err.Error()),
			slog.String("author_id", id.String()))
		return false, err
	}

	return exists, nil
}

// ListWithBookCounts implements store.AuthorStore.ListWithBookCounts
// The book count is recomputed on every call; authors with no books are
// included with a count of zero.
func (s *PostgresAuthorStore) ListWithBookCounts(ctx context.Context) ([]*store.AuthorSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT a.id, a.name, a.nationality, COUNT(b.id)
		FROM authors a
		LEFT JOIN books b ON b.author_id = a.id
		GROUP BY a.id, a.name, a.nationality
		ORDER BY a.name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list authors", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var authors []*store.AuthorSummary
	for rows.Next() {
		var summary store.AuthorSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.Nationality,
			&summary.BookCount,
		); err != nil {
			log.Error("failed to scan author row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, &summary)
	}

	if err := rows.Err(); err != nil {
		log.Error("row iteration failed", slog.String("error", err.Error()))
		return nil, err
	}

	return authors, nil
}
