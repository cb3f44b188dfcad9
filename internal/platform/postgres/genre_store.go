package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mfarias/biblioteca-api/internal/platform/logger"
	"github.com/mfarias/biblioteca-api/internal/store"
)

// PostgresGenreStore implements the store.GenreStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGenreStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGenreStore creates a new PostgreSQL implementation of the
// GenreStore interface. If logger is nil, a default logger will be used.
func NewPostgresGenreStore(db store.DBTX, logger *slog.Logger) *PostgresGenreStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresGenreStore{
		db:     db,
		logger: logger.With(slog.String("component", "genre_store")),
	}
}

// Ensure PostgresGenreStore implements store.GenreStore interface
var _ store.GenreStore = (*PostgresGenreStore)(nil)

// Exists implements store.GenreStore.Exists
func (s *PostgresGenreStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS (SELECT 1 FROM genres WHERE id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		log.Error("failed to check genre existence",
			slog.String("error", err.Error()),
			slog.String("genre_id", id.String()))
		return false, err
	}

	return exists, nil
}
