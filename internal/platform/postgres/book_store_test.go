package postgres

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/mfarias/biblioteca-api/internal/domain"
	"github.com/mfarias/biblioteca-api/internal/store"
)

func TestMapWriteError(t *testing.T) {
	t.Parallel()

	bookStore := &PostgresBookStore{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	log := bookStore.logger
	book := &domain.Book{ID: uuid.New()}

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{
			name:    "unique violation maps to duplicate ISBN",
			err:     &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "books_isbn_key"},
			wantErr: store.ErrISBNExists,
		},
		{
			name:    "foreign key violation maps to invalid entity",
			err:     &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "books_author_id_fkey"},
			wantErr: store.ErrInvalidEntity,
		},
		{
			name:    "other errors are not mapped",
			err:     errors.New("connection reset"),
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := bookStore.mapWriteError(tt.err, book, log)

			if tt.wantErr == nil {
				assert.Nil(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tt.wantErr)
		})
	}
}
