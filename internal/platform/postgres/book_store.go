package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mfarias/biblioteca-api/internal/domain"
	"github.com/mfarias/biblioteca-api/internal/platform/logger"
	"github.com/mfarias/biblioteca-api/internal/store"
)

// PostgresBookStore implements the store.BookStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBookStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookStore creates a new PostgreSQL implementation of the
// BookStore interface. It accepts a database connection that should be
// initialized and managed by the caller. If logger is nil, a default
// logger will be used.
func NewPostgresBookStore(db store.DBTX, logger *slog.Logger) *PostgresBookStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookStore{
		db:     db,
		logger: logger.With(slog.String("component", "book_store")),
	}
}

// Ensure PostgresBookStore implements store.BookStore interface
var _ store.BookStore = (*PostgresBookStore)(nil)

// Create implements store.BookStore.Create
// Constraint violations are mapped to typed errors: the unique index on isbn
// yields store.ErrISBNExists, the author/genre foreign keys yield
// store.ErrInvalidEntity. These are the backstop for the service layer's
// separate existence checks racing a concurrent write.
func (s *PostgresBookStore) Create(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during create",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return err
	}

	query := `
		INSERT INTO books (id, title, synopsis, year, image_url, isbn, stock,
			author_id, genre_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		book.ID,
		book.Title,
		book.Synopsis,
		book.Year,
		book.ImageURL,
		book.ISBN,
		book.Stock,
		book.AuthorID,
		book.GenreID,
		book.CreatedAt,
		book.UpdatedAt,
	)

	if err != nil {
		if mapped := s.mapWriteError(err, book, log); mapped != nil {
			return mapped
		}

		log.Error("failed to create book",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return err
	}

	log.Info("book created successfully",
		slog.String("book_id", book.ID.String()),
		slog.String("title", book.Title))
	return nil
}

// GetByID implements store.BookStore.GetByID
// Returns store.ErrBookNotFound if the book does not exist.
func (s *PostgresBookStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, synopsis, year, image_url, isbn, stock,
			author_id, genre_id, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	var book domain.Book
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Synopsis,
		&book.Year,
		&book.ImageURL,
		&book.ISBN,
		&book.Stock,
		&book.AuthorID,
		&book.GenreID,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("book not found", slog.String("book_id", id.String()))
			return nil, store.ErrBookNotFound
		}
		log.Error("failed to get book by ID",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return nil, err
	}

	return &book, nil
}

// GetDetail implements store.BookStore.GetDetail
// It joins the author and genre rows eagerly in a single query.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *PostgresBookStore) GetDetail(ctx context.Context, id uuid.UUID) (*store.BookDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT b.id, b.title, b.synopsis, b.year, b.image_url, b.isbn, b.stock,
			b.author_id, b.genre_id, b.created_at, b.updated_at,
			a.id, a.name, a.nationality, a.birth_date, a.created_at, a.updated_at,
			g.id, g.name, g.description, g.created_at, g.updated_at
		FROM books b
		JOIN authors a ON a.id = b.author_id
		JOIN genres g ON g.id = b.genre_id
		WHERE b.id = $1
	`

	var detail store.BookDetail
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&detail.Book.ID,
		&detail.Book.Title,
		&detail.Book.Synopsis,
		&detail.Book.Year,
		&detail.Book.ImageURL,
		&detail.Book.ISBN,
		&detail.Book.Stock,
		&detail.Book.AuthorID,
		&detail.Book.GenreID,
		&detail.Book.CreatedAt,
		&detail.Book.UpdatedAt,
		&detail.Author.ID,
		&detail.Author.Name,
		&detail.Author.Nationality,
		&detail.Author.BirthDate,
		&detail.Author.CreatedAt,
		&detail.Author.UpdatedAt,
		&detail.Genre.ID,
		&detail.Genre.Name,
		&detail.Genre.Description,
		&detail.Genre.CreatedAt,
		&detail.Genre.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("book not found", slog.String("book_id", id.String()))
			return nil, store.ErrBookNotFound
		}
		log.Error("failed to get book detail",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return nil, err
	}

	return &detail, nil
}

// List implements store.BookStore.List
// Filter conditions are combined with AND; the title filter is a
// case-sensitive substring containment match.
func (s *PostgresBookStore) List(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var sb strings.Builder
	sb.WriteString(`
		SELECT id, title, synopsis, year, image_url, isbn, stock,
			author_id, genre_id, created_at, updated_at
		FROM books
	`)

	var conds []string
	var args []any

	if filter.Title != "" {
		args = append(args, filter.Title)
		conds = append(conds, "position($"+strconv.Itoa(len(args))+" in title) > 0")
	}
	if filter.ISBN != "" {
		args = append(args, filter.ISBN)
		conds = append(conds, "isbn = $"+strconv.Itoa(len(args)))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conds = append(conds, "author_id = $"+strconv.Itoa(len(args)))
	}
	if filter.GenreID != nil {
		args = append(args, *filter.GenreID)
		conds = append(conds, "genre_id = $"+strconv.Itoa(len(args)))
	}

	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY created_at")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		log.Error("failed to list books", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var books []*domain.Book
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Synopsis,
			&book.Year,
			&book.ImageURL,
			&book.ISBN,
			&book.Stock,
			&book.AuthorID,
			&book.GenreID,
			&book.CreatedAt,
			&book.UpdatedAt,
		); err != nil {
			log.Error("failed to scan book row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		log.Error("row iteration failed", slog.String("error", err.Error()))
		return nil, err
	}

	return books, nil
}

// Update implements store.BookStore.Update
// It replaces all mutable fields in place.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *PostgresBookStore) Update(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during update",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return err
	}

	book.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE books
		SET title = $1, synopsis = $2, year = $3, image_url = $4, isbn = $5,
			stock = $6, author_id = $7, genre_id = $8, updated_at = $9
		WHERE id = $10
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		book.Title,
		book.Synopsis,
		book.Year,
		book.ImageURL,
		book.ISBN,
		book.Stock,
		book.AuthorID,
		book.GenreID,
		book.UpdatedAt,
		book.ID,
	)

	if err != nil {
		if mapped := s.mapWriteError(err, book, log); mapped != nil {
			return mapped
		}

		log.Error("failed to update book",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to read rows affected",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return err
	}
	if affected == 0 {
		log.Debug("book not found during update",
			slog.String("book_id", book.ID.String()))
		return store.ErrBookNotFound
	}

	log.Info("book updated successfully",
		slog.String("book_id", book.ID.String()))
	return nil
}

// Delete implements store.BookStore.Delete
// Returns store.ErrBookNotFound if the book does not exist.
func (s *PostgresBookStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM books WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete book",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to read rows affected",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return err
	}
	if affected == 0 {
		log.Debug("book not found during delete",
			slog.String("book_id", id.String()))
		return store.ErrBookNotFound
	}

	log.Info("book deleted successfully", slog.String("book_id", id.String()))
	return nil
}

// ISBNExists implements store.BookStore.ISBNExists
func (s *PostgresBookStore) ISBNExists(ctx context.Context, isbn string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, isbn).Scan(&exists); err != nil {
		log.Error("failed to check ISBN existence",
			slog.String("error", err.Error()))
		return false, err
	}

	return exists, nil
}

// mapWriteError converts constraint violations raised by an insert or update
// into the store package's typed errors. Returns nil when the error is not a
// recognized constraint violation.
func (s *PostgresBookStore) mapWriteError(err error, book *domain.Book, log *slog.Logger) error {
	if isUniqueViolation(err) {
		log.Debug("duplicate ISBN during book write",
			slog.String("book_id", book.ID.String()))
		return store.ErrISBNExists
	}

	if isForeignKeyViolation(err) {
		log.Warn("foreign key violation during book write",
			slog.String("book_id", book.ID.String()),
			slog.String("constraint", constraintName(err)))
		return fmt.Errorf("%w: referenced author or genre not found",
			store.ErrInvalidEntity)
	}

	return nil
}
