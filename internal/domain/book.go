package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Book validation errors
var (
	ErrEmptyBookID   = errors.New("book ID cannot be empty")
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrEmptyISBN     = errors.New("ISBN cannot be empty")
	ErrNegativeStock = errors.New("stock cannot be negative")
	ErrEmptyAuthorID = errors.New("author ID cannot be empty")
	ErrEmptyGenreID  = errors.New("genre ID cannot be empty")
)

// Book represents a catalog entry for a single title.
// Each book references exactly one author and one genre.
type Book struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Synopsis  string    `json:"synopsis"`
	Year      int       `json:"year"`
	ImageURL  string    `json:"image"`
	ISBN      string    `json:"isbn"`
	Stock     int       `json:"stock"`
	AuthorID  uuid.UUID `json:"author_id"`
	GenreID   uuid.UUID `json:"genre_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBook creates a new Book with a generated ID and timestamps.
// Returns an error if validation fails.
func NewBook(
	title, synopsis string,
	year int,
	imageURL, isbn string,
	stock int,
	authorID, genreID uuid.UUID,
) (*Book, error) {
	now := time.Now().UTC()
	book := &Book{
		ID:        uuid.New(),
		Title:     title,
		Synopsis:  synopsis,
		Year:      year,
		ImageURL:  imageURL,
		ISBN:      isbn,
		Stock:     stock,
		AuthorID:  authorID,
		GenreID:   genreID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// Available reports whether at least one copy is in stock.
func (b *Book) Available() bool {
	return b.Stock > 0
}

// Validate checks if the Book has valid data.
// Returns an error if any field fails validation.
func (b *Book) Validate() error {
	if b.ID == uuid.Nil {
		return ErrEmptyBookID
	}

	if b.Title == "" {
		return ErrEmptyTitle
	}

	if b.ISBN == "" {
		return ErrEmptyISBN
	}

	if b.Stock < 0 {
		return ErrNegativeStock
	}

	if b.AuthorID == uuid.Nil {
		return ErrEmptyAuthorID
	}

	if b.GenreID == uuid.Nil {
		return ErrEmptyGenreID
	}

	return nil
}
