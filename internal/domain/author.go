package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Author validation errors
var (
	ErrEmptyAuthorName = errors.New("author name cannot be empty")
)

// Author represents the writer of one or more books.
type Author struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Nationality string    `json:"nationality"`
	BirthDate   time.Time `json:"birth_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewAuthor creates a new Author with a generated ID and timestamps.
func NewAuthor(name, nationality string, birthDate time.Time) (*Author, error) {
	now := time.Now().UTC()
	author := &Author{
		ID:          uuid.New(),
		Name:        name,
		Nationality: nationality,
		BirthDate:   birthDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := author.Validate(); err != nil {
		return nil, err
	}

	return author, nil
}

// Validate checks if the Author has valid data.
func (a *Author) Validate() error {
	if a.ID == uuid.Nil {
		return ErrInvalidID
	}

	if a.Name == "" {
		return ErrEmptyAuthorName
	}

	return nil
}
