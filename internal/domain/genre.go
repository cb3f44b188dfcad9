package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Genre validation errors
var (
	ErrEmptyGenreName = errors.New("genre name cannot be empty")
)

// Genre categorizes books by subject matter.
type Genre struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewGenre creates a new Genre with a generated ID and timestamps.
func NewGenre(name, description string) (*Genre, error) {
	now := time.Now().UTC()
	genre := &Genre{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := genre.Validate(); err != nil {
		return nil, err
	}

	return genre, nil
}

// Validate checks if the Genre has valid data.
func (g *Genre) Validate() error {
	if g.ID == uuid.Nil {
		return ErrInvalidID
	}

	if g.Name == "" {
		return ErrEmptyGenreName
	}

	return nil
}
