package service

import "errors"

// Catalog service errors for business-rule violations. Storage-level
// conditions (missing book, duplicate ISBN) reuse the store package's
// sentinel errors.
var (
	// ErrAuthorNotFound indicates a book write referenced an author that
	// does not exist.
	ErrAuthorNotFound = errors.New("referenced author does not exist")

	// ErrGenreNotFound indicates a book write referenced a genre that
	// does not exist.
	ErrGenreNotFound = errors.New("referenced genre does not exist")
)
