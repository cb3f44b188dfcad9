package api

import (
	"errors"
	"net/http"

	"github.com/mfarias/biblioteca-api/internal/domain"
	"github.com/mfarias/biblioteca-api/internal/service"
	"github.com/mfarias/biblioteca-api/internal/service/auth"
	"github.com/mfarias/biblioteca-api/internal/store"

	"github.com/mfarias/biblioteca-api/internal/api/shared"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUserInactive),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrBookNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors. A duplicate ISBN on a book write surfaces as a
	// 400 with a textual reason, matching the catalog endpoints' contract.
	case errors.Is(err, store.ErrISBNExists),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrAuthorNotFound),
		errors.Is(err, service.ErrGenreNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrUserInactive):
		return "Inactive user"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrBookNotFound):
		return "Book not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"

	case errors.Is(err, store.ErrISBNExists):
		return "ISBN already exists"

	case errors.Is(err, service.ErrAuthorNotFound),
		errors.Is(err, service.ErrGenreNotFound),
		errors.Is(err, store.ErrInvalidEntity):
		return "The specified author or genre does not exist"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return validationErr.Error()
		}
		return "Invalid request data"

	default:
		return "An internal error occurred"
	}
}

// HandleAPIError writes an error response for err, using the mapped status
// code and a sanitized message. When overrideMessage is non-empty it is used
// instead of the mapped message. The raw error is logged, never returned.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, overrideMessage string) {
	status := MapErrorToStatusCode(err)

	message := overrideMessage
	if message == "" {
		message = GetSafeErrorMessage(err)
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
