package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or the signature
	// doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials indicates the email/password pair did not match
	// a user. The same error covers a missing user and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserInactive indicates the credentials matched but the account is
	// inactive. Surfaces with the same HTTP status as ErrInvalidCredentials.
	ErrUserInactive = errors.New("user account is inactive")
)
