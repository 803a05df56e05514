package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the backend API surface. Callers match with errors.Is.
var (
	// ErrUnavailable means the backend could not be reached at all
	// (network failure, timeout).
	ErrUnavailable = errors.New("server unavailable")

	// ErrInvalidCredentials means the backend rejected a login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRegistrationRejected means the backend refused a registration
	// (e.g. username already taken).
	ErrRegistrationRejected = errors.New("registration rejected")

	// ErrNotLoggedIn means an authenticated operation was attempted with
	// no stored token. Raised locally, before any network call.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrFetch means the catalog read failed.
	ErrFetch = errors.New("could not load sweets")
)

// APIError carries a non-2xx response from a mutation endpoint, including
// the server-supplied message when the body contains one (e.g. "This sweet
// is out of stock.").
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
