// Package api implements the client for the Sweet Shop backend REST API.
// All inventory truth lives on the backend; this package only moves JSON.
package api

import (
	"context"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

// Client is the backend surface consumed by the session store and the
// catalog service. The concrete implementation is HTTPClient; tests use
// hand-written fakes.
type Client interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, username, password string) (string, error)

	// Register creates an account. Success does not establish a session.
	Register(ctx context.Context, username, email, password string) error

	// ListSweets returns the full catalog. Public, no token required.
	ListSweets(ctx context.Context) ([]models.Sweet, error)

	// Purchase buys one unit and returns the server-decremented sweet.
	Purchase(ctx context.Context, id models.ID) (models.Sweet, error)

	// CreateSweet, UpdateSweet, DeleteSweet, Restock are the administrator
	// mutation endpoints.
	CreateSweet(ctx context.Context, sweet models.Sweet) (models.Sweet, error)
	UpdateSweet(ctx context.Context, id models.ID, sweet models.Sweet) (models.Sweet, error)
	DeleteSweet(ctx context.Context, id models.ID) error
	Restock(ctx context.Context, id models.ID, amount int) (models.Sweet, error)

	// SetToken installs the bearer token sent on authenticated requests.
	// An empty string clears it.
	SetToken(token string)

	// Close releases underlying transport resources.
	Close() error
}
