// Package catalog caches the backend's product list and applies mutations
// to it. The backend stays the single source of truth: the cache changes
// only after a confirmed successful response, and stock is never
// decremented speculatively.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sweetshop/internal/client/api"
	"github.com/dmitrijs2005/sweetshop/internal/client/models"
	"github.com/dmitrijs2005/sweetshop/internal/client/notify"
	"github.com/dmitrijs2005/sweetshop/internal/logging"
)

// TokenSource reports the stored bearer token, "" when logged out. The
// session store implements it.
type TokenSource interface {
	Token() string
}

// Service owns the local product collection. It is used from a single
// goroutine (the REPL); calls are synchronous.
type Service struct {
	client  api.Client
	auth    TokenSource
	notify  notify.Notifier
	log     logging.Logger
	sweets  []models.Sweet
	loading bool
}

func NewService(client api.Client, auth TokenSource, n notify.Notifier, log logging.Logger) *Service {
	return &Service{client: client, auth: auth, notify: n, log: log}
}

// Refresh replaces the whole cached collection from the backend. On failure
// the previous collection stays as it was (empty on first load) and the
// failure is surfaced as a notification.
func (s *Service) Refresh(ctx context.Context) error {
	s.loading = true
	defer func() { s.loading = false }()

	sweets, err := s.client.ListSweets(ctx)
	if err != nil {
		s.log.Error(ctx, "catalog refresh failed", "error", err)
		s.notify.Error("Could not load sweets from the shop.")
		return err
	}

	s.sweets = sweets
	s.log.Info(ctx, "catalog refreshed", "count", len(sweets))
	return nil
}

// Loading reports whether a refresh is in progress.
func (s *Service) Loading() bool {
	return s.loading
}

// Sweets returns a copy of the cached collection.
func (s *Service) Sweets() []models.Sweet {
	out := make([]models.Sweet, len(s.sweets))
	copy(out, s.sweets)
	return out
}

// Get returns the cached sweet with the given id.
func (s *Service) Get(id models.ID) (models.Sweet, bool) {
	for _, sweet := range s.sweets {
		if sweet.Id == id {
			return sweet, true
		}
	}
	return models.Sweet{}, false
}

// Purchase buys one unit. Without a stored token it fails locally with
// api.ErrNotLoggedIn and performs no network call. On success the matching
// cached entry is replaced with the server-decremented sweet; on failure
// the cache is untouched and the server message is surfaced.
func (s *Service) Purchase(ctx context.Context, id models.ID) (models.Sweet, error) {
	if s.auth.Token() == "" {
		s.notify.Error("You must be logged in to purchase an item.")
		return models.Sweet{}, api.ErrNotLoggedIn
	}

	sweet, err := s.client.Purchase(ctx, id)
	if err != nil {
		s.log.Error(ctx, "purchase failed", "id", id, "error", err)
		s.notify.Error(userMessage(err, "Purchase failed"))
		return models.Sweet{}, err
	}

	s.replace(sweet)
	s.notify.Success(fmt.Sprintf("Purchased %s!", sweet.Name))
	return sweet, nil
}

// Create adds a new sweet through the backend and inserts the returned
// record into the cache.
func (s *Service) Create(ctx context.Context, sweet models.Sweet) (models.Sweet, error) {
	created, err := s.client.CreateSweet(ctx, sweet)
	if err != nil {
		s.log.Error(ctx, "create failed", "name", sweet.Name, "error", err)
		s.notify.Error(userMessage(err, "Could not add the sweet"))
		return models.Sweet{}, err
	}

	s.sweets = append(s.sweets, created)
	s.notify.Success("Sweet added successfully!")
	return created, nil
}

// Update replaces a sweet through the backend and patches the cache.
func (s *Service) Update(ctx context.Context, id models.ID, sweet models.Sweet) (models.Sweet, error) {
	updated, err := s.client.UpdateSweet(ctx, id, sweet)
	if err != nil {
		s.log.Error(ctx, "update failed", "id", id, "error", err)
		s.notify.Error(userMessage(err, "Could not update the sweet"))
		return models.Sweet{}, err
	}

	s.replace(updated)
	s.notify.Success("Sweet updated successfully!")
	return updated, nil
}

// Delete removes a sweet through the backend and drops it from the cache.
func (s *Service) Delete(ctx context.Context, id models.ID) error {
	if err := s.client.DeleteSweet(ctx, id); err != nil {
		s.log.Error(ctx, "delete failed", "id", id, "error", err)
		s.notify.Error(userMessage(err, "Could not delete the sweet"))
		return err
	}

	kept := s.sweets[:0]
	for _, sweet := range s.sweets {
		if sweet.Id != id {
			kept = append(kept, sweet)
		}
	}
	s.sweets = kept
	s.notify.Success("Sweet deleted successfully!")
	return nil
}

// Restock increases stock through the backend and patches the cache with
// the returned record.
func (s *Service) Restock(ctx context.Context, id models.ID, amount int) (models.Sweet, error) {
	restocked, err := s.client.Restock(ctx, id, amount)
	if err != nil {
		s.log.Error(ctx, "restock failed", "id", id, "error", err)
		s.notify.Error(userMessage(err, "Could not restock the sweet"))
		return models.Sweet{}, err
	}

	s.replace(restocked)
	s.notify.Success("Sweet restocked successfully!")
	return restocked, nil
}

// replace swaps the cached entry with the same id, or appends when the id
// is not cached yet.
func (s *Service) replace(sweet models.Sweet) {
	for i := range s.sweets {
		if s.sweets[i].Id == sweet.Id {
			s.sweets[i] = sweet
			return
		}
	}
	s.sweets = append(s.sweets, sweet)
}

// userMessage prefers the server-supplied message of an APIError and falls
// back to the given default.
func userMessage(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, api.ErrUnavailable) {
		return "The shop is unreachable right now."
	}
	return fallback
}
