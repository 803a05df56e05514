// Package session owns the authenticated identity for the client: login,
// registration, logout, and restoring a persisted session at startup.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/sweetshop/internal/client/api"
	"github.com/dmitrijs2005/sweetshop/internal/client/models"
	"github.com/dmitrijs2005/sweetshop/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/sweetshop/internal/dbx"
	"github.com/dmitrijs2005/sweetshop/internal/logging"
)

// Durable storage keys. Written together on login, cleared together on
// logout.
const (
	keyToken    = "token"
	keyIdentity = "identity"
)

// Store holds the current Identity and keeps it in sync with durable
// storage and the API client's bearer token. It is used from a single
// goroutine (the REPL).
type Store struct {
	client    api.Client
	db        *sql.DB
	log       logging.Logger
	identity  *models.Identity
	restoring bool
}

// NewStore builds a Store. Restoring() reports true until Restore has run.
func NewStore(client api.Client, db *sql.DB, log logging.Logger) *Store {
	return &Store{client: client, db: db, log: log, restoring: true}
}

// Restore loads a persisted session, if any, and installs its token on the
// API client. It must run once at startup, before any protected surface is
// shown. A corrupt or partial record is treated as no session.
func (s *Store) Restore(ctx context.Context) error {
	defer func() { s.restoring = false }()

	repo := metadata.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	record, err := repo.Get(ctx, keyIdentity)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if len(token) == 0 || len(record) == 0 {
		return nil
	}

	var ident models.Identity
	if err := json.Unmarshal(record, &ident); err != nil {
		s.log.Warn(ctx, "discarding unreadable identity record", "error", err)
		return nil
	}
	ident.Token = string(token)

	s.identity = &ident
	s.client.SetToken(ident.Token)
	s.log.Info(ctx, "session restored", "username", ident.Username, "admin", ident.Admin)
	return nil
}

// Login authenticates against the backend. On success the token and the
// serialized identity are persisted in one transaction, and only then does
// the in-memory state change. On any failure prior state is untouched and
// nothing is written.
func (s *Store) Login(ctx context.Context, username string, password []byte) error {
	token, err := s.client.Login(ctx, username, string(password))
	if err != nil {
		return err
	}

	ident := identityFromToken(username, token)
	record, err := json.Marshal(ident)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyIdentity, record)
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.identity = &ident
	s.client.SetToken(token)
	s.log.Info(ctx, "logged in", "username", username, "admin", ident.Admin)
	return nil
}

// Register creates an account. Success does not establish a session; the
// user logs in afterwards.
func (s *Store) Register(ctx context.Context, username, email string, password []byte) error {
	return s.client.Register(ctx, username, email, string(password))
}

// Logout clears the in-memory identity and both storage keys
// unconditionally. No backend call is involved.
func (s *Store) Logout(ctx context.Context) error {
	s.identity = nil
	s.client.SetToken("")

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Clear(ctx)
	})
	if err != nil {
		return fmt.Errorf("clear session storage: %w", err)
	}
	s.log.Info(ctx, "logged out")
	return nil
}

// Identity returns a copy of the active identity, or nil when logged out.
func (s *Store) Identity() *models.Identity {
	if s.identity == nil {
		return nil
	}
	ident := *s.identity
	return &ident
}

// Token returns the stored bearer token, or "" when logged out.
func (s *Store) Token() string {
	if s.identity == nil {
		return ""
	}
	return s.identity.Token
}

// IsAdmin reports whether the active identity has the administrator flag.
func (s *Store) IsAdmin() bool {
	return s.identity != nil && s.identity.Admin
}

// Restoring reports whether the startup restore is still pending.
func (s *Store) Restoring() bool {
	return s.restoring
}

// identityFromToken builds the local Identity for username. The access
// token is inspected (without signature verification, it is only a display
// hint) for user id, email, and an admin claim. Backends that embed no such
// claims fall back to the historical convention of treating the literal
// username "admin" as the administrator; that convention is not a security
// boundary, authorization is enforced server-side.
func identityFromToken(username, token string) models.Identity {
	ident := models.Identity{
		Username: username,
		Email:    username + "@example.com",
		Admin:    username == "admin",
		Token:    token,
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ident
	}

	if v, ok := claims["user_id"]; ok {
		ident.Id = claimString(v)
	} else if v, ok := claims["sub"]; ok {
		ident.Id = claimString(v)
	}
	if v, ok := claims["email"].(string); ok && v != "" {
		ident.Email = v
	}
	if v, ok := claims["is_admin"].(bool); ok {
		ident.Admin = v
	} else if v, ok := claims["is_staff"].(bool); ok {
		ident.Admin = v
	}
	return ident
}

func claimString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatInt(int64(value), 10)
	default:
		return fmt.Sprintf("%v", value)
	}
}
