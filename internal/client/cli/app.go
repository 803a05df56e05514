// Package cli implements the interactive shell of the Sweet Shop client.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dmitrijs2005/sweetshop/internal/client/api"
	"github.com/dmitrijs2005/sweetshop/internal/client/catalog"
	"github.com/dmitrijs2005/sweetshop/internal/client/config"
	"github.com/dmitrijs2005/sweetshop/internal/client/guard"
	"github.com/dmitrijs2005/sweetshop/internal/client/localdb"
	"github.com/dmitrijs2005/sweetshop/internal/client/session"
	"github.com/dmitrijs2005/sweetshop/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the session store, the catalog service, and the REPL together.
// The REPL also holds the view state (search text and category selection);
// the visible list is always recomputed from the cached collection and
// these two inputs.
type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	client  api.Client
	session *session.Store
	catalog *catalog.Service
	reader  *bufio.Reader

	query    string
	category string
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := localdb.Open(ctx, cfg.DatabaseFile)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	client := api.NewHTTPClient(cfg.BaseURL, cfg.RequestTimeout)
	sess := session.NewStore(client, db, log)
	cat := catalog.NewService(client, sess, terminalNotifier{}, log)

	return &App{
		config:   cfg,
		log:      log,
		db:       db,
		client:   client,
		session:  sess,
		catalog:  cat,
		reader:   bufio.NewReader(os.Stdin),
		category: catalog.CategoryAll,
	}, nil
}

// Run restores any persisted session and enters the REPL. It returns when
// the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.session.Restore(ctx); err != nil {
		a.log.Error(ctx, "session restore failed", "error", err)
	}

	printlnFn("Welcome to the Sweet Shop (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) Close() {
	_ = a.client.Close()
	_ = a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.Identity() != nil
}

func (a *App) isAdmin() bool {
	return a.session.IsAdmin()
}

// status renders the prompt suffix, e.g. "(alice)" or "(root admin)".
func (a *App) status() string {
	ident := a.session.Identity()
	if ident == nil {
		return ""
	}
	if ident.Admin {
		return fmt.Sprintf("(%s admin)", ident.Username)
	}
	return fmt.Sprintf("(%s)", ident.Username)
}

// allowed evaluates the route guard for the requested surface and explains
// the redirect to the user when access is denied.
func (a *App) allowed(adminOnly bool) bool {
	switch guard.Evaluate(a.session.Restoring(), a.session.Identity(), adminOnly) {
	case guard.Wait:
		printlnFn("Session is still loading, try again in a moment.")
		return false
	case guard.ToLogin:
		printlnFn("Please log in first.")
		return false
	case guard.ToShop:
		printlnFn("Administrator access required.")
		return false
	default:
		return true
	}
}
