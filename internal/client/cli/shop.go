package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/sweetshop/internal/client/catalog"
	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

// List re-fetches the catalog and prints the view filtered by the current
// search text and category selection, the way the shop page re-fetches on
// every visit.
func (a *App) List(ctx context.Context) error {
	if !a.allowed(false) {
		return nil
	}

	if err := a.catalog.Refresh(ctx); err != nil {
		// the notifier has already surfaced the failure
		return err
	}

	view := catalog.Filter(a.catalog.Sweets(), a.query, a.category)
	if a.query != "" || a.category != catalog.CategoryAll {
		printlnFn("Filters: search =", orNone(a.query), "| category =", a.category)
	}
	if len(view) == 0 {
		printlnFn("No sweets found")
		return nil
	}
	for _, s := range view {
		printlnFn(s.String())
	}
	return nil
}

// Search sets the search text (or clears it when called without arguments)
// and shows the resulting view.
func (a *App) Search(ctx context.Context, args []string) error {
	if !a.allowed(false) {
		return nil
	}

	a.query = strings.Join(args, " ")
	return a.List(ctx)
}

// Category sets the category selection (or resets it to "all" when called
// without arguments) and shows the resulting view.
func (a *App) Category(ctx context.Context, args []string) error {
	if !a.allowed(false) {
		return nil
	}

	if len(args) == 0 {
		a.category = catalog.CategoryAll
	} else {
		a.category = strings.Join(args, " ")
	}
	return a.List(ctx)
}

// Categories prints the selection options derived from the cached
// collection.
func (a *App) Categories(ctx context.Context) error {
	if !a.allowed(false) {
		return nil
	}

	if len(a.catalog.Sweets()) == 0 {
		if err := a.catalog.Refresh(ctx); err != nil {
			return err
		}
	}
	printlnFn("Categories:", strings.Join(catalog.Categories(a.catalog.Sweets()), ", "))
	return nil
}

// Buy purchases one unit of the given sweet. The outcome is surfaced
// through the notifier.
func (a *App) Buy(ctx context.Context, args []string) error {
	if !a.allowed(false) {
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: buy <id>")
		return nil
	}

	_, err := a.catalog.Purchase(ctx, models.ID(args[0]))
	return err
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
