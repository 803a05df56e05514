// Package guard decides whether a protected surface may be shown for the
// current session state.
package guard

import "github.com/dmitrijs2005/sweetshop/internal/client/models"

// Decision is the outcome of evaluating a navigation attempt.
type Decision int

const (
	// Wait means the session is still being restored; show a placeholder.
	Wait Decision = iota

	// ToLogin means there is no identity; send the user to login.
	ToLogin

	// ToShop means the identity lacks the administrator role required by
	// the target; send the user back to the shop.
	ToShop

	// Allow means the requested surface may be shown.
	Allow
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case ToLogin:
		return "to-login"
	case ToShop:
		return "to-shop"
	case Allow:
		return "allow"
	default:
		return "unknown"
	}
}

// Evaluate applies the gating rules in order: still restoring, then missing
// identity, then missing administrator role, then allow. It is a pure
// function and safe to re-evaluate on every navigation.
func Evaluate(restoring bool, identity *models.Identity, adminOnly bool) Decision {
	if restoring {
		return Wait
	}
	if identity == nil {
		return ToLogin
	}
	if adminOnly && !identity.Admin {
		return ToShop
	}
	return Allow
}
