package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/sweetshop/internal/client/api"
	"github.com/dmitrijs2005/sweetshop/internal/common"
)

// Login prompts for credentials and establishes a session. A rejected login
// leaves the previous session state untouched.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, username, password); err != nil {
		if errors.Is(err, api.ErrInvalidCredentials) {
			printlnFn("Login failed. Please check your credentials.")
		} else {
			printlnFn("Login failed:", err.Error())
		}
		return err
	}

	printlnFn("Logged in as", username)
	return nil
}

// Register prompts for account details and creates the account. A
// successful registration does not log the user in.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Register(ctx, username, email, password); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn("Account created. You can log in now.")
	return nil
}

// Logout drops the session and its durable storage.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// Whoami shows the active identity.
func (a *App) Whoami(ctx context.Context) error {
	ident := a.session.Identity()
	if ident == nil {
		printlnFn("Not logged in.")
		return nil
	}
	role := "customer"
	if ident.Admin {
		role = "administrator"
	}
	printlnFn(ident.Username, "<"+ident.Email+">", role)
	return nil
}
