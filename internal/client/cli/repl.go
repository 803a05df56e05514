package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Category(ctx context.Context, args []string) error
	Categories(ctx context.Context) error
	Buy(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Restock(ctx context.Context, args []string) error
}

// runREPL starts the read–eval–print loop of the Sweet Shop shell.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help            — show available commands
//	  - register        — create an account
//	  - login           — authenticate
//	  - exit | quit     — leave the program
//
//	Logged in:
//	  - help            — show available commands
//	  - (l)ist          — refresh and show the filtered catalog
//	  - search [text]   — set (or clear) the search text
//	  - category [name] — set (or reset) the category selection
//	  - categories      — show the available category options
//	  - buy <id>        — purchase one unit
//	  - whoami          — show the active identity
//	  - logout          — log out
//	  - exit | quit     — leave the program
//
//	Administrators additionally:
//	  - add                 — add a sweet
//	  - edit <id>           — edit a sweet
//	  - delete <id>         — delete a sweet
//	  - restock <id> <n>    — increase stock by n
//
// Any errors returned by command handlers are ignored here; handlers surface
// their own notifications. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sweetshop %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			switch {
			case a.isLoggedIn() && a.isAdmin():
				printlnFn("Available commands: (l)ist, search, category, categories, buy, add, edit, delete, restock, whoami, logout, exit")
			case a.isLoggedIn():
				printlnFn("Available commands: (l)ist, search, category, categories, buy, whoami, logout, exit")
			default:
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, args)

		case "category":
			_ = a.Category(ctx, args)

		case "categories":
			_ = a.Categories(ctx)

		case "buy":
			_ = a.Buy(ctx, args)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "restock":
			_ = a.Restock(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
