// Package notify decouples user-visible notifications (the toast analogue)
// from the operations that emit them, so the catalog logic is testable
// without a terminal.
package notify

// Notifier receives transient user-facing messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Funcs adapts two functions into a Notifier.
type Funcs struct {
	OnSuccess func(msg string)
	OnError   func(msg string)
}

func (f Funcs) Success(msg string) {
	if f.OnSuccess != nil {
		f.OnSuccess(msg)
	}
}

func (f Funcs) Error(msg string) {
	if f.OnError != nil {
		f.OnError(msg)
	}
}

// Discard drops every notification. Useful in tests.
var Discard Notifier = Funcs{}
