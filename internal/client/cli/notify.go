package cli

// terminalNotifier renders transient notifications in the shell, standing
// in for the web UI's toasts.
type terminalNotifier struct{}

func (terminalNotifier) Success(msg string) {
	printlnFn("OK:", msg)
}

func (terminalNotifier) Error(msg string) {
	printlnFn("ERROR:", msg)
}
