package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"debtop/internal/cli"
)

func main() {
	// Without this, the runtime re-raises a fatal SIGPIPE when a write to
	// stdout fails with EPIPE, so the exitCode mapping below would never
	// see the error.
	signal.Ignore(syscall.SIGPIPE)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if code := exitCode(cli.Execute(ctx)); code != 0 {
		os.Exit(code)
	}
}

// exitCode maps the outcome of a CLI run to a process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130 // Standard shell convention for SIGINT
	case errors.Is(err, syscall.EPIPE):
		// Output went to a closed pipe (e.g. piped to head); not an error.
		return 0
	default:
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
}
