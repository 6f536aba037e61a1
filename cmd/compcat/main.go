// Package main is the entry point for the compcat CLI.
//
// compcat serves a catalog of UI components and documentation topics to
// MCP clients. The catalog is read once at startup from a local directory,
// a git repository, or the built-in samples, and stays frozen for the life
// of the process. Besides `serve`, the CLI can list, show, and validate a
// catalog from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"compcat/internal/logging"
	"compcat/internal/ui"
)

func main() {
	appLogger := logging.NewAppLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(appLogger).ExecuteContext(ctx); err != nil {
		appLogger.Debug("Command failed", "error", err)
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("Error: ")+err.Error())
		stop()
		os.Exit(1)
	}
}
