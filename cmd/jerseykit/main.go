// Package main provides the jerseykit CLI entry point.
//
// Overview:
//   - Responsibility: Process entry, signal handling and exit codes
//   - Key Types: None (delegates to internal/cli)
//   - Concurrency Model: Single-threaded CLI execution
//   - Error Semantics: Any error prints a message and exits with code 1
//   - Performance Notes: Fast startup, minimal memory footprint
//
// Usage:
//
//	jerseykit [command] [flags]
package main

import (
	"context"
	"os"
	"os/signal"

	"go.eggybyte.com/jerseykit/internal/cli"
	"go.eggybyte.com/jerseykit/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx, os.Args[1:])
	stop()

	if err != nil {
		ui.Error("Command failed: %v", err)
		os.Exit(1)
	}
}
