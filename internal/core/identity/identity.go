// Package identity provides invocation metadata context management.
//
// Overview:
//   - Responsibility: Store and retrieve per-invocation metadata from context
//   - Key Types: RunMeta for the current jerseykit invocation
//   - Concurrency Model: All functions are safe for concurrent use
//   - Error Semantics: Functions return boolean to indicate presence of data
//   - Performance Notes: Minimal allocations, context-based storage
//
// Usage:
//
//	ctx = identity.WithRun(ctx, identity.NewRun("run"))
//	meta, ok := identity.RunFrom(ctx)
package identity

import (
	"context"
	"os"

	"github.com/google/uuid"
)

// RunMeta describes one invocation of the CLI.
type RunMeta struct {
	RunID    string // Unique identifier correlating all log lines of one invocation
	Command  string // CLI mode being executed (run, check)
	Hostname string // Host the tool runs on
}

type contextKey string

const runKey contextKey = "run"

// NewRun creates metadata for a new invocation of the given command.
func NewRun(command string) *RunMeta {
	hostname, _ := os.Hostname()
	return &RunMeta{
		RunID:    uuid.NewString(),
		Command:  command,
		Hostname: hostname,
	}
}

// WithRun stores invocation metadata in the context.
func WithRun(ctx context.Context, m *RunMeta) context.Context {
	return context.WithValue(ctx, runKey, m)
}

// RunFrom retrieves invocation metadata from the context.
// Returns the metadata and a boolean indicating if it was found.
func RunFrom(ctx context.Context) (*RunMeta, bool) {
	m, ok := ctx.Value(runKey).(*RunMeta)
	return m, ok && m != nil
}
