// Package version provides version information for the jerseykit CLI tool.
//
// Overview:
//   - Responsibility: CLI version metadata (version, commit, build time)
//   - Key Types: Version variables and formatting functions
//   - Concurrency Model: Set at link time, read-only afterwards
//   - Error Semantics: No errors
//   - Performance Notes: Zero-cost variables
//
// Release builds set the variables with -ldflags, for example:
//
//	go build -ldflags "-X go.eggybyte.com/jerseykit/internal/version.Version=v0.1.0"
package version

import (
	"fmt"
	"runtime"
)

// Version is the CLI version.
var Version = "v0.1.0-dev"

// Commit is the git commit hash.
var Commit = "unknown"

// BuildTime is the build timestamp in RFC3339 format.
var BuildTime = "unknown"

// GetVersionString returns the version string in the format:
// jerseykit version v0.1.0 (commit 4a9b2c1, built 2026-10-01T12:10:00Z)
func GetVersionString() string {
	return fmt.Sprintf("jerseykit version %s (commit %s, built %s)", Version, Commit, BuildTime)
}

// GetFullVersionInfo returns the version string followed by the Go runtime and platform.
func GetFullVersionInfo() string {
	return fmt.Sprintf("%s\ngo version %s (%s/%s)",
		GetVersionString(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
