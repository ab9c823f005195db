// Package cli provides the jerseykit command tree.
//
// Overview:
//   - Responsibility: Parse the command line and wire the components for each mode
//   - Key Types: App
//   - Concurrency Model: Single-threaded CLI execution
//   - Error Semantics: Errors are returned to the caller; nothing here exits the process
//   - Performance Notes: Components are built only when a mode that needs them runs
//
// Usage:
//
//	jerseykit check
//	jerseykit run -s true --project-name demo --package com.example
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"go.eggybyte.com/jerseykit/internal/execenv"
	"go.eggybyte.com/jerseykit/internal/privilege"
	"go.eggybyte.com/jerseykit/internal/provision"
	"go.eggybyte.com/jerseykit/internal/toolrunner"
	"go.eggybyte.com/jerseykit/internal/ui"
	"go.eggybyte.com/jerseykit/internal/version"
)

// App holds the process-level collaborators of the command tree.
// Zero fields select the production implementation.
//
// Parameters:
//   - Env: Execution context shared by every component
//   - Executor: Process launcher (default: toolrunner.OSExecutor streaming output)
//   - Elevated: Privilege check (default: privilege.IsElevated)
//   - Fetcher: Archive downloader (default: archive.Fetcher)
//   - Environ: Environment used for configuration overrides (default: os.Environ)
//
// Returns:
//   - None (data structure)
//
// Concurrency:
//   - Single-threaded
//
// Performance:
//   - Minimal state
type App struct {
	Env      *execenv.Env
	Executor toolrunner.Executor
	Elevated privilege.Checker
	Fetcher  provision.Fetcher
	Environ  []string

	configPath     string
	verbose        bool
	logFormat      string
	nonInteractive bool
	jsonOutput     bool
}

// NewRootCmd builds the jerseykit command tree around app.
//
// Parameters:
//   - app: Collaborators; app.Env must be set
//
// Returns:
//   - *cobra.Command: Root command with check, run and version attached
//
// Concurrency:
//   - Single-threaded
//
// Performance:
//   - No component is constructed until a subcommand runs
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "jerseykit",
		Short: "Spring + Jersey project creator",
		Long: `Spring Jersey Project Creator.

This tool provides commands for:
- Installing the JDK, Maven and GlassFish when they are missing
- Generating a Maven project wired for Spring and Jersey
- Deploying the generated project to a local GlassFish domain

Both check and run require root privileges (or an elevated prompt on Windows).
Settings are read from jerseykit.yaml, .env and JERSEYKIT_* variables.`,
		Version:       version.GetVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ui.SetOutput(app.Env.Stdout, app.Env.Stderr)
			ui.SetVerbose(app.verbose)
			ui.SetNonInteractive(app.nonInteractive)
			ui.SetJSONOutput(app.jsonOutput)
		},
	}

	root.SetIn(app.Env.Stdin)
	root.SetOut(app.Env.Stdout)
	root.SetErr(app.Env.Stderr)
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "Configuration file (default: jerseykit.yaml when present)")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "V", false, "Enable verbose output and debug logging")
	root.PersistentFlags().StringVar(&app.logFormat, "log-format", "", "Diagnostic log format: console, logfmt or json")
	root.PersistentFlags().BoolVar(&app.nonInteractive, "non-interactive", false, "Fail instead of prompting for missing values")
	root.PersistentFlags().BoolVar(&app.jsonOutput, "json", false, "Print progress messages as JSON lines")

	root.AddCommand(newCheckCmd(app))
	root.AddCommand(newRunCmd(app))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the command tree for the current process with the given arguments.
//
// Parameters:
//   - ctx: Context for cancellation
//   - args: Command line arguments without the program name
//
// Returns:
//   - error: The failing mode's error, or a usage error for unknown modes and flags
//
// Concurrency:
//   - Single-threaded
//
// Performance:
//   - Fast command resolution
func Execute(ctx context.Context, args []string) error {
	env, err := execenv.FromProcess()
	if err != nil {
		return err
	}

	root := NewRootCmd(&App{Env: env, Environ: os.Environ()})
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
