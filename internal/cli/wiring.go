package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.eggybyte.com/jerseykit/internal/archive"
	"go.eggybyte.com/jerseykit/internal/config"
	"go.eggybyte.com/jerseykit/internal/core/errors"
	"go.eggybyte.com/jerseykit/internal/core/identity"
	"go.eggybyte.com/jerseykit/internal/core/log"
	"go.eggybyte.com/jerseykit/internal/deploy"
	"go.eggybyte.com/jerseykit/internal/generators"
	"go.eggybyte.com/jerseykit/internal/logx"
	"go.eggybyte.com/jerseykit/internal/privilege"
	"go.eggybyte.com/jerseykit/internal/provision"
	"go.eggybyte.com/jerseykit/internal/templates"
	"go.eggybyte.com/jerseykit/internal/toolrunner"
	"go.eggybyte.com/jerseykit/internal/ui"
	"go.eggybyte.com/jerseykit/internal/workflow"
)

// session is everything one mode needs, built from the loaded configuration.
type session struct {
	ctx      context.Context
	logger   log.Logger
	workflow *workflow.Workflow
}

// newSession loads configuration and wires the components for cmd.
//
// Parameters:
//   - cmd: The subcommand being executed
//
// Returns:
//   - *session: Wired workflow with a run-scoped logger and context
//   - error: Configuration or logger setup error
//
// Concurrency:
//   - Single-threaded
//
// Performance:
//   - One configuration read per invocation
func (a *App) newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	base, err := a.newLogger(cfg)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = identity.WithRun(ctx, identity.NewRun(cmd.Name()))
	logger := logx.FromContext(ctx, base)
	logger.Debug("configuration loaded", "platform", string(a.Env.Platform), "work_dir", a.Env.WorkDir)

	executor := a.Executor
	if executor == nil {
		executor = toolrunner.OSExecutor{Stream: true}
	}
	runner := toolrunner.NewRunner(a.Env, toolrunner.WithExecutor(executor), toolrunner.WithLogger(logger))

	fetcher := a.Fetcher
	if fetcher == nil {
		fetcher = archive.NewFetcher(archive.WithLogger(logger))
	}

	strategy := provision.NewStrategy(a.Env.Platform, runner, fetcher, cfg)

	wf := workflow.New(workflow.Deps{
		Guard:       privilege.NewGuard(a.Elevated, logger),
		Provisioner: provision.NewProvisioner(runner, strategy, logger),
		Generator: generators.NewProjectGenerator(runner,
			generators.WithLogger(logger),
			generators.WithVersions(versionsFrom(cfg.Project)),
		),
		Deployer: deploy.NewDriver(runner, cfg.Deploy.Domain, logger),
		Asker:    ui.NewPrompter(a.Env.Stdin),
		Logger:   logger,
	})

	return &session{ctx: ctx, logger: logger, workflow: wf}, nil
}

func (a *App) loadConfig() (*config.Config, error) {
	path := a.configPath
	if path == "" {
		if candidate := a.Env.Resolve(config.DefaultFile); fileExists(candidate) {
			path = candidate
		}
	} else {
		path = a.Env.Resolve(path)
	}
	return config.LoadWith(path, a.Env.Resolve(config.DefaultEnvFile), a.Environ)
}

// newLogger builds the diagnostic logger. Flags win over configuration.
func (a *App) newLogger(cfg *config.Config) (log.Logger, error) {
	format := cfg.Log.Format
	if a.logFormat != "" {
		format = a.logFormat
	}
	f, err := logx.ParseFormat(format)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInvalidArgument, "parse log format", err)
	}

	level, err := logx.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInvalidArgument, "parse log level", err)
	}
	if a.verbose {
		level = slog.LevelDebug
	}

	return logx.New(
		logx.WithFormat(f),
		logx.WithLevel(level),
		logx.WithColor(ui.IsTerminal(a.Env.Stderr)),
		logx.WithWriter(a.Env.Stderr),
	), nil
}

func versionsFrom(p config.ProjectConfig) templates.Versions {
	return templates.Versions{
		Spring:         p.SpringVersion,
		Jersey:         p.JerseyVersion,
		CompilerPlugin: p.CompilerPluginVersion,
		WarPlugin:      p.WarPluginVersion,
		Java:           p.JavaVersion,
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
