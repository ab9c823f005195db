// Package provision installs the JDK, Maven and GlassFish when they are missing.
//
// Overview:
//   - Responsibility: Probe each required tool and install the missing ones
//   - Key Types: Provisioner, Target, Strategy (unix and windows implementations)
//   - Concurrency Model: Sequential; installs mutate the shared execution context's search path
//   - Error Semantics: The first failed install aborts provisioning; nothing is retried
//   - Performance Notes: Probes are cheap; installs are dominated by apt-get and the download
//
// Probing is the only idempotency mechanism: a second run finds every tool and
// installs nothing. No marker files are written.
//
// Usage:
//
//	strategy := provision.NewStrategy(env.Platform, runner, fetcher, cfg)
//	err := provision.NewProvisioner(runner, strategy, logger).Provision(ctx)
package provision

import (
	"context"
	"fmt"
	"time"

	"go.eggybyte.com/jerseykit/internal/config"
	"go.eggybyte.com/jerseykit/internal/core/log"
	"go.eggybyte.com/jerseykit/internal/execenv"
	"go.eggybyte.com/jerseykit/internal/toolrunner"
	"go.eggybyte.com/jerseykit/internal/ui"
)

// Target is a tool that must be available before a project can be generated.
type Target struct {
	Name  string // Display name
	Probe string // Command line whose successful launch proves the tool is installed
}

// The required tools, probed in this order.
var (
	JDK       = Target{Name: "JDK", Probe: "java -version"}
	Maven     = Target{Name: "Maven", Probe: "mvn -version"}
	GlassFish = Target{Name: "GlassFish", Probe: "asadmin version"}
)

// Targets returns the required tools in provisioning order.
func Targets() []Target {
	return []Target{JDK, Maven, GlassFish}
}

// Strategy installs a missing tool on one platform.
type Strategy interface {
	Install(ctx context.Context, t Target) error
}

// Fetcher downloads an archive and extracts it into a directory.
type Fetcher interface {
	FetchAndExtract(ctx context.Context, url, dest string) error
}

// NewStrategy selects the installation strategy for platform.
func NewStrategy(platform execenv.Platform, runner *toolrunner.Runner, fetcher Fetcher, cfg *config.Config) Strategy {
	if platform == execenv.Windows {
		return &WindowsStrategy{runner: runner, fetcher: fetcher, glassfish: cfg.GlassFish}
	}
	return &UnixStrategy{runner: runner, fetcher: fetcher, pkg: cfg.Provision, glassfish: cfg.GlassFish}
}

// Provisioner probes and installs the required tools.
//
// Parameters:
//   - runner: Tool runner used for probes
//   - strategy: Platform installation strategy
//   - logger: Diagnostic logger
//
// Returns:
//   - None (data structure)
//
// Concurrency:
//   - Not safe for concurrent use
//
// Performance:
//   - Three probes when everything is installed
type Provisioner struct {
	runner   *toolrunner.Runner
	strategy Strategy
	logger   log.Logger
}

// NewProvisioner creates a Provisioner.
func NewProvisioner(runner *toolrunner.Runner, strategy Strategy, logger log.Logger) *Provisioner {
	if logger == nil {
		logger = log.Nop()
	}
	return &Provisioner{runner: runner, strategy: strategy, logger: logger}
}

// Provision probes JDK, Maven and GlassFish in order and installs each one that is missing.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - error: The first install failure, prefixed with the tool name
//
// Concurrency:
//   - Single-threaded
//
// Performance:
//   - Installs only what the probes report missing
func (p *Provisioner) Provision(ctx context.Context) error {
	ui.Info("Installing required software...")

	for _, t := range Targets() {
		if p.runner.Exists(ctx, t.Probe) {
			ui.Info("%s is already installed.", t.Name)
			p.logger.Debug("tool present", log.Str("tool", t.Name))
			continue
		}

		ui.Warning("%s is not installed. Installing...", t.Name)
		start := time.Now()
		if err := p.strategy.Install(ctx, t); err != nil {
			p.logger.Error(err, "install failed", log.Str("tool", t.Name))
			return fmt.Errorf("install %s: %w", t.Name, err)
		}
		p.logger.Info("tool installed", log.Str("tool", t.Name), log.Dur("duration", time.Since(start)))
		ui.Success("%s installed", t.Name)
	}
	return nil
}
