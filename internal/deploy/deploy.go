// Package deploy drives the GlassFish administration CLI.
//
// Overview:
//   - Responsibility: Start a domain, create the application and deploy its war
//   - Key Types: Driver
//   - Concurrency Model: Sequential; one asadmin command at a time
//   - Error Semantics: The first failing sub-step aborts the rest and is named in the error
//   - Performance Notes: Dominated by asadmin start-up time
package deploy

import (
	"context"
	"fmt"

	"go.eggybyte.com/jerseykit/internal/core/log"
	"go.eggybyte.com/jerseykit/internal/toolrunner"
	"go.eggybyte.com/jerseykit/internal/ui"
)

// DefaultDomain is the domain created when none is configured.
const DefaultDomain = "mydomain"

// Driver deploys a generated project to a local GlassFish instance.
type Driver struct {
	runner *toolrunner.Runner
	domain string
	logger log.Logger
}

// NewDriver creates a Driver. An empty domain selects DefaultDomain.
func NewDriver(runner *toolrunner.Runner, domain string, logger log.Logger) *Driver {
	if domain == "" {
		domain = DefaultDomain
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Driver{runner: runner, domain: domain, logger: logger}
}

type step struct {
	name string
	args []string
}

// Steps returns the asadmin invocations for projectName in execution order.
func (d *Driver) Steps(projectName string) [][]string {
	steps := d.plan(projectName)
	out := make([][]string, len(steps))
	for i, s := range steps {
		out[i] = s.args
	}
	return out
}

func (d *Driver) plan(projectName string) []step {
	war := fmt.Sprintf("target/%s.war", projectName)
	return []step{
		{"start domain", []string{"start-domain"}},
		{"create domain", []string{"create-domain", "--nopassword", "true", d.domain}},
		{"create application", []string{"create-application", "--contextroot", "/" + projectName, "--name", projectName, war}},
		{"deploy application", []string{"deploy", "--name", projectName, war}},
	}
}

// Deploy runs the deployment sub-steps in the execution context's working
// directory, which must be the generated project. The war is expected at
// target/<projectName>.war; building it is left to the user.
func (d *Driver) Deploy(ctx context.Context, projectName string) error {
	ui.Info("Configuring GlassFish...")

	steps := d.plan(projectName)
	for i, s := range steps {
		ui.Step(i+1, len(steps), "%s", s.name)
		if _, err := d.runner.Asadmin(ctx, s.args...); err != nil {
			d.logger.Error(err, "deployment step failed", log.Str("step", s.name), log.Str("project", projectName))
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	d.logger.Info("application deployed", log.Str("project", projectName), log.Str("domain", d.domain))
	return nil
}
