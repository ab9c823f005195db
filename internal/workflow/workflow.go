// Package workflow sequences the jerseykit modes.
//
// Overview:
//   - Responsibility: Order privilege check, provisioning, generation and deployment
//   - Key Types: Workflow, Deps, RunOptions
//   - Concurrency Model: Strictly sequential
//   - Error Semantics: The first failing step's error is returned unchanged
//   - Performance Notes: Orchestration only
package workflow

import (
	"context"
	stderrors "errors"

	"go.eggybyte.com/jerseykit/internal/core/errors"
	"go.eggybyte.com/jerseykit/internal/core/log"
	"go.eggybyte.com/jerseykit/internal/generators"
	"go.eggybyte.com/jerseykit/internal/ui"
)

// Prompt labels for interactive input.
const (
	ProjectNamePrompt = "Enter the project name:"
	BasePackagePrompt = "Enter the base package name (e.g., com.example):"
)

// Messages printed when a mode finishes.
const (
	CheckCompleteMessage = "All software needed to run this installer is properly installed"
	RunCompleteMessage   = "Spring project setup complete."
	BuildHintMessage     = "You can build the project by running: mvn clean install"
)

// Guard verifies elevated privileges.
type Guard interface {
	Ensure() error
}

// Provisioner installs missing tools.
type Provisioner interface {
	Provision(ctx context.Context) error
}

// Generator creates the project skeleton.
type Generator interface {
	Generate(ctx context.Context, spec generators.ProjectSpec) error
}

// Deployer deploys a generated project.
type Deployer interface {
	Deploy(ctx context.Context, projectName string) error
}

// Asker reads one answer from the user.
type Asker interface {
	Ask(label string) (string, error)
}

// Deps are the collaborators of a Workflow.
type Deps struct {
	Guard       Guard
	Provisioner Provisioner
	Generator   Generator
	Deployer    Deployer
	Asker       Asker
	Logger      log.Logger
}

// Workflow runs the check and run modes.
type Workflow struct {
	deps Deps
}

// New creates a Workflow.
func New(deps Deps) *Workflow {
	if deps.Logger == nil {
		deps.Logger = log.Nop()
	}
	return &Workflow{deps: deps}
}

// RunOptions configures the run mode.
type RunOptions struct {
	SkipInstall bool   // Skip provisioning
	ProjectName string // Prompted for when empty
	BasePackage string // Prompted for when empty
}

// Check verifies privileges and provisions the required tools.
func (w *Workflow) Check(ctx context.Context) error {
	if err := w.deps.Guard.Ensure(); err != nil {
		return err
	}
	if err := w.deps.Provisioner.Provision(ctx); err != nil {
		return err
	}

	ui.Plain("")
	ui.Success(CheckCompleteMessage)
	return nil
}

// Run verifies privileges, provisions unless skipped, asks for missing
// project values, generates the project and deploys it.
func (w *Workflow) Run(ctx context.Context, opts RunOptions) error {
	logger := w.deps.Logger

	if err := w.deps.Guard.Ensure(); err != nil {
		return err
	}

	if opts.SkipInstall {
		logger.Info("skipping installation")
	} else if err := w.deps.Provisioner.Provision(ctx); err != nil {
		return err
	}

	spec, err := w.resolveSpec(opts)
	if err != nil {
		return err
	}

	if err := w.deps.Generator.Generate(ctx, spec); err != nil {
		return err
	}
	if err := w.deps.Deployer.Deploy(ctx, spec.ProjectName); err != nil {
		return err
	}

	ui.Success(RunCompleteMessage)
	ui.Plain(BuildHintMessage)
	return nil
}

func (w *Workflow) resolveSpec(opts RunOptions) (generators.ProjectSpec, error) {
	spec := generators.ProjectSpec{ProjectName: opts.ProjectName, BasePackage: opts.BasePackage}

	var err error
	if spec.ProjectName == "" {
		if spec.ProjectName, err = w.ask(ProjectNamePrompt, "project name"); err != nil {
			return spec, err
		}
	}
	if spec.BasePackage == "" {
		if spec.BasePackage, err = w.ask(BasePackagePrompt, "base package name"); err != nil {
			return spec, err
		}
	}
	return spec, nil
}

func (w *Workflow) ask(label, what string) (string, error) {
	if w.deps.Asker == nil {
		return "", errors.Newf(errors.CodeInvalidArgument, "%s is required", what)
	}

	answer, err := w.deps.Asker.Ask(label)
	if err != nil {
		if stderrors.Is(err, ui.ErrNoInput) {
			return "", errors.Newf(errors.CodeInvalidArgument, "no %s given", what)
		}
		return "", errors.Wrapf(errors.CodeInternal, "read input", err, "read %s", what)
	}
	return answer, nil
}
