package generators

import (
	"context"
	"fmt"
	"path"

	"go.eggybyte.com/jerseykit/internal/core/log"
	"go.eggybyte.com/jerseykit/internal/projectfs"
	"go.eggybyte.com/jerseykit/internal/templates"
	"go.eggybyte.com/jerseykit/internal/toolrunner"
	"go.eggybyte.com/jerseykit/internal/ui"
)

// ProjectGenerator scaffolds a Spring + Jersey web project.
//
// Parameters:
//   - runner: Tool runner bound to the shared execution context
//   - loader: Template loader for the file catalog
//   - versions: Dependency and plugin versions written to pom.xml
//   - logger: Diagnostic logger
//
// Returns:
//   - None (data structure)
//
// Concurrency:
//   - Not safe for concurrent use
//
// Performance:
//   - Dominated by the Maven archetype run
type ProjectGenerator struct {
	runner   *toolrunner.Runner
	loader   *templates.Loader
	versions templates.Versions
	logger   log.Logger
}

// Option configures a ProjectGenerator.
type Option func(*ProjectGenerator)

// WithLogger sets the diagnostic logger.
func WithLogger(l log.Logger) Option {
	return func(g *ProjectGenerator) {
		g.logger = l
	}
}

// WithVersions overrides the dependency and plugin versions.
func WithVersions(v templates.Versions) Option {
	return func(g *ProjectGenerator) {
		g.versions = v
	}
}

// NewProjectGenerator creates a new project generator.
//
// Parameters:
//   - runner: Tool runner whose execution context decides where the project is created
//   - opts: Optional logger and versions
//
// Returns:
//   - *ProjectGenerator: Generator instance
//
// Concurrency:
//   - Safe to construct concurrently; instances are not shared
//
// Performance:
//   - Minimal initialization overhead
func NewProjectGenerator(runner *toolrunner.Runner, opts ...Option) *ProjectGenerator {
	g := &ProjectGenerator{
		runner:   runner,
		loader:   templates.NewLoader(),
		versions: templates.DefaultVersions(),
		logger:   log.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate creates ./<ProjectName> in the execution context's working directory.
//
// The ProjectSpec is validated before anything is run or written. Then the Maven
// quickstart archetype is generated, the execution context moves into the new
// project directory, the Spring/Jersey block is appended to pom.xml, the layer
// directories are created and the remaining catalog files are written. A failing
// step stops generation and leaves the partial tree in place.
//
// Parameters:
//   - ctx: Context for cancellation
//   - spec: Project name and base package
//
// Returns:
//   - error: INVALID_ARGUMENT, EXTERNAL_COMMAND or INTERNAL error
//
// Concurrency:
//   - Single-threaded
//
// Performance:
//   - One Maven run plus a handful of small file writes
func (g *ProjectGenerator) Generate(ctx context.Context, spec ProjectSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	ui.Info("Creating Spring project...")
	logger := g.logger.With("project", spec.ProjectName, "package", spec.BasePackage)

	if _, err := g.runner.Mvn(ctx,
		"archetype:generate",
		"-DgroupId="+spec.BasePackage,
		"-DartifactId="+spec.ProjectName,
		"-DarchetypeArtifactId=maven-archetype-quickstart",
		"-DinteractiveMode=false",
	); err != nil {
		return fmt.Errorf("generate maven project: %w", err)
	}

	env := g.runner.Env()
	env.Chdir(spec.ProjectName)
	logger.Debug("entered project directory", log.Str("dir", env.WorkDir))

	pfs := projectfs.NewProjectFS(env.WorkDir, logger)
	data := templates.Data{
		ProjectName: spec.ProjectName,
		BasePackage: spec.BasePackage,
		PackagePath: spec.PackagePath(),
		Versions:    g.versions,
	}

	catalog := templates.Catalog()
	for _, e := range catalog {
		if e.Append {
			if err := g.emit(pfs, e, data); err != nil {
				return err
			}
		}
	}

	if err := g.createLayout(pfs, spec); err != nil {
		return err
	}

	for _, e := range catalog {
		if !e.Append {
			if err := g.emit(pfs, e, data); err != nil {
				return err
			}
		}
	}

	logger.Info("project generated", log.Str("dir", env.WorkDir))
	ui.Success("Project %s created", spec.ProjectName)
	return nil
}

func (g *ProjectGenerator) createLayout(pfs *projectfs.ProjectFS, spec ProjectSpec) error {
	base := path.Join("src/main/java", spec.PackagePath())
	for _, layer := range layerDirs {
		if err := pfs.CreateDirectory(path.Join(base, layer)); err != nil {
			return err
		}
	}
	return pfs.CreateDirectory(webInfDir)
}

func (g *ProjectGenerator) emit(pfs *projectfs.ProjectFS, e templates.Entry, data templates.Data) error {
	target, content, err := g.loader.Render(e, data)
	if err != nil {
		return err
	}
	if e.Append {
		return pfs.AppendFile(target, content)
	}
	return pfs.WriteFile(target, content, 0o644)
}
