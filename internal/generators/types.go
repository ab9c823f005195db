// Package generators creates Spring + Jersey project skeletons.
//
// Overview:
//   - Responsibility: Run the Maven quickstart archetype, then lay the Spring/Jersey files over it
//   - Key Types: ProjectGenerator, ProjectSpec
//   - Concurrency Model: Sequential generation; the shared execution context is mutated
//   - Error Semantics: INVALID_ARGUMENT before any side effect, EXTERNAL_COMMAND or INTERNAL afterwards
//   - Performance Notes: Dominated by the Maven archetype run
//
// Usage:
//
//	gen := generators.NewProjectGenerator(runner, generators.WithLogger(logger))
//	err := gen.Generate(ctx, generators.ProjectSpec{ProjectName: "demo", BasePackage: "com.example"})
package generators

import "strings"

// ProjectSpec describes the project to generate.
//
// Parameters:
//   - ProjectName: Maven artifactId and name of the generated directory (e.g., "demo")
//   - BasePackage: Dotted Java package and Maven groupId (e.g., "com.example")
//
// Usage:
//
//	spec := ProjectSpec{ProjectName: "demo", BasePackage: "com.example"}
//	spec.PackagePath() // "com/example"
//
// Concurrency:
//
//	Read-only after validation; safe for concurrent reads.
type ProjectSpec struct {
	ProjectName string `validate:"required,artifactid"`
	BasePackage string `validate:"required,javapackage"`
}

// PackagePath returns BasePackage with dots replaced by "/".
func (s ProjectSpec) PackagePath() string {
	return strings.ReplaceAll(s.BasePackage, ".", "/")
}

// Layer directories created under the base package.
var layerDirs = []string{"config", "controller", "service", "repository"}

const webInfDir = "src/main/webapp/WEB-INF"
