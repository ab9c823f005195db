package generators

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.eggybyte.com/jerseykit/internal/core/errors"
	"go.eggybyte.com/jerseykit/internal/execenv"
	"go.eggybyte.com/jerseykit/internal/testingx"
	"go.eggybyte.com/jerseykit/internal/toolrunner"
)

const archetypePom = "<project>\n  <modelVersion>4.0.0</modelVersion>\n</project>\n"

// newFixture returns a generator whose fake Maven creates <artifactId>/pom.xml.
func newFixture(t *testing.T) (*ProjectGenerator, *testingx.FakeExecutor, *execenv.Env) {
	t.Helper()
	env := &execenv.Env{WorkDir: t.TempDir()}
	fake := testingx.NewFakeExecutor()
	fake.OnRun = func(env *execenv.Env, name string, args []string) {
		if name != "mvn" {
			return
		}
		for _, a := range args {
			if artifact, ok := strings.CutPrefix(a, "-DartifactId="); ok {
				dir := filepath.Join(env.WorkDir, artifact)
				require.NoError(t, os.MkdirAll(dir, 0o755))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "pom.xml"), []byte(archetypePom), 0o644))
			}
		}
	}
	runner := toolrunner.NewRunner(env, toolrunner.WithExecutor(fake))
	return NewProjectGenerator(runner, WithLogger(testingx.NewMockLogger(t))), fake, env
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(root, p)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

func TestGenerateWritesCatalog(t *testing.T) {
	gen, fake, env := newFixture(t)
	root := env.WorkDir
	cwd, err := os.Getwd()
	require.NoError(t, err)

	err = gen.Generate(context.Background(), ProjectSpec{ProjectName: "demo", BasePackage: "com.example"})
	require.NoError(t, err)

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, cwd, after, "process working directory is never changed")

	assert.Equal(t, []string{
		"mvn archetype:generate -DgroupId=com.example -DartifactId=demo -DarchetypeArtifactId=maven-archetype-quickstart -DinteractiveMode=false",
	}, fake.CommandLines())
	assert.Equal(t, root, fake.Calls()[0].Dir, "archetype runs in the starting directory")

	project := filepath.Join(root, "demo")
	assert.Equal(t, project, env.WorkDir, "execution context moves into the project")

	assert.Equal(t, []string{
		"pom.xml",
		"src/main/java/com/example/config/AppConfig.java",
		"src/main/java/com/example/config/JerseyConfig.java",
		"src/main/java/com/example/controller/ExampleController.java",
		"src/main/webapp/WEB-INF/applicationContext.xml",
		"src/main/webapp/WEB-INF/web.xml",
	}, listFiles(t, project))

	for _, layer := range []string{"config", "controller", "service", "repository"} {
		info, err := os.Stat(filepath.Join(project, "src", "main", "java", "com", "example", layer))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	pom, err := os.ReadFile(filepath.Join(project, "pom.xml"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pom), archetypePom), "archetype pom is kept")
	assert.Contains(t, string(pom), "<artifactId>jersey-hk2</artifactId>")
	assert.Contains(t, string(pom), "<artifactId>maven-war-plugin</artifactId>")

	appConfig, err := os.ReadFile(filepath.Join(project, "src", "main", "java", "com", "example", "config", "AppConfig.java"))
	require.NoError(t, err)
	assert.Contains(t, string(appConfig), "package com.example.config;")
	assert.Contains(t, string(appConfig), `@ComponentScan(basePackages = "com.example")`)

	webXML, err := os.ReadFile(filepath.Join(project, "src", "main", "webapp", "WEB-INF", "web.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(webXML), "<display-name>demo</display-name>")
	assert.Contains(t, string(webXML), "<param-value>com.example.controller</param-value>")
}

func TestGenerateOverwritesExistingFiles(t *testing.T) {
	gen, _, env := newFixture(t)
	stale := filepath.Join(env.WorkDir, "demo", "src", "main", "webapp", "WEB-INF", "web.xml")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0o644))

	require.NoError(t, gen.Generate(context.Background(), ProjectSpec{ProjectName: "demo", BasePackage: "com.example"}))

	got, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(got))
}

func TestGenerateRejectsUnsafeInput(t *testing.T) {
	tests := []struct {
		name string
		spec ProjectSpec
	}{
		{"path traversal package", ProjectSpec{ProjectName: "demo", BasePackage: "../../etc"}},
		{"slash in package", ProjectSpec{ProjectName: "demo", BasePackage: "com/example"}},
		{"empty package segment", ProjectSpec{ProjectName: "demo", BasePackage: "com..example"}},
		{"leading digit segment", ProjectSpec{ProjectName: "demo", BasePackage: "com.1example"}},
		{"empty package", ProjectSpec{ProjectName: "demo", BasePackage: ""}},
		{"empty name", ProjectSpec{ProjectName: "", BasePackage: "com.example"}},
		{"name with separator", ProjectSpec{ProjectName: "../demo", BasePackage: "com.example"}},
		{"name with space", ProjectSpec{ProjectName: "my demo", BasePackage: "com.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, fake, env := newFixture(t)
			start := env.WorkDir

			err := gen.Generate(context.Background(), tt.spec)
			testingx.AssertError(t, err, errors.CodeInvalidArgument)

			assert.Empty(t, fake.Calls(), "no command may run")
			assert.Equal(t, start, env.WorkDir)
			entries, readErr := os.ReadDir(start)
			require.NoError(t, readErr)
			assert.Empty(t, entries, "nothing may be written")
		})
	}
}

func TestGenerateStopsWhenMavenFails(t *testing.T) {
	gen, fake, env := newFixture(t)
	fake.Fail("mvn archetype:generate", 1)
	start := env.WorkDir

	err := gen.Generate(context.Background(), ProjectSpec{ProjectName: "demo", BasePackage: "com.example"})
	testingx.AssertError(t, err, errors.CodeExternalCommand)
	assert.Equal(t, start, env.WorkDir)
	assert.Equal(t, 1, errors.DetailsOf(err)[1])
}

func TestGenerateFailsWithoutArchetypePom(t *testing.T) {
	env := &execenv.Env{WorkDir: t.TempDir()}
	fake := testingx.NewFakeExecutor()
	gen := NewProjectGenerator(toolrunner.NewRunner(env, toolrunner.WithExecutor(fake)))

	err := gen.Generate(context.Background(), ProjectSpec{ProjectName: "demo", BasePackage: "com.example"})
	testingx.AssertError(t, err, errors.CodeInternal)
}

func TestPackagePath(t *testing.T) {
	assert.Equal(t, "com/example/app", ProjectSpec{BasePackage: "com.example.app"}.PackagePath())
	assert.Equal(t, "single", ProjectSpec{BasePackage: "single"}.PackagePath())
}

func TestValidateAcceptsJavaIdentifiers(t *testing.T) {
	for _, spec := range []ProjectSpec{
		{ProjectName: "demo", BasePackage: "com.example"},
		{ProjectName: "my-app_2.0", BasePackage: "org.acme_$x.api"},
		{ProjectName: "A", BasePackage: "_internal"},
	} {
		assert.NoError(t, spec.Validate(), "%+v", spec)
	}
}
