package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.eggybyte.com/jerseykit/internal/core/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// chdir changes the working directory to dir and restores it when the test
// ends (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}

func TestDefaults(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadWith(filepath.Join(dir, "absent.yaml"), "", nil)
	require.Error(t, err, "an explicit path that does not exist is an error")

	cfg := Default()
	assert.Equal(t, "openjdk-11-jdk", cfg.Provision.JDKPackage)
	assert.Equal(t, "maven", cfg.Provision.MavenPackage)
	assert.False(t, cfg.Provision.NoSudo)
	assert.Equal(t, "https://download.eclipse.org/ee4j/glassfish/glassfish-6.1.0.zip", cfg.GlassFish.URL)
	assert.Equal(t, "/opt", cfg.GlassFish.UnixRoot)
	assert.Equal(t, "/opt/glassfish6/glassfish/bin/asadmin", cfg.GlassFish.UnixAsadmin)
	assert.Equal(t, "/usr/local/bin", cfg.GlassFish.LinkDir)
	assert.Equal(t, `C:\glassfish`, cfg.GlassFish.WindowsRoot)
	assert.Equal(t, `C:\glassfish\glassfish6\glassfish\bin`, cfg.GlassFish.WindowsBinDir)
	assert.Equal(t, "5.3.9", cfg.Project.SpringVersion)
	assert.Equal(t, "3.0.3", cfg.Project.JerseyVersion)
	assert.Equal(t, "mydomain", cfg.Deploy.Domain)
	assert.NoError(t, Validate(cfg))
}

func TestLoadWithoutAnyFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadWith("", "", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "jerseykit.yaml", `
glassfish:
  url: https://mirror.example.org/glassfish-6.1.0.zip
deploy:
  domain: devdomain
provision:
  no_sudo: true
`)

	cfg, err := LoadWith(path, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example.org/glassfish-6.1.0.zip", cfg.GlassFish.URL)
	assert.Equal(t, "devdomain", cfg.Deploy.Domain)
	assert.True(t, cfg.Provision.NoSudo)
	assert.Equal(t, "/opt", cfg.GlassFish.UnixRoot, "unset values keep defaults")
}

func TestPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "jerseykit.yaml", "deploy:\n  domain: fromyaml\nlog:\n  level: warn\n")
	envFile := writeFile(t, dir, ".env", "JERSEYKIT_DOMAIN=fromdotenv\nJERSEYKIT_LOG_LEVEL=debug\n")

	cfg, err := LoadWith(path, envFile, []string{"JERSEYKIT_DOMAIN=fromenv"})
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.Deploy.Domain, "process environment wins")
	assert.Equal(t, "debug", cfg.Log.Level, ".env overrides YAML")
}

func TestInvalidValues(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	badYAML := writeFile(t, dir, "bad.yaml", "deploy: [unterminated")
	_, err := LoadWith(badYAML, "", nil)
	assert.Equal(t, errors.CodeInternal, errors.CodeOf(err))

	_, err = LoadWith("", "", []string{"JERSEYKIT_GLASSFISH_URL=not a url"})
	assert.Equal(t, errors.CodeInternal, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "GlassFish.URL")

	_, err = LoadWith("", "", []string{"JERSEYKIT_LOG_FORMAT=xml"})
	assert.Equal(t, errors.CodeInternal, errors.CodeOf(err))

	_, err = LoadWith("", "", []string{"JERSEYKIT_NO_SUDO=maybe"})
	assert.Equal(t, errors.CodeInternal, errors.CodeOf(err))
}

func TestBindToStructRejectsNonPointer(t *testing.T) {
	assert.Error(t, BindToStruct(map[string]string{}, Config{}))
}
