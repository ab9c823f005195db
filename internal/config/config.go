// Package config loads jerseykit settings.
//
// Overview:
//   - Responsibility: Parse jerseykit.yaml, overlay .env and process environment, fill defaults, validate
//   - Key Types: Config and its sections
//   - Concurrency Model: Immutable configuration after loading
//   - Error Semantics: INTERNAL errors for unreadable files, bad YAML and failed validation
//   - Performance Notes: Single-pass parsing
//
// Precedence, lowest first: built-in defaults, YAML file, .env file, process environment.
//
// Usage:
//
//	cfg, err := config.Load("")
//	cfg.GlassFish.URL // https://download.eclipse.org/ee4j/glassfish/glassfish-6.1.0.zip
package config

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"go.eggybyte.com/jerseykit/internal/core/errors"
)

// DefaultFile is read when no configuration path is given and the file exists.
const DefaultFile = "jerseykit.yaml"

// DefaultEnvFile is read for environment overrides when it exists.
const DefaultEnvFile = ".env"

// Config represents the complete jerseykit configuration.
//
// Parameters:
//   - Provision: Package manager settings
//   - GlassFish: Application server download and install locations
//   - Project: Versions written into generated projects
//   - Deploy: Deployment settings
//   - Log: Diagnostic logging settings
//
// Returns:
//   - None (data structure)
//
// Concurrency:
//   - Immutable after loading
//
// Performance:
//   - Single allocation
type Config struct {
	Provision ProvisionConfig `yaml:"provision"`
	GlassFish GlassFishConfig `yaml:"glassfish"`
	Project   ProjectConfig   `yaml:"project"`
	Deploy    DeployConfig    `yaml:"deploy"`
	Log       LogConfig       `yaml:"log"`
}

// ProvisionConfig defines how the JDK and Maven are installed on unix hosts.
type ProvisionConfig struct {
	NoSudo       bool   `yaml:"no_sudo" env:"JERSEYKIT_NO_SUDO"`
	JDKPackage   string `yaml:"jdk_package" env:"JERSEYKIT_JDK_PACKAGE" validate:"required"`
	MavenPackage string `yaml:"maven_package" env:"JERSEYKIT_MAVEN_PACKAGE" validate:"required"`
	JDKBinDir    string `yaml:"jdk_bin_dir" env:"JERSEYKIT_JDK_BIN_DIR" validate:"required"`
}

// GlassFishConfig defines where GlassFish is downloaded from and installed to.
type GlassFishConfig struct {
	URL           string `yaml:"url" env:"JERSEYKIT_GLASSFISH_URL" validate:"required,url"`
	UnixRoot      string `yaml:"unix_root" env:"JERSEYKIT_GLASSFISH_UNIX_ROOT" validate:"required"`
	UnixAsadmin   string `yaml:"unix_asadmin" env:"JERSEYKIT_GLASSFISH_UNIX_ASADMIN" validate:"required"`
	LinkDir       string `yaml:"link_dir" env:"JERSEYKIT_GLASSFISH_LINK_DIR" validate:"required"`
	WindowsRoot   string `yaml:"windows_root" env:"JERSEYKIT_GLASSFISH_WINDOWS_ROOT" validate:"required"`
	WindowsBinDir string `yaml:"windows_bin_dir" env:"JERSEYKIT_GLASSFISH_WINDOWS_BIN_DIR" validate:"required"`
}

// ProjectConfig pins the versions written to the generated pom.xml.
type ProjectConfig struct {
	SpringVersion         string `yaml:"spring_version" env:"JERSEYKIT_SPRING_VERSION" validate:"required"`
	JerseyVersion         string `yaml:"jersey_version" env:"JERSEYKIT_JERSEY_VERSION" validate:"required"`
	CompilerPluginVersion string `yaml:"compiler_plugin_version" env:"JERSEYKIT_COMPILER_PLUGIN_VERSION" validate:"required"`
	WarPluginVersion      string `yaml:"war_plugin_version" env:"JERSEYKIT_WAR_PLUGIN_VERSION" validate:"required"`
	JavaVersion           string `yaml:"java_version" env:"JERSEYKIT_JAVA_VERSION" validate:"required"`
}

// DeployConfig defines deployment settings.
type DeployConfig struct {
	Domain string `yaml:"domain" env:"JERSEYKIT_DOMAIN" validate:"required"`
}

// LogConfig defines diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level" env:"JERSEYKIT_LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"JERSEYKIT_LOG_FORMAT" validate:"oneof=console logfmt json"`
}

// Load reads configuration from path, or from DefaultFile when path is empty,
// then applies DefaultEnvFile and the process environment.
func Load(path string) (*Config, error) {
	return LoadWith(path, DefaultEnvFile, os.Environ())
}

// LoadWith is Load with an explicit .env path and environment.
//
// Parameters:
//   - path: YAML file; empty selects DefaultFile if it exists
//   - envFile: .env file; skipped when it does not exist
//   - environ: Process environment in KEY=value form
//
// Returns:
//   - *Config: Configuration with defaults applied and validated
//   - error: INTERNAL error if a file cannot be read or parsed, or validation fails
//
// Concurrency:
//   - Single-threaded file I/O
//
// Performance:
//   - Single-pass parsing
func LoadWith(path, envFile string, environ []string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(errors.CodeInternal, "parse config", err, "parse %s", path)
		}
	case explicit || !os.IsNotExist(err):
		return nil, errors.Wrapf(errors.CodeInternal, "read config", err, "read %s", path)
	}

	snapshot, err := readEnvFile(envFile)
	if err != nil {
		return nil, err
	}
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			snapshot[k] = v
		}
	}

	if err := BindToStruct(snapshot, &cfg); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "bind environment", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration holding only built-in defaults.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// ApplyDefaults fills in default values for missing configuration.
func ApplyDefaults(c *Config) {
	setDefault(&c.Provision.JDKPackage, "openjdk-11-jdk")
	setDefault(&c.Provision.MavenPackage, "maven")
	setDefault(&c.Provision.JDKBinDir, "/usr/bin")

	setDefault(&c.GlassFish.URL, "https://download.eclipse.org/ee4j/glassfish/glassfish-6.1.0.zip")
	setDefault(&c.GlassFish.UnixRoot, "/opt")
	setDefault(&c.GlassFish.UnixAsadmin, "/opt/glassfish6/glassfish/bin/asadmin")
	setDefault(&c.GlassFish.LinkDir, "/usr/local/bin")
	setDefault(&c.GlassFish.WindowsRoot, `C:\glassfish`)
	setDefault(&c.GlassFish.WindowsBinDir, `C:\glassfish\glassfish6\glassfish\bin`)

	setDefault(&c.Project.SpringVersion, "5.3.9")
	setDefault(&c.Project.JerseyVersion, "3.0.3")
	setDefault(&c.Project.CompilerPluginVersion, "3.8.1")
	setDefault(&c.Project.WarPluginVersion, "3.2.3")
	setDefault(&c.Project.JavaVersion, "11")

	setDefault(&c.Deploy.Domain, "mydomain")

	setDefault(&c.Log.Level, "info")
	setDefault(&c.Log.Format, "console")
}

func setDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}

// Validate checks the configuration with validator tags.
func Validate(c *Config) error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.CodeInternal, "validate config", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Namespace()+" failed '"+fe.Tag()+"'")
	}
	return errors.Newf(errors.CodeInternal, "invalid configuration: %s", strings.Join(msgs, "; "))
}
