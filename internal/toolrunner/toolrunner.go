// Package toolrunner provides execution of external tools and commands.
//
// Overview:
//   - Responsibility: Launch apt-get, mvn, asadmin and probe commands inside an execenv.Env
//   - Key Types: Runner, Executor, CommandResult
//   - Concurrency Model: Sequential command execution with context support
//   - Error Semantics: Non-zero exits become EXTERNAL_COMMAND errors carrying exit code and stderr
//   - Performance Notes: Output is captured in memory and optionally streamed
//
// Usage:
//
//	runner := toolrunner.NewRunner(env, toolrunner.WithLogger(logger))
//	if !runner.Exists(ctx, "mvn -version") { ... }
//	_, err := runner.Mvn(ctx, "archetype:generate", "-DinteractiveMode=false")
package toolrunner

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"

	jkerrors "go.eggybyte.com/jerseykit/internal/core/errors"
	"go.eggybyte.com/jerseykit/internal/core/log"
	"go.eggybyte.com/jerseykit/internal/execenv"
)

// CommandResult represents the result of a command execution.
//
// Parameters:
//   - ExitCode: Process exit code (-1 when the process never started)
//   - Stdout: Standard output content
//   - Stderr: Standard error content
//   - Duration: Command execution time
//
// Returns:
//   - None (data structure)
//
// Concurrency:
//   - Immutable after creation
//
// Performance:
//   - Captures output in memory
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Executor launches a single process.
//
// Run returns a non-nil error only when the process could not be started
// (not found, not executable). A process that ran and exited non-zero is
// reported through CommandResult.ExitCode with a nil error.
type Executor interface {
	Run(ctx context.Context, env *execenv.Env, name string, args ...string) (*CommandResult, error)
}

// OSExecutor runs commands with os/exec, resolving names against Env.Path.
type OSExecutor struct {
	// Stream copies command output to Env.Stdout and Env.Stderr while capturing it.
	Stream bool
}

// Run implements Executor.
func (x OSExecutor) Run(ctx context.Context, env *execenv.Env, name string, args ...string) (*CommandResult, error) {
	start := time.Now()

	path, err := env.LookPath(name)
	if err != nil {
		return &CommandResult{ExitCode: -1, Duration: time.Since(start)}, err
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = env.WorkDir
	cmd.Env = env.Environ()

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if x.Stream {
		if env.Stdout != nil {
			cmd.Stdout = io.MultiWriter(&stdout, env.Stdout)
		}
		if env.Stderr != nil {
			cmd.Stderr = io.MultiWriter(&stderr, env.Stderr)
		}
	}

	err = cmd.Run()
	result := &CommandResult{
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return result, err
	}
	return result, nil
}

// Runner provides execution of external tools inside an execution context.
//
// Parameters:
//   - env: Execution context (working directory, search path)
//   - executor: Process launcher
//   - logger: Diagnostic logger
//
// Returns:
//   - None (data structure)
//
// Concurrency:
//   - Not safe for concurrent use; the shared Env is mutated between steps
//
// Performance:
//   - Minimal state, efficient command execution
type Runner struct {
	env      *execenv.Env
	executor Executor
	logger   log.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithExecutor replaces the process launcher, mainly for tests.
func WithExecutor(x Executor) Option {
	return func(r *Runner) {
		r.executor = x
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l log.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a new tool runner bound to env.
//
// Parameters:
//   - env: Execution context shared with the other components
//   - opts: Optional executor and logger
//
// Returns:
//   - *Runner: Tool runner instance
//
// Concurrency:
//   - Not safe for concurrent use
//
// Performance:
//   - Minimal initialization overhead
func NewRunner(env *execenv.Env, opts ...Option) *Runner {
	r := &Runner{
		env:      env,
		executor: OSExecutor{},
		logger:   log.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Env returns the execution context the runner launches commands in.
func (r *Runner) Env() *execenv.Env {
	return r.env
}

// Exec runs a command and returns its result.
//
// Parameters:
//   - ctx: Context for cancellation
//   - name: Command name, resolved against the context search path
//   - args: Command arguments
//
// Returns:
//   - *CommandResult: Command execution result
//   - error: EXTERNAL_COMMAND error if the command could not start or exited non-zero
//
// Concurrency:
//   - Single-threaded per command
//
// Performance:
//   - Blocks until the command exits
func (r *Runner) Exec(ctx context.Context, name string, args ...string) (*CommandResult, error) {
	return r.exec(ctx, r.env, name, args...)
}

func (r *Runner) exec(ctx context.Context, env *execenv.Env, name string, args ...string) (*CommandResult, error) {
	commandLine := strings.TrimSpace(name + " " + strings.Join(args, " "))

	result, err := r.executor.Run(ctx, env, name, args...)
	if result == nil {
		result = &CommandResult{ExitCode: -1}
	}

	r.logger.Debug("command finished",
		log.Str("cmd", name),
		log.Str("args", strings.Join(args, " ")),
		log.Str("dir", env.WorkDir),
		log.Int("exit_code", result.ExitCode),
		log.Dur("duration", result.Duration),
	)

	if err != nil {
		return result, jkerrors.Build(jkerrors.CodeExternalCommand).
			WithOp(commandLine).
			WithErr(err).
			WithMsgf("failed to start %s", name).
			WithDetails("exit_code", result.ExitCode).
			Err()
	}

	if result.ExitCode != 0 {
		return result, jkerrors.Build(jkerrors.CodeExternalCommand).
			WithOp(commandLine).
			WithMsgf("%s exited with code %d", commandLine, result.ExitCode).
			WithDetails("exit_code", result.ExitCode, "stderr", strings.TrimSpace(result.Stderr)).
			Err()
	}

	return result, nil
}

// Exists reports whether a probe command can be launched.
//
// The command line is split on whitespace and run with its output discarded.
// Only a launch failure (not found, not executable) counts as absent; a tool
// that starts and exits non-zero still counts as present.
//
// Parameters:
//   - ctx: Context for cancellation
//   - commandLine: Probe such as "java -version"
//
// Returns:
//   - bool: True if the probe launched
//
// Concurrency:
//   - Single-threaded per command
//
// Performance:
//   - Blocks until the probe exits
func (r *Runner) Exists(ctx context.Context, commandLine string) bool {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return false
	}

	result, err := r.executor.Run(ctx, r.env.Quiet(), fields[0], fields[1:]...)
	exitCode := -1
	if result != nil {
		exitCode = result.ExitCode
	}
	r.logger.Debug("probe finished",
		log.Str("cmd", commandLine),
		log.Int("exit_code", exitCode),
		"found", err == nil,
	)
	return err == nil
}

// Mvn runs Maven commands.
func (r *Runner) Mvn(ctx context.Context, args ...string) (*CommandResult, error) {
	return r.Exec(ctx, "mvn", args...)
}

// Asadmin runs GlassFish administration commands.
func (r *Runner) Asadmin(ctx context.Context, args ...string) (*CommandResult, error) {
	return r.Exec(ctx, "asadmin", args...)
}

// AptGet runs apt-get, prefixed with sudo when useSudo is set.
func (r *Runner) AptGet(ctx context.Context, useSudo bool, args ...string) (*CommandResult, error) {
	if useSudo {
		return r.Exec(ctx, "sudo", append([]string{"apt-get"}, args...)...)
	}
	return r.Exec(ctx, "apt-get", args...)
}
