// Package testingx provides test doubles shared by jerseykit packages.
//
// MockLogger stands in for the diagnostic logger and FakeExecutor for the
// process launcher, so components can be tested without running real tools.
//
// Usage:
//
//	logger := testingx.NewMockLogger(t)
//	fake := testingx.NewFakeExecutor().Miss("asadmin").Fail("asadmin deploy", 1)
package testingx

import (
	"context"
	"os/exec"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"go.eggybyte.com/jerseykit/internal/core/errors"
	"go.eggybyte.com/jerseykit/internal/core/log"
	"go.eggybyte.com/jerseykit/internal/execenv"
	"go.eggybyte.com/jerseykit/internal/toolrunner"
)

// MockLogger records log calls so tests can assert on them.
// Loggers derived with With share the recording of their parent.
type MockLogger struct {
	t      *testing.T
	rec    *recording
	fields []any
}

type recording struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogEntry is one recorded log call.
type LogEntry struct {
	Level   string // DEBUG, INFO, WARN or ERROR
	Message string
	Fields  []any // fields attached with With, then the call's own
	Error   error
}

var _ log.Logger = (*MockLogger)(nil)

// NewMockLogger creates an empty MockLogger.
func NewMockLogger(t *testing.T) *MockLogger {
	return &MockLogger{t: t, rec: &recording{}}
}

// With implements log.Logger.
func (m *MockLogger) With(kv ...any) log.Logger {
	return &MockLogger{t: m.t, rec: m.rec, fields: append(slices.Clone(m.fields), kv...)}
}

// Debug implements log.Logger.
func (m *MockLogger) Debug(msg string, kv ...any) { m.record("DEBUG", msg, nil, kv) }

// Info implements log.Logger.
func (m *MockLogger) Info(msg string, kv ...any) { m.record("INFO", msg, nil, kv) }

// Warn implements log.Logger.
func (m *MockLogger) Warn(msg string, kv ...any) { m.record("WARN", msg, nil, kv) }

// Error implements log.Logger.
func (m *MockLogger) Error(err error, msg string, kv ...any) { m.record("ERROR", msg, err, kv) }

func (m *MockLogger) record(level, msg string, err error, kv []any) {
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	m.rec.entries = append(m.rec.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  append(slices.Clone(m.fields), kv...),
		Error:   err,
	})
}

// Entries returns a copy of the recorded entries in call order.
func (m *MockLogger) Entries() []LogEntry {
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	return slices.Clone(m.rec.entries)
}

// AssertLogged fails the test unless msg was logged at level.
func (m *MockLogger) AssertLogged(level, msg string) {
	m.t.Helper()
	found := slices.ContainsFunc(m.Entries(), func(e LogEntry) bool {
		return e.Level == level && e.Message == msg
	})
	if !found {
		m.t.Errorf("no %s entry %q in %d recorded entries", level, msg, len(m.Entries()))
	}
}

// Clear forgets all recorded entries.
func (m *MockLogger) Clear() {
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	m.rec.entries = nil
}

// AssertError fails the test unless err is classified as code.
func AssertError(t *testing.T, err error, code errors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if got := errors.CodeOf(err); got != code {
		t.Errorf("expected %s error, got %q: %v", code, got, err)
	}
}

// Call records one command launched through a FakeExecutor.
type Call struct {
	Dir  string   // Env.WorkDir at launch time
	Path []string // Env.Path at launch time
	Name string
	Args []string
}

// String returns the command line.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// FakeExecutor is a toolrunner.Executor that records calls instead of launching processes.
//
// Every command succeeds unless its name was marked missing (launch failure) or
// a failure exit code was registered for it. Failure keys are matched against
// the full command line, then "name firstArg", then the bare name.
type FakeExecutor struct {
	mu       sync.Mutex
	missing  map[string]bool
	failures map[string]int
	stderr   map[string]string
	calls    []Call

	// OnRun is called for every launched command before the result is returned.
	// It may create files to imitate the command's side effects.
	OnRun func(env *execenv.Env, name string, args []string)
}

var _ toolrunner.Executor = (*FakeExecutor)(nil)

// NewFakeExecutor creates a FakeExecutor where every command succeeds.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{
		missing:  map[string]bool{},
		failures: map[string]int{},
		stderr:   map[string]string{},
	}
}

// Miss marks command names as not installed.
func (f *FakeExecutor) Miss(names ...string) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range names {
		f.missing[n] = true
	}
	return f
}

// Present marks command names as installed again.
func (f *FakeExecutor) Present(names ...string) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range names {
		delete(f.missing, n)
	}
	return f
}

// Fail registers a non-zero exit code for the matching command.
func (f *FakeExecutor) Fail(key string, exitCode int) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[key] = exitCode
	f.stderr[key] = key + " failed"
	return f
}

// Run implements toolrunner.Executor.
func (f *FakeExecutor) Run(_ context.Context, env *execenv.Env, name string, args ...string) (*toolrunner.CommandResult, error) {
	call := Call{
		Dir:  env.WorkDir,
		Path: append([]string(nil), env.Path...),
		Name: name,
		Args: append([]string(nil), args...),
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	missing := f.missing[name]
	code, stderr := f.failureFor(call)
	hook := f.OnRun
	f.mu.Unlock()

	if missing {
		return &toolrunner.CommandResult{ExitCode: -1}, &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	if hook != nil {
		hook(env, name, args)
	}
	return &toolrunner.CommandResult{
		ExitCode: code,
		Stderr:   stderr,
		Duration: time.Millisecond,
	}, nil
}

func (f *FakeExecutor) failureFor(c Call) (int, string) {
	keys := []string{c.String()}
	if len(c.Args) > 0 {
		keys = append(keys, c.Name+" "+c.Args[0])
	}
	keys = append(keys, c.Name)

	for _, k := range keys {
		if code, ok := f.failures[k]; ok {
			return code, f.stderr[k]
		}
	}
	return 0, ""
}

// Calls returns every recorded call in launch order.
func (f *FakeExecutor) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CommandLines returns the recorded calls as command line strings.
func (f *FakeExecutor) CommandLines() []string {
	calls := f.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

// CallsTo returns the recorded calls whose command line starts with prefix.
func (f *FakeExecutor) CallsTo(prefix string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if strings.HasPrefix(c.String(), prefix) {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls.
func (f *FakeExecutor) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}
