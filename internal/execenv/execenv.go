// Package execenv holds the explicit execution context shared by jerseykit components.
//
// Overview:
//   - Responsibility: Carry the working directory, tool search path and standard streams
//   - Key Types: Env, Platform
//   - Concurrency Model: Env is mutated by sequential steps only; not safe for concurrent writes
//   - Error Semantics: LookPath reports exec.ErrNotFound wrapped in *exec.Error
//   - Performance Notes: Path lookups stat each directory in order
//
// Components never change the process working directory or PATH. Installing a tool
// appends to Env.Path and entering a generated project changes Env.WorkDir, and every
// later command is launched with those values.
//
// Usage:
//
//	env, err := execenv.FromProcess()
//	env.AppendPath("/usr/local/bin")
//	env.Chdir("demo")
package execenv

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"
)

// Platform selects the provisioning strategy.
type Platform string

const (
	// Unix covers Linux and other POSIX hosts with apt-get available.
	Unix Platform = "unix"
	// Windows covers Windows hosts.
	Windows Platform = "windows"
)

// CurrentPlatform returns the platform the binary was built for.
func CurrentPlatform() Platform {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Unix
}

// Env is the execution context passed to every component.
type Env struct {
	WorkDir  string            // Directory external commands run in
	Path     []string          // Ordered tool search path
	Vars     map[string]string // Extra variables exported to child processes
	Platform Platform          // Host platform
	Stdin    io.Reader         // Source for interactive prompts
	Stdout   io.Writer         // Destination for user output and streamed command output
	Stderr   io.Writer         // Destination for errors
}

// FromProcess builds an Env from the current process state.
func FromProcess() (*Env, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	return &Env{
		WorkDir:  wd,
		Path:     filepath.SplitList(os.Getenv("PATH")),
		Vars:     map[string]string{},
		Platform: CurrentPlatform(),
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}, nil
}

// Clone returns a copy whose Path and Vars can be changed independently.
func (e *Env) Clone() *Env {
	c := *e
	c.Path = slices.Clone(e.Path)
	c.Vars = make(map[string]string, len(e.Vars))
	for k, v := range e.Vars {
		c.Vars[k] = v
	}
	return &c
}

// Quiet returns a copy with both output streams discarded.
func (e *Env) Quiet() *Env {
	c := e.Clone()
	c.Stdout = io.Discard
	c.Stderr = io.Discard
	return c
}

// HasPath reports whether dir is already on the search path.
func (e *Env) HasPath(dir string) bool {
	want := filepath.Clean(dir)
	for _, p := range e.Path {
		if samePath(filepath.Clean(p), want) {
			return true
		}
	}
	return false
}

// AppendPath adds dir to the end of the search path unless it is already present.
func (e *Env) AppendPath(dir string) {
	if dir == "" || e.HasPath(dir) {
		return
	}
	e.Path = append(e.Path, dir)
}

// Resolve returns p as an absolute path, relative paths being taken from WorkDir.
func (e *Env) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(e.WorkDir, p)
}

// Chdir moves the working directory. Relative directories resolve against the current one.
func (e *Env) Chdir(dir string) {
	e.WorkDir = e.Resolve(dir)
}

// LookPath finds an executable by searching Env.Path. Names containing a path
// separator are resolved against WorkDir and not searched.
func (e *Env) LookPath(name string) (string, error) {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return exec.LookPath(e.Resolve(name))
	}

	for _, dir := range e.Path {
		if dir == "" {
			continue
		}
		if path, err := exec.LookPath(filepath.Join(e.Resolve(dir), name)); err == nil {
			return path, nil
		}
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

// Environ returns the process environment with PATH replaced by Env.Path and Vars applied.
func (e *Env) Environ() []string {
	base := os.Environ()
	out := make([]string, 0, len(base)+len(e.Vars)+1)
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if strings.EqualFold(key, "PATH") {
			continue
		}
		if _, overridden := e.Vars[key]; overridden {
			continue
		}
		out = append(out, kv)
	}

	keys := make([]string, 0, len(e.Vars))
	for k := range e.Vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+e.Vars[k])
	}

	return append(out, "PATH="+strings.Join(e.Path, string(os.PathListSeparator)))
}

func samePath(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
