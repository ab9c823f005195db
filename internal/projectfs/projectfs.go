// Package projectfs provides project file system operations for scaffolding.
//
// Overview:
//   - Responsibility: Create the project directory tree and write or append generated files
//   - Key Types: ProjectFS rooted at a generated project's directory
//   - Concurrency Model: Sequential file operations
//   - Error Semantics: INTERNAL errors naming the path that failed
//   - Performance Notes: Idempotent directory creation, whole-file writes
//
// Usage:
//
//	pfs := projectfs.NewProjectFS(env.WorkDir, logger)
//	err := pfs.CreateDirectory("src/main/webapp/WEB-INF")
//	err = pfs.WriteFile("src/main/webapp/WEB-INF/web.xml", content, 0o644)
package projectfs

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.eggybyte.com/jerseykit/internal/core/errors"
	"go.eggybyte.com/jerseykit/internal/core/log"
)

// ProjectFS provides file system operations for project scaffolding.
// Paths passed to its methods are slash separated and relative to the root.
//
// Parameters:
//   - rootDir: Root directory for operations
//   - logger: Diagnostic logger
//
// Returns:
//   - None (data structure)
//
// Concurrency:
//   - Safe for concurrent use on distinct paths
//
// Performance:
//   - Efficient file operations with minimal allocations
type ProjectFS struct {
	rootDir string
	logger  log.Logger
}

// NewProjectFS creates a new project file system rooted at rootDir.
func NewProjectFS(rootDir string, logger log.Logger) *ProjectFS {
	if logger == nil {
		logger = log.Nop()
	}
	return &ProjectFS{
		rootDir: rootDir,
		logger:  logger,
	}
}

// Root returns the root directory.
func (p *ProjectFS) Root() string {
	return p.rootDir
}

// Abs returns the absolute form of a root-relative path.
func (p *ProjectFS) Abs(path string) string {
	return filepath.Join(p.rootDir, filepath.FromSlash(path))
}

// CreateDirectory creates a directory and its parents if they don't exist.
//
// Parameters:
//   - path: Directory path relative to root
//
// Returns:
//   - error: INTERNAL error if the directory cannot be created
//
// Concurrency:
//   - Single-threaded per directory
//
// Performance:
//   - One stat plus MkdirAll when missing
func (p *ProjectFS) CreateDirectory(path string) error {
	fullPath := p.Abs(path)

	if info, err := os.Stat(fullPath); err == nil && info.IsDir() {
		p.logger.Debug("directory already exists", log.Str("path", path))
		return nil
	}

	if err := os.MkdirAll(fullPath, 0o755); err != nil {
		return errors.Wrapf(errors.CodeInternal, "create directory", err, "create directory %s", path)
	}

	p.logger.Debug("created directory", log.Str("path", path))
	return nil
}

// WriteFile writes content to a file, replacing any existing content.
//
// Parameters:
//   - path: File path relative to root
//   - content: File content
//   - mode: File permissions for a new file
//
// Returns:
//   - error: INTERNAL error if the file cannot be written
//
// Concurrency:
//   - Single-threaded per file
//
// Performance:
//   - Whole-file write
func (p *ProjectFS) WriteFile(path, content string, mode fs.FileMode) error {
	fullPath := p.Abs(path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return errors.Wrapf(errors.CodeInternal, "create directory", err, "create parent directory for %s", path)
	}

	if err := os.WriteFile(fullPath, []byte(content), mode); err != nil {
		return errors.Wrapf(errors.CodeInternal, "write file", err, "write %s", path)
	}

	p.logger.Debug("wrote file", log.Str("path", path), log.Int("bytes", len(content)))
	return nil
}

// AppendFile appends content to an existing file.
// The file must already exist; appending to a missing file is an error.
func (p *ProjectFS) AppendFile(path, content string) error {
	f, err := os.OpenFile(p.Abs(path), os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return errors.Wrapf(errors.CodeInternal, "append file", err, "open %s for append", path)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return errors.Wrapf(errors.CodeInternal, "append file", err, "append to %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(errors.CodeInternal, "append file", err, "close %s", path)
	}

	p.logger.Debug("appended to file", log.Str("path", path), log.Int("bytes", len(content)))
	return nil
}

// FileExists checks if a regular file exists.
func (p *ProjectFS) FileExists(path string) (bool, error) {
	info, err := os.Stat(p.Abs(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(errors.CodeInternal, "stat", err, "check %s", path)
	}
	return !info.IsDir(), nil
}

// ReadFile reads a file's content.
func (p *ProjectFS) ReadFile(path string) (string, error) {
	content, err := os.ReadFile(p.Abs(path))
	if err != nil {
		return "", errors.Wrapf(errors.CodeInternal, "read file", err, "read %s", path)
	}
	return string(content), nil
}
