// Package archive downloads zip distributions and unpacks them.
//
// Overview:
//   - Responsibility: Fetch an archive over HTTP(S) and extract it into a directory
//   - Key Types: Fetcher
//   - Concurrency Model: A Fetcher may be shared; each call uses its own temporary file
//   - Error Semantics: INTERNAL errors for network, status and file system failures
//   - Performance Notes: The download streams to disk; entries are extracted one at a time
//
// Usage:
//
//	f := archive.NewFetcher(archive.WithLogger(logger))
//	err := f.FetchAndExtract(ctx, "https://download.eclipse.org/ee4j/glassfish/glassfish-6.1.0.zip", "/opt")
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.eggybyte.com/jerseykit/internal/core/errors"
	"go.eggybyte.com/jerseykit/internal/core/log"
)

const defaultArchiveName = "download.zip"

// Fetcher downloads and extracts zip archives.
type Fetcher struct {
	client  *http.Client
	tempDir string
	logger  log.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets the client used for downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithTempDir sets where downloads are staged before extraction.
func WithTempDir(dir string) Option {
	return func(f *Fetcher) {
		f.tempDir = dir
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l log.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// NewFetcher creates a Fetcher using http.DefaultClient and the system temp directory.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: http.DefaultClient,
		logger: log.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchAndExtract downloads rawURL into a temporary file named after the URL's
// last path segment, extracts it into dest, and removes the temporary file.
func (f *Fetcher) FetchAndExtract(ctx context.Context, rawURL, dest string) error {
	name := ArchiveName(rawURL)

	stage, err := os.MkdirTemp(f.tempDir, "jerseykit-")
	if err != nil {
		return errors.Wrap(errors.CodeInternal, "create staging directory", err)
	}
	defer os.RemoveAll(stage)

	file := filepath.Join(stage, name)
	start := time.Now()
	size, err := f.download(ctx, rawURL, file)
	if err != nil {
		return err
	}
	f.logger.Debug("archive downloaded",
		log.Str("url", rawURL),
		log.Str("file", name),
		"bytes", size,
		log.Dur("duration", time.Since(start)),
	)

	if err := Extract(file, dest); err != nil {
		return err
	}
	f.logger.Info("archive extracted", log.Str("file", name), log.Str("dest", dest))
	return nil
}

func (f *Fetcher) download(ctx context.Context, rawURL, file string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, errors.Wrap(errors.CodeInternal, "build download request", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, errors.Wrapf(errors.CodeInternal, "download", err, "download %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.Build(errors.CodeInternal).
			WithOp("download").
			WithMsgf("download %s: unexpected status %s", rawURL, resp.Status).
			WithDetails("status", resp.StatusCode).
			Err()
	}

	out, err := os.Create(file)
	if err != nil {
		return 0, errors.Wrap(errors.CodeInternal, "create archive file", err)
	}

	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, errors.Wrapf(errors.CodeInternal, "download", err, "write %s", filepath.Base(file))
	}
	return n, nil
}

// ArchiveName returns the last path segment of rawURL, or a fixed name when the URL has none.
func ArchiveName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return defaultArchiveName
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return defaultArchiveName
	}
	return name
}

// Extract unpacks the zip file at zipPath into dest, creating dest if needed.
// Entries that would land outside dest are rejected. Unix permission bits stored
// in the archive are kept so that launcher scripts stay executable.
func Extract(zipPath, dest string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return errors.Wrapf(errors.CodeInternal, "open archive", err, "open %s", filepath.Base(zipPath))
	}
	defer r.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return errors.Wrap(errors.CodeInternal, "create extraction directory", err)
	}

	for _, entry := range r.File {
		if err := extractEntry(entry, dest); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(entry *zip.File, dest string) error {
	name := strings.ReplaceAll(entry.Name, "\\", "/")
	target := filepath.Join(dest, filepath.FromSlash(name))

	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(name) {
		return errors.Newf(errors.CodeInternal, "archive entry %q escapes %s", entry.Name, dest)
	}

	if entry.FileInfo().IsDir() || strings.HasSuffix(name, "/") {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return errors.Wrap(errors.CodeInternal, "create directory", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrap(errors.CodeInternal, "create directory", err)
	}

	perm := entry.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}

	src, err := entry.Open()
	if err != nil {
		return errors.Wrapf(errors.CodeInternal, "read archive entry", err, "read %s", entry.Name)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, "create file", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return errors.Wrapf(errors.CodeInternal, "extract", err, "extract %s", entry.Name)
	}
	if err := dst.Close(); err != nil {
		return errors.Wrap(errors.CodeInternal, "close file", err)
	}

	// OpenFile leaves the mode of an existing file alone.
	if err := os.Chmod(target, perm); err != nil {
		return errors.Wrap(errors.CodeInternal, fmt.Sprintf("chmod %s", entry.Name), err)
	}
	return nil
}
