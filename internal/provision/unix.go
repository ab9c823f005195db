package provision

import (
	"context"
	"os"
	"path/filepath"

	"go.eggybyte.com/jerseykit/internal/config"
	"go.eggybyte.com/jerseykit/internal/core/errors"
	"go.eggybyte.com/jerseykit/internal/toolrunner"
)

// UnixStrategy installs tools with apt-get and unpacks GlassFish under a fixed root.
type UnixStrategy struct {
	runner    *toolrunner.Runner
	fetcher   Fetcher
	pkg       config.ProvisionConfig
	glassfish config.GlassFishConfig
}

// Install implements Strategy.
func (s *UnixStrategy) Install(ctx context.Context, t Target) error {
	useSudo := !s.pkg.NoSudo
	env := s.runner.Env()

	switch t {
	case JDK:
		if _, err := s.runner.AptGet(ctx, useSudo, "update"); err != nil {
			return err
		}
		if _, err := s.runner.AptGet(ctx, useSudo, "install", "-y", s.pkg.JDKPackage); err != nil {
			return err
		}
		env.AppendPath(s.pkg.JDKBinDir)
		return nil

	case Maven:
		if _, err := s.runner.AptGet(ctx, useSudo, "install", "-y", s.pkg.MavenPackage); err != nil {
			return err
		}
		env.AppendPath(s.pkg.JDKBinDir)
		return nil

	case GlassFish:
		if err := s.fetcher.FetchAndExtract(ctx, s.glassfish.URL, s.glassfish.UnixRoot); err != nil {
			return err
		}
		link := filepath.Join(s.glassfish.LinkDir, "asadmin")
		if err := replaceSymlink(s.glassfish.UnixAsadmin, link); err != nil {
			return err
		}
		env.AppendPath(s.glassfish.LinkDir)
		return nil

	default:
		return errors.Newf(errors.CodeInternal, "no unix install procedure for %s", t.Name)
	}
}

// replaceSymlink points link at target, removing whatever link currently exists.
func replaceSymlink(target, link string) error {
	if err := os.MkdirAll(filepath.Dir(link), 0o755); err != nil {
		return errors.Wrapf(errors.CodeInternal, "create link directory", err, "create %s", filepath.Dir(link))
	}

	if info, err := os.Lstat(link); err == nil {
		if info.IsDir() {
			return errors.Newf(errors.CodeInternal, "%s is a directory", link)
		}
		if err := os.Remove(link); err != nil {
			return errors.Wrapf(errors.CodeInternal, "remove stale link", err, "remove %s", link)
		}
	}

	if err := os.Symlink(target, link); err != nil {
		return errors.Wrapf(errors.CodeInternal, "create link", err, "link %s -> %s", link, target)
	}
	return nil
}
