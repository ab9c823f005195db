package provision

import (
	"context"

	"go.eggybyte.com/jerseykit/internal/config"
	"go.eggybyte.com/jerseykit/internal/core/errors"
	"go.eggybyte.com/jerseykit/internal/toolrunner"
)

// WindowsStrategy unpacks GlassFish and asks the user to install the JDK and Maven by hand.
type WindowsStrategy struct {
	runner    *toolrunner.Runner
	fetcher   Fetcher
	glassfish config.GlassFishConfig
}

// Install implements Strategy.
func (s *WindowsStrategy) Install(ctx context.Context, t Target) error {
	switch t {
	case JDK:
		msg := "JDK is not installed. Please install JDK manually."
		if !s.runner.Exists(ctx, Maven.Probe) {
			msg += " Maven is also not installed. Please install Maven manually."
		}
		return errors.New(errors.CodeNotFound, msg)

	case Maven:
		return errors.New(errors.CodeNotFound, "Maven is not installed. Please install Maven manually.")

	case GlassFish:
		if err := s.fetcher.FetchAndExtract(ctx, s.glassfish.URL, s.glassfish.WindowsRoot); err != nil {
			return err
		}
		s.runner.Env().AppendPath(s.glassfish.WindowsBinDir)
		return nil

	default:
		return errors.Newf(errors.CodeInternal, "no windows install procedure for %s", t.Name)
	}
}
