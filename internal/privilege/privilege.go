// Package privilege verifies that jerseykit runs with elevated rights.
//
// Installing packages, writing under /opt and creating links in /usr/local/bin
// all need root on unix hosts and an elevated token on Windows.
package privilege

import (
	"go.eggybyte.com/jerseykit/internal/core/errors"
	"go.eggybyte.com/jerseykit/internal/core/log"
)

// Checker reports whether the current process is elevated.
type Checker func() (bool, error)

// Guard checks process elevation before any side effect.
type Guard struct {
	check  Checker
	logger log.Logger
}

// NewGuard creates a Guard. A nil checker selects the platform check.
func NewGuard(check Checker, logger log.Logger) *Guard {
	if check == nil {
		check = IsElevated
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Guard{check: check, logger: logger}
}

// Ensure returns a PERMISSION_DENIED error when the process is not elevated.
// It never terminates the process.
func (g *Guard) Ensure() error {
	elevated, err := g.check()
	if err != nil {
		return errors.Wrap(errors.CodeInternal, "check privileges", err)
	}

	g.logger.Debug("privilege check", "elevated", elevated)
	if !elevated {
		return errors.New(errors.CodePermissionDenied,
			"this program must be run with root privileges (use sudo, or an elevated prompt on Windows)")
	}
	return nil
}
