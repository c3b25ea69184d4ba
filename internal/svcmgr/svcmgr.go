// Package svcmgr drives the native service manager supervising the
// bridge daemon. One Manager implementation exists per platform
// (systemd, launchd, unsupported), all exposing the same capability
// set; the right one is selected once at startup.
package svcmgr

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/benbjohnson/clock"

	"github.com/comelit-hap/bridgectl/internal/config"
	"github.com/comelit-hap/bridgectl/internal/platform"
)

// Common errors returned by manager operations.
var (
	// ErrAlreadyRunning indicates a start request for an active service.
	// Callers treat it as a warning, not a failure.
	ErrAlreadyRunning = errors.New("service is already running")

	// ErrNotRunning indicates a stop request for an inactive service.
	// Callers treat it as a warning, not a failure.
	ErrNotRunning = errors.New("service is not running")

	// ErrNotActive indicates a signal request for an inactive unit.
	ErrNotActive = errors.New("service is not active")

	// ErrProcessNotFound indicates the reload fallback chain exhausted
	// every strategy without locating a live bridge process.
	ErrProcessNotFound = errors.New("process not found")
)

// Manager is the platform-neutral interface to the native service
// manager. All operations act on the single bridge service described
// by the configuration used at construction time.
type Manager interface {
	// IsActive reports whether the service is currently active (systemd)
	// or loaded (launchd).
	IsActive(ctx context.Context) (bool, error)

	// Start activates the service. Returns ErrAlreadyRunning if it is
	// already active; never double-starts.
	Start(ctx context.Context) error

	// Stop deactivates the service. Returns ErrNotRunning if it is not
	// active.
	Stop(ctx context.Context) error

	// Restart restarts the service, atomically where the platform
	// supports it.
	Restart(ctx context.Context) error

	// Status returns a human-readable status report. Requires no
	// privilege.
	Status(ctx context.Context) (string, error)

	// Signal asks the running bridge to reopen its log files (SIGHUP),
	// scoped to the managed service where the platform allows it.
	Signal(ctx context.Context) error
}

// Runner executes external service-manager commands. The production
// implementation shells out; tests substitute a fake.
type Runner interface {
	// Run executes the named command and returns its combined output
	// and exit code. err is non-nil only when the command could not be
	// executed at all.
	Run(ctx context.Context, name string, args ...string) (out string, code int, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	outBytes, err := cmd.CombinedOutput()
	out := strings.TrimRight(string(outBytes), "\n")
	if err == nil {
		return out, 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, exitErr.ExitCode(), nil
	}
	return out, -1, err
}

// New selects the Manager implementation for the configured platform.
func New(cfg *config.Config) Manager {
	switch cfg.Platform {
	case platform.Systemd:
		return newSystemd(cfg, execRunner{})
	case platform.Launchd:
		return newLaunchd(cfg, execRunner{}, clock.New())
	default:
		return unsupported{}
	}
}
