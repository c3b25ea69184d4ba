package svcmgr

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"golang.org/x/sys/unix"

	"github.com/comelit-hap/bridgectl/internal/config"
	"github.com/comelit-hap/bridgectl/internal/debuglog"
	"github.com/comelit-hap/bridgectl/internal/process"
)

// restartDelay gives launchd time to reap the unloaded process before
// the job is loaded again. Without it the load can race the unload and
// find the old instance still registered.
const restartDelay = 2 * time.Second

// launchdManager drives the bridge job through launchctl. launchd has
// no atomic restart and no status report, so both are reconstructed
// here from a job-list query and the advisory PID file.
type launchdManager struct {
	label    string
	plist    string
	pidFile  string
	procName string
	runner   Runner
	clock    clock.Clock
}

func newLaunchd(cfg *config.Config, r Runner, clk clock.Clock) *launchdManager {
	return &launchdManager{
		label:    cfg.LaunchdLabel,
		plist:    cfg.LaunchdPlist,
		pidFile:  cfg.PIDFile,
		procName: config.ServiceName,
		runner:   r,
		clock:    clk,
	}
}

// IsActive reports whether the job is loaded. launchctl list exits 0
// for known labels and nonzero otherwise.
func (m *launchdManager) IsActive(ctx context.Context) (bool, error) {
	_, code, err := m.runner.Run(ctx, "launchctl", "list", m.label)
	if err != nil {
		return false, fmt.Errorf("failed to run launchctl: %w", err)
	}
	return code == 0, nil
}

func (m *launchdManager) Start(ctx context.Context) error {
	loaded, err := m.IsActive(ctx)
	if err != nil {
		return err
	}
	if loaded {
		return ErrAlreadyRunning
	}

	out, code, err := m.runner.Run(ctx, "launchctl", "load", m.plist)
	if err != nil {
		return fmt.Errorf("failed to run launchctl: %w", err)
	}
	if code != 0 {
		return fmt.Errorf("launchctl load %s failed: %s", m.plist, out)
	}
	return nil
}

func (m *launchdManager) Stop(ctx context.Context) error {
	loaded, err := m.IsActive(ctx)
	if err != nil {
		return err
	}
	if !loaded {
		return ErrNotRunning
	}

	out, code, err := m.runner.Run(ctx, "launchctl", "unload", m.plist)
	if err != nil {
		return fmt.Errorf("failed to run launchctl: %w", err)
	}
	if code != 0 {
		return fmt.Errorf("launchctl unload %s failed: %s", m.plist, out)
	}
	return nil
}

func (m *launchdManager) Restart(ctx context.Context) error {
	loaded, err := m.IsActive(ctx)
	if err != nil {
		return err
	}

	if loaded {
		out, code, err := m.runner.Run(ctx, "launchctl", "unload", m.plist)
		if err != nil {
			return fmt.Errorf("failed to run launchctl: %w", err)
		}
		if code != 0 {
			return fmt.Errorf("launchctl unload %s failed: %s", m.plist, out)
		}
		m.clock.Sleep(restartDelay)
	}

	out, code, err := m.runner.Run(ctx, "launchctl", "load", m.plist)
	if err != nil {
		return fmt.Errorf("failed to run launchctl: %w", err)
	}
	if code != 0 {
		return fmt.Errorf("launchctl load %s failed: %s", m.plist, out)
	}
	return nil
}

// Status reconstructs a report: whether the job is loaded, and whether
// the PID file points at a live process. The PID file is never trusted
// alone; the process table decides between running and stale.
func (m *launchdManager) Status(ctx context.Context) (string, error) {
	var b strings.Builder

	loaded, err := m.IsActive(ctx)
	if err != nil {
		return "", err
	}
	if loaded {
		fmt.Fprintf(&b, "%s: loaded\n", m.label)
	} else {
		fmt.Fprintf(&b, "%s: not loaded\n", m.label)
	}

	pid, err := process.ReadPIDFile(m.pidFile)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintf(&b, "PID file: none (%s)\n", m.pidFile)
	case err != nil:
		fmt.Fprintf(&b, "PID file: unreadable (%v)\n", err)
	case process.Alive(pid):
		fmt.Fprintf(&b, "PID: %d (running)\n", pid)
	default:
		fmt.Fprintf(&b, "PID: %d (stale pid file)\n", pid)
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// Signal delivers SIGHUP directly to the bridge process. launchctl has
// no scoped signal delivery, so the chain is: PID file (validated
// against the process table), then a process-table search by name,
// then failure. Each satisfied strategy is traced.
func (m *launchdManager) Signal(ctx context.Context) error {
	log := debuglog.WithComponent("svcmgr")

	pid, err := process.ReadPIDFile(m.pidFile)
	if err == nil && process.Alive(pid) {
		log.Debug().Int("pid", pid).Msg("reload target from pid file")
		return process.Signal(pid, unix.SIGHUP)
	}
	if err == nil {
		log.Debug().Int("pid", pid).Msg("pid file is stale, falling back to process search")
	} else if !os.IsNotExist(err) {
		log.Debug().Err(err).Msg("pid file unreadable, falling back to process search")
	}

	pid, err = process.FindByName(ctx, m.procName)
	if err == nil {
		log.Debug().Int("pid", pid).Msg("reload target from process search")
		return process.Signal(pid, unix.SIGHUP)
	}

	return fmt.Errorf("%w: %s", ErrProcessNotFound, m.procName)
}
