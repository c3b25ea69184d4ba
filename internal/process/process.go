// Package process reads the bridge's advisory PID file and probes the
// live process table. The PID file is owned by the bridge's startup
// wrapper; this package never creates or removes it, and never trusts
// it without a liveness probe.
package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sys/unix"
)

// ErrNoMatch is returned by FindByName when no process in the table
// matches the requested name.
var ErrNoMatch = errors.New("no matching process found")

// ReadPIDFile parses the PID stored at path. A missing file is reported
// with an error satisfying os.IsNotExist so callers can distinguish
// absence from corruption.
func ReadPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in %s: %w", path, err)
	}
	if pid <= 0 {
		return 0, fmt.Errorf("invalid PID %d in %s", pid, path)
	}
	return pid, nil
}

// Alive reports whether a process with the given PID exists, using a
// zero-signal probe. EPERM means the process exists but belongs to
// another user, which still counts as alive.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	if err == nil {
		return true
	}
	return !errors.Is(err, unix.ESRCH)
}

// Signal delivers sig directly to the given PID.
func Signal(pid int, sig unix.Signal) error {
	if err := unix.Kill(pid, sig); err != nil {
		return fmt.Errorf("failed to signal pid %d: %w", pid, err)
	}
	return nil
}

// FindByName scans the process table for the first process whose
// executable name matches name, or whose command line contains it
// (covers interpreters and wrapper scripts). Returns ErrNoMatch when
// nothing matches.
func FindByName(ctx context.Context, name string) (int, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list processes: %w", err)
	}

	for _, p := range procs {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		if pn, err := p.NameWithContext(ctx); err == nil && pn == name {
			return int(p.Pid), nil
		}
		if cmdline, err := p.CmdlineWithContext(ctx); err == nil &&
			cmdline != "" && strings.Contains(cmdline, name) {
			return int(p.Pid), nil
		}
	}
	return 0, ErrNoMatch
}
