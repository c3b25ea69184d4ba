package logview

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
)

// Journal queries the systemd journal for the bridge unit. It is the
// read fallback when the log directory has not been created: the unit
// still logs to the journal via its stdout/stderr.
type Journal struct {
	unit string
}

// NewJournal creates a journal reader scoped to the given unit.
func NewJournal(unit string) *Journal {
	return &Journal{unit: unit}
}

func (j *Journal) args(n int, follow bool) []string {
	args := []string{"-u", j.unit, "--no-pager", "-n", strconv.Itoa(n)}
	if follow {
		args = append(args, "-f")
	}
	return args
}

// Read streams the last n journal records for the unit into w. With
// follow set it keeps streaming until ctx is cancelled; journalctl is
// then torn down with the command context.
func (j *Journal) Read(ctx context.Context, w io.Writer, n int, follow bool) error {
	cmd := exec.CommandContext(ctx, "journalctl", j.args(n, follow)...)
	cmd.Stdout = w
	cmd.Stderr = w

	err := cmd.Run()
	if follow && ctx.Err() != nil {
		// Interrupted follow is the normal way out, not a failure.
		return nil
	}
	if err != nil {
		return fmt.Errorf("journalctl query for %s failed: %w", j.unit, err)
	}
	return nil
}
