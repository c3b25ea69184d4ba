package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/comelit-hap/bridgectl/internal/config"
	"github.com/comelit-hap/bridgectl/internal/debuglog"
	"github.com/comelit-hap/bridgectl/internal/logview"
	"github.com/comelit-hap/bridgectl/internal/platform"
	"github.com/comelit-hap/bridgectl/internal/util"
)

// NewLogsCmd creates the logs command
func NewLogsCmd(getCfg ConfigGetter) *cobra.Command {
	var (
		follow bool
		lines  int
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show bridge log output",
		Long: `Display the most recent bridge log entries.

By default this shows the last 50 lines of the newest rotated log
file, falling back to the fixed main log file, and on Linux to the
systemd journal when no log files exist yet. With --all, every rotated
file is merged into a single view. With --follow, new content is
streamed until interrupted.`,
		Args: cobra.NoArgs,
		// Unknown flags are skipped, not rejected, so invocations
		// written for newer versions keep working.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			if lines <= 0 {
				return fmt.Errorf("line count must be positive, got %d", lines)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, unix.SIGTERM)
			defer stop()

			return showLogs(ctx, getCfg(), follow, lines, all)
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Stream new log content until interrupted")
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Merge all rotated log files into one view")
	return cmd
}

// showLogs resolves the log target and renders it. Resolution is an
// ordered chain: rotated files, then the fixed main log, then (Linux
// only) the systemd journal; the fallback in use is announced.
func showLogs(ctx context.Context, c *config.Config, follow bool, lines int, all bool) error {
	log := debuglog.WithComponent("logs")
	locator := logview.NewLocator(c.LogDir, c.RotatedPrefix)

	var paths []string
	var locateErr error
	if all {
		files, err := locator.Rotated()
		for _, f := range files {
			paths = append(paths, f.Path)
		}
		locateErr = err
	} else {
		latest, err := locator.Latest()
		if err == nil {
			paths = []string{latest.Path}
		}
		locateErr = err
	}

	if locateErr == nil {
		log.Debug().Strs("paths", paths).Msg("serving logs from rotated files")
		return renderFiles(ctx, paths, follow, lines)
	}

	// No rotated files: the bridge may be writing the fixed pair
	// instead.
	if errors.Is(locateErr, logview.ErrNoLogFiles) && util.FileExists(c.MainLog) {
		log.Debug().Str("path", c.MainLog).Msg("serving logs from fixed main log")
		return renderFiles(ctx, []string{c.MainLog}, follow, lines)
	}

	// Nothing on disk at all. On Linux the unit's stdout/stderr still
	// reach the journal.
	if c.Platform == platform.Systemd {
		util.Warn("no log files under %s, falling back to the systemd journal", c.LogDir)
		log.Debug().Str("unit", c.SystemdUnit).Msg("serving logs from journald")
		return logview.NewJournal(c.SystemdUnit).Read(ctx, os.Stdout, lines, follow)
	}

	util.Warn("no bridge logs found (%v)", locateErr)
	return nil
}

// renderFiles prints the last N lines of the target files and, in
// follow mode, keeps streaming appended content afterwards.
func renderFiles(ctx context.Context, paths []string, follow bool, lines int) error {
	var tail []string
	var err error
	if len(paths) == 1 {
		tail, err = logview.TailLines(paths[0], lines)
	} else {
		tail, err = logview.TailMerged(paths, lines)
	}
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	for _, line := range tail {
		fmt.Println(line)
	}

	if !follow {
		return nil
	}
	return logview.NewFollower(os.Stdout).Follow(ctx, paths...)
}
