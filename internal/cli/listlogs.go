package cli

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/comelit-hap/bridgectl/internal/logview"
	"github.com/comelit-hap/bridgectl/internal/util"
)

// NewListLogsCmd creates the list-logs command
func NewListLogsCmd(getCfg ConfigGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "list-logs",
		Short: "List the bridge's rotated log files",
		Long: `List the rotated log files the bridge has produced, with size and
modification time. An empty log directory is reported differently from
a missing one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getCfg()

			locator := logview.NewLocator(c.LogDir, c.RotatedPrefix)
			files, err := locator.Rotated()
			switch {
			case errors.Is(err, logview.ErrLogDirMissing):
				util.Warn("log directory does not exist: %s", c.LogDir)
				return nil
			case errors.Is(err, logview.ErrNoLogFiles):
				util.Log("no log files found in %s", c.LogDir)
				return nil
			case err != nil:
				return err
			}

			util.Section("%d log file(s) in %s", len(files), c.LogDir)
			rows := make([]util.FileRow, len(files))
			for i, f := range files {
				rows[i] = util.FileRow{
					Name:    filepath.Base(f.Path),
					Size:    f.Size,
					ModTime: f.ModTime,
				}
			}
			util.FileTable(rows)
			return nil
		},
	}
}
