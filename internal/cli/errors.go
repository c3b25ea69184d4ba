package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/comelit-hap/bridgectl/internal/util"
)

// NewErrorsCmd creates the errors command
func NewErrorsCmd(getCfg ConfigGetter) *cobra.Command {
	var (
		follow bool
		lines  int
	)

	cmd := &cobra.Command{
		Use:   "errors",
		Short: "Show bridge error log output",
		Long: `Display the most recent entries of the bridge's dedicated error
log. Unlike logs, this always targets the single fixed error log file:
there is no rotated-file variant and no journal fallback.`,
		Args:               cobra.NoArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			if lines <= 0 {
				return fmt.Errorf("line count must be positive, got %d", lines)
			}
			c := getCfg()

			if !util.FileExists(c.ErrorLog) {
				util.Warn("error log not found: %s", c.ErrorLog)
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, unix.SIGTERM)
			defer stop()

			return renderFiles(ctx, []string{c.ErrorLog}, follow, lines)
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Stream new error log content until interrupted")
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show")
	return cmd
}
