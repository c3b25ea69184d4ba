package cli

import (
	"github.com/spf13/cobra"

	"github.com/comelit-hap/bridgectl/internal/svcmgr"
	"github.com/comelit-hap/bridgectl/internal/util"
)

// NewReloadCmd creates the reload command
func NewReloadCmd(getCfg ConfigGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Ask the bridge to reopen its log files",
		Long: `Deliver a reload signal (SIGHUP) to the running bridge so it
reopens its log file handles after external rotation, without a
restart.

On Linux the signal is delivered through systemd, scoped to the unit's
main process. On macOS the PID file is consulted first; if it is absent
or stale, the process table is searched by name. Requires root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getCfg()
			if err := requireManaged(c, true); err != nil {
				return err
			}

			if err := svcmgr.New(c).Signal(cmd.Context()); err != nil {
				return err
			}

			util.Success("reload signal delivered to %s", c.ServiceID())
			return nil
		},
	}
}
