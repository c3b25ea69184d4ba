package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comelit-hap/bridgectl/internal/svcmgr"
	"github.com/comelit-hap/bridgectl/internal/util"
)

// NewStartCmd creates the start command
func NewStartCmd(getCfg ConfigGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the bridge service",
		Long: `Start the bridge service through the native service manager.

If the service is already running, a warning is printed and nothing
is done. Requires root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getCfg()
			if err := requireManaged(c, true); err != nil {
				return err
			}

			err := svcmgr.New(c).Start(cmd.Context())
			if errors.Is(err, svcmgr.ErrAlreadyRunning) {
				util.Warn("%s is already running, nothing to do", c.ServiceID())
				return nil
			}
			if err != nil {
				return err
			}

			util.Success("started %s", c.ServiceID())
			return nil
		},
	}
}

// NewStopCmd creates the stop command
func NewStopCmd(getCfg ConfigGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the bridge service",
		Long: `Stop the bridge service through the native service manager.

If the service is not running, a warning is printed and nothing is
done. Requires root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getCfg()
			if err := requireManaged(c, true); err != nil {
				return err
			}

			err := svcmgr.New(c).Stop(cmd.Context())
			if errors.Is(err, svcmgr.ErrNotRunning) {
				util.Warn("%s is not running, nothing to do", c.ServiceID())
				return nil
			}
			if err != nil {
				return err
			}

			util.Success("stopped %s", c.ServiceID())
			return nil
		},
	}
}

// NewRestartCmd creates the restart command
func NewRestartCmd(getCfg ConfigGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Restart the bridge service",
		Long: `Restart the bridge service.

On Linux this delegates to systemd's atomic restart. On macOS, where
launchd has no restart primitive, the job is unloaded, given a short
pause to be reaped, and loaded again. Requires root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getCfg()
			if err := requireManaged(c, true); err != nil {
				return err
			}

			if err := svcmgr.New(c).Restart(cmd.Context()); err != nil {
				return err
			}

			util.Success("restarted %s", c.ServiceID())
			return nil
		},
	}
}

// NewStatusCmd creates the status command
func NewStatusCmd(getCfg ConfigGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show bridge service status",
		Long: `Show the status of the bridge service.

On Linux this relays systemd's own status report. On macOS the report
is reconstructed from the launchd job list and the bridge's PID file,
distinguishing a running process from a stale PID file. Requires no
privilege.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getCfg()
			if err := requireManaged(c, false); err != nil {
				return err
			}

			out, err := svcmgr.New(c).Status(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}
