package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comelit-hap/bridgectl/internal/config"
	"github.com/comelit-hap/bridgectl/internal/platform"
	"github.com/comelit-hap/bridgectl/internal/util"
)

// NewResetCmd creates the reset command
func NewResetCmd(getCfg ConfigGetter) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear bridge logs and pairing data",
		Long: `Destructive maintenance action: recreate the two fixed log files
empty and remove the bridge's pairing data directory. The bridge must
be re-paired with HomeKit afterwards.

Asks for confirmation unless --yes is given. Requires root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getCfg()
			if err := platform.RequireRoot(); err != nil {
				return err
			}

			if !yes && !confirmReset(cmd, c) {
				util.Log("reset aborted")
				return nil
			}
			return runReset(c)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func confirmReset(cmd *cobra.Command, c *config.Config) bool {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "This clears %s and %s and removes %s.\n", c.MainLog, c.ErrorLog, c.DataDir)
	fmt.Fprint(out, "Type 'yes' to continue: ")

	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(answer) == "yes"
}

func runReset(c *config.Config) error {
	for _, path := range []string{c.MainLog, c.ErrorLog} {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			return fmt.Errorf("failed to recreate %s: %w", path, err)
		}
		util.Log("cleared %s", path)
	}

	if util.DirExists(c.DataDir) {
		if err := os.RemoveAll(c.DataDir); err != nil {
			return fmt.Errorf("failed to remove %s: %w", c.DataDir, err)
		}
		util.Log("removed %s", c.DataDir)
	} else {
		util.Log("no data directory at %s, nothing to remove", c.DataDir)
	}

	util.Success("reset complete")
	return nil
}
