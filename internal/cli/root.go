// Package cli wires the bridgectl subcommands. Each subcommand is
// constructed with a getter for the shared configuration, which is
// resolved once per invocation from the host platform.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comelit-hap/bridgectl/internal/config"
	"github.com/comelit-hap/bridgectl/internal/platform"
	"github.com/comelit-hap/bridgectl/internal/util"
)

var (
	// Global config instance, resolved once per invocation
	cfg *config.Config
)

// ConfigGetter is a function that returns the Config instance
type ConfigGetter func() *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bridgectl",
	Short: "Control the Comelit HAP bridge service",
	Long: `bridgectl: control the Comelit HAP bridge service.

Manages the bridge daemon through the native service manager (systemd
on Linux, launchd on macOS) and provides a uniform view over its
rotated log output.`,
	// Taking over arg validation keeps the unknown-subcommand error on
	// this command, where usage is still printed. cobra's own dispatch
	// error skips the usage block entirely.
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
	},
	// Once dispatch reaches a subcommand, a failing action should
	// report its error without drowning it in the usage block.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cmd.HasParent() {
			cmd.SilenceUsage = true
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Lifecycle
	rootCmd.AddCommand(NewStartCmd(getConfig))
	rootCmd.AddCommand(NewStopCmd(getConfig))
	rootCmd.AddCommand(NewRestartCmd(getConfig))
	rootCmd.AddCommand(NewStatusCmd(getConfig))

	// Log introspection
	rootCmd.AddCommand(NewLogsCmd(getConfig))
	rootCmd.AddCommand(NewErrorsCmd(getConfig))
	rootCmd.AddCommand(NewListLogsCmd(getConfig))

	// Maintenance
	rootCmd.AddCommand(NewReloadCmd(getConfig))
	rootCmd.AddCommand(NewResetCmd(getConfig))
}

// initConfig resolves the platform and loads the configuration,
// including the optional YAML override file.
func initConfig() {
	c, err := config.Load(platform.Resolve())
	if err != nil {
		util.Die("%v", err)
	}
	cfg = c
}

// getConfig returns the global config instance
// This is passed to subcommands as a getter function
func getConfig() *config.Config {
	if cfg == nil {
		initConfig()
	}
	return cfg
}

// requireManaged fails fast when the platform has no known service
// manager, or when the caller lacks the privilege a mutating operation
// needs. The privilege check runs before anything touches the service
// manager so failures never happen mid-operation.
func requireManaged(c *config.Config, needRoot bool) error {
	if !c.Platform.Supported() {
		return platform.ErrUnsupported
	}
	if needRoot {
		return platform.RequireRoot()
	}
	return nil
}
