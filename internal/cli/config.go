package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// defaultConfigFile is written by "config init" when no path is given.
const defaultConfigFile = "colourbands.yaml"

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage colourbands configuration files",
	}
	cmd.AddCommand(newConfigInitCmd(a))
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the current settings to a YAML config file",
		Long: `Write the resolved settings (defaults, any --config file and the
COLOURBANDS_* environment) to a YAML file that --config can read back.

Examples:
  # Start a config file from the defaults
  colourbands config init

  # Capture the environment's settings in a file
  COLOURBANDS_THRESHOLD=40 colourbands config init ~/.config/colourbands.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
				}
			}
			if err := a.cfg.Write(path); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			a.logger.Info("wrote config", "path", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
