package commands

import (
	"github.com/spf13/cobra"

	"github.com/tendermint/ics10-grandpa/config"
)

// InitCmd creates the home directory and writes the default config file.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the home directory with a default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.EnsureRoot(conf.RootDir); err != nil {
			return err
		}
		logger.Info("initialized home directory", "home", conf.RootDir, "config", conf.ConfigFile())
		return nil
	},
}
