package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tendermint/ics10-grandpa/config"
	"github.com/tendermint/ics10-grandpa/libs/cli"
	"github.com/tendermint/ics10-grandpa/libs/log"
)

var (
	conf   = config.DefaultConfig()
	logger = log.MustNewDefaultLogger(log.LogFormatPlain, log.LogLevelInfo)
)

// ParseConfig retrieves the default environment configuration, sets up the
// root and validates the result.
func ParseConfig(conf *config.Config) (*config.Config, error) {
	if err := viper.Unmarshal(conf); err != nil {
		return nil, err
	}

	conf.SetRoot(conf.RootDir)

	if err := conf.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("error in config file: %w", err)
	}
	return conf, nil
}

// RootCmd is the root command for the GRANDPA light client.
var RootCmd = &cobra.Command{
	Use:   "grandpa-light",
	Short: "ICS-10 light client for GRANDPA finalized chains",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if cmd.Name() == VersionCmd.Name() {
			return nil
		}

		conf, err = ParseConfig(conf)
		if err != nil {
			return err
		}

		logger, err = log.NewDefaultLoggerWithOutput(os.Stderr, conf.LogFormat, conf.LogLevel)
		if err != nil {
			return err
		}
		logger = logger.With("module", "main")
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().String("log-level", conf.LogLevel, "log level")
	RootCmd.PersistentFlags().String("log-format", conf.LogFormat, "log format (plain|text|json)")
}

// NewExecutor wires the subcommands under RootCmd and prepares it for
// execution with the given home directory default.
func NewExecutor(defaultHome string) cli.Executor {
	RootCmd.AddCommand(
		InitCmd,
		CreateCmd,
		UpdateCmd,
		MisbehaviourCmd,
		StatusCmd,
		ExportCmd,
		PruneCmd,
		VersionCmd,
	)
	return cli.PrepareBaseCmd(RootCmd, "GRANDPA", defaultHome)
}
