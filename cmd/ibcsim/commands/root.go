package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tendermint/ibc/config"
	"github.com/tendermint/ibc/libs/cli"
	"github.com/tendermint/ibc/libs/log"
)

var (
	conf   = config.DefaultConfig()
	logger = log.MustNewDefaultLogger(log.LogFormatPlain, log.LogLevelInfo)
)

// ParseConfig loads the config file in the home directory, if there is one,
// and applies the log flags and IBCSIM_* environment variables on top.
func ParseConfig() (*config.Config, error) {
	home := viper.GetString(cli.HomeFlag)
	c := config.DefaultConfig().SetRoot(home)

	switch _, err := os.Stat(c.ConfigFile()); {
	case err == nil:
		loaded, err := config.LoadConfig(c.ConfigFile())
		if err != nil {
			return nil, err
		}
		c = loaded.SetRoot(home)
	case !os.IsNotExist(err):
		return nil, err
	}

	if viper.IsSet("log-level") {
		c.Log.Level = viper.GetString("log-level")
	}
	if viper.IsSet("log-format") {
		c.Log.Format = viper.GetString("log-format")
	}

	if err := c.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("error in config file: %w", err)
	}
	return c, nil
}

// RootCommand constructs the root command-line entry point for ibcsim.
func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ibcsim",
		Short: "Relay IBC packets between two in-process chains",

		// main prints the error, with a stack trace under --trace.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == VersionCmd.Name() {
				return nil
			}

			pconf, err := ParseConfig()
			if err != nil {
				return err
			}
			conf = pconf
			logger, err = log.NewDefaultLogger(conf.Log.Format, conf.Log.Level)
			return err
		},
	}
	cmd.PersistentFlags().String("log-level", conf.Log.Level, "log level")
	cmd.PersistentFlags().String("log-format", conf.Log.Format, "log format (plain|json)")
	return cmd
}

// DefaultHome returns $HOME/.ibcsim.
func DefaultHome() string {
	return os.ExpandEnv(filepath.Join("$HOME", config.DefaultIBCSimDir))
}
