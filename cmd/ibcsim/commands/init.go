package commands

import (
	"github.com/spf13/cobra"

	"github.com/tendermint/ibc/config"
)

var force bool

// InitFilesCmd writes a default config file to the home directory.
var InitFilesCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the ibcsim home directory",
	RunE:  initFiles,
}

func init() {
	InitFilesCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
}

func initFiles(cmd *cobra.Command, args []string) error {
	if err := config.EnsureRoot(conf); err != nil {
		return err
	}

	path := conf.ConfigFile()
	if fileExists(path) && !force {
		logger.Info("Found config file", "path", path)
		return nil
	}
	if err := config.WriteConfigFile(path, conf); err != nil {
		return err
	}
	logger.Info("Generated config file", "path", path)
	return nil
}
