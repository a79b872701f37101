package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/tendermint/ibc/cmd/ibcsim/commands"
	"github.com/tendermint/ibc/libs/cli"
)

func main() {
	rootCmd := commands.RootCommand()
	rootCmd.AddCommand(
		commands.InitFilesCmd,
		commands.RunCmd,
		commands.VersionCmd,
	)

	cmd := cli.PrepareBaseCmd(rootCmd, "IBCSIM", commands.DefaultHome())
	if err := cmd.Execute(); err != nil {
		if viper.GetBool(cli.TraceFlag) {
			fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		os.Exit(1)
	}
}
