// Package cli wires cobra commands to viper so that every flag can also be
// set through a PREFIX_* environment variable.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	HomeFlag  = "home"
	TraceFlag = "trace"
)

// PrepareBaseCmd adds the home and trace flags to cmd. Before cmd or any of
// its subcommands run, their flags and the envPrefix_* environment variables
// are bound into viper, then cmd's own PersistentPreRunE is called.
func PrepareBaseCmd(cmd *cobra.Command, envPrefix, defaultHome string) *cobra.Command {
	cobra.OnInitialize(func() { InitEnv(envPrefix) })
	cmd.PersistentFlags().String(HomeFlag, defaultHome, "directory for config and data")
	cmd.PersistentFlags().Bool(TraceFlag, false, "print out full stack trace on errors")

	next := cmd.PersistentPreRunE
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		if err := BindFlags(c, args); err != nil {
			return err
		}
		if next == nil {
			return nil
		}
		return next(c, args)
	}
	return cmd
}

// InitEnv makes viper read PREFIX_KEY variables, with dashes and dots in the
// key replaced by underscores. Variables spelled without the separator, such
// as IBCSIMHOME, are copied to their PREFIX_ form first.
func InitEnv(prefix string) {
	prefix = strings.ToUpper(prefix)
	withSep := prefix + "_"
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, prefix) || strings.HasPrefix(k, withSep) {
			continue
		}
		os.Setenv(withSep+strings.TrimPrefix(k, prefix), v)
	}

	viper.SetEnvPrefix(prefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// BindFlags binds the flags of cmd, including those inherited from its
// parents, into viper.
func BindFlags(cmd *cobra.Command, args []string) error {
	return viper.BindPFlags(cmd.Flags())
}
