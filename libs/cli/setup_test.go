package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindFlagsAndEnv(t *testing.T) {
	testCases := map[string]struct {
		args     []string
		env      map[string]string
		expLevel string
		expHome  string
	}{
		"defaults": {nil, nil, "info", "/default"},
		"flag":     {[]string{"--log-level", "debug"}, nil, "debug", "/default"},
		"env":      {nil, map[string]string{"DEMO_LOG_LEVEL": "error", "DEMO_HOME": "/env"}, "error", "/env"},
		"old env":  {nil, map[string]string{"DEMOHOME": "/old"}, "info", "/old"},
		"flag wins": {
			[]string{"--log-level", "warn"},
			map[string]string{"DEMO_LOG_LEVEL": "error"},
			"warn", "/default",
		},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			// InitEnv copies DEMOHOME with os.Setenv; registering the keys
			// here restores them after the test.
			t.Setenv("DEMO_HOME", "")
			t.Setenv("DEMO_LOG_LEVEL", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			var level, home string
			cmd := &cobra.Command{
				Use: "demo",
				RunE: func(cmd *cobra.Command, args []string) error {
					level = viper.GetString("log-level")
					home = viper.GetString(HomeFlag)
					return nil
				},
			}
			cmd.Flags().String("log-level", "info", "log level")
			cmd = PrepareBaseCmd(cmd, "DEMO", "/default")
			cmd.SetArgs(tc.args)

			require.NoError(t, cmd.Execute())
			assert.Equal(t, tc.expLevel, level)
			assert.Equal(t, tc.expHome, home)
		})
	}
}
