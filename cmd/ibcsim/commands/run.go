package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tendermint/ibc/config"
	"github.com/tendermint/ibc/internal/sim"
)

// RunCmd relays the configured packets and writes the event report.
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Open a channel between two chains and relay packets over it",
	RunE:  runSimulation,
}

func init() {
	RunCmd.Flags().Int("packets", 0, "number of packets to send, overrides [packets] count")
	RunCmd.Flags().String("report", "", "path of the event report (default $HOME/.ibcsim/events.toml)")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	if n := viper.GetInt("packets"); n > 0 {
		conf.Packets.Count = n
		if err := conf.ValidateBasic(); err != nil {
			return err
		}
	}
	if err := config.EnsureRoot(conf); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := sim.NewSimulator(conf, logger)
	if err != nil {
		return fmt.Errorf("failed to create simulator: %w", err)
	}
	rep, err := s.Run(ctx)
	if err != nil {
		return err
	}

	path := viper.GetString("report")
	if path == "" {
		path = conf.ReportFile()
	}
	if err := config.WriteReport(path, rep); err != nil {
		return err
	}
	logger.Info("Simulation finished",
		"sent", rep.Packets.Sent,
		"acknowledged", rep.Packets.Acknowledged,
		"timed_out", rep.Packets.TimedOut,
		"report", path,
	)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
