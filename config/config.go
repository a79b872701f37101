// Package config holds the configuration of the IBC simulator: the two
// chains it runs, the channel it opens between them and the packets it
// relays.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/commitment"
	"github.com/tendermint/ibc/core/host"
	"github.com/tendermint/ibc/internal/chain"
	"github.com/tendermint/ibc/libs/log"
)

var (
	DefaultIBCSimDir = ".ibcsim"

	defaultConfigFileName = "config.toml"
	defaultDataDir        = "data"
	defaultReportName     = "events.toml"
)

// Config defines the top level configuration of the simulator.
type Config struct {
	// Root directory of the config file, the chain databases and the event
	// report.
	RootDir string `toml:"-"`

	Log             *LogConfig             `toml:"log"`
	ChainA          *ChainConfig           `toml:"chain_a"`
	ChainB          *ChainConfig           `toml:"chain_b"`
	Channel         *ChannelConfig         `toml:"channel"`
	Packets         *PacketsConfig         `toml:"packets"`
	Instrumentation *InstrumentationConfig `toml:"instrumentation"`
}

// DefaultConfig returns a default configuration relaying ten packets over an
// unordered echo channel.
func DefaultConfig() *Config {
	return &Config{
		Log:             DefaultLogConfig(),
		ChainA:          DefaultChainConfig("chain-a"),
		ChainB:          DefaultChainConfig("chain-b"),
		Channel:         DefaultChannelConfig(),
		Packets:         DefaultPacketsConfig(),
		Instrumentation: DefaultInstrumentationConfig(),
	}
}

// TestConfig returns a configuration that keeps every chain in memory.
func TestConfig() *Config {
	cfg := DefaultConfig()
	cfg.Log.Level = log.LogLevelDebug
	cfg.Packets.Count = 3
	return cfg
}

// SetRoot sets the RootDir of the configuration.
func (cfg *Config) SetRoot(root string) *Config {
	cfg.RootDir = root
	return cfg
}

// ConfigFile returns the path of the config file under the root directory.
func (cfg *Config) ConfigFile() string { return filepath.Join(cfg.RootDir, defaultConfigFileName) }

// DataDir returns the directory persistent chain databases are kept in.
func (cfg *Config) DataDir() string { return filepath.Join(cfg.RootDir, defaultDataDir) }

// ReportFile returns the path the event report of a run is written to.
func (cfg *Config) ReportFile() string { return filepath.Join(cfg.RootDir, defaultReportName) }

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *Config) ValidateBasic() error {
	if err := cfg.Log.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [log] section: %w", err)
	}
	if err := cfg.ChainA.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [chain_a] section: %w", err)
	}
	if err := cfg.ChainB.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [chain_b] section: %w", err)
	}
	if cfg.ChainA.ChainID == cfg.ChainB.ChainID {
		return fmt.Errorf("chain_a and chain_b must have different chain ids, both are %q", cfg.ChainA.ChainID)
	}
	if err := cfg.Channel.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [channel] section: %w", err)
	}
	if err := cfg.Packets.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [packets] section: %w", err)
	}
	if order, _ := cfg.Channel.Order(); order == channel.OrderOrdered && cfg.Packets.Dropped > 1 {
		return errors.New("an ordered channel closes on its first timeout, at most one packet can be dropped")
	}
	if err := cfg.Instrumentation.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [instrumentation] section: %w", err)
	}
	return nil
}

//-----------------------------------------------------------------------------
// LogConfig

// LogConfig defines the format and level of the simulator logs.
type LogConfig struct {
	// Output level for logging, including package level options.
	Level string `toml:"level"`

	// Output format: 'plain' (colored text) or 'json'.
	Format string `toml:"format"`
}

func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level:  log.LogLevelInfo,
		Format: log.LogFormatPlain,
	}
}

func (cfg *LogConfig) ValidateBasic() error {
	switch cfg.Format {
	case log.LogFormatPlain, log.LogFormatText, log.LogFormatJSON:
	default:
		return errors.New("unknown format (must be 'plain', 'text' or 'json')")
	}
	if cfg.Level == "" {
		return errors.New("level can't be empty")
	}
	return nil
}

//-----------------------------------------------------------------------------
// ChainConfig

// ChainConfig defines one simulated chain.
type ChainConfig struct {
	ChainID string `toml:"chain_id"`

	// Prefix every provable key is committed under.
	CommitmentPrefix string `toml:"commitment_prefix"`

	// Time between two blocks.
	BlockTime Duration `toml:"block_time"`

	// Upper bound on the block time used to turn a connection delay period
	// into a number of blocks.
	MaxExpectedTimePerBlock Duration `toml:"max_expected_time_per_block"`

	GenesisTime time.Time `toml:"genesis_time"`

	// Database backend: memdb | goleveldb
	DBBackend string `toml:"db_backend"`
}

func DefaultChainConfig(chainID string) *ChainConfig {
	def := chain.DefaultConfig(host.MustParseChainID(chainID))
	return &ChainConfig{
		ChainID:                 chainID,
		CommitmentPrefix:        string(def.Prefix),
		BlockTime:               Duration(def.BlockTime),
		MaxExpectedTimePerBlock: Duration(def.MaxExpectedTimePerBlock),
		GenesisTime:             def.GenesisTime,
		DBBackend:               "memdb",
	}
}

func (cfg *ChainConfig) ValidateBasic() error {
	if _, err := cfg.ToChain(); err != nil {
		return err
	}
	switch cfg.DBBackend {
	case "memdb", "goleveldb":
	default:
		return fmt.Errorf("unsupported db_backend %q (must be 'memdb' or 'goleveldb')", cfg.DBBackend)
	}
	return nil
}

// ToChain converts the section into the configuration of a chain.
func (cfg *ChainConfig) ToChain() (chain.Config, error) {
	chainID, err := host.ParseChainID(cfg.ChainID)
	if err != nil {
		return chain.Config{}, err
	}
	prefix, err := commitment.NewPrefix([]byte(cfg.CommitmentPrefix))
	if err != nil {
		return chain.Config{}, err
	}
	c := chain.Config{
		ChainID:                 chainID,
		Prefix:                  prefix,
		BlockTime:               time.Duration(cfg.BlockTime),
		MaxExpectedTimePerBlock: time.Duration(cfg.MaxExpectedTimePerBlock),
		GenesisTime:             cfg.GenesisTime.UTC(),
	}
	return c, c.Validate()
}

//-----------------------------------------------------------------------------
// ChannelConfig

// ChannelConfig defines the connection and channel opened between the chains.
type ChannelConfig struct {
	// Channel ordering: ordered | unordered
	Ordering string `toml:"ordering"`

	// Delay period of the connection.
	DelayPeriod Duration `toml:"delay_period"`
}

func DefaultChannelConfig() *ChannelConfig {
	return &ChannelConfig{Ordering: "unordered"}
}

func (cfg *ChannelConfig) ValidateBasic() error {
	if _, err := cfg.Order(); err != nil {
		return err
	}
	if cfg.DelayPeriod < 0 {
		return errors.New("delay_period can't be negative")
	}
	return nil
}

// Order returns the configured channel ordering.
func (cfg *ChannelConfig) Order() (channel.Order, error) {
	switch cfg.Ordering {
	case "ordered":
		return channel.OrderOrdered, nil
	case "unordered":
		return channel.OrderUnordered, nil
	default:
		return channel.OrderNone, fmt.Errorf("unknown ordering %q (must be 'ordered' or 'unordered')", cfg.Ordering)
	}
}

//-----------------------------------------------------------------------------
// PacketsConfig

// PacketsConfig defines the packets sent from chain_a to chain_b.
type PacketsConfig struct {
	Count int `toml:"count"`

	// Timeout height offset, in blocks of chain_b. 0 disables height timeouts.
	TimeoutBlocks uint64 `toml:"timeout_blocks"`

	// Timeout timestamp offset from the time of chain_b. 0 disables timestamp
	// timeouts.
	TimeoutPeriod Duration `toml:"timeout_period"`

	// Number of packets left unrelayed and timed out instead.
	Dropped int `toml:"dropped"`

	// Defer acknowledgements on chain_b and write them after the receive.
	AsyncAcks bool `toml:"async_acks"`
}

func DefaultPacketsConfig() *PacketsConfig {
	return &PacketsConfig{
		Count:         10,
		TimeoutBlocks: 100,
	}
}

func (cfg *PacketsConfig) ValidateBasic() error {
	if cfg.Count < 0 {
		return errors.New("count can't be negative")
	}
	if cfg.Dropped < 0 || cfg.Dropped > cfg.Count {
		return errors.New("dropped must be between 0 and count")
	}
	if cfg.TimeoutPeriod < 0 {
		return errors.New("timeout_period can't be negative")
	}
	if cfg.Dropped > 0 && cfg.TimeoutBlocks == 0 {
		return errors.New("dropped packets need a timeout_blocks to time out")
	}
	return nil
}

//-----------------------------------------------------------------------------
// InstrumentationConfig

// InstrumentationConfig defines the configuration for metrics reporting.
type InstrumentationConfig struct {
	// When true, handler metrics are registered with Prometheus and
	// included in the event report.
	Prometheus bool `toml:"prometheus"`

	// Instrumentation namespace.
	Namespace string `toml:"namespace"`
}

// DefaultInstrumentationConfig returns a default configuration for metrics
// reporting.
func DefaultInstrumentationConfig() *InstrumentationConfig {
	return &InstrumentationConfig{
		Prometheus: false,
		Namespace:  "ibcsim",
	}
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *InstrumentationConfig) ValidateBasic() error {
	if cfg.Prometheus && cfg.Namespace == "" {
		return errors.New("namespace can't be empty when prometheus is enabled")
	}
	return nil
}

//-----------------------------------------------------------------------------
// Duration

// Duration is a time.Duration written as a string such as "5s".
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) { return []byte(time.Duration(d).String()), nil }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
