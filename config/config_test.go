package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendermint/ibc/core/channel"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.ValidateBasic())

	cfg.SetRoot("/foo")
	assert.Equal(t, "/foo/config.toml", cfg.ConfigFile())
	assert.Equal(t, "/foo/data", cfg.DataDir())
	assert.Equal(t, "/foo/events.toml", cfg.ReportFile())

	c, err := cfg.ChainA.ToChain()
	require.NoError(t, err)
	assert.Equal(t, "chain-a", c.ChainID.String())
	assert.Equal(t, 5*time.Second, c.BlockTime)

	order, err := cfg.Channel.Order()
	require.NoError(t, err)
	assert.Equal(t, channel.OrderUnordered, order)
}

func TestConfigValidateBasic(t *testing.T) {
	testCases := map[string]struct {
		malleate func(*Config)
		section  string
	}{
		"log format":       {func(c *Config) { c.Log.Format = "xml" }, "[log]"},
		"chain id":         {func(c *Config) { c.ChainA.ChainID = "" }, "[chain_a]"},
		"block time":       {func(c *Config) { c.ChainB.BlockTime = 0 }, "[chain_b]"},
		"empty prefix":     {func(c *Config) { c.ChainB.CommitmentPrefix = "" }, "[chain_b]"},
		"db backend":       {func(c *Config) { c.ChainA.DBBackend = "rocksdb" }, "[chain_a]"},
		"same chain ids":   {func(c *Config) { c.ChainB.ChainID = c.ChainA.ChainID }, "different chain ids"},
		"ordering":         {func(c *Config) { c.Channel.Ordering = "none" }, "[channel]"},
		"negative delay":   {func(c *Config) { c.Channel.DelayPeriod = -1 }, "[channel]"},
		"dropped > count":  {func(c *Config) { c.Packets.Dropped = c.Packets.Count + 1 }, "[packets]"},
		"drop w/o timeout": {func(c *Config) { c.Packets.Dropped, c.Packets.TimeoutBlocks = 1, 0 }, "[packets]"},
		"ordered drops":    {func(c *Config) { c.Channel.Ordering, c.Packets.Dropped = "ordered", 2 }, "first timeout"},
		"namespace":        {func(c *Config) { c.Instrumentation.Prometheus, c.Instrumentation.Namespace = true, "" }, "[instrumentation]"},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.malleate(cfg)
			err := cfg.ValidateBasic()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.section)
		})
	}
}

func TestConfigFileRoundTrip(t *testing.T) {
	cfg := DefaultConfig().SetRoot(t.TempDir())
	cfg.Channel.Ordering = "ordered"
	cfg.Channel.DelayPeriod = Duration(15 * time.Second)
	cfg.Packets.AsyncAcks = true
	cfg.ChainB.DBBackend = "goleveldb"

	require.NoError(t, EnsureRoot(cfg))
	require.NoError(t, WriteConfigFile(cfg.ConfigFile(), cfg))

	loaded, err := LoadConfig(cfg.ConfigFile())
	require.NoError(t, err)
	loaded.SetRoot(cfg.RootDir)
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, loaded.ValidateBasic())
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteReport(path, map[string]interface{}{
		"log": map[string]string{"level": "info", "colour": "blue"},
	}))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.colour")
}

func TestDefaultDBProvider(t *testing.T) {
	cfg := DefaultConfig().SetRoot(t.TempDir())
	require.NoError(t, EnsureRoot(cfg))

	for _, backend := range []string{"memdb", "goleveldb"} {
		cfg.ChainA.DBBackend = backend
		db, err := DefaultDBProvider(&DBContext{ID: "chain-a", Config: cfg, Chain: cfg.ChainA})
		require.NoError(t, err, backend)
		require.NoError(t, db.Set([]byte("k"), []byte("v")))
		require.NoError(t, db.Close())
	}
}
