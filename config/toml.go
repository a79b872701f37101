package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/creachadair/atomicfile"
)

// defaultDirPerm is the default permissions used when creating directories.
const defaultDirPerm = 0700

const configHeader = `# This is a TOML config file for ibcsim.
# For more information, see https://github.com/toml-lang/toml

`

// EnsureRoot creates the root and data directories if they don't exist.
func EnsureRoot(cfg *Config) error {
	if err := os.MkdirAll(cfg.RootDir, defaultDirPerm); err != nil {
		return fmt.Errorf("could not create root directory: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir(), defaultDirPerm); err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}
	return nil
}

// WriteConfigFile encodes config as TOML and atomically replaces the file at
// path with it.
func WriteConfigFile(path string, cfg *Config) error {
	var buf bytes.Buffer
	buf.WriteString(configHeader)
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err := atomicfile.WriteAll(path, &buf, 0644)
	return err
}

// LoadConfig decodes the TOML file at path on top of the defaults. Keys the
// file does not know about are an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in %s: %v", path, undecoded)
	}
	return cfg, nil
}

// WriteReport atomically writes v, encoded as TOML, to path.
func WriteReport(path string, v interface{}) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err := atomicfile.WriteAll(path, &buf, 0644)
	return err
}
