// Package config loads node configuration from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Chain ChainConfig `toml:"chain"`
	Node  NodeConfig  `toml:"node"`
	API   APIConfig   `toml:"api"`
	Log   LogConfig   `toml:"log"`
}

type ChainConfig struct {
	// Difficulty is the number of leading zero hex digits required of a
	// mined block hash.
	Difficulty int `toml:"difficulty"`

	MiningReward uint64 `toml:"mining_reward"`
}

type NodeConfig struct {
	// DataDir holds the badger chain store. Empty runs in-memory.
	DataDir string `toml:"data_dir"`

	// RewardAddress receives mining rewards.
	RewardAddress string `toml:"reward_address"`
}

type APIConfig struct {
	Listen string `toml:"listen"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Chain: ChainConfig{
			Difficulty:   2,
			MiningReward: 100,
		},
		API: APIConfig{
			Listen: ":8372",
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return cfg, fmt.Errorf("config file: %w", err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}
