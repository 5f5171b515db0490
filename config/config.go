// Package config loads shared settings for the binaries.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"othello-engine/search"
)

// Config holds everything the binaries read from a config file or the
// environment. Flags override these values where the binaries expose them.
type Config struct {
	// Search parameters (see search.Config).
	SearchDepth int `mapstructure:"SEARCH_DEPTH"`
	BranchLimit int `mapstructure:"BRANCH_LIMIT"`
	MaxWidenDiv int `mapstructure:"MAX_WIDEN_DIV"`
	MinWidenDiv int `mapstructure:"MIN_WIDEN_DIV"`

	// Storage locations.
	HighscorePath string `mapstructure:"HIGHSCORE_PATH"`
	ArchiveDir    string `mapstructure:"ARCHIVE_DIR"`

	// PlayerName is the display name used for the human player.
	PlayerName string `mapstructure:"PLAYER_NAME"`
}

// SearchConfig converts the loaded settings into a search configuration.
// Unset values fall back to the search defaults.
func (c *Config) SearchConfig() search.Config {
	return search.Config{
		Depth:       c.SearchDepth,
		BranchLimit: c.BranchLimit,
		MaxWidenDiv: c.MaxWidenDiv,
		MinWidenDiv: c.MinWidenDiv,
	}
}

// Load reads cfgPath (any format viper understands) plus OTHELLO_* env
// overrides. A missing file is not an error; defaults apply.
func Load(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault("SEARCH_DEPTH", 0)
	v.SetDefault("BRANCH_LIMIT", 0)
	v.SetDefault("MAX_WIDEN_DIV", 0)
	v.SetDefault("MIN_WIDEN_DIV", 0)
	v.SetDefault("HIGHSCORE_PATH", "othello_scores.db")
	v.SetDefault("ARCHIVE_DIR", "archive")
	v.SetDefault("PLAYER_NAME", "")

	v.SetEnvPrefix("OTHELLO")
	v.AutomaticEnv()

	if cfgPath != "" {
		if _, err := os.Stat(cfgPath); err == nil {
			v.SetConfigFile(cfgPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
