// Package config loads the TOML config file and resolves it together with
// command line flags into the settings a run uses.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Player   PlayerConfig   `toml:"player"`
	Storage  StorageConfig  `toml:"storage"`
	Training TrainingConfig `toml:"training"`
	Log      LogConfig      `toml:"log"`
}

// PlayerConfig maps player settings.
type PlayerConfig struct {
	Name *string `toml:"name"`
}

// StorageConfig maps where profiles are kept.
type StorageConfig struct {
	Backend  *string `toml:"backend"`
	DB       *string `toml:"db"`
	UsersDir *string `toml:"users_dir"`
}

// TrainingConfig maps grid and session settings.
type TrainingConfig struct {
	RequiredStreak  *int     `toml:"required_streak"`
	DefaultLevels   *int     `toml:"default_levels"`
	TimeLimits      []string `toml:"time_limits"`
	RefreshInterval *string  `toml:"refresh_interval"`
	Seed            *int64   `toml:"seed"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
