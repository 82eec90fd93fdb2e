package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig maps TYPECORE_* environment variables. Unset variables stay nil.
type EnvConfig struct {
	Category *string  `env:"TYPECORE_CATEGORY"`
	Exercise *string  `env:"TYPECORE_EXERCISE"`
	Lang     *string  `env:"TYPECORE_LANG"`
	Words    *int     `env:"TYPECORE_WORDS"`
	Sound    *bool    `env:"TYPECORE_SOUND"`
	Volume   *float64 `env:"TYPECORE_VOLUME"`
	DBPath   string   `env:"TYPECORE_DB"`
}

// LoadEnv reads overrides from the environment.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// WithEnv returns cfg with the environment overrides applied on top.
func (cfg FileConfig) WithEnv(e EnvConfig) FileConfig {
	if e.Category != nil {
		cfg.Practice.Category = e.Category
	}
	if e.Exercise != nil {
		cfg.Practice.Exercise = e.Exercise
	}
	if e.Lang != nil {
		cfg.Practice.Lang = e.Lang
	}
	if e.Words != nil {
		cfg.Practice.Words = e.Words
	}
	if e.Sound != nil {
		cfg.Sound.Enabled = e.Sound
	}
	if e.Volume != nil {
		cfg.Sound.Volume = e.Volume
	}
	return cfg
}

// DBPathOrDefault returns the database path, honoring TYPECORE_DB.
func (e EnvConfig) DBPathOrDefault() string {
	if e.DBPath != "" {
		return e.DBPath
	}
	return DefaultDBPath()
}
