// Package config loads astrolabe's runtime settings through viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for an astrolabe invocation.
// Values are populated from .astrolabe.yaml, ASTROLABE_* env vars, and CLI flags.
type Config struct {
	EphemerisFile    string        `mapstructure:"ephemeris_file"`
	GazetteerFile    string        `mapstructure:"gazetteer_file"`
	EphemerisTimeout time.Duration `mapstructure:"ephemeris_timeout"`
	AspectWorkers    int           `mapstructure:"aspect_workers"`
	TelemetryFile    string        `mapstructure:"telemetry_file"`
	Verbose          bool          `mapstructure:"verbose"`
	JSON             bool          `mapstructure:"json"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("ephemeris_file", "ephemeris.toml")
	viper.SetDefault("gazetteer_file", "gazetteer.toml")
	viper.SetDefault("ephemeris_timeout", 10*time.Second)
	viper.SetDefault("aspect_workers", 4)
	viper.SetDefault("telemetry_file", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("json", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	switch {
	case c.EphemerisFile == "":
		return fmt.Errorf("ephemeris_file must be set")
	case c.GazetteerFile == "":
		return fmt.Errorf("gazetteer_file must be set")
	case c.EphemerisTimeout < 0:
		return fmt.Errorf("ephemeris_timeout must not be negative, got %s", c.EphemerisTimeout)
	case c.AspectWorkers < 1:
		return fmt.Errorf("aspect_workers must be at least 1, got %d", c.AspectWorkers)
	}
	return nil
}
