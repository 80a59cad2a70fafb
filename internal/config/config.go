// Package config provides Viper-based configuration loading for the damage
// calculation library.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"
)

// DamageConfig holds damage pipeline settings.
type DamageConfig struct {
	// VarianceLow is the lower bound of the closed attack variance interval.
	VarianceLow float64 `mapstructure:"variance_low"`
	// VarianceHigh is the upper bound of the closed attack variance interval.
	VarianceHigh float64 `mapstructure:"variance_high"`
	// Strict enables fail-fast input validation; out-of-range ratings are
	// rejected, never clamped.
	Strict bool `mapstructure:"strict"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level configuration.
type Config struct {
	Damage  DamageConfig  `mapstructure:"damage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateDamage(c.Damage); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDamage(d DamageConfig) error {
	var errs []string
	if math.IsNaN(d.VarianceLow) || math.IsInf(d.VarianceLow, 0) {
		errs = append(errs, fmt.Sprintf("damage.variance_low must be finite, got %v", d.VarianceLow))
	}
	if math.IsNaN(d.VarianceHigh) || math.IsInf(d.VarianceHigh, 0) {
		errs = append(errs, fmt.Sprintf("damage.variance_high must be finite, got %v", d.VarianceHigh))
	}
	if d.VarianceLow <= 0 {
		errs = append(errs, fmt.Sprintf("damage.variance_low must be > 0, got %v", d.VarianceLow))
	}
	if d.VarianceLow > d.VarianceHigh {
		errs = append(errs, fmt.Sprintf("damage.variance_low (%v) must not exceed damage.variance_high (%v)", d.VarianceLow, d.VarianceHigh))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with DAMAGECALC_ prefix
	v.SetEnvPrefix("DAMAGECALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration: the standard variance interval,
// non-strict validation, info-level JSON logging.
//
// Postcondition: Default().Validate() == nil.
func Default() Config {
	return Config{
		Damage: DamageConfig{
			VarianceLow:  0.9,
			VarianceHigh: 1.0,
			Strict:       false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("damage.variance_low", 0.9)
	v.SetDefault("damage.variance_high", 1.0)
	v.SetDefault("damage.strict", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
