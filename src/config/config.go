// Package config loads runtime settings from .infographic.toml,
// INFOGRAPHIC_* environment variables and CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "INFOGRAPHIC"

// Measurer names.
const (
	MeasurerBasic    = "basicfont"
	MeasurerTrueType = "truetype"
)

// ErrConfigExists indicates WriteDefault would overwrite an existing file.
var ErrConfigExists = errors.New("config file already exists")

// Config holds the settings shared by every command.
type Config struct {
	LogLevel      string        `mapstructure:"log_level"`
	Template      string        `mapstructure:"template"`
	Output        string        `mapstructure:"output"`
	Measurer      string        `mapstructure:"measurer"`
	ViewportWidth float64       `mapstructure:"viewport_width"`
	ShuffleSeed   int64         `mapstructure:"shuffle_seed"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
}

// fileConfig is the on-disk shape written by WriteDefault.
type fileConfig struct {
	LogLevel      string  `toml:"log_level" comment:"debug, info, warn or error"`
	Template      string  `toml:"template" comment:"page the charts are mounted into"`
	Output        string  `toml:"output"`
	Measurer      string  `toml:"measurer" comment:"basicfont or truetype"`
	ViewportWidth float64 `toml:"viewport_width" comment:"0 keeps the layout width"`
	ShuffleSeed   int64   `toml:"shuffle_seed"`
	WatchDebounce string  `toml:"watch_debounce"`
}

// Defaults are the built-in values.
func Defaults() Config {
	return Config{
		LogLevel:      "info",
		Template:      "index.html",
		Output:        "infographic.html",
		Measurer:      MeasurerBasic,
		ViewportWidth: 0,
		ShuffleSeed:   1,
		WatchDebounce: 300 * time.Millisecond,
	}
}

// Init points viper at cfgFile, or at .infographic.toml in the working
// directory or home, and enables environment overrides. A missing default
// file is not an error.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".infographic")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	d := Defaults()
	viper.SetDefault("log_level", d.LogLevel)
	viper.SetDefault("template", d.Template)
	viper.SetDefault("output", d.Output)
	viper.SetDefault("measurer", d.Measurer)
	viper.SetDefault("viewport_width", d.ViewportWidth)
	viper.SetDefault("shuffle_seed", d.ShuffleSeed)
	viper.SetDefault("watch_debounce", d.WatchDebounce)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	switch cfg.Measurer {
	case MeasurerBasic, MeasurerTrueType:
	default:
		return Config{}, fmt.Errorf("measurer %q: want %s or %s", cfg.Measurer, MeasurerBasic, MeasurerTrueType)
	}
	if cfg.WatchDebounce < 0 {
		return Config{}, fmt.Errorf("watch_debounce must not be negative, got %s", cfg.WatchDebounce)
	}
	return cfg, nil
}

// WriteDefault writes the built-in defaults as TOML to path. An existing file
// is only replaced when overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	d := Defaults()
	data, err := toml.Marshal(fileConfig{
		LogLevel:      d.LogLevel,
		Template:      d.Template,
		Output:        d.Output,
		Measurer:      d.Measurer,
		ViewportWidth: d.ViewportWidth,
		ShuffleSeed:   d.ShuffleSeed,
		WatchDebounce: d.WatchDebounce.String(),
	})
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
