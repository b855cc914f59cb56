package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("Load() = %+v, want %+v", cfg, Defaults())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{"log_level", "INFOGRAPHIC_LOG_LEVEL", "debug", func(c Config) any { return c.LogLevel }, "debug"},
		{"template", "INFOGRAPHIC_TEMPLATE", "/srv/page.html", func(c Config) any { return c.Template }, "/srv/page.html"},
		{"measurer", "INFOGRAPHIC_MEASURER", "truetype", func(c Config) any { return c.Measurer }, "truetype"},
		{"viewport_width", "INFOGRAPHIC_VIEWPORT_WIDTH", "320", func(c Config) any { return c.ViewportWidth }, 320.0},
		{"shuffle_seed", "INFOGRAPHIC_SHUFFLE_SEED", "99", func(c Config) any { return c.ShuffleSeed }, int64(99)},
		{"watch_debounce", "INFOGRAPHIC_WATCH_DEBOUNCE", "2s", func(c Config) any { return c.WatchDebounce }, 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			viper.SetEnvPrefix(EnvPrefix)
			viper.AutomaticEnv()

			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			if got := tt.field(cfg); got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_RejectsUnknownMeasurer(t *testing.T) {
	resetViper()
	viper.Set("measurer", "canvas")
	if _, err := Load(); err == nil {
		t.Fatal("unknown measurer accepted")
	}
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".infographic.toml")
	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	if err := WriteDefault(path, false); !errors.Is(err, ErrConfigExists) {
		t.Fatalf("second write: err = %v, want ErrConfigExists", err)
	}
	if err := WriteDefault(path, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	resetViper()
	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("round trip = %+v, want %+v", cfg, Defaults())
	}
}

func TestInit_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	body := "measurer = \"truetype\"\nwatch_debounce = \"1s\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	resetViper()
	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Measurer != MeasurerTrueType || cfg.WatchDebounce != time.Second {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestInit_MissingExplicitFile(t *testing.T) {
	resetViper()
	if err := Init(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("missing explicit config file accepted")
	}
}
