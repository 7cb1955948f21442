package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root marketdeck configuration.
type Config struct {
	General   GeneralConfig   `toml:"general"`
	Dashboard DashboardConfig `toml:"dashboard"`
	Theme     ThemeConfig     `toml:"theme"`
	Feed      FeedConfig      `toml:"feed"`
}

// GeneralConfig covers logging and storage locations.
type GeneralConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogFile receives a copy of all log output.
	LogFile string `toml:"log_file"`

	// DataDir is where dashboard state and per-widget UI state persist.
	DataDir string `toml:"data_dir"`
}

// DashboardConfig controls store behavior and startup defaults.
type DashboardConfig struct {
	// DefaultTemplate is applied when the store has no persisted state
	// yet. Empty means start with a blank dashboard.
	DefaultTemplate string `toml:"default_template"`

	// SaveDebounce delays persistence writes after a burst of mutations
	// (e.g. drag-resize). Zero writes through synchronously.
	SaveDebounce Duration `toml:"save_debounce"`
}

// ThemeConfig selects the color palette.
type ThemeConfig struct {
	Name string `toml:"name"`
}

// FeedConfig controls the built-in demo quote feed.
type FeedConfig struct {
	// Interval between quote updates.
	Interval Duration `toml:"interval"`

	// Symbols seeded into the feed universe.
	Symbols []string `toml:"symbols"`

	// Seed fixes the random walk for reproducible demos. Zero picks a
	// random seed.
	Seed int64 `toml:"seed"`
}

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/marketdeck/config.toml
//  2. ~/.config/marketdeck/config.toml
//
// If no file exists, returns DefaultConfig().
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	return DefaultConfig(), nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads configuration from an io.Reader.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(xdgDataHome(home), "marketdeck")

	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
			LogFile:  filepath.Join(dataDir, "marketdeck.log"),
			DataDir:  dataDir,
		},
		Dashboard: DashboardConfig{
			DefaultTemplate: "market-overview",
			SaveDebounce:    Duration{0},
		},
		Theme: ThemeConfig{
			Name: "default",
		},
		Feed: FeedConfig{
			Interval: Duration{2 * time.Second},
			Symbols:  []string{"VNM", "VCB", "HPG", "FPT", "VIC", "MSN", "VHM", "MWG"},
		},
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MARKETDECK_THEME"); v != "" {
		cfg.Theme.Name = v
	}
	if v := os.Getenv("MARKETDECK_DATA_DIR"); v != "" {
		cfg.General.DataDir = v
	}
	if v := os.Getenv("MARKETDECK_TEMPLATE"); v != "" {
		cfg.Dashboard.DefaultTemplate = v
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "marketdeck", "config.toml"))

	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "marketdeck", "config.toml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgDataHome returns XDG_DATA_HOME or ~/.local/share as fallback.
func xdgDataHome(home string) string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "share")
}
