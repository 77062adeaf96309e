package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds application configuration.
type Config struct {
	Storage      string           `toml:"storage"` // auto, yaml or sqlite
	CatalogPath  string           `toml:"catalog_path"`
	DatabasePath string           `toml:"database_path"`
	SiteURL      string           `toml:"site_url"`
	Gallery      GalleryConfig    `toml:"gallery"`
	Transition   TransitionConfig `toml:"transition"`
	Toast        ToastConfig      `toml:"toast"`
	Check        CheckConfig      `toml:"check"`
	Log          LogConfig        `toml:"log"`
}

// GalleryConfig sizes the project gallery, in terminal columns and milliseconds.
type GalleryConfig struct {
	CardWidth        int `toml:"card_width"`
	CardGap          int `toml:"card_gap"`
	Inset            int `toml:"inset"`
	SettleMS         int `toml:"settle_ms"`
	ScrollDebounceMS int `toml:"scroll_debounce_ms"`
	ResizeDebounceMS int `toml:"resize_debounce_ms"`
	LayoutRetryMS    int `toml:"layout_retry_ms"`
}

type TransitionConfig struct {
	TimeoutMS int `toml:"timeout_ms"`
}

type ToastConfig struct {
	VisibleMS int `toml:"visible_ms"`
	CopiedMS  int `toml:"copied_ms"`
}

// CheckConfig controls the project link checker.
type CheckConfig struct {
	Concurrency    int      `toml:"concurrency"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
	ExcludeDomains []string `toml:"exclude_domains"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // empty discards logs while the TUI runs
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Storage: "auto",
		Gallery: GalleryConfig{
			CardWidth:        30,
			CardGap:          2,
			Inset:            4,
			SettleMS:         600,
			ScrollDebounceMS: 100,
			ResizeDebounceMS: 250,
			LayoutRetryMS:    100,
		},
		Transition: TransitionConfig{
			TimeoutMS: 450,
		},
		Toast: ToastConfig{
			VisibleMS: 2000,
			CopiedMS:  2500,
		},
		Check: CheckConfig{
			Concurrency:    8,
			TimeoutSeconds: 10,
			ExcludeDomains: []string{"github.com", "gitlab.com"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads config from the TOML file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	// Keys missing from the file keep their default values.
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults replaces values that would break layout or timing.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage == "" {
		c.Storage = defaults.Storage
	}
	if c.Gallery.CardWidth < 10 {
		c.Gallery.CardWidth = defaults.Gallery.CardWidth
	}
	if c.Gallery.CardGap < 0 {
		c.Gallery.CardGap = defaults.Gallery.CardGap
	}
	if c.Gallery.Inset < 0 {
		c.Gallery.Inset = defaults.Gallery.Inset
	}
	if c.Gallery.SettleMS <= 0 {
		c.Gallery.SettleMS = defaults.Gallery.SettleMS
	}
	if c.Gallery.ScrollDebounceMS <= 0 {
		c.Gallery.ScrollDebounceMS = defaults.Gallery.ScrollDebounceMS
	}
	if c.Gallery.ResizeDebounceMS <= 0 {
		c.Gallery.ResizeDebounceMS = defaults.Gallery.ResizeDebounceMS
	}
	if c.Gallery.LayoutRetryMS <= 0 {
		c.Gallery.LayoutRetryMS = defaults.Gallery.LayoutRetryMS
	}
	if c.Transition.TimeoutMS <= 0 {
		c.Transition.TimeoutMS = defaults.Transition.TimeoutMS
	}
	if c.Toast.VisibleMS <= 0 {
		c.Toast.VisibleMS = defaults.Toast.VisibleMS
	}
	if c.Toast.CopiedMS <= 0 {
		c.Toast.CopiedMS = defaults.Toast.CopiedMS
	}
	if c.Check.Concurrency <= 0 {
		c.Check.Concurrency = defaults.Check.Concurrency
	}
	if c.Check.TimeoutSeconds <= 0 {
		c.Check.TimeoutSeconds = defaults.Check.TimeoutSeconds
	}
	if c.Check.ExcludeDomains == nil {
		c.Check.ExcludeDomains = defaults.Check.ExcludeDomains
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// SaveConfig writes config to the TOML file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(config)
}

// ConfigDir returns $XDG_CONFIG_HOME/folio, defaulting to ~/.config/folio.
func ConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "folio"), nil
}

// DefaultConfigFilePath returns the default config path: <config dir>/config.toml
func DefaultConfigFilePath() (string, error) {
	return inConfigDir("config.toml")
}

// ResolveCatalogPath returns the YAML catalog path, defaulting to <config dir>/portfolio.yaml.
func (c *Config) ResolveCatalogPath() (string, error) {
	if c.CatalogPath != "" {
		return expandTilde(c.CatalogPath)
	}
	return inConfigDir("portfolio.yaml")
}

// ResolveDatabasePath returns the SQLite path, defaulting to <config dir>/portfolio.db.
func (c *Config) ResolveDatabasePath() (string, error) {
	if c.DatabasePath != "" {
		return expandTilde(c.DatabasePath)
	}
	return inConfigDir("portfolio.db")
}

func inConfigDir(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
