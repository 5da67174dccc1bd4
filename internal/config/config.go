// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/bethropolis/jsonpad/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config `toml:"logger"`
	Editor  EditorConfig  `toml:"editor"`
	Session SessionConfig `toml:"session"`
	Locate  LocateConfig  `toml:"locate"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int    `toml:"tab_width"`
	ScrollOff       int    `toml:"scroll_off"`
	SystemClipboard bool   `toml:"system_clipboard"`
	Indent          int    `toml:"indent"` // Spaces per level for Beautify
	Theme           string `toml:"theme"`
	StatusBarHeight int    `toml:"status_bar_height"`
}

// SessionConfig controls persistence of the editor document between runs.
type SessionConfig struct {
	Save bool   `toml:"save"`
	Dir  string `toml:"dir"` // Empty means the XDG state directory
}

// LocateConfig tunes error location.
type LocateConfig struct {
	// Structural enables the syntax-tree fallback when message heuristics
	// find nothing.
	Structural bool `toml:"structural"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "",
		},
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
			Indent:          DefaultIndent,
			Theme:           DefaultTheme,
			StatusBarHeight: StatusBarHeight,
		},
		Locate: LocateConfig{
			Structural: true,
		},
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName), nil
}

// ThemesDir returns the directory user themes are loaded from.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName, ThemesDirName), nil
}

// loadFromFile decodes a TOML file over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		// Logged later by the caller once the logger is up.
		loadWarnings = append(loadWarnings, fmt.Sprintf("config file '%s': unrecognized keys: %v", filePath, undecoded))
	}
	return nil
}

var loadWarnings []string

// Warnings returns non-fatal problems found while loading, for logging after
// the logger is initialized.
func Warnings() []string {
	return loadWarnings
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 {
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.Indent < 0 || c.Editor.Indent > MaxIndent {
		c.Editor.Indent = defaults.Editor.Indent
	}
	if c.Editor.Theme == "" {
		c.Editor.Theme = defaults.Editor.Theme
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if _, ok := logger.ParseLevel(c.Logger.LogLevel); !ok || c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// Load builds a configuration from defaults, the TOML file at path (the
// default location when empty) and the flags explicitly set in fs, which may
// be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	cfg := NewDefaultConfig()

	if path == "" {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	var err error
	if path != "" {
		err = loadFromFile(path, cfg)
	}

	if fs != nil {
		ApplyOverrides(fs, cfg)
	}
	cfg.validate()
	return cfg, err
}
