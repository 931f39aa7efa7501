// Package config handles global fade configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Review modes.
const (
	ModeLine = "line"
	ModeTUI  = "tui"
)

// Config represents the global fade configuration.
type Config struct {
	// UI controls terminal styling.
	UI UIConfig `toml:"ui"`

	// Review controls how records are presented and prompted.
	Review ReviewConfig `toml:"review"`

	// Log controls the optional debug log file.
	Log LogConfig `toml:"log"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for headers and the saved path.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// ClearScreen clears the terminal before each record. Defaults to true.
	ClearScreen *bool `toml:"clear_screen"`
}

// ReviewConfig represents review loop preferences.
type ReviewConfig struct {
	// Mode is "line" (prompt per record) or "tui" (full-screen).
	Mode string `toml:"mode"`

	// Prompt replaces the default can_fade question.
	Prompt string `toml:"prompt"`

	// Markdown renders the explanation field as markdown.
	Markdown bool `toml:"markdown"`
}

// LogConfig represents logging preferences.
type LogConfig struct {
	// File is where structured logs are appended. Empty disables logging.
	File string `toml:"file"`

	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// ShouldClearScreen reports whether the screen is cleared between records.
func (c *Config) ShouldClearScreen() bool {
	if c.UI.ClearScreen == nil {
		return true
	}
	return *c.UI.ClearScreen
}

// ReviewMode returns the configured mode, defaulting to line mode.
func (c *Config) ReviewMode() string {
	mode := strings.ToLower(strings.TrimSpace(c.Review.Mode))
	if mode == "" {
		return ModeLine
	}
	return mode
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.ReviewMode() {
	case ModeLine, ModeTUI:
	default:
		return fmt.Errorf("review.mode must be %q or %q, got %q", ModeLine, ModeTUI, c.Review.Mode)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	return nil
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &config, nil
}

// ResolvePath returns explicit when set, otherwise DefaultPath.
func ResolvePath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/fade/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if xdgPath, err := XDGPath(); err == nil {
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "fade", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/fade/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fade", "config.toml"), nil
}

const defaultConfig = `# fade configuration

# [ui]
# Accent color for headers and the saved path: ANSI code (0-255) or hex (#RRGGBB).
# accent = "39"
# Clear the terminal before each record.
# clear_screen = true

# [review]
# line: one prompt per record; tui: full-screen view
# mode = "line"
# prompt = "Should this item be able to fade? (Y/n): "
# Render the explanation field as markdown.
# markdown = false

# [log]
# Structured log file; leave empty to disable logging.
# file = ""
# level = "info"
`

// CreateDefault writes a commented default config to path if none exists.
// It reports whether a file was created.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}
