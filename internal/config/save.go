package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/fade/internal/atomicfile"
)

type persistedConfig struct {
	UI     *persistedUI     `toml:"ui,omitempty"`
	Review *persistedReview `toml:"review,omitempty"`
	Log    *persistedLog    `toml:"log,omitempty"`
}

type persistedUI struct {
	Accent      *string `toml:"accent,omitempty"`
	ClearScreen *bool   `toml:"clear_screen,omitempty"`
}

type persistedReview struct {
	Mode     *string `toml:"mode,omitempty"`
	Prompt   *string `toml:"prompt,omitempty"`
	Markdown *bool   `toml:"markdown,omitempty"`
}

type persistedLog struct {
	File  *string `toml:"file,omitempty"`
	Level *string `toml:"level,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func truePtr(v bool) *bool {
	if !v {
		return nil
	}
	return &v
}

func toPersisted(cfg *Config) persistedConfig {
	var out persistedConfig

	if accent := nonEmptyPtr(cfg.UI.Accent); accent != nil || cfg.UI.ClearScreen != nil {
		out.UI = &persistedUI{Accent: accent, ClearScreen: cfg.UI.ClearScreen}
	}

	review := persistedReview{
		Mode:     nonEmptyPtr(cfg.Review.Mode),
		Markdown: truePtr(cfg.Review.Markdown),
	}
	// Prompts may end in a deliberate space, so only blank ones are dropped.
	if strings.TrimSpace(cfg.Review.Prompt) != "" {
		prompt := cfg.Review.Prompt
		review.Prompt = &prompt
	}
	if review != (persistedReview{}) {
		out.Review = &review
	}

	logCfg := persistedLog{File: nonEmptyPtr(cfg.Log.File), Level: nonEmptyPtr(cfg.Log.Level)}
	if logCfg != (persistedLog{}) {
		out.Log = &logCfg
	}
	return out
}

// Encode writes cfg as TOML, omitting unset values.
func Encode(w io.Writer, cfg *Config) error {
	if cfg == nil {
		cfg = &Config{}
	}
	return toml.NewEncoder(w).Encode(toPersisted(cfg))
}

// SaveTo writes the global config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}

	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
