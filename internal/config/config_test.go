package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFromParsesSections(t *testing.T) {
	path := writeConfig(t, `
[ui]
accent = "39"
clear_screen = false

[review]
mode = "TUI"
prompt = "Fade? "
markdown = true

[log]
file = "/tmp/fade.log"
level = "debug"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.UI.Accent != "39" {
		t.Errorf("expected accent '39', got %q", cfg.UI.Accent)
	}
	if cfg.ShouldClearScreen() {
		t.Error("expected clear_screen=false to disable clearing")
	}
	if cfg.ReviewMode() != ModeTUI {
		t.Errorf("expected review mode %q, got %q", ModeTUI, cfg.ReviewMode())
	}
	if cfg.Review.Prompt != "Fade? " {
		t.Errorf("expected prompt to keep trailing space, got %q", cfg.Review.Prompt)
	}
	if !cfg.Review.Markdown {
		t.Error("expected markdown=true")
	}
	if cfg.Log.File != "/tmp/fade.log" || cfg.Log.Level != "debug" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	if !cfg.ShouldClearScreen() {
		t.Error("expected screen clearing by default")
	}
	if cfg.ReviewMode() != ModeLine {
		t.Errorf("expected default mode %q, got %q", ModeLine, cfg.ReviewMode())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected empty config to validate, got %v", err)
	}
}

func TestLoadFromRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "bad toml", content: "[ui\naccent=", want: "failed to parse config"},
		{name: "bad mode", content: "[review]\nmode = \"web\"\n", want: "review.mode"},
		{name: "bad level", content: "[log]\nlevel = \"trace\"\n", want: "log.level"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestResolvePath(t *testing.T) {
	if got := ResolvePath("/explicit/config.toml"); got != "/explicit/config.toml" {
		t.Errorf("expected explicit path, got %q", got)
	}
	if got := ResolvePath("  "); got != DefaultPath() {
		t.Errorf("expected default path for blank input, got %q", got)
	}
}

func TestCreateDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	created, err := CreateDefault(path)
	if err != nil {
		t.Fatalf("CreateDefault returned error: %v", err)
	}
	if !created {
		t.Fatal("expected file to be created")
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("default config should parse: %v", err)
	}
	if cfg.ReviewMode() != ModeLine {
		t.Errorf("expected commented default to leave mode unset, got %q", cfg.Review.Mode)
	}

	created, err = CreateDefault(path)
	if err != nil {
		t.Fatalf("second CreateDefault returned error: %v", err)
	}
	if created {
		t.Fatal("expected existing file to be left alone")
	}
}
