package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Record palette. These are the 16-color ANSI codes datasets have
// traditionally been reviewed with: bright cyan keys, yellow definitions,
// green explanations and red counters and prompts.
const (
	colorKey         = lipgloss.Color("14")
	colorDefinition  = lipgloss.Color("11")
	colorExplanation = lipgloss.Color("10")
	colorAlert       = lipgloss.Color("9")

	defaultAccent = "#A78BFA"
	mutedColor    = "#6C7086"
)

var accentColor = defaultAccent

var (
	// Accent style for file paths, headers, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)
)

// Styles holds the record styles bound to one output's renderer, so a
// non-terminal writer gets plain text.
type Styles struct {
	Key         lipgloss.Style
	Definition  lipgloss.Style
	Explanation lipgloss.Style
	Remaining   lipgloss.Style
	Prompt      lipgloss.Style
	Accent      lipgloss.Style
	Muted       lipgloss.Style
}

// NewStyles builds record styles for r. A nil renderer uses the default
// (stdout) renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	accent := r.NewStyle()
	if accentColor != "" {
		accent = accent.Foreground(lipgloss.Color(accentColor))
	}
	return Styles{
		Key:         r.NewStyle().Foreground(colorKey),
		Definition:  r.NewStyle().Foreground(colorDefinition),
		Explanation: r.NewStyle().Foreground(colorExplanation),
		Remaining:   r.NewStyle().Foreground(colorAlert),
		Prompt:      r.NewStyle().Foreground(colorAlert),
		Accent:      accent,
		Muted:       r.NewStyle().Foreground(lipgloss.Color(mutedColor)),
	}
}

// ConfigureTheme applies the configured accent color. "none", "off" and
// "default" disable the accent; an unparseable value keeps the default.
func ConfigureTheme(accent string) {
	trimmed := strings.ToLower(strings.TrimSpace(accent))
	if trimmed == "" {
		return
	}
	switch trimmed {
	case "none", "off", "default":
		accentColor = ""
		Accent = lipgloss.NewStyle()
		return
	}
	color, ok := normalizeAccentColor(accent)
	if !ok {
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// ValidAccent reports whether ConfigureTheme would accept raw: an ANSI code,
// a hex color, or one of the words that disable the accent.
func ValidAccent(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "none", "off", "default":
		return true
	}
	_, ok := normalizeAccentColor(raw)
	return ok
}

// AccentColor returns the active accent color, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

func normalizeAccentColor(raw string) (string, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "none", "off", "default":
		return "", false
	}

	if strings.HasPrefix(value, "#") {
		hex := value[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return "", false
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", false
		}
		return "#" + hex, true
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return strconv.Itoa(n), true
}
