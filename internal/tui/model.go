// Package tui runs a review session as a full-screen bubbletea program.
//
// The model holds no review state of its own: every submitted line goes
// through review.Session.Step, so navigation and annotation behave exactly as
// in line mode.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aidanlsb/fade/internal/review"
	"github.com/aidanlsb/fade/internal/ui"
)

const helpText = "enter answer · b back · e/esc save and quit"

// Options configures the program.
type Options struct {
	Prompt   string
	Markdown bool
	Styles   ui.Styles
	Logger   *zap.Logger

	// Input and Output default to the terminal when nil.
	Input  io.Reader
	Output io.Writer
}

// Model is the bubbletea model for a review session.
type Model struct {
	session *review.Session
	input   textinput.Model
	styles  ui.Styles
	frame   ui.FrameOptions
	log     *zap.Logger
}

// New builds a model around s.
func New(s *review.Session, opts Options) *Model {
	prompt := opts.Prompt
	if prompt == "" {
		prompt = review.DefaultPrompt
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ti := textinput.New()
	ti.Prompt = prompt
	ti.PromptStyle = opts.Styles.Prompt
	ti.Focus()

	return &Model{
		session: s,
		input:   ti,
		styles:  opts.Styles,
		frame:   ui.FrameOptions{Markdown: opts.Markdown},
		log:     log,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.session.State().Status.Terminal() {
		return tea.Quit
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.frame.Width = msg.Width - ui.MarkdownRenderMargin*2
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, m.submit(review.CommandExit)
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			return m, m.submit(line)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit(line string) tea.Cmd {
	before := m.session.State()
	after := m.session.Step(line)
	m.log.Debug("step",
		zap.Int("cursor", before.Cursor),
		zap.String("input", review.Normalize(line)),
		zap.Int("next_cursor", after.Cursor),
		zap.Stringer("status", after.Status))
	if after.Status.Terminal() {
		return tea.Quit
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	v, ok := m.session.Current()
	if !ok {
		return ""
	}
	return ui.RenderRecord(v, m.styles, m.frame) +
		m.input.View() + "\n\n" +
		m.styles.Accent.Render(fmt.Sprintf("%d/%d", v.Position, v.Total)) + " " +
		m.styles.Muted.Render(helpText) + "\n"
}

// Run drives s until it exits or completes and returns the final state.
func Run(s *review.Session, opts Options) (review.State, error) {
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	if _, err := tea.NewProgram(New(s, opts), programOpts...).Run(); err != nil {
		return s.State(), err
	}
	return s.State(), nil
}
