package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aidanlsb/fade/internal/review"
)

// ClearScreen homes the cursor and erases the display.
const ClearScreen = "\033[H\033[2J"

// FrameOptions controls how a record is rendered.
type FrameOptions struct {
	// Markdown renders the explanation with glamour.
	Markdown bool
	// Width wraps rendered markdown. Zero uses DefaultTermWidth.
	Width int
}

// RenderRecord renders the record frame shown before each prompt. Labels are
// styled; values are printed as-is.
func RenderRecord(v review.View, st Styles, opts FrameOptions) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s%s\n", st.Key.Render("Key: "), v.Key)
	fmt.Fprintf(&sb, "%s%s\n", st.Definition.Render("Definition: "), v.Definition)

	explanation := v.Explanation
	if opts.Markdown && explanation != review.NoExplanation {
		if rendered, err := RenderMarkdown(explanation, opts.Width); err == nil {
			explanation = "\n" + strings.TrimRight(rendered, "\n")
		}
	}
	fmt.Fprintf(&sb, "%s%s\n\n", st.Explanation.Render("Explanation: "), explanation)

	fmt.Fprintf(&sb, "%s\n\n", st.Remaining.Render(fmt.Sprintf("Remaining items: %d", v.Remaining)))
	return sb.String()
}

// PresenterOptions configures a Presenter.
type PresenterOptions struct {
	ClearScreen bool
	Markdown    bool
}

// Presenter writes record frames to a terminal or any writer.
type Presenter struct {
	out    io.Writer
	styles Styles
	clear  bool
	frame  FrameOptions
}

// NewPresenter returns a presenter for out. The screen is only cleared when
// out is a terminal.
func NewPresenter(out io.Writer, opts PresenterOptions) *Presenter {
	display := NewDisplayContext(out)
	return &Presenter{
		out:    out,
		styles: NewStyles(lipgloss.NewRenderer(out)),
		clear:  opts.ClearScreen && display.IsTTY,
		frame: FrameOptions{
			Markdown: opts.Markdown,
			Width:    display.AvailableWidth(MarkdownRenderMargin * 2),
		},
	}
}

// Styles returns the styles bound to the presenter's output.
func (p *Presenter) Styles() Styles {
	return p.styles
}

// Present implements review.Presenter.
func (p *Presenter) Present(v review.View) error {
	var frame string
	if p.clear {
		frame = ClearScreen
	}
	frame += RenderRecord(v, p.styles, p.frame)
	_, err := io.WriteString(p.out, frame)
	return err
}
