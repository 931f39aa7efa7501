package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LineReader prompts on out and reads one line at a time from in.
type LineReader struct {
	in     *bufio.Reader
	out    io.Writer
	prompt lipgloss.Style
}

// NewLineReader returns a reader whose prompt uses the alert style.
func NewLineReader(in io.Reader, out io.Writer, st Styles) *LineReader {
	return &LineReader{
		in:     bufio.NewReader(in),
		out:    out,
		prompt: st.Prompt,
	}
}

// ReadLine implements review.InputReader. A final line without a newline is
// still returned; io.EOF is reported only when nothing was read.
func (r *LineReader) ReadLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(r.out, r.prompt.Render(prompt)); err != nil {
		return "", err
	}

	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			_, _ = fmt.Fprintln(r.out)
			if line != "" {
				return strings.TrimRight(line, "\r"), nil
			}
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
