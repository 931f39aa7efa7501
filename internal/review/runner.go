package review

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/aidanlsb/fade/internal/dataset"
)

// DefaultPrompt is shown before each line of input.
const DefaultPrompt = "Should this item be able to fade? (Y/n): "

// Presenter shows a record to the operator.
type Presenter interface {
	Present(v View) error
}

// InputReader blocks for one line of operator input. It returns io.EOF when
// no more input will arrive.
type InputReader interface {
	ReadLine(prompt string) (string, error)
}

// Runner drives a Session with a presenter and an input reader.
type Runner struct {
	Presenter Presenter
	Input     InputReader
	Prompt    string
	Logger    *zap.Logger
}

// Run loops until the session ends. End of input is treated as the exit
// command so progress so far can still be saved.
func (r *Runner) Run(s *Session) (State, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	prompt := r.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	log.Info("review started", zap.Int("records", s.Len()))

	for {
		view, ok := s.Current()
		if !ok {
			break
		}
		if err := r.Presenter.Present(view); err != nil {
			return s.State(), fmt.Errorf("present %q: %w", view.Key, err)
		}

		line, err := r.Input.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			log.Info("input closed, exiting", zap.String("key", view.Key))
			line = CommandExit
		} else if err != nil {
			return s.State(), fmt.Errorf("read input: %w", err)
		}

		before := s.State()
		after := s.Step(line)
		log.Debug("step",
			zap.String("key", view.Key),
			zap.Int("cursor", before.Cursor),
			zap.String("input", Normalize(line)),
			zap.Int("next_cursor", after.Cursor),
			zap.Stringer("status", after.Status))
	}

	final := s.State()
	log.Info("review finished", zap.Stringer("status", final.Status), zap.Int("cursor", final.Cursor))
	return final, nil
}

// Summary counts annotation outcomes across a collection.
type Summary struct {
	Records     int `json:"records"`
	CanFade     int `json:"can_fade"`
	CannotFade  int `json:"cannot_fade"`
	Unannotated int `json:"unannotated"`
}

// Summarize tallies can_fade values. Records whose can_fade is missing or not
// a boolean count as unannotated.
func Summarize(c *dataset.Collection) Summary {
	sum := Summary{Records: c.Len()}
	for _, key := range c.Keys() {
		rec, _ := c.Get(key)
		v, ok := rec.Bool(FieldCanFade)
		switch {
		case !ok:
			sum.Unannotated++
		case v:
			sum.CanFade++
		default:
			sum.CannotFade++
		}
	}
	return sum
}
