// Package review implements the record-by-record annotation loop.
//
// A Session owns the collection under review, a snapshot of its keys and the
// cursor. Step applies one line of operator input and returns the next State;
// Runner wires a Session to a Presenter and an InputReader.
package review

import (
	"strings"

	"github.com/aidanlsb/fade/internal/dataset"
)

// Field names read and written by the loop.
const (
	FieldDefinition  = "definition"
	FieldExplanation = "explanation"
	FieldCanFade     = "can_fade"
)

// Fallback text for records that lack a displayed field.
const (
	NoDefinition  = "No definition provided"
	NoExplanation = "No explanation provided"
)

// Operator commands. Any other input is an annotation.
const (
	CommandExit = "e"
	CommandBack = "b"
	AnswerNo    = "n"
)

// Status is the loop state.
type Status int

const (
	StatusReviewing Status = iota
	StatusExited
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusReviewing:
		return "reviewing"
	case StatusExited:
		return "exited"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// Terminal reports whether the loop has ended.
func (s Status) Terminal() bool {
	return s == StatusExited || s == StatusDone
}

// State is the cursor plus status. Cursor is only meaningful while reviewing.
type State struct {
	Cursor int
	Status Status
}

// View is what a presenter shows for the record under the cursor.
type View struct {
	Key         string
	Definition  string
	Explanation string
	// Remaining counts records after this one.
	Remaining int
	Position  int
	Total     int
}

// Session is the explicit state of one review run.
type Session struct {
	collection *dataset.Collection
	keys       []string
	state      State
}

// NewSession snapshots the collection's keys. An empty collection starts Done.
func NewSession(c *dataset.Collection) *Session {
	s := &Session{
		collection: c,
		keys:       c.Keys(),
	}
	if len(s.keys) == 0 {
		s.state.Status = StatusDone
	}
	return s
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Len returns the number of records in the key snapshot.
func (s *Session) Len() int {
	return len(s.keys)
}

// Current describes the record under the cursor. ok is false once the loop
// has ended.
func (s *Session) Current() (View, bool) {
	if s.state.Status != StatusReviewing {
		return View{}, false
	}
	key := s.keys[s.state.Cursor]
	rec := s.record(key)
	return View{
		Key:         key,
		Definition:  rec.Text(FieldDefinition, NoDefinition),
		Explanation: rec.Text(FieldExplanation, NoExplanation),
		Remaining:   len(s.keys) - s.state.Cursor - 1,
		Position:    s.state.Cursor + 1,
		Total:       len(s.keys),
	}, true
}

// Step applies one line of operator input and returns the resulting state.
// Input after the loop has ended is ignored.
func (s *Session) Step(input string) State {
	if s.state.Status != StatusReviewing {
		return s.state
	}

	switch cmd := Normalize(input); cmd {
	case CommandExit:
		s.state.Status = StatusExited
	case CommandBack:
		s.state.Cursor = max(0, s.state.Cursor-1)
	default:
		key := s.keys[s.state.Cursor]
		s.record(key).Set(FieldCanFade, Decide(cmd))
		s.state.Cursor++
		if s.state.Cursor == len(s.keys) {
			s.state.Status = StatusDone
		}
	}
	return s.state
}

func (s *Session) record(key string) *dataset.Record {
	rec, _ := s.collection.Get(key)
	return rec
}

// Normalize trims and lowercases a line of operator input.
func Normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// Decide maps normalized input to a can_fade value: only "n" means no.
func Decide(normalized string) bool {
	return normalized != AnswerNo
}
