package ui

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLineReaderReadsLines(t *testing.T) {
	var out bytes.Buffer
	r := NewLineReader(strings.NewReader("y\r\n  N \nlast"), &out, plainStyles(&out))

	want := []string{"y", "  N ", "last"}
	for i, w := range want {
		got, err := r.ReadLine("? ")
		if err != nil {
			t.Fatalf("ReadLine #%d error = %v", i+1, err)
		}
		if got != w {
			t.Fatalf("ReadLine #%d = %q, want %q", i+1, got, w)
		}
	}

	if _, err := r.ReadLine("? "); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF after input is exhausted, got %v", err)
	}
	if got := strings.Count(out.String(), "? "); got != 4 {
		t.Fatalf("expected 4 prompts, got %d in %q", got, out.String())
	}
}

func TestLineReaderEmptyLine(t *testing.T) {
	var out bytes.Buffer
	r := NewLineReader(strings.NewReader("\n"), &out, plainStyles(&out))

	got, err := r.ReadLine("? ")
	if err != nil {
		t.Fatalf("ReadLine error = %v", err)
	}
	if got != "" {
		t.Fatalf("ReadLine = %q, want empty", got)
	}
}
