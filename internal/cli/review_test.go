package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const reviewFixture = `{
    "Dimmer": {"definition": "Controls intensity", "explanation": "Master intensity"},
    "Pan": {"definition": "Horizontal movement"},
    "Gobo1": {"explanation": "First gobo wheel", "can_fade": true}
}
`

func setupReviewDir(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfgFile := writeTestFile(t, dir, "config.toml", "")
	return dir, cfgFile
}

func TestReviewWritesModifiedFile(t *testing.T) {
	resetGlobalsForTest(t)
	dir, cfgFile := setupReviewDir(t)
	input := writeTestFile(t, dir, "attrs.json", reviewFixture)

	stdout, _, err := runRoot(t, "n\ny\n\n", "--config", cfgFile, "review", input)
	if err != nil {
		t.Fatalf("review: %v", err)
	}

	for _, want := range []string{
		"Key: Dimmer",
		"Definition: Controls intensity",
		"Explanation: Master intensity",
		"Remaining items: 2",
		"Key: Pan",
		"Explanation: No explanation provided",
		"Key: Gobo1",
		"Definition: No definition provided",
		"Remaining items: 0",
		"Should this item be able to fade? (Y/n): ",
		"Modified JSON saved as",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q\n%s", want, stdout)
		}
	}

	source, err := os.ReadFile(input)
	if err != nil {
		t.Fatalf("read source: %v", err)
	}
	if string(source) != reviewFixture {
		t.Fatal("source dataset was modified")
	}

	got, err := os.ReadFile(filepath.Join(dir, "attrs_modified.json"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := `{
    "Dimmer": {
        "definition": "Controls intensity",
        "explanation": "Master intensity",
        "can_fade": false
    },
    "Pan": {
        "definition": "Horizontal movement",
        "can_fade": true
    },
    "Gobo1": {
        "explanation": "First gobo wheel",
        "can_fade": true
    }
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRootArgIsReviewShorthand(t *testing.T) {
	resetGlobalsForTest(t)
	dir, cfgFile := setupReviewDir(t)
	input := writeTestFile(t, dir, "attrs.json", reviewFixture)

	if _, _, err := runRoot(t, "e\n", "--config", cfgFile, input); err != nil {
		t.Fatalf("fade <file>: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "attrs_modified.json")); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}

func TestReviewExitEarlyPrintsHint(t *testing.T) {
	resetGlobalsForTest(t)
	dir, cfgFile := setupReviewDir(t)
	input := writeTestFile(t, dir, "attrs.json", reviewFixture)

	stdout, _, err := runRoot(t, "y\ne\n", "--config", cfgFile, "review", input)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if !strings.Contains(stdout, "Stopped early: 1 record left unannotated") {
		t.Fatalf("expected early-exit hint, got:\n%s", stdout)
	}
	if strings.Count(stdout, "Key: ") != 2 {
		t.Fatalf("expected two frames, got:\n%s", stdout)
	}
}

func TestReviewCustomPromptFromConfig(t *testing.T) {
	resetGlobalsForTest(t)
	dir := t.TempDir()
	cfgFile := writeTestFile(t, dir, "config.toml", "[review]\nprompt = \"fade? \"\n")
	input := writeTestFile(t, dir, "attrs.json", `{"A": {}}`)

	stdout, _, err := runRoot(t, "\n", "--config", cfgFile, "review", input)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if !strings.Contains(stdout, "fade? ") {
		t.Fatalf("expected custom prompt, got:\n%s", stdout)
	}
}

func TestReviewJSONEnvelope(t *testing.T) {
	resetGlobalsForTest(t)
	dir, cfgFile := setupReviewDir(t)
	input := writeTestFile(t, dir, "attrs.json", reviewFixture)

	var stderr string
	var runErr error
	out := captureStdout(t, func() {
		_, stderr, runErr = runRoot(t, "n\n", "--config", cfgFile, "--json", "review", input)
	})
	if runErr != nil {
		t.Fatalf("review: %v", runErr)
	}

	var resp struct {
		OK   bool         `json:"ok"`
		Data reviewResult `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	if !resp.OK {
		t.Fatalf("expected ok=true; out=%s", out)
	}
	if resp.Data.Status != "exited" {
		t.Fatalf("status = %q, want exited", resp.Data.Status)
	}
	if resp.Data.Output != filepath.Join(dir, "attrs_modified.json") {
		t.Fatalf("output = %q", resp.Data.Output)
	}
	wantSummary := struct{ Records, CanFade, CannotFade, Unannotated int }{3, 1, 1, 1}
	gotSummary := struct{ Records, CanFade, CannotFade, Unannotated int }{
		resp.Data.Summary.Records, resp.Data.Summary.CanFade, resp.Data.Summary.CannotFade, resp.Data.Summary.Unannotated,
	}
	if gotSummary != wantSummary {
		t.Fatalf("summary = %+v, want %+v", gotSummary, wantSummary)
	}
	if !strings.Contains(stderr, "Key: Dimmer") {
		t.Fatalf("expected frames on stderr, got:\n%s", stderr)
	}
}

func TestReviewLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing bool
		code    string
	}{
		{name: "missing", missing: true, code: ErrFileNotFound},
		{name: "malformed", content: `{"A": `, code: ErrInvalidInput},
		{name: "not a mapping", content: `[1, 2]`, code: ErrInvalidInput},
		{name: "record not a mapping", content: `{"A": "text"}`, code: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobalsForTest(t)
			dir, cfgFile := setupReviewDir(t)
			input := filepath.Join(dir, "attrs.json")
			if !tt.missing {
				writeTestFile(t, dir, "attrs.json", tt.content)
			}

			var runErr error
			out := captureStdout(t, func() {
				_, _, runErr = runRoot(t, "", "--config", cfgFile, "--json", "review", input)
			})
			if !errors.Is(runErr, errReported) {
				t.Fatalf("error = %v, want errReported", runErr)
			}

			var resp Response
			if err := json.Unmarshal([]byte(out), &resp); err != nil {
				t.Fatalf("parse: %v; out=%s", err, out)
			}
			if resp.OK || resp.Error == nil || resp.Error.Code != tt.code {
				t.Fatalf("response = %+v, want error code %s", resp, tt.code)
			}
			if _, err := os.Stat(filepath.Join(dir, "attrs_modified.json")); !os.IsNotExist(err) {
				t.Fatal("no output should be written when loading fails")
			}
		})
	}
}

func TestReviewWriteFailure(t *testing.T) {
	resetGlobalsForTest(t)
	dir, cfgFile := setupReviewDir(t)
	// The output lands in x_modified.json.d/, which does not exist.
	input := writeTestFile(t, dir, filepath.Join("x.json.d", "attrs.json"), `{"A": {}}`)

	var runErr error
	out := captureStdout(t, func() {
		_, _, runErr = runRoot(t, "y\n", "--config", cfgFile, "--json", "review", input)
	})
	if !errors.Is(runErr, errReported) {
		t.Fatalf("error = %v, want errReported", runErr)
	}

	var resp Response
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("parse: %v; out=%s", err, out)
	}
	if resp.OK || resp.Error == nil || resp.Error.Code != ErrFileWriteError {
		t.Fatalf("response = %+v, want error code %s", resp, ErrFileWriteError)
	}
	if !strings.Contains(resp.Error.Message, "failed to write dataset") {
		t.Fatalf("message = %q, want write failure", resp.Error.Message)
	}

	source, err := os.ReadFile(input)
	if err != nil {
		t.Fatalf("read source: %v", err)
	}
	if string(source) != `{"A": {}}` {
		t.Fatalf("source changed after failed write: %s", source)
	}
}

func TestReviewTUIFallsBackWithoutTerminal(t *testing.T) {
	resetGlobalsForTest(t)
	dir, cfgFile := setupReviewDir(t)
	input := writeTestFile(t, dir, "attrs.json", `{"A": {}}`)

	stdout, stderr, err := runRoot(t, "n\n", "--config", cfgFile, "review", "--tui", input)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if !strings.Contains(stderr, "full-screen mode needs a terminal") {
		t.Fatalf("expected fallback warning, got stderr:\n%s", stderr)
	}
	if !strings.Contains(stdout, "Key: A") {
		t.Fatalf("expected line-mode frame, got:\n%s", stdout)
	}
}

func TestReviewWritesLogFile(t *testing.T) {
	resetGlobalsForTest(t)
	dir, cfgFile := setupReviewDir(t)
	input := writeTestFile(t, dir, "attrs.json", `{"A": {}}`)
	logPath := filepath.Join(dir, "fade.log")

	if _, _, err := runRoot(t, "y\n", "--config", cfgFile, "--log-file", logPath, "--verbose", "review", input); err != nil {
		t.Fatalf("review: %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{`"review started"`, `"step"`, `"saved"`, `"run":`} {
		if !strings.Contains(string(content), want) {
			t.Errorf("log missing %s:\n%s", want, content)
		}
	}
}

func TestLoadErrorCode(t *testing.T) {
	if got := loadErrorCode(errors.New("bad json")); got != ErrInvalidInput {
		t.Fatalf("loadErrorCode(plain) = %q, want %q", got, ErrInvalidInput)
	}
	_, err := os.ReadFile(filepath.Join(t.TempDir(), "nope"))
	if got := loadErrorCode(err); got != ErrFileNotFound {
		t.Fatalf("loadErrorCode(missing) = %q, want %q", got, ErrFileNotFound)
	}
}
