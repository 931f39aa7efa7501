package testutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	// binaryPath caches the path to the built fade binary.
	binaryPath string
	buildMu    sync.Mutex
	buildErr   error
)

// CLIResult represents the result of running a CLI command.
type CLIResult struct {
	OK       bool
	Data     map[string]interface{}
	Error    *CLIError
	RawJSON  string
	Stderr   string
	ExitCode int
}

// CLIError represents a structured error from the CLI.
type CLIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// BuildCLI builds the fade binary once per test process and returns its path.
func BuildCLI(t *testing.T) string {
	t.Helper()

	buildMu.Lock()
	defer buildMu.Unlock()

	if binaryPath != "" {
		if _, err := os.Stat(binaryPath); err == nil {
			return binaryPath
		}
		binaryPath = ""
		buildErr = nil
	}

	projectRoot, err := findProjectRoot()
	if err != nil {
		buildErr = err
	} else {
		tmpDir, err := os.MkdirTemp("", "fade-cli-bin-*")
		if err != nil {
			buildErr = err
		} else {
			binName := "fade"
			if runtime.GOOS == "windows" {
				binName = "fade.exe"
			}

			binaryPath = filepath.Join(tmpDir, binName)
			cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/fade")
			cmd.Dir = projectRoot
			output, err := cmd.CombinedOutput()
			if err != nil {
				buildErr = &BuildError{Output: string(output), Err: err}
				binaryPath = ""
			}
		}
	}

	if buildErr != nil {
		t.Fatalf("failed to build CLI: %v", buildErr)
	}

	return binaryPath
}

// BuildError represents an error building the CLI binary.
type BuildError struct {
	Output string
	Err    error
}

func (e *BuildError) Error() string {
	return e.Err.Error() + "\n" + e.Output
}

// findProjectRoot walks up the directory tree to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// RunCLIWithStdin runs fade with --json and the workspace config, feeding
// stdin as operator input. Record frames go to stderr in JSON mode, so stdout
// holds only the response envelope.
func (w *TestWorkspace) RunCLIWithStdin(stdin string, args ...string) *CLIResult {
	w.t.Helper()

	binary := BuildCLI(w.t)
	cmdArgs := append([]string{"--config", w.ConfigPath(), "--json"}, args...)

	cmd := exec.Command(binary, cmdArgs...)
	cmd.Dir = w.Path
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	result := &CLIResult{
		RawJSON: stdout.String(),
		Stderr:  stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}

	var resp struct {
		OK    bool                   `json:"ok"`
		Data  map[string]interface{} `json:"data,omitempty"`
		Error *CLIError              `json:"error,omitempty"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		result.Error = &CLIError{
			Code:    "PARSE_ERROR",
			Message: "Failed to parse JSON output: " + err.Error(),
		}
		return result
	}

	result.OK = resp.OK
	result.Data = resp.Data
	result.Error = resp.Error
	return result
}

// MustSucceed fails the test if the command did not succeed.
func (r *CLIResult) MustSucceed(t *testing.T) {
	t.Helper()
	if !r.OK {
		t.Fatalf("expected success, got error: %+v\nstdout: %s\nstderr: %s", r.Error, r.RawJSON, r.Stderr)
	}
}

// MustFail fails the test unless the command failed with the given code.
func (r *CLIResult) MustFail(t *testing.T, code string) {
	t.Helper()
	if r.OK {
		t.Fatalf("expected failure with %s, got success\nstdout: %s", code, r.RawJSON)
	}
	if r.Error == nil || r.Error.Code != code {
		t.Fatalf("expected error code %s, got %+v\nstdout: %s", code, r.Error, r.RawJSON)
	}
	if r.ExitCode == 0 {
		t.Fatalf("expected non-zero exit code for %s", code)
	}
}

// DataString returns a top-level string field from the response data.
func (r *CLIResult) DataString(key string) string {
	if r.Data == nil {
		return ""
	}
	s, _ := r.Data[key].(string)
	return s
}

// SummaryCount returns a count from data.summary.
func (r *CLIResult) SummaryCount(key string) int {
	if r.Data == nil {
		return -1
	}
	summary, ok := r.Data["summary"].(map[string]interface{})
	if !ok {
		return -1
	}
	n, ok := summary[key].(float64)
	if !ok {
		return -1
	}
	return int(n)
}
