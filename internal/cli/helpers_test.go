package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var captureStdoutMu sync.Mutex

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	os.Stdout = w

	outputCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		_, copyErr := io.Copy(&buf, r)
		_ = r.Close()
		if copyErr != nil {
			errCh <- copyErr
			return
		}
		outputCh <- buf.String()
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	select {
	case err := <-errCh:
		t.Fatalf("io.Copy: %v", err)
		return ""
	case output := <-outputCh:
		return output
	}
}

// resetGlobalsForTest restores package state that cobra flag parsing and
// PersistentPreRunE leave behind between runs.
func resetGlobalsForTest(t *testing.T) {
	t.Helper()

	prevConfig := configPath
	prevJSON := jsonOutput
	prevLog := logFileFlag
	prevVerbose := verbose
	prevCfg := cfg
	prevResolved := resolvedConfigPath
	t.Cleanup(func() {
		configPath = prevConfig
		jsonOutput = prevJSON
		logFileFlag = prevLog
		verbose = prevVerbose
		cfg = prevCfg
		resolvedConfigPath = prevResolved
		reviewTUI = false
		reviewNoClear = false
		reviewMarkdown = false
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	configPath = ""
	jsonOutput = false
	logFileFlag = ""
	verbose = false
	cfg = nil
	resolvedConfigPath = ""
	reviewTUI = false
	reviewNoClear = false
	reviewMarkdown = false
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// runRoot executes the root command with stdin and returns stdout and stderr.
func runRoot(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
