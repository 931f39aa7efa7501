package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWithoutFileIsNop(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel), "expected no-op logger when no file is configured")
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fade.log")

	logger, err := New(Options{File: path, Level: "warn"})
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", zap.String("key", "A"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "hidden", "info entry should be filtered at warn level")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"key":"A"`)
	assert.Contains(t, out, `"ts":`)
}

func TestVerboseForcesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fade.log")
	logger, err := New(Options{File: path, Level: "error", Verbose: true})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{File: filepath.Join(t.TempDir(), "fade.log"), Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown level")
}

func TestParseLevel(t *testing.T) {
	t.Run("known levels", func(t *testing.T) {
		for input, want := range map[string]zapcore.Level{
			"":        zapcore.InfoLevel,
			" DEBUG ": zapcore.DebugLevel,
			"warn":    zapcore.WarnLevel,
			"error":   zapcore.ErrorLevel,
		} {
			got, err := ParseLevel(input)
			require.NoError(t, err, "ParseLevel(%q)", input)
			assert.Equal(t, want, got, "ParseLevel(%q)", input)
		}
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := ParseLevel("trace")
		assert.Error(t, err)
	})
}
