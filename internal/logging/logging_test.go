package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "invdash.log")
	logger, err := New(Options{Level: "debug", Output: path})
	require.NoError(t, err)

	logger.Debug("refresh cycle started", zap.Uint64("seq", 7))
	Sync(logger)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"message":"refresh cycle started"`)
	assert.Contains(t, string(raw), `"seq":7`)
	assert.Contains(t, string(raw), `"timestamp"`)
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invdash.log")
	logger, err := New(Options{Level: "warn", Output: path})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	Sync(logger)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hidden")
	assert.Contains(t, string(raw), "shown")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
}
