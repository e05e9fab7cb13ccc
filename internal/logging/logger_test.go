package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	logger, err := New(DefaultConfig())
	require.NoError(t, err)
	assert.NotNil(t, logger.Logger)

	logger, err = New(DevelopmentConfig())
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestInvalidLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.log")

	cfg := DefaultConfig()
	cfg.OutputPaths = nil
	cfg.File = &FileConfig{Path: path, MaxSizeMB: 1}

	logger, err := New(cfg)
	require.NoError(t, err)

	logger.Info("request sent", zap.String("method", "GET"))
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"request sent"`)
	assert.Contains(t, string(data), `"method":"GET"`)
}

func TestNop(t *testing.T) {
	logger := NewNop()
	assert.False(t, logger.Core().Enabled(zap.ErrorLevel))
	assert.NoError(t, logger.Close())
}
