package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoadvisor-dev/autoadvisor/internal/config"
)

func TestRunInit(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, runInit(dir))

	for _, d := range []string{"config", "data", "logs"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	cfg, err := config.Load(filepath.Join(dir, "config", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultCleanedPath, cfg.Data.CleanedTransactionsPath)
}

func TestRunInit_RefusesExistingConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir))

	err := runInit(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
