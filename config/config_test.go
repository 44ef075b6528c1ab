package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempPath(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.json")
	SetPath(p)
	t.Cleanup(func() { SetPath("") })
	return p
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	useTempPath(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 1000, cfg.StoreLimit)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout())
}

func TestSaveThenLoad(t *testing.T) {
	p := useTempPath(t)

	require.NoError(t, SaveConfig(Config{
		APIBaseURL:        "http://shop:9000",
		StoreLimit:        50,
		RequestTimeoutSec: 3,
		PrintEnabled:      true,
		PrintCommand:      "lp {file}",
	}))
	_, err := os.Stat(p)
	require.NoError(t, err)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://shop:9000", cfg.APIBaseURL)
	assert.Equal(t, 50, cfg.StoreLimit)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout())
	assert.True(t, cfg.PrintEnabled)
	assert.Equal(t, "./print_spool", cfg.PrintSpoolDir, "empty fields fall back to defaults")
	assert.Equal(t, cfg, GetConfig())
}

func TestLoadInvalidJSON(t *testing.T) {
	p := useTempPath(t)
	require.NoError(t, os.WriteFile(p, []byte("{"), 0644))

	_, err := LoadConfig()
	assert.Error(t, err)
}
