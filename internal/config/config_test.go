package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the duration of the test, restoring the
// original working directory on cleanup (t.Chdir needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	// Run from a temp dir so a developer's config.yaml never leaks in.
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.92, cfg.Match.AcceptThreshold)
	assert.Equal(t, 0.04, cfg.Match.MinMargin)
	assert.Equal(t, 5, cfg.Match.ReviewTopN)
	assert.Equal(t, "rosterlink.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ROSTERLINK_MATCH_ACCEPT_THRESHOLD", "0.95")
	t.Setenv("ROSTERLINK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.95, cfg.Match.AcceptThreshold)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "not-a-level"}))
}
