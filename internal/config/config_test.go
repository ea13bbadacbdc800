package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.WatchDebounce)
	assert.Equal(t, 30*time.Second, cfg.DiffCacheTTL)
	assert.Equal(t, 4, cfg.MaxGitJobs)
	assert.True(t, cfg.IncludeUntracked)
	assert.Equal(t, []string{"w"}, cfg.Keys.FocusWorkDir)
	assert.Equal(t, []string{"down", "j"}, cfg.Keys.MoveDown)
}

func TestLoadFromXDGFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gitpane"), 0o755))
	content := `
theme: light
remote: upstream
poll_interval: 2s
max_git_jobs: 2
keys:
  push: ["P"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gitpane", "config.yaml"), []byte(content), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "upstream", cfg.Remote)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 2, cfg.MaxGitJobs)
	assert.Equal(t, []string{"P"}, cfg.Keys.Push)
	// untouched bindings keep their defaults
	assert.Equal(t, []string{"s"}, cfg.Keys.FocusStage)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GITPANE_REMOTE", "fork")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "fork", cfg.Remote)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_git_jobs: 0\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_git_jobs")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, []string{"ctrl+s"}, cfg.Keys.CommitConfirm)
}
