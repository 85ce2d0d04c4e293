package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFrom(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCalendar, cfg.Calendar)
	assert.Equal(t, dir, cfg.DataDir)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	require.NoError(t, SaveTo(path, &Config{Calendar: "Personal", DataDir: "/srv/tasks"}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{Calendar: "Personal", DataDir: "/srv/tasks"}, cfg)
}

func TestEnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, SaveTo(path, &Config{Calendar: "Personal"}))

	t.Setenv("TASKLIST_CALENDAR", "Work")
	t.Setenv("TASKLIST_DATA_DIR", "/tmp/elsewhere")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "Work", cfg.Calendar)
	assert.Equal(t, "/tmp/elsewhere", cfg.DataDir)
}

func TestLoadFromMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}
