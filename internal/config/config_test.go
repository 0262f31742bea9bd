package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/taskcraft/internal/deduplication"
)

// inTempDir runs the test from an empty directory so no project config leaks in
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, deduplication.DefaultConfig(), cfg.DedupConfig())
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Encoding)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "", cfg.Database.Path)
	assert.Equal(t, "", cfg.Synonyms.File)
}

func TestDefaultMatchesLoad(t *testing.T) {
	inTempDir(t)

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}

func TestLoadProjectFile(t *testing.T) {
	dir := inTempDir(t)

	content := `
database:
  path: data/tasks.db
logger:
  level: debug
  encoding: json
dedup:
  task_threshold: 0.75
  use_synonyms: false
synonyms:
  file: synonyms.yaml
theme: dark
`
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".taskcraft"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".taskcraft", FileName), []byte(content), 0644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "data/tasks.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Encoding)
	assert.Equal(t, 0.75, cfg.Dedup.TaskThreshold)
	assert.Equal(t, 0.8, cfg.Dedup.DeferredThreshold, "unset keys keep defaults")
	assert.False(t, cfg.Dedup.UseSynonyms)
	assert.Equal(t, "synonyms.yaml", cfg.Synonyms.File)
	assert.Equal(t, "dark", cfg.Theme)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := inTempDir(t)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logger:\n  level: info\n"), 0644))

	t.Setenv("TASKCRAFT_LOGGER_LEVEL", "error")
	t.Setenv("TASKCRAFT_DEDUP_CACHE_SIZE", "64")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logger.Level)
	assert.Equal(t, 64, cfg.Dedup.CacheSize)
}

func TestLoadDedupFromEnv(t *testing.T) {
	inTempDir(t)

	t.Setenv("TASKCRAFT_DEDUP_TASK_THRESHOLD", "0.9")
	t.Setenv("TASKCRAFT_DEDUP_DEFERRED_THRESHOLD", "0.95")
	t.Setenv("TASKCRAFT_DEDUP_USE_SYNONYMS", "false")
	t.Setenv("TASKCRAFT_DEDUP_CACHE_SIZE", "0")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, deduplication.Config{
		TaskThreshold:     0.9,
		DeferredThreshold: 0.95,
		UseSynonyms:       false,
		CacheSize:         0,
	}, cfg.DedupConfig())
}

func TestLoadRejectsBadDedupEnv(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"TASKCRAFT_DEDUP_TASK_THRESHOLD", "1.5"},
		{"TASKCRAFT_DEDUP_DEFERRED_THRESHOLD", "high"},
		{"TASKCRAFT_DEDUP_CACHE_SIZE", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			inTempDir(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad threshold", content: "dedup:\n  task_threshold: 1.5\n"},
		{name: "bad level", content: "logger:\n  level: chatty\n"},
		{name: "bad theme", content: "theme: solarized\n"},
		{name: "bad yaml", content: "logger: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := inTempDir(t)
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := inTempDir(t)
	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestWriteDefault(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, ".taskcraft", FileName)

	require.NoError(t, WriteDefault(path))
	assert.Error(t, WriteDefault(path), "must not overwrite")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
