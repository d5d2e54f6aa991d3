package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, 4, cfg.Scan.Workers)
	assert.Equal(t, "data", cfg.Paths.DataDir)
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	t.Setenv("DARKPOOL_LOGGING_LEVEL", "debug")
	t.Setenv("DARKPOOL_SCAN_WORKERS", "2")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2, cfg.Scan.Workers)
}

func TestLoadFrom_File(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
logging:
  level: warn
  output: both
  file_path: custom/scanner.log
scan:
  workers: 8
paths:
  data_dir: snapshots
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := LoadFrom(configFile)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, "custom/scanner.log", cfg.Logging.FilePath)
	assert.Equal(t, 8, cfg.Scan.Workers)
	assert.Equal(t, "snapshots", cfg.Paths.DataDir)
	// Untouched fields keep their defaults
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFrom_EnvBeatsFile(t *testing.T) {
	t.Setenv("DARKPOOL_LOGGING_LEVEL", "error")

	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("logging:\n  level: debug\n"), 0644))

	cfg, err := LoadFrom(configFile)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadFrom_ValidationFailure(t *testing.T) {
	t.Setenv("DARKPOOL_LOGGING_LEVEL", "verbose")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoadFrom_InvalidWorkers(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("scan:\n  workers: -1\n"), 0644))

	_, err := LoadFrom(configFile)
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 4, cfg.Scan.Workers)
	require.NoError(t, cfg.validate())
}

func TestLoadFrom_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("logging: ["), 0644))

	_, err := LoadFrom(configFile)
	require.Error(t, err)
}
