package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "model.gorebar", cfg.Database)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.Empty(t, cfg.MetricsFile)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gorebar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database: "from-yaml.gorebar"
log:
  level: "debug"
metrics_file: "/tmp/gorebar.prom"
`), 0o644))

	t.Setenv("GOREBAR_DB", "from-env.gorebar")
	t.Setenv("GOREBAR_LOG_JSON", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.gorebar", cfg.Database)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "/tmp/gorebar.prom", cfg.MetricsFile)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
