package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coverart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNew(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
parallel: 3
composer: true
output:
  dir: /tmp/covers
  name: folder
local:
  enabled: false
  name: cover
`)

	cfg, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 3, cfg.Parallel)
	assert.True(t, cfg.Composer)
	assert.Equal(t, Output{Dir: "/tmp/covers", Name: "folder"}, cfg.Output)
	assert.Equal(t, Local{Name: "cover", Enabled: false}, cfg.Local)
}

func TestNew_PartialKeepsDefaults(t *testing.T) {
	cfg, err := New(writeConfig(t, "composer: true\n"))
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, runtime.NumCPU(), cfg.Parallel)
	assert.True(t, cfg.Local.Enabled)
}

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv(EnvPath, writeConfig(t, "parallel: 7\n"))

	cfg, err := New("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Parallel)
}

func TestNew_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvPath, "")

	cfg, err := New(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = New("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(writeConfig(t, "parallel: [1, 2\n"))
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorIs(t, err, ErrCantParseConfigFile)

	_, err = New(writeConfig(t, "parallel: -2\n"))
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = New(t.TempDir())
	assert.ErrorIs(t, err, ErrCantReadConfigFile)
}
