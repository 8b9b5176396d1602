package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	cmd := newRootCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "resource-uploader "+Version))
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("STORAGE_ROOT", "")
	t.Setenv("LEDGER_PATH", "")

	dir := t.TempDir()
	root := filepath.Join(dir, "files")

	cfg, err := loadConfig(&options{
		configPath: filepath.Join(dir, "uploader.yaml"),
		port:       8081,
		root:       root,
		logLevel:   "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, root, cfg.GetStorageRoot())
	assert.Equal(t, "debug", cfg.Advanced.LogLevel)
	assert.FileExists(t, filepath.Join(dir, "uploader.yaml"))
}

func TestLoadConfig_EnvUsedWithoutFlags(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := loadConfig(&options{configPath: filepath.Join(t.TempDir(), "uploader.config")})
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "")

	_, err := loadConfig(&options{
		configPath: filepath.Join(t.TempDir(), "uploader.config"),
		port:       70000,
	})
	assert.Error(t, err)
}
