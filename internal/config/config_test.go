package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initEmpty(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	// Point at an empty config dir so the developer's real config file
	// cannot leak into the test.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, Init(""))
}

func TestLoadDefaults(t *testing.T) {
	initEmpty(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Model)
	assert.Equal(t, "senior_developer", cfg.Persona)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, 4096, cfg.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Temperature, 0.001)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 86400, cfg.Cache.TTLSeconds)
	assert.True(t, cfg.Privacy.RedactSecrets)
	assert.True(t, cfg.History.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `provider: ollama
model: llama3.1
persona: mentor
format: markdown
cache:
  enabled: false
privacy:
  redact_secrets: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, Init(path))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, "llama3.1", cfg.Model)
	assert.Equal(t, "mentor", cfg.Persona)
	assert.Equal(t, "markdown", cfg.Format)
	assert.False(t, cfg.Cache.Enabled)
	assert.False(t, cfg.Privacy.RedactSecrets)
	// Unset keys keep their defaults.
	assert.Equal(t, 4096, cfg.MaxTokens)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("EMPATH_PROVIDER", "openai")
	t.Setenv("EMPATH_MODEL", "gpt-4o")
	initEmpty(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o", cfg.Model)
}

func TestDirRespectsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "empath"), got)

	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "empath", "config.yaml"), path)
}

func TestWriteDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := WriteDefault()
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "provider:"))

	// Refuses to overwrite an existing file.
	_, err = WriteDefault()
	assert.Error(t, err)
}
