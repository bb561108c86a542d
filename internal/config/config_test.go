package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeTempConfig(t, `{
		"database_url": "postgres://localhost/compass",
		"port": 8080,
		"default_limit": 7,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/compass", cfg.DatabaseURL)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 7, cfg.DefaultLimit)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{"port": `)

	_, err := LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestValidate_AcceptsZeroConfig(t *testing.T) {
	cfg := &Config{}

	assert.NoError(t, cfg.Validate())
}

func TestValidate_RejectsBadPort(t *testing.T) {
	assert.Error(t, (&Config{Port: -1}).Validate())
	assert.Error(t, (&Config{Port: 70000}).Validate())
	assert.NoError(t, (&Config{Port: 65535}).Validate())
}

func TestValidate_RejectsNegativeEngineDefaults(t *testing.T) {
	assert.Error(t, (&Config{DefaultLimit: -1}).Validate())
	assert.Error(t, (&Config{DefaultMaxSteps: -1}).Validate())
	assert.Error(t, (&Config{MaxDepth: -2}).Validate())
}

func TestMergeWithDefaults_FillsEmptyFieldsOnly(t *testing.T) {
	cfg := &Config{Port: 9000, DefaultLimit: 3}
	defaults := Config{
		DatabaseURL:     "postgres://localhost/compass",
		Port:            8080,
		DefaultLimit:    5,
		DefaultMaxSteps: 10,
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "postgres://localhost/compass", merged.DatabaseURL)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, 3, merged.DefaultLimit)
	assert.Equal(t, 10, merged.DefaultMaxSteps)
}
