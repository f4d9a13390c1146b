package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.Equal(t, Default().APIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api_base_url": "http://localhost:4000/api",
		"data_dir": "`+dir+`",
		"log_level": "debug"
	}`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000/api", cfg.APIBaseURL)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "session.json"), cfg.SessionFile())
	assert.Equal(t, filepath.Join(dir, "clinicdesk.log"), cfg.LogFile())
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_base_url": "http://file:1/api"}`), 0600))

	t.Setenv("CLINICDESK_API_BASE_URL", "http://env:2/api")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env:2/api", cfg.APIBaseURL)
}
