package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api_config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `{
		"api_key": "fbk_test",
		"base_url": "http://localhost:3000",
		"environment_id": "env123",
		"organization_id": "org456"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fbk_test", cfg.APIKey)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, "env123", cfg.EnvironmentID)
	assert.Equal(t, "org456", cfg.OrganizationID)
}

func TestLoadTrimsTrailingSlash(t *testing.T) {
	path := writeConfigFile(t, `{
		"api_key": "fbk_test",
		"base_url": "http://localhost:3000///",
		"environment_id": "env123"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
}

func TestLoadOrganizationOptional(t *testing.T) {
	path := writeConfigFile(t, `{
		"api_key": "fbk_test",
		"base_url": "http://localhost:3000",
		"environment_id": "env123"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.OrganizationID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{"api_key": `)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadMissingRequiredFields(t *testing.T) {
	path := writeConfigFile(t, `{"base_url": "http://localhost:3000"}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
	assert.Contains(t, err.Error(), "environment_id")
	assert.NotContains(t, err.Error(), "organization_id")
}

func TestPathsLayout(t *testing.T) {
	p := NewPaths("/ws")

	assert.Equal(t, filepath.Join("/ws", "data", "config", "api_config.json"), p.ConfigFile())
	assert.Equal(t, filepath.Join("/ws", "data", "generated"), p.GeneratedDir())
	assert.Equal(t, filepath.Join("/ws", "data", "generated", "surveys.json"), p.SurveysFile())
	assert.Equal(t, filepath.Join("/ws", "data", "generated", "users.json"), p.UsersFile())
	assert.Equal(t, filepath.Join("/ws", "data", "generated", "responses.json"), p.ResponsesFile())
	assert.Equal(t, filepath.Join("/ws", "docker", "docker-compose.yml"), p.ComposeFile())
}

func TestPathsDefaultRoot(t *testing.T) {
	p := NewPaths("")
	assert.Equal(t, ".", p.Root())
	assert.Equal(t, filepath.Join("data", "config", "api_config.json"), p.ConfigFile())
}

func TestSetupHint(t *testing.T) {
	hint := SetupHint("data/config/api_config.json")
	assert.Contains(t, hint, "data/config/api_config.json")
	assert.Contains(t, hint, "api_key")
	assert.Contains(t, hint, "environment_id")
}
