package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 5, cfg.MaxWorkers)
	assert.Equal(t, ".reviewbuddy.yml", cfg.RepoConfigPath)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestLoadConfigActionInputs(t *testing.T) {
	t.Setenv("INPUT_GITHUB_TOKEN", "ghs_action_token")
	t.Setenv("INPUT_CONFIG_PATH", "custom/.reviewbuddy.yml")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "ghs_action_token", cfg.GitHubToken)
	assert.Equal(t, "custom/.reviewbuddy.yml", cfg.RepoConfigPath)
	assert.NoError(t, cfg.ValidateAction())
}

func TestLoadConfigTokenPrecedence(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_direct")
	t.Setenv("INPUT_GITHUB_TOKEN", "ghs_input")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "ghp_direct", cfg.GitHubToken)
}

func TestValidateServer(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.ValidateServer())

	cfg.GitHubAppID = 12345
	assert.Error(t, cfg.ValidateServer())

	cfg.GitHubWebhookSecret = "secret"
	assert.NoError(t, cfg.ValidateServer())
}

func TestValidateAction(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.ValidateAction())

	cfg.GitHubToken = "token"
	assert.NoError(t, cfg.ValidateAction())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("garbage"))
}
