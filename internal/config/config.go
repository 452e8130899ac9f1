// Package config loads process configuration from the environment and the
// per-repository .reviewbuddy.yml review settings.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application's process-level configuration. Review behavior
// (provider choice, tools, thresholds) lives in core.RepoConfig instead,
// because the reviewed repository owns those decisions.
type Config struct {
	ServerPort string
	LogLevel   slog.Level
	LogFormat  string
	MaxWorkers int

	// GitHubToken authenticates action mode (a plain PAT or Actions token).
	GitHubToken string
	// RepoConfigPath is where .reviewbuddy.yml is looked up in the target repo.
	RepoConfigPath string

	// GitHub App credentials, required in server mode only.
	GitHubAppID          int64
	GitHubWebhookSecret  string
	GitHubPrivateKeyPath string

	Database DBConfig
}

// DBConfig holds Postgres connection settings for server mode.
type DBConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoadConfig reads configuration from environment variables and an optional
// .env file, sets defaults, and parses typed fields. Mode-specific required
// fields are checked by ValidateServer / ValidateAction, since the two entry
// points need different credentials.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("MAX_WORKERS", 5)
	viper.SetDefault("REPO_CONFIG_PATH", ".reviewbuddy.yml")
	viper.SetDefault("GITHUB_PRIVATE_KEY_PATH", "keys/reviewbuddy-app.private-key.pem")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "reviewbuddy")
	viper.SetDefault("DB_NAME", "reviewbuddy")
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Debug("no .env file loaded", "error", err)
		}
	}

	token := viper.GetString("GITHUB_TOKEN")
	if token == "" {
		// GitHub Actions passes inputs as INPUT_* variables.
		token = viper.GetString("INPUT_GITHUB_TOKEN")
	}

	repoConfigPath := viper.GetString("REPO_CONFIG_PATH")
	if p := viper.GetString("INPUT_CONFIG_PATH"); p != "" {
		repoConfigPath = p
	}

	return &Config{
		ServerPort:           viper.GetString("SERVER_PORT"),
		LogLevel:             parseLogLevel(viper.GetString("LOG_LEVEL")),
		LogFormat:            viper.GetString("LOG_FORMAT"),
		MaxWorkers:           viper.GetInt("MAX_WORKERS"),
		GitHubToken:          token,
		RepoConfigPath:       repoConfigPath,
		GitHubAppID:          viper.GetInt64("GITHUB_APP_ID"),
		GitHubWebhookSecret:  viper.GetString("GITHUB_WEBHOOK_SECRET"),
		GitHubPrivateKeyPath: viper.GetString("GITHUB_PRIVATE_KEY_PATH"),
		Database: DBConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			Username:        viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Database:        viper.GetString("DB_NAME"),
			ConnMaxLifetime: viper.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: viper.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
	}, nil
}

// ValidateServer checks the fields server mode cannot run without.
func (c *Config) ValidateServer() error {
	if c.GitHubAppID == 0 {
		return fmt.Errorf("GITHUB_APP_ID must be set")
	}
	if c.GitHubWebhookSecret == "" {
		return fmt.Errorf("GITHUB_WEBHOOK_SECRET must be set")
	}
	return nil
}

// ValidateAction checks the fields action mode cannot run without.
func (c *Config) ValidateAction() error {
	if c.GitHubToken == "" {
		return fmt.Errorf("GITHUB_TOKEN (or INPUT_GITHUB_TOKEN) must be set")
	}
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	default:
		slog.Warn("unrecognized log level, defaulting to info", "provided", s)
		return slog.LevelInfo
	}
}
