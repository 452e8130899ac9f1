package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

// ErrUnknownProvider marks a provider kind outside the supported set. Unlike
// every other failure in this package it is fatal: a typoed provider name is
// a configuration bug, not something to degrade around.
var ErrUnknownProvider = errors.New("unsupported model provider")

// apiKeyEnvVar supplies the hosted-provider credential when the repository
// configuration carries none.
const apiKeyEnvVar = "REVIEWBUDDY_API_KEY"

// NewProvider selects and instantiates the model provider the configuration
// asks for.
//
// Kind "ollama" probes the daemon first; any probe failure falls back to the
// hosted provider with a logged warning, never an error. Kind "api" resolves
// a credential from the configuration or the REVIEWBUDDY_API_KEY environment
// variable; a missing credential is a warning here and a degraded review
// later (the lazy policy: selection always succeeds for known kinds, the
// doomed request explains itself). Any other kind fails fast.
func NewProvider(ctx context.Context, cfg *core.RepoConfig, logger *slog.Logger) (Provider, error) {
	kind := cfg.ModelProvider

	switch kind {
	case core.ProviderOllama:
		local := NewOllamaProvider(cfg.Ollama, logger)
		if err := local.Ping(ctx); err != nil {
			logger.Warn("ollama not available, falling back to API provider", "error", err)
			break
		}
		logger.Info("using ollama provider", "model", cfg.Ollama.Model, "base_url", cfg.Ollama.BaseURL)
		return local, nil
	case core.ProviderAPI:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, kind)
	}

	apiKey := cfg.API.APIKey
	if apiKey == "" {
		if apiKey = os.Getenv(apiKeyEnvVar); apiKey != "" {
			logger.Info("using API key from environment variable")
		} else {
			logger.Warn("no API key found in config or environment, review may fail")
		}
	}

	logger.Info("using API provider", "model", cfg.API.Model, "endpoint", cfg.API.Endpoint)
	return NewAPIProvider(cfg.API, apiKey, logger), nil
}
