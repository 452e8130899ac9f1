package llm

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewProviderUnknownKindFailsFast(t *testing.T) {
	cfg := core.DefaultRepoConfig()
	cfg.ModelProvider = "bogus"

	p, err := NewProvider(context.Background(), cfg, discardLogger())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownProvider)
	assert.Nil(t, p)
}

func TestNewProviderAPIKind(t *testing.T) {
	cfg := core.DefaultRepoConfig()
	cfg.ModelProvider = core.ProviderAPI
	cfg.API.APIKey = "sk-test"

	p, err := NewProvider(context.Background(), cfg, discardLogger())

	require.NoError(t, err)
	assert.IsType(t, &APIProvider{}, p)
}

func TestNewProviderAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv(apiKeyEnvVar, "sk-from-env")

	cfg := core.DefaultRepoConfig()
	cfg.ModelProvider = core.ProviderAPI
	cfg.API.APIKey = ""

	p, err := NewProvider(context.Background(), cfg, discardLogger())

	require.NoError(t, err)
	api, ok := p.(*APIProvider)
	require.True(t, ok)
	assert.Equal(t, "sk-from-env", api.apiKey)
}

func TestNewProviderMissingKeyStillSelectsAPIProvider(t *testing.T) {
	t.Setenv(apiKeyEnvVar, "")

	cfg := core.DefaultRepoConfig()
	cfg.ModelProvider = core.ProviderAPI

	p, err := NewProvider(context.Background(), cfg, discardLogger())

	require.NoError(t, err, "a missing credential is discovered at request time, not at selection time")
	assert.IsType(t, &APIProvider{}, p)
}

func TestNewProviderOllamaSelectedWhenDaemonResponds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3.2"}]}`))
	}))
	defer srv.Close()

	cfg := core.DefaultRepoConfig()
	cfg.ModelProvider = core.ProviderOllama
	cfg.Ollama.BaseURL = srv.URL

	p, err := NewProvider(context.Background(), cfg, discardLogger())

	require.NoError(t, err)
	assert.IsType(t, &OllamaProvider{}, p)
}

func TestNewProviderFallsBackWhenProbeFails(t *testing.T) {
	// A closed server is indistinguishable from a daemon that is not running.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	cfg := core.DefaultRepoConfig()
	cfg.ModelProvider = core.ProviderOllama
	cfg.Ollama.BaseURL = srv.URL
	cfg.API.APIKey = "sk-test"

	p, err := NewProvider(context.Background(), cfg, discardLogger())

	require.NoError(t, err, "a probe failure is recoverable, never fatal")
	assert.IsType(t, &APIProvider{}, p)
}

func TestNewProviderFallsBackOnProbeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := core.DefaultRepoConfig()
	cfg.ModelProvider = core.ProviderOllama
	cfg.Ollama.BaseURL = srv.URL

	p, err := NewProvider(context.Background(), cfg, discardLogger())

	require.NoError(t, err)
	assert.IsType(t, &APIProvider{}, p)
}
