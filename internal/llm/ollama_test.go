package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

func ollamaConfig(baseURL string) core.OllamaProviderConfig {
	return core.OllamaProviderConfig{
		BaseURL:        baseURL,
		Model:          "llama3.2",
		TimeoutSeconds: 5,
	}
}

func TestOllamaProviderGenerateReview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Contains(t, req.Prompt, "diff --git")

		_ = json.NewEncoder(w).Encode(map[string]string{
			"response": "Summary\nRenames the handler.\n\nSuggestions\n1. Update the docs\nThe README still shows the old name.",
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(ollamaConfig(srv.URL), discardLogger())
	got := p.GenerateReview(context.Background(), "diff --git a/h.go b/h.go", nil)

	assert.Equal(t, core.ReviewOK, got.Status)
	assert.Equal(t, "Renames the handler.", got.Summary)
	require.Len(t, got.Suggestions, 1)
	assert.Equal(t, "Update the docs", got.Suggestions[0].Title)
}

func TestOllamaProviderMissingResponseFieldDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"done": true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(ollamaConfig(srv.URL), discardLogger())
	got := p.GenerateReview(context.Background(), "diff", nil)

	assert.Equal(t, core.ReviewDegraded, got.Status)
	assert.Contains(t, got.Summary, "Ollama provider")
	assert.Empty(t, got.Suggestions)
}

func TestOllamaProviderUnreachableDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	p := NewOllamaProvider(ollamaConfig(srv.URL), discardLogger())
	got := p.GenerateReview(context.Background(), "diff", nil)

	assert.Equal(t, core.ReviewDegraded, got.Status)
}

func TestOllamaPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[{"name":"mistral"},{"name":"llama3.2"}]}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(ollamaConfig(srv.URL), discardLogger())
	assert.NoError(t, p.Ping(context.Background()))
}

func TestOllamaPingUnknownModelStillSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"models":[{"name":"mistral"}]}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(ollamaConfig(srv.URL), discardLogger())
	assert.NoError(t, p.Ping(context.Background()), "a missing model is a warning, not a probe failure")
}

func TestOllamaPingDownDaemonFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	p := NewOllamaProvider(ollamaConfig(srv.URL), discardLogger())
	assert.Error(t, p.Ping(context.Background()))
}
