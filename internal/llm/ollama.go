package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

// probeTimeout bounds the daemon availability check. A daemon that takes
// longer than this to list its models is treated as unavailable.
const probeTimeout = 5 * time.Second

// OllamaProvider reviews pull requests through a locally hosted Ollama
// daemon's generation endpoint.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
	logger  *slog.Logger
}

// NewOllamaProvider creates the local-daemon provider.
func NewOllamaProvider(cfg core.OllamaProviderConfig, logger *slog.Logger) *OllamaProvider {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OllamaProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// GenerateReview implements Provider.
func (p *OllamaProvider) GenerateReview(ctx context.Context, diff string, files []core.FileChange) core.ReviewResult {
	p.logger.Info("requesting review from local model daemon", "model", p.model, "files", len(files))

	content, err := p.generate(ctx, buildPrompt(diff))
	if err != nil {
		p.logger.Error("local model request failed", "error", err)
		return core.DegradedReview(fmt.Sprintf("Error: Failed to analyze PR with Ollama provider: %v", err))
	}
	return ParseResponse(content)
}

// generate performs one blocking, non-streaming generation request and
// extracts the flat response field.
func (p *OllamaProvider) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncateForLog(respBody))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if parsed.Response == "" {
		return "", fmt.Errorf("unexpected response format from Ollama")
	}
	return parsed.Response, nil
}

// Ping probes the daemon's model listing endpoint with a bounded timeout. It
// also warns, without failing, when the configured model is not present in
// the listing.
func (p *OllamaProvider) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create probe request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama not available at %s: %w", p.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama not available at %s: status %d", p.baseURL, resp.StatusCode)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		// The daemon answered; an unreadable listing only costs us the
		// model-presence warning.
		return nil
	}
	for _, m := range tags.Models {
		if m.Name == p.model {
			return nil
		}
	}
	p.logger.Warn("configured model not found in ollama listing", "model", p.model, "available", len(tags.Models))
	return nil
}
