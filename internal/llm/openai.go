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

// APIProvider reviews pull requests through a hosted, OpenAI-compatible
// chat-completions endpoint.
type APIProvider struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

// NewAPIProvider creates the hosted provider. An empty apiKey is allowed at
// construction time; the missing credential surfaces as a degraded review at
// request time.
func NewAPIProvider(cfg core.APIProviderConfig, apiKey string, logger *slog.Logger) *APIProvider {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &APIProvider{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		model:    cfg.Model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateReview implements Provider.
func (p *APIProvider) GenerateReview(ctx context.Context, diff string, files []core.FileChange) core.ReviewResult {
	if p.apiKey == "" {
		p.logger.Error("cannot generate review, no API key configured")
		return core.DegradedReview("Error: No API key provided for the AI model.")
	}

	p.logger.Info("requesting review from hosted model", "model", p.model, "files", len(files))

	content, err := p.complete(ctx, buildPrompt(diff))
	if err != nil {
		p.logger.Error("hosted model request failed", "error", err)
		return core.DegradedReview(fmt.Sprintf("Error: Failed to analyze PR with API provider: %v", err))
	}
	return ParseResponse(content)
}

// complete performs one blocking chat-completions request and extracts the
// first choice's message content.
func (p *APIProvider) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: defaultSystemRole},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.5,
		MaxTokens:   2000,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.completionsURL(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

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

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("unexpected API response format")
	}
	return parsed.Choices[0].Message.Content, nil
}

// completionsURL appends the chat-completions path for OpenAI-style base
// URLs; fully custom endpoints are used as-is.
func (p *APIProvider) completionsURL() string {
	if strings.Contains(p.endpoint, "openai.com") || strings.HasSuffix(p.endpoint, "/v1") {
		return p.endpoint + "/chat/completions"
	}
	return p.endpoint
}

func truncateForLog(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
