// Package llm selects and drives the language-model backend that writes the
// narrative part of a review: a hosted chat-completions API or a local Ollama
// daemon, with heuristic parsing of the model's free-text answer.
package llm

import (
	"context"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

// Provider produces a narrative review from a pull-request diff. A provider
// never fails past its own boundary: network errors, timeouts, malformed
// response bodies and missing credentials all come back as a degraded
// ReviewResult whose summary explains what went wrong, so callers need no
// fallback of their own.
type Provider interface {
	GenerateReview(ctx context.Context, diff string, files []core.FileChange) core.ReviewResult
}
