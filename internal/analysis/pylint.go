package analysis

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

// pylintAdapter wraps pylint, which emits one JSON record per finding with a
// textual message category.
type pylintAdapter struct {
	logger *slog.Logger
}

// pylintFinding mirrors one element of `pylint --output-format=json`.
type pylintFinding struct {
	Type    string `json:"type"`
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// pylintSeverities collapses pylint's five-level message categories onto the
// shared three-value vocabulary.
var pylintSeverities = map[string]core.Severity{
	"fatal":      core.SeverityError,
	"error":      core.SeverityError,
	"warning":    core.SeverityWarning,
	"convention": core.SeverityInfo,
	"refactor":   core.SeverityInfo,
	"info":       core.SeverityInfo,
}

func (a *pylintAdapter) Name() string { return "pylint" }

func (a *pylintAdapter) Run(ctx context.Context, files []string, workspace string, threshold core.Severity) ([]core.Issue, error) {
	paths := filterExisting(workspace, files)
	if len(paths) == 0 {
		return nil, ErrNoInput
	}

	args := append([]string{"--output-format=json"}, paths...)
	out, err := runTool(ctx, "pylint", args...)
	if err != nil {
		return nil, err
	}

	return a.parse(out, workspace, threshold), nil
}

func (a *pylintAdapter) parse(out []byte, workspace string, threshold core.Severity) []core.Issue {
	var findings []pylintFinding
	if err := json.Unmarshal(out, &findings); err != nil {
		a.logger.Error("failed to parse pylint output", "error", err)
		return []core.Issue{}
	}

	issues := make([]core.Issue, 0, len(findings))
	for _, f := range findings {
		severity := mapPylintSeverity(f.Type)
		if !severity.AtLeast(threshold) {
			continue
		}
		issues = append(issues, core.Issue{
			File:     relPath(workspace, f.Path),
			Line:     f.Line,
			Message:  f.Message,
			Severity: severity,
		})
	}
	return issues
}

func mapPylintSeverity(category string) core.Severity {
	if sev, ok := pylintSeverities[strings.ToLower(category)]; ok {
		return sev
	}
	return core.SeverityInfo
}
