package analysis

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

// flake8Adapter wraps flake8, which emits a per-file JSON map of findings.
// flake8 has no severity concept, so every finding defaults to warning.
type flake8Adapter struct {
	logger *slog.Logger
}

// flake8Finding mirrors one entry of `flake8 --format=json` output.
type flake8Finding struct {
	LineNumber int    `json:"line_number"`
	Text       string `json:"text"`
}

func (a *flake8Adapter) Name() string { return "flake8" }

func (a *flake8Adapter) Run(ctx context.Context, files []string, workspace string, threshold core.Severity) ([]core.Issue, error) {
	paths := filterExisting(workspace, files)
	if len(paths) == 0 {
		return nil, ErrNoInput
	}

	args := append([]string{"--format=json"}, paths...)
	out, err := runTool(ctx, "flake8", args...)
	if err != nil {
		return nil, err
	}

	return a.parse(out, workspace, threshold), nil
}

func (a *flake8Adapter) parse(out []byte, workspace string, threshold core.Severity) []core.Issue {
	var byFile map[string][]flake8Finding
	if err := json.Unmarshal(out, &byFile); err != nil {
		a.logger.Error("failed to parse flake8 output", "error", err)
		return []core.Issue{}
	}

	if !core.SeverityWarning.AtLeast(threshold) {
		return []core.Issue{}
	}

	issues := []core.Issue{}
	for file, findings := range byFile {
		for _, f := range findings {
			issues = append(issues, core.Issue{
				File:     relPath(workspace, file),
				Line:     f.LineNumber,
				Message:  f.Text,
				Severity: core.SeverityWarning,
			})
		}
	}
	return issues
}
