package analysis

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

// eslintAdapter wraps eslint over JavaScript or TypeScript files. ESLint
// reports per-file results with a numeric 0/1/2 severity.
type eslintAdapter struct {
	language string
	logger   *slog.Logger
}

// eslintFileResult mirrors one element of `eslint --format=json` output.
type eslintFileResult struct {
	FilePath string          `json:"filePath"`
	Messages []eslintMessage `json:"messages"`
}

type eslintMessage struct {
	Line     int    `json:"line"`
	Message  string `json:"message"`
	Severity int    `json:"severity"`
}

// eslintConfigNames are the project config files that suppress synthesis of a
// default configuration. A config the target project supplies is never touched.
var eslintConfigNames = []string{".eslintrc", ".eslintrc.js", ".eslintrc.json", ".eslintrc.yml"}

func (a *eslintAdapter) Name() string { return "eslint" }

func (a *eslintAdapter) Run(ctx context.Context, files []string, workspace string, threshold core.Severity) ([]core.Issue, error) {
	paths := filterExisting(workspace, files)
	if len(paths) == 0 {
		return nil, ErrNoInput
	}

	if err := a.ensureConfig(workspace); err != nil {
		return nil, err
	}

	args := append([]string{"--format=json"}, paths...)
	out, err := runTool(ctx, "eslint", args...)
	if err != nil {
		return nil, err
	}

	return a.parse(out, workspace, threshold), nil
}

func (a *eslintAdapter) parse(out []byte, workspace string, threshold core.Severity) []core.Issue {
	var results []eslintFileResult
	if err := json.Unmarshal(out, &results); err != nil {
		a.logger.Error("failed to parse eslint output", "error", err)
		return []core.Issue{}
	}

	issues := []core.Issue{}
	for _, res := range results {
		file := relPath(workspace, res.FilePath)
		for _, msg := range res.Messages {
			severity := mapESLintSeverity(msg.Severity)
			if !severity.AtLeast(threshold) {
				continue
			}
			issues = append(issues, core.Issue{
				File:     file,
				Line:     msg.Line,
				Message:  msg.Message,
				Severity: severity,
			})
		}
	}
	return issues
}

// ensureConfig synthesizes a minimal .eslintrc.json in the workspace when the
// changed files brought no eslint configuration of their own.
func (a *eslintAdapter) ensureConfig(workspace string) error {
	for _, name := range eslintConfigNames {
		if _, err := os.Stat(filepath.Join(workspace, name)); err == nil {
			return nil
		}
	}

	rc := map[string]any{
		"env": map[string]bool{
			"browser": true,
			"es2021":  true,
			"node":    true,
		},
		"extends": []string{"eslint:recommended"},
		"parserOptions": map[string]string{
			"ecmaVersion": "latest",
			"sourceType":  "module",
		},
		"rules": map[string]any{},
	}
	if a.language == "typescript" {
		rc["parser"] = "@typescript-eslint/parser"
		rc["extends"] = []string{"eslint:recommended", "plugin:@typescript-eslint/recommended"}
		rc["plugins"] = []string{"@typescript-eslint"}
	}

	data, err := json.Marshal(rc)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(workspace, ".eslintrc.json"), data, 0o600)
}

func mapESLintSeverity(n int) core.Severity {
	switch n {
	case 2:
		return core.SeverityError
	case 1:
		return core.SeverityWarning
	default:
		return core.SeverityInfo
	}
}
