package analysis

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

// ErrNoInput signals that none of the requested files exist in the workspace,
// so the tool was never invoked. The orchestrator omits such tools from the
// report entirely, which keeps "did not run" distinguishable from "ran and
// found nothing".
var ErrNoInput = errors.New("no matching files in workspace")

// Adapter normalizes one external linter: it invokes the tool as a subprocess
// over files inside the workspace and converts the tool's native output and
// severity vocabulary into the shared Issue schema.
type Adapter interface {
	Name() string

	// Run analyzes the given repository-relative files. Issue paths in the
	// result are relative to the workspace root, and only issues meeting the
	// threshold are returned. A subprocess that cannot be started is an
	// error; unparseable tool output is not — it degrades to an empty result.
	Run(ctx context.Context, files []string, workspace string, threshold core.Severity) ([]core.Issue, error)
}

// adapterFor returns the adapter implementing a configured (tool, language)
// pair, or false when the combination is not supported.
func adapterFor(tool, language string, logger *slog.Logger) (Adapter, bool) {
	switch {
	case tool == "pylint" && language == "python":
		return &pylintAdapter{logger: logger}, true
	case tool == "flake8" && language == "python":
		return &flake8Adapter{logger: logger}, true
	case tool == "eslint" && (language == "javascript" || language == "typescript"):
		return &eslintAdapter{language: language, logger: logger}, true
	default:
		return nil, false
	}
}

// filterExisting maps repository-relative paths to absolute workspace paths,
// dropping files that were not materialized (for example, files whose content
// could not be fetched).
func filterExisting(workspace string, files []string) []string {
	var existing []string
	for _, f := range files {
		p := filepath.Join(workspace, filepath.FromSlash(f))
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	return existing
}

// runTool executes a linter subprocess and returns its stdout. Linters
// conventionally exit non-zero when they have findings, so an exit error with
// captured output is not a failure; only an unstartable process is.
func runTool(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(out) > 0 {
			return out, nil
		}
		return nil, err
	}
	return out, nil
}

// relPath rewrites an absolute result path to be workspace-relative. Paths
// already relative, or outside the workspace, pass through unchanged apart
// from slash normalization.
func relPath(workspace, path string) string {
	if rel, err := filepath.Rel(workspace, path); err == nil && !filepath.IsAbs(rel) && rel != "." && !isParentRef(rel) {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

func isParentRef(rel string) bool {
	return rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator)
}
