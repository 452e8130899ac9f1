package analysis

import (
	"context"
	"errors"
	"log/slog"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

// Runner orchestrates static analysis for one review run: it groups changed
// files by language, materializes them into a scratch workspace, dispatches
// the configured tool adapters, and aggregates their findings. Tools are
// isolated from each other; one failing tool never aborts the run.
type Runner struct {
	logger *slog.Logger

	// lookup resolves a (tool, language) pair to an adapter. Overridable in
	// tests; defaults to the built-in adapter set.
	lookup func(tool, language string, logger *slog.Logger) (Adapter, bool)
}

// NewRunner creates an analysis runner.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, lookup: adapterFor}
}

// Run performs static analysis over the changed files and returns the
// aggregated report. The report is empty when analysis is disabled or when no
// changed file belongs to a recognized language.
func (r *Runner) Run(ctx context.Context, files []core.FileChange, cfg *core.RepoConfig) *core.AnalysisReport {
	report := &core.AnalysisReport{}

	if !cfg.StaticAnalysis.Enabled {
		r.logger.Info("static analysis disabled in configuration")
		return report
	}

	grouped := groupFilesByLanguage(files)
	if len(grouped) == 0 {
		return report
	}

	workspace, cleanup, err := materializeWorkspace(ctx, files, r.logger)
	if err != nil {
		r.logger.Error("failed to materialize analysis workspace", "error", err)
		return report
	}
	defer cleanup()

	threshold := cfg.StaticAnalysis.SeverityThreshold
	for _, language := range languageOrder {
		fileList, ok := grouped[language]
		if !ok {
			continue
		}
		for _, tool := range cfg.StaticAnalysis.Tools[language] {
			r.runTool(ctx, report, tool, language, fileList, workspace, threshold)
		}
	}
	return report
}

// runTool dispatches one adapter and records its result. Failures are logged
// and the tool's entry is omitted from the report.
func (r *Runner) runTool(ctx context.Context, report *core.AnalysisReport, tool, language string, files []string, workspace string, threshold core.Severity) {
	adapter, ok := r.lookup(tool, language, r.logger)
	if !ok {
		r.logger.Warn("unsupported analysis tool for language", "tool", tool, "language", language)
		return
	}

	issues, err := adapter.Run(ctx, files, workspace, threshold)
	if err != nil {
		if errors.Is(err, ErrNoInput) {
			r.logger.Debug("no files for analysis tool", "tool", tool, "language", language)
		} else {
			r.logger.Error("analysis tool failed", "tool", tool, "language", language, "error", err)
		}
		return
	}

	report.Add(core.ToolResult{Tool: tool, Language: language, Issues: issues})
	r.logger.Info("analysis tool finished", "tool", tool, "language", language, "issues", len(issues))
}
