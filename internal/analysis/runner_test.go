package analysis

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

// stubAdapter lets tests script adapter behavior without external binaries.
type stubAdapter struct {
	name   string
	issues []core.Issue
	err    error
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Run(context.Context, []string, string, core.Severity) ([]core.Issue, error) {
	return s.issues, s.err
}

func stubLookup(adapters map[string]*stubAdapter) func(string, string, *slog.Logger) (Adapter, bool) {
	return func(tool, _ string, _ *slog.Logger) (Adapter, bool) {
		a, ok := adapters[tool]
		return a, ok
	}
}

func pythonFiles() []core.FileChange {
	return []core.FileChange{
		{Path: "app.py", Status: core.StatusModified, Content: "pass\n"},
	}
}

func TestRunnerDisabledAnalysisReturnsEmptyReport(t *testing.T) {
	cfg := core.DefaultRepoConfig()
	cfg.StaticAnalysis.Enabled = false

	runner := NewRunner(discardLogger())
	report := runner.Run(context.Background(), pythonFiles(), cfg)

	assert.True(t, report.Empty())
}

func TestRunnerIgnoresUnrecognizedExtensions(t *testing.T) {
	files := []core.FileChange{
		{Path: "main.go", Status: core.StatusModified, Content: "package main\n"},
		{Path: "README.md", Status: core.StatusAdded, Content: "# hi\n"},
	}

	runner := NewRunner(discardLogger())
	report := runner.Run(context.Background(), files, core.DefaultRepoConfig())

	assert.True(t, report.Empty())
}

func TestRunnerIsolatesToolFailures(t *testing.T) {
	wantIssues := []core.Issue{{File: "app.py", Line: 2, Message: "found it", Severity: core.SeverityWarning}}

	runner := NewRunner(discardLogger())
	runner.lookup = stubLookup(map[string]*stubAdapter{
		"pylint": {name: "pylint", err: errors.New("pylint exploded")},
		"flake8": {name: "flake8", issues: wantIssues},
	})

	report := runner.Run(context.Background(), pythonFiles(), core.DefaultRepoConfig())

	_, ok := report.Get("pylint")
	assert.False(t, ok, "failing tool must be omitted, not reported empty")

	res, ok := report.Get("flake8")
	require.True(t, ok, "a failing tool must not suppress its siblings")
	assert.Equal(t, wantIssues, res.Issues)
}

func TestRunnerOmitsToolsWithNoInput(t *testing.T) {
	runner := NewRunner(discardLogger())
	runner.lookup = stubLookup(map[string]*stubAdapter{
		"pylint": {name: "pylint", err: ErrNoInput},
		"flake8": {name: "flake8", issues: []core.Issue{}},
	})

	report := runner.Run(context.Background(), pythonFiles(), core.DefaultRepoConfig())

	_, ok := report.Get("pylint")
	assert.False(t, ok)

	// A tool that ran and found nothing stays in the report with an empty list.
	res, ok := report.Get("flake8")
	require.True(t, ok)
	assert.Empty(t, res.Issues)
}

func TestRunnerSkipsUnsupportedTools(t *testing.T) {
	cfg := core.DefaultRepoConfig()
	cfg.StaticAnalysis.Tools = map[string][]string{"python": {"mystery-linter"}}

	runner := NewRunner(discardLogger())
	report := runner.Run(context.Background(), pythonFiles(), cfg)

	assert.True(t, report.Empty())
}

func TestGroupFilesByLanguage(t *testing.T) {
	files := []core.FileChange{
		{Path: "a.py"},
		{Path: "b.js"},
		{Path: "c.jsx"},
		{Path: "d.ts"},
		{Path: "e.tsx"},
		{Path: "f.rb"},
		{Path: "Makefile"},
	}

	grouped := groupFilesByLanguage(files)

	assert.Equal(t, []string{"a.py"}, grouped["python"])
	assert.Equal(t, []string{"b.js", "c.jsx"}, grouped["javascript"])
	assert.Equal(t, []string{"d.ts", "e.tsx"}, grouped["typescript"])
	assert.Len(t, grouped, 3)
}
