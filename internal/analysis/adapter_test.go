package analysis

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAdapterFor(t *testing.T) {
	tests := []struct {
		tool     string
		language string
		wantOK   bool
	}{
		{"pylint", "python", true},
		{"flake8", "python", true},
		{"eslint", "javascript", true},
		{"eslint", "typescript", true},
		{"eslint", "python", false},
		{"pylint", "javascript", false},
		{"golangci-lint", "go", false},
	}

	for _, tt := range tests {
		_, ok := adapterFor(tt.tool, tt.language, discardLogger())
		assert.Equal(t, tt.wantOK, ok, "%s/%s", tt.tool, tt.language)
	}
}

func TestAdaptersReturnNoInputWithoutMatchingFiles(t *testing.T) {
	workspace := t.TempDir()
	adapters := []Adapter{
		&pylintAdapter{logger: discardLogger()},
		&flake8Adapter{logger: discardLogger()},
		&eslintAdapter{language: "javascript", logger: discardLogger()},
	}

	for _, a := range adapters {
		issues, err := a.Run(context.Background(), []string{"missing.py", "missing.js"}, workspace, core.SeverityInfo)
		assert.ErrorIs(t, err, ErrNoInput, a.Name())
		assert.Empty(t, issues, a.Name())
	}
}

func TestPylintParse(t *testing.T) {
	workspace := string(filepath.Separator) + "ws"
	out := []byte(`[
		{"type": "error", "path": "` + workspace + `/src/app.py", "line": 3, "message": "undefined variable"},
		{"type": "convention", "path": "` + workspace + `/src/app.py", "line": 1, "message": "missing docstring"},
		{"type": "warning", "path": "` + workspace + `/src/util.py", "line": 9, "message": "unused import"}
	]`)

	a := &pylintAdapter{logger: discardLogger()}
	issues := a.parse(out, workspace, core.SeverityWarning)

	require.Len(t, issues, 2)
	assert.Equal(t, "src/app.py", issues[0].File)
	assert.Equal(t, 3, issues[0].Line)
	assert.Equal(t, core.SeverityError, issues[0].Severity)
	assert.Equal(t, "src/util.py", issues[1].File)
	assert.Equal(t, core.SeverityWarning, issues[1].Severity)

	// Issue paths are workspace-relative, never absolute.
	for _, issue := range issues {
		assert.False(t, filepath.IsAbs(issue.File), issue.File)
	}
}

func TestPylintParseMalformedOutput(t *testing.T) {
	a := &pylintAdapter{logger: discardLogger()}
	issues := a.parse([]byte("not json"), "/ws", core.SeverityInfo)
	assert.Empty(t, issues)
}

func TestMapPylintSeverity(t *testing.T) {
	tests := []struct {
		category string
		want     core.Severity
	}{
		{"fatal", core.SeverityError},
		{"error", core.SeverityError},
		{"warning", core.SeverityWarning},
		{"convention", core.SeverityInfo},
		{"refactor", core.SeverityInfo},
		{"info", core.SeverityInfo},
		{"Warning", core.SeverityWarning},
		{"something-new", core.SeverityInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mapPylintSeverity(tt.category), tt.category)
	}
}

func TestFlake8Parse(t *testing.T) {
	workspace := string(filepath.Separator) + "ws"
	out := []byte(`{
		"` + workspace + `/app.py": [
			{"line_number": 12, "text": "E501 line too long"},
			{"line_number": 40, "text": "F401 imported but unused"}
		]
	}`)

	a := &flake8Adapter{logger: discardLogger()}
	issues := a.parse(out, workspace, core.SeverityWarning)

	require.Len(t, issues, 2)
	for _, issue := range issues {
		assert.Equal(t, "app.py", issue.File)
		assert.Equal(t, core.SeverityWarning, issue.Severity)
	}
}

func TestFlake8ParseErrorThresholdDropsEverything(t *testing.T) {
	out := []byte(`{"a.py": [{"line_number": 1, "text": "E101"}]}`)
	a := &flake8Adapter{logger: discardLogger()}
	assert.Empty(t, a.parse(out, "/ws", core.SeverityError))
}

func TestESLintParse(t *testing.T) {
	workspace := string(filepath.Separator) + "ws"
	out := []byte(`[
		{"filePath": "` + workspace + `/index.js", "messages": [
			{"line": 2, "message": "no-unused-vars", "severity": 2},
			{"line": 7, "message": "eqeqeq", "severity": 1},
			{"line": 9, "message": "styling nit", "severity": 0}
		]}
	]`)

	a := &eslintAdapter{language: "javascript", logger: discardLogger()}
	issues := a.parse(out, workspace, core.SeverityWarning)

	require.Len(t, issues, 2)
	assert.Equal(t, "index.js", issues[0].File)
	assert.Equal(t, core.SeverityError, issues[0].Severity)
	assert.Equal(t, core.SeverityWarning, issues[1].Severity)
}

func TestMapESLintSeverity(t *testing.T) {
	assert.Equal(t, core.SeverityInfo, mapESLintSeverity(0))
	assert.Equal(t, core.SeverityWarning, mapESLintSeverity(1))
	assert.Equal(t, core.SeverityError, mapESLintSeverity(2))
	assert.Equal(t, core.SeverityInfo, mapESLintSeverity(42))
}

func TestESLintEnsureConfigSynthesizesDefault(t *testing.T) {
	workspace := t.TempDir()
	a := &eslintAdapter{language: "typescript", logger: discardLogger()}

	require.NoError(t, a.ensureConfig(workspace))

	data, err := os.ReadFile(filepath.Join(workspace, ".eslintrc.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "@typescript-eslint/parser")
	assert.Contains(t, string(data), "eslint:recommended")
}

func TestESLintEnsureConfigKeepsProjectConfig(t *testing.T) {
	workspace := t.TempDir()
	existing := filepath.Join(workspace, ".eslintrc.json")
	require.NoError(t, os.WriteFile(existing, []byte(`{"rules":{"custom":"error"}}`), 0o600))

	a := &eslintAdapter{language: "javascript", logger: discardLogger()}
	require.NoError(t, a.ensureConfig(workspace))

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Contains(t, string(data), "custom")
}

func TestFilterExisting(t *testing.T) {
	workspace := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(workspace, "src"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(workspace, "src", "a.py"), []byte("pass"), 0o600))

	existing := filterExisting(workspace, []string{"src/a.py", "src/missing.py"})
	require.Len(t, existing, 1)
	assert.Equal(t, filepath.Join(workspace, "src", "a.py"), existing[0])
}
