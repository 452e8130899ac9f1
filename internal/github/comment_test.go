package github

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

func sampleReview() core.ReviewResult {
	return core.ReviewResult{
		Status:  core.ReviewOK,
		Summary: "Adds pagination to the user list.",
		Suggestions: []core.Suggestion{
			{Title: "Validate the page size", Description: "Negative values fall through to the query."},
			{Title: "Add an index", Description: "The sort column is unindexed."},
		},
	}
}

func TestFormatReviewComment(t *testing.T) {
	var report core.AnalysisReport
	report.Add(core.ToolResult{
		Tool:     "pylint",
		Language: "python",
		Issues: []core.Issue{
			{File: "app/views.py", Line: 42, Message: "unused variable 'page'", Severity: core.SeverityWarning},
		},
	})

	comment := FormatReviewComment(&report, sampleReview(), 10)

	assert.Contains(t, comment, "## 🤖 ReviewBuddy Analysis")
	assert.Contains(t, comment, "### 🧠 AI Summary")
	assert.Contains(t, comment, "Adds pagination to the user list.")
	assert.Contains(t, comment, "1. **Validate the page size**")
	assert.Contains(t, comment, "2. **Add an index**")
	assert.Contains(t, comment, "### 🔍 Static Analysis")
	assert.Contains(t, comment, "#### pylint")
	assert.Contains(t, comment, "- **warning**: unused variable 'page' [app/views.py:42]")
}

func TestFormatReviewCommentCapsSuggestions(t *testing.T) {
	comment := FormatReviewComment(&core.AnalysisReport{}, sampleReview(), 1)

	assert.Contains(t, comment, "1. **Validate the page size**")
	assert.NotContains(t, comment, "Add an index")
}

func TestFormatReviewCommentEmptyInputs(t *testing.T) {
	comment := FormatReviewComment(&core.AnalysisReport{}, core.NewReviewResult(), 10)

	assert.Contains(t, comment, "No summary available")
	assert.NotContains(t, comment, "### 💡 Suggestions")
	assert.NotContains(t, comment, "### 🔍 Static Analysis")
}

func TestFormatReviewCommentSkipsToolsWithoutIssues(t *testing.T) {
	var report core.AnalysisReport
	report.Add(core.ToolResult{Tool: "flake8", Language: "python", Issues: []core.Issue{}})

	comment := FormatReviewComment(&report, core.NewReviewResult(), 10)
	assert.NotContains(t, comment, "#### flake8")
}

func TestBuildDiffText(t *testing.T) {
	files := []core.FileChange{
		{Path: "main.py", Status: core.StatusModified, Additions: 3, Deletions: 1, Patch: "@@ -1 +1,3 @@"},
		{Path: "image.png", Status: core.StatusAdded},
	}

	diff := BuildDiffText(files)

	assert.True(t, strings.HasPrefix(diff, "File: main.py\n"))
	assert.Contains(t, diff, "Status: modified")
	assert.Contains(t, diff, "Additions: 3, Deletions: 1")
	assert.Contains(t, diff, "@@ -1 +1,3 @@")
	assert.Contains(t, diff, "File: image.png")
	assert.Contains(t, diff, "No patch available")
}
