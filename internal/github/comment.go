package github

import (
	"fmt"
	"strings"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

// FormatReviewComment merges the AI review and the static-analysis report
// into the single Markdown comment posted on the pull request. maxSuggestions
// caps the AI suggestion list; zero or negative means no cap.
func FormatReviewComment(report *core.AnalysisReport, review core.ReviewResult, maxSuggestions int) string {
	var b strings.Builder

	b.WriteString("## 🤖 ReviewBuddy Analysis\n\n")

	b.WriteString("### 🧠 AI Summary\n\n")
	if review.Summary != "" {
		b.WriteString(review.Summary)
	} else {
		b.WriteString("No summary available")
	}
	b.WriteString("\n\n")

	suggestions := review.Suggestions
	if maxSuggestions > 0 && len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	if len(suggestions) > 0 {
		b.WriteString("### 💡 Suggestions\n\n")
		for i, s := range suggestions {
			fmt.Fprintf(&b, "%d. **%s**\n", i+1, s.Title)
			if s.Description != "" {
				fmt.Fprintf(&b, "   %s\n", s.Description)
			}
			b.WriteString("\n")
		}
	}

	if report != nil && !report.Empty() {
		b.WriteString("### 🔍 Static Analysis\n\n")
		for _, res := range report.Results() {
			if len(res.Issues) == 0 {
				continue
			}
			fmt.Fprintf(&b, "#### %s\n\n", res.Tool)
			for _, issue := range res.Issues {
				fmt.Fprintf(&b, "- **%s**: %s", issue.Severity, issue.Message)
				if issue.File != "" && issue.Line > 0 {
					fmt.Fprintf(&b, " [%s:%d]", issue.File, issue.Line)
				}
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// BuildDiffText assembles a reviewable diff description from the per-file
// patches. Used when the host's raw-diff endpoint is unavailable.
func BuildDiffText(files []core.FileChange) string {
	var b strings.Builder
	for _, f := range files {
		fmt.Fprintf(&b, "File: %s\n", f.Path)
		fmt.Fprintf(&b, "Status: %s\n", f.Status)
		fmt.Fprintf(&b, "Additions: %d, Deletions: %d\n", f.Additions, f.Deletions)
		patch := f.Patch
		if patch == "" {
			patch = "No patch available"
		}
		fmt.Fprintf(&b, "Patch:\n%s\n\n", patch)
	}
	return b.String()
}
