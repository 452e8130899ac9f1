package llm

import (
	"strings"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

// bulletCutset strips leading list markers and numbering from a bullet line.
const bulletCutset = "-*0123456789. "

// ParseResponse mines a structured review out of the model's free-text
// answer. This is intentionally lossy prose-mining, not a structured-output
// contract with the model: a line mentioning "summary" opens the summary, a
// line mentioning "issue" or "suggestion" closes it, and bullet lines
// ("- ", "* ", or "1.") each open a suggestion whose following lines become
// its description. An empty or unrecognizable answer parses to an empty
// result, never an error.
func ParseResponse(text string) core.ReviewResult {
	result := core.NewReviewResult()
	lines := strings.Split(text, "\n")

	var summary strings.Builder
	var current *core.Suggestion

	flush := func() {
		if current == nil {
			return
		}
		current.Description = strings.TrimSpace(current.Description)
		result.Suggestions = append(result.Suggestions, *current)
		current = nil
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if summary.Len() == 0 && strings.Contains(strings.ToLower(line), "summary") {
			collectSummary(lines[i+1:], &summary)
		}

		switch {
		case isBulletLine(line):
			flush()
			current = &core.Suggestion{Title: strings.TrimLeft(line, bulletCutset)}
		case current != nil:
			current.Description += line + " "
		}
	}
	flush()

	result.Summary = strings.TrimSpace(summary.String())
	return result
}

// collectSummary gathers non-blank lines into the summary until a line that
// talks about issues or suggestions, or the end of input. The terminator is a
// known heuristic: prose that legitimately mentions "issues" cuts the summary
// short, which we accept over mis-capturing the suggestion list.
func collectSummary(rest []string, summary *strings.Builder) {
	for _, raw := range rest {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "issue") || strings.Contains(lower, "suggestion") {
			return
		}
		summary.WriteString(line)
		summary.WriteString(" ")
	}
}

// isBulletLine reports whether a line opens a new suggestion: "- ", "* ", or
// a single digit followed by a dot.
func isBulletLine(line string) bool {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return true
	}
	return len(line) >= 2 && line[0] >= '0' && line[0] <= '9' && line[1] == '.'
}
