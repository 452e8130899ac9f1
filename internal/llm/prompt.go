package llm

const (
	// maxPromptChars caps the rendered prompt. Oversized diffs are truncated
	// rather than rejected.
	maxPromptChars    = 8000
	truncationMarker  = "...[truncated]"
	defaultSystemRole = "You are a helpful code review assistant."
)

const promptPreamble = "You are a helpful code review assistant. " +
	"Please analyze the following code changes and provide: " +
	"1. A brief summary of what the changes do. " +
	"2. Any potential issues or improvements you spot. " +
	"3. Specific suggestions for improving the code. " +
	"4. Any security concerns or best practices that should be addressed. " +
	"\n\nCode changes:\n\n"

// buildPrompt renders the review instruction template with the diff embedded
// verbatim, capped at the prompt size budget.
func buildPrompt(diff string) string {
	return capPrompt(promptPreamble + diff)
}

func capPrompt(prompt string) string {
	if len(prompt) <= maxPromptChars {
		return prompt
	}
	return prompt[:maxPromptChars] + truncationMarker
}
