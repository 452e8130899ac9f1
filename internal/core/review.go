package core

import "time"

// Suggestion is one piece of feedback mined from the model's free-text
// answer: a short imperative title plus an optional longer description.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ReviewStatus tells callers whether a review came back from the model or was
// synthesized because the model could not be reached or understood.
type ReviewStatus string

const (
	ReviewOK       ReviewStatus = "ok"
	ReviewDegraded ReviewStatus = "degraded"
)

// ReviewResult is the universal output of every model provider, including the
// degraded fallbacks. Summary may be empty; Suggestions is never nil.
type ReviewResult struct {
	Status      ReviewStatus `json:"status"`
	Summary     string       `json:"summary"`
	Suggestions []Suggestion `json:"suggestions"`
}

// NewReviewResult returns an empty, well-formed successful result.
func NewReviewResult() ReviewResult {
	return ReviewResult{Status: ReviewOK, Suggestions: []Suggestion{}}
}

// DegradedReview wraps a user-facing failure explanation in a valid
// ReviewResult, so callers never need their own fallback around a provider.
func DegradedReview(summary string) ReviewResult {
	return ReviewResult{Status: ReviewDegraded, Summary: summary, Suggestions: []Suggestion{}}
}

// Review is a posted review as stored in the database (server mode).
type Review struct {
	ID            int64
	RepoFullName  string
	PRNumber      int
	HeadSHA       string
	ReviewContent string
	CreatedAt     time.Time
}
