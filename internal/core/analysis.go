package core

// Issue is a single normalized static-analysis finding. Line numbers are
// 1-based; line 0 marks a file-level finding. File paths are always relative
// to the analysis workspace root.
type Issue struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ToolResult holds every issue one tool reported for one language group.
type ToolResult struct {
	Tool     string  `json:"tool"`
	Language string  `json:"language"`
	Issues   []Issue `json:"issues"`
}

// AnalysisReport aggregates tool results in dispatch order. A tool that never
// ran (disabled, no matching files, or failed) has no entry at all, which is
// distinct from a tool that ran and found nothing. The zero value is an empty
// report, which is itself meaningful: analysis was disabled or found no work.
type AnalysisReport struct {
	results []ToolResult
	index   map[string]int
}

// Add appends a tool result, replacing any previous result for the same tool.
func (r *AnalysisReport) Add(res ToolResult) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[res.Tool]; ok {
		r.results[i] = res
		return
	}
	r.index[res.Tool] = len(r.results)
	r.results = append(r.results, res)
}

// Get returns the result for a tool, if that tool ran.
func (r *AnalysisReport) Get(tool string) (ToolResult, bool) {
	if r.index == nil {
		return ToolResult{}, false
	}
	i, ok := r.index[tool]
	if !ok {
		return ToolResult{}, false
	}
	return r.results[i], true
}

// Results returns all tool results in dispatch order.
func (r *AnalysisReport) Results() []ToolResult {
	return r.results
}

// Len returns the number of tools that contributed results.
func (r *AnalysisReport) Len() int {
	return len(r.results)
}

// Empty reports whether no tool contributed any result.
func (r *AnalysisReport) Empty() bool {
	return len(r.results) == 0
}
