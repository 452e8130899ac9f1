package core

import "strings"

// Severity classifies a static-analysis finding. The vocabulary is closed:
// every tool's native convention is collapsed onto these three values.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// severityRanks defines the total order error > warning > info.
var severityRanks = map[Severity]int{
	SeverityError:   3,
	SeverityWarning: 2,
	SeverityInfo:    1,
}

// ParseSeverity normalizes an arbitrary severity string onto the closed set.
// Unknown values degrade to info rather than failing the run, so malformed
// tool output can never abort analysis.
func ParseSeverity(s string) Severity {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := severityRanks[sev]; ok {
		return sev
	}
	return SeverityInfo
}

// Rank returns the ordinal position of the severity. Values outside the
// closed set rank as info.
func (s Severity) Rank() int {
	if r, ok := severityRanks[s]; ok {
		return r
	}
	return severityRanks[SeverityInfo]
}

// AtLeast reports whether the severity meets or exceeds the given threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return s.Rank() >= threshold.Rank()
}
