package domain

type Severity string

const (
	SeverityBlocking   Severity = "blocking"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

type Verdict string

const (
	VerdictApprove             Verdict = "approve"
	VerdictApproveWithWarnings Verdict = "approve_with_warnings"
	VerdictFlagged             Verdict = "flagged"
)

type QAIssue struct {
	Severity    Severity
	Category    string
	Description string
}

// QAFix - применённая авто-правка (before/after - hex цвета)
type QAFix struct {
	Category    string
	Description string
	Before      string
	After       string
}

// QAScores - оценки по измерениям, каждая 1-10.
// Overall всегда считается из четырёх измерений, отдельно не задаётся.
type QAScores struct {
	BriefAlignment      int
	InternalConsistency int
	Differentiation     int
	TechnicalQuality    int
	Overall             int
}

type QAReport struct {
	Verdict Verdict
	Scores  QAScores
	Issues  []QAIssue
	Fixes   []QAFix
	Summary string
}

func (r QAReport) CountBySeverity(s Severity) int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == s {
			n++
		}
	}
	return n
}
