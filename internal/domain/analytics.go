package domain

// AssignmentAnalytics is the professor-facing rollup over assignments and
// their submissions. Computed on demand, never stored.
type AssignmentAnalytics struct {
	TotalAssignments      int     `json:"totalAssignments"`
	TotalSubmissions      int     `json:"totalSubmissions"`
	ConfirmedSubmissions  int     `json:"confirmedSubmissions"`
	PendingSubmissions    int     `json:"pendingSubmissions"`
	GroupSubmissions      int     `json:"groupSubmissions"`
	IndividualSubmissions int     `json:"individualSubmissions"`
	PercentageConfirmed   float64 `json:"percentageConfirmed"`
}
