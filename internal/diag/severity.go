package diag

// Severity defines the importance of an issue.
type Severity uint8

const (
	// SevInfo is for informational issues.
	SevInfo Severity = iota
	// SevWarning is for heuristic findings that may be intended.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lower-case name used in short and golden output.
func (s Severity) Label() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

// Applicability says how safely a suggestion can be applied without review.
type Applicability uint8

const (
	// ApplicabilityAlwaysSafe fixes are applied by `fix --all`.
	ApplicabilityAlwaysSafe Applicability = iota
	// ApplicabilitySafeWithHeuristics fixes come from pattern guesses.
	ApplicabilitySafeWithHeuristics
	// ApplicabilityManualReview fixes need a human to pick the suggestion.
	ApplicabilityManualReview
)

func (a Applicability) String() string {
	switch a {
	case ApplicabilityAlwaysSafe:
		return "always-safe"
	case ApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case ApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}
