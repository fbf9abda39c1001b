// Package model provides the shared vocabulary for the classification engine:
// severity levels, finding metadata, ordered item collections, and the
// normalization boundary every item-shaped input passes through.
// This package exists so the classifier, waiver resolver, and renderers all
// speak one type language with no import cycles.
package model

// Severity is the outcome level attached to every classified finding.
// It is the only axis that drives pass/fail semantics; presentation tags
// never do.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityFail  Severity = "FAIL"
	SeverityError Severity = "ERROR"
)

// Failing reports whether this severity marks failing output.
// INFO and WARN never fail a check.
func (s Severity) Failing() bool {
	return s == SeverityFail || s == SeverityError
}

// Valid reports whether s is one of the four known levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarn, SeverityFail, SeverityError:
		return true
	}
	return false
}

func (s Severity) String() string {
	if s == "" {
		return "UNKNOWN"
	}
	return string(s)
}
