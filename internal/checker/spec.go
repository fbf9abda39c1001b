// Package checker implements the classification engine at the heart of the
// sign-off framework: given one requirement specification and the candidate
// findings parsed from design reports, it computes a PASS/FAIL verdict, an
// audit-grade detail record for every finding, and a closed, minimally-shaped
// output per validation mode.
//
// The pipeline is Normalize -> Classify -> (Resolve waivers, modes 3/4) ->
// Verdict -> Filter. Every stage is a total function of its inputs: no I/O,
// no shared state, no goroutines. Concurrency, file discovery, and report
// parsing all live outside this package.
package checker

import (
	"fmt"

	"signoff/internal/model"
)

// Mode selects one of the four validation variants.
type Mode int

const (
	// ModeBoolean is checker-specific boolean validation: the candidate set
	// itself encodes the outcome and pattern items are unused.
	ModeBoolean Mode = 1
	// ModePattern validates candidates against declared pattern items.
	ModePattern Mode = 2
	// ModePatternWaiver is ModePattern plus waiver resolution.
	ModePatternWaiver Mode = 3
	// ModeBooleanWaiver is ModeBoolean plus waiver resolution.
	ModeBooleanWaiver Mode = 4
)

// Valid reports whether m is one of the four known modes.
func (m Mode) Valid() bool { return m >= ModeBoolean && m <= ModeBooleanWaiver }

// Waivered reports whether this mode runs waiver resolution.
func (m Mode) Waivered() bool { return m == ModePatternWaiver || m == ModeBooleanWaiver }

func (m Mode) boolean() bool { return m == ModeBoolean || m == ModeBooleanWaiver }

func (m Mode) String() string {
	switch m {
	case ModeBoolean:
		return "mode 1 (boolean)"
	case ModePattern:
		return "mode 2 (pattern/value)"
	case ModePatternWaiver:
		return "mode 3 (pattern+waiver)"
	case ModeBooleanWaiver:
		return "mode 4 (boolean+waiver)"
	}
	return fmt.Sprintf("mode %d (unrecognized)", int(m))
}

// SearchSemantics selects how pattern items are compared to candidates.
type SearchSemantics string

const (
	// SearchExistence requires each pattern item to appear (or, under
	// PolarityForbid, not appear) among the candidates.
	SearchExistence SearchSemantics = "existence_check"
	// SearchStatus compares the recorded status of candidates named by
	// pattern items against the expected status; candidates outside the
	// pattern set are ignored entirely.
	SearchStatus SearchSemantics = "status_check"
)

// Polarity flips existence checking between "must be present" and
// "must not be present". The same matching mechanism serves both.
type Polarity string

const (
	PolarityRequire Polarity = "require"
	PolarityForbid  Polarity = "forbid"
)

// MatchStrategy controls the pattern-to-candidate tie-break. Whole-token
// equality is the default; the looser strategies exist because some report
// formats emit full file paths where the checklist names bare identifiers.
// Substring matching is never applied unless explicitly configured.
type MatchStrategy string

const (
	MatchWholeToken     MatchStrategy = "whole_token"
	MatchLongestLiteral MatchStrategy = "longest_literal"
	MatchSubstring      MatchStrategy = "substring"
)

// RequirementSpec is the full declarative contract for one checker,
// populated by the checklist loader. Zero values of the optional knobs
// are normalized to their defaults before evaluation.
type RequirementSpec struct {
	Mode Mode

	// NominalValue is the checker's nominal count from the checklist.
	// Recorded for the audit trail; the engine never branches on it.
	NominalValue *int

	// PatternItems declares the required (or forbidden) items for the
	// pattern modes. Unused by the boolean modes.
	PatternItems *model.Collection

	// Waivers lists approved exemptions for modes 3/4. When WaiverNominal
	// is zero the entries are freeform commentary with no matching.
	Waivers []model.WaiverEntry

	// WaiverNominal distinguishes matching waivers (non-zero or absent)
	// from the forced-pass commentary sub-mode (zero, modes 1/2 only).
	WaiverNominal *int

	Semantics SearchSemantics // default SearchExistence
	Polarity  Polarity        // default PolarityRequire
	Match     MatchStrategy   // default MatchWholeToken

	// ExtraSeverity is the configured severity of the extra bucket.
	// Only a failing level here lets extras flip the verdict.
	ExtraSeverity model.Severity // default SeverityFail

	// FailureItem names the synthetic failing item the boolean modes emit
	// when the candidate set is empty, so that waivers have a stable name
	// to match against.
	FailureItem string // default "requirement_not_met"
}

const defaultFailureItem = "requirement_not_met"

// withDefaults returns a copy with every optional knob resolved.
func (s RequirementSpec) withDefaults() RequirementSpec {
	if s.Semantics == "" {
		s.Semantics = SearchExistence
	}
	if s.Polarity == "" {
		s.Polarity = PolarityRequire
	}
	if s.Match == "" {
		s.Match = MatchWholeToken
	}
	if s.ExtraSeverity == "" {
		s.ExtraSeverity = model.SeverityFail
	}
	if s.FailureItem == "" {
		s.FailureItem = defaultFailureItem
	}
	return s
}

// forbids reports whether the spec treats pattern items as prohibitions.
func (s RequirementSpec) forbids() bool {
	return !s.Mode.boolean() && s.Semantics == SearchExistence && s.Polarity == PolarityForbid
}

// forcedPass reports whether the forced-pass sub-mode applies: a zero
// waiver nominal on a non-waivered mode turns every failing finding into
// an INFO detail and forces the verdict to pass.
func (s RequirementSpec) forcedPass() bool {
	return !s.Mode.Waivered() && s.WaiverNominal != nil && *s.WaiverNominal == 0
}

// Validate reports the first configuration problem of the spec after
// default resolution, or "" when it is coherent. Evaluate performs the
// same check itself; this entry point exists for checklist linting.
func (s RequirementSpec) Validate() string {
	return s.withDefaults().configProblem()
}

// configProblem returns a description of the first internal inconsistency
// between the declared mode and the rest of the spec, or "" when the spec
// is coherent. Configuration problems never abort evaluation: the caller
// short-circuits them into a CR5-shaped failing result.
func (s RequirementSpec) configProblem() string {
	if !s.Mode.Valid() {
		return fmt.Sprintf("unrecognized mode id %d (expected 1-4)", int(s.Mode))
	}
	if !s.Mode.boolean() && s.PatternItems.Empty() {
		return fmt.Sprintf("%s requires non-empty pattern_items", s.Mode)
	}
	switch s.Semantics {
	case SearchExistence, SearchStatus:
	default:
		return fmt.Sprintf("unrecognized search semantics %q", string(s.Semantics))
	}
	switch s.Polarity {
	case PolarityRequire, PolarityForbid:
	default:
		return fmt.Sprintf("unrecognized polarity %q", string(s.Polarity))
	}
	switch s.Match {
	case MatchWholeToken, MatchLongestLiteral, MatchSubstring:
	default:
		return fmt.Sprintf("unrecognized match strategy %q", string(s.Match))
	}
	if !s.ExtraSeverity.Valid() {
		return fmt.Sprintf("unrecognized extra-item severity %q", string(s.ExtraSeverity))
	}
	if s.Mode.Waivered() && s.WaiverNominal != nil && *s.WaiverNominal == 0 {
		return fmt.Sprintf("%s conflates commentary waivers (waiver_nominal_value=0) with waiver matching", s.Mode)
	}
	if s.Semantics == SearchStatus && s.Polarity == PolarityForbid {
		return "status_check does not support forbid polarity"
	}
	return ""
}
