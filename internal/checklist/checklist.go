// Package checklist loads the declarative sign-off checklist: the YAML
// document that names every checker and the requirement spec it runs with.
// The loader is deliberately permissive about semantic problems — an
// unknown mode or empty pattern list is passed through untouched so the
// engine can report it as a configuration failure in the normal CR5 shape
// instead of aborting the whole run.
package checklist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"signoff/internal/checker"
	"signoff/internal/model"
)

// Checklist is one loaded sign-off checklist.
type Checklist struct {
	Version  int
	Name     string
	Checkers []Checker
}

// Checker pairs a stable checker id with its requirement spec.
type Checker struct {
	ID          string
	Description string
	Spec        checker.RequirementSpec
}

type rawChecklist struct {
	Version  int          `yaml:"version"`
	Name     string       `yaml:"name"`
	Checkers []rawChecker `yaml:"checkers"`
}

type rawChecker struct {
	ID            string              `yaml:"id"`
	Description   string              `yaml:"description"`
	Mode          int                 `yaml:"mode"`
	NominalValue  *int                `yaml:"nominal_value"`
	Search        string              `yaml:"search"`
	Polarity      string              `yaml:"polarity"`
	Match         string              `yaml:"match"`
	ExtraSeverity string              `yaml:"extra_severity"`
	FailureItem   string              `yaml:"failure_item"`
	PatternItems  any                 `yaml:"pattern_items"`
	Waivers       []model.WaiverEntry `yaml:"waivers"`
	WaiverNominal *int                `yaml:"waiver_nominal_value"`
}

// Load reads and parses a checklist file.
func Load(path string) (*Checklist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checklist: %w", err)
	}
	cl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("checklist %s: %w", path, err)
	}
	return cl, nil
}

// Parse decodes a checklist document. Structural problems (bad YAML,
// missing or duplicate checker ids) are errors; per-checker semantic
// problems are not, by design.
func Parse(data []byte) (*Checklist, error) {
	var raw rawChecklist
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse checklist YAML: %w", err)
	}
	if len(raw.Checkers) == 0 {
		return nil, fmt.Errorf("checklist declares no checkers")
	}

	cl := &Checklist{Version: raw.Version, Name: raw.Name}
	seen := make(map[string]bool, len(raw.Checkers))
	for i, rc := range raw.Checkers {
		if rc.ID == "" {
			return nil, fmt.Errorf("checker #%d has no id", i+1)
		}
		if seen[rc.ID] {
			return nil, fmt.Errorf("duplicate checker id %q", rc.ID)
		}
		seen[rc.ID] = true
		cl.Checkers = append(cl.Checkers, Checker{
			ID:          rc.ID,
			Description: rc.Description,
			Spec:        rc.spec(),
		})
	}
	return cl, nil
}

// spec maps one raw checker onto the engine's requirement spec. Pattern
// items pass through the model normalization boundary here, once; the
// sequence form of the YAML preserves declaration order.
func (rc rawChecker) spec() checker.RequirementSpec {
	return checker.RequirementSpec{
		Mode:          checker.Mode(rc.Mode),
		NominalValue:  rc.NominalValue,
		PatternItems:  model.Normalize(rc.PatternItems),
		Waivers:       rc.Waivers,
		WaiverNominal: rc.WaiverNominal,
		Semantics:     checker.SearchSemantics(rc.Search),
		Polarity:      checker.Polarity(rc.Polarity),
		Match:         checker.MatchStrategy(rc.Match),
		ExtraSeverity: model.Severity(rc.ExtraSeverity),
		FailureItem:   rc.FailureItem,
	}
}
