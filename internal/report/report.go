// Package report renders run results for humans and for machine
// consumers. The text renderer prints every audit detail with its
// severity and provenance; presentation tags (WAIVER, WAIVED_INFO,
// WAIVED_AS_INFO) are printed verbatim as opaque markers and never
// interpreted here.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"signoff/internal/checker"
	"signoff/internal/model"
	"signoff/internal/runner"
)

// Text renders a run result as a human-readable report.
func Text(res *runner.RunResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Checklist run %s", res.RunID)
	if res.Checklist != "" {
		fmt.Fprintf(&b, " (%s)", res.Checklist)
	}
	fmt.Fprintf(&b, "\n%d passed, %d failed\n\n", res.Passed, res.Failed)

	for _, o := range res.Outcomes {
		fmt.Fprintf(&b, "[%s] %s", o.Filtered.Status(), o.ID)
		if o.Description != "" {
			fmt.Fprintf(&b, " — %s", o.Description)
		}
		fmt.Fprintf(&b, "\n       %s\n", o.Reason)
		for _, d := range o.Details {
			b.WriteString(detailLine(d))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func detailLine(d model.DetailItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %-5s %s", d.Severity, d.Name)
	if d.SourceFile != "" {
		if d.LineNumber > 0 {
			fmt.Fprintf(&b, " (%s:%d)", d.SourceFile, d.LineNumber)
		} else {
			fmt.Fprintf(&b, " (%s)", d.SourceFile)
		}
	}
	if d.Reason != "" {
		fmt.Fprintf(&b, ": %s", d.Reason)
	}
	if d.Tag != "" {
		fmt.Fprintf(&b, " [%s]", d.Tag)
	}
	b.WriteByte('\n')
	return b.String()
}

// jsonOutcome is the machine-readable view of one checker outcome. The
// filtered result keeps its closed per-mode key set; details ride
// alongside for audit consumers.
type jsonOutcome struct {
	ID          string                  `json:"id"`
	Description string                  `json:"description,omitempty"`
	Result      *checker.FilteredResult `json:"result"`
	Details     []model.DetailItem      `json:"details,omitempty"`
}

type jsonReport struct {
	RunID     string        `json:"run_id"`
	Checklist string        `json:"checklist,omitempty"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Checkers  []jsonOutcome `json:"checkers"`
}

// JSON renders a run result as indented JSON with stable key order.
func JSON(res *runner.RunResult) ([]byte, error) {
	out := jsonReport{
		RunID:     res.RunID,
		Checklist: res.Checklist,
		Passed:    res.Passed,
		Failed:    res.Failed,
		Checkers:  make([]jsonOutcome, 0, len(res.Outcomes)),
	}
	for _, o := range res.Outcomes {
		out.Checkers = append(out.Checkers, jsonOutcome{
			ID:          o.ID,
			Description: o.Description,
			Result:      o.Filtered,
			Details:     o.Details,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
