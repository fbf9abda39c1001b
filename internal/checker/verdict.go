package checker

import (
	"fmt"
	"strings"

	"signoff/internal/model"
)

// verdict folds the post-waiver buckets into the final pass/fail boolean
// and a human-readable reason. Message precedence: an unwaived failure
// dominates; absent that, a failing-severity extra item dominates; only
// then is the generic pass reason used. The reason string is descriptive
// output and never participates in machine comparison.
//
// The extra bucket participates in the verdict for every mode, including
// boolean+waiver, whose output shape has no extra_items key: there the
// reason and the detail sequence carry the explanation for the failure.
// Waivers cannot release extras; they match the failing bucket only.
func verdict(spec RequirementSpec, unwaived, extra, unused *model.Collection) (bool, string) {
	if !unwaived.Empty() {
		label := "failing"
		if spec.Mode.Waivered() {
			label = "unwaived failing"
		}
		return false, fmt.Sprintf("%d %s item(s): %s", unwaived.Len(), label, summarize(unwaived))
	}
	if !extra.Empty() && spec.ExtraSeverity.Failing() {
		return false, fmt.Sprintf("%d unexpected item(s) at severity %s: %s", extra.Len(), spec.ExtraSeverity, summarize(extra))
	}
	if !unused.Empty() {
		return true, fmt.Sprintf("all requirements satisfied (%d unused waiver(s))", unused.Len())
	}
	return true, "all requirements satisfied"
}

// summarize lists up to three item names, mirroring the audit reports the
// framework attaches verdicts to.
func summarize(c *model.Collection) string {
	names := c.Names()
	if len(names) > 3 {
		return strings.Join(names[:3], ", ") + ", ..."
	}
	return strings.Join(names, ", ")
}
