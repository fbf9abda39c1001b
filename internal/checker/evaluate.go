package checker

import (
	"fmt"

	"signoff/internal/model"
)

// Evaluation is the complete outcome of one checker run: the verdict, the
// closed-shape filtered result, and the full audit detail sequence the
// report renderer consumes alongside it.
type Evaluation struct {
	Pass     bool
	Reason   string
	Filtered *FilteredResult
	Details  []model.DetailItem
}

// result is the internal, pre-filter check result. It carries bookkeeping
// (searched files, the reason string) that must never reach the filtered
// output; the CR5 filter drops it unconditionally.
type result struct {
	pass     bool
	reason   string
	found    *model.Collection
	missing  *model.Collection
	extra    *model.Collection
	waived   *model.Collection
	unused   *model.Collection
	searched []string
}

// view exposes the internal result as a key/value map for the filter.
func (r result) view() map[string]any {
	status := StatusFail
	if r.pass {
		status = StatusPass
	}
	v := map[string]any{
		keyStatus:  status,
		keyFound:   r.found,
		keyMissing: r.missing,
		keyExtra:   r.extra,
		// Bookkeeping below; allow-listed nowhere, always dropped.
		"searched_files": r.searched,
		"reason":         r.reason,
	}
	if r.waived != nil {
		v[keyWaived] = r.waived
	}
	if r.unused != nil {
		v[keyUnusedWaivers] = r.unused
	}
	return v
}

// Evaluate runs the full pipeline for one checker: normalize the
// candidates, classify them against the spec, resolve waivers for the
// waivered modes, fold the buckets into a verdict, and filter the result
// down to the mode's closed key set. It is a pure function of its inputs:
// identical (spec, candidates) pairs produce identical, order-identical
// evaluations.
//
// An internally inconsistent spec never aborts the run. It short-circuits
// into a failing, CR5-shaped result whose reason describes the
// configuration problem, because the surrounding framework must always
// receive a well-formed result to render.
func Evaluate(spec RequirementSpec, candidates any) Evaluation {
	sp := spec.withDefaults()
	if msg := sp.configProblem(); msg != "" {
		return configFailure(sp, msg)
	}

	cand := model.Normalize(candidates)
	b := classify(sp, cand)

	res := result{
		found:    b.found,
		missing:  b.missing,
		extra:    b.extra,
		searched: searchedFiles(cand),
	}

	var details []model.DetailItem
	switch {
	case sp.Mode.Waivered():
		failing := b.failing(sp)
		w := resolveWaivers(failing, sp.Waivers)
		res.waived = w.waived
		res.unused = w.unused
		replaceBucket(&res, failing, w.unwaived)
		res.pass, res.reason = verdict(sp, w.unwaived, b.extra, w.unused)
		details = buildDetails(sp, res, w)
	case sp.forcedPass():
		res.pass = true
		res.reason = "forced pass: failing items downgraded to INFO (waiver nominal value 0)"
		details = buildForcedPassDetails(sp, res)
	default:
		res.pass, res.reason = verdict(sp, b.failing(sp), b.extra, model.NewCollection())
		details = buildDetails(sp, res, waiverOutcome{})
	}

	return Evaluation{
		Pass:     res.pass,
		Reason:   res.reason,
		Filtered: filterView(sp.Mode, res.view()),
		Details:  details,
	}
}

// replaceBucket swaps the failing bucket's post-waiver remainder back into
// the result, so found_items/missing_items only list unwaived entries.
func replaceBucket(res *result, failing, unwaived *model.Collection) {
	switch failing {
	case res.found:
		res.found = unwaived
	case res.missing:
		res.missing = unwaived
	case res.extra:
		res.extra = unwaived
	}
}

// configFailure builds the short-circuit result for an inconsistent spec.
func configFailure(sp RequirementSpec, msg string) Evaluation {
	res := result{
		pass:    false,
		reason:  "configuration error: " + msg,
		found:   model.NewCollection(),
		missing: model.NewCollection(),
		extra:   model.NewCollection(),
	}
	if sp.Mode.Waivered() {
		res.waived = model.NewCollection()
		res.unused = model.NewCollection()
	}
	return Evaluation{
		Pass:     false,
		Reason:   res.reason,
		Filtered: filterView(sp.Mode, res.view()),
		Details: []model.DetailItem{{
			Name:     "configuration",
			Severity: model.SeverityError,
			Reason:   msg,
		}},
	}
}

// buildDetails renders every bucket into the audit detail sequence, in
// bucket order: found, missing, extra, waived, unused waivers. Severity is
// the only logic-relevant field; tags are opaque rendering hints. Under
// forbid polarity the roles invert: a present forbidden item is the
// failure, an absent one is clean.
func buildDetails(sp RequirementSpec, res result, w waiverOutcome) []model.DetailItem {
	foundSev, missingSev := model.SeverityInfo, model.SeverityFail
	if sp.forbids() {
		foundSev, missingSev = model.SeverityFail, model.SeverityInfo
	}
	var out []model.DetailItem
	res.found.Each(func(name string, meta model.Metadata) {
		out = append(out, model.Detail(name, meta, foundSev, foundReason(sp), ""))
	})
	res.missing.Each(func(name string, meta model.Metadata) {
		out = append(out, model.Detail(name, meta, missingSev, missingReason(sp, meta), ""))
	})
	res.extra.Each(func(name string, meta model.Metadata) {
		out = append(out, model.Detail(name, meta, sp.ExtraSeverity, "unexpected item outside the declared requirement", ""))
	})
	if w.waived != nil {
		w.waived.Each(func(name string, meta model.Metadata) {
			out = append(out, model.Detail(name, meta, model.SeverityInfo, "waived: "+w.reasons[name], model.TagWaiver))
		})
		w.unused.Each(func(name string, meta model.Metadata) {
			out = append(out, model.Detail(name, meta, model.SeverityWarn, "waiver matched no failing item", model.TagWaiver))
		})
	}
	return out
}

// buildForcedPassDetails renders the forced-pass sub-mode: every
// failing-bucket item becomes an INFO detail tagged WAIVED_AS_INFO, and
// the commentary waiver entries render as INFO tagged WAIVED_INFO without
// participating in any matching.
func buildForcedPassDetails(sp RequirementSpec, res result) []model.DetailItem {
	var out []model.DetailItem
	res.found.Each(func(name string, meta model.Metadata) {
		if sp.forbids() {
			out = append(out, model.Detail(name, meta, model.SeverityInfo, "forbidden item downgraded to INFO", model.TagWaivedAsInfo))
			return
		}
		out = append(out, model.Detail(name, meta, model.SeverityInfo, foundReason(sp), ""))
	})
	res.missing.Each(func(name string, meta model.Metadata) {
		if sp.forbids() {
			out = append(out, model.Detail(name, meta, model.SeverityInfo, missingReason(sp, meta), ""))
			return
		}
		out = append(out, model.Detail(name, meta, model.SeverityInfo, "failing item downgraded to INFO", model.TagWaivedAsInfo))
	})
	res.extra.Each(func(name string, meta model.Metadata) {
		out = append(out, model.Detail(name, meta, model.SeverityInfo, "unexpected item downgraded to INFO", model.TagWaivedAsInfo))
	})
	for _, entry := range sp.Waivers {
		out = append(out, model.DetailItem{
			Name:     entry.Name,
			Severity: model.SeverityInfo,
			Reason:   entry.Reason,
			Tag:      model.TagWaivedInfo,
		})
	}
	return out
}

func foundReason(sp RequirementSpec) string {
	if sp.forbids() {
		return "forbidden item present among candidates"
	}
	if sp.Semantics == SearchStatus && !sp.Mode.boolean() {
		return "status matches expected value"
	}
	return "requirement satisfied"
}

func missingReason(sp RequirementSpec, meta model.Metadata) string {
	if sp.forbids() {
		return "forbidden item absent"
	}
	if sp.Mode.boolean() {
		return "boolean requirement not met"
	}
	if sp.Semantics == SearchStatus {
		return fmt.Sprintf("status %q does not match expected value", meta.Status)
	}
	return "required item not found among candidates"
}
