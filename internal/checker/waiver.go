package checker

import "signoff/internal/model"

// waiverOutcome is the partition of the pre-waiver failing bucket.
type waiverOutcome struct {
	// waived holds failing items released by a matching waiver entry.
	waived *model.Collection
	// unwaived holds failing items no waiver covers; any entry here fails
	// the check.
	unwaived *model.Collection
	// unused holds waiver entries that matched nothing.
	unused *model.Collection
	// reasons maps each waived name to the waiver's recorded approval
	// reason, for the audit detail.
	reasons map[string]string
}

// resolveWaivers partitions the failing bucket using the spec's waiver
// list. A waiver exempts a failure condition and nothing else: matching is
// exact name equality against the failing bucket, on the same semantic
// value the bucket was built from. Items in the clean buckets are never
// considered, so a waiver can neither flip a pass to fail nor be consumed
// by a passing item — entries that match no failing item are reported as
// unused, not applied elsewhere.
func resolveWaivers(failing *model.Collection, waivers []model.WaiverEntry) waiverOutcome {
	out := waiverOutcome{
		waived:   model.NewCollection(),
		unwaived: model.NewCollection(),
		unused:   model.NewCollection(),
		reasons:  make(map[string]string),
	}

	matched := make(map[string]bool, len(waivers))
	for _, w := range waivers {
		if failing.Has(w.Name) && !matched[w.Name] {
			matched[w.Name] = true
			out.reasons[w.Name] = w.Reason
		}
	}

	failing.Each(func(name string, meta model.Metadata) {
		if matched[name] {
			out.waived.Set(name, meta)
		} else {
			out.unwaived.Set(name, meta)
		}
	})

	for _, w := range waivers {
		if !matched[w.Name] {
			out.unused.Set(w.Name, model.Metadata{Note: w.Reason})
		}
	}
	return out
}
