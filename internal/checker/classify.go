package checker

import "signoff/internal/model"

// buckets is the pre-waiver classification: every candidate and pattern
// item lands in exactly one of found/missing/extra (status-check ignores
// out-of-pattern candidates entirely, so they land nowhere).
type buckets struct {
	found   *model.Collection
	missing *model.Collection
	extra   *model.Collection
}

func newBuckets() buckets {
	return buckets{
		found:   model.NewCollection(),
		missing: model.NewCollection(),
		extra:   model.NewCollection(),
	}
}

// failing returns the bucket that carries this spec's failure condition.
// Waiver resolution operates on this bucket and this bucket only: items in
// the clean buckets are never subject to waiver matching.
func (b buckets) failing(spec RequirementSpec) *model.Collection {
	if spec.forbids() {
		return b.found
	}
	return b.missing
}

// classify computes the pre-waiver buckets for any mode.
func classify(spec RequirementSpec, candidates *model.Collection) buckets {
	if spec.Mode.boolean() {
		return classifyBoolean(spec, candidates)
	}
	if spec.Semantics == SearchStatus {
		return classifyStatus(spec, candidates)
	}
	return classifyExistence(spec, candidates)
}

// classifyBoolean handles modes 1 and 4. The checker-specific logic ran
// before the engine and encoded its outcome on the candidates themselves:
// a candidate with status "missing" (or "fail") is a failing finding, one
// with status "extra" is an unexpected finding, anything else was found.
// An empty candidate set is the boolean failure; it is represented by the
// spec's synthetic failure item so waivers have a stable name to match.
func classifyBoolean(spec RequirementSpec, candidates *model.Collection) buckets {
	b := newBuckets()
	candidates.Each(func(name string, meta model.Metadata) {
		switch meta.Status {
		case "missing", "fail", "failed":
			b.missing.Set(name, meta)
		case "extra", "unexpected":
			b.extra.Set(name, meta)
		default:
			b.found.Set(name, meta)
		}
	})
	if b.found.Empty() && b.missing.Empty() && b.extra.Empty() {
		b.missing.Set(spec.FailureItem, model.Metadata{})
	}
	return b
}

// classifyExistence handles modes 2 and 3 under existence semantics.
// Every pattern item is resolved against the candidates with the spec's
// match strategy; candidates claimed by no pattern are extra. The found
// bucket is keyed by pattern name and carries the matched candidate's
// metadata, so provenance survives into the report.
func classifyExistence(spec RequirementSpec, candidates *model.Collection) buckets {
	b := newBuckets()
	names := candidates.Names()
	claimed := make(map[string]bool, len(names))
	spec.PatternItems.Each(func(pattern string, pmeta model.Metadata) {
		match, ok := bestMatch(pattern, names, claimed, spec.Match)
		if !ok {
			b.missing.Set(pattern, pmeta)
			return
		}
		claimed[match] = true
		cmeta, _ := candidates.Get(match)
		if cmeta.IsZero() {
			cmeta = pmeta
		}
		b.found.Set(pattern, cmeta)
	})
	// Under forbid polarity the pattern items are prohibitions; candidates
	// that match none of them are unremarkable, not unexpected. Only the
	// require polarity reports unmatched candidates as extra.
	if spec.Polarity == PolarityRequire {
		candidates.Each(func(name string, meta model.Metadata) {
			if !claimed[name] {
				b.extra.Set(name, meta)
			}
		})
	}
	return b
}

// classifyStatus handles modes 2 and 3 under status semantics: only
// candidates named by a pattern item are considered, compared on recorded
// versus expected status; everything else is ignored and reported in no
// bucket at all.
func classifyStatus(spec RequirementSpec, candidates *model.Collection) buckets {
	b := newBuckets()
	spec.PatternItems.Each(func(pattern string, pmeta model.Metadata) {
		cmeta, ok := candidates.Get(pattern)
		if !ok {
			return
		}
		if cmeta.Status == pmeta.Status {
			b.found.Set(pattern, cmeta)
		} else {
			b.missing.Set(pattern, cmeta)
		}
	})
	return b
}

// searchedFiles collects the distinct source files the candidates came
// from, in first-seen order. Pure bookkeeping: it rides on the internal
// result and is dropped unconditionally by the output filter.
func searchedFiles(candidates *model.Collection) []string {
	var files []string
	seen := make(map[string]bool)
	candidates.Each(func(_ string, meta model.Metadata) {
		if meta.SourceFile == "" || seen[meta.SourceFile] {
			return
		}
		seen[meta.SourceFile] = true
		files = append(files, meta.SourceFile)
	})
	return files
}
