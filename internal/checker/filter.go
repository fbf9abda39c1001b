package checker

import (
	"encoding/json"

	"signoff/internal/model"
)

// Status values carried under the "status" output key. StatusUnknown is an
// explicit sentinel filled in when an internal result somehow lacks a
// verdict; the key is never absent or null.
const (
	StatusPass    = "PASS"
	StatusFail    = "FAIL"
	StatusUnknown = "UNKNOWN"
)

// Output key names. keyOrder fixes their rendering order for every mode.
const (
	keyStatus        = "status"
	keyFound         = "found_items"
	keyMissing       = "missing_items"
	keyExtra         = "extra_items"
	keyWaived        = "waived"
	keyUnusedWaivers = "unused_waivers"
)

var keyOrder = []string{keyStatus, keyFound, keyMissing, keyExtra, keyWaived, keyUnusedWaivers}

// AllowedKeys returns the closed key contract for a mode. This is a strict
// allow-list: the filtered output carries exactly these keys, no more, no
// fewer. Unknown modes get the minimal mode-1 shape so that even a
// misconfigured checker still emits a well-formed result.
func AllowedKeys(m Mode) []string {
	switch m {
	case ModePattern:
		return []string{keyStatus, keyFound, keyMissing, keyExtra}
	case ModePatternWaiver:
		return []string{keyStatus, keyFound, keyMissing, keyExtra, keyWaived, keyUnusedWaivers}
	case ModeBooleanWaiver:
		return []string{keyStatus, keyFound, keyMissing, keyWaived, keyUnusedWaivers}
	default:
		return []string{keyStatus, keyFound, keyMissing}
	}
}

// FilteredResult is the final, closed-shape output of one evaluation: an
// ordered key/value view whose key set equals the mode's allow-list
// exactly. Values are the status string or item collections.
type FilteredResult struct {
	keys   []string
	values map[string]any
}

// Keys returns the output keys in rendering order.
func (r *FilteredResult) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Get returns the value stored under key.
func (r *FilteredResult) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Status returns the verdict string (PASS, FAIL, or UNKNOWN).
func (r *FilteredResult) Status() string {
	if s, ok := r.values[keyStatus].(string); ok {
		return s
	}
	return StatusUnknown
}

// Items returns the collection stored under key, or an empty collection
// when the key holds the status string or is absent.
func (r *FilteredResult) Items(key string) *model.Collection {
	if c, ok := r.values[key].(*model.Collection); ok {
		return c
	}
	return model.NewCollection()
}

// MarshalJSON renders the result as an object in fixed key order.
func (r *FilteredResult) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range r.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

// filterView intersects an internal result view with the mode's allow-list.
// Allow-listed keys absent from the view get an empty-collection default
// (StatusUnknown for the status key); everything outside the allow-list —
// searched_files and any other bookkeeping — is dropped unconditionally.
func filterView(m Mode, view map[string]any) *FilteredResult {
	allowed := make(map[string]bool)
	for _, k := range AllowedKeys(m) {
		allowed[k] = true
	}
	out := &FilteredResult{values: make(map[string]any)}
	for _, k := range keyOrder {
		if !allowed[k] {
			continue
		}
		out.keys = append(out.keys, k)
		if v, ok := view[k]; ok && v != nil {
			out.values[k] = v
			continue
		}
		if k == keyStatus {
			out.values[k] = StatusUnknown
		} else {
			out.values[k] = model.NewCollection()
		}
	}
	return out
}

// ValidateShape re-derives the mode's allow-list and reports exactly which
// required keys are missing from a candidate output and which present keys
// leaked past the contract. Test tooling only; the hot path never calls it.
func ValidateShape(m Mode, keys []string) (missing, leaked []string) {
	allowed := make(map[string]bool)
	for _, k := range AllowedKeys(m) {
		allowed[k] = true
	}
	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
		if !allowed[k] {
			leaked = append(leaked, k)
		}
	}
	for _, k := range AllowedKeys(m) {
		if !present[k] {
			missing = append(missing, k)
		}
	}
	return missing, leaked
}
