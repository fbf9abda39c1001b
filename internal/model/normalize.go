package model

import (
	"fmt"
	"slices"
)

// Normalize is the single normalization boundary for item-shaped input.
// It accepts the ad hoc shapes the surrounding framework produces — a bare
// name sequence, a name-to-metadata mapping, an existing Collection, or
// nothing at all — and canonicalizes them into one ordered Collection.
// Every item-typed argument of every public operation passes through here
// exactly once, so no later stage branches on input shape.
//
// Absent or empty input yields an empty collection, never an error.
// Unrecognized element types are kept by their string rendering rather
// than dropped, so a malformed config line still surfaces in the report.
func Normalize(v any) *Collection {
	out := NewCollection()
	switch in := v.(type) {
	case nil:
		return out
	case *Collection:
		if in == nil {
			return out
		}
		return in.Clone()
	case Collection:
		return in.Clone()
	case []string:
		for _, name := range in {
			out.Set(name, Metadata{})
		}
	case []any:
		for _, el := range in {
			name, meta := splitElement(el)
			out.Set(name, meta)
		}
	case map[string]Metadata:
		// Plain maps carry no order, so the canonical order is sorted names.
		// Map iteration order must never leak into a Collection: identical
		// input has to normalize to an identical collection every time.
		for _, name := range sortedKeys(in) {
			out.Set(name, in[name])
		}
	case map[string]any:
		for _, name := range sortedKeys(in) {
			out.Set(name, coerceMetadata(in[name]))
		}
	default:
		out.Set(fmt.Sprintf("%v", v), Metadata{})
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// splitElement turns one sequence element into a (name, metadata) pair.
// Elements are either bare names or single-pair mappings {name: metadata}.
func splitElement(el any) (string, Metadata) {
	switch e := el.(type) {
	case string:
		return e, Metadata{}
	case map[string]any:
		for name, raw := range e {
			if len(e) == 1 {
				return name, coerceMetadata(raw)
			}
		}
		return fmt.Sprintf("%v", e), Metadata{}
	default:
		return fmt.Sprintf("%v", el), Metadata{}
	}
}

// coerceMetadata maps loosely-typed decoder output onto Metadata. Known
// keys land in the typed fields; everything else is preserved in Attrs.
func coerceMetadata(raw any) Metadata {
	switch m := raw.(type) {
	case nil:
		return Metadata{}
	case Metadata:
		return m
	case map[string]any:
		var meta Metadata
		for k, v := range m {
			switch k {
			case "source_file":
				meta.SourceFile = fmt.Sprintf("%v", v)
			case "line_number":
				if n, ok := v.(int); ok {
					meta.LineNumber = n
				}
			case "status":
				meta.Status = fmt.Sprintf("%v", v)
			case "note":
				meta.Note = fmt.Sprintf("%v", v)
			default:
				if meta.Attrs == nil {
					meta.Attrs = make(map[string]string)
				}
				meta.Attrs[k] = fmt.Sprintf("%v", v)
			}
		}
		return meta
	default:
		return Metadata{Note: fmt.Sprintf("%v", raw)}
	}
}
