package checker

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"signoff/internal/model"
)

// CR5 closure: for every mode, the filtered key set equals the mode's
// allow-list exactly, even when the internal result carries bookkeeping.
func TestFilteredKeySetClosedPerMode(t *testing.T) {
	specs := map[Mode]RequirementSpec{
		ModeBoolean: {Mode: ModeBoolean},
		ModePattern: {Mode: ModePattern, PatternItems: model.Normalize([]string{"X"})},
		ModePatternWaiver: {
			Mode:         ModePatternWaiver,
			PatternItems: model.Normalize([]string{"X"}),
			Waivers:      []model.WaiverEntry{{Name: "X", Reason: "r"}},
		},
		ModeBooleanWaiver: {
			Mode:    ModeBooleanWaiver,
			Waivers: []model.WaiverEntry{{Name: "requirement_not_met", Reason: "r"}},
		},
	}

	cand := model.NewCollection()
	cand.Set("X", model.Metadata{SourceFile: "a.rpt"})
	cand.Set("stray", model.Metadata{SourceFile: "b.rpt"})

	for mode, spec := range specs {
		ev := Evaluate(spec, cand)
		if diff := cmp.Diff(AllowedKeys(mode), ev.Filtered.Keys()); diff != "" {
			t.Fatalf("%s key set not closed (-want +got):\n%s", mode, diff)
		}
		if missing, leaked := ValidateShape(mode, ev.Filtered.Keys()); len(missing) != 0 || len(leaked) != 0 {
			t.Fatalf("%s shape invalid: missing=%v leaked=%v", mode, missing, leaked)
		}
	}
}

// The filter drops bookkeeping unconditionally and fills absent
// allow-listed keys with empty defaults; status defaults to the explicit
// UNKNOWN sentinel, never absent.
func TestFilterViewDropsBookkeepingAndFillsDefaults(t *testing.T) {
	view := map[string]any{
		"found_items":    model.Normalize([]string{"a"}),
		"searched_files": []string{"x.rpt", "y.rpt"},
		"reason":         "internal text",
		"scratch":        42,
	}
	out := filterView(ModePatternWaiver, view)

	want := []string{"status", "found_items", "missing_items", "extra_items", "waived", "unused_waivers"}
	if diff := cmp.Diff(want, out.Keys()); diff != "" {
		t.Fatalf("key set (-want +got):\n%s", diff)
	}
	if out.Status() != StatusUnknown {
		t.Fatalf("absent status must default to UNKNOWN, got %q", out.Status())
	}
	if got := out.Items("missing_items"); !got.Empty() {
		t.Fatalf("absent bucket must default empty, got %v", got.Names())
	}
	if _, ok := out.Get("searched_files"); ok {
		t.Fatalf("bookkeeping leaked through the filter")
	}
	if _, ok := out.Get("reason"); ok {
		t.Fatalf("reason leaked through the filter")
	}
}

func TestValidateShapeReportsExactDeltas(t *testing.T) {
	missing, leaked := ValidateShape(ModePattern, []string{"status", "found_items", "searched_files"})

	if diff := cmp.Diff([]string{"missing_items", "extra_items"}, missing); diff != "" {
		t.Fatalf("missing keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"searched_files"}, leaked); diff != "" {
		t.Fatalf("leaked keys (-want +got):\n%s", diff)
	}
}

func TestFilteredResultJSONKeyOrder(t *testing.T) {
	ev := Evaluate(RequirementSpec{Mode: ModeBoolean}, []string{"a"})
	out, err := ev.Filtered.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"status":"PASS","found_items":{"a":{}},"missing_items":{}}`
	if string(out) != want {
		t.Fatalf("unexpected JSON:\nwant: %s\ngot:  %s", want, out)
	}
}

func TestModeFourHasNoExtraKey(t *testing.T) {
	for _, k := range AllowedKeys(ModeBooleanWaiver) {
		if k == "extra_items" {
			t.Fatalf("mode 4 contract must not include extra_items")
		}
	}
}
