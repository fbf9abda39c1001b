package model

import (
	"encoding/json"
	"testing"
)

func TestCollectionPreservesInsertionOrder(t *testing.T) {
	c := NewCollection()
	c.Set("zeta", Metadata{})
	c.Set("alpha", Metadata{})
	c.Set("mid", Metadata{})

	got := c.Names()
	want := []string{"zeta", "alpha", "mid"}
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("name[%d]: want %q, got %q", i, want[i], got[i])
		}
	}
}

func TestCollectionDuplicateLastWriteWins(t *testing.T) {
	c := NewCollection()
	c.Set("a", Metadata{SourceFile: "one.rpt"})
	c.Set("a", Metadata{SourceFile: "two.rpt"})

	if c.Len() != 1 {
		t.Fatalf("expected 1 item after duplicate set, got %d", c.Len())
	}
	meta, ok := c.Get("a")
	if !ok {
		t.Fatalf("expected item a to survive")
	}
	if meta.SourceFile != "two.rpt" {
		t.Fatalf("expected last write to win, got source %q", meta.SourceFile)
	}
	if meta.Note == "" {
		t.Fatalf("expected a WARN note on the surviving entry")
	}
}

func TestCollectionDuplicateIdenticalIsNoOp(t *testing.T) {
	c := NewCollection()
	c.Set("a", Metadata{SourceFile: "one.rpt"})
	c.Set("a", Metadata{SourceFile: "one.rpt"})

	meta, _ := c.Get("a")
	if meta.Note != "" {
		t.Fatalf("identical duplicate must not attach a note, got %q", meta.Note)
	}
}

func TestCollectionNilSafety(t *testing.T) {
	var c *Collection
	if c.Len() != 0 || !c.Empty() {
		t.Fatalf("nil collection must be empty")
	}
	if c.Has("x") {
		t.Fatalf("nil collection must not contain items")
	}
	c.Each(func(string, Metadata) { t.Fatalf("nil collection must not iterate") })
}

func TestCollectionMarshalJSONOrder(t *testing.T) {
	c := NewCollection()
	c.Set("b", Metadata{})
	c.Set("a", Metadata{SourceFile: "x.rpt", LineNumber: 3})

	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"b":{},"a":{"source_file":"x.rpt","line_number":3}}`
	if string(out) != want {
		t.Fatalf("unexpected JSON:\nwant: %s\ngot:  %s", want, out)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := NewCollection()
	c.Set("a", Metadata{Attrs: map[string]string{"k": "v"}})

	cl := c.Clone()
	cl.Set("b", Metadata{})
	meta, _ := cl.Get("a")
	meta.Attrs["k"] = "changed"

	if c.Len() != 1 {
		t.Fatalf("clone mutation leaked into original: %d items", c.Len())
	}
	orig, _ := c.Get("a")
	if orig.Attrs["k"] != "v" {
		t.Fatalf("clone attrs share storage with original")
	}
}
