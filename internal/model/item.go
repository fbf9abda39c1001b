package model

import (
	"encoding/json"
	"fmt"
)

// Metadata carries provenance for one item. It never participates in
// pass/fail decisions; the classifier reads Status only under the
// status-check search semantics, where it is the compared value rather
// than provenance.
type Metadata struct {
	SourceFile string            `yaml:"source_file,omitempty" json:"source_file,omitempty"`
	LineNumber int               `yaml:"line_number,omitempty" json:"line_number,omitempty"`
	Status     string            `yaml:"status,omitempty" json:"status,omitempty"`
	Note       string            `yaml:"note,omitempty" json:"note,omitempty"`
	Attrs      map[string]string `yaml:",inline" json:"attrs,omitempty"`
}

// IsZero reports whether the metadata carries no information at all.
func (m Metadata) IsZero() bool {
	return m.SourceFile == "" && m.LineNumber == 0 && m.Status == "" && m.Note == "" && len(m.Attrs) == 0
}

func (m Metadata) equal(o Metadata) bool {
	if m.SourceFile != o.SourceFile || m.LineNumber != o.LineNumber || m.Status != o.Status || m.Note != o.Note {
		return false
	}
	if len(m.Attrs) != len(o.Attrs) {
		return false
	}
	for k, v := range m.Attrs {
		if o.Attrs[k] != v {
			return false
		}
	}
	return true
}

// Collection is an insertion-ordered mapping from item name to metadata.
// It is the sole canonical item shape inside the engine: names are unique
// within one collection and iteration order is the order names were first
// added, so reports reproduce byte-for-byte across runs.
type Collection struct {
	names []string
	items map[string]Metadata
}

// NewCollection returns an empty collection ready for Set calls.
func NewCollection() *Collection {
	return &Collection{items: make(map[string]Metadata)}
}

// Len returns the number of items. Safe on a nil collection.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Empty reports whether the collection holds no items.
func (c *Collection) Empty() bool { return c.Len() == 0 }

// Names returns the item names in insertion order. The slice is a copy.
func (c *Collection) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Has reports whether name is present.
func (c *Collection) Has(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.items[name]
	return ok
}

// Get returns the metadata for name and whether it is present.
func (c *Collection) Get(name string) (Metadata, bool) {
	if c == nil {
		return Metadata{}, false
	}
	m, ok := c.items[name]
	return m, ok
}

// Set inserts or replaces the entry for name. A repeated name with
// conflicting metadata resolves last-write-wins, and the surviving entry
// gets a WARN note recording the collision. Repeating a name with equal
// metadata is a no-op.
func (c *Collection) Set(name string, meta Metadata) {
	if c.items == nil {
		c.items = make(map[string]Metadata)
	}
	prev, exists := c.items[name]
	if !exists {
		c.names = append(c.names, name)
		c.items[name] = meta
		return
	}
	if prev.equal(meta) {
		return
	}
	if meta.Note == "" {
		meta.Note = fmt.Sprintf("WARN: duplicate item %q redefined with conflicting metadata; last definition kept", name)
	} else {
		meta.Note += fmt.Sprintf(" (WARN: duplicate item %q redefined with conflicting metadata; last definition kept)", name)
	}
	c.items[name] = meta
}

// Each calls fn for every item in insertion order. Safe on nil.
func (c *Collection) Each(fn func(name string, meta Metadata)) {
	if c == nil {
		return
	}
	for _, n := range c.names {
		fn(n, c.items[n])
	}
}

// Clone returns an independent copy preserving order.
func (c *Collection) Clone() *Collection {
	out := NewCollection()
	c.Each(func(name string, meta Metadata) {
		if meta.Attrs != nil {
			attrs := make(map[string]string, len(meta.Attrs))
			for k, v := range meta.Attrs {
				attrs[k] = v
			}
			meta.Attrs = attrs
		}
		out.Set(name, meta)
	})
	return out
}

// MarshalJSON renders the collection as a JSON object whose member order
// is the insertion order. Empty and nil collections render as {}.
func (c *Collection) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	first := true
	var encErr error
	c.Each(func(name string, meta Metadata) {
		if encErr != nil {
			return
		}
		if !first {
			buf = append(buf, ',')
		}
		first = false
		key, err := json.Marshal(name)
		if err != nil {
			encErr = err
			return
		}
		val, err := json.Marshal(meta)
		if err != nil {
			encErr = err
			return
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	})
	if encErr != nil {
		return nil, encErr
	}
	return append(buf, '}'), nil
}
