// Package findings loads the candidate findings handed to the engine: one
// generic document mapping checker ids to the items an external parsing
// stage extracted from design and tool reports. There is deliberately no
// tool-specific parsing here; adapters for individual report formats live
// outside this repository.
//
// The document is YAML; because YAML is a superset of JSON the same loader
// accepts JSON exports unchanged.
package findings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"signoff/internal/model"
)

// Document holds the candidate items per checker id.
type Document struct {
	candidates map[string]*model.Collection
}

type rawDocument struct {
	Checkers map[string]any `yaml:"checkers"`
}

// Load reads and parses a findings file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read findings: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("findings %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a findings document. Each checker's items may be a bare
// name sequence or a name-to-metadata mapping; both pass through the
// normalization boundary here, once.
func Parse(data []byte) (*Document, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse findings YAML: %w", err)
	}
	doc := &Document{candidates: make(map[string]*model.Collection, len(raw.Checkers))}
	for id, items := range raw.Checkers {
		doc.candidates[id] = model.Normalize(items)
	}
	return doc, nil
}

// For returns the candidates recorded for a checker id. An id the document
// never mentions yields an empty collection: absent findings are a valid,
// well-defined state, not an error.
func (d *Document) For(id string) *model.Collection {
	if d == nil {
		return model.NewCollection()
	}
	if c, ok := d.candidates[id]; ok {
		return c
	}
	return model.NewCollection()
}

// Len returns the number of checker ids with recorded candidates.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.candidates)
}
