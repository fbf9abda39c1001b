package findings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFindings = `
checkers:
  check_library_files:
    - top.lib
    - top.lef: {source_file: runs/lib_scan.rpt, line_number: 12}
  check_drc_clean: []
`

func TestParseFindings(t *testing.T) {
	doc, err := Parse([]byte(sampleFindings))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Len())

	lib := doc.For("check_library_files")
	assert.Equal(t, []string{"top.lib", "top.lef"}, lib.Names())

	meta, ok := lib.Get("top.lef")
	require.True(t, ok)
	assert.Equal(t, "runs/lib_scan.rpt", meta.SourceFile)
	assert.Equal(t, 12, meta.LineNumber)
}

func TestForUnknownCheckerIsEmptyNotError(t *testing.T) {
	doc, err := Parse([]byte(sampleFindings))
	require.NoError(t, err)
	assert.True(t, doc.For("never_mentioned").Empty())

	var nilDoc *Document
	assert.True(t, nilDoc.For("anything").Empty())
}

// YAML being a superset of JSON, tool exports in JSON load unchanged.
func TestParseAcceptsJSON(t *testing.T) {
	doc, err := Parse([]byte(`{"checkers": {"check_x": ["a", "b"]}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, doc.For("check_x").Names())
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFindings), 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("no/such/findings.yaml")
	require.Error(t, err)
}
