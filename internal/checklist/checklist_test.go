package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signoff/internal/checker"
)

const sampleChecklist = `
version: 1
name: tapeout_signoff
checkers:
  - id: check_library_files
    description: required library views present
    mode: 3
    nominal_value: 2
    pattern_items:
      - top.lib
      - top.lef
    waivers:
      - name: top.lef
        reason: abstract pending, approved by review board
    waiver_nominal_value: 1
  - id: check_drc_clean
    mode: 2
    polarity: forbid
    pattern_items:
      - drc_violation
  - id: check_corner_status
    mode: 2
    search: status_check
    pattern_items:
      - corner_ss: {status: clean}
      - corner_ff: {status: clean}
`

func TestParseChecklist(t *testing.T) {
	cl, err := Parse([]byte(sampleChecklist))
	require.NoError(t, err)
	require.Len(t, cl.Checkers, 3)
	assert.Equal(t, "tapeout_signoff", cl.Name)

	lib := cl.Checkers[0]
	assert.Equal(t, "check_library_files", lib.ID)
	assert.Equal(t, checker.ModePatternWaiver, lib.Spec.Mode)
	require.NotNil(t, lib.Spec.NominalValue)
	assert.Equal(t, 2, *lib.Spec.NominalValue)

	// Sequence form preserves declaration order through normalization.
	assert.Equal(t, []string{"top.lib", "top.lef"}, lib.Spec.PatternItems.Names())
	require.Len(t, lib.Spec.Waivers, 1)
	assert.Equal(t, "top.lef", lib.Spec.Waivers[0].Name)

	drc := cl.Checkers[1]
	assert.Equal(t, checker.PolarityForbid, drc.Spec.Polarity)

	corner := cl.Checkers[2]
	assert.Equal(t, checker.SearchStatus, corner.Spec.Semantics)
	meta, ok := corner.Spec.PatternItems.Get("corner_ss")
	require.True(t, ok)
	assert.Equal(t, "clean", meta.Status)
}

func TestParseRejectsStructuralProblems(t *testing.T) {
	t.Run("no checkers", func(t *testing.T) {
		_, err := Parse([]byte("version: 1\ncheckers: []\n"))
		require.Error(t, err)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := Parse([]byte("checkers:\n  - mode: 1\n"))
		require.ErrorContains(t, err, "no id")
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := Parse([]byte("checkers:\n  - id: a\n    mode: 1\n  - id: a\n    mode: 2\n"))
		require.ErrorContains(t, err, "duplicate")
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Parse([]byte("checkers: [\n"))
		require.Error(t, err)
	})
}

// Semantic problems pass through untouched so the engine can report them
// in the normal CR5 shape.
func TestParseKeepsSemanticProblems(t *testing.T) {
	cl, err := Parse([]byte("checkers:\n  - id: odd\n    mode: 9\n"))
	require.NoError(t, err)
	require.Len(t, cl.Checkers, 1)
	assert.NotEmpty(t, cl.Checkers[0].Spec.Validate())

	ev := checker.Evaluate(cl.Checkers[0].Spec, nil)
	assert.False(t, ev.Pass)
	assert.Contains(t, ev.Reason, "unrecognized mode")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does/not/exist.yaml")
	require.Error(t, err)
}
