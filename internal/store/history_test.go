package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "audit", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestRecordAndRecent(t *testing.T) {
	h := openTestHistory(t)

	entries := []Entry{
		{RunID: "run-1", Checklist: "tapeout", CheckerID: "check_a", Status: "PASS", Reason: "all requirements satisfied", Found: 2},
		{RunID: "run-1", Checklist: "tapeout", CheckerID: "check_b", Status: "FAIL", Reason: "1 failing item(s): top.lef", Missing: 1},
	}
	require.NoError(t, h.Record(entries))

	got, err := h.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Most recent first.
	assert.Equal(t, "check_b", got[0].CheckerID)
	assert.Equal(t, "FAIL", got[0].Status)
	assert.Equal(t, 1, got[0].Missing)
	assert.Equal(t, "check_a", got[1].CheckerID)
	assert.Equal(t, 2, got[1].Found)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestRecordEmptyIsNoOp(t *testing.T) {
	h := openTestHistory(t)
	require.NoError(t, h.Record(nil))

	got, err := h.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecentLimit(t *testing.T) {
	h := openTestHistory(t)
	var entries []Entry
	for i := 0; i < 5; i++ {
		entries = append(entries, Entry{RunID: "run-1", CheckerID: "c", Status: "PASS"})
	}
	require.NoError(t, h.Record(entries))

	got, err := h.Recent(3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestOpenCreatesSchemaIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	h1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, h1.Record([]Entry{{RunID: "r", CheckerID: "c", Status: "PASS"}}))
	require.NoError(t, h1.Close())

	h2, err := Open(path)
	require.NoError(t, err)
	defer h2.Close()

	got, err := h2.Recent(10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
