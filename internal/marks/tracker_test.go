package marks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerBeforeFirstEvent(t *testing.T) {
	tr := NewTracker()

	_, ok := tr.Current()
	assert.False(t, ok)

	// Navigation controls default to enabled until the position is known.
	assert.False(t, tr.AtStart())
	assert.False(t, tr.AtEnd())
	assert.False(t, tr.IsCurrentMarked(NewStore()))
}

func TestTrackerLastWriteWins(t *testing.T) {
	tr := NewTracker()
	tr.Observe(Position{Range: Range{Start: "1/0", End: "1/40"}, PageIndex: 0, LastPage: 9})
	tr.Observe(Position{Range: Range{Start: "2/0", End: "2/40"}, PageIndex: 4, LastPage: 9})

	pos, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, 4, pos.PageIndex)
	assert.Equal(t, "2/0", pos.Range.Start)
}

func TestTrackerBoundaries(t *testing.T) {
	tr := NewTracker()

	tr.Observe(Position{Range: Range{Start: "0/0", End: "0/40"}, PageIndex: 0, LastPage: 9})
	assert.True(t, tr.AtStart())
	assert.False(t, tr.AtEnd())

	tr.Observe(Position{Range: Range{Start: "5/0", End: "5/40"}, PageIndex: 5, LastPage: 9})
	assert.False(t, tr.AtStart())
	assert.False(t, tr.AtEnd())

	tr.Observe(Position{Range: Range{Start: "9/0", End: "9/40"}, PageIndex: 9, LastPage: 9})
	assert.False(t, tr.AtStart())
	assert.True(t, tr.AtEnd())
}

func TestTrackerSinglePageBook(t *testing.T) {
	tr := NewTracker()
	tr.Observe(Position{Range: Range{Start: "0/0", End: "0/12"}, PageIndex: 0, LastPage: 0})
	assert.True(t, tr.AtStart())
	assert.True(t, tr.AtEnd())
}

func TestTrackerIsCurrentMarkedNeverCached(t *testing.T) {
	tr := NewTracker()
	s := NewStore()
	r := Range{Start: "2/0", End: "2/40"}
	tr.Observe(Position{Range: r, PageIndex: 2, LastPage: 9})

	assert.False(t, tr.IsCurrentMarked(s))

	// Store mutations are reflected immediately, no invalidation step.
	require.NoError(t, s.Add(Mark{ID: "a", Kind: KindBookmark, Range: r}))
	assert.True(t, tr.IsCurrentMarked(s))

	s.Remove("a")
	assert.False(t, tr.IsCurrentMarked(s))
}

func TestToggleBookmarkInvolution(t *testing.T) {
	s := NewStore()
	tr := NewTracker()
	r := Range{Start: "3/0", End: "3/40"}
	tr.Observe(Position{Range: r, PageIndex: 3, LastPage: 9})

	// Odd number of toggles leaves exactly one mark at the range.
	m, added, err := ToggleBookmark(s, tr, "page text", "Chapter 3")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, KindBookmark, m.Kind)
	assert.Equal(t, r, m.Range)
	assert.True(t, tr.IsCurrentMarked(s))

	// Even number is a net no-op.
	removed, added, err := ToggleBookmark(s, tr, "page text", "Chapter 3")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, m.ID, removed.ID)
	assert.False(t, tr.IsCurrentMarked(s))
	assert.Equal(t, 0, s.Len())

	_, _, err = ToggleBookmark(s, tr, "page text", "Chapter 3")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestToggleBookmarkNoPosition(t *testing.T) {
	_, _, err := ToggleBookmark(NewStore(), NewTracker(), "", "")
	assert.ErrorIs(t, err, ErrNoPosition)
}

func TestToggleBookmarkLeavesOtherMarks(t *testing.T) {
	s := NewStore()
	tr := NewTracker()
	other := Mark{ID: "other", Kind: KindBookmark, Range: Range{Start: "1/0", End: "1/40"}}
	require.NoError(t, s.Add(other))

	r := Range{Start: "2/0", End: "2/40"}
	tr.Observe(Position{Range: r, PageIndex: 2, LastPage: 9})

	_, _, err := ToggleBookmark(s, tr, "", "")
	require.NoError(t, err)
	_, _, err = ToggleBookmark(s, tr, "", "")
	require.NoError(t, err)

	got := s.List()
	require.Len(t, got, 1)
	assert.Equal(t, "other", got[0].ID)
}
