package marks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftIsolation(t *testing.T) {
	s := NewStore()
	d := NewDraft(s)
	r := Range{Start: "3/10", End: "3/24"}

	require.NoError(t, d.Begin(r, "a memorable sentence", "Chapter 3"))

	// Drafts never leak into the store.
	_, ok := s.FindByRange(r)
	assert.False(t, ok)
	assert.Empty(t, s.List())

	m, err := d.Commit("worth keeping", "green")
	require.NoError(t, err)

	got, ok := s.FindByRange(r)
	require.True(t, ok)
	assert.Equal(t, m, got)
	assert.Equal(t, KindHighlight, got.Kind)
	assert.Equal(t, "green", got.Color)
	assert.Equal(t, "worth keeping", got.Note)
	assert.Equal(t, "a memorable sentence", got.AnchorText)
	assert.Equal(t, "Chapter 3", got.SectionLabel)
}

func TestDraftSingle(t *testing.T) {
	s := NewStore()
	d := NewDraft(s)
	r1 := Range{Start: "1/0", End: "1/5"}

	require.NoError(t, d.Begin(r1, "first", "One"))

	err := d.Begin(Range{Start: "2/0", End: "2/5"}, "second", "Two")
	require.ErrorIs(t, err, ErrInvalidState)

	// The original draft is unaffected.
	got, ok := d.Range()
	require.True(t, ok)
	assert.Equal(t, r1, got)
	assert.Equal(t, "first", d.AnchorText())
}

func TestDraftDiscard(t *testing.T) {
	s := NewStore()
	d := NewDraft(s)
	r := Range{Start: "1/0", End: "1/5"}

	require.NoError(t, d.Begin(r, "text", ""))
	d.Discard()

	assert.False(t, d.Active())
	assert.Empty(t, s.List(), "discard leaves no trace")

	// Dismissal callbacks can fire again; discard stays a no-op.
	d.Discard()

	// A new draft can begin after discard.
	assert.NoError(t, d.Begin(r, "text", ""))
}

func TestDraftCommitWithoutBegin(t *testing.T) {
	d := NewDraft(NewStore())
	_, err := d.Commit("note", "yellow")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDraftCommitDefaultColor(t *testing.T) {
	s := NewStore()
	d := NewDraft(s)
	require.NoError(t, d.Begin(Range{Start: "1/0", End: "1/5"}, "text", ""))

	m, err := d.Commit("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultColor, m.Color)
}

func TestDraftCommitClosesDraft(t *testing.T) {
	s := NewStore()
	d := NewDraft(s)
	require.NoError(t, d.Begin(Range{Start: "1/0", End: "1/5"}, "text", ""))

	_, err := d.Commit("n", "blue")
	require.NoError(t, err)
	assert.False(t, d.Active())

	_, err = d.Commit("again", "blue")
	assert.ErrorIs(t, err, ErrInvalidState)
}
