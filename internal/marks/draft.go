package marks

import (
	"fmt"
	"time"
)

// Draft manages the single not-yet-committed highlight for a reading session.
// A draft is created when the user starts composing a note on a selected
// range, and is either promoted into the store on commit or dropped without
// trace on discard. Drafts are invisible to the store: FindByRange and List
// never report them, so "is this location marked" stays correct while a note
// is being written.
type Draft struct {
	store *Store

	active       bool
	rng          Range
	anchorText   string
	sectionLabel string
}

// NewDraft returns a draft controller bound to the session's store.
func NewDraft(store *Store) *Draft {
	return &Draft{store: store}
}

// Begin opens a draft for the given range. Only one draft may exist at a
// time; beginning a second one is rejected rather than silently overwriting,
// so unsaved input is never lost.
func (d *Draft) Begin(r Range, anchorText, sectionLabel string) error {
	if d.active {
		return fmt.Errorf("begin: draft already open: %w", ErrInvalidState)
	}
	d.active = true
	d.rng = r
	d.anchorText = anchorText
	d.sectionLabel = sectionLabel
	return nil
}

// Active reports whether a draft is open.
func (d *Draft) Active() bool {
	return d.active
}

// Range returns the draft's anchor range; ok is false when no draft is open.
func (d *Draft) Range() (Range, bool) {
	return d.rng, d.active
}

// AnchorText returns the text the draft's range covers.
func (d *Draft) AnchorText() string {
	return d.anchorText
}

// Commit promotes the draft into the store as a highlight and closes it.
// An empty color falls back to DefaultColor so the highlight invariant holds.
func (d *Draft) Commit(note, color string) (Mark, error) {
	if !d.active {
		return Mark{}, fmt.Errorf("commit: %w", ErrInvalidState)
	}
	if color == "" {
		color = DefaultColor
	}
	m := Mark{
		ID:           NewID(),
		Kind:         KindHighlight,
		Range:        d.rng,
		AnchorText:   d.anchorText,
		Color:        color,
		Note:         note,
		SectionLabel: d.sectionLabel,
		CreatedAt:    time.Now(),
	}
	if err := d.store.Add(m); err != nil {
		return Mark{}, err
	}
	d.reset()
	return m, nil
}

// Discard drops the draft without touching the store. Discard is idempotent:
// dismissing the composition surface is the sole cancellation path and its
// callback may fire when no draft is open.
func (d *Draft) Discard() {
	d.reset()
}

func (d *Draft) reset() {
	d.active = false
	d.rng = Range{}
	d.anchorText = ""
	d.sectionLabel = ""
}
