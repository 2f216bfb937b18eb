package marks

// Position is the rendering surface's report of where the reader is. Pages
// are numbered 0..LastPage; on the final page PageIndex equals LastPage.
type Position struct {
	Range     Range
	PageIndex int
	LastPage  int
}

// Tracker holds the latest reading position. The rendering surface delivers
// position events one at a time; each replaces the stored value
// unconditionally (last write wins).
type Tracker struct {
	pos   Position
	known bool
}

// NewTracker returns a tracker with no known position.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Observe records a position event from the rendering surface.
func (t *Tracker) Observe(p Position) {
	t.pos = p
	t.known = true
}

// Current returns the latest position; ok is false before the first event.
func (t *Tracker) Current() (Position, bool) {
	return t.pos, t.known
}

// AtStart reports whether the reader is on the first page. False while the
// position is unknown, so navigation controls stay enabled until the first
// event arrives.
func (t *Tracker) AtStart() bool {
	return t.known && t.pos.PageIndex == 0
}

// AtEnd reports whether the reader is on the final page. False while the
// position is unknown.
func (t *Tracker) AtEnd() bool {
	return t.known && t.pos.PageIndex == t.pos.LastPage
}

// IsCurrentMarked reports whether the current position's range is anchored by
// a stored mark. Recomputed on every call so store mutations are reflected
// immediately, with no invalidation step.
func (t *Tracker) IsCurrentMarked(store *Store) bool {
	if !t.known {
		return false
	}
	_, ok := store.FindByRange(t.pos.Range)
	return ok
}

// CurrentMark returns the stored mark anchored at the current position.
func (t *Tracker) CurrentMark(store *Store) (Mark, bool) {
	if !t.known {
		return Mark{}, false
	}
	return store.FindByRange(t.pos.Range)
}
