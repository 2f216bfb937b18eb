package marks

// ToggleBookmark adds a bookmark at the tracker's current position, or
// removes the mark already anchored there. The lookup happens once and the
// branch happens once, so a single user gesture never half-applies.
// Returns the affected mark and whether it was added.
func ToggleBookmark(store *Store, tracker *Tracker, anchorText, sectionLabel string) (Mark, bool, error) {
	pos, ok := tracker.Current()
	if !ok {
		return Mark{}, false, ErrNoPosition
	}
	if existing, found := store.FindByRange(pos.Range); found {
		store.Remove(existing.ID)
		return existing, false, nil
	}
	m := NewBookmark(pos.Range, anchorText, sectionLabel)
	if err := store.Add(m); err != nil {
		return Mark{}, false, err
	}
	return m, true, nil
}
