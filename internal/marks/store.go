package marks

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store holds the committed marks for one open book, in insertion order.
// One Store exists per reading session and all access happens on the
// session's event loop, so the Store itself is unsynchronized; callers that
// persist in the background must work from a List snapshot.
type Store struct {
	marks []Mark
	ids   map[string]struct{}
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{ids: make(map[string]struct{})}
}

// NewID returns a fresh mark id. Ids are generated here so ErrDuplicateID
// stays a programmer error rather than something users can trigger.
func NewID() string {
	return uuid.NewString()
}

// Add inserts a mark. The mark must satisfy the kind/color invariants: a
// highlight carries a palette color, a bookmark carries none.
func (s *Store) Add(m Mark) error {
	if _, ok := s.ids[m.ID]; ok {
		return fmt.Errorf("add %q: %w", m.ID, ErrDuplicateID)
	}
	if err := validate(m); err != nil {
		return err
	}
	s.marks = append(s.marks, m)
	s.ids[m.ID] = struct{}{}
	return nil
}

// Remove deletes the mark with the given id. Removal is idempotent: a missing
// id is a no-op, because UI close handlers can race with store mutations
// triggered by dismissal callbacks.
func (s *Store) Remove(id string) {
	if _, ok := s.ids[id]; !ok {
		return
	}
	delete(s.ids, id)
	for i, m := range s.marks {
		if m.ID == id {
			s.marks = append(s.marks[:i], s.marks[i+1:]...)
			return
		}
	}
}

// Patch carries the editable fields of a mark. Nil fields are left untouched.
type Patch struct {
	Note  *string
	Color *string
}

// Update applies a patch to the mark with the given id and returns the
// updated mark. The range never changes after creation.
func (s *Store) Update(id string, p Patch) (Mark, error) {
	for i, m := range s.marks {
		if m.ID != id {
			continue
		}
		if p.Note != nil {
			m.Note = *p.Note
		}
		if p.Color != nil {
			if m.Kind != KindHighlight || !validColor(*p.Color) {
				return Mark{}, fmt.Errorf("update %q: color %q: %w", id, *p.Color, ErrInvalidMark)
			}
			m.Color = *p.Color
		}
		s.marks[i] = m
		return m, nil
	}
	return Mark{}, fmt.Errorf("update %q: %w", id, ErrNotFound)
}

// ClearAll removes every mark. Always succeeds, including on an empty store.
func (s *Store) ClearAll() {
	s.marks = nil
	s.ids = make(map[string]struct{})
}

// FindByRange returns the mark anchored exactly at r, if any.
func (s *Store) FindByRange(r Range) (Mark, bool) {
	for _, m := range s.marks {
		if m.Range.Equal(r) {
			return m, true
		}
	}
	return Mark{}, false
}

// Get returns the mark with the given id.
func (s *Store) Get(id string) (Mark, bool) {
	if _, ok := s.ids[id]; !ok {
		return Mark{}, false
	}
	for _, m := range s.marks {
		if m.ID == id {
			return m, true
		}
	}
	return Mark{}, false
}

// List returns marks in insertion order, optionally filtered by kind. The
// returned slice is a copy.
func (s *Store) List(kinds ...Kind) []Mark {
	out := make([]Mark, 0, len(s.marks))
	for _, m := range s.marks {
		if len(kinds) == 0 {
			out = append(out, m)
			continue
		}
		for _, k := range kinds {
			if m.Kind == k {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// Len returns the number of stored marks.
func (s *Store) Len() int {
	return len(s.marks)
}

func validate(m Mark) error {
	switch m.Kind {
	case KindBookmark:
		if m.Color != "" {
			return fmt.Errorf("bookmark %q has color: %w", m.ID, ErrInvalidMark)
		}
	case KindHighlight:
		if !validColor(m.Color) {
			return fmt.Errorf("highlight %q color %q: %w", m.ID, m.Color, ErrInvalidMark)
		}
	default:
		return fmt.Errorf("mark %q kind %q: %w", m.ID, m.Kind, ErrInvalidMark)
	}
	return nil
}

// NewBookmark builds a bookmark at r with a store-generated id.
func NewBookmark(r Range, anchorText, sectionLabel string) Mark {
	return Mark{
		ID:           NewID(),
		Kind:         KindBookmark,
		Range:        r,
		AnchorText:   anchorText,
		SectionLabel: sectionLabel,
		CreatedAt:    time.Now(),
	}
}
