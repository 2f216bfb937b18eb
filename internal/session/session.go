// Package session ties one open book together: the rendering engine, the
// mark store, the draft controller, and the position tracker, plus durable
// persistence. Exactly one Session exists per open book; it is created when
// the book opens and discarded when it closes.
//
// All methods are called from the UI event loop, one at a time. Persistence
// runs in the background after each mutation and is never awaited: the
// in-memory store stays the source of truth and a failed save only produces
// a warning.
package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/The-Enthusiast-404/libris/internal/marks"
	"github.com/The-Enthusiast-404/libris/internal/render"
	"github.com/The-Enthusiast-404/libris/internal/state"
)

// anchorWords is how much page text is captured as a mark's anchor snippet.
const anchorWords = 12

// Session is the reading session for one open book.
type Session struct {
	engine  *render.Engine
	store   *marks.Store
	draft   *marks.Draft
	tracker *marks.Tracker

	state *state.Store
	hash  string
	log   *zap.Logger

	// saves serializes background persistence so a stale snapshot can never
	// overwrite a newer one. Closed by Close.
	saves chan func()
	done  chan struct{}

	section string
}

// Open starts a session: extracts the book, loads its saved marks, restores
// the last reading position, and emits the initial position event.
func Open(path string, pageSize int, st *state.Store, log *zap.Logger) (*Session, error) {
	hash, err := state.ComputeHash(path)
	if err != nil {
		return nil, fmt.Errorf("identify book: %w", err)
	}
	engine, err := render.Open(path, pageSize)
	if err != nil {
		return nil, err
	}

	store := marks.NewStore()
	for _, m := range st.Marks(hash) {
		if err := store.Add(m); err != nil {
			log.Warn("skipping saved mark", zap.String("id", m.ID), zap.Error(err))
		}
	}

	s := &Session{
		engine:  engine,
		store:   store,
		draft:   marks.NewDraft(store),
		tracker: marks.NewTracker(),
		state:   st,
		hash:    hash,
		log:     log,
		saves:   make(chan func(), 64),
		done:    make(chan struct{}),
	}
	go s.saveLoop()
	engine.OnPosition(s.onPosition)

	if frag := st.LastFragment(hash); frag != "" {
		if err := engine.GoToFragment(frag); err == nil {
			return s, nil
		}
		log.Warn("saved position unresolvable", zap.String("fragment", frag))
	}
	engine.Emit()
	return s, nil
}

// onPosition feeds engine events into the tracker and saves the position.
func (s *Session) onPosition(p render.Position) {
	s.tracker.Observe(marks.Position{
		Range:     marks.Range{Start: p.StartFragment, End: p.EndFragment},
		PageIndex: p.PageIndex,
		LastPage:  p.LastPage,
	})
	s.section = p.SectionLabel

	frag := p.StartFragment
	s.enqueue(func() {
		if err := s.state.SaveLastFragment(s.hash, frag); err != nil {
			s.log.Warn("position save failed", zap.Error(err))
		}
	})
}

// persistMarks snapshots the store and schedules a save. The snapshot is
// taken on the caller's goroutine so the store itself is never touched
// concurrently.
func (s *Session) persistMarks() {
	snapshot := s.store.List()
	s.enqueue(func() {
		if err := s.state.SaveMarks(s.hash, snapshot); err != nil {
			s.log.Warn("mark save failed", zap.Error(err))
		}
	})
}

func (s *Session) saveLoop() {
	for fn := range s.saves {
		fn()
	}
	close(s.done)
}

// enqueue hands a save to the writer goroutine. A full queue drops the
// request; Close flushes the final state anyway.
func (s *Session) enqueue(fn func()) {
	select {
	case s.saves <- fn:
	default:
		s.log.Warn("save queue full, dropping save")
	}
}

// Close drains pending saves and flushes marks and position synchronously.
func (s *Session) Close() {
	close(s.saves)
	<-s.done

	if err := s.state.SaveMarks(s.hash, s.store.List()); err != nil {
		s.log.Warn("final mark save failed", zap.Error(err))
	}
	if pos, ok := s.tracker.Current(); ok {
		if err := s.state.SaveLastFragment(s.hash, pos.Range.Start); err != nil {
			s.log.Warn("final position save failed", zap.Error(err))
		}
	}
}

// Navigation.

// Next turns to the next page; false at the end of the book.
func (s *Session) Next() bool { return s.engine.Next() }

// Prev turns to the previous page; false at the start.
func (s *Session) Prev() bool { return s.engine.Prev() }

// GoToChapter jumps to a table-of-contents target.
func (s *Session) GoToChapter(ch int) error { return s.engine.GoToChapter(ch) }

// GoToMark jumps to the page a stored mark anchors to.
func (s *Session) GoToMark(id string) error {
	m, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("go to mark %q: %w", id, marks.ErrNotFound)
	}
	return s.engine.GoToFragment(m.Range.Start)
}

// SetPageSize repaginates, keeping the reading position anchored.
func (s *Session) SetPageSize(words int) { s.engine.Repaginate(words) }

// Reading surface state for the toolbar and page view.

func (s *Session) PageText() string { return s.engine.PageText(s.engine.CurrentPage()) }

// PageNumbers returns the 1-based current page and the page count.
func (s *Session) PageNumbers() (current, total int) {
	return s.engine.CurrentPage() + 1, s.engine.PageCount()
}

func (s *Session) SectionLabel() string     { return s.section }
func (s *Session) TOC() []render.TOCEntry   { return s.engine.TOC() }
func (s *Session) AtStart() bool            { return s.tracker.AtStart() }
func (s *Session) AtEnd() bool              { return s.tracker.AtEnd() }
func (s *Session) IsBookmarked() bool       { return s.tracker.IsCurrentMarked(s.store) }
func (s *Session) Marks(kinds ...marks.Kind) []marks.Mark { return s.store.List(kinds...) }

// CurrentMark returns the mark anchored at the current position, if any.
func (s *Session) CurrentMark() (marks.Mark, bool) {
	return s.tracker.CurrentMark(s.store)
}

// Mark mutations. Every successful mutation schedules a background save.

// ToggleBookmark bookmarks the current page, or removes the mark already
// anchored there. Reports whether a bookmark was added.
func (s *Session) ToggleBookmark() (bool, error) {
	excerpt := s.engine.PageExcerpt(s.engine.CurrentPage(), anchorWords)
	_, added, err := marks.ToggleBookmark(s.store, s.tracker, excerpt, s.section)
	if err != nil {
		return false, err
	}
	s.persistMarks()
	return added, nil
}

// RemoveMark deletes a mark; removing an absent id is a no-op.
func (s *Session) RemoveMark(id string) {
	s.store.Remove(id)
	s.persistMarks()
}

// UpdateNote edits a stored mark's note.
func (s *Session) UpdateNote(id, note string) error {
	if _, err := s.store.Update(id, marks.Patch{Note: &note}); err != nil {
		return err
	}
	s.persistMarks()
	return nil
}

// UpdateColor recolors a stored highlight.
func (s *Session) UpdateColor(id, color string) error {
	if _, err := s.store.Update(id, marks.Patch{Color: &color}); err != nil {
		return err
	}
	s.persistMarks()
	return nil
}

// ClearMarks removes every mark for the book.
func (s *Session) ClearMarks() {
	s.store.ClearAll()
	s.persistMarks()
}

// Draft flow. The draft never touches the store until commit.

// BeginNote opens a draft highlight anchored at the current page.
func (s *Session) BeginNote() error {
	pos, ok := s.tracker.Current()
	if !ok {
		return marks.ErrNoPosition
	}
	excerpt := s.engine.PageExcerpt(s.engine.CurrentPage(), anchorWords)
	return s.draft.Begin(pos.Range, excerpt, s.section)
}

// CommitNote promotes the draft into a stored highlight.
func (s *Session) CommitNote(note, color string) (marks.Mark, error) {
	m, err := s.draft.Commit(note, color)
	if err != nil {
		return marks.Mark{}, err
	}
	s.persistMarks()
	return m, nil
}

// DiscardNote drops the draft; safe to call with no draft open.
func (s *Session) DiscardNote() { s.draft.Discard() }

// DraftActive reports whether a note is being composed.
func (s *Session) DraftActive() bool { return s.draft.Active() }
