// Package state persists per-book reading data: the last reading position
// and every committed mark, keyed by book content hash. Storage is a single
// JSON file under XDG_STATE_HOME/libris. The in-memory mark store stays the
// source of truth for the session; a failed write here is reported and
// otherwise ignored.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/The-Enthusiast-404/libris/internal/marks"
)

const (
	stateFileName = "library.json"
	hashBytes     = 8192 // first 8KB identifies the book
)

// BookState is everything saved for one book.
type BookState struct {
	LastFragment string       `json:"last_fragment,omitempty"`
	Marks        []MarkRecord `json:"marks,omitempty"`
}

// MarkRecord is the durable form of a mark. Field set matches marks.Mark
// one-to-one so a save/load round trip reproduces every field; slice order is
// insertion order.
type MarkRecord struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Start        string    `json:"start"`
	End          string    `json:"end"`
	AnchorText   string    `json:"anchor_text"`
	Color        string    `json:"color,omitempty"`
	Note         string    `json:"note,omitempty"`
	SectionLabel string    `json:"section_label,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store manages the persistent state file. Saves arrive from background
// goroutines while the session keeps running, hence the mutex.
type Store struct {
	path string
	data map[string]BookState
	mu   sync.Mutex
}

// NewStore creates or loads state from XDG_STATE_HOME/libris.
func NewStore() (*Store, error) {
	dir := stateDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	s := &Store{
		path: filepath.Join(dir, stateFileName),
		data: make(map[string]BookState),
	}
	if err := s.load(); err != nil {
		// Non-fatal - start with empty state
		s.data = make(map[string]BookState)
	}
	return s, nil
}

// stateDir returns XDG_STATE_HOME/libris or ~/.local/state/libris.
func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "libris")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "libris")
}

// ComputeHash generates a content hash identifying a book file. Identity
// follows content, so renamed or moved files keep their marks.
func ComputeHash(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, hashBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}

	hash := sha256.Sum256(buf[:n])
	return hex.EncodeToString(hash[:16]), nil
}

// Marks returns the saved marks for a book, in saved (insertion) order.
func (s *Store) Marks(hash string) []marks.Mark {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.data[hash].Marks
	out := make([]marks.Mark, 0, len(records))
	for _, r := range records {
		out = append(out, marks.Mark{
			ID:           r.ID,
			Kind:         marks.Kind(r.Kind),
			Range:        marks.Range{Start: r.Start, End: r.End},
			AnchorText:   r.AnchorText,
			Color:        r.Color,
			Note:         r.Note,
			SectionLabel: r.SectionLabel,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out
}

// SaveMarks replaces the saved marks for a book.
func (s *Store) SaveMarks(hash string, ms []marks.Mark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]MarkRecord, 0, len(ms))
	for _, m := range ms {
		records = append(records, MarkRecord{
			ID:           m.ID,
			Kind:         string(m.Kind),
			Start:        m.Range.Start,
			End:          m.Range.End,
			AnchorText:   m.AnchorText,
			Color:        m.Color,
			Note:         m.Note,
			SectionLabel: m.SectionLabel,
			CreatedAt:    m.CreatedAt,
		})
	}
	st := s.data[hash]
	st.Marks = records
	s.data[hash] = st
	return s.save()
}

// LastFragment returns the saved reading position, or "" if none.
func (s *Store) LastFragment(hash string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[hash].LastFragment
}

// SaveLastFragment saves the reading position for a book.
func (s *Store) SaveLastFragment(hash, fragment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.data[hash]
	st.LastFragment = fragment
	s.data[hash] = st
	return s.save()
}

// Clear removes all saved state for a book.
func (s *Store) Clear(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, hash)
	return s.save()
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &s.data)
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
