package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/The-Enthusiast-404/libris/internal/marks"
)

func TestComputeHash(t *testing.T) {
	tmpDir := t.TempDir()
	file1 := filepath.Join(tmpDir, "book1.epub")
	file2 := filepath.Join(tmpDir, "book2.epub")
	file3 := filepath.Join(tmpDir, "book1_copy.epub")

	os.WriteFile(file1, []byte("Hello, World!"), 0644)
	os.WriteFile(file2, []byte("Different content"), 0644)
	os.WriteFile(file3, []byte("Hello, World!"), 0644) // Same as file1

	hash1, err := ComputeHash(file1)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}

	hash2, err := ComputeHash(file2)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}

	hash3, err := ComputeHash(file3)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}

	// Same content = same hash, different content = different hash.
	if hash1 != hash3 {
		t.Errorf("Same content should produce same hash: %s != %s", hash1, hash3)
	}
	if hash1 == hash2 {
		t.Errorf("Different content should produce different hash")
	}
	if len(hash1) != 32 {
		t.Errorf("Hash should be 32 chars, got %d", len(hash1))
	}
}

func testMarks() []marks.Mark {
	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	return []marks.Mark{
		{
			ID:           "b1",
			Kind:         marks.KindBookmark,
			Range:        marks.Range{Start: "0/0", End: "0/159"},
			AnchorText:   "It was a dark and stormy night...",
			SectionLabel: "Chapter One",
			CreatedAt:    created,
		},
		{
			ID:         "h1",
			Kind:       marks.KindHighlight,
			Range:      marks.Range{Start: "2/40", End: "2/55"},
			AnchorText: "a quotable line",
			Color:      "green",
			Note:       "look this up later",
			CreatedAt:  created.Add(time.Minute),
		},
		{
			ID:        "b2",
			Kind:      marks.KindBookmark,
			Range:     marks.Range{Start: "3/0", End: "3/159"},
			CreatedAt: created.Add(2 * time.Minute),
		},
	}
}

func TestMarksRoundTrip(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	hash := "abcdef1234567890abcdef1234567890"
	want := testMarks()

	if got := store.Marks(hash); len(got) != 0 {
		t.Errorf("Expected no marks for unknown hash, got %d", len(got))
	}

	if err := store.SaveMarks(hash, want); err != nil {
		t.Fatalf("SaveMarks failed: %v", err)
	}

	// A fresh store instance must reload every field in saved order.
	store2, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	got := store2.Marks(hash)
	if len(got) != len(want) {
		t.Fatalf("Expected %d marks, got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].CreatedAt.Equal(want[i].CreatedAt) {
			t.Errorf("Mark %d: CreatedAt %v != %v", i, got[i].CreatedAt, want[i].CreatedAt)
		}
		got[i].CreatedAt = want[i].CreatedAt
		if got[i] != want[i] {
			t.Errorf("Mark %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLastFragment(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	hash := "abcdef1234567890abcdef1234567890"
	if frag := store.LastFragment(hash); frag != "" {
		t.Errorf("Expected empty fragment for unknown hash, got %q", frag)
	}

	if err := store.SaveLastFragment(hash, "4/80"); err != nil {
		t.Fatalf("SaveLastFragment failed: %v", err)
	}
	if frag := store.LastFragment(hash); frag != "4/80" {
		t.Errorf("Expected 4/80, got %q", frag)
	}

	// Position and marks live side by side for the same book.
	if err := store.SaveMarks(hash, testMarks()); err != nil {
		t.Fatalf("SaveMarks failed: %v", err)
	}
	if frag := store.LastFragment(hash); frag != "4/80" {
		t.Errorf("SaveMarks clobbered position: got %q", frag)
	}
}

func TestClear(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	hash := "abcdef1234567890abcdef1234567890"
	store.SaveLastFragment(hash, "1/1")
	store.SaveMarks(hash, testMarks())

	if err := store.Clear(hash); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if frag := store.LastFragment(hash); frag != "" {
		t.Errorf("Expected empty fragment after clear, got %q", frag)
	}
	if got := store.Marks(hash); len(got) != 0 {
		t.Errorf("Expected no marks after clear, got %d", len(got))
	}
}
