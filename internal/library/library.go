// Package library scans a directory for EPUB files and keeps the list fresh
// while the application runs.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/The-Enthusiast-404/libris/internal/render"
)

// Book is one discovered EPUB.
type Book struct {
	Path   string
	Title  string
	Author string
	Size   int64
}

// Scan lists the EPUB files directly inside dir, sorted by title. Metadata
// comes from each book's package document; unreadable metadata falls back to
// the filename, so one corrupt download never hides the rest of the shelf.
func Scan(dir string, log *zap.Logger) ([]Book, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan library: %w", err)
	}

	var books []Book
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".epub") {
			continue
		}
		path := filepath.Join(dir, e.Name())

		b := Book{
			Path:  path,
			Title: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
		}
		if info, err := e.Info(); err == nil {
			b.Size = info.Size()
		}
		if md, err := render.ReadMetadata(path); err == nil {
			if md.Title != "" {
				b.Title = md.Title
			}
			b.Author = md.Author
		} else {
			log.Warn("unreadable book metadata", zap.String("path", path), zap.Error(err))
		}
		books = append(books, b)
	}

	sort.Slice(books, func(i, j int) bool {
		if books[i].Title != books[j].Title {
			return books[i].Title < books[j].Title
		}
		return books[i].Path < books[j].Path
	})
	return books, nil
}
