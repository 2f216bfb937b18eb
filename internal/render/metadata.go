package render

import (
	"fmt"
	"strings"

	"github.com/simp-lee/epub"
)

// Metadata is the subset of package metadata the library screen shows.
type Metadata struct {
	Title  string
	Author string
}

// ReadMetadata returns the book's title and first author.
func ReadMetadata(filename string) (Metadata, error) {
	book, err := epub.Open(filename)
	if err != nil {
		return Metadata{}, fmt.Errorf("read metadata: %w", err)
	}
	defer book.Close()

	md := book.Metadata()
	var out Metadata
	if len(md.Titles) > 0 {
		out.Title = strings.TrimSpace(md.Titles[0])
	}
	if len(md.Authors) > 0 {
		out.Author = strings.TrimSpace(md.Authors[0].Name)
	}
	return out, nil
}

// Cover extracts the cover image bytes.
func Cover(filename string) ([]byte, error) {
	book, err := epub.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cover: %w", err)
	}
	defer book.Close()

	img, err := book.Cover()
	if err != nil {
		return nil, fmt.Errorf("cover: %w", err)
	}
	return img.Data, nil
}
