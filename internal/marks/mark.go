// Package marks implements the annotation model for an open book: the set of
// persisted bookmarks and highlights, the single in-flight draft highlight,
// and the live reading position reported by the rendering surface.
package marks

import "time"

// Range is a span in the rendered document, addressed by the engine's opaque
// fragment identifiers. The package never inspects fragment contents; two
// ranges denote the same span iff both endpoints match exactly.
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Equal reports whether two ranges have identical endpoints.
func (r Range) Equal(o Range) bool {
	return r.Start == o.Start && r.End == o.End
}

// Kind distinguishes plain bookmarks from highlights.
type Kind string

const (
	KindBookmark  Kind = "bookmark"
	KindHighlight Kind = "highlight"
)

// Palette is the fixed set of highlight colors. DefaultColor is used when a
// highlight is committed without an explicit choice.
var Palette = []string{"yellow", "green", "blue", "pink", "purple"}

// DefaultColor is the first palette entry.
const DefaultColor = "yellow"

// Mark is a persisted bookmark or highlight. Range and AnchorText are fixed
// at creation; only Note and Color may change afterwards.
type Mark struct {
	ID           string
	Kind         Kind
	Range        Range
	AnchorText   string
	Color        string // highlights only, always a palette entry
	Note         string
	SectionLabel string
	CreatedAt    time.Time
}

// validColor reports whether c is a palette entry.
func validColor(c string) bool {
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}
