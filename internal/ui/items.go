package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/The-Enthusiast-404/libris/internal/library"
	"github.com/The-Enthusiast-404/libris/internal/marks"
	"github.com/The-Enthusiast-404/libris/internal/render"
)

// bookItem adapts a library book to the bubbles list.
type bookItem struct {
	book library.Book
}

func (i bookItem) Title() string { return i.book.Title }

func (i bookItem) Description() string {
	if i.book.Author == "" {
		return fmt.Sprintf("%.1f KB", float64(i.book.Size)/1024)
	}
	return i.book.Author
}

func (i bookItem) FilterValue() string { return i.book.Title + " " + i.book.Author }

// markItem adapts a stored mark to the bubbles list.
type markItem struct {
	mark marks.Mark
}

func (i markItem) Title() string {
	label := i.mark.SectionLabel
	if label == "" {
		label = "Unknown section"
	}
	if i.mark.Kind == marks.KindHighlight {
		swatch := lipgloss.NewStyle().Foreground(highlightColors[i.mark.Color]).Render("●")
		return swatch + " " + label
	}
	return "🔖 " + label
}

func (i markItem) Description() string {
	desc := "\"" + i.mark.AnchorText + "\""
	if i.mark.Note != "" {
		desc += " — " + i.mark.Note
	}
	return desc
}

func (i markItem) FilterValue() string { return i.mark.AnchorText + " " + i.mark.Note }

// tocItem adapts a table-of-contents entry to the bubbles list.
type tocItem struct {
	entry render.TOCEntry
}

func (i tocItem) Title() string {
	return strings.Repeat("  ", i.entry.Level) + i.entry.Title
}

func (i tocItem) Description() string { return "" }

func (i tocItem) FilterValue() string { return i.entry.Title }
