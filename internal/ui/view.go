package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/The-Enthusiast-404/libris/internal/marks"
)

func (a App) View() string {
	switch a.mode {
	case modeLibrary:
		return a.viewLibrary()
	case modeReader:
		return a.viewReader()
	case modeTOC:
		return a.tocList.View()
	case modeBookmarks:
		return a.viewBookmarks()
	case modeNote:
		return a.viewNote()
	}
	return ""
}

func (a App) viewLibrary() string {
	var sb strings.Builder
	sb.WriteString(a.shelf.View())
	if a.status != "" {
		sb.WriteString("\n")
		sb.WriteString(a.sty.warning.Render(a.status))
	}
	return sb.String()
}

func (a App) viewReader() string {
	if a.sess == nil {
		return ""
	}

	current, total := a.sess.PageNumbers()
	marked := ""
	if a.sess.IsBookmarked() {
		marked = a.sty.marked.Render(" 🔖")
	}
	status := a.sty.status.Render(fmt.Sprintf("Page %d/%d · %d%%", current, total, a.cfg.FontScale)) +
		a.sty.title.Render(a.sess.SectionLabel()) + marked

	width := a.width - 4
	if width < 20 {
		width = 20
	}
	page := a.sty.page.Width(width).Render(a.sess.PageText())

	controls := a.sty.controls.Render("←/→: page  b: bookmark  n: note  B: marks  t: contents  +/-: font  q: back")

	var sb strings.Builder
	sb.WriteString(status)
	sb.WriteString("\n")
	sb.WriteString(page)

	// Pin the controls (and any warning) to the bottom.
	used := strings.Count(sb.String(), "\n") + 1
	bottom := 1
	if a.status != "" {
		bottom = 2
	}
	for i := used; i < a.height-bottom; i++ {
		sb.WriteString("\n")
	}
	if a.status != "" {
		sb.WriteString(a.sty.warning.Render(a.status))
		sb.WriteString("\n")
	}
	sb.WriteString(controls)
	return sb.String()
}

func (a App) viewBookmarks() string {
	var sb strings.Builder
	sb.WriteString(a.markList.View())
	sb.WriteString("\n")
	if a.status != "" {
		sb.WriteString(a.sty.warning.Render(a.status))
		sb.WriteString("\n")
	}
	sb.WriteString(a.sty.controls.Render("enter: go  e: edit  d: delete  c: clear all  esc: back"))
	return sb.String()
}

func (a App) viewNote() string {
	title := "New note"
	if a.editID != "" {
		title = "Edit note"
	}

	var sb strings.Builder
	sb.WriteString(a.sty.title.Render(title))
	sb.WriteString("\n\n")
	if a.editColor {
		sb.WriteString(a.sty.status.Render("color:"))
		sb.WriteString(" ")
		sb.WriteString(a.colorSwatches())
		sb.WriteString("\n\n")
	}
	sb.WriteString(a.noteInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(a.sty.controls.Render("enter: save  tab: color  esc: cancel"))
	return sb.String()
}

func (a App) colorSwatches() string {
	parts := make([]string, 0, len(marks.Palette))
	for i, name := range marks.Palette {
		dot := lipgloss.NewStyle().Foreground(highlightColors[name]).Render("●")
		if i == a.colorIdx {
			parts = append(parts, "["+dot+"]")
		} else {
			parts = append(parts, " "+dot+" ")
		}
	}
	return strings.Join(parts, " ")
}
