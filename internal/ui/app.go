// Package ui is the terminal front end: a library shelf, the reading view,
// and overlays for the table of contents, saved marks, and note composing.
package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/The-Enthusiast-404/libris/internal/config"
	"github.com/The-Enthusiast-404/libris/internal/library"
	"github.com/The-Enthusiast-404/libris/internal/marks"
	"github.com/The-Enthusiast-404/libris/internal/session"
	"github.com/The-Enthusiast-404/libris/internal/state"
)

type mode int

const (
	modeLibrary mode = iota
	modeReader
	modeTOC
	modeBookmarks
	modeNote
)

// App is the bubbletea model. One mode is active at a time; every mode but
// the library needs an open session.
type App struct {
	cfg   config.Config
	log   *zap.Logger
	store *state.Store

	mode   mode
	width  int
	height int

	shelf   list.Model
	watcher *library.Watcher

	// standalone means a book path was given on the command line; closing the
	// book quits instead of returning to the shelf.
	standalone string

	sess *session.Session
	// opening is true while a session.Open command is in flight, so a second
	// shelf selection cannot race the first.
	opening bool

	tocList  list.Model
	markList list.Model

	noteInput textinput.Model
	colorIdx  int
	editID    string
	editColor bool

	status string
	sty    styles
}

type booksLoadedMsg struct {
	books []library.Book
	err   error
}

type libraryChangedMsg struct{}

type bookOpenedMsg struct {
	sess *session.Session
	err  error
}

// New builds the model. bookPath, when non-empty, skips the shelf and opens
// that book directly.
func New(cfg config.Config, log *zap.Logger, store *state.Store, bookPath string) App {
	theme := themeByName(cfg.Theme)

	shelf := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	shelf.Title = "Library"
	shelf.SetShowStatusBar(false)

	input := textinput.New()
	input.Placeholder = "note"
	input.CharLimit = 500

	a := App{
		cfg:        cfg,
		log:        log,
		store:      store,
		mode:       modeLibrary,
		shelf:      shelf,
		tocList:    list.New(nil, plainDelegate(), 0, 0),
		markList:   list.New(nil, list.NewDefaultDelegate(), 0, 0),
		standalone: bookPath,
		noteInput:  input,
		sty:        newStyles(theme),
		width:      80,
		height:     24,
	}

	if bookPath == "" {
		w, err := library.Watch(cfg.LibraryDir, log)
		if err != nil {
			log.Warn("library watch unavailable", zap.Error(err))
		} else {
			a.watcher = w
		}
	}
	return a
}

func (a App) Init() tea.Cmd {
	if a.standalone != "" {
		return a.openBook(a.standalone)
	}
	return tea.Batch(a.loadBooks, a.waitForLibrary())
}

func (a App) loadBooks() tea.Msg {
	books, err := library.Scan(a.cfg.LibraryDir, a.log)
	return booksLoadedMsg{books: books, err: err}
}

func (a App) waitForLibrary() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	ch := a.watcher.Events()
	return func() tea.Msg {
		<-ch
		return libraryChangedMsg{}
	}
}

func (a App) openBook(path string) tea.Cmd {
	cfg, store, log := a.cfg, a.store, a.log
	return func() tea.Msg {
		sess, err := session.Open(path, cfg.PageSize(), store, log)
		return bookOpenedMsg{sess: sess, err: err}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.shelf.SetSize(msg.Width-2, msg.Height-2)
		a.tocList.SetSize(msg.Width-2, msg.Height-2)
		a.markList.SetSize(msg.Width-2, msg.Height-2)
		return a, nil

	case booksLoadedMsg:
		if msg.err != nil {
			a.status = "library: " + msg.err.Error()
			return a, nil
		}
		items := make([]list.Item, len(msg.books))
		for i, b := range msg.books {
			items[i] = bookItem{book: b}
		}
		return a, a.shelf.SetItems(items)

	case libraryChangedMsg:
		return a, tea.Batch(a.loadBooks, a.waitForLibrary())

	case bookOpenedMsg:
		a.opening = false
		if msg.err != nil {
			if a.standalone != "" {
				a.status = msg.err.Error()
				return a, tea.Quit
			}
			a.status = "open: " + msg.err.Error()
			return a, nil
		}
		// A session may already be open; flush it before replacing it.
		if a.sess != nil {
			a.sess.Close()
		}
		a.sess = msg.sess
		a.mode = modeReader
		a.status = ""
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a.quit()
		}
		a.status = ""
		switch a.mode {
		case modeLibrary:
			return a.updateLibrary(msg)
		case modeReader:
			return a.updateReader(msg)
		case modeTOC:
			return a.updateTOC(msg)
		case modeBookmarks:
			return a.updateBookmarks(msg)
		case modeNote:
			return a.updateNote(msg)
		}
	}
	return a, nil
}

// quit tears down the open session and watcher before stopping the program.
func (a App) quit() (tea.Model, tea.Cmd) {
	if a.sess != nil {
		a.sess.Close()
		a.sess = nil
	}
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	return a, tea.Quit
}

func (a App) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.shelf.FilterState() != list.Filtering {
		switch msg.String() {
		case "q":
			return a.quit()
		case "enter":
			if a.opening {
				return a, nil
			}
			if item, ok := a.shelf.SelectedItem().(bookItem); ok {
				a.opening = true
				return a, a.openBook(item.book.Path)
			}
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.shelf, cmd = a.shelf.Update(msg)
	return a, cmd
}

func (a App) updateReader(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		a.sess.Close()
		a.sess = nil
		if a.standalone != "" {
			return a.quit()
		}
		a.mode = modeLibrary
		return a, nil

	case "right", "l", " ", "pgdown":
		a.sess.Next()
		return a, nil

	case "left", "h", "pgup":
		a.sess.Prev()
		return a, nil

	case "b":
		added, err := a.sess.ToggleBookmark()
		if err != nil {
			a.status = err.Error()
		} else if added {
			a.status = "bookmarked"
		} else {
			a.status = "bookmark removed"
		}
		return a, nil

	case "n":
		if err := a.sess.BeginNote(); err != nil {
			a.status = err.Error()
			return a, nil
		}
		a.mode = modeNote
		a.editID = ""
		a.editColor = true
		a.colorIdx = 0
		a.noteInput.SetValue("")
		a.noteInput.Focus()
		return a, textinput.Blink

	case "B":
		a.rebuildMarkList()
		a.mode = modeBookmarks
		return a, nil

	case "t":
		entries := a.sess.TOC()
		items := make([]list.Item, len(entries))
		for i, e := range entries {
			items[i] = tocItem{entry: e}
		}
		a.tocList = list.New(items, plainDelegate(), a.width-2, a.height-2)
		a.tocList.Title = "Contents"
		a.tocList.SetShowStatusBar(false)
		a.mode = modeTOC
		return a, nil

	case "+", "=":
		return a.setFontScale(a.cfg.FontScale + 10)

	case "-":
		return a.setFontScale(a.cfg.FontScale - 10)
	}
	return a, nil
}

func (a App) setFontScale(scale int) (tea.Model, tea.Cmd) {
	if scale < 50 || scale > 300 {
		return a, nil
	}
	a.cfg.FontScale = scale
	a.sess.SetPageSize(a.cfg.PageSize())
	return a, nil
}

func (a App) updateTOC(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.tocList.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc", "t", "q":
			a.mode = modeReader
			return a, nil
		case "enter":
			if item, ok := a.tocList.SelectedItem().(tocItem); ok {
				if err := a.sess.GoToChapter(item.entry.Chapter); err != nil {
					a.status = err.Error()
				}
			}
			a.mode = modeReader
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.tocList, cmd = a.tocList.Update(msg)
	return a, cmd
}

func (a App) updateBookmarks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.markList.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc", "B", "q":
			a.mode = modeReader
			return a, nil

		case "enter":
			if item, ok := a.markList.SelectedItem().(markItem); ok {
				if err := a.sess.GoToMark(item.mark.ID); err != nil {
					a.status = err.Error()
					return a, nil
				}
				a.mode = modeReader
			}
			return a, nil

		case "d":
			if item, ok := a.markList.SelectedItem().(markItem); ok {
				a.sess.RemoveMark(item.mark.ID)
				a.rebuildMarkList()
			}
			return a, nil

		case "c":
			a.sess.ClearMarks()
			a.rebuildMarkList()
			return a, nil

		case "e":
			item, ok := a.markList.SelectedItem().(markItem)
			if !ok {
				return a, nil
			}
			a.mode = modeNote
			a.editID = item.mark.ID
			a.editColor = item.mark.Kind == marks.KindHighlight
			a.colorIdx = paletteIndex(item.mark.Color)
			a.noteInput.SetValue(item.mark.Note)
			a.noteInput.Focus()
			return a, textinput.Blink
		}
	}
	var cmd tea.Cmd
	a.markList, cmd = a.markList.Update(msg)
	return a, cmd
}

func (a App) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if a.editID == "" {
			a.sess.DiscardNote()
			a.mode = modeReader
		} else {
			a.mode = modeBookmarks
		}
		a.noteInput.Blur()
		return a, nil

	case "tab":
		if a.editColor {
			a.colorIdx = (a.colorIdx + 1) % len(marks.Palette)
		}
		return a, nil

	case "enter":
		note := a.noteInput.Value()
		a.noteInput.Blur()
		if a.editID == "" {
			if _, err := a.sess.CommitNote(note, marks.Palette[a.colorIdx]); err != nil {
				a.status = err.Error()
			}
			a.mode = modeReader
			return a, nil
		}
		if err := a.sess.UpdateNote(a.editID, note); err != nil {
			a.status = err.Error()
		} else if a.editColor {
			if err := a.sess.UpdateColor(a.editID, marks.Palette[a.colorIdx]); err != nil {
				a.status = err.Error()
			}
		}
		a.rebuildMarkList()
		a.mode = modeBookmarks
		return a, nil
	}

	var cmd tea.Cmd
	a.noteInput, cmd = a.noteInput.Update(msg)
	return a, cmd
}

func (a *App) rebuildMarkList() {
	stored := a.sess.Marks()
	items := make([]list.Item, len(stored))
	for i, m := range stored {
		items[i] = markItem{mark: m}
	}
	a.markList = list.New(items, list.NewDefaultDelegate(), a.width-2, a.height-2)
	a.markList.Title = "Bookmarks & Highlights"
	a.markList.SetShowStatusBar(false)
}

// plainDelegate renders single-line items, used for the table of contents.
func plainDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	return d
}

func paletteIndex(color string) int {
	for i, c := range marks.Palette {
		if c == color {
			return i
		}
	}
	return 0
}
