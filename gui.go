//go:build gui

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/The-Enthusiast-404/libris/internal/config"
	"github.com/The-Enthusiast-404/libris/internal/logging"
	"github.com/The-Enthusiast-404/libris/internal/render"
	"github.com/The-Enthusiast-404/libris/internal/session"
	"github.com/The-Enthusiast-404/libris/internal/state"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	showTOC := flag.Bool("toc", false, "Show table of contents at startup")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Libris - GUI EPUB Reader\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  libris [options] book.epub\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion || *showVersionLong {
		fmt.Printf("libris %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: No book given. Provide an EPUB file.")
		fmt.Fprintln(os.Stderr, "Try: libris -h")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel)
	defer log.Sync()

	store, err := state.NewStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sess, err := session.Open(flag.Arg(0), cfg.PageSize(), store, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow("Libris")
	if cover, err := render.Cover(flag.Arg(0)); err == nil {
		w.SetIcon(fyne.NewStaticResource("cover", cover))
	}

	pageLabel := widget.NewLabel("")
	pageLabel.Wrapping = fyne.TextWrapWord

	statusLabel := widget.NewLabel("")
	statusLabel.Alignment = fyne.TextAlignCenter

	var bookmarkBtn *widget.Button

	refresh := func() {
		pageLabel.SetText(sess.PageText())
		current, total := sess.PageNumbers()
		marked := ""
		if sess.IsBookmarked() {
			marked = " | 🔖"
		}
		statusLabel.SetText(fmt.Sprintf("%s | Page %d/%d | Font %d%%%s",
			sess.SectionLabel(), current, total, cfg.FontScale, marked))
		if sess.IsBookmarked() {
			bookmarkBtn.SetText("Remove Bookmark")
		} else {
			bookmarkBtn.SetText("Bookmark")
		}
	}

	prevBtn := widget.NewButton("◀", func() {
		sess.Prev()
		refresh()
	})
	nextBtn := widget.NewButton("▶", func() {
		sess.Next()
		refresh()
	})
	bookmarkBtn = widget.NewButton("Bookmark", func() {
		if _, err := sess.ToggleBookmark(); err != nil {
			log.Warn("toggle bookmark failed")
		}
		refresh()
	})
	fontUp := widget.NewButton("A+", func() {
		if cfg.FontScale < 300 {
			cfg.FontScale += 10
			sess.SetPageSize(cfg.PageSize())
			refresh()
		}
	})
	fontDown := widget.NewButton("A-", func() {
		if cfg.FontScale > 50 {
			cfg.FontScale -= 10
			sess.SetPageSize(cfg.PageSize())
			refresh()
		}
	})

	controls := container.NewHBox(prevBtn, nextBtn, bookmarkBtn, fontDown, fontUp)

	readingContent := container.NewBorder(
		statusLabel,
		container.NewCenter(controls),
		nil, nil,
		container.NewScroll(pageLabel),
	)

	toc := sess.TOC()
	var tocPanel *container.Split
	var mainContainer *fyne.Container
	tocVisible := *showTOC && len(toc) > 0

	if len(toc) > 0 {
		tocList := widget.NewList(
			func() int { return len(toc) },
			func() fyne.CanvasObject { return widget.NewLabel("Title") },
			func(id widget.ListItemID, obj fyne.CanvasObject) {
				entry := toc[id]
				obj.(*widget.Label).SetText(strings.Repeat("  ", entry.Level) + entry.Title)
			},
		)
		tocList.OnSelected = func(id widget.ListItemID) {
			if err := sess.GoToChapter(toc[id].Chapter); err == nil {
				refresh()
			}
			tocList.UnselectAll()
		}

		tocContainer := container.NewBorder(
			widget.NewLabel("Table of Contents"),
			nil, nil, nil,
			tocList,
		)

		tocPanel = container.NewHSplit(tocContainer, readingContent)
		tocPanel.Offset = 0.33
		if !tocVisible {
			tocContainer.Hide()
		}
		mainContainer = container.NewStack(tocPanel)
	} else {
		mainContainer = container.NewStack(readingContent)
	}

	w.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeyLeft:
			sess.Prev()
			refresh()
		case fyne.KeyRight, fyne.KeySpace:
			sess.Next()
			refresh()
		case fyne.KeyB:
			if _, err := sess.ToggleBookmark(); err == nil {
				refresh()
			}
		case fyne.KeyT:
			if tocPanel != nil {
				tocVisible = !tocVisible
				if tocVisible {
					tocPanel.Leading.Show()
				} else {
					tocPanel.Leading.Hide()
				}
				tocPanel.Refresh()
			}
		case fyne.KeyF:
			w.SetFullScreen(!w.FullScreen())
		case fyne.KeyQ:
			a.Quit()
		}
	})

	w.SetOnClosed(sess.Close)

	w.Resize(fyne.NewSize(800, 600))
	w.SetContent(mainContainer)
	refresh()
	w.ShowAndRun()
}
