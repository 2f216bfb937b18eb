//go:build !gui

package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/The-Enthusiast-404/libris/internal/config"
	"github.com/The-Enthusiast-404/libris/internal/logging"
	"github.com/The-Enthusiast-404/libris/internal/state"
	"github.com/The-Enthusiast-404/libris/internal/ui"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	libraryDir := flag.String("library", "", "Library directory (overrides config)")
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Libris - Terminal EPUB Reader\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  libris [options] [book.epub]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  libris                    Browse the library (default: ~/Books)\n")
		fmt.Fprintf(os.Stderr, "  libris book.epub          Open a book directly\n")
		fmt.Fprintf(os.Stderr, "  libris -library ~/epubs   Browse a different directory\n")
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  ←/→      Turn page\n")
		fmt.Fprintf(os.Stderr, "  b        Toggle bookmark\n")
		fmt.Fprintf(os.Stderr, "  n        Highlight page with a note\n")
		fmt.Fprintf(os.Stderr, "  B        Bookmarks & highlights\n")
		fmt.Fprintf(os.Stderr, "  t        Table of contents\n")
		fmt.Fprintf(os.Stderr, "  +/-      Font scale\n")
		fmt.Fprintf(os.Stderr, "  q        Back / quit\n")
	}
	flag.Parse()

	if *showVersion || *showVersionLong {
		fmt.Printf("libris %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *libraryDir != "" {
		cfg.LibraryDir = *libraryDir
	}

	log := logging.New(cfg.LogLevel)
	defer log.Sync()

	store, err := state.NewStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var bookPath string
	if flag.NArg() > 0 {
		bookPath = flag.Arg(0)
		if _, err := os.Stat(bookPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open '%s': %v\n", bookPath, err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(ui.New(cfg, log, store, bookPath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
