package library

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports when the library directory's EPUB contents change, so the
// shelf can rescan without a restart.
type Watcher struct {
	fs  *fsnotify.Watcher
	out chan struct{}
}

// Watch starts watching dir. Every create/remove/rename of an .epub file
// produces a signal on Events; coalescing is left to the consumer, which
// rescans at most once per signal it drains.
func Watch(dir string, log *zap.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, err
	}

	w := &Watcher{fs: fs, out: make(chan struct{}, 1)}
	go func() {
		for {
			select {
			case ev, ok := <-fs.Events:
				if !ok {
					return
				}
				if !strings.EqualFold(filepath.Ext(ev.Name), ".epub") {
					continue
				}
				if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Write) {
					select {
					case w.out <- struct{}{}:
					default: // a rescan is already pending
					}
				}
			case err, ok := <-fs.Errors:
				if !ok {
					return
				}
				log.Warn("library watch error", zap.Error(err))
			}
		}
	}()
	return w, nil
}

// Events signals that the directory changed.
func (w *Watcher) Events() <-chan struct{} {
	return w.out
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
