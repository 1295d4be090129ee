package infrastructure

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports external changes to the catalog file so the UI can reload.
// Notifications are debounced and coalesced; the watcher never touches store
// state itself.
type Watcher struct {
	fw     *fsnotify.Watcher
	path   string
	events chan struct{}
	done   chan struct{}
}

// NewWatcher watches the catalog file at path. The parent directory is
// watched rather than the file itself because Save replaces the file by
// rename, which would otherwise drop the watch.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		fw:     fw,
		path:   filepath.Clean(path),
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go w.loop(debounce)
	return w, nil
}

// Events delivers one notification per debounced burst of file changes.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) loop(debounce time.Duration) {
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			select {
			case w.events <- struct{}{}:
			default:
			}
		case <-w.done:
			return
		}
	}
}
