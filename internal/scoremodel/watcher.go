package scoremodel

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher reloads the catalog when model files in a directory change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	reload   func(context.Context) error
	debounce time.Duration
}

func NewWatcher(dir string, reload func(context.Context) error) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	return &Watcher{
		watcher:  w,
		dir:      dir,
		reload:   reload,
		debounce: defaultDebounce,
	}, nil
}

// Run blocks until ctx is done. Bursts of events are coalesced into one
// reload. A failed reload is logged and the previous catalog stays live.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isModelFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			log.Printf("[WATCH] model files changed in %s, reloading", w.dir)
			if err := w.reload(ctx); err != nil {
				log.Printf("[WATCH] reload failed, keeping current models: %v", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[WATCH] %v", err)
		}
	}
}

func isModelFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
