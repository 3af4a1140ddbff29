// Package watcher imports inventory files dropped into a directory. New or
// rewritten files with a supported extension trigger the import callback
// after a short debounce, so half-written files settle first.
package watcher

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"assetmerge/internal/loader"
)

// ImportFunc receives the path of a settled inventory file
type ImportFunc func(ctx context.Context, path string)

// Watcher watches a drop directory for inventory files
type Watcher struct {
	dir      string
	onFile   ImportFunc
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a new drop-directory watcher
func New(dir string, onFile ImportFunc) *Watcher {
	return &Watcher{
		dir:      dir,
		onFile:   onFile,
		debounce: 500 * time.Millisecond,
		timers:   make(map[string]*time.Timer),
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch starts watching the drop directory.
// It blocks until the context is cancelled or an error occurs.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return err
	}

	log.Printf("Watching %s for inventory files", w.dir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !eligible(event.Name) {
				continue
			}

			w.schedule(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			w.mu.Lock()
			for _, timer := range w.timers {
				timer.Stop()
			}
			w.mu.Unlock()
			return ctx.Err()
		}
	}
}

// schedule arms (or re-arms) the debounce timer for one file. Editors and
// copies emit bursts of writes; only the last one fires the import.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}

	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		log.Printf("Importing dropped file: %s", path)
		w.onFile(ctx, path)
	})
}

// eligible reports whether the path looks like an inventory file. Hidden
// files and temp suffixes from in-progress copies are ignored.
func eligible(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".tmp") {
		return false
	}
	return loader.Supported(base)
}
