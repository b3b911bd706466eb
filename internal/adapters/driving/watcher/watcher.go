// Package watcher re-ingests course documents when they change on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driving"
	"github.com/coursechat-labs/coursechat-cli/internal/logger"
)

// DefaultDebounce is how long a file must stay quiet before it is
// re-ingested. Editors fire several write events per save.
const DefaultDebounce = 500 * time.Millisecond

// watchedExtensions are the document types that trigger re-ingestion.
var watchedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// Watcher re-ingests documents in a folder as they are created or
// modified.
type Watcher struct {
	ingest   driving.IngestService
	dir      string
	debounce time.Duration
	fs       *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher over the given folder.
func New(ingest driving.IngestService, dir string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		ingest:   ingest,
		dir:      dir,
		debounce: debounce,
		fs:       fs,
		pending:  make(map[string]*time.Timer),
	}, nil
}

// Run blocks processing events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()
	logger.Info("Watching %s for course documents", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !watchedExtensions[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}
			w.schedule(ctx, event.Name)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// schedule (re)arms the debounce timer for one path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		course, chunks, err := w.ingest.IngestFile(ctx, path)
		if err != nil {
			logger.Warn("Re-ingest of %s failed: %v", filepath.Base(path), err)
			return
		}
		logger.Info("Re-ingested %q (%d chunks)", course.Title, chunks)
	})
}

// Close stops watching and cancels pending re-ingests.
func (w *Watcher) Close() error {
	w.mu.Lock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()
	return w.fs.Close()
}
