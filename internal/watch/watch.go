// Package watch imports logbook exports dropped into a directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"flupp/internal/importer"
	"flupp/internal/logging"
	"flupp/internal/source"
)

// FileImporter imports a single logbook file.
type FileImporter interface {
	ImportFile(ctx context.Context, path string) (*importer.Result, error)
}

// Watcher imports .flu, .flu.gz and .flu.zst files created in a directory.
// A file is imported once it has not been written to for the debounce
// interval.
type Watcher struct {
	dir      string
	debounce time.Duration
	importer FileImporter
	logger   *slog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
	ready   chan string
	stop    chan struct{}
}

// New constructs a Watcher for dir.
func New(dir string, debounce time.Duration, imp FileImporter, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		importer: imp,
		logger:   logging.NewComponentLogger(logger, "watch"),
		pending:  make(map[string]*time.Timer),
		ready:    make(chan string, 16),
		stop:     make(chan struct{}),
	}
}

// Run watches until ctx is cancelled. Files already present when Run starts
// are imported first. Import failures are logged and do not stop the watcher.
// Run may be called once.
func (w *Watcher) Run(ctx context.Context) error {
	if w.dir == "" {
		return errors.New("watch directory is not configured")
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create watch directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fsw.Close()
	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	defer func() {
		close(w.stop)
		w.stopTimers()
	}()

	w.logger.Info("watching for logbooks", logging.String("dir", w.dir))
	for _, path := range w.existing() {
		w.process(ctx, path)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 && source.IsLogbook(ev.Name) {
				w.schedule(ev.Name)
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				w.cancel(ev.Name)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", logging.Error(err))
		case path := <-w.ready:
			w.process(ctx, path)
		}
	}
}

func (w *Watcher) existing() []string {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Warn("scan watch directory failed", logging.Error(err))
		return nil
	}
	var paths []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && source.IsLogbook(entry.Name()) {
			paths = append(paths, filepath.Join(w.dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		select {
		case w.ready <- path:
		case <-w.stop:
		}
	})
}

func (w *Watcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.pending[path]; ok {
		timer.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) process(ctx context.Context, path string) {
	logger := w.logger.With(logging.String(logging.FieldSource, path))
	result, err := w.importer.ImportFile(ctx, path)
	if err != nil {
		logging.WarnWithContext(logger, "watched logbook not imported", "watch_import_failed",
			"fix or remove the file; it is retried when written again", logging.Error(err))
		return
	}
	if result.Duplicate {
		logger.Debug("watched logbook already imported", logging.String(logging.FieldImportID, result.Import.ID))
		return
	}
	logger.Info("watched logbook imported", logging.String(logging.FieldImportID, result.Import.ID))
}
