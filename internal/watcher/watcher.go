// Package watcher refreshes file-backed sources when their JSON changes on disk.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	appseason "github.com/preston-bernstein/cfp-rankings-service/internal/app/season"
	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
	"github.com/preston-bernstein/cfp-rankings-service/internal/logging"
)

const (
	defaultDebounce = 250 * time.Millisecond
	sweepDivisor    = 5
)

// Refresher refreshes one named source.
type Refresher interface {
	Refresh(ctx context.Context, name string) (appseason.Outcome, error)
}

// Watcher maps write and create events in the data directory onto source refreshes.
type Watcher struct {
	dir       string
	site      config.Site
	refresher Refresher
	logger    *slog.Logger
	debounce  time.Duration

	mu      sync.Mutex
	fs      *fsnotify.Watcher
	pending map[string]time.Time
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New constructs a Watcher for dir. A non-positive debounce falls back to 250ms.
func New(dir string, site config.Site, refresher Refresher, logger *slog.Logger, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		dir:       dir,
		site:      site,
		refresher: refresher,
		logger:    logger,
		debounce:  debounce,
		pending:   make(map[string]time.Time),
	}
}

// Start begins watching. It returns once the directory is registered.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return err
	}
	w.fs = fsw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true

	go w.run(ctx, fsw, w.stopCh, w.doneCh)
	logging.Info(w.logger, "watching data directory", "dir", w.dir)
	return nil
}

// Stop halts the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	stopCh, doneCh, fsw := w.stopCh, w.doneCh, w.fs
	w.mu.Unlock()

	close(stopCh)
	<-doneCh
	return fsw.Close()
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	sweep := time.NewTicker(w.debounce / sweepDivisor)
	defer sweep.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event, time.Now())
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logging.Warn(w.logger, "data directory watch error", "error", err)
		case now := <-sweep.C:
			w.flush(ctx, now)
		}
	}
}

// handleEvent records a pending refresh for write and create events on a configured file.
func (w *Watcher) handleEvent(event fsnotify.Event, at time.Time) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	src, ok := w.sourceFor(event.Name)
	if !ok {
		return
	}
	w.mu.Lock()
	w.pending[src.Name] = at
	w.mu.Unlock()
}

func (w *Watcher) sourceFor(path string) (config.Source, bool) {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil {
		return config.Source{}, false
	}
	return w.site.SourceForFile(filepath.ToSlash(rel))
}

// flush refreshes every source whose last event is older than the debounce window.
func (w *Watcher) flush(ctx context.Context, now time.Time) {
	w.mu.Lock()
	var due []string
	for name, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			due = append(due, name)
			delete(w.pending, name)
		}
	}
	w.mu.Unlock()

	for _, name := range due {
		logging.Info(w.logger, "data file changed", logging.FieldSource, name)
		if _, err := w.refresher.Refresh(ctx, name); err != nil {
			logging.Warn(w.logger, "refresh after file change failed", logging.FieldSource, name, "error", err)
		}
	}
}
