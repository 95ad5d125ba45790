package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/goleak"

	appseason "github.com/preston-bernstein/cfp-rankings-service/internal/app/season"
	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingRefresher struct {
	mu    sync.Mutex
	names []string
	calls chan string
}

func (r *recordingRefresher) Refresh(ctx context.Context, name string) (appseason.Outcome, error) {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()
	if r.calls != nil {
		r.calls <- name
	}
	return appseason.Outcome{Source: name, Applied: true}, nil
}

func (r *recordingRefresher) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

func testSite() config.Site {
	return config.Site{Sources: []config.Source{
		{Name: "cfp", Path: "cfp-2025.json"},
		{Name: "legacy", Path: "cfp_data.json"},
		{Name: "remote", URL: "https://example.com/cfp.json"},
	}}
}

func TestWatcherRefreshesChangedSource(t *testing.T) {
	dir := t.TempDir()
	r := &recordingRefresher{calls: make(chan string, 4)}
	w := New(dir, testSite(), r, nil, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() {
		if err := w.Stop(); err != nil {
			t.Fatalf("stop: %v", err)
		}
	}()

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(dir, "cfp-2025.json"), []byte(`{"rankings":[]}`), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-r.calls:
		if name != "cfp" {
			t.Fatalf("expected cfp refresh, got %s", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for refresh")
	}

	time.Sleep(60 * time.Millisecond)
	if got := r.seen(); len(got) != 1 {
		t.Fatalf("expected rapid writes to coalesce into one refresh, got %v", got)
	}
}

func TestWatcherIgnoresUnknownAndRemovedFiles(t *testing.T) {
	dir := t.TempDir()
	r := &recordingRefresher{}
	w := New(dir, testSite(), r, nil, time.Millisecond)

	now := time.Now()
	w.handleEvent(fsnotify.Event{Name: filepath.Join(dir, "other.json"), Op: fsnotify.Write}, now)
	w.handleEvent(fsnotify.Event{Name: filepath.Join(dir, "cfp_data.json"), Op: fsnotify.Remove}, now)
	w.handleEvent(fsnotify.Event{Name: filepath.Join(dir, "cfp_data.json"), Op: fsnotify.Chmod}, now)
	w.flush(context.Background(), now.Add(time.Second))

	if got := r.seen(); len(got) != 0 {
		t.Fatalf("expected no refreshes, got %v", got)
	}
}

func TestWatcherFlushWaitsForDebounce(t *testing.T) {
	dir := t.TempDir()
	r := &recordingRefresher{}
	w := New(dir, testSite(), r, nil, 250*time.Millisecond)

	now := time.Now()
	w.handleEvent(fsnotify.Event{Name: filepath.Join(dir, "cfp_data.json"), Op: fsnotify.Create}, now)

	w.flush(context.Background(), now.Add(100*time.Millisecond))
	if got := r.seen(); len(got) != 0 {
		t.Fatalf("expected no refresh inside the window, got %v", got)
	}

	w.flush(context.Background(), now.Add(250*time.Millisecond))
	if got := r.seen(); len(got) != 1 || got[0] != "legacy" {
		t.Fatalf("expected one legacy refresh, got %v", got)
	}
}

func TestWatcherStartFailsForMissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), testSite(), &recordingRefresher{}, nil, 0)
	if err := w.Start(context.Background()); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if w.debounce != defaultDebounce {
		t.Fatalf("expected default debounce, got %s", w.debounce)
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w := New(t.TempDir(), testSite(), &recordingRefresher{}, nil, 0)
	if err := w.Stop(); err != nil {
		t.Fatalf("stop before start: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("second start: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}
