// Package publish writes a rendered site to disk.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/a-h/templ"
)

// Writer persists exported files atomically and keeps the manifest current.
type Writer struct {
	basePath string
	now      func() time.Time

	mu    sync.Mutex
	pages map[string]struct{}
}

// NewWriter constructs a writer rooted at basePath.
func NewWriter(basePath string) *Writer {
	return &Writer{
		basePath: basePath,
		now:      time.Now,
		pages:    make(map[string]struct{}),
	}
}

// BasePath exposes the output root.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WritePage renders c into rel. It reports whether the file changed on disk.
func (w *Writer) WritePage(ctx context.Context, rel string, c templ.Component) (bool, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return false, fmt.Errorf("render %s: %w", rel, err)
	}
	changed, err := w.WriteFile(rel, buf.Bytes())
	if err != nil {
		return false, err
	}
	w.mu.Lock()
	w.pages[rel] = struct{}{}
	w.mu.Unlock()
	return changed, nil
}

// WriteJSON writes v as indented JSON into rel.
func (w *Writer) WriteJSON(rel string, v any) (bool, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return false, err
	}
	return w.WriteFile(rel, append(data, '\n'))
}

// WriteFile replaces rel with data through a temp file and rename. Identical bytes are left alone.
func (w *Writer) WriteFile(rel string, data []byte) (bool, error) {
	if w == nil {
		return false, fmt.Errorf("publish writer not configured")
	}
	target, err := w.target(rel)
	if err != nil {
		return false, err
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, err
	}
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return false, err
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return false, err
	}
	return true, nil
}

// Pages returns the page files written so far, sorted.
func (w *Writer) Pages() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.pages))
	for p := range w.pages {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// WriteManifest records the written pages and each source's last-updated time.
func (w *Writer) WriteManifest(sources map[string]time.Time) (Manifest, error) {
	m := defaultManifest()
	m.GeneratedAt = w.now().UTC()
	m.Pages = w.Pages()
	for name, at := range sources {
		m.Sources[name] = at.UTC()
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return Manifest{}, err
	}
	if _, err := w.WriteFile(manifestName, data); err != nil {
		return Manifest{}, err
	}
	return m, nil
}
