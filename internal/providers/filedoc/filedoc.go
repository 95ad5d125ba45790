// Package filedoc reads season documents from a local data directory.
package filedoc

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
	"github.com/preston-bernstein/cfp-rankings-service/internal/providers"
)

// Provider serves documents from disk. Every fetch re-reads the file.
type Provider struct {
	dir  string
	open func(name string) (*os.File, error)
}

// New creates a provider rooted at dir.
func New(dir string) *Provider {
	return &Provider{dir: dir, open: os.Open}
}

// Dir returns the data directory the provider reads from.
func (p *Provider) Dir() string {
	return p.dir
}

// FetchDocument loads source.Path relative to the data directory.
// A missing file reports 404 and any other read failure 500, mirroring an HTTP origin.
func (p *Provider) FetchDocument(ctx context.Context, source config.Source) (providers.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := p.resolve(source)
	if err != nil {
		return nil, err
	}

	f, err := p.open(name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, fs.ErrNotExist) {
			status = http.StatusNotFound
		}
		return nil, &providers.LoadError{Source: source.Name, StatusCode: status, Message: err.Error()}
	}
	defer f.Close()

	return providers.DecodeDocument(source.Name, f)
}

func (p *Provider) resolve(source config.Source) (string, error) {
	rel := filepath.Clean("/" + strings.TrimSpace(source.Path))
	if rel == "/" {
		return "", &providers.LoadError{Source: source.Name, StatusCode: http.StatusNotFound, Message: "no path configured"}
	}
	return filepath.Join(p.dir, rel), nil
}
