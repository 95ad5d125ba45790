package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_site.yaml
var defaultSiteYAML []byte

// Source names one JSON season document. Path is relative to the data dir (or DATA_BASE_URL);
// URL, when set, wins over both.
type Source struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
	Path  string `yaml:"path"`
	URL   string `yaml:"url"`
}

// Page declares one rendered page and the views it wants.
type Page struct {
	Path    string   `yaml:"path"`
	Title   string   `yaml:"title"`
	Source  string   `yaml:"source"`
	Mode    string   `yaml:"mode"`
	Anchors []string `yaml:"anchors"`
}

// Pairing is one first-round bracket slot, high seed hosting low seed.
type Pairing struct {
	High int `yaml:"high"`
	Low  int `yaml:"low"`
}

// BracketConfig overrides the bracket layout a document carries (or the 12-team default).
type BracketConfig struct {
	FirstRound []Pairing `yaml:"first_round"`
	Byes       []int     `yaml:"byes"`
}

// Site is the YAML site description: which documents exist and which pages render them.
type Site struct {
	Title   string         `yaml:"title"`
	Sources []Source       `yaml:"sources"`
	Pages   []Page         `yaml:"pages"`
	Bracket *BracketConfig `yaml:"bracket,omitempty"`
}

// LoadSite reads the site file at path. A missing file falls back to the embedded default.
func LoadSite(path string) (Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSite()
		}
		return Site{}, fmt.Errorf("read site config %s: %w", path, err)
	}
	return ParseSite(data)
}

// DefaultSite returns the embedded site description.
func DefaultSite() (Site, error) {
	return ParseSite(defaultSiteYAML)
}

// ParseSite decodes and validates a site description.
func ParseSite(data []byte) (Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return Site{}, fmt.Errorf("parse site config: %w", err)
	}
	if err := site.Validate(); err != nil {
		return Site{}, err
	}
	return site, nil
}

// Validate checks that every page points at a declared source and sources are unique.
func (s Site) Validate() error {
	if len(s.Sources) == 0 {
		return errors.New("site config: no sources declared")
	}
	seen := make(map[string]struct{}, len(s.Sources))
	for _, src := range s.Sources {
		name := strings.TrimSpace(src.Name)
		if name == "" {
			return errors.New("site config: source without name")
		}
		if src.Path == "" && src.URL == "" {
			return fmt.Errorf("site config: source %q needs a path or url", name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("site config: duplicate source %q", name)
		}
		seen[name] = struct{}{}
	}
	paths := make(map[string]struct{}, len(s.Pages))
	for _, p := range s.Pages {
		if !strings.HasPrefix(p.Path, "/") {
			return fmt.Errorf("site config: page path %q must start with /", p.Path)
		}
		if reservedPath(p.Path) {
			return fmt.Errorf("site config: page path %q is reserved", p.Path)
		}
		if _, dup := paths[p.Path]; dup {
			return fmt.Errorf("site config: duplicate page %q", p.Path)
		}
		paths[p.Path] = struct{}{}
		if _, ok := seen[p.Source]; !ok {
			return fmt.Errorf("site config: page %q references unknown source %q", p.Path, p.Source)
		}
	}
	if s.Bracket != nil {
		for _, pr := range s.Bracket.FirstRound {
			if pr.High <= 0 || pr.Low <= 0 {
				return fmt.Errorf("site config: bracket pairing %dv%d must use positive seeds", pr.High, pr.Low)
			}
		}
	}
	return nil
}

// reservedPath reports whether path collides with a fixed service route.
func reservedPath(path string) bool {
	switch path {
	case "/health", "/ready", "/refresh":
		return true
	}
	return strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/admin/") || strings.ContainsAny(path, "{}?# ")
}

// Source looks up a source by name.
func (s Site) Source(name string) (Source, bool) {
	for _, src := range s.Sources {
		if src.Name == name {
			return src, true
		}
	}
	return Source{}, false
}

// Page looks up a page by path.
func (s Site) Page(path string) (Page, bool) {
	for _, p := range s.Pages {
		if p.Path == path {
			return p, true
		}
	}
	return Page{}, false
}

// SourceForFile returns the source whose path matches the given file name.
func (s Site) SourceForFile(name string) (Source, bool) {
	for _, src := range s.Sources {
		if src.URL == "" && src.Path == name {
			return src, true
		}
	}
	return Source{}, false
}
