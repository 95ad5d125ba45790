package publish

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

const manifestName = "manifest.json"

// PageFile maps a page path onto its exported file: "/" is index.html, "/rankings" is rankings.html.
func PageFile(pagePath string) string {
	clean := strings.Trim(path.Clean("/"+pagePath), "/")
	if clean == "" {
		return "index.html"
	}
	return clean + ".html"
}

// TeamFile is the exported file for a team detail page.
func TeamFile(id string) string {
	return path.Join("team", id+".html")
}

// DocumentFile is the exported canonical JSON for a source.
func DocumentFile(source string) string {
	return path.Join("data", source+".json")
}

func (w *Writer) target(rel string) (string, error) {
	clean := path.Clean("/" + filepath.ToSlash(rel))
	if clean == "/" {
		return "", fmt.Errorf("invalid output path %q", rel)
	}
	return filepath.Join(w.basePath, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
