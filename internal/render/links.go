package render

import (
	"net/url"
	"strings"
)

// Links decides where team and page links point. Served pages and the static export differ.
type Links struct {
	Team func(id string) string
	Page func(path string) string
}

// ServerLinks links teams to teamPath?team=<slug> and pages to their own paths.
// An empty teamPath renders team names without links.
func ServerLinks(teamPath string) Links {
	if teamPath == "" {
		return Links{Page: func(path string) string { return path }}
	}
	return Links{
		Team: func(id string) string {
			return teamPath + "?team=" + url.QueryEscape(id)
		},
		Page: func(path string) string { return path },
	}
}

// StaticLinks links to exported files relative to base ("" at the site root, "../" one level down).
func StaticLinks(base string) Links {
	return Links{
		Team: func(id string) string {
			return base + "team/" + url.PathEscape(id) + ".html"
		},
		Page: func(path string) string {
			return base + StaticFile(path)
		},
	}
}

// StaticFile maps a page path onto its exported file name.
func StaticFile(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "index.html"
	}
	return trimmed + ".html"
}

func (l Links) team(id string) string {
	if l.Team == nil || id == "" {
		return ""
	}
	return l.Team(id)
}

func (l Links) page(path string) string {
	if l.Page == nil {
		return path
	}
	return l.Page(path)
}
