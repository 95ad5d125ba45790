// Package pages decides which views a page shows and assembles them into one response.
package pages

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
)

// Anchor names one view slot on a page.
type Anchor string

const (
	AnchorHeader         Anchor = "header"
	AnchorRankings       Anchor = "rankings"
	AnchorRankingsSorted Anchor = "rankings-sorted"
	AnchorBracket        Anchor = "bracket"
	AnchorTeam           Anchor = "team"
	AnchorStandings      Anchor = "standings"
	AnchorPolls          Anchor = "polls"
	AnchorChampionship   Anchor = "championship"
	AnchorSources        Anchor = "sources"
)

var knownAnchors = map[Anchor]bool{
	AnchorHeader: true, AnchorRankings: true, AnchorRankingsSorted: true, AnchorBracket: true,
	AnchorTeam: true, AnchorStandings: true, AnchorPolls: true, AnchorChampionship: true, AnchorSources: true,
}

// Mode is an explicit page intent. Team and standings pages read a query parameter.
type Mode string

const (
	ModeOverview  Mode = "overview"
	ModeTeam      Mode = "team"
	ModeStandings Mode = "standings"
)

// Page is a configured page with its anchors resolved.
type Page struct {
	Path    string
	Title   string
	Source  string
	Mode    Mode
	Anchors []Anchor
}

// Has reports whether the page declares the anchor.
func (p Page) Has(a Anchor) bool {
	for _, x := range p.Anchors {
		if x == a {
			return true
		}
	}
	return false
}

// FromConfig resolves a configured page. A team or standings mode adds its anchor when missing.
func FromConfig(cfg config.Page) (Page, error) {
	p := Page{
		Path:   cfg.Path,
		Title:  cfg.Title,
		Source: cfg.Source,
		Mode:   Mode(strings.ToLower(strings.TrimSpace(cfg.Mode))),
	}
	switch p.Mode {
	case "":
		p.Mode = ModeOverview
	case ModeOverview, ModeTeam, ModeStandings:
	default:
		return Page{}, fmt.Errorf("page %s: unknown mode %q", cfg.Path, cfg.Mode)
	}
	for _, raw := range cfg.Anchors {
		a := Anchor(strings.ToLower(strings.TrimSpace(raw)))
		if !knownAnchors[a] {
			return Page{}, fmt.Errorf("page %s: unknown anchor %q", cfg.Path, raw)
		}
		p.Anchors = append(p.Anchors, a)
	}
	switch p.Mode {
	case ModeTeam:
		if !p.Has(AnchorTeam) {
			p.Anchors = append(p.Anchors, AnchorTeam)
		}
	case ModeStandings:
		if !p.Has(AnchorStandings) {
			p.Anchors = append(p.Anchors, AnchorStandings)
		}
	}
	if p.Title == "" {
		p.Title = p.Path
	}
	return p, nil
}

// Query is the page's request parameters.
type Query struct {
	Team       string
	Conference string
}

// QueryFrom reads ?team= and ?conf= from URL values.
func QueryFrom(values url.Values) Query {
	return Query{
		Team:       strings.TrimSpace(values.Get("team")),
		Conference: strings.TrimSpace(values.Get("conf")),
	}
}
