package pages

import (
	"net/http"
	"net/url"

	"github.com/a-h/templ"

	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
	"github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
	"github.com/preston-bernstein/cfp-rankings-service/internal/render"
	"github.com/preston-bernstein/cfp-rankings-service/internal/store"
)

// Initializer composes configured pages from committed results.
type Initializer struct {
	siteTitle     string
	pages         []Page
	links         render.Links
	refreshAction string
}

// NewInitializer resolves every page in site. refreshAction is the refresh form target;
// empty hides the control.
func NewInitializer(site config.Site, links render.Links, refreshAction string) (*Initializer, error) {
	in := &Initializer{
		siteTitle:     site.Title,
		links:         links,
		refreshAction: refreshAction,
	}
	for _, cfg := range site.Pages {
		p, err := FromConfig(cfg)
		if err != nil {
			return nil, err
		}
		in.pages = append(in.pages, p)
	}
	return in, nil
}

// WithLinks returns a copy that renders links with l.
func (in *Initializer) WithLinks(l render.Links) *Initializer {
	cp := *in
	cp.links = l
	return &cp
}

// Pages returns the resolved pages in declaration order.
func (in *Initializer) Pages() []Page {
	out := make([]Page, len(in.pages))
	copy(out, in.pages)
	return out
}

// Page looks up a page by path.
func (in *Initializer) Page(path string) (Page, bool) {
	for _, p := range in.pages {
		if p.Path == path {
			return p, true
		}
	}
	return Page{}, false
}

// TeamPage returns the first page in team mode.
func (in *Initializer) TeamPage() (Page, bool) {
	for _, p := range in.pages {
		if p.Mode == ModeTeam {
			return p, true
		}
	}
	return Page{}, false
}

// Compose renders page for the committed result and returns the HTTP status to send.
// A failed fetch shows only the failure message; nothing committed yet shows the loading state.
func (in *Initializer) Compose(page Page, result store.Result, committed bool, q Query) (templ.Component, int) {
	shell := in.shell(page, q)

	switch {
	case !committed:
		return render.Layout(shell, render.Loading()), http.StatusOK
	case result.Failed():
		return render.Layout(shell, render.LoadFailed(result.Err)), http.StatusBadGateway
	}

	doc := result.Document
	shell.LastUpdated = doc.LastUpdated
	if shell.LastUpdated.IsZero() {
		shell.LastUpdated = doc.Meta.GeneratedAt
	}

	status := http.StatusOK
	views := make([]templ.Component, 0, len(page.Anchors))
	for _, a := range page.Anchors {
		view, code := in.view(a, doc, q)
		if code != http.StatusOK {
			status = code
		}
		views = append(views, view)
	}
	if page.Mode == ModeTeam && q.Team != "" {
		if team, ok := doc.Team(q.Team); ok {
			shell.Title = team.Name
		}
	}
	return render.Layout(shell, render.Join(views...)), status
}

func (in *Initializer) view(a Anchor, doc season.Document, q Query) (templ.Component, int) {
	switch a {
	case AnchorHeader:
		return render.Header(doc), http.StatusOK
	case AnchorRankings:
		return render.Rankings(doc, render.AsGiven, in.links), http.StatusOK
	case AnchorRankingsSorted:
		return render.Rankings(doc, render.ByRank, in.links), http.StatusOK
	case AnchorBracket:
		return render.Bracket(render.BuildBracket(doc.Rankings, doc.Bracket), in.links), http.StatusOK
	case AnchorTeam:
		if q.Team == "" {
			return render.Join(
				render.Message("No team selected. Pick a team below."),
				render.TeamList(doc, in.links),
			), http.StatusBadRequest
		}
		return render.TeamDetail(doc, q.Team, in.links), http.StatusOK
	case AnchorStandings:
		return render.Standings(doc, q.Conference), http.StatusOK
	case AnchorPolls:
		return render.Polls(doc, in.links), http.StatusOK
	case AnchorChampionship:
		return render.Championship(doc), http.StatusOK
	case AnchorSources:
		return render.SourcesFooter(doc.Sources), http.StatusOK
	}
	return templ.NopComponent, http.StatusOK
}

func (in *Initializer) shell(page Page, q Query) render.Shell {
	shell := render.Shell{
		SiteTitle: in.siteTitle,
		Title:     page.Title,
		Links:     in.links,
	}
	for _, p := range in.pages {
		if p.Mode == ModeTeam {
			continue
		}
		shell.Nav = append(shell.Nav, render.NavItem{Path: p.Path, Title: p.Title, Active: p.Path == page.Path})
	}
	if in.refreshAction != "" {
		shell.Refresh = &render.RefreshControl{Action: in.refreshAction, Source: page.Source, Return: returnPath(page, q)}
	}
	return shell
}

// returnPath is where the refresh control sends the reader back to, keeping the page's query.
func returnPath(page Page, q Query) string {
	values := url.Values{}
	switch page.Mode {
	case ModeTeam:
		if q.Team != "" {
			values.Set("team", q.Team)
		}
	case ModeStandings:
		if q.Conference != "" {
			values.Set("conf", q.Conference)
		}
	}
	if len(values) == 0 {
		return page.Path
	}
	return page.Path + "?" + values.Encode()
}
