package pages

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
	"github.com/preston-bernstein/cfp-rankings-service/internal/providers"
	"github.com/preston-bernstein/cfp-rankings-service/internal/render"
	"github.com/preston-bernstein/cfp-rankings-service/internal/store"
	"github.com/preston-bernstein/cfp-rankings-service/internal/testutil"
)

func newInitializer(t *testing.T) *Initializer {
	t.Helper()
	site, err := config.DefaultSite()
	require.NoError(t, err)
	in, err := NewInitializer(site, render.ServerLinks("/team"), "/refresh")
	require.NoError(t, err)
	return in
}

func compose(t *testing.T, in *Initializer, path string, result store.Result, committed bool, q Query) (string, int) {
	t.Helper()
	page, ok := in.Page(path)
	require.True(t, ok, path)
	c, status := in.Compose(page, result, committed, q)
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String(), status
}

func sectionIDs(t *testing.T, body string) []string {
	t.Helper()
	root, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)
	var ids []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "section" || n.Data == "footer") {
			for _, a := range n.Attr {
				if a.Key == "id" {
					ids = append(ids, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return ids
}

func committedSample() store.Result {
	return store.Result{Seq: 1, Document: testutil.SampleDocument()}
}

func TestFromConfigModeAddsAnchor(t *testing.T) {
	p, err := FromConfig(config.Page{Path: "/team", Mode: "Team", Anchors: []string{"header"}})
	require.NoError(t, err)
	assert.Equal(t, ModeTeam, p.Mode)
	assert.Equal(t, []Anchor{AnchorHeader, AnchorTeam}, p.Anchors)

	p, err = FromConfig(config.Page{Path: "/s", Mode: "standings"})
	require.NoError(t, err)
	assert.True(t, p.Has(AnchorStandings))

	p, err = FromConfig(config.Page{Path: "/x", Anchors: []string{"rankings"}})
	require.NoError(t, err)
	assert.Equal(t, ModeOverview, p.Mode)
	assert.Equal(t, "/x", p.Title)

	_, err = FromConfig(config.Page{Path: "/bad", Anchors: []string{"scoreboard"}})
	assert.Error(t, err)
	_, err = FromConfig(config.Page{Path: "/bad", Mode: "kiosk"})
	assert.Error(t, err)
}

func TestQueryFrom(t *testing.T) {
	q := QueryFrom(url.Values{"team": {" georgia "}, "conf": {"sec"}})
	assert.Equal(t, Query{Team: "georgia", Conference: "sec"}, q)
}

func TestComposeDispatchesAnchorsInOrder(t *testing.T) {
	in := newInitializer(t)
	body, status := compose(t, in, "/", committedSample(), true, Query{})

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"header", "rankings", "bracket", "championship", "sources"}, sectionIDs(t, body))
	assert.Contains(t, body, "Last updated")
	assert.Contains(t, body, `action="/refresh?source=cfp&amp;return=%2F"`)
}

func TestComposeFetchFailureShowsOnlyMessage(t *testing.T) {
	in := newInitializer(t)
	failed := store.Result{Seq: 2, Err: &providers.LoadError{Source: "cfp", StatusCode: http.StatusNotFound}}

	body, status := compose(t, in, "/", failed, true, Query{})
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, body, "HTTP 404")
	assert.Empty(t, sectionIDs(t, body), "no partial content next to the failure")
	assert.NotContains(t, body, "Ohio State")
	assert.NotContains(t, body, "Last updated")
}

func TestComposeNothingCommittedShowsLoading(t *testing.T) {
	in := newInitializer(t)
	body, status := compose(t, in, "/rankings", store.Result{}, false, Query{})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Refreshing…")
	assert.Empty(t, sectionIDs(t, body))
}

func TestComposeTeamModes(t *testing.T) {
	in := newInitializer(t)

	body, status := compose(t, in, "/team", committedSample(), true, Query{Team: "georgia"})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<title>Georgia · College Football Playoff</title>")
	assert.Contains(t, body, `action="/refresh?source=cfp&amp;return=%2Fteam%3Fteam%3Dgeorgia"`)
	assert.Contains(t, body, "Remaining Schedule")

	for _, spelling := range []string{"Georgia", "GEORGIA"} {
		body, status = compose(t, in, "/team", committedSample(), true, Query{Team: spelling})
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "<h2>Georgia</h2>", spelling)
		assert.NotContains(t, body, "No team matches", spelling)
	}

	body, status = compose(t, in, "/team", committedSample(), true, Query{Team: "nope"})
	assert.Equal(t, http.StatusOK, status, "an unknown team is a fallback view, not an error")
	assert.Contains(t, body, `No team matches &#34;nope&#34;.`)

	body, status = compose(t, in, "/team", committedSample(), true, Query{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "No team selected.")
	assert.Contains(t, body, `href="/team?team=ohio-state"`)
}

func TestComposeStandingsUsesConfQuery(t *testing.T) {
	in := newInitializer(t)
	body, _ := compose(t, in, "/standings", committedSample(), true, Query{Conference: "big-ten"})
	assert.Contains(t, body, `<option value="big-ten" selected="selected">`)
}

func TestComposeNavSkipsTeamPage(t *testing.T) {
	in := newInitializer(t)
	body, _ := compose(t, in, "/polls", committedSample(), true, Query{})
	assert.Contains(t, body, `href="/rankings"`)
	assert.NotContains(t, body, `href="/team"`)
	assert.Contains(t, body, `aria-current="page"`)
}

func TestWithLinksForStaticExport(t *testing.T) {
	site, err := config.DefaultSite()
	require.NoError(t, err)
	in, err := NewInitializer(site, render.ServerLinks("/team"), "")
	require.NoError(t, err)

	static := in.WithLinks(render.StaticLinks(""))
	body, _ := compose(t, static, "/rankings", committedSample(), true, Query{})
	assert.Contains(t, body, `href="team/georgia.html"`)
	assert.NotContains(t, body, "<form")

	original, _ := compose(t, in, "/rankings", committedSample(), true, Query{})
	assert.Contains(t, original, `href="/team?team=georgia"`, "WithLinks must not change the receiver")
}

func TestComposeIsIdempotent(t *testing.T) {
	in := newInitializer(t)
	first, _ := compose(t, in, "/", committedSample(), true, Query{})
	second, _ := compose(t, in, "/", committedSample(), true, Query{})
	assert.Equal(t, first, second)
}

func TestComposeFailureAfterSuccessDropsStaleContent(t *testing.T) {
	st := store.NewDocumentStore()
	st.Commit("cfp", store.Result{Seq: st.Begin("cfp"), Document: testutil.SampleDocument()})
	st.Commit("cfp", store.Result{Seq: st.Begin("cfp"), Err: &providers.LoadError{Source: "cfp", StatusCode: 404}})

	in := newInitializer(t)
	result, ok := st.Current("cfp")
	body, status := compose(t, in, "/rankings", result, ok, Query{})
	assert.Equal(t, http.StatusBadGateway, status)
	assert.NotContains(t, body, "Georgia")
}

func TestNewInitializerRejectsBadPages(t *testing.T) {
	site := config.Site{Pages: []config.Page{{Path: "/", Anchors: []string{"nope"}}}}
	_, err := NewInitializer(site, render.Links{}, "")
	assert.Error(t, err)
}

func TestTeamPageLookup(t *testing.T) {
	in := newInitializer(t)
	p, ok := in.TeamPage()
	require.True(t, ok)
	assert.Equal(t, "/team", p.Path)
	assert.Len(t, in.Pages(), 7)

	_, ok = newInitializerWithout(t, ModeTeam).TeamPage()
	assert.False(t, ok)
}

func newInitializerWithout(t *testing.T, mode Mode) *Initializer {
	t.Helper()
	in := newInitializer(t)
	var kept []Page
	for _, p := range in.Pages() {
		if p.Mode != mode {
			kept = append(kept, p)
		}
	}
	in.pages = kept
	return in
}
