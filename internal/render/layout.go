package render

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
	"github.com/preston-bernstein/cfp-rankings-service/internal/providers"
	"github.com/preston-bernstein/cfp-rankings-service/internal/timeutil"
)

// NavItem is one entry of the site navigation.
type NavItem struct {
	Path   string
	Title  string
	Active bool
}

// RefreshControl describes the refresh form. Nil hides it (static export).
type RefreshControl struct {
	Action string
	Source string
	Return string
}

// Shell is the page chrome around the rendered views.
type Shell struct {
	SiteTitle   string
	Title       string
	Nav         []NavItem
	LastUpdated time.Time
	Refresh     *RefreshControl
	Links       Links
}

const stylesheet = `
body{font-family:system-ui,sans-serif;margin:0;color:#1b1f24;background:#f7f7f9}
.site-header{background:#13294b;color:#fff;padding:.75rem 1rem;display:flex;gap:1.5rem;align-items:center;flex-wrap:wrap}
.site-header a{color:#fff;text-decoration:none}
.site-header a[aria-current]{text-decoration:underline}
.brand{font-weight:700}
main{max-width:960px;margin:0 auto;padding:1rem}
table{border-collapse:collapse;width:100%;margin:.5rem 0 1.5rem;background:#fff}
th,td{padding:.4rem .6rem;border-bottom:1px solid #e1e4e8;text-align:left}
.move-up{color:#1a7f37}.move-down{color:#cf222e}.move-flat{color:#6e7781}
.status{border-radius:999px;padding:.1rem .5rem;font-size:.8rem;background:#eaeef2}
.status-locked{background:#dafbe1}.status-eliminated{background:#ffebe9}
.seat-tbd{color:#6e7781;font-style:italic}
.cards{display:grid;grid-template-columns:repeat(auto-fill,minmax(220px,1fr));gap:1rem}
.game-card{background:#fff;border:1px solid #e1e4e8;border-radius:8px;padding:.75rem}
.load-failed{background:#ffebe9;border:1px solid #cf222e;border-radius:6px;padding:1rem}
.loading{color:#6e7781}
.notice{background:#fff8c5;padding:.5rem .75rem;border-radius:6px}
.empty{color:#6e7781}
.ref a{text-decoration:none}
`

// Layout wraps body in the page shell: title, navigation, last-updated line and refresh control.
func Layout(shell Shell, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		title := shell.Title
		if shell.SiteTitle != "" && shell.SiteTitle != shell.Title {
			title = shell.Title + " · " + shell.SiteTitle
		}
		b.raw("<!DOCTYPE html>")
		b.open("html", "lang", "en")
		b.open("head")
		b.raw(`<meta charset="utf-8">`, `<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.element("title", title)
		b.raw("<style>", stylesheet, "</style>")
		b.close("head")
		b.open("body")

		b.open("header", "class", "site-header")
		b.link(shell.Links.page("/"), shell.SiteTitle, "class", "brand")
		if len(shell.Nav) > 0 {
			b.open("nav", "aria-label", "Pages")
			for _, item := range shell.Nav {
				current := ""
				if item.Active {
					current = "page"
				}
				b.link(shell.Links.page(item.Path), item.Title, "aria-current", current)
				b.raw(" ")
			}
			b.close("nav")
		}
		b.close("header")

		b.open("main", "id", "content")
		b.element("h1", shell.Title)
		if !shell.LastUpdated.IsZero() {
			b.open("p", "class", "last-updated")
			b.text("Last updated: ")
			b.element("time", timeutil.FormatDisplay(shell.LastUpdated), "datetime", shell.LastUpdated.UTC().Format(time.RFC3339))
			b.close("p")
		}
		if r := shell.Refresh; r != nil {
			b.open("form", "class", "refresh", "method", "post", "action", refreshAction(*r))
			b.raw(`<button type="submit">Refresh</button>`)
			b.close("form")
		}
		b.render(ctx, body)
		b.close("main")
		b.close("body")
		b.close("html")
		return b.err
	})
}

func refreshAction(r RefreshControl) string {
	var q []string
	if r.Source != "" {
		q = append(q, "source="+url.QueryEscape(r.Source))
	}
	if r.Return != "" {
		q = append(q, "return="+url.QueryEscape(r.Return))
	}
	if len(q) == 0 {
		return r.Action
	}
	return r.Action + "?" + strings.Join(q, "&")
}

// Header renders the season line: sport, season and week when known.
func Header(doc season.Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		var parts []string
		if doc.Meta.Sport != "" {
			parts = append(parts, strings.ToUpper(doc.Meta.Sport))
		}
		if doc.Meta.Season != "" {
			parts = append(parts, doc.Meta.Season)
		}
		if doc.Meta.Week != "" {
			parts = append(parts, doc.Meta.Week)
		}
		b.open("section", "id", "header", "class", "season-header")
		if len(parts) > 0 {
			b.element("p", strings.Join(parts, " · "), "class", "season")
		}
		b.close("section")
		return b.err
	})
}

// LoadFailedMessage describes a fetch failure for readers, telling status failures from bad bodies.
func LoadFailedMessage(err error) string {
	if loadErr, ok := providers.AsLoadError(err); ok {
		return "Failed to load data: the server answered HTTP " + strconv.Itoa(loadErr.StatusCode) + "."
	}
	if _, ok := providers.AsParseError(err); ok {
		return "Failed to load data: the response was not valid JSON."
	}
	if err == nil {
		return "Failed to load data."
	}
	return "Failed to load data: " + err.Error()
}

// LoadFailed renders the inline failure message and nothing else.
func LoadFailed(err error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		b.open("div", "class", "load-failed", "role", "alert")
		b.element("p", LoadFailedMessage(err))
		b.element("p", "Use Refresh to try again.", "class", "hint")
		b.close("div")
		return b.err
	})
}

// Loading renders the in-flight state.
func Loading() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		b.element("div", "Refreshing…", "class", "loading", "aria-busy", "true")
		return b.err
	})
}
