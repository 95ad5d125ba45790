package render

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
)

// SourceAnchor is the fragment id of the nth citation (1-based).
func SourceAnchor(n int) string {
	return "source-" + strconv.Itoa(n)
}

// citation returns the 1-based footer position of the source with the given id.
func citation(sources []season.Source, id string) (int, bool) {
	for i, src := range sources {
		if src.ID == id {
			return i + 1, true
		}
	}
	return 0, false
}

// Ref renders a citation marker. A known id links to its footer entry; an unknown numeric
// id renders its number without a link, and anything else renders [?].
func Ref(sources []season.Source, id string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if id == "" {
			return nil
		}
		b := newWriter(w)
		if n, ok := citation(sources, id); ok {
			b.open("sup", "class", "ref")
			b.link("#"+SourceAnchor(n), "["+strconv.Itoa(n)+"]")
			b.close("sup")
			return b.err
		}
		label := "[?]"
		if n, err := strconv.Atoi(id); err == nil {
			label = "[" + strconv.Itoa(n) + "]"
		}
		b.element("sup", label, "class", "ref ref-dangling")
		return b.err
	})
}

// SourcesFooter renders the numbered citation list.
func SourcesFooter(sources []season.Source) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		b.open("footer", "id", "sources", "class", "sources")
		b.element("h2", "Sources")
		if len(sources) == 0 {
			b.element("p", "No sources listed.", "class", "empty")
			b.close("footer")
			return b.err
		}
		b.open("ol")
		for i, src := range sources {
			b.open("li", "id", SourceAnchor(i+1))
			label := src.Label
			if label == "" {
				label = src.ID
			}
			if src.URL != "" {
				b.link(src.URL, label, "rel", "noopener noreferrer")
			} else {
				b.text(label)
			}
			b.close("li")
		}
		b.close("ol")
		b.close("footer")
		return b.err
	})
}
