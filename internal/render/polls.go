package render

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
)

func pollColumns(links Links) []Column[season.PollEntry] {
	return []Column[season.PollEntry]{
		{Header: "Rank", Class: "seed", Cell: func(e season.PollEntry) templ.Component { return Text(seedText(e.Rank)) }},
		{Header: "Team", Class: "team", Cell: func(e season.PollEntry) templ.Component { return TeamLink(links, e.TeamID, e.Team) }},
		{Header: "Record", Class: "record", Cell: func(e season.PollEntry) templ.Component { return Text(e.Record) }},
		{Header: "Conference", Class: "conference", Cell: func(e season.PollEntry) templ.Component { return Text(e.Conference) }},
		{Header: "Move", Class: "movement", Cell: func(e season.PollEntry) templ.Component { return MovementBadge(e.Delta) }},
	}
}

// Polls renders one table per poll, in document order.
func Polls(doc season.Document, links Links) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		b.open("section", "id", "polls", "class", "polls")
		b.element("h2", "Polls")
		if len(doc.Polls) == 0 {
			b.element("p", "No polls available.", "class", "empty")
		}
		for _, p := range doc.Polls {
			b.open("div", "class", "poll")
			b.open("h3")
			b.text(orPlaceholder(p.Name))
			b.render(ctx, Ref(doc.Sources, p.SourceID))
			b.close("h3")
			if len(p.Entries) == 0 {
				b.element("p", "No teams listed.", "class", "empty")
			} else {
				b.render(ctx, Table(TableSpec[season.PollEntry]{
					Class:   "poll-table",
					Columns: pollColumns(links),
				}, p.Entries))
			}
			b.close("div")
		}
		b.close("section")
		return b.err
	})
}
