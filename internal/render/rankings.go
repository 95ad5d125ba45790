package render

import (
	"context"
	"io"
	"sort"

	"github.com/a-h/templ"

	"github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
)

// Order selects how Rankings orders its rows.
type Order int

const (
	// AsGiven keeps the producer's order.
	AsGiven Order = iota
	// ByRank sorts ascending by seed; entries without a seed go last.
	ByRank
)

// SortByRank returns a stably sorted copy; the input is untouched.
func SortByRank(entries []season.RankingEntry) []season.RankingEntry {
	out := make([]season.RankingEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return season.RankKey(out[i].Seed) < season.RankKey(out[j].Seed)
	})
	return out
}

// Ordered applies order to entries.
func Ordered(entries []season.RankingEntry, order Order) []season.RankingEntry {
	if order == ByRank {
		return SortByRank(entries)
	}
	return entries
}

// TeamLink renders a link to the team page, or plain text when the team has no id.
func TeamLink(links Links, id, name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		if href := links.team(id); href != "" {
			b.link(href, orPlaceholder(name), "class", "team-link")
		} else {
			b.text(orPlaceholder(name))
		}
		return b.err
	})
}

// StatusBadge renders the lock status with the lock reason as its title.
func StatusBadge(status season.LockStatus, reason string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		b.element("span", status.Label(), "class", "status status-"+string(status), "title", reason)
		return b.err
	})
}

func rankingColumns(links Links) []Column[season.RankingEntry] {
	return []Column[season.RankingEntry]{
		{Header: "Seed", Class: "seed", Cell: func(e season.RankingEntry) templ.Component { return Text(seedText(e.Seed)) }},
		{Header: "Team", Class: "team", Cell: func(e season.RankingEntry) templ.Component { return TeamLink(links, e.TeamID, e.Team) }},
		{Header: "Record", Class: "record", Cell: func(e season.RankingEntry) templ.Component { return Text(e.Record) }},
		{Header: "Conference", Class: "conference", Cell: func(e season.RankingEntry) templ.Component { return Text(e.Conference) }},
		{Header: "Move", Class: "movement", Cell: func(e season.RankingEntry) templ.Component { return MovementBadge(e.Delta) }},
		{Header: "Status", Class: "lock", Cell: func(e season.RankingEntry) templ.Component { return StatusBadge(e.Status, e.LockReason) }},
	}
}

// RankingsTable renders the ranking entries in the requested order.
func RankingsTable(entries []season.RankingEntry, order Order, links Links) templ.Component {
	return Table(TableSpec[season.RankingEntry]{
		Class:    "rankings-table",
		Columns:  rankingColumns(links),
		RowClass: func(e season.RankingEntry) string { return "row-" + string(e.Status) },
	}, Ordered(entries, order))
}

// Rankings renders the rankings section with its citation marker.
func Rankings(doc season.Document, order Order, links Links) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		id := "rankings"
		if order == ByRank {
			id = "rankings-sorted"
		}
		b.open("section", "id", id, "class", "rankings")
		b.open("h2")
		b.text("CFP Rankings")
		b.render(ctx, Ref(doc.Sources, doc.CFPSourceID))
		b.close("h2")
		if len(doc.Rankings) == 0 {
			b.element("p", "No rankings available.", "class", "empty")
		} else {
			b.render(ctx, RankingsTable(doc.Rankings, order, links))
		}
		b.close("section")
		return b.err
	})
}
