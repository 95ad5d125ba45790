package render

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
)

// TeamDetail renders the profile for id, or the not-found view when no team matches.
func TeamDetail(doc season.Document, id string, links Links) templ.Component {
	team, ok := doc.Team(id)
	if !ok {
		return TeamNotFound(doc, id, links)
	}
	return teamProfile(doc, team, links)
}

// TeamNotFound explains the miss and lists every team so the reader can move on.
func TeamNotFound(doc season.Document, id string, links Links) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		b.open("section", "id", "team", "class", "team team-not-found")
		b.element("p", `No team matches "`+id+`".`, "class", "notice")
		b.render(ctx, TeamList(doc, links))
		b.close("section")
		return b.err
	})
}

// TeamList links every team in the document, ascending by rank with unranked teams last.
func TeamList(doc season.Document, links Links) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		b.open("nav", "class", "team-list", "aria-label", "Teams")
		b.element("h3", "All teams")
		teams := doc.TeamsByRank()
		if len(teams) == 0 {
			b.element("p", "No teams available.", "class", "empty")
			b.close("nav")
			return b.err
		}
		b.open("ul")
		for _, t := range teams {
			b.open("li")
			b.render(ctx, TeamLink(links, t.ID, t.Name))
			if t.Seed > 0 {
				b.raw(" ")
				b.element("span", "#"+seedText(t.Seed), "class", "seed")
			}
			b.close("li")
		}
		b.close("ul")
		b.close("nav")
		return b.err
	})
}

func scheduleColumns() []Column[season.ScheduledGame] {
	return []Column[season.ScheduledGame]{
		{Header: "Date", Class: "date", Cell: func(g season.ScheduledGame) templ.Component { return Text(orPlaceholder(g.Date)) }},
		{Header: "Opponent", Class: "opponent", Cell: func(g season.ScheduledGame) templ.Component {
			return Text(g.Location.Prefix() + " " + orPlaceholder(g.Opponent))
		}},
		{Header: "Conf", Class: "conf-game", Cell: func(g season.ScheduledGame) templ.Component {
			if g.ConferenceGame {
				return Text("✓")
			}
			return Text("")
		}},
		{Header: "Status", Class: "game-status", Cell: func(g season.ScheduledGame) templ.Component { return Text(g.Status.Label()) }},
		{Header: "Result", Class: "result", Cell: func(g season.ScheduledGame) templ.Component { return Text(g.Result) }},
	}
}

func teamProfile(doc season.Document, team season.TeamRecord, links Links) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		b.open("section", "id", "team", "class", "team")
		b.element("h2", team.Name)

		b.open("dl", "class", "team-facts")
		b.element("dt", "Seed")
		b.element("dd", seedOrUnranked(team.Seed))
		b.element("dt", "Record")
		b.element("dd", orPlaceholder(team.Record))
		b.element("dt", "Conference")
		b.element("dd", orPlaceholder(team.Conference))
		if entry, ok := rankingFor(doc.Rankings, team.ID); ok {
			b.element("dt", "Status")
			b.open("dd")
			b.render(ctx, StatusBadge(entry.Status, entry.LockReason))
			if entry.LockReason != "" {
				b.raw(" ")
				b.element("span", entry.LockReason, "class", "lock-reason")
			}
			b.close("dd")
			b.element("dt", "Move")
			b.open("dd")
			b.render(ctx, MovementBadge(entry.Delta))
			b.close("dd")
		}
		b.close("dl")

		b.open("div", "class", "outlook")
		b.element("h3", "Outlook")
		if team.Outlook.Empty() {
			b.element("p", "No outlook available.", "class", "empty")
		} else {
			b.open("dl")
			for _, c := range []struct{ label, text string }{
				{"Best case", team.Outlook.Best},
				{"Likely", team.Outlook.Likely},
				{"Worst case", team.Outlook.Worst},
			} {
				if c.text == "" {
					continue
				}
				b.element("dt", c.label)
				b.element("dd", c.text)
			}
			b.close("dl")
		}
		b.close("div")

		b.open("div", "class", "schedule")
		b.element("h3", "Remaining Schedule")
		if len(team.Schedule) == 0 {
			b.element("p", "No games listed.", "class", "empty")
		} else {
			b.render(ctx, Table(TableSpec[season.ScheduledGame]{
				Class:   "schedule-table",
				Columns: scheduleColumns(),
				RowClass: func(g season.ScheduledGame) string {
					return "game-" + string(g.Status)
				},
			}, team.Schedule))
		}
		b.close("div")

		b.list("Notable Wins", "notable-wins", team.NotableWins)
		b.list("Risk Factors", "risk-factors", team.RiskFactors)

		if scenarios := scenariosFor(doc.Rankings, team.ID); len(scenarios) > 0 {
			b.open("div", "class", "spot-scenarios")
			b.element("h3", "Spot Scenarios")
			b.open("ul")
			for _, sc := range scenarios {
				b.open("li")
				b.element("strong", sc.Team)
				if sc.Path != "" {
					b.raw(": ")
					b.text(sc.Path)
				}
				b.close("li")
			}
			b.close("ul")
			b.close("div")
		}

		b.open("p", "class", "back")
		b.link(links.page("/"), "All rankings")
		b.close("p")
		b.close("section")
		return b.err
	})
}

func (b *writer) list(title, class string, items []string) {
	b.open("div", "class", class)
	b.element("h3", title)
	if len(items) == 0 {
		b.element("p", "None listed.", "class", "empty")
	} else {
		b.open("ul")
		for _, item := range items {
			b.element("li", item)
		}
		b.close("ul")
	}
	b.close("div")
}

func seedOrUnranked(seed int) string {
	if seed <= 0 {
		return "Unranked"
	}
	return "#" + seedText(seed)
}

func rankingFor(rankings []season.RankingEntry, id string) (season.RankingEntry, bool) {
	for _, r := range rankings {
		if r.TeamID == id {
			return r, true
		}
	}
	return season.RankingEntry{}, false
}

func scenariosFor(rankings []season.RankingEntry, id string) []season.SpotScenario {
	if r, ok := rankingFor(rankings, id); ok {
		return r.Scenarios
	}
	return nil
}
