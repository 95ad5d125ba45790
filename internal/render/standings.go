package render

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
)

// standingsScript toggles the hidden attribute on conference tables when the select changes.
const standingsScript = `<script>
(function () {
  var select = document.getElementById("standings-select");
  if (!select) { return; }
  select.addEventListener("change", function () {
    var tables = document.querySelectorAll("[data-conference]");
    for (var i = 0; i < tables.length; i++) {
      tables[i].hidden = tables[i].getAttribute("data-conference") !== select.value;
    }
  });
})();
</script>`

func standingColumns() []Column[season.StandingRow] {
	return []Column[season.StandingRow]{
		{Header: "Team", Class: "team", Cell: func(r season.StandingRow) templ.Component { return Text(orPlaceholder(r.Team)) }},
		{Header: "Overall", Class: "record", Cell: func(r season.StandingRow) templ.Component { return Text(r.Overall) }},
		{Header: "Conf", Class: "record", Cell: func(r season.StandingRow) templ.Component { return Text(r.ConferenceRecord) }},
		{Header: "PF", Class: "points", Cell: func(r season.StandingRow) templ.Component { return Text(r.PointsFor) }},
		{Header: "PA", Class: "points", Cell: func(r season.StandingRow) templ.Component { return Text(r.PointsAgainst) }},
	}
}

// ActiveConference resolves the requested conference id, falling back to the first conference.
func ActiveConference(conferences []season.Conference, requested string) string {
	for _, c := range conferences {
		if c.ID == requested {
			return c.ID
		}
	}
	if len(conferences) > 0 {
		return conferences[0].ID
	}
	return ""
}

// Standings renders every conference table with only the active one visible, plus a
// select that swaps tables in the browser without another request.
func Standings(doc season.Document, requested string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		b.open("section", "id", "standings", "class", "standings")
		b.open("h2")
		b.text("Conference Standings")
		b.render(ctx, Ref(doc.Sources, doc.ConfSourceID))
		b.close("h2")

		if len(doc.Conferences) == 0 {
			b.element("p", "No standings available.", "class", "empty")
			b.close("section")
			return b.err
		}

		active := ActiveConference(doc.Conferences, requested)
		b.element("label", "Conference", "for", "standings-select")
		b.raw(" ")
		b.open("select", "id", "standings-select", "name", "conf")
		for _, c := range doc.Conferences {
			selected := ""
			if c.ID == active {
				selected = "selected"
			}
			b.element("option", c.Name, "value", c.ID, "selected", selected)
		}
		b.close("select")

		for _, c := range doc.Conferences {
			hidden := "hidden"
			if c.ID == active {
				hidden = ""
			}
			b.open("div", "class", "standings-conference", "data-conference", c.ID, "hidden", hidden)
			if len(c.Rows) == 0 {
				b.element("p", "No teams listed.", "class", "empty")
			} else {
				b.render(ctx, Table(TableSpec[season.StandingRow]{
					Caption: c.Name,
					Class:   "standings-table",
					Columns: standingColumns(),
				}, c.Rows))
			}
			b.close("div")
		}
		b.raw(standingsScript)
		b.close("section")
		return b.err
	})
}
