package termview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
	"github.com/preston-bernstein/cfp-rankings-service/internal/normalize"
	"github.com/preston-bernstein/cfp-rankings-service/internal/render"
	"github.com/preston-bernstein/cfp-rankings-service/internal/timeutil"
)

var rankingHeaders = []string{"Seed", "Team", "Record", "Conference", "Move", "Status"}

const moveColumn = 4

// Rankings renders the rankings as a bordered table, preceded by the season line.
func Rankings(doc season.Document, order render.Order, st Styles) string {
	entries := render.Ordered(doc.Rankings, order)

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			seed(e.Seed),
			e.Team,
			orDash(e.Record),
			orDash(e.Conference),
			render.Movement(e.Delta),
			status(e),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Border).
		Headers(rankingHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Header
			}
			if col == moveColumn && row >= 0 && row < len(entries) {
				return st.Cell.Inherit(moveStyle(st, entries[row].Delta))
			}
			return st.Cell
		})

	var b strings.Builder
	b.WriteString(st.Title.Render(title(doc)))
	b.WriteString("\n")
	if !doc.LastUpdated.IsZero() {
		b.WriteString(st.Subtitle.Render("Last updated: " + timeutil.FormatDisplay(doc.LastUpdated)))
		b.WriteString("\n")
	}
	if len(entries) == 0 {
		b.WriteString(st.Subtitle.Render("No rankings available."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}

// Report summarizes a normalized document and its warnings for validation output.
func Report(source string, doc season.Document, warnings []normalize.Warning, st Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render(source))
	b.WriteString("\n")
	fmt.Fprintf(&b, "shape:       %s\n", doc.Meta.Shape)
	if !doc.LastUpdated.IsZero() {
		fmt.Fprintf(&b, "updated:     %s\n", timeutil.FormatDisplay(doc.LastUpdated))
	}
	fmt.Fprintf(&b, "rankings:    %d\n", len(doc.Rankings))
	fmt.Fprintf(&b, "polls:       %d\n", len(doc.Polls))
	fmt.Fprintf(&b, "conferences: %d\n", len(doc.Conferences))
	fmt.Fprintf(&b, "games:       %d\n", len(doc.Games))
	fmt.Fprintf(&b, "teams:       %d\n", len(doc.Teams))
	fmt.Fprintf(&b, "sources:     %d\n", len(doc.Sources))
	if len(warnings) == 0 {
		b.WriteString(st.Subtitle.Render("no warnings"))
		b.WriteString("\n")
		return b.String()
	}
	fmt.Fprintf(&b, "warnings:    %d\n", len(warnings))
	for _, w := range warnings {
		b.WriteString(st.Warning.Render("  ! " + w.String()))
		b.WriteString("\n")
	}
	return b.String()
}

func title(doc season.Document) string {
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
	if len(parts) == 0 {
		return "CFP Rankings"
	}
	return "CFP Rankings · " + strings.Join(parts, " · ")
}

func moveStyle(st Styles, delta *int) lipgloss.Style {
	switch {
	case delta == nil || *delta == 0:
		return st.Flat
	case *delta > 0:
		return st.Up
	default:
		return st.Down
	}
}

func status(e season.RankingEntry) string {
	if e.LockReason != "" {
		return e.Status.Label() + " (" + e.LockReason + ")"
	}
	return e.Status.Label()
}

func seed(n int) string {
	if n <= 0 {
		return "—"
	}
	return fmt.Sprint(n)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
