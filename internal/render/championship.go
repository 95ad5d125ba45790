package render

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
	"github.com/preston-bernstein/cfp-rankings-service/internal/timeutil"
)

// Kickoff formats a game's kickoff for display, passing unparseable text through.
func Kickoff(raw string) string {
	if t, ok := timeutil.ParseTimestamp(raw); ok {
		return timeutil.FormatDisplay(t)
	}
	return raw
}

// Matchup is "Away at Home", or whichever side is known.
func Matchup(g season.Game) string {
	switch {
	case g.Home != "" && g.Away != "":
		return g.Away + " at " + g.Home
	case g.Home != "":
		return g.Home
	case g.Away != "":
		return g.Away
	}
	return TBD
}

// Score renders "Away 27, Home 24" once a game has started and both scores are known.
func Score(g season.Game) string {
	if g.Status == season.GameUpcoming || g.HomeScore == nil || g.AwayScore == nil {
		return ""
	}
	return orPlaceholder(g.Away) + " " + strconv.Itoa(*g.AwayScore) + ", " + orPlaceholder(g.Home) + " " + strconv.Itoa(*g.HomeScore)
}

// Championship renders conference championship games as cards.
func Championship(doc season.Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		b.open("section", "id", "championship", "class", "championship")
		b.element("h2", "Championship Weekend")
		games := doc.ChampionshipGames()
		if len(games) == 0 {
			b.element("p", "No championship games scheduled.", "class", "empty")
			b.close("section")
			return b.err
		}
		b.open("div", "class", "cards")
		for _, g := range games {
			b.open("article", "class", "game-card game-"+string(g.Status))
			if g.Conference != "" {
				b.element("p", g.Conference, "class", "conference")
			}
			b.element("h3", Matchup(g))
			if k := Kickoff(g.Kickoff); k != "" {
				b.element("p", k, "class", "kickoff")
			}
			b.element("p", g.Status.Label(), "class", "game-status")
			if s := Score(g); s != "" {
				b.element("p", s, "class", "score")
			}
			if g.Note != "" {
				b.element("p", g.Note, "class", "note")
			}
			b.close("article")
		}
		b.close("div")
		b.close("section")
		return b.err
	})
}
