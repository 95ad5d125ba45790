package render

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
)

// TBD is shown for a bracket seat whose seed has no ranked team.
const TBD = "TBD"

// Seat is one side of a bracket game. An empty Team means the seed is unfilled.
type Seat struct {
	Seed   int
	Team   string
	TeamID string
}

// Filled reports whether a team holds the seat.
func (s Seat) Filled() bool {
	return s.Team != ""
}

// Name is the team name or TBD.
func (s Seat) Name() string {
	if s.Filled() {
		return s.Team
	}
	return TBD
}

// BracketGame is a first-round game, High hosting Low.
type BracketGame struct {
	High Seat
	Low  Seat
}

// Label is the "5/12" style game name used for winner placeholders.
func (g BracketGame) Label() string {
	return strconv.Itoa(g.High.Seed) + "/" + strconv.Itoa(g.Low.Seed)
}

// Quarterfinal pairs a bye seed with the winner of a first-round game.
type Quarterfinal struct {
	Bye    Seat
	Feeder BracketGame
}

// BracketLayout is the two-round structure derived from the rankings.
type BracketLayout struct {
	FirstRound    []BracketGame
	Quarterfinals []Quarterfinal
}

// BuildBracket seats teams by seed. When two entries share a seed the first one wins.
// Byes[i] meets the winner of FirstRound[i]; a missing bye is an unfilled seat.
func BuildBracket(rankings []season.RankingEntry, cfg season.Bracket) BracketLayout {
	bySeed := make(map[int]season.RankingEntry, len(rankings))
	for _, r := range rankings {
		if !r.Ranked() {
			continue
		}
		if _, taken := bySeed[r.Seed]; !taken {
			bySeed[r.Seed] = r
		}
	}
	seat := func(seed int) Seat {
		s := Seat{Seed: seed}
		if r, ok := bySeed[seed]; ok && seed > 0 {
			s.Team = r.Team
			s.TeamID = r.TeamID
		}
		return s
	}

	layout := BracketLayout{
		FirstRound:    make([]BracketGame, 0, len(cfg.FirstRound)),
		Quarterfinals: make([]Quarterfinal, 0, len(cfg.FirstRound)),
	}
	for i, pr := range cfg.FirstRound {
		game := BracketGame{High: seat(pr.High), Low: seat(pr.Low)}
		layout.FirstRound = append(layout.FirstRound, game)

		bye := 0
		if i < len(cfg.Byes) {
			bye = cfg.Byes[i]
		}
		layout.Quarterfinals = append(layout.Quarterfinals, Quarterfinal{Bye: seat(bye), Feeder: game})
	}
	return layout
}

func (b *writer) seat(s Seat, links Links) {
	class := "seat"
	if !s.Filled() {
		class = "seat seat-tbd"
	}
	b.open("span", "class", class)
	if s.Seed > 0 {
		b.element("span", strconv.Itoa(s.Seed), "class", "seed")
		b.raw(" ")
	}
	if href := links.team(s.TeamID); href != "" && s.Filled() {
		b.link(href, s.Name(), "class", "team-link")
	} else {
		b.text(s.Name())
	}
	b.close("span")
}

// Bracket renders the projected first round and quarterfinals.
func Bracket(layout BracketLayout, links Links) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		b.open("section", "id", "bracket", "class", "bracket")
		b.element("h2", "Projected Bracket")
		if len(layout.FirstRound) == 0 {
			b.element("p", "No bracket available.", "class", "empty")
			b.close("section")
			return b.err
		}

		b.open("div", "class", "round round-first")
		b.element("h3", "First Round")
		b.open("ol", "class", "matchups")
		for _, g := range layout.FirstRound {
			b.open("li", "class", "matchup")
			b.seat(g.High, links)
			b.raw(` <span class="vs">vs</span> `)
			b.seat(g.Low, links)
			b.close("li")
		}
		b.close("ol")
		b.close("div")

		b.open("div", "class", "round round-quarter")
		b.element("h3", "Quarterfinals")
		b.open("ol", "class", "matchups")
		for _, q := range layout.Quarterfinals {
			b.open("li", "class", "matchup")
			b.seat(q.Bye, links)
			b.raw(` <span class="vs">vs</span> `)
			b.element("span", "Winner of "+q.Feeder.Label(), "class", "seat seat-winner")
			b.close("li")
		}
		b.close("ol")
		b.close("div")
		b.close("section")
		return b.err
	})
}
