package season

import (
	"sort"
	"time"
)

// Placeholder is shown for free-text fields the upstream document left out.
const Placeholder = "—"

// Shape identifies which upstream document layout a Document was normalized from.
type Shape string

const (
	ShapeLegacy     Shape = "legacy"
	ShapeSeason     Shape = "season"
	ShapeMultiSport Shape = "multisport"
)

// Document is the canonical season document every renderer reads.
type Document struct {
	Meta         Meta           `json:"meta"`
	LastUpdated  time.Time      `json:"lastUpdated"`
	Sources      []Source       `json:"sources"`
	CFPSourceID  string         `json:"cfpSourceId,omitempty"`
	ConfSourceID string         `json:"confSourceId,omitempty"`
	Rankings     []RankingEntry `json:"rankings"`
	Polls        []Poll         `json:"polls"`
	Conferences  []Conference   `json:"conferences"`
	Games        []Game         `json:"games"`
	Teams        []TeamRecord   `json:"teams"`
	Bracket      Bracket        `json:"bracket"`
}

// Meta is the season header.
type Meta struct {
	Sport       string    `json:"sport,omitempty"`
	Season      string    `json:"season,omitempty"`
	Week        string    `json:"week,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
	Shape       Shape     `json:"shape"`
}

// RankingEntry is one ranked team at a point in time. Seed 0 means the entry carried no rank.
type RankingEntry struct {
	Seed       int            `json:"seed"`
	Team       string         `json:"team"`
	TeamID     string         `json:"teamId"`
	Record     string         `json:"record"`
	Conference string         `json:"conference"`
	Delta      *int           `json:"delta,omitempty"`
	Status     LockStatus     `json:"status"`
	LockReason string         `json:"lockReason,omitempty"`
	Scenarios  []SpotScenario `json:"scenarios,omitempty"`
}

// Ranked reports whether the entry carries a seed.
func (e RankingEntry) Ranked() bool {
	return e.Seed > 0
}

// SpotScenario describes how another team could take this slot.
type SpotScenario struct {
	Team string `json:"team"`
	Path string `json:"path"`
}

// TeamRecord is the richer per-team profile used by team detail pages.
type TeamRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Conference  string          `json:"conference"`
	Record      string          `json:"record"`
	Seed        int             `json:"seed"`
	Outlook     Outlook         `json:"outlook"`
	Schedule    []ScheduledGame `json:"schedule"`
	NotableWins []string        `json:"notableWins"`
	RiskFactors []string        `json:"riskFactors"`
}

// Outlook holds the best/likely/worst case narratives.
type Outlook struct {
	Best   string `json:"best,omitempty"`
	Likely string `json:"likely,omitempty"`
	Worst  string `json:"worst,omitempty"`
}

// Empty reports whether no scenario text is present.
func (o Outlook) Empty() bool {
	return o.Best == "" && o.Likely == "" && o.Worst == ""
}

// ScheduledGame is one game on a team's remaining schedule.
type ScheduledGame struct {
	Opponent       string     `json:"opponent"`
	Location       Location   `json:"location"`
	Date           string     `json:"date"`
	ConferenceGame bool       `json:"conferenceGame"`
	Status         GameStatus `json:"status"`
	Result         string     `json:"result,omitempty"`
}

// Poll is a named poll with its own ordered entries.
type Poll struct {
	Name     string      `json:"name"`
	SourceID string      `json:"sourceId,omitempty"`
	Entries  []PollEntry `json:"entries"`
}

// PollEntry is one row of a poll.
type PollEntry struct {
	Rank       int    `json:"rank"`
	Team       string `json:"team"`
	TeamID     string `json:"teamId"`
	Record     string `json:"record"`
	Conference string `json:"conference"`
	Delta      *int   `json:"delta,omitempty"`
}

// Conference is a named conference standings table.
type Conference struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Rows []StandingRow `json:"rows"`
}

// StandingRow is one team in a conference table. Points are kept as text since feeds mix strings and numbers.
type StandingRow struct {
	Team             string `json:"team"`
	TeamID           string `json:"teamId"`
	Overall          string `json:"overall"`
	ConferenceRecord string `json:"conferenceRecord"`
	PointsFor        string `json:"pointsFor"`
	PointsAgainst    string `json:"pointsAgainst"`
}

// Game is a scheduled or completed game from the document's games list.
type Game struct {
	ID           string     `json:"id"`
	Home         string     `json:"home"`
	Away         string     `json:"away"`
	HomeScore    *int       `json:"homeScore,omitempty"`
	AwayScore    *int       `json:"awayScore,omitempty"`
	Status       GameStatus `json:"status"`
	Kickoff      string     `json:"kickoff,omitempty"`
	Conference   string     `json:"conference,omitempty"`
	Note         string     `json:"note,omitempty"`
	Championship bool       `json:"championship"`
}

// Pairing is one first-round bracket slot.
type Pairing struct {
	High int `json:"high"`
	Low  int `json:"low"`
}

// Bracket describes the seeding layout. Byes[i] meets the winner of FirstRound[i].
type Bracket struct {
	FirstRound []Pairing `json:"firstRound"`
	Byes       []int     `json:"byes"`
}

// DefaultBracket is the 12-team playoff layout.
func DefaultBracket() Bracket {
	return Bracket{
		FirstRound: []Pairing{{High: 5, Low: 12}, {High: 8, Low: 9}, {High: 6, Low: 11}, {High: 7, Low: 10}},
		Byes:       []int{4, 1, 3, 2},
	}
}

// Empty reports whether no pairings are configured.
func (b Bracket) Empty() bool {
	return len(b.FirstRound) == 0
}

// Source is one citation in the sources footer.
type Source struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// ChampionshipGames returns the games flagged as conference championships, in document order.
func (d Document) ChampionshipGames() []Game {
	var out []Game
	for _, g := range d.Games {
		if g.Championship {
			out = append(out, g)
		}
	}
	return out
}

// Team finds a team profile by id. A display name or any spelling with the same slug
// ("Ohio State", "Ohio-State") matches too.
func (d Document) Team(id string) (TeamRecord, bool) {
	for _, t := range d.Teams {
		if t.ID == id {
			return t, true
		}
	}
	slug := Slug(id)
	if slug == "" {
		return TeamRecord{}, false
	}
	for _, t := range d.Teams {
		if Slug(t.ID) == slug {
			return t, true
		}
	}
	return TeamRecord{}, false
}

// TeamsByRank returns every team profile ordered ascending by seed; unranked teams follow in document order.
func (d Document) TeamsByRank() []TeamRecord {
	out := make([]TeamRecord, len(d.Teams))
	copy(out, d.Teams)
	sort.SliceStable(out, func(i, j int) bool {
		return RankKey(out[i].Seed) < RankKey(out[j].Seed)
	})
	return out
}
