package testutil

import (
	"embed"
	"encoding/json"
	"testing"
	"time"

	"github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
)

//go:embed testdata/*.json
var testdata embed.FS

// Fixture names under testdata.
const (
	LegacyFixture     = "cfp_data.json"
	SeasonFixture     = "cfp-2025.json"
	MultiSportFixture = "ncaaf-2025.json"
)

// FixtureBytes returns the raw bytes of a testdata document.
func FixtureBytes(t testing.TB, name string) []byte {
	t.Helper()
	data, err := testdata.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

// RawDocument decodes a testdata document into the generic form providers return.
func RawDocument(t testing.TB, name string) map[string]any {
	t.Helper()
	var doc map[string]any
	if err := json.Unmarshal(FixtureBytes(t, name), &doc); err != nil {
		t.Fatalf("decode fixture %s: %v", name, err)
	}
	return doc
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// SampleRanking returns a minimal in-play ranking entry.
func SampleRanking(seed int, team string) season.RankingEntry {
	return season.RankingEntry{
		Seed:       seed,
		Team:       team,
		TeamID:     season.Slug(team),
		Record:     "10-2",
		Conference: "SEC",
		Status:     season.StatusInPlay,
	}
}

// SampleDocument builds a small canonical document covering every view.
func SampleDocument() season.Document {
	georgia := SampleRanking(3, "Georgia")
	georgia.Delta = IntPtr(2)
	oregon := SampleRanking(5, "Oregon")
	oregon.Conference = "Big Ten"
	oregon.Delta = IntPtr(-1)
	ohio := SampleRanking(1, "Ohio State")
	ohio.Conference = "Big Ten"
	ohio.Record = "12-0"
	ohio.Status = season.StatusLocked
	ohio.LockReason = "Bye secured"
	miami := SampleRanking(0, "Miami")
	miami.Conference = "ACC"
	miami.Status = season.StatusEliminated
	miami.Scenarios = []season.SpotScenario{{Team: "Miami", Path: "Needs chaos"}}

	return season.Document{
		Meta:        season.Meta{Sport: "ncaaf", Season: "2025", Week: "Week 14", Shape: season.ShapeSeason},
		LastUpdated: time.Date(2025, 11, 25, 23, 0, 0, 0, time.UTC),
		Sources: []season.Source{
			{ID: "CFP", Label: "CFP Rankings", URL: "https://collegefootballplayoff.com"},
			{ID: "AP", Label: "AP Top 25", URL: "https://apnews.com"},
		},
		CFPSourceID:  "CFP",
		ConfSourceID: "STANDINGS",
		Rankings:     []season.RankingEntry{georgia, oregon, ohio, miami},
		Polls: []season.Poll{{
			Name:     "AP Top 25",
			SourceID: "AP",
			Entries: []season.PollEntry{
				{Rank: 1, Team: "Ohio State", TeamID: "ohio-state", Record: "12-0", Conference: "Big Ten"},
				{Rank: 2, Team: "Georgia", TeamID: "georgia", Record: "10-2", Conference: "SEC", Delta: IntPtr(1)},
			},
		}},
		Conferences: []season.Conference{
			{ID: "sec", Name: "SEC", Rows: []season.StandingRow{
				{Team: "Georgia", TeamID: "georgia", Overall: "10-2", ConferenceRecord: "7-1", PointsFor: "410", PointsAgainst: "190"},
			}},
			{ID: "big-ten", Name: "Big Ten", Rows: []season.StandingRow{
				{Team: "Ohio State", TeamID: "ohio-state", Overall: "12-0", ConferenceRecord: "9-0", PointsFor: "450", PointsAgainst: season.Placeholder},
			}},
		},
		Games: []season.Game{
			{ID: "g1", Home: "Georgia", Away: "Alabama", Status: season.GameUpcoming, Kickoff: "2025-12-06T16:00:00-05:00", Conference: "SEC", Note: "SEC Championship", Championship: true},
			{ID: "g2", Home: "Michigan", Away: "Ohio State", HomeScore: IntPtr(9), AwayScore: IntPtr(27), Status: season.GameFinal},
		},
		Teams: []season.TeamRecord{
			{ID: "georgia", Name: "Georgia", Conference: "SEC", Record: "10-2", Seed: 3,
				Outlook:     season.Outlook{Best: "Wins the SEC", Likely: "Top-six seed"},
				Schedule:    []season.ScheduledGame{{Opponent: "Alabama", Location: season.LocationNeutral, Date: "2025-12-06", ConferenceGame: true, Status: season.GameUpcoming}},
				NotableWins: []string{"Texas"},
				RiskFactors: []string{"Turnovers"},
			},
			{ID: "oregon", Name: "Oregon", Conference: "Big Ten", Record: "10-2", Seed: 5},
			{ID: "ohio-state", Name: "Ohio State", Conference: "Big Ten", Record: "12-0", Seed: 1},
			{ID: "miami", Name: "Miami", Conference: "ACC", Record: "10-2"},
		},
		Bracket: season.DefaultBracket(),
	}
}
