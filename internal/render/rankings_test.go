package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
	"github.com/preston-bernstein/cfp-rankings-service/internal/normalize"
	"github.com/preston-bernstein/cfp-rankings-service/internal/testutil"
)

func TestMovement(t *testing.T) {
	cases := []struct {
		delta *int
		want  string
	}{
		{delta: testutil.IntPtr(3), want: "▲3"},
		{delta: testutil.IntPtr(-4), want: "▼4"},
		{delta: testutil.IntPtr(0), want: "–"},
		{delta: nil, want: "–"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Movement(tc.delta))
	}
}

func TestRankingsRendersMovementInInputOrder(t *testing.T) {
	doc := normalize.Document(map[string]any{
		"rankings": []any{
			map[string]any{"seed": 1.0, "team": "A", "delta": 2.0},
			map[string]any{"seed": 2.0, "team": "B", "delta": -1.0},
			map[string]any{"seed": 3.0, "team": "C", "delta": 0.0},
		},
	})

	root := parse(t, Rankings(doc, AsGiven, ServerLinks("/team")))
	assert.Equal(t, []string{"A", "B", "C"}, columnTexts(root, "team"))
	assert.Equal(t, []string{"▲2", "▼1", "–"}, columnTexts(root, "movement"))
}

func TestRankingsAsGivenKeepsProducerOrder(t *testing.T) {
	doc := season.Document{Rankings: []season.RankingEntry{
		testutil.SampleRanking(3, "Georgia"),
		testutil.SampleRanking(0, "Navy"),
		testutil.SampleRanking(1, "Ohio State"),
	}}
	root := parse(t, Rankings(doc, AsGiven, Links{}))
	assert.Equal(t, []string{"3", "—", "1"}, columnTexts(root, "seed"))
}

func TestRankingsByRankSortsAscendingWithUnrankedLast(t *testing.T) {
	entries := []season.RankingEntry{
		testutil.SampleRanking(3, "Georgia"),
		testutil.SampleRanking(0, "Navy"),
		testutil.SampleRanking(1, "Ohio State"),
		testutil.SampleRanking(0, "Army"),
		testutil.SampleRanking(2, "Indiana"),
	}
	doc := season.Document{Rankings: entries}

	root := parse(t, Rankings(doc, ByRank, Links{}))
	assert.Equal(t, []string{"Ohio State", "Indiana", "Georgia", "Navy", "Army"}, columnTexts(root, "team"))
	assert.Equal(t, "Georgia", entries[0].Team, "sorting must not mutate the input")

	sections := findAll(root, byTag("section"))
	require.Len(t, sections, 1)
	assert.Equal(t, "rankings-sorted", attr(sections[0], "id"))
}

func TestRankingsLinksTeamsAndShowsStatus(t *testing.T) {
	doc := testutil.SampleDocument()
	root := parse(t, Rankings(doc, AsGiven, ServerLinks("/team")))

	links := findAll(root, byClass("team-link"))
	require.Len(t, links, len(doc.Rankings))
	assert.Equal(t, "/team?team=georgia", attr(links[0], "href"))

	badges := findAll(root, byClass("status-locked"))
	require.Len(t, badges, 1)
	assert.Equal(t, "Bye secured", attr(badges[0], "title"))

	refs := findAll(root, byClass("ref"))
	require.Len(t, refs, 1)
	assert.Equal(t, "[1]", textOf(refs[0]))
}

func TestRankingsEmptyState(t *testing.T) {
	out := renderString(t, Rankings(season.Document{}, AsGiven, Links{}))
	assert.Contains(t, out, "No rankings available.")
	assert.NotContains(t, out, "<table")
}

func TestRankingsEscapesText(t *testing.T) {
	doc := season.Document{Rankings: []season.RankingEntry{{Seed: 1, Team: "<script>alert(1)</script>", Record: "a&b"}}}
	out := renderString(t, Rankings(doc, AsGiven, Links{}))
	assert.NotContains(t, out, "<script>alert")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "a&amp;b")
}
