package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/cfp-rankings-service/internal/publish"
	"github.com/preston-bernstein/cfp-rankings-service/internal/testutil"
)

// dataDir writes the fixtures under the file names the default site config expects.
func dataDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), testutil.FixtureBytes(t, name), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PROVIDER", "file")
	t.Setenv("DATA_BASE_URL", "")
	cmd := NewRootCommand("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--site", filepath.Join(t.TempDir(), "missing.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func allFixtures() []string {
	return []string{testutil.SeasonFixture, testutil.LegacyFixture, testutil.MultiSportFixture}
}

func TestRenderWritesStaticSite(t *testing.T) {
	data := dataDir(t, allFixtures()...)
	out := filepath.Join(t.TempDir(), "site")

	stdout, err := run(t, "--data-dir", data, "render", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote ")

	for _, rel := range []string{"index.html", "rankings.html", "bracket.html", "team.html", "standings.html", "polls.html", "ncaaf.html", "team/georgia.html", "data/cfp.json"} {
		_, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel)))
		assert.NoError(t, err, rel)
	}

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="team/georgia.html"`)
	assert.NotContains(t, string(index), "<form", "static pages carry no refresh control")

	team, err := os.ReadFile(filepath.Join(out, "team", "georgia.html"))
	require.NoError(t, err)
	assert.Contains(t, string(team), `href="../rankings.html"`)

	m, err := publish.ReadManifest(out)
	require.NoError(t, err)
	assert.Contains(t, m.Pages, "team/ohio-state.html")
	assert.Contains(t, m.Sources, "cfp")

	again, err := run(t, "--data-dir", data, "render", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, again, "(0 changed)")
}

func TestRenderKeepsGoingWhenASourceFails(t *testing.T) {
	data := dataDir(t, testutil.SeasonFixture)
	out := filepath.Join(t.TempDir(), "site")

	_, err := run(t, "--data-dir", data, "render", "--out", out)
	require.NoError(t, err)

	polls, err := os.ReadFile(filepath.Join(out, "polls.html"))
	require.NoError(t, err)
	assert.Contains(t, string(polls), "Failed to load data")
	_, err = os.Stat(filepath.Join(out, "data", "legacy.json"))
	assert.True(t, os.IsNotExist(err), "failed sources export no JSON")
}

func TestRankingsPrintsTable(t *testing.T) {
	data := dataDir(t, testutil.SeasonFixture)

	stdout, err := run(t, "--data-dir", data, "rankings", "--source", "cfp", "--sorted")
	require.NoError(t, err)
	lines := strings.Split(stdout, "\n")
	ohio, indiana := -1, -1
	for i, l := range lines {
		if strings.Contains(l, "Ohio State") && ohio < 0 {
			ohio = i
		}
		if strings.Contains(l, "Indiana") && indiana < 0 {
			indiana = i
		}
	}
	require.NotEqual(t, -1, ohio)
	assert.Less(t, ohio, indiana)
	assert.Contains(t, stdout, "▲1")
}

func TestRankingsUnknownSource(t *testing.T) {
	_, err := run(t, "--data-dir", t.TempDir(), "rankings", "--source", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown source "nope"`)
}

func TestValidateReportsShapes(t *testing.T) {
	data := dataDir(t, allFixtures()...)

	stdout, err := run(t, "--data-dir", data, "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "shape:       season")
	assert.Contains(t, stdout, "shape:       legacy")
	assert.Contains(t, stdout, "shape:       multisport")
}

func TestValidateFailsOnFetchError(t *testing.T) {
	stdout, err := run(t, "--data-dir", t.TempDir(), "validate", "--source", "legacy")
	require.Error(t, err)
	assert.Contains(t, stdout, "legacy: fetch failed")
}

func TestValidateWarnsWithoutFailing(t *testing.T) {
	dir := t.TempDir()
	doc := map[string]any{"rankings": []any{
		map[string]any{"seed": 1, "team": "Ohio State"},
		map[string]any{"seed": 1, "team": "Indiana"},
	}}
	body, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, testutil.LegacyFixture), body, 0o644))

	stdout, err := run(t, "--data-dir", dir, "validate", "--source", "legacy")
	require.NoError(t, err)
	assert.Contains(t, stdout, "warnings:    1")
}
