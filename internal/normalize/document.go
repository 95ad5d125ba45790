package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
	"github.com/preston-bernstein/cfp-rankings-service/internal/timeutil"
)

// Warning is a data-quality note found while normalizing. Warnings never block rendering.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string {
	return w.Field + ": " + w.Message
}

// Document normalizes a decoded season document into its canonical form.
func Document(raw Entity) season.Document {
	doc, _ := Inspect(raw)
	return doc
}

// Inspect normalizes like Document and also returns the data-quality warnings it found.
func Inspect(raw Entity) (season.Document, []Warning) {
	n := &normalizer{}
	return n.document(raw), n.warnings
}

type normalizer struct {
	warnings []Warning
}

func (n *normalizer) warn(f Field, format string, args ...any) {
	n.warnings = append(n.warnings, Warning{Field: f.Name, Message: fmt.Sprintf(format, args...)})
}

func (n *normalizer) document(raw Entity) season.Document {
	payload, meta := unwrap(raw)

	doc := season.Document{
		Meta:         meta,
		Sources:      n.sources(payload),
		CFPSourceID:  Text(payload, FieldCFPSourceID),
		ConfSourceID: Text(payload, FieldConfSourceID),
		Rankings:     n.rankings(payload),
		Polls:        n.polls(payload),
		Conferences:  n.conferences(payload),
		Games:        n.games(payload),
		Bracket:      n.bracket(payload),
	}
	if ts, ok := timeutil.ParseTimestamp(Lookup(payload, FieldLastUpdated)); ok {
		doc.LastUpdated = ts
	} else if ts, ok := timeutil.ParseTimestamp(Lookup(raw, FieldLastUpdated)); ok {
		doc.LastUpdated = ts
	}
	if doc.Meta.Shape == "" {
		doc.Meta.Shape = detectShape(payload)
	}
	doc.Teams = n.teams(payload, doc.Rankings)
	return doc
}

// unwrap peels a multi-sport envelope ({"sport": "ncaaf", "data": {...}} or {"sport": "ncaaf", "ncaaf": {...}})
// and gathers header fields from the envelope, the payload and any _meta block.
func unwrap(raw Entity) (Entity, season.Meta) {
	payload := raw
	var meta season.Meta

	sport := Text(raw, FieldSport)
	if sport == "" {
		sport = Text(Object(raw, FieldMeta), FieldSport)
	}
	if inner := Object(raw, FieldPayload); inner != nil {
		payload = inner
		meta.Shape = season.ShapeMultiSport
	} else if sport != "" {
		if inner, ok := raw[strings.ToLower(sport)].(map[string]any); ok {
			payload = inner
			meta.Shape = season.ShapeMultiSport
		}
	}

	metaBlocks := []Entity{Object(raw, FieldMeta), Object(payload, FieldMeta), payload, raw}
	meta.Sport = sport
	for _, block := range metaBlocks {
		if meta.Sport == "" {
			meta.Sport = Text(block, FieldSport)
		}
		if meta.Season == "" {
			meta.Season = Text(block, FieldSeason)
		}
		if meta.Week == "" {
			meta.Week = Text(block, FieldWeek)
		}
		if meta.GeneratedAt.IsZero() {
			if ts, ok := timeutil.ParseTimestamp(Lookup(block, FieldGeneratedAt)); ok {
				meta.GeneratedAt = ts
			}
		}
	}
	return payload, meta
}

func detectShape(payload Entity) season.Shape {
	for _, f := range []Field{FieldTeams, FieldBracket, FieldChampionships} {
		if _, ok := lookup(payload, f); ok {
			return season.ShapeSeason
		}
	}
	return season.ShapeLegacy
}

func (n *normalizer) rankings(payload Entity) []season.RankingEntry {
	items := Objects(payload, FieldRankings)
	out := make([]season.RankingEntry, 0, len(items))
	seen := make(map[int]int)
	for i, item := range items {
		entry := n.rankingEntry(item)
		if entry.Team == "" {
			n.warn(FieldTeam, "rankings[%d] has no team name", i)
		}
		if entry.Seed > 0 {
			if first, dup := seen[entry.Seed]; dup {
				n.warn(FieldSeed, "seed %d appears at rankings[%d] and rankings[%d]", entry.Seed, first, i)
			} else {
				seen[entry.Seed] = i
			}
		}
		out = append(out, entry)
	}
	return out
}

func (n *normalizer) rankingEntry(item Entity) season.RankingEntry {
	name := Text(item, FieldTeam)
	entry := season.RankingEntry{
		Seed:       Int(item, FieldSeed),
		Team:       name,
		TeamID:     teamID(item, name),
		Record:     Text(item, FieldRecord),
		Conference: Text(item, FieldConference),
		Delta:      delta(item),
		LockReason: Text(item, FieldLockReason),
	}
	rawStatus := Text(item, FieldStatus)
	status, known := season.ParseLockStatus(rawStatus)
	if !known {
		n.warn(FieldStatus, "unknown status %q for %s", rawStatus, name)
	}
	entry.Status = status
	for _, sc := range Objects(item, FieldScenarios) {
		entry.Scenarios = append(entry.Scenarios, season.SpotScenario{
			Team: Text(sc, FieldTeam),
			Path: Text(sc, FieldPath),
		})
	}
	return entry
}

// delta prefers an explicit movement value and falls back to prev_rank - rank.
func delta(item Entity) *int {
	if d := OptionalInt(item, FieldDelta); d != nil {
		return d
	}
	prev := OptionalInt(item, FieldPrevRank)
	seed := Int(item, FieldSeed)
	if prev == nil || *prev <= 0 || seed <= 0 {
		return nil
	}
	d := *prev - seed
	return &d
}

func teamID(item Entity, name string) string {
	if id := Text(item, FieldTeamID); id != "" {
		return season.Slug(id)
	}
	return season.Slug(name)
}

func (n *normalizer) polls(payload Entity) []season.Poll {
	items := Objects(payload, FieldPolls)
	out := make([]season.Poll, 0, len(items))
	for _, item := range items {
		poll := season.Poll{
			Name:     Text(item, FieldPollName),
			SourceID: Text(item, FieldSourceRef),
		}
		for _, row := range Objects(item, FieldPollEntries) {
			name := Text(row, FieldTeam)
			poll.Entries = append(poll.Entries, season.PollEntry{
				Rank:       Int(row, FieldPollRank),
				Team:       name,
				TeamID:     teamID(row, name),
				Record:     Text(row, FieldRecord),
				Conference: Text(row, FieldConference),
				Delta:      delta(row),
			})
		}
		out = append(out, poll)
	}
	return out
}

func (n *normalizer) conferences(payload Entity) []season.Conference {
	items := Objects(payload, FieldConferences)
	out := make([]season.Conference, 0, len(items))
	for i, item := range items {
		name := Text(item, FieldConfName)
		id := Text(item, FieldConfID)
		if id == "" {
			id = season.Slug(name)
		}
		if id == "" {
			id = "conference-" + strconv.Itoa(i+1)
		}
		conf := season.Conference{ID: id, Name: name}
		if conf.Name == "" {
			conf.Name = id
		}
		for _, row := range Objects(item, FieldConfRows) {
			team := Text(row, FieldTeam)
			conf.Rows = append(conf.Rows, season.StandingRow{
				Team:             team,
				TeamID:           season.Slug(team),
				Overall:          Text(row, FieldOverall),
				ConferenceRecord: Text(row, FieldConfRecord),
				PointsFor:        Text(row, FieldPointsFor),
				PointsAgainst:    Text(row, FieldPointsAgainst),
			})
		}
		out = append(out, conf)
	}
	return out
}

func (n *normalizer) games(payload Entity) []season.Game {
	var out []season.Game
	for _, item := range Objects(payload, FieldGames) {
		g := game(item)
		g.Championship = strings.Contains(strings.ToLower(g.Note), "championship")
		out = append(out, g)
	}
	for _, item := range Objects(payload, FieldChampionships) {
		g := game(item)
		g.Championship = true
		if g.Note == "" && g.Conference != "" {
			g.Note = g.Conference + " Championship"
		}
		out = append(out, g)
	}
	return out
}

func game(item Entity) season.Game {
	home, away := Text(item, FieldHome), Text(item, FieldAway)
	if home == "" && away == "" {
		home, away = splitMatchup(item)
	}
	g := season.Game{
		ID:         Text(item, FieldGameID),
		Home:       home,
		Away:       away,
		HomeScore:  OptionalInt(item, FieldHomeScore),
		AwayScore:  OptionalInt(item, FieldAwayScore),
		Status:     season.ParseGameStatus(Text(item, FieldGameStatus)),
		Kickoff:    Text(item, FieldKickoff),
		Conference: Text(item, FieldGameConference),
		Note:       Text(item, FieldNote),
	}
	if g.ID == "" {
		g.ID = season.Slug(away + " at " + home)
	}
	return g
}

// splitMatchup handles championship entries written as "teams": [a, b] or "matchup": "A vs B".
func splitMatchup(item Entity) (home, away string) {
	if teams := Strings(item, FieldTeams); len(teams) == 2 {
		return teams[0], teams[1]
	}
	matchup := Text(item, FieldMatchup)
	for _, sep := range []string{" vs. ", " vs ", " v ", " at ", " @ "} {
		if left, right, ok := strings.Cut(matchup, sep); ok {
			left, right = strings.TrimSpace(left), strings.TrimSpace(right)
			if sep == " at " || sep == " @ " {
				return right, left
			}
			return left, right
		}
	}
	return matchup, ""
}

func (n *normalizer) bracket(payload Entity) season.Bracket {
	obj := Object(payload, FieldBracket)
	if obj == nil {
		return season.DefaultBracket()
	}
	var b season.Bracket
	if list, ok := lookup(obj, FieldFirstRound); ok {
		items, _ := list.([]any)
		for i, item := range items {
			pr, ok := pairing(item)
			if !ok {
				n.warn(FieldFirstRound, "bracket first_round[%d] is not a seed pairing", i)
				continue
			}
			b.FirstRound = append(b.FirstRound, pr)
		}
	}
	if list, ok := lookup(obj, FieldByes); ok {
		items, _ := list.([]any)
		for _, item := range items {
			if seed, ok := toInt(item); ok && seed > 0 {
				b.Byes = append(b.Byes, seed)
			}
		}
	}
	if b.Empty() {
		return season.DefaultBracket()
	}
	return b
}

// pairing accepts {"high": 5, "low": 12}, [5, 12] or "5v12".
func pairing(item any) (season.Pairing, bool) {
	switch v := item.(type) {
	case map[string]any:
		pr := season.Pairing{High: Int(v, FieldHigh), Low: Int(v, FieldLow)}
		return pr, pr.High > 0 && pr.Low > 0
	case []any:
		if len(v) != 2 {
			return season.Pairing{}, false
		}
		high, okHigh := toInt(v[0])
		low, okLow := toInt(v[1])
		return season.Pairing{High: high, Low: low}, okHigh && okLow && high > 0 && low > 0
	case string:
		left, right, ok := strings.Cut(strings.ToLower(strings.ReplaceAll(v, " ", "")), "v")
		if !ok {
			return season.Pairing{}, false
		}
		high, okHigh := parseIntText(left)
		low, okLow := parseIntText(strings.TrimPrefix(right, "s"))
		return season.Pairing{High: high, Low: low}, okHigh && okLow && high > 0 && low > 0
	}
	return season.Pairing{}, false
}

func (n *normalizer) sources(payload Entity) []season.Source {
	items := Objects(payload, FieldSources)
	out := make([]season.Source, 0, len(items))
	for i, item := range items {
		src := season.Source{
			ID:    Text(item, FieldSourceID),
			Label: Text(item, FieldSourceLabel),
			URL:   Text(item, FieldSourceURL),
		}
		if src.ID == "" {
			src.ID = strconv.Itoa(i + 1)
		}
		if src.Label == "" {
			src.Label = src.URL
		}
		out = append(out, src)
	}
	return out
}

// teams merges explicit team profiles with every ranked team, so each ranked team has a detail page.
func (n *normalizer) teams(payload Entity, rankings []season.RankingEntry) []season.TeamRecord {
	seedByID := make(map[string]int, len(rankings))
	for _, r := range rankings {
		if _, ok := seedByID[r.TeamID]; !ok && r.TeamID != "" {
			seedByID[r.TeamID] = r.Seed
		}
	}

	var out []season.TeamRecord
	index := make(map[string]int)
	for _, item := range Objects(payload, FieldTeams) {
		name := Text(item, FieldTeam)
		id := teamID(item, name)
		if id == "" {
			continue
		}
		if _, dup := index[id]; dup {
			n.warn(FieldTeams, "duplicate team profile %q", id)
			continue
		}
		rec := season.TeamRecord{
			ID:          id,
			Name:        name,
			Conference:  Text(item, FieldConference),
			Record:      Text(item, FieldRecord),
			Seed:        Int(item, FieldSeed),
			Outlook:     outlook(item),
			Schedule:    schedule(item),
			NotableWins: Strings(item, FieldNotableWins),
			RiskFactors: Strings(item, FieldRiskFactors),
		}
		if rec.Name == "" {
			rec.Name = id
		}
		if seed, ok := seedByID[id]; ok && seed > 0 {
			rec.Seed = seed
		}
		index[id] = len(out)
		out = append(out, rec)
	}

	for _, r := range rankings {
		if r.TeamID == "" {
			continue
		}
		if i, ok := index[r.TeamID]; ok {
			fillFromRanking(&out[i], r)
			continue
		}
		index[r.TeamID] = len(out)
		out = append(out, season.TeamRecord{
			ID:         r.TeamID,
			Name:       r.Team,
			Conference: r.Conference,
			Record:     r.Record,
			Seed:       r.Seed,
		})
	}
	return out
}

func fillFromRanking(rec *season.TeamRecord, r season.RankingEntry) {
	if rec.Conference == season.Placeholder {
		rec.Conference = r.Conference
	}
	if rec.Record == season.Placeholder {
		rec.Record = r.Record
	}
}

func outlook(item Entity) season.Outlook {
	src := Object(item, FieldOutlook)
	if src == nil {
		src = item
	}
	return season.Outlook{
		Best:   Text(src, FieldBest),
		Likely: Text(src, FieldLikely),
		Worst:  Text(src, FieldWorst),
	}
}

func schedule(item Entity) []season.ScheduledGame {
	rows := Objects(item, FieldSchedule)
	out := make([]season.ScheduledGame, 0, len(rows))
	for _, row := range rows {
		out = append(out, season.ScheduledGame{
			Opponent:       Text(row, FieldOpponent),
			Location:       season.ParseLocation(Text(row, FieldLocation)),
			Date:           Text(row, FieldGameDate),
			ConferenceGame: Bool(row, FieldConfGame),
			Status:         season.ParseGameStatus(Text(row, FieldGameStatus)),
			Result:         Text(row, FieldResult),
		})
	}
	return out
}
