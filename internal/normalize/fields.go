package normalize

import "github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"

func field(name string, def any, keys ...string) Field {
	return Field{Name: name, Keys: keys, Default: def}
}

// Ranking entries, poll rows and team profiles.
var (
	FieldSeed       = field("seed", 0, "seed", "rank", "cfp_rank", "current_rank")
	FieldTeam       = field("team", "", "team", "name", "school")
	FieldTeamID     = field("team id", "", "id", "slug", "team_id")
	FieldRecord     = field("record", season.Placeholder, "record", "overall", "wl")
	FieldConference = field("conference", season.Placeholder, "conference", "conf")
	FieldDelta      = field("delta", nil, "delta", "movement", "change")
	FieldPrevRank   = field("prev rank", nil, "prev_rank", "previous_rank", "last_rank")
	FieldStatus     = field("status", string(season.StatusInPlay), "status", "lock_status", "lock")
	FieldLockReason = field("lock reason", "", "lock_reason", "reason")
	FieldScenarios  = field("spot scenarios", nil, "spot_scenarios", "scenarios_for_spot", "paths")
	FieldPath       = field("scenario path", "", "path", "scenario", "description")
)

// Document level.
var (
	FieldMeta          = field("meta", nil, "_meta", "meta")
	FieldSport         = field("sport", "", "sport", "league")
	FieldSeason        = field("season", "", "season", "year")
	FieldWeek          = field("week", "", "week", "ranking_week")
	FieldGeneratedAt   = field("generated at", nil, "generated_at", "generatedAt")
	FieldLastUpdated   = field("last updated", nil, "last_updated", "lastUpdated", "updated", "updated_at", "generated_at")
	FieldPayload       = field("payload", nil, "data", "payload")
	FieldRankings      = field("rankings", nil, "rankings", "cfp_rankings", "top25", "ranking")
	FieldPolls         = field("polls", nil, "polls")
	FieldConferences   = field("conferences", nil, "conferences", "standings")
	FieldGames         = field("games", nil, "games")
	FieldTeams         = field("teams", nil, "teams", "team_profiles")
	FieldBracket       = field("bracket", nil, "bracket", "bracket_structure")
	FieldChampionships = field("championship weekend", nil, "championship_weekend", "conference_championships", "championships")
	FieldSources       = field("sources", nil, "sources")
	FieldCFPSourceID   = field("cfp source id", "", "cfp_source_id")
	FieldConfSourceID  = field("conference source id", "", "conf_source_id", "standings_source_id")
)

// Polls and standings.
var (
	FieldPollName      = field("poll name", "", "name", "title", "poll")
	FieldSourceRef     = field("source ref", "", "source_id", "source", "cite")
	FieldPollEntries   = field("poll entries", nil, "teams", "entries", "rankings")
	FieldPollRank      = field("poll rank", 0, "rank", "seed", "position")
	FieldConfID        = field("conference id", "", "id", "slug", "key")
	FieldConfName      = field("conference name", "", "name", "conference", "title")
	FieldConfRows      = field("conference rows", nil, "teams", "standings", "rows")
	FieldOverall       = field("overall record", season.Placeholder, "overall", "record", "overall_record")
	FieldConfRecord    = field("conference record", season.Placeholder, "conference_record", "conf_record")
	FieldPointsFor     = field("points for", season.Placeholder, "pf", "points_for")
	FieldPointsAgainst = field("points against", season.Placeholder, "pa", "points_against")
)

// Games and schedules.
var (
	FieldGameID         = field("game id", "", "id", "game_id")
	FieldHome           = field("home", "", "home", "home_team")
	FieldAway           = field("away", "", "away", "away_team", "visitor")
	FieldHomeScore      = field("home score", nil, "home_score", "home_points")
	FieldAwayScore      = field("away score", nil, "away_score", "away_points")
	FieldGameStatus     = field("game status", "", "status", "state")
	FieldKickoff        = field("kickoff", "", "kickoff", "start_time", "date")
	FieldGameConference = field("game conference", "", "conference", "conf")
	FieldNote           = field("note", "", "note", "title", "implications", "label")
	FieldMatchup        = field("matchup", "", "matchup", "game")
	FieldOpponent       = field("opponent", "", "opponent", "opp", "vs")
	FieldLocation       = field("location", "", "location", "site", "home_away")
	FieldGameDate       = field("game date", "", "date", "kickoff")
	FieldConfGame       = field("conference game", false, "conference_game", "conf_game", "is_conference")
	FieldResult         = field("result", "", "result", "score")
)

// Team profiles.
var (
	FieldOutlook     = field("outlook", nil, "outlook", "scenarios")
	FieldBest        = field("best case", "", "best", "best_case")
	FieldLikely      = field("likely case", "", "likely", "likely_case", "most_likely")
	FieldWorst       = field("worst case", "", "worst", "worst_case")
	FieldSchedule    = field("schedule", nil, "schedule", "remaining_schedule", "remaining")
	FieldNotableWins = field("notable wins", nil, "notable_wins", "key_wins", "wins")
	FieldRiskFactors = field("risk factors", nil, "risk_factors", "risks")
)

// Bracket and sources.
var (
	FieldFirstRound  = field("first round", nil, "first_round", "round_1", "opening_round")
	FieldHigh        = field("high seed", 0, "high", "high_seed", "home_seed", "seed_a")
	FieldLow         = field("low seed", 0, "low", "low_seed", "away_seed", "seed_b")
	FieldByes        = field("byes", nil, "byes", "first_round_byes")
	FieldSourceID    = field("source id", "", "id", "source_id")
	FieldSourceLabel = field("source label", "", "label", "name", "title")
	FieldSourceURL   = field("source url", "", "url", "href", "link")

	fieldItemText = field("item text", "", "text", "label", "name", "team")
)
