package season

import (
	"math"
	"strings"
)

// LockStatus says whether a ranked slot is settled, contestable or out of reach.
type LockStatus string

const (
	StatusLocked     LockStatus = "locked"
	StatusInPlay     LockStatus = "in_play"
	StatusEliminated LockStatus = "eliminated"
)

// ParseLockStatus maps upstream spellings onto a LockStatus. Unknown values are in play.
func ParseLockStatus(raw string) (LockStatus, bool) {
	switch normalizeToken(raw) {
	case "locked", "lock", "clinched", "in":
		return StatusLocked, true
	case "in_play", "inplay", "alive", "contending", "bubble", "":
		return StatusInPlay, true
	case "eliminated", "out", "elim":
		return StatusEliminated, true
	default:
		return StatusInPlay, false
	}
}

// Label is the human readable status.
func (s LockStatus) Label() string {
	switch s {
	case StatusLocked:
		return "Locked"
	case StatusEliminated:
		return "Eliminated"
	default:
		return "In play"
	}
}

// GameStatus is the state of a game.
type GameStatus string

const (
	GameUpcoming   GameStatus = "upcoming"
	GameInProgress GameStatus = "in_progress"
	GameFinal      GameStatus = "final"
)

// ParseGameStatus maps upstream spellings onto a GameStatus.
func ParseGameStatus(raw string) GameStatus {
	switch normalizeToken(raw) {
	case "final", "complete", "completed", "post", "finished":
		return GameFinal
	case "in_progress", "inprogress", "live", "in", "halftime":
		return GameInProgress
	default:
		return GameUpcoming
	}
}

// Label is the human readable game status.
func (s GameStatus) Label() string {
	switch s {
	case GameFinal:
		return "Final"
	case GameInProgress:
		return "In progress"
	default:
		return "Upcoming"
	}
}

// Location is where a scheduled game is played relative to the team.
type Location string

const (
	LocationHome    Location = "home"
	LocationAway    Location = "away"
	LocationNeutral Location = "neutral"
)

// ParseLocation maps upstream spellings onto a Location.
func ParseLocation(raw string) Location {
	switch normalizeToken(raw) {
	case "away", "road", "at", "@":
		return LocationAway
	case "neutral", "n", "vs_neutral":
		return LocationNeutral
	default:
		return LocationHome
	}
}

// Prefix is the matchup prefix shown before an opponent.
func (l Location) Prefix() string {
	switch l {
	case LocationAway:
		return "at"
	case LocationNeutral:
		return "vs (N)"
	default:
		return "vs"
	}
}

// RankKey maps a seed onto a sort key where a missing seed sorts after every ranked one.
func RankKey(seed int) int {
	if seed <= 0 {
		return math.MaxInt
	}
	return seed
}

// Slug builds the team identifier used for lookups and links.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func normalizeToken(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}
