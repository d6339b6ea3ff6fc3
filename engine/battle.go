// engine/battle.go — canonical views over raw battle payloads from the game API
package engine

import (
	"math"
	"sort"
	"strings"
	"time"
)

// RawCard is a single card entry inside a raw battle payload.
// IDs arrive as JSON numbers; non-numeric entries are dropped during extraction.
type RawCard struct {
	ID   float64 `json:"id"`
	Name string  `json:"name,omitempty"`
}

// RawPlayer is one side of a raw battle (we only ever look at index 0).
type RawPlayer struct {
	Tag              string    `json:"tag"`
	Name             string    `json:"name,omitempty"`
	Crowns           int       `json:"crowns"`
	TrophyChange     int       `json:"trophyChange,omitempty"`
	StartingTrophies int       `json:"startingTrophies,omitempty"`
	ElixirLeaked     float64   `json:"elixirLeaked,omitempty"`
	Cards            []RawCard `json:"cards,omitempty"`
}

// RawGameMode carries the mode descriptor; either ID or Name may be absent.
type RawGameMode struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// RawBattle mirrors one entry of the game API battlelog response.
// Treated as immutable once observed.
type RawBattle struct {
	BattleTime string      `json:"battleTime"`
	Type       string      `json:"type"`
	GameMode   RawGameMode `json:"gameMode"`
	Team       []RawPlayer `json:"team"`
	Opponent   []RawPlayer `json:"opponent"`
}

// TeamPlayer returns the first team entry, or a zero player if absent.
func (b RawBattle) TeamPlayer() RawPlayer {
	if len(b.Team) > 0 {
		return b.Team[0]
	}
	return RawPlayer{}
}

// OpponentPlayer returns the first opponent entry, or a zero player if absent.
func (b RawBattle) OpponentPlayer() RawPlayer {
	if len(b.Opponent) > 0 {
		return b.Opponent[0]
	}
	return RawPlayer{}
}

// IsWin reports whether the team side took more crowns than the opponent.
func (b RawBattle) IsWin() bool {
	return b.TeamPlayer().Crowns > b.OpponentPlayer().Crowns
}

// IsLoss reports whether the team side took fewer crowns than the opponent.
// Equal crowns is a draw: neither IsWin nor IsLoss.
func (b RawBattle) IsLoss() bool {
	return b.TeamPlayer().Crowns < b.OpponentPlayer().Crowns
}

// NormalizeTag canonicalizes a player tag: trim, strip a leading '#',
// uppercase, re-prefix with '#'. An empty tag after stripping is invalid
// and callers must refuse to scope any operation with it.
func NormalizeTag(raw string) (string, bool) {
	t := strings.TrimSpace(raw)
	t = strings.TrimPrefix(t, "#")
	t = strings.ToUpper(strings.TrimSpace(t))
	if t == "" {
		return "", false
	}
	return "#" + t, true
}

// battleTimeCompact is the game API's native battleTime layout.
const battleTimeCompact = "20060102T150405.000Z"

// ParseBattleTime parses a raw battleTime in either the API's compact format
// or standard RFC 3339. Invalid or empty input yields ok=false — never an error.
func ParseBattleTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(battleTimeCompact, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// CardIDs extracts the numeric, finite card ids from a card list,
// sorted ascending. Absent or empty lists yield an empty slice.
func CardIDs(cards []RawCard) []int64 {
	ids := make([]int64, 0, len(cards))
	for _, c := range cards {
		if math.IsNaN(c.ID) || math.IsInf(c.ID, 0) {
			continue
		}
		ids = append(ids, int64(c.ID))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// TimedBattle is the engine-side view of a stored battle: just the fields
// the session and tilt computations need. A zero Time means the original
// battleTime was unparseable.
type TimedBattle struct {
	Time           time.Time
	Crowns         int
	OpponentCrowns int
	TrophyChange   int
}

// Win reports a crown win for the player side.
func (t TimedBattle) Win() bool { return t.Crowns > t.OpponentCrowns }

// Loss reports a crown loss for the player side.
func (t TimedBattle) Loss() bool { return t.Crowns < t.OpponentCrowns }
