package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
)

// keyPayload is the canonical hashed representation of a (user, battle) pair.
// Field order is fixed by the struct definition, so json.Marshal is
// deterministic for identical content.
type keyPayload struct {
	UserID         string  `json:"userId"`
	PlayerTag      string  `json:"playerTag"`
	BattleTime     string  `json:"battleTime"`
	Type           string  `json:"type"`
	Mode           string  `json:"mode"`
	TeamTag        string  `json:"teamTag"`
	TeamCrowns     int     `json:"teamCrowns"`
	OpponentTag    string  `json:"opponentTag"`
	OpponentCrowns int     `json:"opponentCrowns"`
	TrophyChange   int     `json:"trophyChange"`
	TeamCards      []int64 `json:"teamCards"`
	OpponentCards  []int64 `json:"opponentCards"`
}

// ModeIdentifier picks the game mode identity used in the battle key:
// the numeric mode id when present, otherwise the mode name.
func ModeIdentifier(m RawGameMode) string {
	if m.ID != 0 {
		return strconv.FormatInt(m.ID, 10)
	}
	return m.Name
}

// BuildBattleKey derives the content-addressed key for a battle under a user.
// Identical semantic content always yields the same key — card lists are
// sorted before hashing, so card order in the payload does not matter.
// The key is the idempotency boundary for storage (insert-if-absent).
func BuildBattleKey(userID, normalizedTag string, b RawBattle) string {
	team := b.TeamPlayer()
	opp := b.OpponentPlayer()

	payload := keyPayload{
		UserID:         userID,
		PlayerTag:      normalizedTag,
		BattleTime:     b.BattleTime,
		Type:           b.Type,
		Mode:           ModeIdentifier(b.GameMode),
		TeamTag:        team.Tag,
		TeamCrowns:     team.Crowns,
		OpponentTag:    opp.Tag,
		OpponentCrowns: opp.Crowns,
		TrophyChange:   team.TrophyChange,
		TeamCards:      CardIDs(team.Cards),
		OpponentCards:  CardIDs(opp.Cards),
	}

	// Marshalling a struct cannot fail here; ignore the error like a checksum.
	raw, _ := json.Marshal(payload)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
