package models

import (
	"time"

	"gorm.io/gorm"
)

// Battle records a single observed match for a linked player.
// Immutable once stored; identity is the content-addressed BattleKey, which
// makes ingestion idempotent (insert-if-absent on the unique index).
type Battle struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	BattleKey string `gorm:"uniqueIndex;not null" json:"battle_key"`

	ExternalUserID string `gorm:"index:idx_battles_user_tag;not null" json:"external_user_id"`
	PlayerTag      string `gorm:"index:idx_battles_user_tag;not null" json:"player_tag"` // normalized (#UPPERCASE)

	BattleTime time.Time `gorm:"index;not null" json:"battle_time"`
	Type       string    `json:"type" gorm:"type:varchar(64)"`
	Mode       string    `json:"mode" gorm:"type:varchar(64)"`

	// Outcome, player side first
	Result         string  `json:"result" gorm:"type:varchar(8);check:result IN ('win','loss','draw')"`
	Crowns         int     `json:"crowns" gorm:"default:0"`
	OpponentCrowns int     `json:"opponent_crowns" gorm:"default:0"`
	OpponentTag    string  `json:"opponent_tag"`
	TrophyChange   int     `json:"trophy_change" gorm:"default:0"`
	ElixirLeaked   float64 `json:"elixir_leaked" gorm:"default:0"`

	// Original payload as received from the game API, for reprocessing/archival
	RawPayload string `json:"-" gorm:"type:jsonb"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
