package models

import "time"

// LinkedPlayer ties a dashboard user to a game player tag.
// PlayerTag is always stored normalized (# + uppercase) — the sync worker and
// all battle queries are scoped to (ExternalUserID, PlayerTag).
type LinkedPlayer struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex:idx_linked_user_tag;not null" json:"external_user_id"`
	PlayerTag      string `gorm:"uniqueIndex:idx_linked_user_tag;not null" json:"player_tag"`

	PlayerName string `json:"player_name,omitempty"`

	// Derived from the newest synced battle (starting trophies + change);
	// feeds trophy-goal evaluation.
	CurrentTrophies int        `json:"current_trophies" gorm:"default:0"`
	LastSyncedAt    *time.Time `json:"last_synced_at,omitempty"`

	Timestamps
}
