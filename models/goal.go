package models

import "time"

// Goal is a user-declared target the evaluator advances from live match data.
// Once Completed it is never automatically un-completed.
type Goal struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"index;not null" json:"external_user_id"`

	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"index" json:"slug"`

	Type         string `json:"type" gorm:"type:varchar(16);check:type IN ('trophies','streak','winrate','custom')"`
	TargetValue  int    `json:"target_value" gorm:"not null"`
	CurrentValue int    `json:"current_value" gorm:"default:0"`

	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Timestamps
}
