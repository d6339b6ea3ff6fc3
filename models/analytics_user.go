package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription tiers controlling retention and query limits.
const (
	TierFree = "free"
	TierPaid = "paid"
)

// AnalyticsUser is a local snapshot of user data needed for analytics.
// Owned and managed solely by this service; populated via sync worker from
// the profile service. Tier drives the battle retention policy.
type AnalyticsUser struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // the profile service's UUID
	Username       string `gorm:"index;not null" json:"username"`
	Email          string `json:"email,omitempty"`

	Tier string `json:"tier" gorm:"type:varchar(8);default:'free';check:tier IN ('free','paid')"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	LastSeen *time.Time `json:"last_seen,omitempty"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
