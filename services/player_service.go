package services

import (
	"fmt"

	"battle-analytics-system/engine"
	"battle-analytics-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlayerService struct {
	DB *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{DB: db}
}

// LinkPlayer attaches a game player tag to a user. The tag is normalized
// first; a tag that normalizes to nothing is refused outright — no battle
// query may ever run unscoped.
func (s *PlayerService) LinkPlayer(userID, rawTag, playerName string) (*models.LinkedPlayer, error) {
	tag, ok := engine.NormalizeTag(rawTag)
	if !ok {
		return nil, fmt.Errorf("invalid player tag %q", rawTag)
	}

	var existing models.LinkedPlayer
	err := s.DB.Where("external_user_id = ? AND player_tag = ?", userID, tag).First(&existing).Error
	if err == nil {
		return &existing, nil // already linked, idempotent
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	linked := models.LinkedPlayer{
		ID:             uuid.NewString(),
		ExternalUserID: userID,
		PlayerTag:      tag,
		PlayerName:     playerName,
	}
	if err := s.DB.Create(&linked).Error; err != nil {
		return nil, err
	}
	return &linked, nil
}

// UnlinkPlayer removes a user's link to a tag. Stored battles stay until the
// retention policy catches up with them.
func (s *PlayerService) UnlinkPlayer(userID, rawTag string) error {
	tag, ok := engine.NormalizeTag(rawTag)
	if !ok {
		return fmt.Errorf("invalid player tag %q", rawTag)
	}

	res := s.DB.Where("external_user_id = ? AND player_tag = ?", userID, tag).
		Delete(&models.LinkedPlayer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LinkedPlayers lists a user's linked tags.
func (s *PlayerService) LinkedPlayers(userID string) ([]models.LinkedPlayer, error) {
	var players []models.LinkedPlayer
	err := s.DB.Where("external_user_id = ?", userID).Find(&players).Error
	return players, err
}
