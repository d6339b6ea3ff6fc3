package services

import (
	"fmt"
	"log"
	"time"

	"battle-analytics-system/engine"
	"battle-analytics-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

type GoalService struct {
	DB      *gorm.DB
	Battles *BattleService
}

func NewGoalService(db *gorm.DB, battles *BattleService) *GoalService {
	return &GoalService{DB: db, Battles: battles}
}

var goalTitleCaser = cases.Title(language.English)

func validGoalType(t string) bool {
	switch t {
	case engine.GoalTrophies, engine.GoalStreak, engine.GoalWinRate, engine.GoalCustom:
		return true
	}
	return false
}

// CreateGoal declares a new target for a user. Names are title-cased and
// slugged for stable API addressing.
func (s *GoalService) CreateGoal(userID, name, goalType string, target, current int) (*models.Goal, error) {
	if !validGoalType(goalType) {
		return nil, fmt.Errorf("unknown goal type %q", goalType)
	}
	if name == "" {
		return nil, fmt.Errorf("goal name is required")
	}

	goal := models.Goal{
		ID:             uuid.NewString(),
		ExternalUserID: userID,
		Name:           goalTitleCaser.String(name),
		Slug:           slug.Make(name),
		Type:           goalType,
		TargetValue:    target,
		CurrentValue:   current,
	}
	if err := s.DB.Create(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListGoals returns all of a user's goals, newest first.
func (s *GoalService) ListGoals(userID string) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.DB.Where("external_user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error
	return goals, err
}

// UpdateGoal applies a direct user edit. Target, name, and current value are
// editable; completion achieved by edit is stamped like an auto-completion.
func (s *GoalService) UpdateGoal(userID, goalID string, name *string, target, current *int) (*models.Goal, error) {
	var goal models.Goal
	if err := s.DB.Where("id = ? AND external_user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		return nil, err
	}

	if name != nil && *name != "" {
		goal.Name = goalTitleCaser.String(*name)
		goal.Slug = slug.Make(*name)
	}
	if target != nil {
		goal.TargetValue = *target
	}
	if current != nil {
		goal.CurrentValue = *current
	}

	if !goal.Completed && goal.CurrentValue >= goal.TargetValue {
		now := time.Now()
		goal.Completed = true
		goal.CompletedAt = &now
	}

	if err := s.DB.Save(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// DeleteGoal removes a goal, scoped to its owner.
func (s *GoalService) DeleteGoal(userID, goalID string) error {
	res := s.DB.Where("id = ? AND external_user_id = ?", goalID, userID).Delete(&models.Goal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SyncGoals advances every open goal from the user's fresh battle stats.
// Completed goals are never touched again. Returns the goals that changed.
func (s *GoalService) SyncGoals(userID string) ([]models.Goal, error) {
	var linked models.LinkedPlayer
	if err := s.DB.Where("external_user_id = ?", userID).First(&linked).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no linked player for user %s", userID)
		}
		return nil, err
	}

	ctx, err := s.Battles.RecentStats(userID, linked.PlayerTag)
	if err != nil {
		return nil, err
	}

	goals, err := s.ListGoals(userID)
	if err != nil {
		return nil, err
	}

	var updated []models.Goal
	for _, goal := range goals {
		delta := engine.EvaluateGoalProgress(goal.Type, goal.TargetValue, goal.CurrentValue, goal.Completed, ctx)
		if delta == nil {
			continue
		}

		goal.CurrentValue = delta.CurrentValue
		if delta.Completed {
			now := time.Now()
			goal.Completed = true
			goal.CompletedAt = &now
		}
		if err := s.DB.Save(&goal).Error; err != nil {
			return updated, err
		}
		if delta.Completed {
			log.Printf("🏆 Goal completed: %s (%s) for %s", goal.Name, goal.Type, userID)
		}
		updated = append(updated, goal)
	}

	return updated, nil
}
