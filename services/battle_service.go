package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"battle-analytics-system/engine"
	"battle-analytics-system/models"
	"battle-analytics-system/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BattleService struct {
	DB        *gorm.DB
	Retention engine.RetentionConfig
}

func NewBattleService(db *gorm.DB) *BattleService {
	return &BattleService{
		DB:        db,
		Retention: engine.DefaultRetentionConfig,
	}
}

// IngestRawBattles normalizes a battlelog batch for a user, inserts each
// battle if absent (keyed by its content hash), and runs the tier prune.
// Battles with an unparseable battleTime are skipped, never stored.
// Returns how many rows were actually inserted.
func (s *BattleService) IngestRawBattles(userID, rawTag string, raws []engine.RawBattle) (int, error) {
	tag, ok := engine.NormalizeTag(rawTag)
	if !ok {
		return 0, fmt.Errorf("invalid player tag %q — refusing unscoped ingestion", rawTag)
	}

	inserted := 0
	var newestTime time.Time
	var newestTrophies int

	for _, raw := range raws {
		battleTime, ok := engine.ParseBattleTime(raw.BattleTime)
		if !ok {
			log.Printf("⚠️ Skipping battle with unparseable battleTime %q for %s", raw.BattleTime, tag)
			continue
		}

		team := raw.TeamPlayer()
		opp := raw.OpponentPlayer()

		result := "draw"
		if raw.IsWin() {
			result = "win"
		} else if raw.IsLoss() {
			result = "loss"
		}

		payload, _ := json.Marshal(raw)

		row := models.Battle{
			BattleKey:      engine.BuildBattleKey(userID, tag, raw),
			ExternalUserID: userID,
			PlayerTag:      tag,
			BattleTime:     battleTime,
			Type:           raw.Type,
			Mode:           engine.ModeIdentifier(raw.GameMode),
			Result:         result,
			Crowns:         team.Crowns,
			OpponentCrowns: opp.Crowns,
			OpponentTag:    opp.Tag,
			TrophyChange:   team.TrophyChange,
			ElixirLeaked:   team.ElixirLeaked,
			RawPayload:     string(payload),
		}

		// Insert-if-absent: a concurrent writer racing on the same key simply
		// turns the losing insert into a no-op.
		res := s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "battle_key"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			return inserted, fmt.Errorf("failed to insert battle %s: %w", row.BattleKey, res.Error)
		}
		inserted += int(res.RowsAffected)

		if battleTime.After(newestTime) && team.StartingTrophies > 0 {
			newestTime = battleTime
			newestTrophies = team.StartingTrophies + team.TrophyChange
		}
	}

	if newestTrophies > 0 {
		s.updateLinkedTrophies(userID, tag, newestTrophies)
	}

	if err := s.PruneForUser(userID, tag, time.Now()); err != nil {
		return inserted, err
	}
	return inserted, nil
}

func (s *BattleService) updateLinkedTrophies(userID, tag string, trophies int) {
	now := time.Now()
	if err := s.DB.Model(&models.LinkedPlayer{}).
		Where("external_user_id = ? AND player_tag = ?", userID, tag).
		Updates(map[string]interface{}{"current_trophies": trophies, "last_synced_at": now}).Error; err != nil {
		log.Printf("⚠️ Failed to update trophies for %s %s: %v", userID, tag, err)
	}
}

// UserTier looks up the mirrored subscription tier; unknown users default to free.
func (s *BattleService) UserTier(userID string) string {
	var user models.AnalyticsUser
	if err := s.DB.Where("external_user_id = ?", userID).First(&user).Error; err != nil {
		return models.TierFree
	}
	if user.Tier == models.TierPaid {
		return models.TierPaid
	}
	return models.TierFree
}

// PruneForUser applies the retention policy for one (user, tag) pair.
// Free tier keeps the most recent N battles; paid tier keeps a rolling
// D-day window, archiving the pruned batch first. Never cross-user.
func (s *BattleService) PruneForUser(userID, tag string, now time.Time) error {
	if s.UserTier(userID) == models.TierPaid {
		_, err := s.PrunePaidTier(userID, tag, now)
		return err
	}
	_, err := s.PruneFreeTier(userID, tag)
	return err
}

// PruneFreeTier deletes everything outside the most recent N battles for the
// (user, tag) pair. Explicit id allow-list, per the storage contract.
func (s *BattleService) PruneFreeTier(userID, tag string) (int64, error) {
	var rows []models.Battle
	if err := s.DB.Select("id", "battle_time").
		Where("external_user_id = ? AND player_tag = ?", userID, tag).
		Find(&rows).Error; err != nil {
		return 0, err
	}
	if len(rows) <= s.Retention.FreeKeepMostRecent {
		return 0, nil
	}

	refs := make([]engine.BattleRef, len(rows))
	for i, r := range rows {
		refs[i] = engine.BattleRef{ID: r.ID, Time: r.BattleTime}
	}
	keep := engine.RetainMostRecent(refs, s.Retention.FreeKeepMostRecent)

	keepIDs := make([]string, 0, len(keep))
	for id := range keep {
		keepIDs = append(keepIDs, id)
	}

	res := s.DB.Unscoped().
		Where("external_user_id = ? AND player_tag = ? AND id NOT IN ?", userID, tag, keepIDs).
		Delete(&models.Battle{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("🧹 Free-tier prune: removed %d battle(s) for %s %s", res.RowsAffected, userID, tag)
	}
	return res.RowsAffected, nil
}

// PrunePaidTier archives then deletes battles older than the rolling cutoff.
// Archive failure aborts the delete — the prune is destructive.
func (s *BattleService) PrunePaidTier(userID, tag string, now time.Time) (int64, error) {
	cutoff := engine.PaidCutoff(now, s.Retention.PaidWindowDays)

	var expired []models.Battle
	if err := s.DB.
		Where("external_user_id = ? AND player_tag = ? AND battle_time < ?", userID, tag, cutoff).
		Find(&expired).Error; err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	key, err := utils.ArchiveBattles(context.Background(), userID, tag, cutoff, expired)
	if err != nil {
		return 0, fmt.Errorf("aborting paid-tier prune, archive failed: %w", err)
	}

	res := s.DB.Unscoped().
		Where("external_user_id = ? AND player_tag = ? AND battle_time < ?", userID, tag, cutoff).
		Delete(&models.Battle{})
	if res.Error != nil {
		return 0, res.Error
	}
	log.Printf("🧹 Paid-tier prune: archived %d battle(s) to %s and removed them for %s %s",
		res.RowsAffected, key, userID, tag)
	return res.RowsAffected, nil
}

// History returns stored battles for a (user, tag) pair, newest first.
// days/limit are raw query values; they are clamped, never rejected.
func (s *BattleService) History(userID, tag, daysRaw, limitRaw string) ([]models.Battle, error) {
	days := engine.ClampHistoryDays(daysRaw)
	limit := engine.ClampHistoryLimit(limitRaw)
	since := time.Now().AddDate(0, 0, -days)

	var battles []models.Battle
	err := s.DB.
		Where("external_user_id = ? AND player_tag = ? AND battle_time >= ?", userID, tag, since).
		Order("battle_time DESC").
		Limit(limit).
		Find(&battles).Error
	return battles, err
}

// loadTimed materializes the engine view of a user's battles, newest first.
func (s *BattleService) loadTimed(userID, tag string) ([]engine.TimedBattle, error) {
	var rows []models.Battle
	if err := s.DB.
		Where("external_user_id = ? AND player_tag = ?", userID, tag).
		Order("battle_time DESC").
		Limit(engine.ClampHistoryLimit("")).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	timed := make([]engine.TimedBattle, len(rows))
	for i, r := range rows {
		timed[i] = engine.TimedBattle{
			Time:           r.BattleTime,
			Crowns:         r.Crowns,
			OpponentCrowns: r.OpponentCrowns,
			TrophyChange:   r.TrophyChange,
		}
	}
	return timed, nil
}

// Sessions clusters the stored battles into play sessions.
func (s *BattleService) Sessions(userID, tag string, cfg engine.SessionConfig) ([]engine.Session, error) {
	timed, err := s.loadTimed(userID, tag)
	if err != nil {
		return nil, err
	}
	return engine.ClusterSessions(timed, cfg), nil
}

// TiltState computes the current tilt estimate for a user's linked player.
func (s *BattleService) TiltState(userID, tag string, now time.Time) (engine.TiltState, error) {
	timed, err := s.loadTimed(userID, tag)
	if err != nil {
		return engine.TiltState{}, err
	}
	return engine.ComputeTiltState(timed, now), nil
}

// RecentStats builds the goal-evaluation context from stored battles and the
// linked player's trophy snapshot.
func (s *BattleService) RecentStats(userID, tag string) (engine.GoalContext, error) {
	timed, err := s.loadTimed(userID, tag)
	if err != nil {
		return engine.GoalContext{}, err
	}

	ctx := engine.GoalContext{}
	ctx.Streak, ctx.StreakIsWins = engine.CurrentStreak(timed)

	window := timed
	if len(window) > 20 {
		window = window[:20]
	}
	wins := 0
	for _, b := range window {
		if b.Win() {
			wins++
		}
	}
	if len(window) > 0 {
		ctx.WinRate = float64(wins) / float64(len(window)) * 100
	}

	var linked models.LinkedPlayer
	if err := s.DB.Where("external_user_id = ? AND player_tag = ?", userID, tag).
		First(&linked).Error; err == nil {
		ctx.Trophies = linked.CurrentTrophies
	}

	return ctx, nil
}
