// services/scheduler.go
package services

import (
	"log"
	"time"

	"battle-analytics-system/models"

	"github.com/go-co-op/gocron/v2"
)

// SyncFunc triggers a battle sync for one linked player.
type SyncFunc func(userID, playerTag string) error

// StartSchedulers runs the periodic jobs: a battle sync sweep over all
// linked players every 10 minutes, and a nightly paid-tier retention prune.
func (s *BattleService) StartSchedulers(sync SyncFunc) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every 10 minutes: refresh battle history for every linked player
	_, _ = sched.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(func() {
			var players []models.LinkedPlayer
			if err := s.DB.Find(&players).Error; err != nil {
				log.Printf("[Scheduler] DB error listing linked players: %v", err)
				return
			}

			for _, p := range players {
				if err := sync(p.ExternalUserID, p.PlayerTag); err != nil {
					log.Printf("[Scheduler] Battle sync failed for %s %s: %v", p.ExternalUserID, p.PlayerTag, err)
				}
			}
		}),
	)

	// Nightly: sweep the paid-tier retention window
	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			var players []models.LinkedPlayer
			if err := s.DB.Find(&players).Error; err != nil {
				log.Printf("[Scheduler] DB error listing linked players: %v", err)
				return
			}

			now := time.Now()
			for _, p := range players {
				if s.UserTier(p.ExternalUserID) != models.TierPaid {
					continue
				}
				if _, err := s.PrunePaidTier(p.ExternalUserID, p.PlayerTag, now); err != nil {
					log.Printf("[Scheduler] Paid-tier prune failed for %s %s: %v", p.ExternalUserID, p.PlayerTag, err)
				}
			}
			log.Printf("✅ Nightly retention sweep finished (%d linked player(s))", len(players))
		}),
	)
}
