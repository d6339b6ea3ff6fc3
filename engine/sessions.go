package engine

import (
	"math"
	"sort"
	"time"
)

// SessionConfig tunes the clustering heuristic. Always passed explicitly —
// never read from package state — so behavior stays reproducible in tests.
type SessionConfig struct {
	MaxGapMinutes int
	MinBattles    int
}

// DefaultSessionConfig matches the dashboard's default view.
var DefaultSessionConfig = SessionConfig{
	MaxGapMinutes: 30,
	MinBattles:    2,
}

// Session is a cluster of temporally adjacent battles — an uninterrupted
// block of play. Pure view, never persisted.
type Session struct {
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	Battles     []TimedBattle `json:"battles"`
	Wins        int           `json:"wins"`
	Losses      int           `json:"losses"`
	WinRate     float64       `json:"win_rate"`
	NetTrophies int           `json:"net_trophies"`
}

// ClusterSessions groups battles into play sessions. Battles without a usable
// timestamp are discarded. The remainder is sorted most-recent-first and
// walked: a battle joins the current cluster when its distance to the last
// battle added is at most MaxGapMinutes (inclusive); otherwise the cluster is
// closed and a new one starts. Clusters smaller than MinBattles are dropped
// silently.
func ClusterSessions(battles []TimedBattle, cfg SessionConfig) []Session {
	usable := make([]TimedBattle, 0, len(battles))
	for _, b := range battles {
		if !b.Time.IsZero() {
			usable = append(usable, b)
		}
	}
	if len(usable) == 0 || len(usable) < cfg.MinBattles {
		return []Session{}
	}

	sort.Slice(usable, func(i, j int) bool { return usable[i].Time.After(usable[j].Time) })

	maxGap := time.Duration(cfg.MaxGapMinutes) * time.Minute
	sessions := []Session{}
	cluster := []TimedBattle{usable[0]}

	for _, b := range usable[1:] {
		last := cluster[len(cluster)-1]
		gap := last.Time.Sub(b.Time)
		if gap < 0 {
			gap = -gap
		}
		if gap <= maxGap {
			cluster = append(cluster, b)
			continue
		}
		if len(cluster) >= cfg.MinBattles {
			sessions = append(sessions, buildSession(cluster))
		}
		cluster = []TimedBattle{b}
	}
	if len(cluster) >= cfg.MinBattles {
		sessions = append(sessions, buildSession(cluster))
	}

	return sessions
}

func buildSession(cluster []TimedBattle) Session {
	s := Session{Battles: cluster}
	s.StartTime = cluster[0].Time
	s.EndTime = cluster[0].Time

	for _, b := range cluster {
		if b.Time.Before(s.StartTime) {
			s.StartTime = b.Time
		}
		if b.Time.After(s.EndTime) {
			s.EndTime = b.Time
		}
		switch {
		case b.Win():
			s.Wins++
		case b.Loss():
			s.Losses++
		}
		// Draws count toward neither side.
		s.NetTrophies += b.TrophyChange
	}

	s.WinRate = float64(s.Wins) / float64(len(cluster)) * 100
	return s
}

// ConsecutiveLosses walks battles in the supplied order and counts losses
// (draws count as losses here) until the first win breaks the run.
// Used for tilt diagnostics; independent of clustering.
func ConsecutiveLosses(battles []TimedBattle) int {
	count := 0
	for _, b := range battles {
		if b.Win() {
			break
		}
		count++
	}
	return count
}

// CurrentStreak reports the run length at the head of a most-recent-first
// battle list and whether it is a winning run. Draws end a winning run and
// extend a losing one, matching ConsecutiveLosses.
func CurrentStreak(battles []TimedBattle) (int, bool) {
	if len(battles) == 0 {
		return 0, false
	}
	if battles[0].Win() {
		count := 0
		for _, b := range battles {
			if !b.Win() {
				break
			}
			count++
		}
		return count, true
	}
	return ConsecutiveLosses(battles), false
}

// roundHalfUp rounds to the nearest integer, .5 away from zero.
func roundHalfUp(v float64) int {
	return int(math.Round(v))
}
