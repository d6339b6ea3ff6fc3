package engine

import (
	"sort"
	"strconv"
	"time"
)

// RetentionConfig tunes tier-based pruning. Passed explicitly, like
// SessionConfig, so the prune is reproducible in tests.
type RetentionConfig struct {
	FreeKeepMostRecent int
	PaidWindowDays     int
}

// DefaultRetentionConfig: free users keep their last 10 battles, paid users
// keep a rolling 60-day window.
var DefaultRetentionConfig = RetentionConfig{
	FreeKeepMostRecent: 10,
	PaidWindowDays:     60,
}

// History query bounds for paid-tier reads.
const (
	maxHistoryDays  = 60
	maxHistoryLimit = 2000
)

// BattleRef identifies a stored battle for retention decisions.
type BattleRef struct {
	ID   string
	Time time.Time
}

// RetainMostRecent picks the n most recent battles by time and returns the
// set of IDs to keep. Everything outside the set is eligible for the
// free-tier prune. Scoping to (user, tag) is the caller's responsibility.
func RetainMostRecent(refs []BattleRef, n int) map[string]bool {
	sorted := make([]BattleRef, len(refs))
	copy(sorted, refs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time.After(sorted[j].Time) })

	if n > len(sorted) {
		n = len(sorted)
	}
	keep := make(map[string]bool, n)
	for _, ref := range sorted[:n] {
		keep[ref.ID] = true
	}
	return keep
}

// PaidCutoff returns the rolling retention cutoff for paid-tier storage.
// Battles older than the cutoff are archived and deleted.
func PaidCutoff(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

// ClampHistoryDays clamps a requested day window to [1, 60]. Non-numeric or
// non-positive input falls back to the default window rather than erroring.
func ClampHistoryDays(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return maxHistoryDays
	}
	if n > maxHistoryDays {
		return maxHistoryDays
	}
	return n
}

// ClampHistoryLimit clamps a requested row limit to [1, 2000] with the same
// fallback behavior as ClampHistoryDays.
func ClampHistoryLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return maxHistoryLimit
	}
	if n > maxHistoryLimit {
		return maxHistoryLimit
	}
	return n
}
