package engine

import "time"

// Tilt levels, from calm to "step away from the game".
const (
	TiltNone   = "none"
	TiltMedium = "medium"
	TiltHigh   = "high"
)

// Decay stages: how long ago the last battle was.
const (
	DecayNone = "none"
	Decay2h   = "2h"
	Decay6h   = "6h"
	Decay12h  = "12h"
)

// decayStage pairs an elapsed-hours threshold with a risk multiplier.
// Stages are checked highest threshold first.
type decayStage struct {
	Stage      string
	AfterHours float64
	Multiplier float64
}

// decayStages is the fixed step function risk fades through as the player
// steps away. The 2h/6h/12h boundaries are load-bearing: tests pin them.
var decayStages = []decayStage{
	{Stage: Decay12h, AfterHours: 12, Multiplier: 0.0},
	{Stage: Decay6h, AfterHours: 6, Multiplier: 0.4},
	{Stage: Decay2h, AfterHours: 2, Multiplier: 0.7},
	{Stage: DecayNone, AfterHours: 0, Multiplier: 1.0},
}

// Risk scores per base level and the re-derivation thresholds.
// The 70/40 cutoffs are intentional — do not "clean them up".
const (
	riskHigh        = 100
	riskMedium      = 60
	highThreshold   = 70
	mediumThreshold = 40

	tiltWindow = 10 // most recent battles considered for base classification
)

// TiltState is a point-in-time psychological-risk estimate.
// Computed fresh on every request, never persisted.
type TiltState struct {
	BaseLevel    string     `json:"base_level"`
	BaseRisk     int        `json:"base_risk"`
	DecayStage   string     `json:"decay_stage"`
	Risk         int        `json:"risk"`
	Level        string     `json:"level"`
	Alert        bool       `json:"alert"`
	LastBattleAt *time.Time `json:"last_battle_at"`
}

// ComputeTiltState classifies tilt risk from a most-recent-first battle list
// and a reference instant. Two stages: an instant classification from the
// last 10 battles, then a time-decayed re-classification so risk fades
// smoothly as the player steps away — while a fresh loss streak can still
// re-trigger high immediately.
func ComputeTiltState(battles []TimedBattle, now time.Time) TiltState {
	state := TiltState{
		BaseLevel:  TiltNone,
		DecayStage: DecayNone,
		Level:      TiltNone,
	}
	if len(battles) == 0 {
		return state
	}

	recent := battles
	if len(recent) > tiltWindow {
		recent = recent[:tiltWindow]
	}

	wins, losses, netTrophies := 0, 0, 0
	maxLossRun, lossRun := 0, 0
	for _, b := range recent {
		switch {
		case b.Win():
			wins++
			lossRun = 0
		default:
			// Losses and draws both feed the loss run.
			if b.Loss() {
				losses++
			}
			lossRun++
			if lossRun > maxLossRun {
				maxLossRun = lossRun
			}
		}
		netTrophies += b.TrophyChange
	}

	winRate := float64(wins) / float64(len(recent)) * 100

	switch {
	case maxLossRun >= 3 || (winRate < 40 && netTrophies <= -60):
		state.BaseLevel = TiltHigh
		state.BaseRisk = riskHigh
	case winRate >= 40 && winRate <= 50 && netTrophies < 0:
		state.BaseLevel = TiltMedium
		state.BaseRisk = riskMedium
	}

	last := battles[0].Time
	state.LastBattleAt = &last

	elapsedHours := now.Sub(last).Hours()
	if elapsedHours < 0 {
		elapsedHours = 0
	}
	for _, stage := range decayStages {
		if elapsedHours >= stage.AfterHours {
			state.DecayStage = stage.Stage
			state.Risk = roundHalfUp(float64(state.BaseRisk) * stage.Multiplier)
			break
		}
	}

	switch {
	case state.Risk >= highThreshold:
		state.Level = TiltHigh
	case state.Risk >= mediumThreshold:
		state.Level = TiltMedium
	default:
		state.Level = TiltNone
	}
	state.Alert = state.Level == TiltHigh

	return state
}
