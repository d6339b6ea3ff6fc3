package engine

import (
	"testing"
	"time"
)

// lossStreak builds n consecutive losses ending at end, most recent first.
func lossStreak(n int, end time.Time) []TimedBattle {
	battles := make([]TimedBattle, n)
	for i := 0; i < n; i++ {
		battles[i] = TimedBattle{
			Time:           end.Add(-time.Duration(i) * 5 * time.Minute),
			Crowns:         0,
			OpponentCrowns: 2,
			TrophyChange:   -30,
		}
	}
	return battles
}

func TestComputeTiltStateNoBattles(t *testing.T) {
	state := ComputeTiltState(nil, time.Now())
	if state.Level != TiltNone || state.Risk != 0 || state.Alert {
		t.Errorf("empty input: got level=%s risk=%d alert=%v, want none/0/false", state.Level, state.Risk, state.Alert)
	}
	if state.LastBattleAt != nil {
		t.Errorf("LastBattleAt = %v, want nil", state.LastBattleAt)
	}
}

func TestComputeTiltStateFreshLossStreak(t *testing.T) {
	now := time.Date(2025, 1, 14, 12, 0, 0, 0, time.UTC)
	state := ComputeTiltState(lossStreak(3, now), now)

	if state.BaseLevel != TiltHigh {
		t.Errorf("BaseLevel = %s, want high", state.BaseLevel)
	}
	if state.Risk != 100 {
		t.Errorf("Risk = %d, want 100", state.Risk)
	}
	if state.Level != TiltHigh {
		t.Errorf("Level = %s, want high", state.Level)
	}
	if !state.Alert {
		t.Error("Alert = false, want true")
	}
	if state.LastBattleAt == nil || !state.LastBattleAt.Equal(now) {
		t.Errorf("LastBattleAt = %v, want %v", state.LastBattleAt, now)
	}
}

func TestComputeTiltStateDecayStages(t *testing.T) {
	last := time.Date(2025, 1, 14, 12, 0, 0, 0, time.UTC)
	battles := lossStreak(3, last)

	tests := []struct {
		name      string
		elapsed   time.Duration
		wantStage string
		wantRisk  int
		wantLevel string
		wantAlert bool
	}{
		{"Immediately after", 0, DecayNone, 100, TiltHigh, true},
		{"Just under 2h", 2*time.Hour - time.Minute, DecayNone, 100, TiltHigh, true},
		{"Exactly 2h", 2 * time.Hour, Decay2h, 70, TiltHigh, true},
		{"Just under 6h", 6*time.Hour - time.Minute, Decay2h, 70, TiltHigh, true},
		{"Exactly 6h", 6 * time.Hour, Decay6h, 40, TiltMedium, false},
		{"Just under 12h", 12*time.Hour - time.Minute, Decay6h, 40, TiltMedium, false},
		{"Exactly 12h", 12 * time.Hour, Decay12h, 0, TiltNone, false},
		{"A day later", 24 * time.Hour, Decay12h, 0, TiltNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := ComputeTiltState(battles, last.Add(tt.elapsed))
			if state.DecayStage != tt.wantStage {
				t.Errorf("DecayStage = %s, want %s", state.DecayStage, tt.wantStage)
			}
			if state.Risk != tt.wantRisk {
				t.Errorf("Risk = %d, want %d", state.Risk, tt.wantRisk)
			}
			if state.Level != tt.wantLevel {
				t.Errorf("Level = %s, want %s", state.Level, tt.wantLevel)
			}
			if state.Alert != tt.wantAlert {
				t.Errorf("Alert = %v, want %v", state.Alert, tt.wantAlert)
			}
		})
	}
}

func TestComputeTiltStateMonotonicDecay(t *testing.T) {
	last := time.Date(2025, 1, 14, 12, 0, 0, 0, time.UTC)
	battles := lossStreak(3, last)

	prev := 101
	for _, elapsed := range []time.Duration{0, 2 * time.Hour, 6 * time.Hour, 12 * time.Hour} {
		state := ComputeTiltState(battles, last.Add(elapsed))
		if state.Risk > prev {
			t.Fatalf("risk increased across decay stages: %d after %v (prev %d)", state.Risk, elapsed, prev)
		}
		prev = state.Risk
	}
	if prev != 0 {
		t.Errorf("risk after 12h = %d, want 0", prev)
	}
}

func TestComputeTiltStateBaseClassification(t *testing.T) {
	now := time.Date(2025, 1, 14, 12, 0, 0, 0, time.UTC)

	win := TimedBattle{Time: now, Crowns: 2, TrophyChange: 30}
	loss := TimedBattle{Time: now, OpponentCrowns: 2, TrophyChange: -30}

	tests := []struct {
		name      string
		battles   []TimedBattle
		wantBase  string
		wantRisk  int
	}{
		{
			// 4/10 wins = 40%, net -60, longest loss run 2: not high
			// (rate is not < 40), lands on medium (40 <= 40 <= 50, net < 0).
			name:     "Medium on borderline winrate with trophy bleed",
			battles:  []TimedBattle{loss, loss, win, loss, win, loss, win, loss, win, loss},
			wantBase: TiltMedium,
			wantRisk: 60,
		},
		{
			// 3/10 wins = 30%, net -120, loss runs capped at 2: high via the
			// winrate-and-trophies clause rather than the streak clause.
			name: "High on winrate collapse",
			battles: []TimedBattle{
				loss, loss, win, loss, loss, win, loss, loss, win, loss,
			},
			wantBase: TiltHigh,
			wantRisk: 100,
		},
		{
			name:     "None on winning record",
			battles:  []TimedBattle{win, win, loss, win, win},
			wantBase: TiltNone,
			wantRisk: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := ComputeTiltState(tt.battles, now)
			if state.BaseLevel != tt.wantBase {
				t.Errorf("BaseLevel = %s, want %s", state.BaseLevel, tt.wantBase)
			}
			if state.BaseRisk != tt.wantRisk {
				t.Errorf("BaseRisk = %d, want %d", state.BaseRisk, tt.wantRisk)
			}
		})
	}
}

func TestComputeTiltStateWindowsToTenBattles(t *testing.T) {
	now := time.Date(2025, 1, 14, 12, 0, 0, 0, time.UTC)

	// Ten wins up front, ancient losses behind them: only the window counts.
	battles := make([]TimedBattle, 0, 15)
	for i := 0; i < 10; i++ {
		battles = append(battles, TimedBattle{Time: now.Add(-time.Duration(i) * time.Minute), Crowns: 2, TrophyChange: 30})
	}
	for i := 0; i < 5; i++ {
		battles = append(battles, TimedBattle{Time: now.Add(-time.Duration(100+i) * time.Minute), OpponentCrowns: 2, TrophyChange: -30})
	}

	state := ComputeTiltState(battles, now)
	if state.BaseLevel != TiltNone {
		t.Errorf("BaseLevel = %s, want none (old losses outside the 10-battle window)", state.BaseLevel)
	}
}
