package engine

import "testing"

func TestEvaluateGoalProgress(t *testing.T) {
	tests := []struct {
		name      string
		goalType  string
		target    int
		current   int
		completed bool
		ctx       GoalContext
		want      *GoalDelta
	}{
		{
			name:     "Trophies goal reaches target",
			goalType: GoalTrophies,
			target:   6000,
			current:  5900,
			ctx:      GoalContext{Trophies: 6200},
			want:     &GoalDelta{CurrentValue: 6200, Completed: true},
		},
		{
			name:     "Trophies goal advances without completing",
			goalType: GoalTrophies,
			target:   6000,
			current:  5900,
			ctx:      GoalContext{Trophies: 5950},
			want:     &GoalDelta{CurrentValue: 5950, Completed: false},
		},
		{
			name:     "Trophies unchanged is a no-op",
			goalType: GoalTrophies,
			target:   6000,
			current:  5900,
			ctx:      GoalContext{Trophies: 5900},
			want:     nil,
		},
		{
			name:     "Trophies can move backwards without completing",
			goalType: GoalTrophies,
			target:   6000,
			current:  5900,
			ctx:      GoalContext{Trophies: 5800},
			want:     &GoalDelta{CurrentValue: 5800, Completed: false},
		},
		{
			name:     "Winrate rounds before comparing",
			goalType: GoalWinRate,
			target:   60,
			current:  55,
			ctx:      GoalContext{WinRate: 60.4},
			want:     &GoalDelta{CurrentValue: 60, Completed: true},
		},
		{
			name:     "Winrate rounded to same value is a no-op",
			goalType: GoalWinRate,
			target:   60,
			current:  55,
			ctx:      GoalContext{WinRate: 54.6},
			want:     nil,
		},
		{
			name:     "Streak advances on longer win streak",
			goalType: GoalStreak,
			target:   5,
			current:  2,
			ctx:      GoalContext{Streak: 5, StreakIsWins: true},
			want:     &GoalDelta{CurrentValue: 5, Completed: true},
		},
		{
			name:     "Streak ignores equal streak",
			goalType: GoalStreak,
			target:   5,
			current:  3,
			ctx:      GoalContext{Streak: 3, StreakIsWins: true},
			want:     nil,
		},
		{
			name:     "Streak ignores losing streak",
			goalType: GoalStreak,
			target:   5,
			current:  2,
			ctx:      GoalContext{Streak: 4, StreakIsWins: false},
			want:     nil,
		},
		{
			name:     "Custom goals are never auto-advanced",
			goalType: GoalCustom,
			target:   100,
			current:  10,
			ctx:      GoalContext{Trophies: 9999},
			want:     nil,
		},
		{
			name:     "Unknown type is a no-op",
			goalType: "ladder-rank",
			target:   100,
			current:  10,
			ctx:      GoalContext{Trophies: 9999},
			want:     nil,
		},
		{
			name:      "Completed goal never re-evaluates",
			goalType:  GoalTrophies,
			target:    6000,
			current:   6200,
			completed: true,
			ctx:       GoalContext{Trophies: 5000},
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateGoalProgress(tt.goalType, tt.target, tt.current, tt.completed, tt.ctx)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("got %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("got nil, want %+v", tt.want)
			}
			if got.CurrentValue != tt.want.CurrentValue || got.Completed != tt.want.Completed {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
