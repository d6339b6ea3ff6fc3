package engine

// Goal types a user can declare.
const (
	GoalTrophies = "trophies"
	GoalStreak   = "streak"
	GoalWinRate  = "winrate"
	GoalCustom   = "custom"
)

// GoalContext carries the freshly observed stats a goal can advance from.
type GoalContext struct {
	Trophies     int
	WinRate      float64
	Streak       int
	StreakIsWins bool
}

// GoalDelta is the change the caller should persist for a goal.
type GoalDelta struct {
	CurrentValue int
	Completed    bool
}

// EvaluateGoalProgress decides whether a goal advances given fresh stats.
// Returns nil when there is nothing to do: the goal is already completed,
// its type is unrecognized, or it is a custom goal (manual updates only).
// Side-effect free — the caller persists the delta and stamps completion.
func EvaluateGoalProgress(goalType string, target, current int, alreadyCompleted bool, ctx GoalContext) *GoalDelta {
	if alreadyCompleted {
		return nil
	}

	switch goalType {
	case GoalTrophies:
		if ctx.Trophies == current {
			return nil
		}
		return &GoalDelta{CurrentValue: ctx.Trophies, Completed: ctx.Trophies >= target}

	case GoalWinRate:
		value := roundHalfUp(ctx.WinRate)
		if value == current {
			return nil
		}
		return &GoalDelta{CurrentValue: value, Completed: value >= target}

	case GoalStreak:
		// Only a winning streak counts, and only strict improvement.
		if !ctx.StreakIsWins || ctx.Streak <= current {
			return nil
		}
		return &GoalDelta{CurrentValue: ctx.Streak, Completed: ctx.Streak >= target}

	default:
		// Custom goals and unknown types are never auto-advanced.
		return nil
	}
}
