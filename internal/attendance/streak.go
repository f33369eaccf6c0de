package attendance

import "time"

// DateOnly truncates a time to UTC midnight of its calendar day. All streak
// comparisons are calendar-day comparisons, not elapsed hours, and DATE
// columns scan back as UTC midnights, so everything normalizes to UTC here.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EvaluateStreak determines the new consecutive-attendance streak for a
// check-in happening "today", given the date of the most recent prior
// confirmed check-in (nil when there is none) and the current streak.
//
// The prior-date-equals-today branch is a defensive fallback only: callers
// must reject a second check-in for the same day before evaluating.
func EvaluateStreak(prior *time.Time, today time.Time, current int) int {
	if prior == nil {
		return 1
	}

	priorDay := DateOnly(*prior)
	day := DateOnly(today)

	switch {
	case priorDay.Equal(day):
		return current
	case priorDay.Equal(day.AddDate(0, 0, -1)):
		return current + 1
	default:
		return 1
	}
}
