package scoring

import (
	"time"

	"progress-service/internal/models"
)

// DayOf truncates a timestamp to its calendar day in the given zone.
func DayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// NextStreak applies the consecutive-day rule. Both arguments must already be
// day-truncated in the same zone. A zero lastActivityDay means no prior
// correct answer exists, which starts a fresh streak.
//
// First matching rule wins:
//   - same day as the last activity: streak unchanged
//   - the day after the last activity: streak + 1
//   - anything else (gap of two or more days, or no prior day): 1
func NextStreak(current int, lastActivityDay, today time.Time) int {
	if lastActivityDay.IsZero() {
		return 1
	}
	switch {
	case today.Equal(lastActivityDay):
		return current
	case today.Equal(lastActivityDay.AddDate(0, 0, 1)):
		return current + 1
	default:
		return 1
	}
}

// lastCorrectDay returns the day of the most recent correct answer in the
// history, or the zero time when none exists.
func lastCorrectDay(history []models.ActivityEvent, loc *time.Location) time.Time {
	var last time.Time
	for _, ev := range history {
		if ev.Result != models.ResultCorrect {
			continue
		}
		if !ev.Date.Before(last) {
			last = ev.Date
		}
	}
	if last.IsZero() {
		return time.Time{}
	}
	return DayOf(last, loc)
}
