package report

import (
	"time"

	"telegram-habit-bot/internal/model"
)

// eveningHour is the earliest local hour at which a day may be reported.
const eveningHour = 18

// RemainingDays counts how many distinct calendar dates are still missing
// before a full statistics week can be rendered, given the reports of the
// trailing window.
func RemainingDays(reports []model.Report, loc *time.Location) int {
	distinct := make(map[time.Time]struct{})
	for _, rep := range reports {
		distinct[dateOf(rep.CreatedAt, loc)] = struct{}{}
	}
	remaining := WindowDays - len(distinct)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Refusal is an informational reason to keep a user out of the daily-report
// flow. It is not an error and leaves all state untouched.
type Refusal int

const (
	RefusalNone Refusal = iota
	RefusalAlreadyTracked
	RefusalTooEarly
)

// TrackRefusal applies the daily-tracking gate: one report per calendar date,
// and not before the evening, both in the fixed reporting timezone.
func TrackRefusal(last *model.Report, now time.Time, loc *time.Location) Refusal {
	if last != nil && dateOf(last.CreatedAt, loc).Equal(dateOf(now, loc)) {
		return RefusalAlreadyTracked
	}
	if now.In(loc).Hour() < eveningHour {
		return RefusalTooEarly
	}
	return RefusalNone
}
