package report

import (
	"testing"
	"time"

	"telegram-habit-bot/internal/model"
)

func TestRemainingDays(t *testing.T) {
	loc := time.UTC
	base := time.Date(2024, 3, 10, 19, 0, 0, 0, loc)

	reports := []model.Report{
		reportAt(base.AddDate(0, 0, -4)),
		reportAt(base.AddDate(0, 0, -2)),
		reportAt(base),
	}
	if got := RemainingDays(reports, loc); got != 4 {
		t.Errorf("expected 4 remaining days, got %d", got)
	}

	// two reports on the same calendar date count once
	reports = append(reports, reportAt(base.Add(2*time.Hour)))
	if got := RemainingDays(reports, loc); got != 4 {
		t.Errorf("same-date duplicate changed the count: %d", got)
	}

	if got := RemainingDays(nil, loc); got != WindowDays {
		t.Errorf("expected %d for no reports, got %d", WindowDays, got)
	}
}

func TestRemainingDaysNeverNegative(t *testing.T) {
	loc := time.UTC
	base := time.Date(2024, 3, 10, 19, 0, 0, 0, loc)
	var reports []model.Report
	for i := 0; i < 9; i++ {
		reports = append(reports, reportAt(base.AddDate(0, 0, -i)))
	}
	if got := RemainingDays(reports, loc); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestTrackRefusal(t *testing.T) {
	loc := time.FixedZone("EET", 2*60*60)
	evening := time.Date(2024, 3, 10, 19, 0, 0, 0, loc)

	if got := TrackRefusal(nil, evening, loc); got != RefusalNone {
		t.Errorf("first ever report refused: %v", got)
	}

	yesterday := reportAt(evening.AddDate(0, 0, -1))
	if got := TrackRefusal(&yesterday, evening, loc); got != RefusalNone {
		t.Errorf("yesterday's report should not block today: %v", got)
	}

	today := reportAt(evening.Add(-30 * time.Minute))
	if got := TrackRefusal(&today, evening, loc); got != RefusalAlreadyTracked {
		t.Errorf("expected already-tracked, got %v", got)
	}

	morning := time.Date(2024, 3, 10, 17, 59, 0, 0, loc)
	if got := TrackRefusal(nil, morning, loc); got != RefusalTooEarly {
		t.Errorf("expected too-early before 18:00, got %v", got)
	}

	atSix := time.Date(2024, 3, 10, 18, 0, 0, 0, loc)
	if got := TrackRefusal(nil, atSix, loc); got != RefusalNone {
		t.Errorf("18:00 sharp should be allowed, got %v", got)
	}
}

// The same-date check wins over the evening gate, matching the order the
// messages are shown in.
func TestTrackRefusalSameDateBeforeEvening(t *testing.T) {
	loc := time.UTC
	morning := time.Date(2024, 3, 10, 9, 0, 0, 0, loc)
	earlier := reportAt(time.Date(2024, 3, 10, 8, 0, 0, 0, loc))
	if got := TrackRefusal(&earlier, morning, loc); got != RefusalAlreadyTracked {
		t.Errorf("expected already-tracked to win, got %v", got)
	}
}

// Gate decisions are made in the reporting timezone, not in UTC.
func TestTrackRefusalUsesLocation(t *testing.T) {
	loc := time.FixedZone("EET", 2*60*60)
	// 16:30 UTC is 18:30 local
	now := time.Date(2024, 3, 10, 16, 30, 0, 0, time.UTC)
	if got := TrackRefusal(nil, now, loc); got != RefusalNone {
		t.Errorf("expected none at 18:30 local, got %v", got)
	}
}
