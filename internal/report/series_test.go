package report

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"telegram-habit-bot/internal/model"
)

func reportAt(t time.Time, fields ...model.ReportField) model.Report {
	return model.Report{
		ID:             uuid.New(),
		UserTelegramID: 42,
		CreatedAt:      t,
		Fields:         fields,
	}
}

func TestWindowToSeriesZeroFills(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, loc)

	reports := []model.Report{
		reportAt(now.AddDate(0, 0, -6),
			model.ReportField{Key: "diet", Title: "їжа", TrackedValue: 1900, GoalValue: 2000, Color: "red"}),
		reportAt(now.AddDate(0, 0, -2),
			model.ReportField{Key: "diet", Title: "їжа", TrackedValue: 2100, GoalValue: 2000, Color: "red"}),
		reportAt(now,
			model.ReportField{Key: "diet", Title: "їжа", TrackedValue: 2050, GoalValue: 1800, Color: "red"}),
	}

	ds := WindowToSeries(reports, now, loc)
	if len(ds.Series) != 1 {
		t.Fatalf("expected 1 series, got %d", len(ds.Series))
	}
	s := ds.Series[0]
	if len(s.Dates) != WindowDays || len(s.Results) != WindowDays {
		t.Fatalf("expected %d-slot series, got %d dates / %d results", WindowDays, len(s.Dates), len(s.Results))
	}
	if s.Dates[0] != "04.03" || s.Dates[6] != "10.03" {
		t.Errorf("unexpected window bounds: %s .. %s", s.Dates[0], s.Dates[6])
	}

	want := []int{1900, 0, 0, 0, 2100, 0, 2050}
	for i, w := range want {
		if s.Results[i] != w {
			t.Errorf("slot %d: expected %d, got %d", i, w, s.Results[i])
		}
	}
	// the goal line follows the newest report, not the largest goal
	if s.MaxGoal != 1800 {
		t.Errorf("expected goal 1800 from the newest report, got %d", s.MaxGoal)
	}
}

func TestWindowToSeriesFieldOrderAndOutOfWindow(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, loc)

	reports := []model.Report{
		// too old, must be skipped entirely
		reportAt(now.AddDate(0, 0, -7),
			model.ReportField{Key: "stale", Title: "stale", TrackedValue: 99, GoalValue: 1, Color: "red"}),
		reportAt(now.AddDate(0, 0, -1),
			model.ReportField{Key: "diet", Title: "їжа", TrackedValue: 2000, GoalValue: 2000, Color: "red"},
			model.ReportField{Key: "sleep", Title: "сон", TrackedValue: 8, GoalValue: 8, Color: "yellow"}),
		reportAt(now,
			model.ReportField{Key: "sleep", Title: "сон", TrackedValue: 6, GoalValue: 8, Color: "yellow"},
			model.ReportField{Key: "custom_1", Title: "читання", TrackedValue: 20, GoalValue: 30, Color: "blue"}),
	}

	ds := WindowToSeries(reports, now, loc)
	if len(ds.Series) != 3 {
		t.Fatalf("expected 3 series, got %d", len(ds.Series))
	}
	titles := []string{"їжа", "сон", "читання"}
	for i, w := range titles {
		if ds.Series[i].Title != w {
			t.Errorf("series %d: expected %s, got %s", i, w, ds.Series[i].Title)
		}
	}
	if ds.Series[1].Results[5] != 8 || ds.Series[1].Results[6] != 6 {
		t.Errorf("unexpected sleep series: %v", ds.Series[1].Results)
	}
}

func TestWindowToSeriesEmpty(t *testing.T) {
	ds := WindowToSeries(nil, time.Now(), time.UTC)
	if len(ds.Series) != 0 {
		t.Fatalf("expected no series, got %d", len(ds.Series))
	}
}

// Timezone boundaries: a report filed late in the evening belongs to its local
// calendar date even when the UTC date already rolled over.
func TestWindowToSeriesLocalDates(t *testing.T) {
	loc := time.FixedZone("EET", 2*60*60)
	// 23:30 local on 09.03 is 21:30 UTC
	filed := time.Date(2024, 3, 9, 21, 30, 0, 0, time.UTC)
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, loc)

	ds := WindowToSeries([]model.Report{
		reportAt(filed, model.ReportField{Key: "diet", Title: "їжа", TrackedValue: 1, GoalValue: 2, Color: "red"}),
	}, now, loc)
	if len(ds.Series) != 1 {
		t.Fatalf("expected 1 series, got %d", len(ds.Series))
	}
	if got := ds.Series[0].Results[5]; got != 1 {
		t.Errorf("report should land on 09.03 local, results: %v", ds.Series[0].Results)
	}
}
