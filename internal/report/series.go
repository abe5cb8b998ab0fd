package report

import (
	"time"

	"telegram-habit-bot/internal/model"
)

// WindowDays is the trailing statistics window in calendar days.
const WindowDays = 7

const dateLabelLayout = "02.01"

// WindowToSeries reshapes a window of reports into one calendar-aligned series
// per report field. The window is the WindowDays calendar dates ending today
// in loc; every series has exactly one result per date, zero-filled where no
// report covered the field, and MaxGoal is the latest goal value seen.
func WindowToSeries(reports []model.Report, now time.Time, loc *time.Location) model.ChartDataset {
	today := dateOf(now, loc)
	days := make([]time.Time, WindowDays)
	labels := make([]string, WindowDays)
	for i := 0; i < WindowDays; i++ {
		d := today.AddDate(0, 0, i-WindowDays+1)
		days[i] = d
		labels[i] = d.Format(dateLabelLayout)
	}

	dayIndex := make(map[time.Time]int, WindowDays)
	for i, d := range days {
		dayIndex[d] = i
	}

	type seriesAcc struct {
		title     string
		maxGoal   int
		updatedAt time.Time
		results   []int
	}
	var order []string
	acc := make(map[string]*seriesAcc)

	for _, rep := range reports {
		idx, inWindow := dayIndex[dateOf(rep.CreatedAt, loc)]
		if !inWindow {
			continue
		}
		for _, f := range rep.Fields {
			sa, ok := acc[f.Key]
			if !ok {
				sa = &seriesAcc{title: f.Title, results: make([]int, WindowDays)}
				acc[f.Key] = sa
				order = append(order, f.Key)
			}
			sa.results[idx] = f.TrackedValue
			if !rep.CreatedAt.Before(sa.updatedAt) {
				sa.updatedAt = rep.CreatedAt
				sa.maxGoal = f.GoalValue
			}
		}
	}

	dataset := model.ChartDataset{}
	for _, key := range order {
		sa := acc[key]
		dataset.Series = append(dataset.Series, model.ChartSeries{
			Title:   sa.title,
			MaxGoal: sa.maxGoal,
			Dates:   labels,
			Results: sa.results,
		})
	}
	return dataset
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
