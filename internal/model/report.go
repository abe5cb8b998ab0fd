package model

import (
	"time"

	"github.com/google/uuid"
)

// TempField is a transient answer captured mid-flow. GoalField names the
// GoalSet key the answer is tracked against; it is resolved into a goal value
// when the report is finalized and never persisted itself.
type TempField struct {
	Title        string `json:"title"`
	TrackedValue int    `json:"trackedValue"`
	Color        string `json:"color"`
	GoalField    string `json:"goalField"`
}

// TempEntry pairs a TempField with its target report field name
// (diet, training, sleep, custom_<n>).
type TempEntry struct {
	Name  string    `json:"name"`
	Field TempField `json:"field"`
}

// ReportField is one goal-resolved entry of a finalized report.
type ReportField struct {
	Key          string `json:"key"`
	Title        string `json:"title"`
	TrackedValue int    `json:"trackedValue"`
	GoalValue    int    `json:"goalValue"`
	Color        string `json:"color"`
}

// Report is an immutable daily snapshot. GoalValue is fixed at creation time;
// later goal edits do not touch persisted reports.
type Report struct {
	ID             uuid.UUID
	UserTelegramID int64
	CreatedAt      time.Time
	Fields         []ReportField
}

// ChartSeries is one goal's calendar-aligned slice of the statistics window.
// Results has one entry per window date, zero when nothing was reported.
type ChartSeries struct {
	Title   string
	MaxGoal int
	Dates   []string
	Results []int
}

type ChartDataset struct {
	Series []ChartSeries
}
