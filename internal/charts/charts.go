// Package charts renders statistics datasets into PNG images.
package charts

import (
	"bytes"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"

	"telegram-habit-bot/internal/model"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces one bar chart per series: a bar per window date and the
// goal value marked as a grid line.
func (r *Renderer) Render(ds model.ChartDataset) ([][]byte, error) {
	images := make([][]byte, 0, len(ds.Series))
	for _, series := range ds.Series {
		img, err := renderSeries(series)
		if err != nil {
			return nil, fmt.Errorf("error rendering chart %q: %w", series.Title, err)
		}
		images = append(images, img)
	}
	return images, nil
}

func renderSeries(series model.ChartSeries) ([]byte, error) {
	bars := make([]chart.Value, 0, len(series.Results))
	maxVal := float64(series.MaxGoal)
	for i, result := range series.Results {
		label := ""
		if i < len(series.Dates) {
			label = series.Dates[i]
		}
		bars = append(bars, chart.Value{Value: float64(result), Label: label})
		if float64(result) > maxVal {
			maxVal = float64(result)
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	bc := chart.BarChart{
		Title:    fmt.Sprintf("%s (ціль: %d)", series.Title, series.MaxGoal),
		Width:    720,
		Height:   480,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 48},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxVal * 1.2},
			GridLines: []chart.GridLine{
				{Value: float64(series.MaxGoal)},
			},
			GridMajorStyle: chart.Style{
				StrokeColor: chart.ColorRed,
				StrokeWidth: 1.5,
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
