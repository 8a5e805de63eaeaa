package report

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/brokercheck/internal/models"
)

// RenderSummaryChart renders a PNG bar chart of matched vs mismatched fields and
// passed vs failed checks for one screen report. Returns raw PNG bytes.
func RenderSummaryChart(r *models.ScreenReport) ([]byte, error) {
	total := len(r.Comparisons) + len(r.Checks)
	if total == 0 {
		return nil, fmt.Errorf("report for %s has no comparisons or checks", r.Screen)
	}

	passed := len(r.Checks) - r.FailedChecks()
	bars := []chart.Value{
		{Label: "Matched", Value: float64(r.Matched()), Style: barStyle("16a34a")},       // green-600
		{Label: "Mismatched", Value: float64(r.Mismatched()), Style: barStyle("dc2626")}, // red-600
		{Label: "Checks passed", Value: float64(passed), Style: barStyle("2563eb")},      // blue-600
		{Label: "Checks failed", Value: float64(r.FailedChecks()), Style: barStyle("f59e0b")},
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("%s (%s)", r.Screen, r.Scenario),
		Width:    720,
		Height:   400,
		BarWidth: 90,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			// a fixed range keeps an all-zero series renderable
			Range: &chart.ContinuousRange{Min: 0, Max: float64(max(total, 1))},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

func barStyle(hex string) chart.Style {
	return chart.Style{
		FillColor:   drawing.ColorFromHex(hex),
		StrokeColor: drawing.ColorFromHex(hex),
		StrokeWidth: 1,
	}
}
