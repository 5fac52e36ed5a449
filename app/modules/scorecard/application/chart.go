package scorecardservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	scorecarddomain "github.com/Black-And-White-Club/citl/app/modules/scorecard/domain"
)

var (
	barColor   = drawing.ColorFromHex("2e6b3f")
	background = drawing.ColorWhite
)

// RenderChart draws the team's total targets per week as a PNG bar chart.
func (s *ScorecardService) RenderChart(ctx context.Context, season int, team string, opts scorecarddomain.Options) ([]byte, error) {
	view, err := s.GetScorecard(ctx, season, team, opts)
	if err != nil {
		return nil, err
	}
	return TotalTargetsChart(view)
}

// TotalTargetsChart renders view's total targets row. An all-zero row still
// renders, with a fixed axis and a "no targets" title.
func TotalTargetsChart(view *scorecarddomain.View) ([]byte, error) {
	bars := make([]chart.Value, 0, len(view.TotalTargets))
	peak := 0
	for w, t := range view.TotalTargets {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%d", w),
			Value: float64(t),
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
		peak = max(peak, t)
	}
	title := fmt.Sprintf("%s %d: total targets by week", view.Team, view.Season)
	top := float64(peak) * 1.1
	if peak == 0 {
		title = fmt.Sprintf("No targets recorded for %s in %d", view.Team, view.Season)
		top = 1
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      1000,
		Height:     420,
		BarWidth:   32,
		BarSpacing: 16,
		Background: chart.Style{FillColor: background, Padding: chart.Box{Top: 40}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}

	buf := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}
