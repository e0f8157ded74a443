package statistics

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/beehive/dashboard/internal/models"
)

// BalanceTrendChart renders the 29-day balance trend as a PNG line
// chart. Reconstructed history is drawn solid, the projection dashed.
func (s *Service) BalanceTrendChart(ctx context.Context, userID string) ([]byte, error) {
	stats, err := s.LandingStatistics(ctx, userID)
	if err != nil {
		return nil, err
	}
	return renderTrendChart(stats.BalanceTrend)
}

func renderTrendChart(trend []models.BalanceTrendPoint) ([]byte, error) {
	if len(trend) < 2 {
		return nil, fmt.Errorf("need at least 2 trend points, got %d", len(trend))
	}

	var (
		actualX, projectedX []time.Time
		actualY, projectedY []float64
	)
	for _, p := range trend {
		date, err := time.Parse("2006-01-02", p.FullDate)
		if err != nil {
			return nil, fmt.Errorf("bad trend date %q: %w", p.FullDate, err)
		}
		if p.Actual != nil {
			actualX = append(actualX, date)
			actualY = append(actualY, *p.Actual)
		}
		if p.Projected != nil {
			projectedX = append(projectedX, date)
			projectedY = append(projectedY, *p.Projected)
		}
	}

	actualSeries := chart.TimeSeries{
		Name: "Balance",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: actualX,
		YValues: actualY,
	}

	projectedSeries := chart.TimeSeries{
		Name: "Projected",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: projectedX,
		YValues: projectedY,
	}

	var yAxisRange chart.Range
	if minY, maxY := valueBounds(trend); minY == maxY {
		// go-chart rejects a zero y-range delta
		pad := math.Max(math.Abs(maxY)*0.05, 1)
		yAxisRange = &chart.ContinuousRange{Min: minY - pad, Max: maxY + pad}
	}

	graph := chart.Chart{
		Title:  "Balance Trend",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 2")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Range: yAxisRange,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			actualSeries,
			projectedSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

func valueBounds(trend []models.BalanceTrendPoint) (float64, float64) {
	minY := math.Inf(1)
	maxY := math.Inf(-1)
	for _, p := range trend {
		for _, v := range []*float64{p.Actual, p.Projected} {
			if v == nil {
				continue
			}
			minY = math.Min(minY, *v)
			maxY = math.Max(maxY, *v)
		}
	}
	return minY, maxY
}
