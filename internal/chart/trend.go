// Package chart renders population trend charts for the dashboard.
package chart

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/wardwatch/tokyo-ward-stats/internal/domain"
)

var trendLineColor = color.RGBA{R: 59, G: 130, B: 246, A: 255}

// TrendPNG renders the census population series for a single ward as a
// PNG line chart and writes it to w. The series is expected to be sorted
// by ascending year, as produced by the collector.
func TrendPNG(w io.Writer, wardName string, trend []domain.TrendPoint) error {
	if len(trend) == 0 {
		return fmt.Errorf("no trend data for %s", wardName)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s population trend", wardName)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Population"

	points := make(plotter.XYs, len(trend))
	for i, tp := range trend {
		points[i].X = float64(tp.Year)
		points[i].Y = float64(tp.Population)
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return fmt.Errorf("building trend line: %w", err)
	}
	line.Color = trendLineColor
	line.Width = vg.Points(2)

	p.Add(line)
	p.Add(plotter.NewGrid())

	wt, err := p.WriterTo(16*vg.Centimeter, 10*vg.Centimeter, "png")
	if err != nil {
		return fmt.Errorf("rendering trend chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing trend chart: %w", err)
	}
	return nil
}
