package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"ping-tool/internal/models"
)

// WriteCharts renders one SVG latency chart per analyzed file. Files
// with fewer than two replies are skipped; a chart needs a line.
func WriteCharts(outputDir string, summary *models.Summary) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create charts directory: %w", err)
	}

	for _, a := range summary.All() {
		if len(a.Observations) < 2 {
			continue
		}
		filename := filepath.Join(outputDir, fmt.Sprintf("latency_%s.svg", sanitizeFilename(filepath.Base(a.Filename))))
		if err := writeLatencyChart(filename, a); err != nil {
			return fmt.Errorf("chart for %s: %w", a.Filename, err)
		}
	}
	return nil
}

func writeLatencyChart(filename string, a *models.Analysis) error {
	series := latencySeries(a)

	graph := chart.Chart{
		Title: fmt.Sprintf("Ping Latency - %s", a.DisplayTarget()),
		TitleStyle: chart.Style{
			FontSize: 14,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: xAxisName(a),
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
		},
		YAxis: chart.YAxis{
			Name: "Latency (ms)",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: []chart.Series{series},
	}

	if a.HasTimestamps {
		graph.XAxis.ValueFormatter = chart.TimeMinuteValueFormatter
	}

	// Moving average overlay once there is enough data to smooth.
	if len(a.Observations) > 10 {
		graph.Series = append(graph.Series, chart.SMASeries{
			Name: "Moving Avg",
			Style: chart.Style{
				StrokeColor:     chart.GetDefaultColor(1),
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 5},
			},
			InnerSeries: series.(chart.ValuesProvider),
			Period:      10,
		})
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.SVG, file)
}

// latencySeries plots against wall time when the log carries timestamps
// and against sequence numbers otherwise.
func latencySeries(a *models.Analysis) chart.Series {
	values := make([]float64, len(a.Observations))
	for i, o := range a.Observations {
		values[i] = o.Latency
	}

	style := chart.Style{
		StrokeColor: chart.GetDefaultColor(0),
		StrokeWidth: 2,
	}

	if a.HasTimestamps {
		times := make([]time.Time, len(a.Observations))
		for i, o := range a.Observations {
			sec := int64(o.Timestamp)
			nsec := int64((o.Timestamp - float64(sec)) * 1e9)
			times[i] = time.Unix(sec, nsec)
		}
		return chart.TimeSeries{
			Name:    a.DisplayTarget(),
			Style:   style,
			XValues: times,
			YValues: values,
		}
	}

	seqs := make([]float64, len(a.Observations))
	for i, o := range a.Observations {
		seqs[i] = float64(o.Seq)
	}
	return chart.ContinuousSeries{
		Name:    a.DisplayTarget(),
		Style:   style,
		XValues: seqs,
		YValues: values,
	}
}

func xAxisName(a *models.Analysis) string {
	if a.HasTimestamps {
		return "Time"
	}
	return "Sequence"
}
