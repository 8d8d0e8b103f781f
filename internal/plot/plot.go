// Package plot renders recorded samples as PNG charts.
package plot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"ising-mc/internal/ising"
)

// ErrTooFewSamples is returned when fewer than two samples are available.
var ErrTooFewSamples = errors.New("plot: at least two samples are required")

// XAxis selects the abscissa of the chart.
type XAxis int

const (
	XBlock XAxis = iota
	XTemperature
	XField
)

func (a XAxis) String() string {
	switch a {
	case XTemperature:
		return "temperature"
	case XField:
		return "field"
	default:
		return "block"
	}
}

// AxisFor returns the natural abscissa for a schedule mode.
func AxisFor(m ising.Mode) XAxis {
	switch m {
	case ising.ModeTemperatureSweep, ising.ModeTemperatureLoop:
		return XTemperature
	case ising.ModeFieldSweep, ising.ModeFieldLoop:
		return XField
	default:
		return XBlock
	}
}

func (a XAxis) value(s ising.Sample) float64 {
	switch a {
	case XTemperature:
		return s.Temperature
	case XField:
		return s.Field
	default:
		return float64(s.Block)
	}
}

// Samples draws magnetization and order parameter against the chosen axis.
func Samples(w io.Writer, title string, samples []ising.Sample, axis XAxis) error {
	if len(samples) < 2 {
		return ErrTooFewSamples
	}
	xs := make([]float64, len(samples))
	mag := make([]float64, len(samples))
	order := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = axis.value(s)
		mag[i] = s.Magnetization
		order[i] = s.OrderParameter
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 500,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  axis.String(),
			Style: chart.Style{FontSize: 10.0},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: -1, Max: 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "magnetization",
				XValues: xs,
				YValues: mag,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "order parameter",
				XValues: xs,
				YValues: order,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 220, G: 90, B: 40, A: 255}, StrokeWidth: 2.0},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// WriteFile renders the chart into path.
func WriteFile(path, title string, samples []ising.Sample, axis XAxis) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dirs: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	if err := Samples(f, title, samples, axis); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
