// Package plot renders the discharge waveforms as PNG time-series charts.
package plot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/edp1096/pulsecoil/pkg/waveform"
)

// SaveCurrent renders the coil current against time in milliseconds.
func SaveCurrent(series *waveform.Series, path string) error {
	return save(series.Time, series.Current,
		"Current Through Coil", "Time [ms]", "Current [A]", path)
}

// SaveField renders the magnetic field against time in milliseconds.
func SaveField(series *waveform.Series, path string) error {
	return save(series.Time, series.Field,
		"Magnetic Field Through Coil", "Time [ms]", "Magnetic Field [T]", path)
}

func save(times, values []float64, title, xLabel, yLabel, path string) error {
	if len(times) != len(values) {
		return fmt.Errorf("series length mismatch: %d times, %d values", len(times), len(values))
	}

	pts := make(plotter.XYs, len(times))
	for i := range times {
		pts[i].X = times[i] * 1e3 // s -> ms
		pts[i].Y = values[i]
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building line plot: %v", err)
	}
	p.Add(line)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot %s: %v", path, err)
	}
	return nil
}
