// Package waveform turns a transient solver result into the coil current
// and magnetic field time series and knows how to export them.
package waveform

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/edp1096/pulsecoil/pkg/analysis"
	"github.com/edp1096/pulsecoil/pkg/circuit"
)

// Series holds the time-aligned discharge waveforms. All slices have equal
// length and time is strictly increasing.
type Series struct {
	Time    []float64 // s
	Current []float64 // A
	Field   []float64 // T
}

// FromResults extracts the coil current from solver results and maps it to
// the magnetic field with the coil's field-per-amp coefficient.
func FromResults(results map[string][]float64, fieldCoeff float64) (*Series, error) {
	times, ok := results[analysis.KeyTime]
	if !ok || len(times) == 0 {
		return nil, fmt.Errorf("results have no time axis")
	}
	current, ok := results[circuit.KeyCoilCurrent]
	if !ok {
		return nil, fmt.Errorf("results have no coil current (%s)", circuit.KeyCoilCurrent)
	}
	if len(current) != len(times) {
		return nil, fmt.Errorf("series length mismatch: %d times, %d current samples",
			len(times), len(current))
	}

	field := make([]float64, len(current))
	for i, a := range current {
		field[i] = fieldCoeff * a
	}

	return &Series{Time: times, Current: current, Field: field}, nil
}

func (s *Series) Len() int {
	return len(s.Time)
}

// PeakCurrent returns the largest current magnitude and its time.
func (s *Series) PeakCurrent() (float64, float64) {
	return s.peak(s.Current)
}

// PeakField returns the largest field magnitude and its time.
func (s *Series) PeakField() (float64, float64) {
	return s.peak(s.Field)
}

func (s *Series) peak(values []float64) (float64, float64) {
	peak, peakTime := 0.0, 0.0
	for i, v := range values {
		if math.Abs(v) > math.Abs(peak) {
			peak = v
			peakTime = s.Time[i]
		}
	}
	return peak, peakTime
}

// DissipatedEnergy integrates i^2*R over the series with the trapezoidal
// rule, in joules.
func (s *Series) DissipatedEnergy(resistance float64) float64 {
	energy := 0.0
	for i := 1; i < len(s.Time); i++ {
		dt := s.Time[i] - s.Time[i-1]
		p0 := s.Current[i-1] * s.Current[i-1] * resistance
		p1 := s.Current[i] * s.Current[i] * resistance
		energy += (p0 + p1) / 2 * dt
	}
	return energy
}

// WriteCSV writes the series as a delimited table: time, current, field.
func (s *Series) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"time_s", "current_a", "field_t"}); err != nil {
		return fmt.Errorf("writing csv header: %v", err)
	}
	for i := range s.Time {
		record := []string{
			strconv.FormatFloat(s.Time[i], 'e', 9, 64),
			strconv.FormatFloat(s.Current[i], 'e', 9, 64),
			strconv.FormatFloat(s.Field[i], 'e', 9, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv record %d: %v", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the series to a file.
func (s *Series) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %v", path, err)
	}

	if err := s.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
