package waveform

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/pulsecoil/pkg/analysis"
	"github.com/edp1096/pulsecoil/pkg/circuit"
)

func sampleResults() map[string][]float64 {
	return map[string][]float64{
		analysis.KeyTime:       {0, 1e-5, 2e-5, 3e-5},
		circuit.KeyCoilCurrent: {0, 100, 150, 120},
		circuit.KeyBankVoltage: {48, 47, 45, 43},
	}
}

func TestFromResultsFieldIsLinearInCurrent(t *testing.T) {
	const coeff = 8.67e-4

	s, err := FromResults(sampleResults(), coeff)
	require.NoError(t, err)
	require.Equal(t, 4, s.Len())

	for i := range s.Time {
		if s.Current[i] == 0 {
			assert.Zero(t, s.Field[i])
			continue
		}
		assert.InDelta(t, coeff, s.Field[i]/s.Current[i], 1e-15)
	}
}

func TestFromResultsErrors(t *testing.T) {
	_, err := FromResults(map[string][]float64{}, 1)
	assert.Error(t, err)

	noCurrent := map[string][]float64{analysis.KeyTime: {0, 1}}
	_, err = FromResults(noCurrent, 1)
	assert.Error(t, err)

	mismatched := sampleResults()
	mismatched[circuit.KeyCoilCurrent] = []float64{0, 1}
	_, err = FromResults(mismatched, 1)
	assert.Error(t, err)
}

func TestPeaks(t *testing.T) {
	s, err := FromResults(sampleResults(), 2.0)
	require.NoError(t, err)

	peakCurrent, at := s.PeakCurrent()
	assert.Equal(t, 150.0, peakCurrent)
	assert.Equal(t, 2e-5, at)

	peakField, at := s.PeakField()
	assert.Equal(t, 300.0, peakField)
	assert.Equal(t, 2e-5, at)
}

func TestDissipatedEnergyConstantCurrent(t *testing.T) {
	s := &Series{
		Time:    []float64{0, 1, 2},
		Current: []float64{2, 2, 2},
		Field:   []float64{0, 0, 0},
	}

	// i^2 * R * t = 4 * 3 * 2
	assert.InDelta(t, 24.0, s.DissipatedEnergy(3), 1e-12)
}

func TestWriteCSVRoundTrips(t *testing.T) {
	s, err := FromResults(sampleResults(), 8.67e-4)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.WriteCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, s.Len()+1)

	assert.Equal(t, []string{"time_s", "current_a", "field_t"}, records[0])

	prev := -1.0
	for i, record := range records[1:] {
		ts, err := strconv.ParseFloat(record[0], 64)
		require.NoError(t, err)
		assert.Greater(t, ts, prev)
		prev = ts

		current, err := strconv.ParseFloat(record[1], 64)
		require.NoError(t, err)
		assert.InDelta(t, s.Current[i], current, 1e-9)
	}
}
