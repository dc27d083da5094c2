package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreTimeResultKeepsFineSteps(t *testing.T) {
	ba := NewBaseAnalysis()

	// Steps near the minimum (0.2 us) late in a 10 ms run must all be kept.
	times := []float64{9.9990e-3, 9.9992e-3, 9.9994e-3, 9.9996e-3, 9.9998e-3, 10e-3}
	for i, ts := range times {
		ba.StoreTimeResult(ts, map[string]float64{"I(Lcoil)": float64(i)})
	}

	stored := ba.GetResults()[KeyTime]
	require.Len(t, stored, len(times))
	assert.Equal(t, times, stored)
	assert.Len(t, ba.GetResults()["I(Lcoil)"], len(times))
}

func TestStoreTimeResultDropsDuplicateTime(t *testing.T) {
	ba := NewBaseAnalysis()

	ba.StoreTimeResult(1e-3, map[string]float64{"I(Lcoil)": 1})
	ba.StoreTimeResult(1e-3, map[string]float64{"I(Lcoil)": 2})
	ba.StoreTimeResult(1e-3*(1+1e-15), map[string]float64{"I(Lcoil)": 3})

	stored := ba.GetResults()[KeyTime]
	require.Len(t, stored, 1)
	assert.Equal(t, []float64{1}, ba.GetResults()["I(Lcoil)"])
}

func TestCheckConvergence(t *testing.T) {
	ba := NewBaseAnalysis()

	assert.True(t, ba.CheckConvergence([]float64{0, 48, 2}, []float64{0, 48, 2}))
	assert.True(t, ba.CheckConvergence([]float64{0, 48, 2}, []float64{0, 48 * (1 + 1e-9), 2}))
	assert.False(t, ba.CheckConvergence([]float64{0, 48, 2}, []float64{0, 47, 2}))
	assert.False(t, ba.CheckConvergence([]float64{0, 48}, []float64{0, 48, 2}))
}
