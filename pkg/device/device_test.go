package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// denseMatrix records stamps for inspection without the sparse machinery.
type denseMatrix struct {
	a   [4][4]float64
	rhs [4]float64
}

func (m *denseMatrix) AddElement(i, j int, value float64) { m.a[i][j] += value }
func (m *denseMatrix) AddRHS(i int, value float64)        { m.rhs[i] += value }

func TestResistorStamp(t *testing.T) {
	r := NewResistor("R1", 2.0)
	r.SetNodes([]int{1, 2})

	m := &denseMatrix{}
	require.NoError(t, r.Stamp(m, &CircuitStatus{TimeStep: 1e-6, Method: BE}))

	assert.InDelta(t, 0.5, m.a[1][1], 1e-15)
	assert.InDelta(t, 0.5, m.a[2][2], 1e-15)
	assert.InDelta(t, -0.5, m.a[1][2], 1e-15)
	assert.InDelta(t, -0.5, m.a[2][1], 1e-15)
}

func TestResistorStampGroundedNode(t *testing.T) {
	r := NewResistor("R1", 4.0)
	r.SetNodes([]int{1, 0})

	m := &denseMatrix{}
	require.NoError(t, r.Stamp(m, &CircuitStatus{}))

	assert.InDelta(t, 0.25, m.a[1][1], 1e-15)
	assert.Zero(t, m.a[0][0])
}

func TestResistorCurrentFromNodeVoltages(t *testing.T) {
	r := NewResistor("R1", 2.0)
	r.SetNodes([]int{1, 2})

	solution := []float64{0, 10.0, 4.0}
	assert.InDelta(t, 3.0, r.Current(solution), 1e-15)

	r.SetNodes([]int{1, 0})
	assert.InDelta(t, 5.0, r.Current(solution), 1e-15)
}

func TestCapacitorBackwardEulerStamp(t *testing.T) {
	c := NewCapacitor("C1", 1e-3)
	c.SetNodes([]int{1, 0})
	c.SetInitialVoltage(48)

	m := &denseMatrix{}
	status := &CircuitStatus{TimeStep: 1e-3, Method: BE}
	require.NoError(t, c.Stamp(m, status))

	// geq = C/dt = 1, ceq = geq * v_prev = 48
	assert.InDelta(t, 1.0, m.a[1][1], 1e-15)
	assert.InDelta(t, 48.0, m.rhs[1], 1e-12)
}

func TestCapacitorUpdateTracksVoltage(t *testing.T) {
	c := NewCapacitor("C1", 1e-3)
	c.SetNodes([]int{1, 0})
	c.SetInitialVoltage(48)

	status := &CircuitStatus{TimeStep: 1e-3, Method: BE}
	solution := []float64{0, 47.5}
	c.UpdateState(solution, status)

	assert.InDelta(t, 47.5, c.Voltage(), 1e-12)
}

func TestInductorBranchStamp(t *testing.T) {
	l := NewInductor("L1", 1e-4)
	l.SetNodes([]int{1, 0})
	l.SetBranchIndex(2)
	l.SetInitialCurrent(0)

	m := &denseMatrix{}
	status := &CircuitStatus{TimeStep: 1e-6, Method: BE}
	require.NoError(t, l.Stamp(m, status))

	// KCL couplings and the branch equation v - (L/dt) i = -(L/dt) i_prev
	assert.InDelta(t, 1.0, m.a[1][2], 1e-15)
	assert.InDelta(t, 1.0, m.a[2][1], 1e-15)
	assert.InDelta(t, -100.0, m.a[2][2], 1e-9)
	assert.Zero(t, m.rhs[2])
}

func TestInductorUpdateTracksBranchCurrent(t *testing.T) {
	l := NewInductor("L1", 1e-4)
	l.SetNodes([]int{1, 0})
	l.SetBranchIndex(2)
	l.SetInitialCurrent(0)

	status := &CircuitStatus{TimeStep: 1e-6, Method: BE}
	solution := []float64{0, 12.0, 3.5}
	l.UpdateState(solution, status)

	assert.InDelta(t, 3.5, l.GetCurrent(), 1e-12)
	assert.InDelta(t, 12.0, l.GetVoltage(), 1e-12)
}
