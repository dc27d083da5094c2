package device

import (
	"math"

	"github.com/edp1096/pulsecoil/pkg/matrix"
	"github.com/edp1096/pulsecoil/pkg/util"
)

// Inductor is stamped with a branch current unknown so the coil current
// comes straight out of the solution vector.
type Inductor struct {
	BaseDevice
	Current0  float64 // Last accepted current
	Current1  float64 // Previous accepted current
	Voltage0  float64 // Last accepted branch voltage
	branchIdx int
}

var _ TimeDependent = (*Inductor)(nil)

func NewInductor(name string, value float64) *Inductor {
	return &Inductor{
		BaseDevice: BaseDevice{
			Name:  name,
			Nodes: make([]int, 2),
			Value: value,
		},
	}
}

func (l *Inductor) GetType() string { return "L" }

func (l *Inductor) SetInitialCurrent(i float64) {
	l.Current0 = i
	l.Current1 = i
	l.Voltage0 = 0
}

func (l *Inductor) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	n1, n2 := l.Nodes[0], l.Nodes[1]
	bIdx := l.branchIdx

	// Branch current flows n1 -> n2.
	if n1 != 0 {
		matrix.AddElement(n1, bIdx, 1)
		matrix.AddElement(bIdx, n1, 1)
	}
	if n2 != 0 {
		matrix.AddElement(n2, bIdx, -1)
		matrix.AddElement(bIdx, n2, -1)
	}

	coeff := util.GetIntegratorCoeffs(status.Method, status.TimeStep)[0]
	matrix.AddElement(bIdx, bIdx, -coeff*l.Value)

	// v - (coeff*L)*i = -(coeff*L)*i_prev [- v_prev for TR]
	rhs := -coeff * l.Value * l.Current0
	if status.Method == TR {
		rhs -= l.Voltage0
	}
	matrix.AddRHS(bIdx, rhs)

	return nil
}

func (l *Inductor) UpdateState(solution []float64, status *CircuitStatus) {
	v1, v2 := 0.0, 0.0
	if l.Nodes[0] != 0 {
		v1 = solution[l.Nodes[0]]
	}
	if l.Nodes[1] != 0 {
		v2 = solution[l.Nodes[1]]
	}

	l.Current1 = l.Current0
	l.Current0 = solution[l.branchIdx]
	l.Voltage0 = v1 - v2
}

func (l *Inductor) CalculateLTE(solution []float64, status *CircuitStatus) float64 {
	i := solution[l.branchIdx]
	est := math.Abs(i - 2*l.Current0 + l.Current1)
	scale := math.Max(math.Abs(i), math.Abs(l.Current0))
	return est / (lteRelTol*scale + lteAbsTol)
}

func (l *Inductor) GetCurrent() float64 {
	return l.Current0
}

func (l *Inductor) GetVoltage() float64 {
	return l.Voltage0
}

func (l *Inductor) BranchIndex() int {
	return l.branchIdx
}

func (l *Inductor) SetBranchIndex(idx int) {
	l.branchIdx = idx
}
