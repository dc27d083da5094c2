package device

import (
	"github.com/edp1096/pulsecoil/pkg/matrix"
)

type Device interface {
	GetName() string
	GetType() string
	GetNodes() []int
	GetValue() float64
	SetNodes(nodes []int)
	Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error
}

type BaseDevice struct {
	Name  string
	Nodes []int
	Value float64
}

// TimeDependent devices carry companion-model state between time steps.
type TimeDependent interface {
	UpdateState(solution []float64, status *CircuitStatus)
	CalculateLTE(solution []float64, status *CircuitStatus) float64
}

const (
	BE = 1 // Backward Euler
	TR = 2 // Trapezoidal
)

// Normalization for the local truncation error estimates.
const (
	lteRelTol = 1e-3
	lteAbsTol = 1e-6
)

type CircuitStatus struct {
	Time     float64
	TimeStep float64
	Gmin     float64
	Method   int // BE or TR
}

func (d *BaseDevice) GetName() string {
	return d.Name
}

func (d *BaseDevice) GetNodes() []int {
	return d.Nodes
}

func (d *BaseDevice) GetValue() float64 {
	return d.Value
}

func (d *BaseDevice) SetNodes(nodes []int) {
	d.Nodes = nodes
}
