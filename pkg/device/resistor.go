package device

import (
	"fmt"

	"github.com/edp1096/pulsecoil/pkg/matrix"
)

type Resistor struct {
	BaseDevice
}

func NewResistor(name string, value float64) *Resistor {
	return &Resistor{
		BaseDevice: BaseDevice{
			Name:  name,
			Nodes: make([]int, 2),
			Value: value,
		},
	}
}

func (r *Resistor) GetType() string { return "R" }

func (r *Resistor) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	if len(r.Nodes) != 2 {
		return fmt.Errorf("resistor %s: requires exactly 2 nodes", r.Name)
	}

	n1, n2 := r.Nodes[0], r.Nodes[1]
	g := 1.0 / r.Value // Conductance. G = 1/R

	if n1 != 0 {
		matrix.AddElement(n1, n1, g)
		if n2 != 0 {
			matrix.AddElement(n1, n2, -g)
		}
	}
	if n2 != 0 {
		if n1 != 0 {
			matrix.AddElement(n2, n1, -g)
		}
		matrix.AddElement(n2, n2, g)
	}

	return nil
}

// Current returns the resistor current for a solved node voltage vector.
func (r *Resistor) Current(solution []float64) float64 {
	v1, v2 := 0.0, 0.0
	if r.Nodes[0] > 0 {
		v1 = solution[r.Nodes[0]]
	}
	if r.Nodes[1] > 0 {
		v2 = solution[r.Nodes[1]]
	}
	return (v1 - v2) / r.Value
}
