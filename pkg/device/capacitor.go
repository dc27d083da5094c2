package device

import (
	"math"

	"github.com/edp1096/pulsecoil/pkg/matrix"
	"github.com/edp1096/pulsecoil/pkg/util"
)

type Capacitor struct {
	BaseDevice
	Voltage0 float64 // Last accepted voltage
	Voltage1 float64 // Previous accepted voltage
	current0 float64 // Last accepted companion current
}

var _ TimeDependent = (*Capacitor)(nil)

func NewCapacitor(name string, value float64) *Capacitor {
	return &Capacitor{
		BaseDevice: BaseDevice{
			Name:  name,
			Nodes: make([]int, 2),
			Value: value,
		},
	}
}

func (c *Capacitor) GetType() string { return "C" }

// SetInitialVoltage seeds the companion-model history so the transient run
// starts from a pre-charged capacitor (UIC).
func (c *Capacitor) SetInitialVoltage(v float64) {
	c.Voltage0 = v
	c.Voltage1 = v
	c.current0 = 0
}

func (c *Capacitor) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	n1, n2 := c.Nodes[0], c.Nodes[1]

	coeff := util.GetIntegratorCoeffs(status.Method, status.TimeStep)[0]
	geq := coeff * c.Value
	ceq := geq * c.Voltage0
	if status.Method == TR {
		ceq += c.current0
	}

	if n1 != 0 {
		matrix.AddElement(n1, n1, geq)
		if n2 != 0 {
			matrix.AddElement(n1, n2, -geq)
		}
		matrix.AddRHS(n1, ceq)
	}
	if n2 != 0 {
		matrix.AddElement(n2, n2, geq)
		if n1 != 0 {
			matrix.AddElement(n2, n1, -geq)
		}
		matrix.AddRHS(n2, -ceq)
	}

	return nil
}

func (c *Capacitor) UpdateState(solution []float64, status *CircuitStatus) {
	v1, v2 := 0.0, 0.0
	if c.Nodes[0] != 0 {
		v1 = solution[c.Nodes[0]]
	}
	if c.Nodes[1] != 0 {
		v2 = solution[c.Nodes[1]]
	}
	vd := v1 - v2

	coeff := util.GetIntegratorCoeffs(status.Method, status.TimeStep)[0]
	iNew := coeff * c.Value * (vd - c.Voltage0)
	if status.Method == TR {
		iNew -= c.current0
	}

	c.Voltage1 = c.Voltage0
	c.Voltage0 = vd
	c.current0 = iNew
}

// CalculateLTE estimates the local truncation error of a tentative solution
// from the second difference against the accepted voltage history,
// normalized to the signal magnitude.
func (c *Capacitor) CalculateLTE(solution []float64, status *CircuitStatus) float64 {
	v1, v2 := 0.0, 0.0
	if c.Nodes[0] != 0 {
		v1 = solution[c.Nodes[0]]
	}
	if c.Nodes[1] != 0 {
		v2 = solution[c.Nodes[1]]
	}
	vd := v1 - v2

	est := math.Abs(vd - 2*c.Voltage0 + c.Voltage1)
	scale := math.Max(math.Abs(vd), math.Abs(c.Voltage0))
	return est / (lteRelTol*scale + lteAbsTol)
}

// Voltage returns the present capacitor voltage.
func (c *Capacitor) Voltage() float64 {
	return c.Voltage0
}
