package circuit

import (
	"fmt"

	"github.com/edp1096/pulsecoil/pkg/device"
	"github.com/edp1096/pulsecoil/pkg/matrix"
)

// Node and branch layout of the discharge network:
//
//	bank ---R_total--- coil node ---L_coil--- gnd
//	 |                                         |
//	 C_bank ----------------------------------gnd
//
// The capacitor sits between node "bank" and ground, pre-charged to the bank
// voltage. R_total is the coil trace resistance plus the switch resistance.
// The inductor carries a branch current unknown, which is the coil current.
const (
	nodeBank = 1
	nodeCoil = 2
	branchL  = 3

	matrixSize = 3
)

// Params holds the lumped element values of the discharge network.
type Params struct {
	Resistance  float64 // Total series resistance (ohm)
	Inductance  float64 // Coil inductance (H)
	Capacitance float64 // Bank capacitance (F)
	BankVoltage float64 // Initial capacitor voltage (V)
}

func (p Params) Validate() error {
	if p.Inductance <= 0 {
		return fmt.Errorf("inductance must be positive, got %g", p.Inductance)
	}
	if p.Capacitance <= 0 {
		return fmt.Errorf("capacitance must be positive, got %g", p.Capacitance)
	}
	if p.Resistance <= 0 {
		return fmt.Errorf("resistance must be positive, got %g", p.Resistance)
	}
	return nil
}

// Circuit is the MNA representation of the capacitor discharge through the
// coil. It owns the sparse matrix and the element companion models.
type Circuit struct {
	name      string
	params    Params
	devices   []device.Device
	capacitor *device.Capacitor
	resistor  *device.Resistor
	inductor  *device.Inductor
	matrix    *matrix.CircuitMatrix
}

// NewDischarge builds the series RLC discharge network from derived
// coil parameters and the bank configuration.
func NewDischarge(name string, params Params) (*Circuit, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("discharge network %s: %v", name, err)
	}

	cbank := device.NewCapacitor("Cbank", params.Capacitance)
	cbank.SetNodes([]int{nodeBank, 0})
	cbank.SetInitialVoltage(params.BankVoltage)

	rcoil := device.NewResistor("Rcoil", params.Resistance)
	rcoil.SetNodes([]int{nodeBank, nodeCoil})

	lcoil := device.NewInductor("Lcoil", params.Inductance)
	lcoil.SetNodes([]int{nodeCoil, 0})
	lcoil.SetBranchIndex(branchL)
	lcoil.SetInitialCurrent(0)

	mat, err := matrix.NewMatrix(matrixSize)
	if err != nil {
		return nil, fmt.Errorf("discharge network %s: %v", name, err)
	}

	ckt := &Circuit{
		name:      name,
		params:    params,
		devices:   []device.Device{cbank, rcoil, lcoil},
		capacitor: cbank,
		resistor:  rcoil,
		inductor:  lcoil,
		matrix:    mat,
	}

	// Initial stamp so the sparse matrix learns its fill pattern.
	if err := ckt.Stamp(&device.CircuitStatus{TimeStep: 1e-9, Method: device.BE}); err != nil {
		ckt.Destroy()
		return nil, fmt.Errorf("initial stamping failed: %v", err)
	}
	ckt.matrix.SetupElements()

	return ckt, nil
}

func (c *Circuit) Stamp(status *device.CircuitStatus) error {
	for _, dev := range c.devices {
		if err := dev.Stamp(c.matrix, status); err != nil {
			return fmt.Errorf("stamping device %s: %v", dev.GetName(), err)
		}
	}
	return nil
}

// Update commits the accepted solution into the device companion models.
func (c *Circuit) Update(status *device.CircuitStatus) {
	solution := c.matrix.Solution()
	for _, dev := range c.devices {
		if td, ok := dev.(device.TimeDependent); ok {
			td.UpdateState(solution, status)
		}
	}
}

func (c *Circuit) GetMatrix() *matrix.CircuitMatrix {
	return c.matrix
}

func (c *Circuit) GetDevices() []device.Device {
	return c.devices
}

// Result keys for the solution maps.
const (
	KeyBankVoltage = "V(bank)"
	KeyCoilVoltage = "V(coil)"
	KeyCoilCurrent = "I(Lcoil)"
)

// GetSolution returns the node voltages and the coil branch current keyed
// the usual way: V(bank), V(coil), I(Lcoil).
func (c *Circuit) GetSolution() map[string]float64 {
	matrixSolution := c.matrix.Solution()

	return map[string]float64{
		KeyBankVoltage: matrixSolution[nodeBank],
		KeyCoilVoltage: matrixSolution[nodeCoil],
		KeyCoilCurrent: matrixSolution[branchL],
	}
}

// InitialSolution returns the t=0 state: capacitor at the bank voltage,
// no current flowing.
func (c *Circuit) InitialSolution() map[string]float64 {
	return map[string]float64{
		KeyBankVoltage: c.params.BankVoltage,
		KeyCoilVoltage: c.params.BankVoltage,
		KeyCoilCurrent: 0,
	}
}

// CoilCurrent returns the present inductor current.
func (c *Circuit) CoilCurrent() float64 {
	return c.inductor.GetCurrent()
}

// BankVoltage returns the present capacitor voltage.
func (c *Circuit) BankVoltage() float64 {
	return c.capacitor.Voltage()
}

func (c *Circuit) Params() Params {
	return c.params
}

func (c *Circuit) Name() string {
	return c.name
}

func (c *Circuit) Destroy() {
	if c.matrix != nil {
		c.matrix.Destroy()
	}
}
