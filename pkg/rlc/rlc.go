package rlc

import (
	"fmt"
	"math"
)

// Damping regime of a series RLC discharge.
type Regime int

const (
	Underdamped Regime = iota
	CriticallyDamped
	Overdamped
)

func (r Regime) String() string {
	switch r {
	case Underdamped:
		return "under-damped"
	case CriticallyDamped:
		return "critically damped"
	case Overdamped:
		return "over-damped"
	default:
		return "unknown"
	}
}

// Params holds the series RLC discharge parameters: total resistance,
// inductance, capacitance and the initial capacitor voltage. The initial
// current is zero.
type Params struct {
	R  float64 // Resistance in Ohms
	L  float64 // Inductance in Henries
	C  float64 // Capacitance in Farads
	V0 float64 // Initial voltage on capacitor in Volts
}

func (p Params) Validate() error {
	if p.L <= 0 {
		return fmt.Errorf("inductance must be positive, got %g", p.L)
	}
	if p.C <= 0 {
		return fmt.Errorf("capacitance must be positive, got %g", p.C)
	}
	if p.R <= 0 {
		return fmt.Errorf("resistance must be positive, got %g", p.R)
	}
	return nil
}

// NaturalFrequency computes the undamped natural angular frequency w0 = 1/sqrt(LC)
func (p Params) NaturalFrequency() float64 {
	return 1 / math.Sqrt(p.L*p.C)
}

// DampingFactor computes the damping factor alpha = R/(2L)
func (p Params) DampingFactor() float64 {
	return p.R / (2 * p.L)
}

// DampingRatio computes zeta = alpha/w0. Below 1 the discharge rings.
func (p Params) DampingRatio() float64 {
	return p.DampingFactor() / p.NaturalFrequency()
}

// Regime classifies the discharge by comparing alpha against w0.
func (p Params) Regime() Regime {
	alpha := p.DampingFactor()
	omega0 := p.NaturalFrequency()
	switch {
	case math.Abs(alpha-omega0) <= 1e-9*omega0:
		return CriticallyDamped
	case alpha < omega0:
		return Underdamped
	default:
		return Overdamped
	}
}

// DampedFrequency computes the damped angular frequency wd = sqrt(w0^2 - alpha^2)
// for the under-damped regime.
func (p Params) DampedFrequency() (float64, error) {
	omega0 := p.NaturalFrequency()
	alpha := p.DampingFactor()
	if alpha >= omega0 {
		return 0, fmt.Errorf("circuit is not underdamped: alpha >= w0")
	}
	return math.Sqrt(omega0*omega0 - alpha*alpha), nil
}

// Period returns the ringing period T = 2*pi/wd for underdamped circuits.
func (p Params) Period() (float64, error) {
	omegaD, err := p.DampedFrequency()
	if err != nil {
		return 0, err
	}
	return 2 * math.Pi / omegaD, nil
}

// TimeConstant computes the decay time constant tau = 1/alpha
func (p Params) TimeConstant() float64 {
	return 1 / p.DampingFactor()
}

// roots returns the characteristic roots s1, s2 (s1 is the slower one) for
// the non-oscillatory regimes.
func (p Params) roots() (float64, float64) {
	alpha := p.DampingFactor()
	omega0 := p.NaturalFrequency()
	beta := math.Sqrt(alpha*alpha - omega0*omega0)
	return -alpha + beta, -alpha - beta
}

// Current returns the closed-form discharge current at time t for
// i(0) = 0, v_C(0) = V0. The current is positive while the capacitor drives
// the coil.
func (p Params) Current(t float64) float64 {
	alpha := p.DampingFactor()

	switch p.Regime() {
	case Underdamped:
		omegaD, _ := p.DampedFrequency()
		return p.V0 / (omegaD * p.L) * math.Exp(-alpha*t) * math.Sin(omegaD*t)

	case CriticallyDamped:
		return p.V0 / p.L * t * math.Exp(-alpha*t)

	default: // Overdamped
		s1, s2 := p.roots()
		return p.V0 / (p.L * (s1 - s2)) * (math.Exp(s1*t) - math.Exp(s2*t))
	}
}

// CapacitorVoltage returns the closed-form capacitor voltage at time t.
func (p Params) CapacitorVoltage(t float64) float64 {
	alpha := p.DampingFactor()

	switch p.Regime() {
	case Underdamped:
		omegaD, _ := p.DampedFrequency()
		return p.V0 * math.Exp(-alpha*t) *
			(math.Cos(omegaD*t) + alpha/omegaD*math.Sin(omegaD*t))

	case CriticallyDamped:
		return p.V0 * math.Exp(-alpha*t) * (1 + alpha*t)

	default: // Overdamped
		s1, s2 := p.roots()
		return p.V0 / (s1 - s2) * (-s2*math.Exp(s1*t) + s1*math.Exp(s2*t))
	}
}

// PeakTime returns the time of the first current maximum.
func (p Params) PeakTime() float64 {
	alpha := p.DampingFactor()

	switch p.Regime() {
	case Underdamped:
		omegaD, _ := p.DampedFrequency()
		return math.Atan2(omegaD, alpha) / omegaD

	case CriticallyDamped:
		return 1 / alpha

	default:
		s1, s2 := p.roots()
		return math.Log(s2/s1) / (s1 - s2)
	}
}

// PeakCurrent returns the first current maximum.
func (p Params) PeakCurrent() float64 {
	return p.Current(p.PeakTime())
}

// SuggestTimeStep picks a step that resolves the fastest time scale of the
// discharge: a fraction of the ringing period when under-damped, a fraction
// of the fastest root when not.
func (p Params) SuggestTimeStep() float64 {
	switch p.Regime() {
	case Underdamped:
		period, _ := p.Period()
		return period / 200

	default:
		_, s2 := p.roots()
		return 1 / (20 * math.Abs(s2))
	}
}
