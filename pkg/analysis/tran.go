package analysis

import (
	"fmt"

	"github.com/edp1096/pulsecoil/pkg/circuit"
	"github.com/edp1096/pulsecoil/pkg/device"
)

// Transient integrates the discharge network over time. The first step is
// taken with backward Euler, then the trapezoidal rule with a local
// truncation error check that halves the step when the waveform is not
// resolved.
type Transient struct {
	BaseAnalysis
	time      float64
	startTime float64
	stopTime  float64
	timeStep  float64
	maxStep   float64
	minStep   float64

	order     int     // device.BE or device.TR
	trtol     float64 // truncation error tolerance
	firstTime bool
}

func NewTransient(tStart, tStop, tStep, tMax float64) *Transient {
	minStep := tStep / 50.0
	if tMax == 0 {
		tMax = tStep
	}

	return &Transient{
		BaseAnalysis: *NewBaseAnalysis(),
		startTime:    tStart,
		stopTime:     tStop,
		timeStep:     tStep,
		maxStep:      tMax,
		minStep:      minStep,
		time:         0,
		order:        device.BE,
		trtol:        7.0,
		firstTime:    true,
	}
}

func (tr *Transient) Setup(ckt *circuit.Circuit) error {
	if ckt == nil {
		return fmt.Errorf("circuit not set")
	}
	if tr.stopTime <= 0 || tr.timeStep <= 0 {
		return fmt.Errorf("invalid time span: stop=%g step=%g", tr.stopTime, tr.timeStep)
	}

	tr.Circuit = ckt
	if tr.startTime <= 0 {
		tr.StoreTimeResult(0, ckt.InitialSolution())
	}
	return nil
}

func (tr *Transient) Execute() error {
	if tr.Circuit == nil {
		return fmt.Errorf("circuit not set")
	}
	ckt := tr.Circuit

	for tr.time < tr.stopTime {
		if tr.time+tr.timeStep > tr.stopTime {
			tr.timeStep = tr.stopTime - tr.time
		}

		var status *device.CircuitStatus
		for {
			status = &device.CircuitStatus{
				Time:     tr.time + tr.timeStep,
				TimeStep: tr.timeStep,
				Gmin:     tr.convergence.gmin,
				Method:   tr.order,
			}

			if err := tr.solveStep(status); err != nil {
				if tr.timeStep > tr.minStep {
					tr.timeStep /= 2
					continue
				}
				return fmt.Errorf("failed to converge at t=%g: %v", tr.time, err)
			}

			if tr.firstTime {
				tr.firstTime = false
				tr.order = device.TR
				break
			}

			if tr.order == device.TR && tr.timeStep > tr.minStep {
				if tol := tr.calculateTruncError(status); tol >= tr.trtol {
					tr.timeStep /= 2
					continue
				}
			}
			break
		}

		ckt.Update(status)
		tr.time = status.Time
		if tr.time >= tr.startTime {
			tr.StoreTimeResult(tr.time, ckt.GetSolution())
		}

		if tr.time < tr.stopTime && tr.timeStep < tr.maxStep {
			tr.timeStep *= 1.2
			if tr.timeStep > tr.maxStep {
				tr.timeStep = tr.maxStep
			}
		}
	}

	return nil
}

// solveStep stamps and solves the network for one candidate time point. The
// network is linear, so the iteration settles immediately; the loop guards
// against a drifting solution all the same.
func (tr *Transient) solveStep(status *device.CircuitStatus) error {
	ckt := tr.Circuit
	mat := ckt.GetMatrix()
	var oldSolution []float64

	for iter := 0; iter < tr.convergence.maxIter; iter++ {
		mat.Clear()
		if err := ckt.Stamp(status); err != nil {
			return fmt.Errorf("stamping error: %v", err)
		}
		mat.LoadGmin(status.Gmin)

		if err := mat.Solve(); err != nil {
			return fmt.Errorf("matrix solve error: %v", err)
		}

		solution := mat.Solution()
		if oldSolution != nil && tr.CheckConvergence(oldSolution, solution) {
			return nil
		}

		oldSolution = append(oldSolution[:0], solution...)
	}

	return fmt.Errorf("failed to converge in %d iterations", tr.convergence.maxIter)
}

func (tr *Transient) calculateTruncError(status *device.CircuitStatus) float64 {
	maxLTE := 0.0
	solution := tr.Circuit.GetMatrix().Solution()

	for _, dev := range tr.Circuit.GetDevices() {
		if td, ok := dev.(device.TimeDependent); ok {
			lte := td.CalculateLTE(solution, status)
			if lte > maxLTE {
				maxLTE = lte
			}
		}
	}
	return maxLTE
}

// Times returns the stored sample times.
func (tr *Transient) Times() []float64 {
	return tr.results[KeyTime]
}

// Series returns the stored samples for one result key.
func (tr *Transient) Series(key string) []float64 {
	return tr.results[key]
}

// SpansRegularly reports whether the stored time axis is strictly
// increasing, which the waveform consumers rely on.
func (tr *Transient) SpansRegularly() bool {
	times := tr.Times()
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return false
		}
	}
	return true
}
