package analysis

import (
	"math"

	"github.com/edp1096/pulsecoil/pkg/circuit"
)

// KeyTime is the result key holding the sample times.
const KeyTime = "TIME"

type Analysis interface {
	Setup(ckt *circuit.Circuit) error
	Execute() error
	GetResults() map[string][]float64
}

type BaseAnalysis struct {
	Circuit     *circuit.Circuit
	results     map[string][]float64 // key: variable name, value: result by time
	convergence struct {
		maxIter int
		abstol  float64
		reltol  float64
		gmin    float64
	}
}

func NewBaseAnalysis() *BaseAnalysis {
	ba := &BaseAnalysis{results: make(map[string][]float64)}

	ba.convergence.maxIter = 100
	ba.convergence.abstol = 1e-12
	ba.convergence.reltol = 1e-6
	ba.convergence.gmin = 1e-12

	return ba
}

func (a *BaseAnalysis) CheckConvergence(oldSol, newSol []float64) bool {
	if len(oldSol) != len(newSol) {
		return false
	}

	for i := range oldSol {
		diff := math.Abs(newSol[i] - oldSol[i])
		if diff > a.convergence.abstol &&
			diff > a.convergence.reltol*math.Abs(newSol[i]) {
			return false
		}
	}
	return true
}

// timeDedupEps collapses samples whose times differ only by accumulated
// floating point error. Accepted steps are never this close together.
const timeDedupEps = 1e-12

func (a *BaseAnalysis) StoreTimeResult(time float64, solution map[string]float64) {
	// Ignore same time
	if len(a.results[KeyTime]) > 0 {
		lastTime := a.results[KeyTime][len(a.results[KeyTime])-1]
		if math.Abs(time-lastTime) <= timeDedupEps*math.Max(math.Abs(time), 1) {
			return
		}
	}

	a.results[KeyTime] = append(a.results[KeyTime], time)

	for name, value := range solution {
		a.results[name] = append(a.results[name], value)
	}
}

func (a *BaseAnalysis) GetResults() map[string][]float64 {
	return a.results
}
