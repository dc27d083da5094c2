// Package coil derives the lumped electrical parameters of a planar spiral
// coil built from stacked PCB traces: DC resistance from the copper cross
// section, self-inductance from the modified Wheeler approximation for
// square spirals, and the field-per-amp coefficient of the stacked winding.
package coil

import (
	"fmt"
	"math"

	"github.com/edp1096/pulsecoil/internal/consts"
)

// Geometry describes the physical coil. Lengths are in millimeters.
type Geometry struct {
	TraceThickness float64 // Copper thickness (mm)
	TraceWidth     float64 // Trace width (mm)
	TraceSpacing   float64 // Spacing between traces (mm)
	SeriesTurns    int     // Series-connected windings per board
	BoardCount     int     // Stacked PCBs
	OuterDiameter  float64 // Outer diameter of the spiral (mm)
	InnerDiameter  float64 // Inner diameter of the spiral (mm)
}

func (g Geometry) Validate() error {
	if g.TraceThickness <= 0 {
		return fmt.Errorf("trace thickness must be positive, got %g", g.TraceThickness)
	}
	if g.TraceWidth <= 0 {
		return fmt.Errorf("trace width must be positive, got %g", g.TraceWidth)
	}
	if g.TraceSpacing <= 0 {
		return fmt.Errorf("trace spacing must be positive, got %g", g.TraceSpacing)
	}
	if g.SeriesTurns < 1 {
		return fmt.Errorf("series turn count must be at least 1, got %d", g.SeriesTurns)
	}
	if g.BoardCount < 1 {
		return fmt.Errorf("board count must be at least 1, got %d", g.BoardCount)
	}
	if g.OuterDiameter <= 0 {
		return fmt.Errorf("outer diameter must be positive, got %g", g.OuterDiameter)
	}
	if g.InnerDiameter <= 0 {
		return fmt.Errorf("inner diameter must be positive, got %g", g.InnerDiameter)
	}
	if g.InnerDiameter >= g.OuterDiameter {
		return fmt.Errorf("inner diameter %g must be smaller than outer diameter %g",
			g.InnerDiameter, g.OuterDiameter)
	}
	return nil
}

// Turns returns the number of turns one spiral can fit between the inner and
// outer diameter.
func (g Geometry) Turns() float64 {
	return (g.OuterDiameter - g.InnerDiameter) / (2 * (g.TraceWidth + g.TraceSpacing))
}

// TraceLength approximates the trace length of one board's spiral in mm:
// four sides of the average diameter per turn.
func (g Geometry) TraceLength() float64 {
	avgDiameter := (g.OuterDiameter + g.InnerDiameter) / 2
	return 4 * avgDiameter * (g.Turns() + 1)
}

// ParallelBoards returns how many boards share the coil current.
func (g Geometry) ParallelBoards() int {
	return g.BoardCount
}

// SingleResistance returns the DC resistance of one board's spiral in ohms.
func (g Geometry) SingleResistance() float64 {
	crossSection := g.TraceWidth * g.TraceThickness
	return consts.RHOCOPPER * g.TraceLength() / crossSection
}

// Resistance returns the DC resistance of the full stacked winding:
// SeriesTurns spirals in series, spread over the parallel boards.
func (g Geometry) Resistance() float64 {
	return g.SingleResistance() * float64(g.SeriesTurns) / float64(g.ParallelBoards())
}

// SingleInductance returns the modified Wheeler approximation for one
// board's square spiral in henries.
func (g Geometry) SingleInductance() float64 {
	n := g.Turns()
	avgDiameter := (g.OuterDiameter + g.InnerDiameter) / 2
	fill := (g.OuterDiameter - g.InnerDiameter) / (g.OuterDiameter + g.InnerDiameter)

	// avgDiameter is in mm; the 1e-3 factor converts to meters.
	return consts.WHEELERK1 * consts.MU0 * n * n * avgDiameter /
		(1 + consts.WHEELERK2*fill) * 1e-3
}

// Inductance returns the inductance of the series-connected winding. Series
// sections are magnetically coupled, so the inductance scales with the
// square of the series count.
func (g Geometry) Inductance() float64 {
	ns := float64(g.SeriesTurns)
	return g.SingleInductance() * ns * ns
}

// FieldCoefficient returns the center magnetic field per ampere of coil
// current in T/A, summing the contribution of each turn of the stacked
// square winding.
func (g Geometry) FieldCoefficient() float64 {
	pitch := 2 * (g.TraceWidth + g.TraceSpacing)

	invSum := 0.0
	for i := 0; i < int(g.Turns()); i++ {
		side := g.OuterDiameter - pitch*float64(i) // mm
		invSum += 1e3 * float64(g.SeriesTurns) / side
	}

	return 8 * math.Sqrt2 * consts.MU0 / (4 * math.Pi) * invSum
}

// Derived bundles everything the discharge simulation needs from the
// geometry.
type Derived struct {
	Turns       float64
	TraceLength float64 // mm, one board
	Resistance  float64 // ohm, full winding without the switch
	Inductance  float64 // H
	FieldCoeff  float64 // T/A
}

// Derive validates the geometry and computes the lumped coil parameters.
// Every derived value is checked to be positive and finite so bad geometry
// fails here instead of surfacing as NaN in the solver.
func Derive(g Geometry) (Derived, error) {
	if err := g.Validate(); err != nil {
		return Derived{}, fmt.Errorf("coil geometry: %v", err)
	}

	d := Derived{
		Turns:       g.Turns(),
		TraceLength: g.TraceLength(),
		Resistance:  g.Resistance(),
		Inductance:  g.Inductance(),
		FieldCoeff:  g.FieldCoefficient(),
	}

	if d.Turns < 1 {
		return Derived{}, fmt.Errorf("coil geometry: trace pitch too coarse, fits %.2f turns", d.Turns)
	}
	if !positiveFinite(d.Resistance) {
		return Derived{}, fmt.Errorf("derived resistance invalid: %g", d.Resistance)
	}
	if !positiveFinite(d.Inductance) {
		return Derived{}, fmt.Errorf("derived inductance invalid: %g", d.Inductance)
	}
	if !positiveFinite(d.FieldCoeff) {
		return Derived{}, fmt.Errorf("derived field coefficient invalid: %g", d.FieldCoeff)
	}

	return d, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
