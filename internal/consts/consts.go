package consts

import "math"

const (
	RHOCOPPER = 1.7e-5             // Copper resistivity (ohm*mm)
	MU0       = 4 * math.Pi * 1e-7 // Permeability of free space (H/m)
	WHEELERK1 = 2.34               // Modified Wheeler coefficient, square spiral
	WHEELERK2 = 2.75               // Modified Wheeler coefficient, square spiral
	GAUSSPERT = 1e4                // Gauss per tesla
)
