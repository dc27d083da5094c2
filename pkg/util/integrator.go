package util

// Integration coefficients for the companion models. Order 1 is backward
// Euler, order 2 is the trapezoidal rule. coeffs[0] multiplies the new
// state value; the history terms are handled by each device.
func GetIntegratorCoeffs(order int, dt float64) []float64 {
	if order < 1 || order > 2 {
		order = 1
	}

	coeffs := make([]float64, 1)
	coeffs[0] = 2.0 / dt
	if order == 1 {
		coeffs[0] = 1.0 / dt
	}

	return coeffs
}
