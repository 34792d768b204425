package bspline

import "math"

// Length integrates the arc length of the curve to the requested tolerance
// using adaptive Legendre-Gauss quadrature: each knot span is integrated
// with the 8- and 16-point rules and subdivided until the two agree within
// the span's share of the tolerance. A non-positive tolerance yields
// [StatusBadArgument].
func (c *Curve) Length(tol float64) (float64, Status) {
	start, end, st := c.ParamRange()
	if st != StatusOK {
		return 0, st
	}
	if tol <= 0 {
		return 0, StatusBadArgument
	}
	if end == start {
		return 0, StatusOK
	}

	// Integrating span by span keeps the integrand smooth: the derivative of
	// a B-spline is polynomial inside a span but only C^(order-2) across
	// knots.
	total := 0.0
	spans := 0
	for i := c.order - 1; i < len(c.ctrl); i++ {
		if c.knots[i+1] > c.knots[i] {
			spans++
		}
	}
	spanTol := tol / float64(spans)
	for i := c.order - 1; i < len(c.ctrl); i++ {
		if c.knots[i+1] > c.knots[i] {
			total += c.arclen(c.knots[i], c.knots[i+1], spanTol, 0)
		}
	}
	return total, StatusOK
}

func (c *Curve) arclen(a, b, tol float64, depth int) float64 {
	coarse := c.quadrature(gaussLegendreCoeffs8[:], a, b)
	fine := c.quadrature(gaussLegendreCoeffs16[:], a, b)
	if math.Abs(fine-coarse) <= tol || depth >= 16 {
		return fine
	}
	m := 0.5 * (a + b)
	return c.arclen(a, m, 0.5*tol, depth+1) + c.arclen(m, b, 0.5*tol, depth+1)
}

// quadrature integrates the parametric speed |C′| over [a, b] with the
// given Legendre-Gauss coefficients.
func (c *Curve) quadrature(coeffs [][2]float64, a, b float64) float64 {
	mid := 0.5 * (a + b)
	half := 0.5 * (b - a)
	sum := 0.0
	for _, coeff := range coeffs {
		wi, xi := coeff[0], coeff[1]
		sum += wi * c.derivativesAt(mid+xi*half, 1)[1].Norm()
	}
	return sum * half
}

// Tables of Legendre-Gauss quadrature coefficients, adapted from:
// <https://pomax.github.io/bezierinfo/legendre-gauss.html>

var gaussLegendreCoeffs8 = [...][2]float64{
	{0.3626837833783620, -0.1834346424956498},
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, -0.5255324099163290},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, -0.7966664774136267},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, -0.9602898564975363},
	{0.1012285362903763, 0.9602898564975363},
}

var gaussLegendreCoeffs16 = [...][2]float64{
	{0.1894506104550685, -0.0950125098376374},
	{0.1894506104550685, 0.0950125098376374},
	{0.1826034150449236, -0.2816035507792589},
	{0.1826034150449236, 0.2816035507792589},
	{0.1691565193950025, -0.4580167776572274},
	{0.1691565193950025, 0.4580167776572274},
	{0.1495959888165767, -0.6178762444026438},
	{0.1495959888165767, 0.6178762444026438},
	{0.1246289712555339, -0.7554044083550030},
	{0.1246289712555339, 0.7554044083550030},
	{0.0951585116824928, -0.8656312023878318},
	{0.0951585116824928, 0.8656312023878318},
	{0.0622535239386479, -0.9445750230732326},
	{0.0622535239386479, 0.9445750230732326},
	{0.0271524594117541, -0.9894009349916499},
	{0.0271524594117541, 0.9894009349916499},
}
