// Package bspline implements clamped, non-periodic B-spline curves in 3D:
// interpolation fitting, evaluation of positions, derivatives, curvature and
// Frenet frames, arc-length integration, nearest-point searches, and data
// reduction.
//
// Operations report a [Status] alongside their results. Zero is success,
// positive statuses are warnings carrying a usable result, and negative
// statuses are errors.
package bspline

import (
	"slices"

	"github.com/golang/geo/r3"
)

// Curve is a clamped B-spline curve in 3D space.
//
// The zero value is not a valid curve; use [Fit] to construct one. Curves are
// immutable after construction, so it is safe to share one between readers.
type Curve struct {
	order int // polynomial order (degree + 1)
	knots []float64
	ctrl  []r3.Vector
}

// Order returns the polynomial order (degree + 1) of the curve.
func (c *Curve) Order() int { return c.order }

// NumControl returns the number of control points.
func (c *Curve) NumControl() int { return len(c.ctrl) }

// ControlPoints returns a copy of the control points.
func (c *Curve) ControlPoints() []r3.Vector {
	return slices.Clone(c.ctrl)
}

// ParamRange returns the parameter interval over which the curve is defined.
// It reports [StatusDegenerate] if c does not hold a valid curve.
func (c *Curve) ParamRange() (start, end float64, status Status) {
	if c == nil || c.order < 2 || len(c.knots) != len(c.ctrl)+c.order {
		return 0, 0, StatusDegenerate
	}
	return c.knots[c.order-1], c.knots[len(c.ctrl)], StatusOK
}

// Clone returns a deep copy of the curve. Cloning nil returns nil.
func (c *Curve) Clone() *Curve {
	if c == nil {
		return nil
	}
	return &Curve{
		order: c.order,
		knots: slices.Clone(c.knots),
		ctrl:  slices.Clone(c.ctrl),
	}
}

// findSpan locates the knot span index i with knots[i] <= u < knots[i+1],
// restricted to the spans that carry the curve. This is the binary search of
// The NURBS Book, algorithm A2.1.
func (c *Curve) findSpan(u float64) int {
	n := len(c.ctrl) - 1
	p := c.order - 1
	if u >= c.knots[n+1] {
		return n
	}
	if u <= c.knots[p] {
		return p
	}
	lo, hi := p, n+1
	mid := (lo + hi) / 2
	for u < c.knots[mid] || u >= c.knots[mid+1] {
		if u < c.knots[mid] {
			hi = mid
		} else {
			lo = mid
		}
		mid = (lo + hi) / 2
	}
	return mid
}

// basisFuns evaluates the order nonzero basis functions on the given span
// (The NURBS Book, algorithm A2.2).
func (c *Curve) basisFuns(span int, u float64) []float64 {
	p := c.order - 1
	vals := make([]float64, p+1)
	left := make([]float64, p+1)
	right := make([]float64, p+1)
	vals[0] = 1
	for j := 1; j <= p; j++ {
		left[j] = u - c.knots[span+1-j]
		right[j] = c.knots[span+j] - u
		saved := 0.0
		for r := 0; r < j; r++ {
			tmp := vals[r] / (right[r+1] + left[j-r])
			vals[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		vals[j] = saved
	}
	return vals
}

// dersBasisFuns evaluates the nonzero basis functions and their derivatives
// up to order n (The NURBS Book, algorithm A2.3). The result is indexed as
// ders[k][j] for the k-th derivative of the j-th nonzero basis function.
func (c *Curve) dersBasisFuns(span int, u float64, n int) [][]float64 {
	p := c.order - 1
	ndu := make([][]float64, p+1)
	for i := range ndu {
		ndu[i] = make([]float64, p+1)
	}
	left := make([]float64, p+1)
	right := make([]float64, p+1)
	ndu[0][0] = 1
	for j := 1; j <= p; j++ {
		left[j] = u - c.knots[span+1-j]
		right[j] = c.knots[span+j] - u
		saved := 0.0
		for r := 0; r < j; r++ {
			ndu[j][r] = right[r+1] + left[j-r]
			tmp := ndu[r][j-1] / ndu[j][r]
			ndu[r][j] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		ndu[j][j] = saved
	}

	ders := make([][]float64, n+1)
	for i := range ders {
		ders[i] = make([]float64, p+1)
	}
	for j := 0; j <= p; j++ {
		ders[0][j] = ndu[j][p]
	}

	a := [2][]float64{make([]float64, p+1), make([]float64, p+1)}
	for r := 0; r <= p; r++ {
		s1, s2 := 0, 1
		a[0][0] = 1
		for k := 1; k <= n; k++ {
			if k > p {
				break
			}
			d := 0.0
			rk := r - k
			pk := p - k
			if r >= k {
				a[s2][0] = a[s1][0] / ndu[pk+1][rk]
				d = a[s2][0] * ndu[rk][pk]
			}
			j1 := 1
			if rk < -1 {
				j1 = -rk
			}
			j2 := k - 1
			if r-1 > pk {
				j2 = p - r
			}
			for j := j1; j <= j2; j++ {
				a[s2][j] = (a[s1][j] - a[s1][j-1]) / ndu[pk+1][rk+j]
				d += a[s2][j] * ndu[rk+j][pk]
			}
			if r <= pk {
				a[s2][k] = -a[s1][k-1] / ndu[pk+1][r]
				d += a[s2][k] * ndu[r][pk]
			}
			ders[k][r] = d
			s1, s2 = s2, s1
		}
	}

	// Multiply through by the correct factors.
	acc := float64(p)
	for k := 1; k <= n && k <= p; k++ {
		for j := 0; j <= p; j++ {
			ders[k][j] *= acc
		}
		acc *= float64(p - k)
	}
	return ders
}

// derivativesAt evaluates the curve point and its first n derivatives at u.
// Derivatives beyond the polynomial degree are zero. u must lie within the
// parameter range.
func (c *Curve) derivativesAt(u float64, n int) []r3.Vector {
	p := c.order - 1
	span := c.findSpan(u)
	ders := c.dersBasisFuns(span, u, n)
	out := make([]r3.Vector, n+1)
	for k := 0; k <= n && k <= p; k++ {
		var v r3.Vector
		for j := 0; j <= p; j++ {
			v = v.Add(c.ctrl[span-p+j].Mul(ders[k][j]))
		}
		out[k] = v
	}
	return out
}

// clampParam limits u to the parameter range, tolerating small floating
// point excursions. Evaluating well outside the range yields the boundary
// value; the engine layer performs its own strict domain checks.
func (c *Curve) clampParam(u float64) float64 {
	start, end, _ := c.ParamRange()
	return min(max(u, start), end)
}
