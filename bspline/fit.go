package bspline

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Fit constructs a clamped B-spline curve of the given order that
// interpolates the points in sequence, starting the parameter range at
// startParam. Interpolation parameters are assigned by chord length, so the
// reported end parameter is startParam plus the length of the control
// polygon. Interior knots are placed by averaging (The NURBS Book, eq. 9.8)
// and the control points are obtained by solving the resulting linear
// system.
//
// When fewer points than order are supplied the order is clamped to the
// point count. Consecutive duplicate points are collapsed before fitting.
//
// On success the fitted curve and its end parameter are returned with
// [StatusOK]. Degenerate input (fewer than two distinct points) yields
// [StatusDegenerate], an order below two yields [StatusBadArgument], and an
// unsolvable interpolation system yields [StatusSingular].
func Fit(points []r3.Vector, order int, startParam float64) (*Curve, float64, Status) {
	if order < 2 {
		return nil, 0, StatusBadArgument
	}

	// Collapse consecutive duplicates; they would produce a zero chord and a
	// singular interpolation system.
	pts := make([]r3.Vector, 0, len(points))
	for i, p := range points {
		if i > 0 && p == pts[len(pts)-1] {
			continue
		}
		pts = append(pts, p)
	}
	np := len(pts)
	if np < 2 {
		return nil, 0, StatusDegenerate
	}
	k := min(order, np)
	p := k - 1

	// Chord-length interpolation parameters.
	ubar := make([]float64, np)
	ubar[0] = startParam
	for i := 1; i < np; i++ {
		ubar[i] = ubar[i-1] + pts[i].Sub(pts[i-1]).Norm()
	}
	end := ubar[np-1]

	// Clamped knot vector with averaged interior knots.
	knots := make([]float64, np+k)
	for i := 0; i < k; i++ {
		knots[i] = ubar[0]
		knots[np+k-1-i] = end
	}
	for j := 1; j <= np-1-p; j++ {
		sum := 0.0
		for i := j; i <= j+p-1; i++ {
			sum += ubar[i]
		}
		knots[p+j] = sum / float64(p)
	}

	c := &Curve{order: k, knots: knots, ctrl: make([]r3.Vector, np)}

	// Collocation matrix: row i holds the nonzero basis functions at ubar[i].
	a := mat.NewDense(np, np, nil)
	rhs := mat.NewDense(np, 3, nil)
	for i, u := range ubar {
		span := c.findSpan(u)
		for j, v := range c.basisFuns(span, u) {
			a.Set(i, span-p+j, v)
		}
		rhs.Set(i, 0, pts[i].X)
		rhs.Set(i, 1, pts[i].Y)
		rhs.Set(i, 2, pts[i].Z)
	}
	var x mat.Dense
	if err := x.Solve(a, rhs); err != nil {
		return nil, 0, StatusSingular
	}
	for i := range c.ctrl {
		c.ctrl[i] = r3.Vector{X: x.At(i, 0), Y: x.At(i, 1), Z: x.At(i, 2)}
	}
	return c, end, StatusOK
}
