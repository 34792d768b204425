package curve3d

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/roverpath/curve3d/bspline"
)

// ClosestPoints searches the whole domain for the points of the curve
// closest to target. It returns two result sets: the parameters of exact,
// isolated closest points, and the (start, end) parameter intervals of
// sub-curves that run within tol of the target. A non-positive tol selects
// the curve's resolution.
//
// Any non-zero backend status, warnings included, fails with [ErrSearch].
func (c *Curve) ClosestPoints(target r3.Vector, tol float64) (params []float64, intervals [][2]float64, err error) {
	if c.fitted == nil {
		return nil, nil, fmt.Errorf("%w: the curve is not fitted", ErrSearch)
	}
	if tol <= 0 {
		tol = c.resolution
	}
	params, intervals, st := c.fitted.NearestGlobal(target, tol)
	if st != bspline.StatusOK {
		return nil, nil, fmt.Errorf("%w: global search: %v", ErrSearch, st)
	}
	return params, intervals, nil
}

// ClosestPoint returns a single parameter closest to target: the first
// exact point if any exist, otherwise the start of the first sub-curve
// interval. It fails with [ErrNoClosestPoint] when the search returns
// neither.
func (c *Curve) ClosestPoint(target r3.Vector, tol float64) (float64, error) {
	params, intervals, err := c.ClosestPoints(target, tol)
	if err != nil {
		return 0, err
	}
	if len(params) > 0 {
		return params[0], nil
	}
	if len(intervals) > 0 {
		return intervals[0][0], nil
	}
	return 0, fmt.Errorf("%w: the global search returned no candidates", ErrNoClosestPoint)
}

// LocalClosestPoint performs a guess-seeded closest-point search restricted
// to the window [lo, hi] and returns the refined parameter. A non-positive
// tol selects the curve's resolution.
//
// Only a negative backend status is treated as failure here: positive
// warning statuses (such as an iteration stopping at its best candidate)
// still carry a usable parameter and are accepted. This is deliberately
// laxer than [Curve.ClosestPoints].
func (c *Curve) LocalClosestPoint(target r3.Vector, guess, lo, hi, tol float64) (float64, error) {
	if c.fitted == nil {
		return 0, fmt.Errorf("%w: the curve is not fitted", ErrSearch)
	}
	if tol <= 0 {
		tol = c.resolution
	}
	param, st := c.fitted.NearestLocal(target, guess, lo, hi, tol)
	if st < 0 {
		return 0, fmt.Errorf("%w: local search: %v", ErrSearch, st)
	}
	return param, nil
}

// Simplify replaces the fitted curve with one using fewer control points
// that stays within a per-axis tolerance box (tol, tol, tol) of the
// original, requesting derivative continuity up to the curve's order and at
// most 10 refinement iterations. It returns the achieved per-axis maximum
// error. A non-positive tol selects the curve's resolution.
//
// The parameter domain is preserved, as are the cached length and maximum
// curvature (both remain accurate to within the tolerance). It fails with
// [ErrSimplify] when the curve is unfitted or the backend reports a
// non-zero status, leaving the curve unchanged.
func (c *Curve) Simplify(tol float64) ([3]float64, error) {
	if c.fitted == nil {
		return [3]float64{}, fmt.Errorf("%w: the curve is not fitted", ErrSimplify)
	}
	if tol <= 0 {
		tol = c.resolution
	}
	simplified, maxErr, st := bspline.Simplify(c.fitted, [3]float64{tol, tol, tol}, c.order, 10)
	if st != bspline.StatusOK {
		return [3]float64{}, fmt.Errorf("%w: %v", ErrSimplify, st)
	}
	c.fitted = simplified
	return maxErr, nil
}
