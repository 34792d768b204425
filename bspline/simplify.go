package bspline

import (
	"math"

	"github.com/golang/geo/r3"
)

// Simplify produces a curve with fewer control points that stays within the
// per-axis tolerance box of the input curve. The curve is sampled densely,
// thinned with Douglas-Peucker selection (the endpoints are always kept, so
// the reduction preserves the original endpoints), and refit with the given
// order; the knot vector of the result is rescaled so the parameter range of
// the input is preserved. The achieved per-axis maximum deviation is
// measured by nearest-point projection of the original samples onto the
// candidate and returned alongside the curve.
//
// Up to maxIter refinement rounds are spent tightening the selection when
// the measured deviation exceeds the tolerance box. If the rounds are
// exhausted the tightest candidate is returned with the
// [StatusToleranceNotMet] warning.
func Simplify(c *Curve, tol [3]float64, order, maxIter int) (*Curve, [3]float64, Status) {
	start, end, st := c.ParamRange()
	if st != StatusOK {
		return nil, [3]float64{}, st
	}
	if tol[0] <= 0 || tol[1] <= 0 || tol[2] <= 0 || order < 2 || maxIter < 1 {
		return nil, [3]float64{}, StatusBadArgument
	}

	n := max(128, 32*len(c.ctrl))
	ts := make([]float64, n+1)
	pts := make([]r3.Vector, n+1)
	for i := 0; i <= n; i++ {
		ts[i] = start + (end-start)*float64(i)/float64(n)
		pts[i], _ = c.Position(ts[i])
	}

	selectTol := min(tol[0], tol[1], tol[2])
	var best *Curve
	var bestErr [3]float64
	for iter := 0; iter < maxIter; iter++ {
		keep := douglasPeucker(pts, 0, n, selectTol, []int{0})
		sel := make([]r3.Vector, len(keep))
		for i, idx := range keep {
			sel[i] = pts[idx]
		}
		cand, candEnd, st := Fit(sel, order, start)
		if st != StatusOK {
			return nil, [3]float64{}, st
		}
		// Preserve the parametrization of the input: stretch the candidate's
		// knots over the original range.
		if candEnd != start {
			scale := (end - start) / (candEnd - start)
			for i, u := range cand.knots {
				cand.knots[i] = start + (u-start)*scale
			}
		}

		errBox := deviation(cand, ts, pts, selectTol)
		if best == nil || boxLess(errBox, bestErr) {
			best, bestErr = cand, errBox
		}
		if errBox[0] <= tol[0] && errBox[1] <= tol[1] && errBox[2] <= tol[2] {
			return cand, errBox, StatusOK
		}
		selectTol *= 0.5
	}
	return best, bestErr, StatusToleranceNotMet
}

// deviation measures the per-axis maximum deviation of the sampled original
// curve from cand, projecting each sample onto cand with a local search
// seeded at the matching parameter.
func deviation(cand *Curve, ts []float64, pts []r3.Vector, tol float64) [3]float64 {
	lo, hi, _ := cand.ParamRange()
	var errBox [3]float64
	for i, p := range pts {
		u, st := cand.NearestLocal(p, ts[i], lo, hi, tol*0.25)
		if st.Err() {
			u = ts[i]
		}
		q, _ := cand.Position(u)
		errBox[0] = max(errBox[0], math.Abs(p.X-q.X))
		errBox[1] = max(errBox[1], math.Abs(p.Y-q.Y))
		errBox[2] = max(errBox[2], math.Abs(p.Z-q.Z))
	}
	return errBox
}

func boxLess(a, b [3]float64) bool {
	return max(a[0], a[1], a[2]) < max(b[0], b[1], b[2])
}

// douglasPeucker appends to acc the indices in (first, last] that survive
// polyline thinning with the given tolerance. acc must already contain
// first.
func douglasPeucker(pts []r3.Vector, first, last int, tol float64, acc []int) []int {
	worst, worstD := first, 0.0
	for i := first + 1; i < last; i++ {
		if d := pointSegmentDistance(pts[i], pts[first], pts[last]); d > worstD {
			worst, worstD = i, d
		}
	}
	if worstD <= tol {
		return append(acc, last)
	}
	acc = douglasPeucker(pts, first, worst, tol, acc)
	return douglasPeucker(pts, worst, last, tol, acc)
}

func pointSegmentDistance(p, a, b r3.Vector) float64 {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom == 0 {
		return p.Sub(a).Norm()
	}
	t := min(max(p.Sub(a).Dot(ab)/denom, 0), 1)
	return p.Sub(a.Add(ab.Mul(t))).Norm()
}
