package bspline

import (
	"math"
	"slices"

	"github.com/golang/geo/r3"
)

// NearestGlobal searches the whole parameter range for points closest to
// target. It returns the parameters of isolated local distance minima
// (including the range boundaries when the distance decreases towards them)
// and the parameter intervals over which the curve stays within tol of the
// target. Minima lying inside such an interval are not isolated and are
// reported only through the interval.
//
// The search samples the range densely and refines each bracketed minimum
// with an ITP root search on the stationarity condition (C(t)−P)·C′(t) = 0.
func (c *Curve) NearestGlobal(target r3.Vector, tol float64) (params []float64, intervals [][2]float64, status Status) {
	start, end, st := c.ParamRange()
	if st != StatusOK {
		return nil, nil, st
	}
	if tol <= 0 {
		return nil, nil, StatusBadArgument
	}
	if end == start {
		return []float64{start}, nil, StatusOK
	}

	n := max(128, 32*len(c.ctrl))
	ts := make([]float64, n+1)
	ds := make([]float64, n+1)
	step := (end - start) / float64(n)
	for i := 0; i <= n; i++ {
		ts[i] = start + float64(i)*step
		pos, _ := c.Position(ts[i])
		ds[i] = pos.Sub(target).Norm()
	}

	stationarity := func(t float64) float64 {
		d := c.derivativesAt(c.clampParam(t), 1)
		return d[0].Sub(target).Dot(d[1])
	}

	for i := 0; i <= n; i++ {
		switch {
		case i == 0:
			if ds[0] <= ds[1] {
				params = append(params, ts[0])
			}
		case i == n:
			if ds[n] <= ds[n-1] {
				params = append(params, ts[n])
			}
		case ds[i] <= ds[i-1] && ds[i] <= ds[i+1]:
			lo, hi := ts[i-1], ts[i+1]
			ya, yb := stationarity(lo), stationarity(hi)
			t := ts[i]
			if ya < 0 && yb > 0 {
				t = solveITP(stationarity, lo, hi, step*1e-6, ya, yb)
			}
			params = append(params, t)
		}
	}
	params = dedupeSorted(params, step*0.5)

	// Runs of grid points within tolerance become sub-curve intervals; their
	// boundaries are refined by bisecting the tolerance crossing.
	crossing := func(t float64) float64 {
		pos, _ := c.Position(t)
		return pos.Sub(target).Norm() - tol
	}
	for i := 0; i <= n; {
		if ds[i] > tol {
			i++
			continue
		}
		j := i
		for j < n && ds[j+1] <= tol {
			j++
		}
		if j > i {
			lo := ts[i]
			if i > 0 {
				lo = bisect(crossing, ts[i-1], ts[i])
			}
			hi := ts[j]
			if j < n {
				hi = bisect(crossing, ts[j+1], ts[j])
			}
			intervals = append(intervals, [2]float64{lo, hi})
			params = slices.DeleteFunc(params, func(t float64) bool {
				return t >= lo && t <= hi
			})
		}
		i = j + 1
	}
	return params, intervals, StatusOK
}

// NearestLocal refines a single closest-point candidate within the window
// [lo, hi], starting from guess. The window is intersected with the
// parameter range and the guess is clamped into the window. tol is the
// geometric tolerance deciding convergence.
//
// The refinement is a damped Newton iteration on the stationarity condition
// (C(t)−P)·C′(t) = 0. If the iteration does not converge within its
// iteration budget the best parameter found so far is returned with the
// [StatusNoConvergence] warning. An empty window or non-positive tolerance
// is an error.
func (c *Curve) NearestLocal(target r3.Vector, guess, lo, hi, tol float64) (float64, Status) {
	start, end, st := c.ParamRange()
	if st != StatusOK {
		return 0, st
	}
	if tol <= 0 || lo > hi {
		return 0, StatusBadArgument
	}
	lo = max(lo, start)
	hi = min(hi, end)
	if lo > hi {
		return 0, StatusBadArgument
	}
	t := min(max(guess, lo), hi)
	if hi == lo {
		return lo, StatusOK
	}

	// Parameter-space resolution equivalent to the geometric tolerance.
	length, st := c.Length(tol)
	if st != StatusOK {
		return 0, st
	}
	ptol := tol
	if length > 0 {
		ptol = tol * (end - start) / length
	}

	dist := func(t float64) float64 {
		pos, _ := c.Position(t)
		return pos.Sub(target).Norm()
	}
	best, bestDist := t, dist(t)
	for iter := 0; iter < 48; iter++ {
		d := c.derivativesAt(c.clampParam(t), 2)
		diff := d[0].Sub(target)
		g := diff.Dot(d[1])
		dg := d[1].Dot(d[1]) + diff.Dot(d[2])
		if dg <= 0 {
			// Not locally convex; fall back to a bisection-sized step
			// downhill.
			dg = d[1].Dot(d[1])
			if dg == 0 {
				break
			}
		}
		next := min(max(t-g/dg, lo), hi)
		if nd := dist(next); nd < bestDist {
			best, bestDist = next, nd
		}
		if math.Abs(next-t) <= ptol {
			return next, StatusOK
		}
		if next == t {
			// Pinned against the window boundary; the windowed minimum is
			// the boundary itself.
			return t, StatusOK
		}
		t = next
	}
	return best, StatusNoConvergence
}

// solveITP finds the root of f in [a, b] to within epsilon, where ya = f(a)
// < 0 and yb = f(b) > 0. It implements the ITP method, which is as robust as
// bisection but typically converges faster; k1 and n0 are fixed at the
// values that work well for curve problems.
func solveITP(f func(float64) float64, a, b, epsilon, ya, yb float64) float64 {
	k1 := 0.2 / (b - a)
	n1_2 := int(max(math.Ceil(math.Log2((b-a)/epsilon))-1.0, 0.0))
	nmax := 1 + n1_2
	scaledEpsilon := epsilon * float64(uint64(1)<<nmax)
	for b-a > 2.0*epsilon {
		x1_2 := 0.5 * (a + b)
		r := scaledEpsilon - 0.5*(b-a)
		xf := (yb*a - ya*b) / (yb - ya)
		sigma := x1_2 - xf
		// This has k2 = 2 hardwired for efficiency.
		delta := k1 * ((b - a) * (b - a))
		var xt float64
		if delta <= math.Abs(x1_2-xf) {
			xt = xf + math.Copysign(delta, sigma)
		} else {
			xt = x1_2
		}
		var xitp float64
		if math.Abs(xt-x1_2) <= r {
			xitp = xt
		} else {
			xitp = x1_2 - math.Copysign(r, sigma)
		}
		yitp := f(xitp)
		if yitp > 0.0 {
			b = xitp
			yb = yitp
		} else if yitp < 0.0 {
			a = xitp
			ya = yitp
		} else {
			return xitp
		}
		scaledEpsilon *= 0.5
	}
	return 0.5 * (a + b)
}

// bisect locates the zero crossing of f between outside (f > 0) and inside
// (f <= 0).
func bisect(f func(float64) float64, outside, inside float64) float64 {
	for i := 0; i < 40; i++ {
		mid := 0.5 * (outside + inside)
		if f(mid) > 0 {
			outside = mid
		} else {
			inside = mid
		}
	}
	return 0.5 * (outside + inside)
}

// dedupeSorted sorts params and merges values closer than eps.
func dedupeSorted(params []float64, eps float64) []float64 {
	if len(params) < 2 {
		return params
	}
	slices.Sort(params)
	out := params[:1]
	for _, t := range params[1:] {
		if t-out[len(out)-1] > eps {
			out = append(out, t)
		}
	}
	return out
}
