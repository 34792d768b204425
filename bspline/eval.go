package bspline

import (
	"math"

	"github.com/golang/geo/r3"
)

// Position evaluates the curve point at parameter u. Parameters outside the
// range are clamped to the nearest boundary.
func (c *Curve) Position(u float64) (r3.Vector, Status) {
	if _, _, st := c.ParamRange(); st != StatusOK {
		return r3.Vector{}, st
	}
	return c.derivativesAt(c.clampParam(u), 0)[0], StatusOK
}

// Curvature evaluates the curvature κ = |C′×C″| / |C′|³ at parameter u. A
// vanishing first derivative (cusp) yields [StatusDegenerate].
func (c *Curve) Curvature(u float64) (float64, Status) {
	if _, _, st := c.ParamRange(); st != StatusOK {
		return 0, st
	}
	d := c.derivativesAt(c.clampParam(u), 2)
	speed := d[1].Norm()
	if speed == 0 {
		return 0, StatusDegenerate
	}
	return d[1].Cross(d[2]).Norm() / (speed * speed * speed), StatusOK
}

// CurvatureDeriv evaluates the variation of curvature dκ/ds, the derivative
// of curvature with respect to arc length, at parameter u.
//
// With a = C′, b = C″, e = C‴ and n = a×b:
//
//	dκ/dt = (n·(a×e)) / (|n| |a|³) − 3 |n| (a·b) / |a|⁵
//
// and dκ/ds = (dκ/dt) / |a|. On a locally straight stretch (n = 0) the
// variation is reported as zero.
func (c *Curve) CurvatureDeriv(u float64) (float64, Status) {
	if _, _, st := c.ParamRange(); st != StatusOK {
		return 0, st
	}
	d := c.derivativesAt(c.clampParam(u), 3)
	a, b, e := d[1], d[2], d[3]
	speed := a.Norm()
	if speed == 0 {
		return 0, StatusDegenerate
	}
	n := a.Cross(b)
	nn := n.Norm()
	if nn == 0 {
		return 0, StatusOK
	}
	v3 := speed * speed * speed
	dkdt := n.Dot(a.Cross(e))/(nn*v3) - 3*nn*a.Dot(b)/(v3*speed*speed)
	return dkdt / speed, StatusOK
}

// FrenetFrame evaluates the Frenet frame at parameter u and returns the
// tangent, normal and binormal unit vectors.
//
// Where the frame is not mathematically defined the result degrades
// gracefully rather than failing: on a locally straight stretch the normal
// is built from the coordinate axis least aligned with the tangent, and at a
// cusp the tangent defaults to the x axis. Callers that need strict
// semantics should check the curvature first.
func (c *Curve) FrenetFrame(u float64) (tangent, normal, binormal r3.Vector, status Status) {
	if _, _, st := c.ParamRange(); st != StatusOK {
		return r3.Vector{}, r3.Vector{}, r3.Vector{}, st
	}
	d := c.derivativesAt(c.clampParam(u), 2)
	if d[1].Norm() == 0 {
		tangent = r3.Vector{X: 1}
	} else {
		tangent = d[1].Normalize()
	}
	// Project the second derivative off the tangent to get the normal
	// direction.
	normal = d[2].Sub(tangent.Mul(d[2].Dot(tangent)))
	if normal.Norm() < 1e-12*(1+d[2].Norm()) {
		normal = perpendicular(tangent)
	} else {
		normal = normal.Normalize()
	}
	binormal = tangent.Cross(normal)
	return tangent, normal, binormal, StatusOK
}

// perpendicular returns a unit vector orthogonal to t, derived from the
// coordinate axis least aligned with t so the choice is stable under small
// perturbations of t.
func perpendicular(t r3.Vector) r3.Vector {
	axis := r3.Vector{X: 1}
	ax, ay, az := math.Abs(t.X), math.Abs(t.Y), math.Abs(t.Z)
	switch {
	case ay <= ax && ay <= az:
		axis = r3.Vector{Y: 1}
	case az <= ax && az <= ay:
		axis = r3.Vector{Z: 1}
	}
	return axis.Sub(t.Mul(axis.Dot(t))).Normalize()
}
