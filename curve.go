package curve3d

import (
	"fmt"
	"math"
	"slices"

	"github.com/golang/geo/r3"

	"github.com/roverpath/curve3d/bspline"
)

// DefaultResolution is a geometric resolution suitable for metre-scaled
// outdoor paths: precision-taking operations that are handed a non-positive
// tolerance fall back to the curve's resolution.
const DefaultResolution = 0.1

// Curve is a smooth parametric 3D curve interpolating a sequence of control
// points.
//
// A Curve starts out unfitted: control points can be collected with
// [Curve.AddPoint], and [Curve.Fit] interpolates the spline and defines the
// parameter domain. Evaluation and search operations require a fitted
// curve. The fitted representation is owned exclusively by one Curve;
// [Curve.Clone] deep-copies it.
type Curve struct {
	points     []r3.Vector
	order      int
	resolution float64

	fitted     *bspline.Curve
	startParam float64
	endParam   float64

	// Lazily computed scalars, dropped by Fit and Clear only. Mutating the
	// control points does not touch them.
	length  option[float64]
	curvMax option[float64]
}

// Frame is a Frenet frame: the local orthonormal basis describing the
// curve's orientation at a parameter value.
type Frame struct {
	Tangent  r3.Vector
	Normal   r3.Vector
	Binormal r3.Vector
}

// New returns an unfitted curve over the given control points. resolution
// is the default geometric tolerance used wherever a precision argument is
// needed but not supplied; order is the spline order (≥ 2) used by
// [Curve.Fit]. The point slice is copied.
func New(resolution float64, order int, points []r3.Vector) *Curve {
	return &Curve{
		points:     slices.Clone(points),
		order:      order,
		resolution: resolution,
	}
}

// Wrap returns a curve around an already-fitted spline, querying it for the
// resulting parameter domain. It fails with [ErrFitQuery] if the domain
// cannot be determined. The wrapped spline is owned by the returned curve
// and must not be shared.
func Wrap(resolution float64, order int, points []r3.Vector, fitted *bspline.Curve) (*Curve, error) {
	start, end, st := fitted.ParamRange()
	if st != bspline.StatusOK {
		return nil, fmt.Errorf("%w: %v", ErrFitQuery, st)
	}
	c := New(resolution, order, points)
	c.fitted = fitted
	c.startParam = start
	c.endParam = end
	return c, nil
}

// Clone returns a deep copy of the curve. The fitted representation, if
// present, is copied, so fitting or clearing the clone never affects the
// original. Valid caches stay valid on the copy.
func (c *Curve) Clone() *Curve {
	dup := *c
	dup.points = slices.Clone(c.points)
	dup.fitted = c.fitted.Clone()
	return &dup
}

// AddPoint appends a control point. The existing fit and caches are left
// untouched: the new point participates only after the next [Curve.Fit].
func (c *Curve) AddPoint(p r3.Vector) {
	c.points = append(c.points, p)
}

// Points returns a copy of the control points in insertion order.
func (c *Curve) Points() []r3.Vector { return slices.Clone(c.points) }

// Order returns the spline order used for fitting.
func (c *Curve) Order() int { return c.order }

// Resolution returns the default geometric tolerance.
func (c *Curve) Resolution() float64 { return c.resolution }

// Start returns the start of the parameter domain. Defined only when the
// curve is fitted.
func (c *Curve) Start() float64 { return c.startParam }

// End returns the end of the parameter domain. Defined only when the curve
// is fitted.
func (c *Curve) End() float64 { return c.endParam }

// Fitted exposes the backend spline, or nil if the curve is unfitted. The
// spline remains owned by c.
func (c *Curve) Fitted() *bspline.Curve { return c.fitted }

// Fit interpolates the spline through the current control points as an
// open, non-periodic curve of the configured order, with the start
// parameter fixed at 0. On success the previous fit and both caches are
// discarded and the domain is set to [0, reported end]. On failure the
// curve is left unchanged and [ErrFit] is reported.
func (c *Curve) Fit() error {
	fitted, end, st := bspline.Fit(c.points, c.order, 0.0)
	if st != bspline.StatusOK {
		return fmt.Errorf("%w: %v", ErrFit, st)
	}
	c.fitted = fitted
	c.startParam = 0.0
	c.endParam = end
	c.length.clear()
	c.curvMax.clear()
	return nil
}

// Clear discards the fitted curve and all control points.
func (c *Curve) Clear() {
	c.fitted = nil
	c.points = nil
	c.startParam = 0
	c.endParam = 0
	c.length.clear()
	c.curvMax.clear()
}

func (c *Curve) checkParam(t float64) error {
	if c.fitted == nil {
		return fmt.Errorf("%w: the curve is not fitted", ErrDomain)
	}
	if t < c.startParam || t > c.endParam {
		return fmt.Errorf("%w: %g not in [%g, %g]", ErrDomain, t, c.startParam, c.endParam)
	}
	return nil
}

// PointAt evaluates the curve position at parameter t. It fails with
// [ErrDomain] if the curve is unfitted or t lies outside [Start, End].
func (c *Curve) PointAt(t float64) (r3.Vector, error) {
	if err := c.checkParam(t); err != nil {
		return r3.Vector{}, err
	}
	p, st := c.fitted.Position(t)
	if st != bspline.StatusOK {
		return r3.Vector{}, fmt.Errorf("curve3d: position evaluation failed: %v", st)
	}
	return p, nil
}

// CurvatureAt evaluates the curvature at parameter t, with the same domain
// contract as [Curve.PointAt].
func (c *Curve) CurvatureAt(t float64) (float64, error) {
	if err := c.checkParam(t); err != nil {
		return 0, err
	}
	k, st := c.fitted.Curvature(t)
	if st != bspline.StatusOK {
		return 0, fmt.Errorf("curve3d: curvature evaluation failed: %v", st)
	}
	return k, nil
}

// CurvatureDerivativeAt evaluates the variation of curvature (dκ/ds) at
// parameter t, with the same domain contract as [Curve.PointAt].
func (c *Curve) CurvatureDerivativeAt(t float64) (float64, error) {
	if err := c.checkParam(t); err != nil {
		return 0, err
	}
	v, st := c.fitted.CurvatureDeriv(t)
	if st != bspline.StatusOK {
		return 0, fmt.Errorf("curve3d: variation of curvature evaluation failed: %v", st)
	}
	return v, nil
}

// FrenetFrameAt evaluates the Frenet frame at parameter t.
//
// Unlike the point and curvature evaluations this performs no domain check:
// out-of-domain parameters yield whatever the backend produces for them.
// The curve must be fitted.
func (c *Curve) FrenetFrameAt(t float64) Frame {
	tangent, normal, binormal, _ := c.fitted.FrenetFrame(t)
	return Frame{Tangent: tangent, Normal: normal, Binormal: binormal}
}

// HeadingAt returns the curve's heading at parameter t: the angle of the
// tangent's horizontal projection, measured in the x-y plane.
func (c *Curve) HeadingAt(t float64) float64 {
	frame := c.FrenetFrameAt(t)
	return math.Atan2(frame.Tangent.Y, frame.Tangent.X)
}

// Length returns the arc length of the fitted curve, integrated to the
// curve's resolution. The result is cached until the next [Curve.Fit] or
// [Curve.Clear]; it fails with [ErrLength] when unfitted or on integration
// failure.
func (c *Curve) Length() (float64, error) {
	if v, ok := c.length.get(); ok {
		return v, nil
	}
	if c.fitted == nil {
		return 0, fmt.Errorf("%w: the curve is not fitted", ErrLength)
	}
	l, st := c.fitted.Length(c.resolution)
	if st != bspline.StatusOK {
		return 0, fmt.Errorf("%w: %v", ErrLength, st)
	}
	c.length.set(l)
	return l, nil
}

// UnitParameter returns the parameter increment corresponding to one unit
// of arc length, (End−Start)/Length. It is used to convert search distances
// into parameter-space windows.
func (c *Curve) UnitParameter() (float64, error) {
	l, err := c.Length()
	if err != nil {
		return 0, err
	}
	if l == 0 {
		return 0, fmt.Errorf("%w: zero-length curve", ErrLength)
	}
	return (c.endParam - c.startParam) / l, nil
}

// MaxCurvature returns the maximum curvature over the domain, estimated by
// sampling at a parameter step of UnitParameter()×resolution from Start to
// End. The estimate is bounded by the sampling density: treat it as an
// upper-bound approximation, not an exact extremum. The result is cached
// until the next [Curve.Fit] or [Curve.Clear].
func (c *Curve) MaxCurvature() (float64, error) {
	if v, ok := c.curvMax.get(); ok {
		return v, nil
	}
	unit, err := c.UnitParameter()
	if err != nil {
		return 0, err
	}
	step := unit * c.resolution
	if step <= 0 {
		return 0, fmt.Errorf("%w: non-positive sampling step", ErrLength)
	}
	maxCurv := 0.0
	for p := c.startParam; p <= c.endParam; p += step {
		k, err := c.CurvatureAt(p)
		if err != nil {
			return 0, err
		}
		maxCurv = max(maxCurv, k)
	}
	c.curvMax.set(maxCurv)
	return maxCurv, nil
}
