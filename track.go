package curve3d

import (
	"math"

	"github.com/golang/geo/r3"
)

// PoseError is the per-tick output consumed by a path-following controller:
// the signed lateral distance and heading deviation of the tracked pose
// from the curve, and the curve parameter they were measured at.
type PoseError struct {
	Distance float64
	Heading  float64
	Param    float64
}

// HeadingError returns the signed angular difference between actualHeading
// and the curve's heading at param, wrapped into (−π, π].
//
// The wrap is a single conditional correction by one full turn, not a
// modulo: heading differences are bounded by construction, so at most one
// correction is ever needed.
func (c *Curve) HeadingError(actualHeading, param float64) float64 {
	err := actualHeading - c.HeadingAt(param)
	switch {
	case err > math.Pi:
		return err - 2*math.Pi
	case err < -math.Pi:
		return err + 2*math.Pi
	}
	return err
}

// DistanceError returns the lateral offset of pt from the curve at param,
// measured in the horizontal plane. The sign encodes the side of the curve
// the point lies on: positive when the planar error vector points to the
// left of the curve's heading, negative to the right. It fails with
// [ErrDomain] under the same conditions as [Curve.PointAt].
func (c *Curve) DistanceError(pt r3.Vector, param float64) (float64, error) {
	onCurve, err := c.PointAt(param)
	if err != nil {
		return 0, err
	}
	ev := pt.Sub(onCurve)
	ev.Z = 0 // lateral error only

	angle := math.Atan2(ev.Y, ev.X) - c.HeadingAt(param)
	if angle >= 0 {
		return ev.Norm(), nil
	}
	return -ev.Norm(), nil
}

// PoseError matches pt against the curve inside a parameter window of
// arc length lenTol starting at startParam (the window is converted to
// parameter space through [Curve.UnitParameter] and startParam seeds the
// search), then reports the distance and heading errors at the matched
// parameter.
func (c *Curve) PoseError(pt r3.Vector, actualHeading, startParam, lenTol float64) (PoseError, error) {
	unit, err := c.UnitParameter()
	if err != nil {
		return PoseError{}, err
	}
	window := unit * lenTol

	param, err := c.LocalClosestPoint(pt, startParam, startParam, startParam+window, 0)
	if err != nil {
		return PoseError{}, err
	}
	dist, err := c.DistanceError(pt, param)
	if err != nil {
		return PoseError{}, err
	}
	return PoseError{
		Distance: dist,
		Heading:  c.HeadingError(actualHeading, param),
		Param:    param,
	}, nil
}
