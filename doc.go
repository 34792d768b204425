// Package curve3d represents smooth parametric 3D curves fitted through
// sequences of control points, for path-following and trajectory-analysis
// use: a vehicle tracking a planned path evaluates the curve, measures its
// lateral and heading deviation from it, and advances a matched parameter
// along it every control tick.
//
// # Curves
//
// [Curve] owns an ordered list of control points, a spline order and a
// geometric resolution. Calling [Curve.Fit] interpolates a B-spline through
// the points (via the [github.com/roverpath/curve3d/bspline] backend) and
// defines the parameter domain; evaluation and search operations are then
// available:
//
//   - position, curvature, variation of curvature, Frenet frame and heading
//     at a parameter ([Curve.PointAt], [Curve.CurvatureAt],
//     [Curve.CurvatureDerivativeAt], [Curve.FrenetFrameAt], [Curve.HeadingAt])
//   - cached arc length and maximum curvature ([Curve.Length],
//     [Curve.MaxCurvature])
//   - global and windowed closest-point searches ([Curve.ClosestPoints],
//     [Curve.ClosestPoint], [Curve.LocalClosestPoint])
//   - control-point reduction within a tolerance ([Curve.Simplify])
//
// Mutating the control points with [Curve.AddPoint] deliberately does not
// refit the curve or invalidate anything: callers decide when to pay for a
// refit by calling [Curve.Fit] again.
//
// # Path tracking
//
// [Curve.HeadingError], [Curve.DistanceError] and [Curve.PoseError] derive
// the per-tick error metrics a path-following controller consumes. The
// signed distance error encodes which side of the curve the tracked point
// lies on.
//
// # Concurrency
//
// A Curve is a single-writer, single-reader object, typical of a per-path
// follower. There is no internal locking; callers share instances at their
// own risk. Copies made with [Curve.Clone] are fully independent.
package curve3d
