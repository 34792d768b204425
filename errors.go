package curve3d

import "errors"

// Error kinds reported by curve operations. They are wrapped with a
// human-readable cause and can be tested with [errors.Is]. No operation
// retries internally; retry policy belongs to the caller.
var (
	// ErrDomain reports a parameter outside [Start, End], or an evaluation
	// attempted before any curve was fitted.
	ErrDomain = errors.New("curve3d: parameter outside the curve domain")
	// ErrFit reports a failure to build a curve from the control points.
	ErrFit = errors.New("curve3d: cannot fit the curve")
	// ErrFitQuery reports a failure to query the parameter range of an
	// already-fitted curve.
	ErrFitQuery = errors.New("curve3d: cannot query the curve parameter range")
	// ErrLength reports a failure to integrate the curve length.
	ErrLength = errors.New("curve3d: cannot compute the curve length")
	// ErrSearch reports a closest-point search failure.
	ErrSearch = errors.New("curve3d: closest-point search failed")
	// ErrNoClosestPoint reports that a search returned neither points nor
	// sub-curve intervals.
	ErrNoClosestPoint = errors.New("curve3d: no closest point found")
	// ErrSimplify reports a simplification failure.
	ErrSimplify = errors.New("curve3d: cannot simplify the curve")
)
