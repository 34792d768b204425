package bspline

import "fmt"

// Status reports the outcome of a backend operation, following the
// convention of classic spline kernels: zero is success, positive values
// are warnings (a usable result was produced), and negative values are
// errors (no usable result).
type Status int

const (
	StatusOK Status = 0

	// Warnings.
	StatusNoConvergence   Status = 1 // iteration stopped at the best candidate found
	StatusToleranceNotMet Status = 2 // result exceeds the requested tolerance

	// Errors.
	StatusDegenerate  Status = -1 // not enough distinct points to define a curve
	StatusBadArgument Status = -2 // argument outside the valid range
	StatusSingular    Status = -3 // interpolation system could not be solved
)

// Warning reports whether the status is a warning.
func (s Status) Warning() bool { return s > 0 }

// Err reports whether the status is an error.
func (s Status) Err() bool { return s < 0 }

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoConvergence:
		return "no convergence"
	case StatusToleranceNotMet:
		return "tolerance not met"
	case StatusDegenerate:
		return "degenerate input"
	case StatusBadArgument:
		return "bad argument"
	case StatusSingular:
		return "singular system"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}
