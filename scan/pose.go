package scan

import (
	"math"
	"time"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a rigid-body transform: a rotation followed by a translation.
// Rotation must be a unit quaternion.
type Pose struct {
	Translation r3.Vector
	Rotation    quat.Number
}

// IdentityPose returns the pose that maps every point to itself.
func IdentityPose() Pose {
	return Pose{Rotation: quat.Number{Real: 1}}
}

// YawPose returns the pose rotating by yaw about the z axis, then
// translating.
func YawPose(translation r3.Vector, yaw float64) Pose {
	sin, cos := math.Sincos(0.5 * yaw)
	return Pose{
		Translation: translation,
		Rotation:    quat.Number{Real: cos, Kmag: sin},
	}
}

// Transform applies the pose to a point.
func (p Pose) Transform(v r3.Vector) r3.Vector {
	rotated := quat.Mul(quat.Mul(p.Rotation, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(p.Rotation))
	return r3.Vector{
		X: rotated.Imag + p.Translation.X,
		Y: rotated.Jmag + p.Translation.Y,
		Z: rotated.Kmag + p.Translation.Z,
	}
}

// PoseProvider resolves the pose of the scanner at a point in time, e.g.
// from an odometry buffer. It reports false when no pose is available for
// t; providers may extrapolate beyond their buffered range when
// allowExtrapolation is set.
type PoseProvider interface {
	Get(t time.Time, allowExtrapolation bool) (Pose, bool)
}
