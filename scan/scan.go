// Package scan converts laser range scans into 3D point sets, optionally
// compensating for scanner motion with per-beam poses. The resulting point
// sets are typical inputs for curve fitting in package curve3d.
package scan

import (
	"errors"
	"math"
	"time"

	"github.com/golang/geo/r3"
)

// Special range values. A range below EndRangeErrors is not a measurement
// but a report of why none is available.
const (
	TooFar           uint32 = 1
	TooNear          uint32 = 2
	MeasurementError uint32 = 3
	OtherRangeErrors uint32 = 4
	MaxRangeError    uint32 = 5
	EndRangeErrors   uint32 = 6
)

// Scan is a single revolution of a scanning laser range finder.
type Scan struct {
	// Time is the timestamp at which the laser passed the zero step (the
	// step at the back of the device, distinct from measurement 0).
	Time time.Time
	// StartAngle is the angle of the first range reading, in radians. Zero
	// is at the front of the device, turning counter-clockwise.
	StartAngle float64
	// AngularResolution is the angle between two consecutive readings, in
	// radians.
	AngularResolution float64
	// Speed is the rotation speed of the laser beam, in radians per second.
	Speed float64
	// Ranges holds the distances to obstacles, in millimetres.
	Ranges []uint32
	// MinRange and MaxRange bound the valid measurements, in millimetres.
	MinRange uint32
	MaxRange uint32
	// Remission holds the non-normalised remission value per beam, if the
	// device provides one.
	Remission []float32
}

// Reset clears the sample for reuse.
func (s *Scan) Reset() {
	s.Speed = 0
	s.StartAngle = 0
	s.AngularResolution = 0
	s.MinRange = 0
	s.MaxRange = 0
	s.Ranges = s.Ranges[:0]
	s.Remission = s.Remission[:0]
}

// IsRangeValid reports whether r is a usable measurement.
func (s *Scan) IsRangeValid(r uint32) bool {
	return r >= s.MinRange && r <= s.MaxRange && r >= EndRangeErrors
}

// ValidBeam reports whether beam i carries a usable measurement. It panics
// if i is out of range.
func (s *Scan) ValidBeam(i int) bool {
	return s.IsRangeValid(s.Ranges[i])
}

// PointFromBeam converts beam i to a point in the sensor frame (x forward,
// y left, z up), in metres. It reports false for invalid beams.
func (s *Scan) PointFromBeam(i int) (r3.Vector, bool) {
	if !s.ValidBeam(i) {
		return r3.Vector{}, false
	}
	sin, cos := math.Sincos(s.StartAngle + float64(i)*s.AngularResolution)
	d := float64(s.Ranges[i]) / 1000.0
	return r3.Vector{X: d * cos, Y: d * sin}, true
}

// PointCloud converts the scan into a point cloud transformed by pose. With
// the identity pose the points stay in the sensor coordinate system.
//
// When skipInvalid is false, invalid beams produce all-NaN points instead
// of being dropped, so the association with the Remission slice stays
// index-aligned.
func (s *Scan) PointCloud(pose Pose, skipInvalid bool) []r3.Vector {
	points := make([]r3.Vector, 0, len(s.Ranges))
	for i := range s.Ranges {
		if pt, ok := s.PointFromBeam(i); ok {
			points = append(points, pose.Transform(pt))
		} else if !skipInvalid {
			nan := math.NaN()
			points = append(points, r3.Vector{X: nan, Y: nan, Z: nan})
		}
	}
	return points
}

// BeamTime returns the capture time of beam i for a scan whose zero step
// passed at start, derived from the start angle, the angular resolution and
// the rotation speed.
func (s *Scan) BeamTime(start time.Time, i int) time.Time {
	offset := (s.StartAngle/s.AngularResolution + float64(i)) * (s.AngularResolution / s.Speed)
	return start.Add(time.Duration(offset * float64(time.Second)))
}

// PointCloudInterpolated converts the scan into a point cloud like
// [Scan.PointCloud], but compensates for scanner motion: each beam is
// transformed by the pose the provider reports for that beam's capture
// time. Beams whose pose cannot be resolved count as invalid.
//
// It fails when the scan carries no angular resolution or rotation speed,
// as the per-beam times are undefined then.
func (s *Scan) PointCloudInterpolated(provider PoseProvider, start time.Time, skipInvalid bool) ([]r3.Vector, error) {
	if s.AngularResolution == 0 || s.Speed == 0 {
		return nil, errors.New("scan: angular resolution and speed must be set for interpolated conversion")
	}
	points := make([]r3.Vector, 0, len(s.Ranges))
	for i := range s.Ranges {
		pt, ok := s.PointFromBeam(i)
		if ok {
			var pose Pose
			if pose, ok = provider.Get(s.BeamTime(start, i), false); ok {
				points = append(points, pose.Transform(pt))
			}
		}
		if !ok && !skipInvalid {
			nan := math.NaN()
			points = append(points, r3.Vector{X: nan, Y: nan, Z: nan})
		}
	}
	return points, nil
}
