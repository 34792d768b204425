package scan

import (
	"math"
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScan() *Scan {
	return &Scan{
		AngularResolution: math.Pi / 2,
		Speed:             math.Pi,
		MinRange:          30,
		MaxRange:          10000,
		Ranges:            []uint32{2000, 3000},
	}
}

func TestIsRangeValid(t *testing.T) {
	s := testScan()
	assert.True(t, s.IsRangeValid(100))
	assert.True(t, s.IsRangeValid(10000))
	assert.False(t, s.IsRangeValid(20), "below the minimum range")
	assert.False(t, s.IsRangeValid(20000), "beyond the maximum range")
	assert.False(t, s.IsRangeValid(TooFar))

	// Error codes stay invalid even when the minimum range would admit them.
	s.MinRange = 0
	assert.False(t, s.IsRangeValid(MeasurementError))
	assert.True(t, s.IsRangeValid(EndRangeErrors))
}

func TestPointFromBeam(t *testing.T) {
	s := testScan()

	p, ok := s.PointFromBeam(0)
	require.True(t, ok)
	assert.InDelta(t, 2, p.X, 1e-12)
	assert.InDelta(t, 0, p.Y, 1e-12)

	p, ok = s.PointFromBeam(1)
	require.True(t, ok)
	assert.InDelta(t, 0, p.X, 1e-12)
	assert.InDelta(t, 3, p.Y, 1e-12)

	s.StartAngle = math.Pi
	p, ok = s.PointFromBeam(0)
	require.True(t, ok)
	assert.InDelta(t, -2, p.X, 1e-12)
}

func TestPointCloudSkipsOrMarksInvalid(t *testing.T) {
	s := testScan()
	s.Ranges = []uint32{2000, TooFar, 3000}
	s.Remission = []float32{0.5, 0, 0.7}

	skipped := s.PointCloud(IdentityPose(), true)
	require.Len(t, skipped, 2)

	// Without skipping, invalid beams become NaN points so the cloud stays
	// index-aligned with the remission values.
	kept := s.PointCloud(IdentityPose(), false)
	require.Len(t, kept, len(s.Remission))
	assert.False(t, math.IsNaN(kept[0].X))
	assert.True(t, math.IsNaN(kept[1].X))
	assert.True(t, math.IsNaN(kept[1].Y))
	assert.False(t, math.IsNaN(kept[2].X))
}

func TestYawPoseTransform(t *testing.T) {
	pose := YawPose(r3.Vector{X: 1, Y: 2}, math.Pi/2)
	got := pose.Transform(r3.Vector{X: 1})
	assert.InDelta(t, 1, got.X, 1e-12)
	assert.InDelta(t, 3, got.Y, 1e-12)
	assert.InDelta(t, 0, got.Z, 1e-12)

	id := IdentityPose().Transform(r3.Vector{X: 1, Y: 2, Z: 3})
	assert.Equal(t, r3.Vector{X: 1, Y: 2, Z: 3}, id)
}

func TestBeamTime(t *testing.T) {
	s := &Scan{
		StartAngle:        0.5,
		AngularResolution: 0.5,
		Speed:             1.0,
	}
	start := time.Unix(100, 0)
	// The zero step is half a beam spacing before measurement 0.
	assert.Equal(t, start.Add(500*time.Millisecond), s.BeamTime(start, 0))
	assert.Equal(t, start.Add(time.Second), s.BeamTime(start, 1))
}

// rampProvider moves the scanner along +x at 1 m/s and has no pose beyond
// its buffered horizon.
type rampProvider struct {
	start   time.Time
	horizon time.Duration
}

func (p rampProvider) Get(t time.Time, allowExtrapolation bool) (Pose, bool) {
	d := t.Sub(p.start)
	if d > p.horizon && !allowExtrapolation {
		return Pose{}, false
	}
	return YawPose(r3.Vector{X: d.Seconds()}, 0), true
}

func TestPointCloudInterpolated(t *testing.T) {
	s := &Scan{
		AngularResolution: 0.5,
		Speed:             1.0,
		MinRange:          30,
		MaxRange:          10000,
		Ranges:            []uint32{1000, 1000},
	}
	start := time.Unix(100, 0)
	provider := rampProvider{start: start, horizon: time.Minute}

	points, err := s.PointCloudInterpolated(provider, start, true)
	require.NoError(t, err)
	require.Len(t, points, 2)
	// Beam i sees the obstacle 1 m ahead of the pose at its capture time,
	// i.e. at x = 1 + 0.5*i with StartAngle 0.
	assert.InDelta(t, 1.0, points[0].X, 1e-9)
	assert.InDelta(t, 1.5, points[1].X, 1e-9)
}

func TestPointCloudInterpolatedUnresolvedPose(t *testing.T) {
	s := &Scan{
		AngularResolution: 0.5,
		Speed:             1.0,
		MinRange:          30,
		MaxRange:          10000,
		Ranges:            []uint32{1000, 1000},
	}
	start := time.Unix(100, 0)
	// Only the first beam's capture time falls inside the pose buffer.
	provider := rampProvider{start: start, horizon: 600 * time.Millisecond}

	points, err := s.PointCloudInterpolated(provider, start, true)
	require.NoError(t, err)
	assert.Len(t, points, 1)

	points, err = s.PointCloudInterpolated(provider, start, false)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.True(t, math.IsNaN(points[1].X))
}

func TestPointCloudInterpolatedRequiresTiming(t *testing.T) {
	s := testScan()
	s.Speed = 0
	_, err := s.PointCloudInterpolated(rampProvider{}, time.Unix(0, 0), true)
	assert.Error(t, err)

	s = testScan()
	s.AngularResolution = 0
	_, err = s.PointCloudInterpolated(rampProvider{}, time.Unix(0, 0), true)
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	s := testScan()
	s.Remission = []float32{1, 2}
	s.Reset()
	assert.Zero(t, s.Speed)
	assert.Zero(t, s.StartAngle)
	assert.Zero(t, s.AngularResolution)
	assert.Zero(t, s.MinRange)
	assert.Zero(t, s.MaxRange)
	assert.Empty(t, s.Ranges)
	assert.Empty(t, s.Remission)
}
