package curve3d

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func TestClosestPointOnLine(t *testing.T) {
	c := mustFit(t, 0.01, 3, []r3.Vector{{X: 0}, {X: 10}})
	param, err := c.ClosestPoint(r3.Vector{X: 5, Y: 1}, 0.001)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := c.PointAt(param)
	if err != nil {
		t.Fatal(err)
	}
	if d := pt.Sub(r3.Vector{X: 5}).Norm(); d > 0.001 {
		t.Errorf("closest point %v is %g away from (5, 0, 0)", pt, d)
	}
}

func TestClosestPointsInterval(t *testing.T) {
	c := mustFit(t, 0.01, 3, []r3.Vector{{X: 0}, {X: 10}})
	// With a 1.0 tolerance and the target 0.5 off the line, the curve stays
	// within tolerance over a sub-curve around the foot point; the minimum
	// inside it is not isolated.
	params, intervals, err := c.ClosestPoints(r3.Vector{X: 5, Y: 0.5}, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(params) != 0 {
		t.Errorf("got isolated points %v inside a within-tolerance interval", params)
	}
	if len(intervals) != 1 {
		t.Fatalf("got %d intervals, want 1", len(intervals))
	}
	half := math.Sqrt(1.0 - 0.25)
	if got, want := intervals[0][0], 5-half; math.Abs(got-want) > 1e-3 {
		t.Errorf("interval start: got %g, want %g", got, want)
	}
	if got, want := intervals[0][1], 5+half; math.Abs(got-want) > 1e-3 {
		t.Errorf("interval end: got %g, want %g", got, want)
	}

	// The convenience search falls back to the interval start.
	param, err := c.ClosestPoint(r3.Vector{X: 5, Y: 0.5}, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(param-(5-half)) > 1e-3 {
		t.Errorf("got %g, want the interval start %g", param, 5-half)
	}
}

func TestClosestPointEndOfCurve(t *testing.T) {
	c := mustFit(t, 0.01, 3, []r3.Vector{{X: 0}, {X: 10}})
	// Target beyond the end: the boundary is the closest point.
	param, err := c.ClosestPoint(r3.Vector{X: 12, Y: 1}, 0.001)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(param-c.End()) > 1e-6 {
		t.Errorf("got %g, want the domain end %g", param, c.End())
	}
}

func TestLocalClosestPointWindow(t *testing.T) {
	c := mustFit(t, 0.01, 3, []r3.Vector{{X: 0}, {X: 10}})

	param, err := c.LocalClosestPoint(r3.Vector{X: 5, Y: 1}, 4.5, 4, 7, 0.001)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(param-5) > 0.001 {
		t.Errorf("got %g, want 5", param)
	}

	// The foot point lies outside the window; the search must stay inside
	// and settle on the window boundary.
	param, err = c.LocalClosestPoint(r3.Vector{X: 5, Y: 1}, 6.5, 6, 8, 0.001)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(param-6) > 0.001 {
		t.Errorf("got %g, want the window start 6", param)
	}

	if _, err := c.LocalClosestPoint(r3.Vector{X: 5, Y: 1}, 5, 7, 4, 0.001); !errors.Is(err, ErrSearch) {
		t.Errorf("inverted window: got %v, want ErrSearch", err)
	}
}

func TestSearchUnfitted(t *testing.T) {
	c := New(0.01, 3, nil)
	if _, _, err := c.ClosestPoints(r3.Vector{}, 0.1); !errors.Is(err, ErrSearch) {
		t.Errorf("ClosestPoints: got %v, want ErrSearch", err)
	}
	if _, err := c.LocalClosestPoint(r3.Vector{}, 0, 0, 1, 0.1); !errors.Is(err, ErrSearch) {
		t.Errorf("LocalClosestPoint: got %v, want ErrSearch", err)
	}
}

func TestSimplifyCollinear(t *testing.T) {
	var pts []r3.Vector
	for i := 0; i <= 5; i++ {
		pts = append(pts, r3.Vector{X: float64(i)})
	}
	c := mustFit(t, 0.01, 3, pts)
	start, end := c.Start(), c.End()

	maxErr, err := c.Simplify(0.01)
	if err != nil {
		t.Fatal(err)
	}
	for axis, e := range maxErr {
		if e > 0.01 {
			t.Errorf("axis %d error %g exceeds the requested tolerance", axis, e)
		}
	}
	if got := c.Fitted().NumControl(); got >= len(pts) {
		t.Errorf("simplification kept %d control points, want fewer than %d", got, len(pts))
	}
	if c.Start() != start || c.End() != end {
		t.Errorf("domain changed to [%g, %g], want [%g, %g]", c.Start(), c.End(), start, end)
	}

	// The simplified curve still is the same line.
	p, err := c.PointAt(2.5)
	if err != nil {
		t.Fatal(err)
	}
	if d := p.Sub(r3.Vector{X: 2.5}).Norm(); d > 0.01 {
		t.Errorf("simplified curve deviates by %g at the midpoint", d)
	}
}

func TestSimplifyUnfitted(t *testing.T) {
	c := New(0.01, 3, nil)
	if _, err := c.Simplify(0.1); !errors.Is(err, ErrSimplify) {
		t.Errorf("got %v, want ErrSimplify", err)
	}
}
