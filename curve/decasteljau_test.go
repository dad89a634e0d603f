package curve

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/test"

	"github.com/tangram-robotics/liegroups/se3"
	"github.com/tangram-robotics/liegroups/so3"
)

const tol = 1e-9

func line(n int) []se3.SE3 {
	trajectory := make([]se3.SE3, 0, n)
	for i := 0; i < n; i++ {
		trajectory = append(trajectory, se3.New(r3.Vector{X: float64(i)}, so3.Identity()))
	}
	return trajectory
}

func TestPreconditions(t *testing.T) {
	t.Run("short trajectory", func(t *testing.T) {
		out, err := DeCasteljau[se3.SE3, se3.Twist](line(2), 2, 1, false)
		test.That(t, out, test.ShouldBeNil)
		test.That(t, errors.Is(err, ErrTrajectoryTooShort), test.ShouldBeTrue)
	})
	t.Run("degree too large", func(t *testing.T) {
		out, err := DeCasteljau[se3.SE3, se3.Twist](line(4), 5, 1, false)
		test.That(t, out, test.ShouldBeNil)
		test.That(t, errors.Is(err, ErrDegree), test.ShouldBeTrue)
	})
	t.Run("degree too small", func(t *testing.T) {
		_, err := DeCasteljau[se3.SE3, se3.Twist](line(4), 1, 1, false)
		test.That(t, errors.Is(err, ErrDegree), test.ShouldBeTrue)
	})
	t.Run("zero interpolation steps", func(t *testing.T) {
		out, err := DeCasteljau[se3.SE3, se3.Twist](line(4), 2, 0, false)
		test.That(t, out, test.ShouldBeNil)
		test.That(t, errors.Is(err, ErrInterpSteps), test.ShouldBeTrue)
	})
	t.Run("violations are aggregated", func(t *testing.T) {
		_, err := DeCasteljau[se3.SE3, se3.Twist](line(1), 4, 0, false)
		test.That(t, errors.Is(err, ErrTrajectoryTooShort), test.ShouldBeTrue)
		test.That(t, errors.Is(err, ErrDegree), test.ShouldBeTrue)
		test.That(t, errors.Is(err, ErrInterpSteps), test.ShouldBeTrue)
		test.That(t, multierr.Errors(err), test.ShouldHaveLength, 3)
	})
}

func TestDegreeTwoReachesControlPoints(t *testing.T) {
	trajectory := line(4)

	out, err := DeCasteljau[se3.SE3, se3.Twist](trajectory, 2, 1, false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldHaveLength, 3)
	for i, got := range out {
		test.That(t, got.ApproxEqual(trajectory[i+1], tol), test.ShouldBeTrue)
	}
}

func TestDegreeTwoIsGeodesicInterpolation(t *testing.T) {
	a := se3.New(r3.Vector{}, so3.Identity())
	b := se3.New(r3.Vector{X: 2}, so3.FromAxisAngle(r3.Vector{Z: 1}))
	trajectory := []se3.SE3{a, b, a}

	out, err := DeCasteljau[se3.SE3, se3.Twist](trajectory, 2, 2, false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldHaveLength, 4)

	// Midpoint of the first segment is the halfway retraction from a to b.
	mid := a.Rplus(b.Rminus(a).Scale(0.5))
	test.That(t, out[0].ApproxEqual(mid, tol), test.ShouldBeTrue)
	test.That(t, out[1].ApproxEqual(b, tol), test.ShouldBeTrue)
}

func TestSampleCounts(t *testing.T) {
	// Five points at degree 3 give two windows; each is sampled
	// kInterp*degree times.
	out, err := DeCasteljau[se3.SE3, se3.Twist](line(5), 3, 2, false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldHaveLength, 12)
}

func TestClosedCurveWrapsAround(t *testing.T) {
	out, err := DeCasteljau[se3.SE3, se3.Twist](line(5), 3, 2, true)
	test.That(t, err, test.ShouldBeNil)
	// One wraparound segment past the two full windows.
	test.That(t, out, test.ShouldHaveLength, 18)

	// The wrap segment runs from the tail through the trajectory's start,
	// ending on the last control point borrowed from the head.
	test.That(t, out[len(out)-1].ApproxEqual(line(5)[1], tol), test.ShouldBeTrue)
}

func TestCurveEndsAtLastControlPoint(t *testing.T) {
	trajectory := []se3.SE3{
		se3.New(r3.Vector{}, so3.Identity()),
		se3.New(r3.Vector{X: 1, Y: 2}, so3.FromAxisAngle(r3.Vector{Z: 0.5})),
		se3.New(r3.Vector{X: 3, Y: 1}, so3.FromAxisAngle(r3.Vector{X: 0.2})),
	}

	out, err := DeCasteljau[se3.SE3, se3.Twist](trajectory, 3, 4, false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldHaveLength, 12)
	// At t=1 the recursion collapses onto the window's final control point.
	test.That(t, out[len(out)-1].ApproxEqual(trajectory[2], tol), test.ShouldBeTrue)
}

func TestGenericOverRotations(t *testing.T) {
	trajectory := []so3.SO3{
		so3.Identity(),
		so3.FromAxisAngle(r3.Vector{Z: 0.5}),
		so3.FromAxisAngle(r3.Vector{Z: 1.0}),
		so3.FromAxisAngle(r3.Vector{Z: 1.5}),
	}

	out, err := DeCasteljau[so3.SO3, so3.Tangent](trajectory, 2, 1, false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldHaveLength, 3)
	for i, got := range out {
		test.That(t, got.ApproxEqual(trajectory[i+1], tol), test.ShouldBeTrue)
	}
}
