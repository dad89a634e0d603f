// Package curve provides curve fitting over trajectories of Lie group
// elements, written only against the retraction contract so that any group in
// this library (or a future one) can be smoothed with it.
package curve

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/tangram-robotics/liegroups/manifold"
)

// Contract violations reported by DeCasteljau. They are aggregated, so a call
// with several malformed arguments reports all of them at once.
var (
	ErrTrajectoryTooShort = errors.New("trajectory must contain more than two elements")
	ErrDegree             = errors.New("degree must be at least 2 and at most the trajectory length")
	ErrInterpSteps        = errors.New("interpolation step count must be positive")
)

// DeCasteljau fits a Bézier-like curve of the given degree through a
// discretized trajectory and returns a denser, smoother trajectory sampled
// from it. The classical recursion is run with the Euclidean affine
// combination replaced by its manifold equivalent: a point moves toward the
// next by a tangent-space fraction of their local difference.
//
// The trajectory is windowed into segments of degree consecutive control
// points, each advancing degree-1 points past the previous. kInterp samples
// are drawn per segment when degree is 2, kInterp·degree otherwise, keeping
// the sampling density visually uniform as the curve order grows. With
// closed set, leftover points past the last full window form one extra
// segment that wraps around to the start of the trajectory.
//
// Concrete type parameters select the group at compile time, e.g.
// DeCasteljau[se3.SE3, se3.Twist](trajectory, 3, 10, false).
func DeCasteljau[E manifold.Point[E, T], T manifold.Increment[T]](
	trajectory []E,
	degree, kInterp uint,
	closed bool,
) ([]E, error) {
	size := len(trajectory)

	var err error
	if size <= 2 {
		err = multierr.Append(err, errors.Wrapf(ErrTrajectoryTooShort, "got %d", size))
	}
	if degree < 2 || degree > uint(size) {
		err = multierr.Append(err, errors.Wrapf(ErrDegree, "degree %d over %d points", degree, size))
	}
	if kInterp == 0 {
		err = multierr.Append(err, ErrInterpSteps)
	}
	if err != nil {
		return nil, err
	}

	d := int(degree)
	nSegments := (size-d)/(d-1) + 1

	segments := make([][]E, 0, nSegments+1)
	for s := 0; s < nSegments; s++ {
		start := s * (d - 1)
		segments = append(segments, trajectory[start:start+d])
	}

	// Close the curve over the points left past the last full window,
	// completing the final segment from the start of the trajectory.
	lastIdx := nSegments * (d - 1)
	if closed && lastIdx <= size-1 {
		leftover := size - 1 - lastIdx
		wrap := make([]E, 0, d)
		wrap = append(wrap, trajectory[lastIdx:]...)
		wrap = append(wrap, trajectory[:d-leftover-1]...)
		segments = append(segments, wrap)
	}

	steps := int(kInterp)
	if d != 2 {
		steps *= d
	}

	fitted := make([]E, 0, len(segments)*steps)
	qs := make([]E, d)
	for _, seg := range segments {
		for s := 1; s <= steps; s++ {
			t := float64(s) / float64(steps)

			copy(qs, seg)
			for active := d; active > 1; active-- {
				for q := 0; q < active-1; q++ {
					qs[q] = qs[q].Rplus(qs[q+1].Rminus(qs[q]).Scale(t))
				}
			}
			fitted = append(fitted, qs[0])
		}
	}

	return fitted, nil
}
