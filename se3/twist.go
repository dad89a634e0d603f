package se3

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/tangram-robotics/liegroups/numutil"
	"github.com/tangram-robotics/liegroups/so3"
)

const epsAngle = 1e-8

// Twist is an element of the rigid-motion group's Lie algebra: a linear
// velocity paired with an angular (axis-angle) velocity.
type Twist struct {
	Linear  r3.Vector
	Angular r3.Vector
}

// NewTwist returns the twist with the given linear and angular parts.
func NewTwist(linear, angular r3.Vector) Twist {
	return Twist{Linear: linear, Angular: angular}
}

// TwistFromCoeffs builds a twist from a 6-vector ordered linear-first.
func TwistFromCoeffs(c []float64) (Twist, error) {
	if len(c) != 6 {
		return Twist{}, errTwistCoeffs(len(c))
	}
	return Twist{
		Linear:  r3.Vector{X: c[0], Y: c[1], Z: c[2]},
		Angular: r3.Vector{X: c[3], Y: c[4], Z: c[5]},
	}, nil
}

// Exp is the exponential map: the rigid motion whose rotation is the
// exponential of the angular part and whose translation is the left Jacobian
// of the angular part applied to the linear part. If j is non-nil it is
// overwritten with the right Jacobian of the map.
func (t Twist) Exp(j *mat.Dense) SE3 {
	if j != nil {
		j.CloneFrom(t.RJac())
	}
	w := so3.Tangent{Vector: t.Angular}
	return SE3{
		t: numutil.Mat3Vec(w.LJacMat(), t.Linear),
		r: w.Exp(nil),
	}
}

// Scale returns the twist multiplied by a scalar.
func (t Twist) Scale(s float64) Twist {
	return Twist{Linear: t.Linear.Mul(s), Angular: t.Angular.Mul(s)}
}

// Coeffs returns the twist as a 6-vector ordered linear-first.
func (t Twist) Coeffs() []float64 {
	return []float64{t.Linear.X, t.Linear.Y, t.Linear.Z, t.Angular.X, t.Angular.Y, t.Angular.Z}
}

// RJac returns the right Jacobian of the exponential at the receiver.
func (t Twist) RJac() *mat.Dense {
	neg := t.Scale(-1)
	w := so3.Tangent{Vector: t.Angular}
	return jacBlocks(w.RJacMat(), qBlock(neg.Linear, neg.Angular))
}

// LJac returns the left Jacobian of the exponential at the receiver.
func (t Twist) LJac() *mat.Dense {
	w := so3.Tangent{Vector: t.Angular}
	return jacBlocks(w.LJacMat(), qBlock(t.Linear, t.Angular))
}

// RJacInv returns the inverse of the right Jacobian.
func (t Twist) RJacInv() *mat.Dense {
	neg := t.Scale(-1)
	w := so3.Tangent{Vector: t.Angular}
	return jacInvBlocks(w.RJacInvMat(), qBlock(neg.Linear, neg.Angular))
}

// LJacInv returns the inverse of the left Jacobian.
func (t Twist) LJacInv() *mat.Dense {
	w := so3.Tangent{Vector: t.Angular}
	return jacInvBlocks(w.LJacInvMat(), qBlock(t.Linear, t.Angular))
}

// jacBlocks assembles the block-triangular Jacobian [[j, q], [0, j]].
func jacBlocks(j, q mgl64.Mat3) *mat.Dense {
	d := mat.NewDense(6, 6, nil)
	numutil.SetBlock3(d, 0, 0, j)
	numutil.SetBlock3(d, 0, 3, q)
	numutil.SetBlock3(d, 3, 3, j)
	return d
}

// jacInvBlocks assembles [[jinv, -jinv·q·jinv], [0, jinv]], the inverse of
// the block-triangular Jacobian built from the rotation Jacobian inverse.
func jacInvBlocks(jinv, q mgl64.Mat3) *mat.Dense {
	d := mat.NewDense(6, 6, nil)
	numutil.SetBlock3(d, 0, 0, jinv)
	numutil.SetBlock3(d, 0, 3, jinv.Mul3(q).Mul3(jinv).Mul(-1))
	numutil.SetBlock3(d, 3, 3, jinv)
	return d
}

// qBlock is the coupling block of the rigid-motion left Jacobian, the
// linearization of the translation part of the exponential with respect to
// the angular part. See Barfoot, "State Estimation for Robotics", eq. 7.86.
func qBlock(rho, omega r3.Vector) mgl64.Mat3 {
	p := numutil.Skew(rho)
	w := numutil.Skew(omega)
	theta := omega.Norm()

	var b, c, d float64
	if theta < epsAngle {
		b, c, d = 1.0/6, -1.0/24, 1.0/120
	} else {
		tsq := theta * theta
		tc := tsq * theta
		sin, cos := math.Sin(theta), math.Cos(theta)
		b = (theta - sin) / tc
		c = (1 - tsq/2 - cos) / (tsq * tsq)
		e := (theta - sin - tc/6) / (tc * tsq)
		d = -0.5 * (c - 3*e)
	}

	wp := w.Mul3(p)
	pw := p.Mul3(w)
	wpw := wp.Mul3(w)

	q := p.Mul(0.5)
	q = q.Add(wp.Add(pw).Add(wpw).Mul(b))
	q = q.Sub(w.Mul3(wp).Add(pw.Mul3(w)).Sub(wpw.Mul(3)).Mul(c))
	q = q.Add(wpw.Mul3(w).Add(w.Mul3(wpw)).Mul(d))
	return q
}
