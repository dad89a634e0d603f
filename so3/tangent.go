package so3

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/tangram-robotics/liegroups/numutil"
)

// Below this angle the closed-form Jacobian coefficients are replaced by
// their Taylor expansions to avoid catastrophic cancellation.
const epsAngle = 1e-8

// Tangent is an element of the rotation group's Lie algebra, represented as
// an axis-angle vector whose direction is the rotation axis and whose norm is
// the rotation angle in radians.
type Tangent struct {
	r3.Vector
}

// NewTangent returns the tangent with the given axis-angle components.
func NewTangent(x, y, z float64) Tangent {
	return Tangent{r3.Vector{X: x, Y: y, Z: z}}
}

// Exp is the exponential map: the rotation obtained by rotating about the
// receiver's axis by its norm. If j is non-nil it is overwritten with the
// right Jacobian of the map.
func (t Tangent) Exp(j *mat.Dense) SO3 {
	if j != nil {
		j.CloneFrom(t.RJac())
	}

	theta := t.Norm()
	var w, k float64
	if theta < epsAngle {
		// sin(θ/2)/θ -> 1/2 as θ -> 0
		w, k = 1, 0.5
	} else {
		w, k = math.Cos(theta/2), math.Sin(theta/2)/theta
	}
	return normalize(quat.Number{Real: w, Imag: k * t.X, Jmag: k * t.Y, Kmag: k * t.Z})
}

// Scale returns the tangent multiplied by a scalar.
func (t Tangent) Scale(s float64) Tangent {
	return Tangent{t.Mul(s)}
}

// Coeffs returns the axis-angle components as a 3-vector.
func (t Tangent) Coeffs() []float64 {
	return []float64{t.X, t.Y, t.Z}
}

// RJacMat returns the right Jacobian of the exponential at the receiver as a
// fixed-size matrix.
func (t Tangent) RJacMat() mgl64.Mat3 {
	a, b := jacTerms(t.Norm())
	return jacSum(numutil.Skew(t.Vector), -a, b)
}

// LJacMat returns the left Jacobian of the exponential at the receiver as a
// fixed-size matrix.
func (t Tangent) LJacMat() mgl64.Mat3 {
	a, b := jacTerms(t.Norm())
	return jacSum(numutil.Skew(t.Vector), a, b)
}

// RJacInvMat returns the inverse of the right Jacobian as a fixed-size matrix.
func (t Tangent) RJacInvMat() mgl64.Mat3 {
	return jacSum(numutil.Skew(t.Vector), 0.5, jacInvTerm(t.Norm()))
}

// LJacInvMat returns the inverse of the left Jacobian as a fixed-size matrix.
func (t Tangent) LJacInvMat() mgl64.Mat3 {
	return jacSum(numutil.Skew(t.Vector), -0.5, jacInvTerm(t.Norm()))
}

// RJac returns the right Jacobian of the exponential at the receiver.
func (t Tangent) RJac() *mat.Dense {
	return numutil.Mat3ToDense(t.RJacMat())
}

// LJac returns the left Jacobian of the exponential at the receiver.
func (t Tangent) LJac() *mat.Dense {
	return numutil.Mat3ToDense(t.LJacMat())
}

// RJacInv returns the inverse of the right Jacobian.
func (t Tangent) RJacInv() *mat.Dense {
	return numutil.Mat3ToDense(t.RJacInvMat())
}

// LJacInv returns the inverse of the left Jacobian.
func (t Tangent) LJacInv() *mat.Dense {
	return numutil.Mat3ToDense(t.LJacInvMat())
}

// jacTerms returns the coefficients a = (1-cosθ)/θ² and b = (θ-sinθ)/θ³ of
// the rotation Jacobians J = I ± a·[ω]x + b·[ω]x².
func jacTerms(theta float64) (a, b float64) {
	if theta < epsAngle {
		tsq := theta * theta
		return 0.5 - tsq/24, 1.0/6 - tsq/120
	}
	tsq := theta * theta
	return (1 - math.Cos(theta)) / tsq, (theta - math.Sin(theta)) / (tsq * theta)
}

// jacInvTerm returns the coefficient 1/θ² - (1+cosθ)/(2θ·sinθ) of the
// inverse rotation Jacobians Jinv = I ± ½[ω]x + c·[ω]x².
func jacInvTerm(theta float64) float64 {
	if theta < epsAngle {
		return 1.0/12 + theta*theta/720
	}
	return 1/(theta*theta) - (1+math.Cos(theta))/(2*theta*math.Sin(theta))
}

// jacSum assembles I + alpha·W + beta·W² for a skew matrix W.
func jacSum(w mgl64.Mat3, alpha, beta float64) mgl64.Mat3 {
	return mgl64.Ident3().Add(w.Mul(alpha)).Add(w.Mul3(w).Mul(beta))
}
