// Package so3 implements the group of 3D rotations parameterized by unit
// quaternions, together with its axis-angle tangent space, exponential and
// logarithmic maps, and the Jacobians of each operation.
package so3

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/tangram-robotics/liegroups/manifold"
	"github.com/tangram-robotics/liegroups/numutil"
)

// SO3 is a rotation in 3D space backed by a unit quaternion. The zero value
// is not a valid rotation; use Identity or one of the constructors.
type SO3 struct {
	q quat.Number
}

// Identity returns the identity rotation.
func Identity() SO3 {
	return SO3{quat.Number{Real: 1}}
}

// New returns the rotation for the given quaternion components, normalized to
// unit length. A zero quaternion yields the identity rotation.
func New(w, x, y, z float64) SO3 {
	return normalize(quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z})
}

// FromQuat returns the rotation for q, normalized to unit length.
func FromQuat(q quat.Number) SO3 {
	return normalize(q)
}

// FromAxisAngle returns the rotation about v's direction by v's norm, in
// radians.
func FromAxisAngle(v r3.Vector) SO3 {
	return Tangent{v}.Exp(nil)
}

// FromRotationMatrix returns the rotation represented by the given proper
// rotation matrix.
func FromRotationMatrix(m mgl64.Mat3) SO3 {
	q := mgl64.Mat4ToQuat(m.Mat4())
	return New(q.W, q.V.X(), q.V.Y(), q.V.Z())
}

func normalize(q quat.Number) SO3 {
	n := quat.Abs(q)
	if n == 0 {
		return Identity()
	}
	return SO3{quat.Scale(1/n, q)}
}

// Quat returns the backing unit quaternion.
func (r SO3) Quat() quat.Number {
	return r.q
}

// RotationMatrix returns the receiver as a 3x3 rotation matrix.
func (r SO3) RotationMatrix() mgl64.Mat3 {
	return mgl64.Quat{W: r.q.Real, V: mgl64.Vec3{r.q.Imag, r.q.Jmag, r.q.Kmag}}.Mat4().Mat3()
}

// Transform returns the receiver as a homogeneous transform with zero
// translation.
func (r SO3) Transform() mgl64.Mat4 {
	return r.RotationMatrix().Mat4()
}

// Compose returns the rotation applying other first and the receiver second.
// jSelf and jOther, when non-nil, receive the Jacobians of the result with
// respect to right perturbations of each operand.
func (r SO3) Compose(other SO3, jSelf, jOther *mat.Dense) SO3 {
	if jSelf != nil {
		jSelf.CloneFrom(numutil.Mat3ToDense(other.RotationMatrix().Transpose()))
	}
	if jOther != nil {
		jOther.CloneFrom(numutil.Eye(3))
	}
	return SO3{quat.Mul(r.q, other.q)}
}

// Inverse returns the opposite rotation. j, when non-nil, receives the
// Jacobian of the inverse, the negated adjoint.
func (r SO3) Inverse(j *mat.Dense) SO3 {
	if j != nil {
		j.Scale(-1, r.Adjoint())
	}
	return SO3{quat.Conj(r.q)}
}

// Lift is the logarithmic map: the axis-angle tangent whose Exp reproduces
// the receiver. Of the two antipodal quaternions representing the rotation,
// the one with non-negative scalar part is used, so the returned angle is
// always in [0, π]. j, when non-nil, receives the Jacobian of the map, the
// inverse of the right Jacobian at the result.
func (r SO3) Lift(j *mat.Dense) Tangent {
	q := r.q
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}

	denom := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	angle := 2 * math.Atan2(denom, q.Real)

	var tan Tangent
	if denom < epsAngle {
		tan = NewTangent(2*q.Imag, 2*q.Jmag, 2*q.Kmag)
	} else {
		tan = NewTangent(angle*q.Imag/denom, angle*q.Jmag/denom, angle*q.Kmag/denom)
	}

	if j != nil {
		j.CloneFrom(tan.RJacInv())
	}
	return tan
}

// Adjoint returns the adjoint of the receiver, which for a rotation is its
// rotation matrix.
func (r SO3) Adjoint() *mat.Dense {
	return numutil.Mat3ToDense(r.RotationMatrix())
}

// Act rotates v. jVec, when non-nil, receives the Jacobian with respect to
// the vector, the rotation matrix. The Jacobian with respect to the group
// element has no implementation; requesting it returns ErrNotImplemented.
func (r SO3) Act(v r3.Vector, jElem, jVec *mat.Dense) (r3.Vector, error) {
	if jElem != nil {
		return r3.Vector{}, manifold.ErrNotImplemented
	}
	if jVec != nil {
		jVec.CloneFrom(r.Adjoint())
	}
	return numutil.Mat3Vec(r.RotationMatrix(), v), nil
}

// Rplus retracts a tangent increment onto the manifold at the receiver.
func (r SO3) Rplus(delta Tangent) SO3 {
	return r.Compose(delta.Exp(nil), nil, nil)
}

// Rminus returns the tangent increment from other to the receiver.
func (r SO3) Rminus(other SO3) Tangent {
	return other.Inverse(nil).Compose(r, nil, nil).Lift(nil)
}

// Identity returns the group identity element.
func (r SO3) Identity() SO3 {
	return Identity()
}

// SetIdentity resets the receiver to the identity rotation and returns it for
// chaining.
func (r *SO3) SetIdentity() *SO3 {
	r.q = quat.Number{Real: 1}
	return r
}

// Coeffs returns the quaternion coefficients in [x y z w] order.
func (r SO3) Coeffs() []float64 {
	return []float64{r.q.Imag, r.q.Jmag, r.q.Kmag, r.q.Real}
}

// ApproxEqual reports whether two rotations agree within tol, accounting for
// the quaternion double cover.
func (r SO3) ApproxEqual(other SO3, tol float64) bool {
	q, p := r.q, other.q
	if q.Real*p.Real+q.Imag*p.Imag+q.Jmag*p.Jmag+q.Kmag*p.Kmag < 0 {
		p = quat.Scale(-1, p)
	}
	d := quat.Sub(q, p)
	return quat.Abs(d) < tol
}

var (
	_ manifold.Element[SO3, Tangent] = SO3{}
	_ manifold.Tangent[Tangent, SO3] = Tangent{}
)
