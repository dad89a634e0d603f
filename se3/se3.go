// Package se3 implements the group of rigid motions in 3D space, the
// semidirect product of rotations and translations, with closed-form
// composition, inversion, logarithm, adjoint, and the Jacobians of each
// operation. The rotational block is an so3 element; the coefficient layout
// is translation-first: [x y z qx qy qz qw].
package se3

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/tangram-robotics/liegroups/manifold"
	"github.com/tangram-robotics/liegroups/numutil"
	"github.com/tangram-robotics/liegroups/so3"
)

// SE3 is a rigid motion in 3D space: a rotation followed by a translation.
// The zero value is not a valid element; use Identity or one of the
// constructors.
type SE3 struct {
	t r3.Vector
	r so3.SO3
}

// Identity returns the identity motion: zero translation, identity rotation.
func Identity() SE3 {
	return SE3{r: so3.Identity()}
}

// New returns the rigid motion with the given translation and rotation.
func New(translation r3.Vector, rotation so3.SO3) SE3 {
	return SE3{t: translation, r: rotation}
}

// FromCoeffs builds an element from a 7-vector laid out [x y z qx qy qz qw].
// The quaternion block is normalized to unit length.
func FromCoeffs(c []float64) (SE3, error) {
	if len(c) != 7 {
		return SE3{}, errors.Errorf("se3 coefficient vector must have 7 entries, got %d", len(c))
	}
	return SE3{
		t: r3.Vector{X: c[0], Y: c[1], Z: c[2]},
		r: so3.New(c[6], c[3], c[4], c[5]),
	}, nil
}

func errTwistCoeffs(n int) error {
	return errors.Errorf("se3 twist coefficient vector must have 6 entries, got %d", n)
}

// Transform returns the receiver as a 4x4 homogeneous transform with the
// rotation in the top-left block and the translation in the last column.
func (p SE3) Transform() mgl64.Mat4 {
	m := p.r.RotationMatrix().Mat4()
	m.Set(0, 3, p.t.X)
	m.Set(1, 3, p.t.Y)
	m.Set(2, 3, p.t.Z)
	return m
}

// Rotation returns the rotational block.
func (p SE3) Rotation() so3.SO3 {
	return p.r
}

// RotationMatrix returns the rotational block as a 3x3 matrix.
func (p SE3) RotationMatrix() mgl64.Mat3 {
	return p.r.RotationMatrix()
}

// Translation returns the translational block.
func (p SE3) Translation() r3.Vector {
	return p.t
}

// X returns the first translation coordinate.
func (p SE3) X() float64 { return p.t.X }

// Y returns the second translation coordinate.
func (p SE3) Y() float64 { return p.t.Y }

// Z returns the third translation coordinate.
func (p SE3) Z() float64 { return p.t.Z }

// Compose returns the rigid motion applying other first and the receiver
// second: the translation is the receiver's rotation applied to other's
// translation plus the receiver's translation, and the rotation is the
// composition of the rotational blocks. jSelf and jOther, when non-nil,
// receive the Jacobians of the result with respect to right perturbations of
// each operand; jOther is the identity under that convention.
func (p SE3) Compose(other SE3, jSelf, jOther *mat.Dense) SE3 {
	if jSelf != nil {
		jSelf.CloneFrom(other.Inverse(nil).Adjoint())
	}
	if jOther != nil {
		jOther.CloneFrom(numutil.Eye(6))
	}
	return SE3{
		t: numutil.Mat3Vec(p.RotationMatrix(), other.t).Add(p.t),
		r: p.r.Compose(other.r, nil, nil),
	}
}

// Inverse returns the opposite motion: transposed rotation, translation
// -Rᵀt. j, when non-nil, receives the Jacobian of the inverse, the negated
// adjoint.
func (p SE3) Inverse(j *mat.Dense) SE3 {
	if j != nil {
		j.Scale(-1, p.Adjoint())
	}
	rinv := p.r.Inverse(nil)
	return SE3{
		t: numutil.Mat3Vec(rinv.RotationMatrix(), p.t).Mul(-1),
		r: rinv,
	}
}

// Lift is the logarithmic map: the twist whose Exp reproduces the receiver.
// The angular part is the rotation logarithm; the linear part is the inverse
// left Jacobian of that logarithm applied to the translation. j, when
// non-nil, receives the Jacobian of the map, the inverse of the right
// Jacobian at the result.
func (p SE3) Lift(j *mat.Dense) Twist {
	w := p.r.Lift(nil)
	tan := Twist{
		Linear:  numutil.Mat3Vec(w.LJacInvMat(), p.t),
		Angular: w.Vector,
	}
	if j != nil {
		j.CloneFrom(tan.RJacInv())
	}
	return tan
}

// Adjoint returns the 6x6 adjoint of the receiver: rotation blocks on the
// diagonal and skew(translation)·rotation coupling the angular part into the
// linear part. With the linear-first twist ordering the coupling block sits
// top-right and the bottom-left block is zero.
func (p SE3) Adjoint() *mat.Dense {
	rot := p.RotationMatrix()
	adj := mat.NewDense(6, 6, nil)
	numutil.SetBlock3(adj, 0, 0, rot)
	numutil.SetBlock3(adj, 3, 3, rot)
	numutil.SetBlock3(adj, 0, 3, numutil.Skew(p.t).Mul3(rot))
	return adj
}

// Act applies the rigid motion to a point: R·v + t. jVec, when non-nil,
// receives the Jacobian with respect to the vector, the rotation block. The
// Jacobian with respect to the group element has no implementation;
// requesting it returns ErrNotImplemented.
func (p SE3) Act(v r3.Vector, jElem, jVec *mat.Dense) (r3.Vector, error) {
	if jElem != nil {
		return r3.Vector{}, manifold.ErrNotImplemented
	}
	if jVec != nil {
		jVec.CloneFrom(numutil.Mat3ToDense(p.RotationMatrix()))
	}
	return numutil.Mat3Vec(p.RotationMatrix(), v).Add(p.t), nil
}

// Rplus retracts a twist increment onto the manifold at the receiver.
func (p SE3) Rplus(delta Twist) SE3 {
	return p.Compose(delta.Exp(nil), nil, nil)
}

// Rminus returns the twist increment from other to the receiver, such that
// other.Rplus(m.Rminus(other)) reproduces m.
func (p SE3) Rminus(other SE3) Twist {
	return other.Inverse(nil).Compose(p, nil, nil).Lift(nil)
}

// Identity returns the group identity element.
func (p SE3) Identity() SE3 {
	return Identity()
}

// SetIdentity resets the receiver to the identity motion and returns it for
// chaining.
func (p *SE3) SetIdentity() *SE3 {
	p.t = r3.Vector{}
	p.r = so3.Identity()
	return p
}

// Coeffs returns the coefficient vector [x y z qx qy qz qw].
func (p SE3) Coeffs() []float64 {
	q := p.r.Coeffs()
	return []float64{p.t.X, p.t.Y, p.t.Z, q[0], q[1], q[2], q[3]}
}

// ApproxEqual reports whether two motions agree within tol in translation
// distance and rotation, accounting for the quaternion double cover.
func (p SE3) ApproxEqual(other SE3, tol float64) bool {
	return p.t.Sub(other.t).Norm() < tol && p.r.ApproxEqual(other.r, tol)
}

var (
	_ manifold.Element[SE3, Twist] = SE3{}
	_ manifold.Tangent[Twist, SE3] = Twist{}
)
