// Package manifold defines the contract shared by every Lie group element type
// in this library, so that generic algorithms can be written once and reused
// across concrete groups.
package manifold

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrNotImplemented is returned when a Jacobian that has no closed form in the
// current implementation is requested, e.g. the Jacobian of a group action
// with respect to the group element. It is surfaced explicitly so callers are
// never handed a silent zero matrix.
var ErrNotImplemented = errors.New("jacobian not implemented")

// Element is the set of operations a Lie group element must support. E is the
// concrete element type and T its associated tangent type; using the concrete
// types as parameters means composing elements of unrelated groups fails to
// compile rather than at runtime.
//
// All out-Jacobian parameters are optional: passing nil skips the Jacobian
// computation entirely. A non-nil destination is overwritten with a matrix of
// the group's tangent dimension. Jacobians follow the right-perturbation
// convention: they linearize the operation with respect to a tangent
// increment applied on the right of the corresponding operand.
type Element[E, T any] interface {
	// Compose returns the group product of the receiver and other, optionally
	// writing the Jacobians with respect to each operand.
	Compose(other E, jSelf, jOther *mat.Dense) E

	// Inverse returns the group inverse, optionally writing its Jacobian.
	Inverse(j *mat.Dense) E

	// Lift is the logarithmic map: the tangent whose Exp reproduces the
	// receiver. The optional Jacobian is the inverse of the right Jacobian of
	// the resulting tangent.
	Lift(j *mat.Dense) T

	// Rplus retracts a tangent increment onto the manifold at the receiver.
	Rplus(delta T) E

	// Rminus returns the tangent increment from other to the receiver, such
	// that other.Rplus(m.Rminus(other)) reproduces m.
	Rminus(other E) T

	// Adjoint returns the matrix transporting tangent vectors under
	// conjugation by the receiver.
	Adjoint() *mat.Dense

	// Identity returns the group identity element.
	Identity() E

	// Coeffs returns a copy of the element's underlying coefficient vector.
	Coeffs() []float64
}

// Tangent is the set of operations a Lie algebra element must support. T is
// the concrete tangent type and E the group element type it exponentiates to.
type Tangent[T, E any] interface {
	// Exp is the exponential map back to the group. The optional Jacobian is
	// the right Jacobian of the receiver.
	Exp(j *mat.Dense) E

	// Scale returns the tangent multiplied by a scalar.
	Scale(s float64) T

	// RJac returns the right Jacobian of the exponential at the receiver.
	RJac() *mat.Dense

	// LJac returns the left Jacobian of the exponential at the receiver.
	LJac() *mat.Dense

	// Coeffs returns a copy of the tangent's coefficient vector.
	Coeffs() []float64
}

// Point is the narrow retraction contract generic curve algorithms depend on.
// Any Element implementation satisfies it.
type Point[E, T any] interface {
	Rplus(delta T) E
	Rminus(other E) T
}

// Increment is the tangent-side counterpart of Point.
type Increment[T any] interface {
	Scale(s float64) T
}
