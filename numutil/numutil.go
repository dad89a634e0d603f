// Package numutil provides small numeric helpers shared by the group
// implementations: cross-product matrices, conversions between gonum and
// mathgl types, and block writes into dense Jacobians.
package numutil

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Skew returns the skew-symmetric cross-product matrix of v, so that
// Skew(v) * w == v x w.
func Skew(v r3.Vector) mgl64.Mat3 {
	// mgl64 matrices are column-major.
	return mgl64.Mat3{
		0, v.Z, -v.Y,
		-v.Z, 0, v.X,
		v.Y, -v.X, 0,
	}
}

// Vec3 converts an r3.Vector to an mgl64.Vec3.
func Vec3(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// R3 converts an mgl64.Vec3 to an r3.Vector.
func R3(v mgl64.Vec3) r3.Vector {
	return r3.Vector{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// Mat3Vec applies a 3x3 matrix to an r3.Vector.
func Mat3Vec(m mgl64.Mat3, v r3.Vector) r3.Vector {
	return R3(m.Mul3x1(Vec3(v)))
}

// SetBlock3 writes a 3x3 block into dst with its top-left corner at
// (row, col). dst must already be large enough to hold the block.
func SetBlock3(dst *mat.Dense, row, col int, b mgl64.Mat3) {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			dst.Set(row+r, col+c, b.At(r, c))
		}
	}
}

// Block3 reads the 3x3 block of src whose top-left corner is at (row, col).
func Block3(src mat.Matrix, row, col int) mgl64.Mat3 {
	var b mgl64.Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			b.Set(r, c, src.At(row+r, col+c))
		}
	}
	return b
}

// Mat3ToDense copies a 3x3 matrix into a newly allocated dense matrix.
func Mat3ToDense(b mgl64.Mat3) *mat.Dense {
	d := mat.NewDense(3, 3, nil)
	SetBlock3(d, 0, 0, b)
	return d
}

// Eye returns the n x n identity matrix.
func Eye(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return d
}
