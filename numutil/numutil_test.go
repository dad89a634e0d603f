package numutil

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestSkew(t *testing.T) {
	v := r3.Vector{X: 1, Y: -2, Z: 3}
	w := r3.Vector{X: 0.5, Y: 4, Z: -1}

	got := Mat3Vec(Skew(v), w)
	want := v.Cross(w)
	test.That(t, got.X, test.ShouldAlmostEqual, want.X)
	test.That(t, got.Y, test.ShouldAlmostEqual, want.Y)
	test.That(t, got.Z, test.ShouldAlmostEqual, want.Z)

	s := Skew(v)
	for r := 0; r < 3; r++ {
		test.That(t, s.At(r, r), test.ShouldEqual, 0)
		for c := 0; c < 3; c++ {
			test.That(t, s.At(r, c), test.ShouldEqual, -s.At(c, r))
		}
	}
}

func TestBlockRoundTrip(t *testing.T) {
	v := r3.Vector{X: 2, Y: 5, Z: -7}
	d := mat.NewDense(6, 6, nil)
	SetBlock3(d, 3, 0, Skew(v))
	test.That(t, Block3(d, 3, 0), test.ShouldResemble, Skew(v))

	// Untouched blocks stay zero.
	test.That(t, Block3(d, 0, 3), test.ShouldResemble, mgl64.Mat3{})
}

func TestEye(t *testing.T) {
	e := Eye(6)
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			if r == c {
				test.That(t, e.At(r, c), test.ShouldEqual, 1)
			} else {
				test.That(t, e.At(r, c), test.ShouldEqual, 0)
			}
		}
	}
}
