package collide

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a 2D affine matrix:
//
//	| a c tx |
//	| b d ty |
type Transform struct {
	a, b, c, d, tx, ty float64
}

func NewTransformIdentity() Transform {
	return Transform{1, 0, 0, 1, 0, 0}
}

// NewTransformTranspose takes the matrix row by row.
func NewTransformTranspose(a, c, tx, b, d, ty float64) Transform {
	return Transform{a, b, c, d, tx, ty}
}

func NewTransformTranslate(translate Vector) Transform {
	return NewTransformTranspose(
		1, 0, translate.X,
		0, 1, translate.Y,
	)
}

func NewTransformScale(scaleX, scaleY float64) Transform {
	return NewTransformTranspose(
		scaleX, 0, 0,
		0, scaleY, 0,
	)
}

func NewTransformRotate(radians float64) Transform {
	sin, cos := math.Sincos(radians)
	return NewTransformTranspose(
		cos, -sin, 0,
		sin, cos, 0,
	)
}

// NewTransformRotateAbout rotates around pivot instead of the origin.
func NewTransformRotateAbout(pivot Vector, radians float64) Transform {
	return NewTransformTranslate(pivot).
		Mult(NewTransformRotate(radians)).
		Mult(NewTransformTranslate(pivot.Neg()))
}

// TransformFromMat3 reads the affine part of a column-major homogeneous matrix.
// The bottom row is ignored.
func TransformFromMat3(m mgl64.Mat3) Transform {
	return NewTransformTranspose(
		m.At(0, 0), m.At(0, 1), m.At(0, 2),
		m.At(1, 0), m.At(1, 1), m.At(1, 2),
	)
}

func (t Transform) Mat3() mgl64.Mat3 {
	return mgl64.Mat3{
		t.a, t.b, 0,
		t.c, t.d, 0,
		t.tx, t.ty, 1,
	}
}

func (t Transform) Determinant() float64 {
	return t.a*t.d - t.c*t.b
}

// Invertible reports whether the linear part is non-singular.
func (t Transform) Invertible() bool {
	det := t.Determinant()
	return det != 0 && !math.IsNaN(det) && !math.IsInf(det, 0)
}

// Inverse is only meaningful for Invertible transforms. Near-singular ones come
// back as the zero transform.
func (t Transform) Inverse() Transform {
	return TransformFromMat3(t.Mat3().Inv())
}

// Mult returns t applied after t2.
func (t Transform) Mult(t2 Transform) Transform {
	return TransformFromMat3(t.Mat3().Mul3(t2.Mat3()))
}

func (t Transform) Point(p Vector) Vector {
	return VectorFromVec2(t.Mat3().Mul3x1(p.Vec2().Vec3(1)).Vec2())
}

// Vect transforms a direction, ignoring translation.
func (t Transform) Vect(v Vector) Vector {
	return VectorFromVec2(t.Mat3().Mul3x1(v.Vec2().Vec3(0)).Vec2())
}

// BB returns a rectangle enclosing the transformed bb.
func (t Transform) BB(bb BB) BB {
	hw := bb.Width() * 0.5
	hh := bb.Height() * 0.5

	x := t.Vect(Vector{hw, 0})
	y := t.Vect(Vector{0, hh})
	hwMax := math.Max(math.Abs(x.X+y.X), math.Abs(x.X-y.X))
	hhMax := math.Max(math.Abs(x.Y+y.Y), math.Abs(x.Y-y.Y))
	return NewBBForExtents(t.Point(bb.Center()), hwMax, hhMax)
}

func (t Transform) isFinite() bool {
	for _, f := range [...]float64{t.a, t.b, t.c, t.d, t.tx, t.ty} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
