package collide

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector is a 2D point or direction. It is a plain value with no identity.
type Vector struct {
	X, Y float64
}

func VectorFromVec2(v mgl64.Vec2) Vector {
	return Vector{v[0], v[1]}
}

func (v Vector) Vec2() mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g,%g)", v.X, v.Y)
}

func (v Vector) Equal(other Vector) bool {
	return v.X == other.X && v.Y == other.Y
}

func (v Vector) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vector) Add(other Vector) Vector {
	return Vector{v.X + other.X, v.Y + other.Y}
}

func (v Vector) Sub(other Vector) Vector {
	return Vector{v.X - other.X, v.Y - other.Y}
}

func (v Vector) Neg() Vector {
	return Vector{-v.X, -v.Y}
}

func (v Vector) Mult(s float64) Vector {
	return Vector{v.X * s, v.Y * s}
}

func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z component of the 3D cross product of v and other.
func (v Vector) Cross(other Vector) float64 {
	return v.X*other.Y - v.Y*other.X
}

// Perp rotates v by 90 degrees: (-y, x).
func (v Vector) Perp() Vector {
	return Vector{-v.Y, v.X}
}

func (v Vector) LengthSq() float64 {
	return v.Dot(v)
}

func (v Vector) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector of v. The zero vector stays zero.
func (v Vector) Normalize() Vector {
	return v.Mult(1.0 / (v.Length() + math.SmallestNonzeroFloat64))
}

func (v Vector) Distance(other Vector) float64 {
	return v.Sub(other).Length()
}

func (v Vector) DistanceSq(other Vector) float64 {
	return v.Sub(other).LengthSq()
}

// along returns t such that start + dir*t reproduces p on dir's dominant axis.
// Ties go to the x axis.
func along(start, dir, p Vector) float64 {
	if math.Abs(dir.X) >= math.Abs(dir.Y) {
		return (p.X - start.X) / dir.X
	}
	return (p.Y - start.Y) / dir.Y
}

func Clamp(f, min, max float64) float64 {
	return math.Min(math.Max(f, min), max)
}
