package collide

import (
	"fmt"
	"math"
)

// Angle returns the angle at b swept from ray b->a to ray b->c, in [0, 2π).
// It grows in the direction of (b->a).Perp(), which on a y-down screen is
// clockwise.
func Angle(a, b, c Vector) float64 {
	ba := a.Sub(b).Normalize()
	bc := c.Sub(b).Normalize()
	cos := Clamp(ba.Dot(bc), -1, 1)
	if bc.Dot(ba.Perp()) < 0 {
		return 2*math.Pi - math.Acos(cos)
	}
	return math.Acos(cos)
}

// Winding is the orientation of a vertex loop on a y-down screen.
type Winding int

const (
	Clockwise Winding = iota
	CounterClockwise
)

func (w Winding) String() string {
	if w == CounterClockwise {
		return "ccw"
	}
	return "cw"
}

// WindTest sums the turning angle at every vertex. A positive total is
// counter-clockwise.
func WindTest(verts []Vector) (Winding, error) {
	if err := validatePolygon(verts); err != nil {
		return Clockwise, err
	}
	return windTest(verts), nil
}

func windTest(verts []Vector) Winding {
	var turn float64
	for i := range verts {
		turn += math.Pi - vertexAngle(verts, i)
	}
	if turn > 0 {
		return CounterClockwise
	}
	return Clockwise
}

// vertexAngle is the angle at verts[i] between its neighbours.
func vertexAngle(verts []Vector, i int) float64 {
	n := len(verts)
	return Angle(verts[Prev(i, n)], verts[i], verts[Next(i, n)])
}

// ConvexTest reports whether every interior angle is at most π. The result
// does not depend on the winding of verts.
func ConvexTest(verts []Vector) (bool, error) {
	if err := validatePolygon(verts); err != nil {
		return false, err
	}
	return convexTest(ccw(verts)), nil
}

func ConcaveTest(verts []Vector) (bool, error) {
	convex, err := ConvexTest(verts)
	return !convex, err
}

// ccw returns verts in counter-clockwise order, reversing a copy if needed.
func ccw(verts []Vector) []Vector {
	if windTest(verts) == Clockwise {
		return reversed(verts)
	}
	return verts
}

// convexTest expects counter-clockwise verts.
func convexTest(verts []Vector) bool {
	for i := range verts {
		if vertexAngle(verts, i) > math.Pi {
			return false
		}
	}
	return true
}

// ConvexSeparate splits a simple polygon into convex fragments that keep the
// winding of verts. A convex polygon comes back as a single copied fragment.
func ConvexSeparate(verts []Vector) ([][]Vector, error) {
	if err := validatePolygon(verts); err != nil {
		return nil, err
	}
	if windTest(verts) == Clockwise {
		parts, err := convexSeparate(reversed(verts))
		if err != nil {
			return nil, err
		}
		for i, p := range parts {
			parts[i] = reversed(p)
		}
		return parts, nil
	}
	return convexSeparate(append([]Vector(nil), verts...))
}

// convexSeparate cuts counter-clockwise verts along a diagonal from a reflex
// vertex and recurses on both halves.
func convexSeparate(verts []Vector) ([][]Vector, error) {
	if convexTest(verts) {
		return [][]Vector{verts}, nil
	}
	n := len(verts)

	for reflex := range verts {
		if vertexAngle(verts, reflex) <= math.Pi {
			continue
		}
		partner := splitPartner(verts, reflex)
		if partner < 0 {
			continue
		}

		var p1, p2 []Vector
		if partner > reflex {
			p1 = append(append([]Vector(nil), verts[:reflex+1]...), verts[partner:]...)
			p2 = append([]Vector(nil), verts[reflex:partner+1]...)
		} else {
			p1 = append([]Vector(nil), verts[partner:reflex+1]...)
			p2 = append(append([]Vector(nil), verts[:partner+1]...), verts[reflex:]...)
		}
		if len(p1) < 3 || len(p2) < 3 || len(p1) >= n || len(p2) >= n {
			return nil, fmt.Errorf("%w: degenerate split %d-%d", ErrInvariant, reflex, partner)
		}

		parts, err := convexSeparate(p1)
		if err != nil {
			return nil, err
		}
		rest, err := convexSeparate(p2)
		if err != nil {
			return nil, err
		}
		return append(parts, rest...), nil
	}
	return nil, fmt.Errorf("%w: no reflex vertex admits a split", ErrInvariant)
}

// splitPartner picks the far end of a diagonal from the reflex vertex, or -1.
// The backward walk is tried first, then its mirror, then every vertex.
func splitPartner(verts []Vector, reflex int) int {
	n := len(verts)
	if p := walkBack(verts, reflex); p >= 0 && isDiagonal(verts, reflex, p) {
		return p
	}
	if p := walkForward(verts, reflex); p >= 0 && isDiagonal(verts, reflex, p) {
		return p
	}
	for k := 2; k < n-1; k++ {
		if p := (reflex + k) % n; isDiagonal(verts, reflex, p) {
			return p
		}
	}
	return -1
}

// walkBack walks backwards from the reflex vertex while the cut stays inside
// the reflex angle. The last vertex that does is the partner.
func walkBack(verts []Vector, reflex int) int {
	n := len(verts)
	before := verts[Prev(reflex, n)]
	partner := -1
	t := Prev(Prev(reflex, n), n)
	for steps := 0; steps < n; steps++ {
		if Angle(before, verts[reflex], verts[t]) >= math.Pi {
			return partner
		}
		partner = t
		t = Prev(t, n)
	}
	return -1
}

func walkForward(verts []Vector, reflex int) int {
	n := len(verts)
	after := verts[Next(reflex, n)]
	partner := -1
	t := Next(Next(reflex, n), n)
	for steps := 0; steps < n; steps++ {
		if Angle(verts[t], verts[reflex], after) >= math.Pi {
			return partner
		}
		partner = t
		t = Next(t, n)
	}
	return -1
}

// isDiagonal reports whether the segment i-j leaves verts[i] into the polygon
// and touches no edge away from its ends.
func isDiagonal(verts []Vector, i, j int) bool {
	n := len(verts)
	if j == i || j == Next(i, n) || j == Prev(i, n) {
		return false
	}
	if a := Angle(verts[Prev(i, n)], verts[i], verts[j]); a <= 0 || a >= vertexAngle(verts, i) {
		return false
	}
	for k := range verts {
		k2 := Next(k, n)
		if k == i || k == j || k2 == i || k2 == j {
			continue
		}
		if segmentsTouch(verts[i], verts[j], verts[k], verts[k2]) {
			return false
		}
	}
	return true
}

// segmentsTouch reports whether the closed segments p1-p2 and q1-q2 share a point.
func segmentsTouch(p1, p2, q1, q2 Vector) bool {
	d1 := orient(q1, q2, p1)
	d2 := orient(q1, q2, p2)
	d3 := orient(p1, p2, q1)
	d4 := orient(p1, p2, q2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && inBox(q1, q2, p1)) ||
		(d2 == 0 && inBox(q1, q2, p2)) ||
		(d3 == 0 && inBox(p1, p2, q1)) ||
		(d4 == 0 && inBox(p1, p2, q2))
}

func orient(a, b, c Vector) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

func inBox(a, b, p Vector) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
