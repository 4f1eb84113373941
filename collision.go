package collide

import (
	"math"
)

// Tolerance pads every pairwise test and the broad phase query box.
const Tolerance = 0.05

// CollisionFunc reports whether two forms overlap. a.Kind() <= b.Kind().
type CollisionFunc func(a, b *Form) bool

// BuiltinCollisionFuncs is indexed by a.Kind() + b.Kind()*kindCount with the
// pair sorted by kind. Unsorted slots hold CollisionError.
var BuiltinCollisionFuncs = [kindCount * kindCount]CollisionFunc{
	RoundToRound,
	CollisionError,
	CollisionError,
	RoundToRound,
	RoundToRound,
	CollisionError,
	PointToPoly,
	CircleToPoly,
	PolyToPoly,
}

// Intersects reports whether two forms touch, within Tolerance. It is
// symmetric and total over all kind pairs.
func Intersects(a, b *Form) bool {
	if !a.BB().Grow(Tolerance).Intersects(b.BB()) {
		return false
	}
	if a.kind > b.kind {
		a, b = b, a
	}
	return BuiltinCollisionFuncs[a.kind+b.kind*kindCount](a, b)
}

func CollisionError(a, b *Form) bool {
	panic("collide: form kinds are not sorted")
}

// RoundToRound handles points and circles. A point has zero radius.
func RoundToRound(a, b *Form) bool {
	margin := a.radius + b.radius + Tolerance
	return a.center.DistanceSq(b.center) < margin*margin
}

func PointToPoly(a, b *Form) bool {
	return pointInPolygon(a.center, b.verts)
}

func CircleToPoly(a, b *Form) bool {
	if pointInPolygon(a.center, b.verts) {
		return true
	}
	c, r := a.center, a.radius
	n := len(b.verts)
	for i, v1 := range b.verts {
		v2 := b.verts[Next(i, n)]
		if v2.Sub(v1).Dot(c.Sub(v1)) < -Tolerance || v1.Sub(v2).Dot(c.Sub(v2)) < -Tolerance {
			// the center projects past an end of the edge
			if math.Min(c.DistanceSq(v1), c.DistanceSq(v2)) < r*r {
				return true
			}
			continue
		}
		normal := v2.Sub(v1).Perp().Normalize()
		if math.Abs(normal.Dot(v1)-normal.Dot(c)) < r {
			return true
		}
	}
	return false
}

func PolyToPoly(a, b *Form) bool {
	if pointInPolygon(a.verts[0], b.verts) || pointInPolygon(b.verts[0], a.verts) {
		return true
	}
	na, nb := len(a.verts), len(b.verts)
	for i, a1 := range a.verts {
		s1 := Segment{a1, a.verts[Next(i, na)]}
		dir := s1.Dir()
		reach := dir.LengthSq()
		for j, b1 := range b.verts {
			s2 := Segment{b1, b.verts[Next(j, nb)]}
			hit := raySegment(Ray{s1.V1, dir}, s2, DefaultMargin)
			if !hit.Hit {
				continue
			}
			if hit.Kind == HitColinear {
				t1 := along(s1.V1, dir, s2.V1)
				t2 := along(s1.V1, dir, s2.V2)
				if math.Max(t1, t2) > 0 && math.Min(t1, t2) < 1 {
					return true
				}
				continue
			}
			if hit.Point.DistanceSq(s1.V1) < reach {
				return true
			}
		}
	}
	return false
}

// pointInPolygon casts a ray towards +x and counts proper edge crossings.
// An edge counts only when it spans p.Y half-open, so a vertex on the ray is
// counted once.
func pointInPolygon(p Vector, verts []Vector) bool {
	inside := false
	n := len(verts)
	for i, v := range verts {
		w := verts[Next(i, n)]
		if (v.Y > p.Y) == (w.Y > p.Y) {
			continue
		}
		hit := raySegment(Ray{p, Vector{1, 0}}, Segment{v, w}, DefaultMargin)
		if hit.Kind == HitNormal {
			inside = !inside
		}
	}
	return inside
}

// PointInPolygon reports whether p lies inside the polygon verts.
func PointInPolygon(p Vector, verts []Vector) (bool, error) {
	if err := validateVectors(p); err != nil {
		return false, err
	}
	if err := validatePolygon(verts); err != nil {
		return false, err
	}
	return pointInPolygon(p, verts), nil
}
