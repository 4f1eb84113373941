package collide

import (
	"fmt"
	"math"
)

// DefaultMargin is the epsilon used for degeneracy and range checks when no
// explicit margin is given.
const DefaultMargin = 0.01

type Segment struct {
	V1, V2 Vector
}

// Ray is a half-line. Direction need not be unit length.
type Ray struct {
	Start, Direction Vector
}

func (s Segment) Dir() Vector {
	return s.V2.Sub(s.V1)
}

// RayHit classifies how a ray meets a segment.
type RayHit int

const (
	// HitParallel: the lines are parallel and apart.
	HitParallel RayHit = iota
	// HitColinear: both lie on the same line.
	HitColinear
	// HitWrongOrientation: the lines cross behind the ray start.
	HitWrongOrientation
	// HitOutsideSegment: the lines cross ahead of the ray but off the segment.
	HitOutsideSegment
	HitNormal
)

func (h RayHit) String() string {
	switch h {
	case HitParallel:
		return "parallel"
	case HitColinear:
		return "colinear"
	case HitWrongOrientation:
		return "wrongorientation"
	case HitOutsideSegment:
		return "outsidesegment"
	case HitNormal:
		return "normal"
	}
	return fmt.Sprintf("RayHit(%d)", int(h))
}

type RaySegmentResult struct {
	Hit  bool
	Kind RayHit
	// Point is the crossing of the two lines. Only meaningful when HasPoint is set,
	// which is the case for HitWrongOrientation, HitOutsideSegment and HitNormal.
	Point    Vector
	HasPoint bool
}

// RaySegment intersects ray with seg using DefaultMargin.
func RaySegment(ray Ray, seg Segment) (RaySegmentResult, error) {
	return RaySegmentMargin(ray, seg, DefaultMargin)
}

// RaySegmentMargin intersects ray with seg. Hit is true for a colinear
// segment that is not entirely behind the ray start, and for a crossing that
// lies ahead of the ray and within [-margin, 1+margin] of the segment.
func RaySegmentMargin(ray Ray, seg Segment, margin float64) (RaySegmentResult, error) {
	if err := validateVectors(ray.Start, ray.Direction, seg.V1, seg.V2); err != nil {
		return RaySegmentResult{}, err
	}
	if ray.Direction.LengthSq() == 0 {
		return RaySegmentResult{}, fmt.Errorf("%w: zero ray direction", ErrInvalidInput)
	}
	if seg.V1.Equal(seg.V2) {
		return RaySegmentResult{}, fmt.Errorf("%w: zero length segment", ErrInvalidInput)
	}
	if !(margin >= 0) || math.IsInf(margin, 0) {
		return RaySegmentResult{}, fmt.Errorf("%w: margin %v", ErrInvalidInput, margin)
	}
	return raySegment(ray, seg, margin), nil
}

// raySegment expects validated input.
func raySegment(ray Ray, seg Segment, margin float64) RaySegmentResult {
	segDir := seg.Dir()
	segNorm := segDir.Perp()
	rayNorm := ray.Direction.Perp()

	det := rayNorm.X*segNorm.Y - rayNorm.Y*segNorm.X
	if math.Abs(det) < margin {
		dist := ray.Start.Dot(segNorm) - seg.V1.Dot(segNorm)
		if math.Abs(dist) > margin {
			return RaySegmentResult{Kind: HitParallel}
		}
		// same line: a miss only if the whole segment is behind the start
		if along(ray.Start, ray.Direction, seg.V1) < 0 && along(ray.Start, ray.Direction, seg.V2) < 0 {
			return RaySegmentResult{Kind: HitColinear}
		}
		return RaySegmentResult{Hit: true, Kind: HitColinear}
	}

	dray := ray.Start.Dot(rayNorm)
	dseg := seg.V1.Dot(segNorm)
	p := Vector{
		(segNorm.Y*dray - rayNorm.Y*dseg) / det,
		(-segNorm.X*dray + rayNorm.X*dseg) / det,
	}

	if along(ray.Start, ray.Direction, p) < 0 {
		return RaySegmentResult{Kind: HitWrongOrientation, Point: p, HasPoint: true}
	}
	if f := along(seg.V1, segDir, p); f < -margin || f > 1+margin {
		return RaySegmentResult{Kind: HitOutsideSegment, Point: p, HasPoint: true}
	}
	return RaySegmentResult{Hit: true, Kind: HitNormal, Point: p, HasPoint: true}
}

// LineIntersection describes where two infinite lines a + aDir*t and
// b + bDir*s meet. Point equals a+aDir*ACoeff and b+bDir*BCoeff.
type LineIntersection struct {
	Intersects bool
	// Colinear lines report Point = a, ACoeff as b's offset along a and BCoeff
	// as a's offset along b.
	Colinear bool
	Point    Vector
	ACoeff   float64
	BCoeff   float64
}

func LineIntersect(a, aDir, b, bDir Vector) (LineIntersection, error) {
	if err := validateVectors(a, aDir, b, bDir); err != nil {
		return LineIntersection{}, err
	}
	if aDir.LengthSq() == 0 || bDir.LengthSq() == 0 {
		return LineIntersection{}, fmt.Errorf("%w: zero line direction", ErrInvalidInput)
	}
	return lineIntersect(a, aDir, b, bDir), nil
}

func lineIntersect(a, aDir, b, bDir Vector) LineIntersection {
	aNorm := aDir.Perp().Normalize()
	bNorm := bDir.Perp().Normalize()

	det := bNorm.X*aNorm.Y - bNorm.Y*aNorm.X
	if math.Abs(det) < DefaultMargin {
		if math.Abs(b.Dot(aNorm)-a.Dot(aNorm)) > DefaultMargin {
			return LineIntersection{}
		}
		return LineIntersection{
			Intersects: true,
			Colinear:   true,
			Point:      a,
			ACoeff:     coeff(a, aDir, b),
			BCoeff:     coeff(b, bDir, a),
		}
	}

	da := a.Dot(aNorm)
	db := b.Dot(bNorm)
	p := Vector{
		(aNorm.Y*db - bNorm.Y*da) / det,
		(-aNorm.X*db + bNorm.X*da) / det,
	}
	return LineIntersection{
		Intersects: true,
		Point:      p,
		ACoeff:     coeff(a, aDir, p),
		BCoeff:     coeff(b, bDir, p),
	}
}

// coeff is like along but ties go to the y axis.
func coeff(start, dir, p Vector) float64 {
	if math.Abs(dir.X) > math.Abs(dir.Y) {
		return (p.X - start.X) / dir.X
	}
	return (p.Y - start.Y) / dir.Y
}

func validateVectors(vs ...Vector) error {
	for _, v := range vs {
		if !v.IsFinite() {
			return fmt.Errorf("%w: non-finite coordinate %v", ErrInvalidInput, v)
		}
	}
	return nil
}
