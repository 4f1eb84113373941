package collide

import (
	"fmt"

	"github.com/golang/geo/r2"
)

// BB is an axis-aligned bounding rectangle. Edges are closed: rectangles that
// share a border overlap, and points on the border are contained.
type BB struct {
	rect r2.Rect
}

// NewBB builds a rectangle from two opposite corners given in any order.
func NewBB(x1, y1, x2, y2 float64) BB {
	return BB{r2.RectFromPoints(r2.Point{X: x1, Y: y1}, r2.Point{X: x2, Y: y2})}
}

func NewBBForExtents(c Vector, hw, hh float64) BB {
	return NewBB(c.X-hw, c.Y-hh, c.X+hw, c.Y+hh)
}

func NewBBForCircle(p Vector, r float64) BB {
	return NewBBForExtents(p, r, r)
}

// NewBBForPoints returns the smallest rectangle holding every point.
// An empty slice yields the zero rectangle at the origin.
func NewBBForPoints(pts []Vector) BB {
	if len(pts) == 0 {
		return NewBB(0, 0, 0, 0)
	}
	bb := NewBB(pts[0].X, pts[0].Y, pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		bb = bb.Expand(p)
	}
	return bb
}

func (bb BB) Min() Vector {
	return Vector{bb.rect.X.Lo, bb.rect.Y.Lo}
}

func (bb BB) Max() Vector {
	return Vector{bb.rect.X.Hi, bb.rect.Y.Hi}
}

func (bb BB) Center() Vector {
	c := bb.rect.Center()
	return Vector{c.X, c.Y}
}

func (bb BB) Width() float64 {
	return bb.rect.X.Hi - bb.rect.X.Lo
}

func (bb BB) Height() float64 {
	return bb.rect.Y.Hi - bb.rect.Y.Lo
}

func (a BB) Intersects(b BB) bool {
	return a.rect.Intersects(b.rect)
}

// Contains reports whether other lies entirely inside bb.
func (bb BB) Contains(other BB) bool {
	return bb.rect.Contains(other.rect)
}

func (bb BB) ContainsVect(v Vector) bool {
	return bb.rect.ContainsPoint(r2.Point{X: v.X, Y: v.Y})
}

func (a BB) Merge(b BB) BB {
	return BB{a.rect.Union(b.rect)}
}

// Expand grows bb just enough to contain v.
func (bb BB) Expand(v Vector) BB {
	return BB{bb.rect.AddPoint(r2.Point{X: v.X, Y: v.Y})}
}

// Grow pads every side by margin.
func (bb BB) Grow(margin float64) BB {
	return BB{bb.rect.ExpandedByMargin(margin)}
}

// Quadrants splits bb at its center. The order is fixed: min-x/min-y,
// max-x/min-y, min-x/max-y, max-x/max-y.
func (bb BB) Quadrants() [4]BB {
	lo, hi, c := bb.Min(), bb.Max(), bb.Center()
	return [4]BB{
		NewBB(lo.X, lo.Y, c.X, c.Y),
		NewBB(c.X, lo.Y, hi.X, c.Y),
		NewBB(lo.X, c.Y, c.X, hi.Y),
		NewBB(c.X, c.Y, hi.X, hi.Y),
	}
}

// Vertices returns the corners as a polygon loop.
func (bb BB) Vertices() []Vector {
	lo, hi := bb.Min(), bb.Max()
	return []Vector{lo, {hi.X, lo.Y}, hi, {lo.X, hi.Y}}
}

func (bb BB) String() string {
	return fmt.Sprintf("[%v-%v]", bb.Min(), bb.Max())
}
