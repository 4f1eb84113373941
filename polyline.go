package collide

import "fmt"

// PolyLine is a vertex loop under construction. The closing edge from the last
// vertex back to the first is implicit.
type PolyLine struct {
	Verts []Vector
}

// Next is the ring successor of i in a loop of count vertices.
func Next(i, count int) int {
	return (i + 1) % count
}

func Prev(i, count int) int {
	if i == 0 {
		return count - 1
	}
	return i - 1
}

func (pl *PolyLine) Push(v ...Vector) *PolyLine {
	pl.Verts = append(pl.Verts, v...)
	return pl
}

// IsClosed reports whether the first vertex was repeated at the end.
func (pl *PolyLine) IsClosed() bool {
	return len(pl.Verts) > 1 && pl.Verts[0].Equal(pl.Verts[len(pl.Verts)-1])
}

// Area is the signed shoelace area of verts. It is positive for loops that
// WindTest reports as Clockwise.
func Area(verts []Vector) float64 {
	var sum float64
	for i, v := range verts {
		sum += v.Cross(verts[Next(i, len(verts))])
	}
	return sum * 0.5
}

func reversed(verts []Vector) []Vector {
	out := make([]Vector, len(verts))
	for i, v := range verts {
		out[len(verts)-1-i] = v
	}
	return out
}

// validatePolygon rejects short loops, non-finite coordinates and zero-length edges.
func validatePolygon(verts []Vector) error {
	if len(verts) < 3 {
		return fmt.Errorf("%w: polygon requires 3 or more points, got %d", ErrInvalidInput, len(verts))
	}
	if err := validateVectors(verts...); err != nil {
		return err
	}
	for i, v := range verts {
		if v.Equal(verts[Next(i, len(verts))]) {
			return fmt.Errorf("%w: zero length edge at vertex %d", ErrInvalidInput, i)
		}
	}
	return nil
}
