package collide

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"
)

var (
	concaveCase = []Vector{{4, 1}, {2, 4}, {6, 5}, {7, 2}, {7, -2}, {3, -3}}

	convexCases = [][]Vector{
		{{11, -1}, {10, 3}, {11, 6}},
		{{20, 0}, {16, -1}, {13, 0}},
		{{16, 3}, {14, 5}, {16, 8}, {17, 5}},
	}

	separateCases = []struct {
		name  string
		verts []Vector
		area  float64
		sizes []int
	}{
		{"case", concaveCase, 25.5, []int{5, 3}},
		{"L", []Vector{{0, 0}, {0, 4}, {1, 4}, {1, 1}, {3, 1}, {3, 0}}, 6, []int{4, 4}},
		{"U", []Vector{{0, 0}, {0, 3}, {1, 3}, {1, 1}, {2, 1}, {2, 3}, {3, 3}, {3, 0}}, 7, []int{4, 4, 4}},
		{"comb", []Vector{{0, 0}, {0, 2}, {1, 1}, {2, 2}, {3, 1}, {4, 2}, {4, 0}}, 6, []int{3, 5, 3}},
		{"arrow", []Vector{{0, 0}, {2, 1}, {4, 0}, {2, 4}}, 6, []int{3, 3}},
		{"star", []Vector{{0, 3}, {1, 1}, {3, 1}, {1.5, -0.5}, {2, -3}, {0, -1.5}, {-2, -3}, {-1.5, -0.5}, {-3, 1}, {-1, 1}}, 14.5, []int{5, 4, 3, 3, 3}},
	}
)

func TestAngle(t *testing.T) {
	a := Angle(Vector{3, 4}, Vector{4, 1}, Vector{2, 1})
	if math.Abs(a-1.249) > 1e-3 {
		t.Errorf("Expected 1.249, got %v", a)
	}
	b := Angle(Vector{2, 1}, Vector{4, 1}, Vector{3, 4})
	if math.Abs(b-(2*math.Pi-1.249)) > 1e-3 {
		t.Errorf("Expected %v, got %v", 2*math.Pi-1.249, b)
	}
	if c := Angle(Vector{1, 0}, Vector{}, Vector{2, 0}); c != 0 {
		t.Errorf("Expected 0, got %v", c)
	}
}

func TestWindTest(t *testing.T) {
	verts := []Vector{{4, 3}, {5, 1}, {2, 1}, {1, 4}}
	w, err := WindTest(verts)
	if err != nil {
		t.Fatal(err)
	}
	if w != CounterClockwise || w.String() != "ccw" {
		t.Errorf("Expected ccw, got %v", w)
	}
	w, _ = WindTest(reversed(verts))
	if w != Clockwise || w.String() != "cw" {
		t.Errorf("Expected cw, got %v", w)
	}
	if Area(verts) >= 0 || Area(reversed(verts)) <= 0 {
		t.Error("Area sign should follow winding")
	}
}

// flipsWinding reports whether f is a reflection.
func flipsWinding(f func(Vector) Vector) bool {
	return f(Vector{1, 0}).Cross(f(Vector{0, 1})) < 0
}

func mapVerts(verts []Vector, f func(Vector) Vector) []Vector {
	out := make([]Vector, len(verts))
	for i, v := range verts {
		out[i] = f(v)
	}
	return out
}

func TestWindTest_Transforms(t *testing.T) {
	cases := [][]Vector{{{4, 3}, {5, 1}, {2, 1}, {1, 4}}, concaveCase}
	for _, tr := range rayTransforms {
		for _, c := range cases {
			want, _ := WindTest(c)
			if flipsWinding(tr.f) {
				want = 1 - want
			}
			w, err := WindTest(mapVerts(c, tr.f))
			if err != nil {
				t.Fatal(err)
			}
			if w != want {
				t.Errorf("%s: expected %v, got %v", tr.name, want, w)
			}
		}
	}
}

func TestConvexTest(t *testing.T) {
	for _, verts := range [][]Vector{concaveCase, reversed(concaveCase)} {
		convex, err := ConvexTest(verts)
		if err != nil {
			t.Fatal(err)
		}
		if convex {
			t.Errorf("Expected %v to be concave", verts)
		}
		if concave, _ := ConcaveTest(verts); !concave {
			t.Errorf("ConcaveTest disagrees for %v", verts)
		}
	}
	for _, c := range convexCases {
		for _, verts := range [][]Vector{c, reversed(c)} {
			if convex, _ := ConvexTest(verts); !convex {
				t.Errorf("Expected %v to be convex", verts)
			}
		}
	}
}

func TestConvexTest_Transforms(t *testing.T) {
	for _, tr := range rayTransforms {
		for _, verts := range [][]Vector{concaveCase, reversed(concaveCase)} {
			if convex, _ := ConvexTest(mapVerts(verts, tr.f)); convex {
				t.Errorf("%s: expected %v to be concave", tr.name, verts)
			}
		}
		for _, c := range convexCases {
			if convex, _ := ConvexTest(mapVerts(c, tr.f)); !convex {
				t.Errorf("%s: expected %v to be convex", tr.name, c)
			}
		}
	}
}

func TestPolygon_InvalidInput(t *testing.T) {
	bad := [][]Vector{
		{{0, 0}, {1, 1}},
		{{0, 0}, {1, 1}, {1, 1}, {0, 1}},
		{{0, 0}, {math.Inf(1), 1}, {0, 1}},
	}
	for _, verts := range bad {
		if _, err := WindTest(verts); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("WindTest(%v): expected ErrInvalidInput, got %v", verts, err)
		}
		if _, err := ConvexSeparate(verts); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ConvexSeparate(%v): expected ErrInvalidInput, got %v", verts, err)
		}
	}
}

func TestConvexSeparate_Convex(t *testing.T) {
	for _, verts := range convexCases {
		parts, err := ConvexSeparate(verts)
		if err != nil {
			t.Fatal(err)
		}
		if len(parts) != 1 || len(parts[0]) != len(verts) {
			t.Fatalf("Expected a single fragment, got %v", parts)
		}
		parts[0][0] = Vector{99, 99}
		if verts[0].Equal(Vector{99, 99}) {
			t.Error("Fragment should be a copy")
		}
	}
}

func TestConvexSeparate_Case(t *testing.T) {
	parts, err := ConvexSeparate(concaveCase)
	if err != nil {
		t.Fatal(err)
	}
	expected := [][]Vector{
		{{4, 1}, {6, 5}, {7, 2}, {7, -2}, {3, -3}},
		{{4, 1}, {2, 4}, {6, 5}},
	}
	if len(parts) != len(expected) {
		t.Fatalf("Expected %d fragments, got %v", len(expected), parts)
	}
	for i := range expected {
		if len(parts[i]) != len(expected[i]) {
			t.Fatalf("Fragment %d: expected %v, got %v", i, expected[i], parts[i])
		}
		for j := range expected[i] {
			if !parts[i][j].Equal(expected[i][j]) {
				t.Errorf("Fragment %d: expected %v, got %v", i, expected[i], parts[i])
				break
			}
		}
	}
}

func TestConvexSeparate(t *testing.T) {
	for _, c := range separateCases {
		for _, verts := range [][]Vector{c.verts, reversed(c.verts)} {
			want, _ := WindTest(verts)
			parts, err := ConvexSeparate(verts)
			if err != nil {
				t.Fatalf("%s: %v", c.name, err)
			}
			if len(parts) != len(c.sizes) {
				t.Fatalf("%s: expected %d fragments, got %v", c.name, len(c.sizes), parts)
			}
			var total float64
			for i, p := range parts {
				if len(p) != c.sizes[i] {
					t.Errorf("%s: fragment %d has %d vertices, expected %d", c.name, i, len(p), c.sizes[i])
				}
				if convex, err := ConvexTest(p); err != nil || !convex {
					t.Errorf("%s: fragment %v is not convex (%v)", c.name, p, err)
				}
				if w, _ := WindTest(p); w != want {
					t.Errorf("%s: fragment %v has winding %v, expected %v", c.name, p, w, want)
				}
				total += math.Abs(Area(p))
			}
			if math.Abs(total-c.area) > 1e-9 {
				t.Errorf("%s: fragments cover %v, expected %v", c.name, total, c.area)
			}
		}
	}
}

// randomStar returns a simple polygon whose vertices circle the origin with
// every angular gap under π.
func randomStar(r *rand.Rand) []Vector {
	for {
		n := 5 + r.Intn(8)
		angles := make([]float64, n)
		for i := range angles {
			angles[i] = r.Float64() * 2 * math.Pi
		}
		sort.Float64s(angles)
		ok := true
		for i, a := range angles {
			gap := angles[Next(i, n)] - a
			if i == n-1 {
				gap += 2 * math.Pi
			}
			if gap < 0.05 || gap >= 0.9*math.Pi {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		verts := make([]Vector, n)
		for i, a := range angles {
			radius := 0.5 + 4.5*r.Float64()
			verts[i] = Vector{radius * math.Cos(a), radius * math.Sin(a)}
		}
		return verts
	}
}

func TestConvexSeparate_RandomStars(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 500; trial++ {
		verts := randomStar(r)
		parts, err := ConvexSeparate(verts)
		if err != nil {
			t.Fatalf("%v: %v", verts, err)
		}
		var total float64
		for _, p := range parts {
			if convex, err := ConvexTest(p); err != nil || !convex {
				t.Errorf("%v: fragment %v is not convex (%v)", verts, p, err)
			}
			total += math.Abs(Area(p))
		}
		if math.Abs(total-math.Abs(Area(verts))) > 1e-6 {
			t.Errorf("%v: fragments cover %v, expected %v", verts, total, math.Abs(Area(verts)))
		}
	}
}

func TestConvexSeparate_ForwardSplit(t *testing.T) {
	// the backward walk from the first reflex vertex finds no partner here
	verts := []Vector{{2, 1}, {3, 3}, {-3, 0}, {2, -2}, {7, -6}, {5, -1}}
	parts, err := ConvexSeparate(verts)
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 3 {
		t.Fatalf("Expected 3 fragments, got %v", parts)
	}
	var total float64
	for _, p := range parts {
		if convex, _ := ConvexTest(p); !convex {
			t.Errorf("Fragment %v is not convex", p)
		}
		total += math.Abs(Area(p))
	}
	if math.Abs(total-math.Abs(Area(verts))) > 1e-9 {
		t.Errorf("Fragments cover %v, expected %v", total, math.Abs(Area(verts)))
	}
}
