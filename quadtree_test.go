package collide

import (
	"errors"
	"math/rand"
	"sort"
	"testing"
)

func TestNewQuadTree(t *testing.T) {
	for depth, nodes := range map[int]int{0: 1, 1: 5, 2: 21, DefaultDepth: 1365} {
		tree, err := NewQuadTree(NewBB(0, 0, 10, 10), depth)
		if err != nil {
			t.Fatal(err)
		}
		if tree.NumNodes() != nodes {
			t.Errorf("Depth %d: expected %d nodes, got %d", depth, nodes, tree.NumNodes())
		}
	}
	for _, depth := range []int{-1, MaxDepth + 1} {
		if _, err := NewQuadTree(NewBB(0, 0, 10, 10), depth); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Depth %d: expected ErrInvalidInput, got %v", depth, err)
		}
	}
	if _, err := NewQuadTree(NewBB(0, 0, 0, 10), 2); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for an empty region, got %v", err)
	}
}

func TestQuadTree_Layout(t *testing.T) {
	tree, _ := NewQuadTree(NewBB(0, 0, 16, 16), 2)
	if tree.NodeBB(child(0, 1)) != NewBB(8, 0, 16, 8) {
		t.Errorf("Unexpected second quadrant %v", tree.NodeBB(child(0, 1)))
	}
	if tree.NodeBB(child(child(0, 3), 2)) != NewBB(8, 12, 12, 16) {
		t.Errorf("Unexpected grandchild %v", tree.NodeBB(child(child(0, 3), 2)))
	}
	for i := 1; i < tree.NumNodes(); i++ {
		if !tree.NodeBB(parent(i)).Contains(tree.NodeBB(i)) {
			t.Errorf("Node %d escapes its parent", i)
		}
	}
}

func TestQuadTree_Placement(t *testing.T) {
	tree, _ := NewQuadTree(NewBB(0, 0, 16, 16), 2)
	cases := []struct {
		name string
		form *Form
		node int
	}{
		{"leaf", square(t, 1, 1, 1), child(child(0, 0), 0)},
		{"across center", square(t, 7, 7, 2), 0},
		{"outside", square(t, -5, -5, 1), 0},
		{"on a quadrant border", square(t, 8, 1, 1), 0},
		{"across a level two border", square(t, 3, 1, 2), child(0, 0)},
	}
	for _, c := range cases {
		if err := tree.Insert(c.form); err != nil {
			t.Fatal(err)
		}
		if got := tree.NodeOf(c.form); got != c.node {
			t.Errorf("%s: expected node %d, got %d", c.name, c.node, got)
		}
	}
	if tree.Count() != len(cases) {
		t.Errorf("Expected %d forms, got %d", len(cases), tree.Count())
	}
	if err := tree.Insert(cases[0].form); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("Expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestQuadTree_Reinsert(t *testing.T) {
	tree, _ := NewQuadTree(NewBB(0, 0, 16, 16), 2)
	f := square(t, 1, 1, 1)
	_ = tree.Insert(f)

	if err := f.Translate(Vector{12, 12}); err != nil {
		t.Fatal(err)
	}
	if got, want := tree.NodeOf(f), child(child(0, 3), 3); got != want {
		t.Errorf("Expected node %d after moving, got %d", want, got)
	}

	var found []*Form
	tree.Query(NewBB(13.5, 13.5, 14, 14), func(f *Form) { found = append(found, f) })
	if len(found) != 1 || found[0] != f {
		t.Errorf("Expected moved form at its new place, got %v", found)
	}
	found = found[:0]
	tree.Query(NewBB(0, 0, 3, 3), func(f *Form) { found = append(found, f) })
	if len(found) != 0 {
		t.Errorf("Expected nothing at the old place, got %v", found)
	}

	// still followed after reinsertion
	if err := f.Translate(Vector{-6, 0}); err != nil {
		t.Fatal(err)
	}
	if got := tree.NodeOf(f); got != 0 {
		t.Errorf("Expected root for a form across the center, got %d", got)
	}
}

func TestQuadTree_Remove(t *testing.T) {
	tree, _ := NewQuadTree(NewBB(0, 0, 16, 16), 3)
	f := square(t, 1, 1, 1)
	_ = tree.Insert(f)
	if !tree.Contains(f) {
		t.Fatal("Expected the form to be stored")
	}
	if !tree.Remove(f) || tree.Remove(f) {
		t.Error("Remove should succeed exactly once")
	}
	if tree.Count() != 0 || tree.Contains(f) || f.Registered() {
		t.Error("Form still tracked after removal")
	}

	// no longer followed
	_ = f.Translate(Vector{5, 5})
	var n int
	tree.Each(func(*Form) { n++ })
	if n != 0 {
		t.Errorf("Expected an empty tree, got %d forms", n)
	}
}

func TestQuadTree_PointQuery(t *testing.T) {
	tree, _ := NewQuadTree(NewBB(0, 0, 16, 16), 2)
	leaf := square(t, 1, 1, 1)
	level1 := square(t, 3, 1, 2)
	root := square(t, 7, 7, 2)
	other := square(t, 13, 13, 1)
	for _, f := range []*Form{leaf, level1, root, other} {
		_ = tree.Insert(f)
	}

	got := map[*Form]bool{}
	tree.PointQuery(Vector{1.5, 1.5}, func(f *Form) { got[f] = true })
	if !got[leaf] || !got[level1] || !got[root] || got[other] {
		t.Errorf("Unexpected candidates %v", got)
	}

	got = map[*Form]bool{}
	tree.PointQuery(Vector{-3, -3}, func(f *Form) { got[f] = true })
	if len(got) != 1 || !got[root] {
		t.Errorf("Expected only root forms outside the region, got %v", got)
	}
}

func TestQuadTree_QueryOrderIndependent(t *testing.T) {
	const size = 16
	var forms []*Form
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			forms = append(forms, mustCircle(t, Vector{float64(x) + 0.5, float64(y) + 0.5}, 0.25))
		}
	}
	rects := []BB{
		NewBB(0, 0, 16, 16),
		NewBB(2, 3, 5, 11),
		NewBB(7, 7, 9, 9),
		NewBB(12, 0, 16, 4),
		NewBB(-4, -4, 1, 1),
	}

	rng := rand.New(rand.NewSource(1))
	for depth := 0; depth <= 4; depth++ {
		for round := 0; round < 3; round++ {
			tree, _ := NewQuadTree(NewBB(0, 0, size, size), depth)
			order := rng.Perm(len(forms))
			for _, i := range order {
				if err := tree.Insert(forms[i]); err != nil {
					t.Fatal(err)
				}
			}
			for _, r := range rects {
				var got []Vector
				tree.Query(r, func(f *Form) { got = append(got, f.Center()) })

				var want []Vector
				for _, f := range forms {
					if r.ContainsVect(f.Center()) {
						want = append(want, f.Center())
					}
				}
				if !sameSet(got, want) {
					t.Errorf("Depth %d rect %v: expected %d forms, got %d", depth, r, len(want), len(got))
				}
			}
			for _, f := range forms {
				tree.Remove(f)
			}
		}
	}
}

func sameSet(a, b []Vector) bool {
	if len(a) != len(b) {
		return false
	}
	less := func(s []Vector) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].X != s[j].X {
				return s[i].X < s[j].X
			}
			return s[i].Y < s[j].Y
		}
	}
	sort.Slice(a, less(a))
	sort.Slice(b, less(b))
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
