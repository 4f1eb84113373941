package collide

import (
	"fmt"
	"log/slog"
)

const (
	// DefaultDepth builds six levels, 1365 nodes.
	DefaultDepth = 5
	MaxDepth     = 8
)

type quadNode struct {
	bb    BB
	forms []*Form
}

// QuadTree is a quad partition built eagerly to a fixed depth. Nodes live in
// a flat slice in heap order: the children of i are 4i+1..4i+4.
//
// A form is stored at the deepest node whose region is the only child region
// its bounding box overlaps. Forms reaching outside the root stay at the root.
type QuadTree struct {
	nodes  []quadNode
	depth  int
	count  int
	logger *slog.Logger
}

var _ SpatialIndexer = (*QuadTree)(nil)

func NewQuadTree(bb BB, depth int) (*QuadTree, error) {
	if depth < 0 || depth > MaxDepth {
		return nil, fmt.Errorf("%w: depth %d outside 0..%d", ErrInvalidInput, depth, MaxDepth)
	}
	if err := validateVectors(bb.Min(), bb.Max()); err != nil {
		return nil, err
	}
	if bb.Width() <= 0 || bb.Height() <= 0 {
		return nil, fmt.Errorf("%w: empty region %v", ErrInvalidInput, bb)
	}

	size := 1
	for level, width := 1, 1; level <= depth; level++ {
		width *= 4
		size += width
	}
	tree := &QuadTree{
		nodes: make([]quadNode, size),
		depth: depth,
	}
	tree.nodes[0].bb = bb
	for i := range tree.nodes {
		if tree.isLeaf(i) {
			continue
		}
		for k, q := range tree.nodes[i].bb.Quadrants() {
			tree.nodes[child(i, k)].bb = q
		}
	}
	return tree, nil
}

func child(i, k int) int {
	return 4*i + 1 + k
}

func parent(i int) int {
	return (i - 1) / 4
}

func (tree *QuadTree) isLeaf(i int) bool {
	return child(i, 0) >= len(tree.nodes)
}

func (tree *QuadTree) log() *slog.Logger {
	if tree.logger != nil {
		return tree.logger
	}
	return Logger()
}

// SetLogger overrides the package logger for this tree.
func (tree *QuadTree) SetLogger(l *slog.Logger) {
	tree.logger = l
}

func (tree *QuadTree) BB() BB {
	return tree.nodes[0].bb
}

func (tree *QuadTree) Depth() int {
	return tree.depth
}

func (tree *QuadTree) NumNodes() int {
	return len(tree.nodes)
}

func (tree *QuadTree) Count() int {
	return tree.count
}

func (tree *QuadTree) Each(f SpatialIndexIterator) {
	for i := range tree.nodes {
		for _, obj := range tree.nodes[i].forms {
			f(obj)
		}
	}
}

func (tree *QuadTree) Contains(obj *Form) bool {
	return obj.tree == tree
}

// locate returns the node a box of this size and position belongs to.
func (tree *QuadTree) locate(bb BB) int {
	if !tree.nodes[0].bb.Contains(bb) {
		return 0
	}
	i := 0
	for !tree.isLeaf(i) {
		next, hits := -1, 0
		for k := 0; k < 4; k++ {
			if tree.nodes[child(i, k)].bb.Intersects(bb) {
				next = child(i, k)
				hits++
			}
		}
		if hits != 1 {
			break
		}
		i = next
	}
	return i
}

// Insert stores obj and follows its geometry changes until it is removed.
func (tree *QuadTree) Insert(obj *Form) error {
	if obj.tree != nil {
		return fmt.Errorf("%w: form %v", ErrAlreadyRegistered, obj.id)
	}
	tree.attach(obj, tree.locate(obj.BB()))
	tree.count++
	tree.log().Debug("quadtree insert", "form", obj.id, "kind", obj.kind, "node", obj.node)
	return nil
}

func (tree *QuadTree) attach(obj *Form, i int) {
	tree.nodes[i].forms = append(tree.nodes[i].forms, obj)
	obj.tree = tree
	obj.node = i
	obj.treeSub = obj.Subscribe(ObserverFunc(tree.ReindexObject))
}

func (tree *QuadTree) detach(obj *Form) {
	forms := tree.nodes[obj.node].forms
	for k, other := range forms {
		if other == obj {
			last := len(forms) - 1
			forms[k] = forms[last]
			forms[last] = nil
			tree.nodes[obj.node].forms = forms[:last]
			break
		}
	}
	obj.Unsubscribe(obj.treeSub)
	obj.tree = nil
	obj.node = -1
	obj.treeSub = 0
}

// Remove reports whether obj was stored in this tree.
func (tree *QuadTree) Remove(obj *Form) bool {
	if obj.tree != tree {
		return false
	}
	node := obj.node
	tree.detach(obj)
	tree.count--
	tree.log().Debug("quadtree remove", "form", obj.id, "node", node)
	return true
}

func (tree *QuadTree) ReindexObject(obj *Form) {
	if obj.tree != tree {
		return
	}
	to := tree.locate(obj.BB())
	if to == obj.node {
		return
	}
	from := obj.node
	tree.detach(obj)
	tree.attach(obj, tree.locate(obj.BB()))
	tree.log().Debug("quadtree reinsert", "form", obj.id, "from", from, "to", obj.node)
}

func (tree *QuadTree) Query(bb BB, f SpatialIndexIterator) {
	tree.query(0, bb, f)
}

func (tree *QuadTree) query(i int, bb BB, f SpatialIndexIterator) {
	if i != 0 && !tree.nodes[i].bb.Intersects(bb) {
		return
	}
	for _, obj := range tree.nodes[i].forms {
		if obj.BB().Intersects(bb) {
			f(obj)
		}
	}
	if tree.isLeaf(i) {
		return
	}
	for k := 0; k < 4; k++ {
		tree.query(child(i, k), bb, f)
	}
}

func (tree *QuadTree) PointQuery(p Vector, f SpatialIndexIterator) {
	i := 0
	if tree.nodes[0].bb.ContainsVect(p) {
	descend:
		for !tree.isLeaf(i) {
			for k := 0; k < 4; k++ {
				if tree.nodes[child(i, k)].bb.ContainsVect(p) {
					i = child(i, k)
					continue descend
				}
			}
			break
		}
	}
	for {
		for _, obj := range tree.nodes[i].forms {
			f(obj)
		}
		if i == 0 {
			return
		}
		i = parent(i)
	}
}

// NodeOf returns the heap index of the node holding obj, or -1.
func (tree *QuadTree) NodeOf(obj *Form) int {
	if obj.tree != tree {
		return -1
	}
	return obj.node
}

// NodeBB returns the region of heap node i.
func (tree *QuadTree) NodeBB(i int) BB {
	return tree.nodes[i].bb
}
