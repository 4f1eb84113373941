package collide

import (
	"fmt"
	"sort"
)

// Node is a point where the boundaries of two polygons cross. Edges holds
// every boundary piece that starts or ends here, in descending angle order
// measured from straight up.
type Node struct {
	Position Vector
	Edges    []*EdgeSequence
}

// EdgeSequence is a piece of one polygon's boundary between two crossings.
// Points are the polygon vertices strictly between them.
type EdgeSequence struct {
	Points []Vector
	Next   *Node

	from    *Node
	visited bool
}

// From is the node the sequence leaves.
func (s *EdgeSequence) From() *Node {
	return s.from
}

func (n *Node) departs(s *EdgeSequence) bool {
	return s.Next != n
}

type crossing struct {
	node  *Node
	coeff float64
}

// PolyIntersect builds the arrangement of two polygon boundaries. It returns
// one node per proper edge crossing. Each node links the four boundary pieces
// that meet at it. Touching vertices are not treated as crossings.
func PolyIntersect(a, b []Vector) ([]*Node, error) {
	if err := validatePolygon(a); err != nil {
		return nil, err
	}
	if err := validatePolygon(b); err != nil {
		return nil, err
	}
	return polyIntersect(a, b), nil
}

func polyIntersect(a, b []Vector) []*Node {
	var nodes []*Node
	cutsA := make([][]crossing, len(a))
	cutsB := make([][]crossing, len(b))
	for i := range a {
		aDir := a[Next(i, len(a))].Sub(a[i])
		for j := range b {
			bDir := b[Next(j, len(b))].Sub(b[j])
			hit := lineIntersect(a[i], aDir, b[j], bDir)
			if !hit.Intersects || hit.ACoeff <= 0 || hit.ACoeff >= 1 || hit.BCoeff <= 0 || hit.BCoeff >= 1 {
				continue
			}
			node := &Node{Position: hit.Point}
			nodes = append(nodes, node)
			cutsA[i] = append(cutsA[i], crossing{node, hit.ACoeff})
			cutsB[j] = append(cutsB[j], crossing{node, hit.BCoeff})
		}
	}

	linkEdgeSequences(cutsA, a)
	linkEdgeSequences(cutsB, b)

	for _, node := range nodes {
		sortEdges(node)
	}
	return nodes
}

// linkEdgeSequences walks one polygon and cuts its boundary at every crossing.
func linkEdgeSequences(cuts [][]crossing, verts []Vector) {
	var (
		current   *EdgeSequence
		firstNode *Node
		firstEdge = -1
		lastEdge  = -1
	)
	for edge, edgeCuts := range cuts {
		if len(edgeCuts) == 0 {
			continue
		}
		if firstEdge < 0 {
			firstEdge = edge
		}
		sort.SliceStable(edgeCuts, func(i, j int) bool {
			return edgeCuts[i].coeff < edgeCuts[j].coeff
		})
		if current != nil {
			current.Points = append(current.Points, verts[lastEdge+1:edge+1]...)
		}
		for _, cut := range edgeCuts {
			if firstNode == nil {
				firstNode = cut.node
			}
			if current != nil {
				current.Next = cut.node
				cut.node.Edges = append(cut.node.Edges, current)
			}
			current = &EdgeSequence{from: cut.node}
			cut.node.Edges = append(cut.node.Edges, current)
		}
		lastEdge = edge
	}
	if current == nil {
		return
	}

	// the last piece wraps around to the first crossing
	for i := Next(lastEdge, len(verts)); i != firstEdge; i = Next(i, len(verts)) {
		current.Points = append(current.Points, verts[i])
	}
	current.Points = append(current.Points, verts[firstEdge])
	current.Next = firstNode
	firstNode.Edges = append(firstNode.Edges, current)
}

func sortEdges(node *Node) {
	up := node.Position.Add(Vector{0, -1})
	angles := make(map[*EdgeSequence]float64, len(node.Edges))
	for _, s := range node.Edges {
		angles[s] = Angle(up, node.Position, s.towards(node))
	}
	sort.SliceStable(node.Edges, func(i, j int) bool {
		return angles[node.Edges[i]] > angles[node.Edges[j]]
	})
}

// towards returns the first point of s seen from node.
func (s *EdgeSequence) towards(node *Node) Vector {
	if node.departs(s) {
		if len(s.Points) > 0 {
			return s.Points[0]
		}
		return s.Next.Position
	}
	if len(s.Points) > 0 {
		return s.Points[len(s.Points)-1]
	}
	return s.from.Position
}

// Union returns the boundary loops of the union of two polygons. When the
// boundaries cross, every loop of the arrangement is returned, outer boundary
// and holes alike. Otherwise the result is the polygon that contains the
// other, or both polygons when they are disjoint. The inputs may wind either
// way.
func Union(a, b []Vector) ([][]Vector, error) {
	if err := validatePolygon(a); err != nil {
		return nil, err
	}
	if err := validatePolygon(b); err != nil {
		return nil, err
	}
	if windTest(b) != windTest(a) {
		b = reversed(b)
	}

	nodes := polyIntersect(a, b)
	if len(nodes) == 0 {
		switch {
		case pointInPolygon(a[0], b):
			return [][]Vector{copyVerts(b)}, nil
		case pointInPolygon(b[0], a):
			return [][]Vector{copyVerts(a)}, nil
		}
		return [][]Vector{copyVerts(a), copyVerts(b)}, nil
	}

	var loops [][]Vector
	for _, start := range nodes {
		for {
			seq := firstDeparture(start)
			if seq == nil {
				break
			}
			loop, err := walkLoop(start, seq)
			if err != nil {
				return nil, err
			}
			loops = append(loops, loop)
		}
	}
	return loops, nil
}

func firstDeparture(node *Node) *EdgeSequence {
	for _, s := range node.Edges {
		if node.departs(s) && !s.visited {
			return s
		}
	}
	return nil
}

// walkLoop follows edge sequences from start until it returns there.
func walkLoop(start *Node, seq *EdgeSequence) ([]Vector, error) {
	var loop PolyLine
	loop.Push(start.Position)
	seq.visited = true
	for {
		loop.Push(seq.Points...)
		if seq.Next == start {
			return loop.Verts, nil
		}
		node := seq.Next
		loop.Push(node.Position)

		next, err := nextDeparture(node, seq)
		if err != nil {
			return nil, err
		}
		if next.visited {
			return nil, fmt.Errorf("%w: edge sequence at %v visited twice", ErrInvariant, node.Position)
		}
		next.visited = true
		seq = next
	}
}

// nextDeparture scans the node's edges after the arriving sequence and picks
// the first departing one not enclosed by another arrival/departure pair.
func nextDeparture(node *Node, arrived *EdgeSequence) (*EdgeSequence, error) {
	at := -1
	for i, s := range node.Edges {
		if s == arrived {
			at = i
			break
		}
	}
	if at < 0 {
		return nil, fmt.Errorf("%w: arriving sequence not registered at %v", ErrInvariant, node.Position)
	}

	nest := 0
	count := len(node.Edges)
	for k := 1; k < count; k++ {
		s := node.Edges[(at+k)%count]
		if node.departs(s) && nest == 0 {
			return s, nil
		}
		if node.departs(s) {
			nest--
		} else {
			nest++
		}
	}
	return nil, fmt.Errorf("%w: no continuation at %v", ErrInvariant, node.Position)
}

func copyVerts(verts []Vector) []Vector {
	return append([]Vector(nil), verts...)
}
