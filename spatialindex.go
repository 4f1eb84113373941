package collide

type SpatialIndexIterator func(f *Form)

// SpatialIndexer stores forms by bounding box. Implemented by QuadTree.
// Iterators must not insert or remove forms.
type SpatialIndexer interface {
	Count() int
	Each(f SpatialIndexIterator)
	Contains(obj *Form) bool
	Insert(obj *Form) error
	Remove(obj *Form) bool
	// ReindexObject moves obj after its bounding box changed.
	ReindexObject(obj *Form)
	// Query calls f for every stored form whose bounding box overlaps bb.
	Query(bb BB, f SpatialIndexIterator)
	// PointQuery calls f for every form stored on the path from the deepest
	// region containing p up to the root. Callers filter the candidates.
	PointQuery(p Vector, f SpatialIndexIterator)
}
