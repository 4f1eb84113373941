package collide

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Manager registers forms in a spatial index and answers collision queries
// against them.
type Manager struct {
	index  SpatialIndexer
	forms  map[uuid.UUID]*Form
	logger *slog.Logger
}

// NewManager covers the region from origin to origin+(width,height) with a
// quad tree. Forms outside the region are still tracked at the root.
func NewManager(origin Vector, width, height float64, opts ...Option) (*Manager, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateVectors(origin, Vector{width, height}); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: region %gx%g", ErrInvalidInput, width, height)
	}

	tree, err := NewQuadTree(NewBB(origin.X, origin.Y, origin.X+width, origin.Y+height), o.depth)
	if err != nil {
		return nil, err
	}
	tree.SetLogger(o.logger)
	return &Manager{
		index:  tree,
		forms:  map[uuid.UUID]*Form{},
		logger: o.logger,
	}, nil
}

func (m *Manager) log() *slog.Logger {
	if m.logger != nil {
		return m.logger
	}
	return Logger()
}

func (m *Manager) AddPolygon(owner any, verts []Vector) (*Form, error) {
	f, err := NewPolygonForm(verts)
	if err != nil {
		return nil, err
	}
	f.owner = owner
	return f, m.Add(f)
}

func (m *Manager) AddCircle(owner any, center Vector, radius float64) (*Form, error) {
	f, err := NewCircleForm(center, radius)
	if err != nil {
		return nil, err
	}
	f.owner = owner
	return f, m.Add(f)
}

func (m *Manager) AddPoint(owner any, p Vector) (*Form, error) {
	f, err := NewPointForm(p)
	if err != nil {
		return nil, err
	}
	f.owner = owner
	return f, m.Add(f)
}

// Add registers a form built by one of the New*Form constructors.
func (m *Manager) Add(f *Form) error {
	if f == nil {
		return fmt.Errorf("%w: nil form", ErrInvalidInput)
	}
	if f.Registered() {
		return fmt.Errorf("%w: form %v", ErrAlreadyRegistered, f.id)
	}
	if err := m.index.Insert(f); err != nil {
		return err
	}
	m.forms[f.id] = f
	m.log().Debug("form added", "form", f.id, "kind", f.kind)
	return nil
}

// Remove unregisters f. The form stays usable and can be added again.
func (m *Manager) Remove(f *Form) error {
	if f == nil || m.forms[f.id] != f {
		var id any
		if f != nil {
			id = f.id
		}
		m.log().Warn("removing unregistered form", "form", id)
		return fmt.Errorf("%w: form %v", ErrNotRegistered, id)
	}
	m.index.Remove(f)
	delete(m.forms, f.id)
	m.log().Debug("form removed", "form", f.id, "kind", f.kind)
	return nil
}

func (m *Manager) Lookup(id uuid.UUID) (*Form, bool) {
	f, ok := m.forms[id]
	return f, ok
}

func (m *Manager) Count() int {
	return m.index.Count()
}

func (m *Manager) Each(f SpatialIndexIterator) {
	m.index.Each(f)
}

// CollisionsWith returns every registered form other than f that intersects
// it. f itself need not be registered and never appears in its own result.
func (m *Manager) CollisionsWith(f *Form) []*Form {
	return m.collisions(f, f)
}

func (m *Manager) collisions(query, exclude *Form) []*Form {
	var hits []*Form
	m.index.Query(query.BB().Grow(Tolerance), func(other *Form) {
		if other != exclude && Intersects(query, other) {
			hits = append(hits, other)
		}
	})
	return hits
}

// FormsAt returns the registered forms touching p. It runs the same padded
// region query as CollisionsWith rather than QuadTree.PointQuery, which can
// miss forms near a quadrant border.
func (m *Manager) FormsAt(p Vector) ([]*Form, error) {
	query, err := NewPointForm(p)
	if err != nil {
		return nil, err
	}
	return m.CollisionsWith(query), nil
}

// FormsInRect returns the registered forms touching bb, which must have area.
func (m *Manager) FormsInRect(bb BB) ([]*Form, error) {
	query, err := NewPolygonForm(bb.Vertices())
	if err != nil {
		return nil, err
	}
	return m.CollisionsWith(query), nil
}

// TryMove translates f by delta unless the moved form would collide with
// another registered form. It reports whether f moved.
func (m *Manager) TryMove(f *Form, delta Vector) (bool, error) {
	moved := f.Copy()
	if err := moved.Translate(delta); err != nil {
		return false, err
	}
	if len(m.collisions(moved, f)) > 0 {
		return false, nil
	}
	return true, f.Translate(delta)
}
