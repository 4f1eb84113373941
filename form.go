package collide

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// PointExtent is the half-size of a point form's bounding box.
const PointExtent = 1.0

// Kind selects the geometry a Form carries. The order is the collision
// dispatch order.
type Kind int

const (
	KindPoint Kind = iota
	KindCircle
	KindPolygon
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Observer is told after a form's geometry changes.
type Observer interface {
	GeometryChanged(f *Form)
}

type ObserverFunc func(f *Form)

func (fn ObserverFunc) GeometryChanged(f *Form) {
	fn(f)
}

// Subscription identifies one observer registration on a form.
type Subscription uint64

type subscriber struct {
	id Subscription
	o  Observer
}

// Form is a collidable shape: a point, a circle or a polygon. Geometry is
// changed only through the mutators, which keep the bounding box cache and
// any spatial index in step.
type Form struct {
	id    uuid.UUID
	kind  Kind
	owner any

	verts  []Vector
	center Vector
	radius float64

	bb      BB
	bbValid bool

	observers []subscriber
	nextSub   Subscription

	// set while stored in a QuadTree
	tree    *QuadTree
	node    int
	treeSub Subscription
}

func newForm(kind Kind) *Form {
	return &Form{id: uuid.New(), kind: kind, node: -1}
}

func NewPointForm(p Vector) (*Form, error) {
	if err := validateVectors(p); err != nil {
		return nil, err
	}
	f := newForm(KindPoint)
	f.center = p
	return f, nil
}

func NewCircleForm(center Vector, radius float64) (*Form, error) {
	if err := validateCircle(center, radius); err != nil {
		return nil, err
	}
	f := newForm(KindCircle)
	f.center = center
	f.radius = radius
	return f, nil
}

// NewPolygonForm copies verts.
func NewPolygonForm(verts []Vector) (*Form, error) {
	if err := validatePolygon(verts); err != nil {
		return nil, err
	}
	f := newForm(KindPolygon)
	f.verts = copyVerts(verts)
	return f, nil
}

func validateCircle(center Vector, radius float64) error {
	if err := validateVectors(center); err != nil {
		return err
	}
	if !(radius >= 0) || math.IsInf(radius, 0) {
		return fmt.Errorf("%w: radius %v", ErrInvalidInput, radius)
	}
	return nil
}

func (f *Form) ID() uuid.UUID {
	return f.id
}

func (f *Form) Kind() Kind {
	return f.kind
}

// Owner is the opaque handle the form was registered with.
func (f *Form) Owner() any {
	return f.owner
}

func (f *Form) SetOwner(owner any) {
	f.owner = owner
}

// Center is the point of a point form or the center of a circle. For a
// polygon it is the center of the bounding box.
func (f *Form) Center() Vector {
	if f.kind == KindPolygon {
		return f.BB().Center()
	}
	return f.center
}

// Radius is zero for point and polygon forms.
func (f *Form) Radius() float64 {
	return f.radius
}

// Vertices returns a copy of a polygon's vertices, nil for other kinds.
func (f *Form) Vertices() []Vector {
	if f.kind != KindPolygon {
		return nil
	}
	return copyVerts(f.verts)
}

func (f *Form) NumVertices() int {
	return len(f.verts)
}

func (f *Form) Vertex(i int) Vector {
	return f.verts[i]
}

// BB returns the cached bounding box, recomputing it after a change.
func (f *Form) BB() BB {
	if !f.bbValid {
		switch f.kind {
		case KindPoint:
			f.bb = NewBBForExtents(f.center, PointExtent, PointExtent)
		case KindCircle:
			f.bb = NewBBForCircle(f.center, f.radius)
		case KindPolygon:
			f.bb = NewBBForPoints(f.verts)
		}
		f.bbValid = true
	}
	return f.bb
}

// Registered reports whether the form is stored in a spatial index.
func (f *Form) Registered() bool {
	return f.tree != nil
}

// Copy returns an unregistered duplicate with a fresh ID and the same owner.
func (f *Form) Copy() *Form {
	c := newForm(f.kind)
	c.owner = f.owner
	c.verts = copyVerts(f.verts)
	c.center = f.center
	c.radius = f.radius
	c.bb, c.bbValid = f.bb, f.bbValid
	return c
}

func (f *Form) String() string {
	switch f.kind {
	case KindPolygon:
		return fmt.Sprintf("polygon%v", f.verts)
	case KindCircle:
		return fmt.Sprintf("circle(%v r=%g)", f.center, f.radius)
	}
	return fmt.Sprintf("point%v", f.center)
}

// Subscribe registers o to be told about geometry changes. Observers are
// called in subscription order.
func (f *Form) Subscribe(o Observer) Subscription {
	f.nextSub++
	f.observers = append(f.observers, subscriber{f.nextSub, o})
	return f.nextSub
}

// Unsubscribe removes a registration. It reports whether s was found.
func (f *Form) Unsubscribe(s Subscription) bool {
	for i, sub := range f.observers {
		if sub.id == s {
			f.observers = append(f.observers[:i:i], f.observers[i+1:]...)
			return true
		}
	}
	return false
}

func (f *Form) changed() {
	f.bbValid = false
	// observers may unsubscribe while being notified
	snapshot := append([]subscriber(nil), f.observers...)
	for _, sub := range snapshot {
		sub.o.GeometryChanged(f)
	}
}

func (f *Form) SetVertex(i int, v Vector) error {
	if f.kind != KindPolygon {
		return fmt.Errorf("%w: SetVertex on %v", ErrWrongKind, f.kind)
	}
	if i < 0 || i >= len(f.verts) {
		return fmt.Errorf("%w: vertex index %d of %d", ErrInvalidInput, i, len(f.verts))
	}
	verts := copyVerts(f.verts)
	verts[i] = v
	if err := validatePolygon(verts); err != nil {
		return err
	}
	f.verts = verts
	f.changed()
	return nil
}

func (f *Form) ReplaceVertices(verts []Vector) error {
	if f.kind != KindPolygon {
		return fmt.Errorf("%w: ReplaceVertices on %v", ErrWrongKind, f.kind)
	}
	if err := validatePolygon(verts); err != nil {
		return err
	}
	f.verts = copyVerts(verts)
	f.changed()
	return nil
}

// Translate moves the form by d. Any kind can be translated.
func (f *Form) Translate(d Vector) error {
	if err := validateVectors(d); err != nil {
		return err
	}
	if f.kind == KindPolygon {
		verts := make([]Vector, len(f.verts))
		for i, v := range f.verts {
			verts[i] = v.Add(d)
		}
		if err := validatePolygon(verts); err != nil {
			return err
		}
		f.verts = verts
	} else {
		c := f.center.Add(d)
		if err := validateVectors(c); err != nil {
			return err
		}
		f.center = c
	}
	f.changed()
	return nil
}

func (f *Form) SetCenter(c Vector) error {
	if f.kind == KindPolygon {
		return fmt.Errorf("%w: SetCenter on %v", ErrWrongKind, f.kind)
	}
	if err := validateVectors(c); err != nil {
		return err
	}
	f.center = c
	f.changed()
	return nil
}

func (f *Form) SetRadius(r float64) error {
	if f.kind != KindCircle {
		return fmt.Errorf("%w: SetRadius on %v", ErrWrongKind, f.kind)
	}
	if err := validateCircle(f.center, r); err != nil {
		return err
	}
	f.radius = r
	f.changed()
	return nil
}

// ApplyTransform maps the form's points through t. A circle keeps its radius.
// The transform must be finite and invertible so polygons stay non-degenerate.
func (f *Form) ApplyTransform(t Transform) error {
	if !t.isFinite() || !t.Invertible() {
		return fmt.Errorf("%w: singular transform", ErrInvalidInput)
	}
	if f.kind == KindPolygon {
		verts := make([]Vector, len(f.verts))
		for i, v := range f.verts {
			verts[i] = t.Point(v)
		}
		if err := validatePolygon(verts); err != nil {
			return err
		}
		f.verts = verts
	} else {
		c := t.Point(f.center)
		if err := validateVectors(c); err != nil {
			return err
		}
		f.center = c
	}
	f.changed()
	return nil
}
