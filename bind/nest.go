package bind

import (
	"fmt"

	"github.com/jbweber/virtbind/xmltree"
)

// Binder is anything that exposes a bound entity. *Entity implements it
// directly; concrete device and domain types implement it by embedding.
type Binder interface {
	Base() *Entity
}

// ElementNest binds one child node at Path to a full sub-entity.
//
// Get re-roots a fresh sub-entity over the child node itself, sharing it
// with the owner: mutations made through the sub-entity are visible in the
// owner's document, which is what gives SetupAttrs its merge semantics.
//
// Set detaches any existing child at Path, then adopts the value's root
// node under Path's parent. Adoption re-points rather than copies, so the
// value and the owner alias the same subtree afterwards.
type ElementNest struct {
	Path string
	// New constructs an empty sub-entity of the bound type; its kind and
	// root tag define what Set accepts.
	New func() *Entity
}

func (a *ElementNest) Get(e *Entity) (any, error) {
	n := e.tree.Find(a.Path)
	if n == nil {
		return nil, fmt.Errorf("element %q: %w", a.Path, ErrNotFound)
	}
	sub := a.New()
	sub.tree = xmltree.Wrap(n)
	return sub, nil
}

func (a *ElementNest) Set(e *Entity, value any) error {
	b, ok := value.(Binder)
	if !ok {
		return fmt.Errorf("element %q: %w: expected %s, got %T",
			a.Path, ErrShape, a.New().kind, value)
	}
	sub := b.Base()
	want := a.New()
	if sub.kind != want.kind {
		return fmt.Errorf("element %q: %w: expected %s, got %s",
			a.Path, ErrShape, want.kind, sub.kind)
	}

	parentPath, leaf := splitPath(a.Path)
	if root := sub.tree.Root(); root.Tag != leaf {
		return fmt.Errorf("element %q: %w: expected root <%s>, got <%s>",
			a.Path, ErrShape, leaf, root.Tag)
	}

	if existing := e.tree.Find(a.Path); existing != nil {
		e.tree.Remove(existing)
	}
	e.tree.CreateAlong(parentPath).Append(sub.tree.Root())
	return nil
}

func (a *ElementNest) Delete(e *Entity) error {
	if n := e.tree.Find(a.Path); n != nil {
		e.tree.Remove(n)
	}
	return nil
}
