package bind

import (
	"fmt"

	"github.com/jbweber/virtbind/xmltree"
)

// Entity is an object composed of a fixed slot table of accessors plus
// exactly one owned backing tree. It is the unit of get/set/delete
// dispatch, structural equality, copying and bulk structured access.
//
// Concrete types (devices, the domain document) embed *Entity and declare
// their slots at construction time; the slot table is fixed afterwards.
//
// Entities are not safe for concurrent mutation, and Copy is not
// transactional against a concurrently mutating source. Callers that need
// either must lock externally.
type Entity struct {
	kind  string
	tag   string
	tree  *xmltree.Tree
	slots map[string]Accessor
	// order preserves declaration order so bulk operations and equality
	// visit slots deterministically.
	order        []string
	uncomparable map[string]struct{}
}

// New returns an entity of the given kind over the minimal default tree
// <tag/>. kind is the concrete type identity used by equality and by
// ElementNest shape checks.
func New(kind, tag string) *Entity {
	return &Entity{
		kind:         kind,
		tag:          tag,
		tree:         xmltree.Wrap(xmltree.NewNode(tag)),
		slots:        make(map[string]Accessor),
		uncomparable: make(map[string]struct{}),
	}
}

// Bind declares a slot. Redeclaring a name replaces its accessor in place,
// which is how subtypes forbid or specialize inherited slots.
func (e *Entity) Bind(name string, a Accessor) {
	if _, exists := e.slots[name]; !exists {
		e.order = append(e.order, name)
	}
	e.slots[name] = a
}

// Uncomparable excludes the named slots from Equal and FetchAttrs.
func (e *Entity) Uncomparable(names ...string) {
	for _, n := range names {
		e.uncomparable[n] = struct{}{}
	}
}

// Kind returns the entity's concrete type identity.
func (e *Entity) Kind() string { return e.kind }

// Tag returns the entity's declared root tag.
func (e *Entity) Tag() string { return e.tag }

// Tree exposes the owned backing tree for collaborators that hand the
// document to external tools.
func (e *Entity) Tree() *xmltree.Tree { return e.tree }

// Base makes *Entity satisfy Binder, so embedding types do too.
func (e *Entity) Base() *Entity { return e }

// Slots returns the declared slot names in declaration order.
func (e *Entity) Slots() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// LoadXML replaces the owned tree with one parsed from literal XML text.
// On parse failure the entity is left untouched. The parsed root tag must
// match the entity's declared tag.
func (e *Entity) LoadXML(text string) error {
	t, err := xmltree.Parse(text)
	if err != nil {
		return err
	}
	return e.adopt(t)
}

// LoadFile is LoadXML over the document at path.
func (e *Entity) LoadFile(path string) error {
	t, err := xmltree.ParseFile(path)
	if err != nil {
		return err
	}
	return e.adopt(t)
}

// LoadTree re-points the entity at an already-parsed tree.
func (e *Entity) LoadTree(t *xmltree.Tree) error {
	return e.adopt(t)
}

func (e *Entity) adopt(t *xmltree.Tree) error {
	if got := t.Root().Tag; got != e.tag {
		return fmt.Errorf("%s: %w: expected root <%s>, got <%s>", e.kind, ErrShape, e.tag, got)
	}
	e.tree.Release()
	e.tree = t
	return nil
}

func (e *Entity) accessor(name string) (Accessor, error) {
	a, ok := e.slots[name]
	if !ok {
		return nil, fmt.Errorf("%s has no slot %q: %w", e.kind, name, ErrUnboundProperty)
	}
	return a, nil
}

// Get reads the named slot. An undeclared name is a programmer error
// (ErrUnboundProperty); an absent optional target is ErrNotFound.
func (e *Entity) Get(name string) (any, error) {
	a, err := e.accessor(name)
	if err != nil {
		return nil, err
	}
	return a.Get(e)
}

// GetString reads a string-valued slot.
func (e *Entity) GetString(name string) (string, error) {
	v, err := e.Get(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("slot %q: %w: expected string, got %T", name, ErrShape, v)
	}
	return s, nil
}

// GetInt reads an integer-valued slot.
func (e *Entity) GetInt(name string) (int, error) {
	v, err := e.Get(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("slot %q: %w: expected int, got %T", name, ErrShape, v)
	}
	return n, nil
}

// GetBool reads a bool-valued slot.
func (e *Entity) GetBool(name string) (bool, error) {
	v, err := e.Get(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("slot %q: %w: expected bool, got %T", name, ErrShape, v)
	}
	return b, nil
}

// Set writes the named slot, creating missing intermediate nodes along the
// slot's anchor path.
func (e *Entity) Set(name string, value any) error {
	a, err := e.accessor(name)
	if err != nil {
		return err
	}
	return a.Set(e, value)
}

// Delete removes the named slot's target. Deleting an already-absent
// target is a no-op, so Delete is idempotent.
func (e *Entity) Delete(name string) error {
	a, err := e.accessor(name)
	if err != nil {
		return err
	}
	return a.Delete(e)
}

// Copy returns an independent entity of the same kind, backed by a freshly
// serialized-and-reparsed tree. The copy shares no mutable state and no
// temp file with the original.
func (e *Entity) Copy() (*Entity, error) {
	t, err := e.tree.Clone()
	if err != nil {
		return nil, err
	}
	out := &Entity{
		kind:         e.kind,
		tag:          e.tag,
		tree:         t,
		slots:        make(map[string]Accessor, len(e.slots)),
		order:        append([]string(nil), e.order...),
		uncomparable: make(map[string]struct{}, len(e.uncomparable)),
	}
	for k, v := range e.slots {
		out.slots[k] = v
	}
	for k := range e.uncomparable {
		out.uncomparable[k] = struct{}{}
	}
	return out, nil
}

// XML serializes the entity's current document.
func (e *Entity) XML() string {
	return e.tree.XML()
}

// Release removes any temp file the entity's tree has materialized. Safe
// to call repeatedly; typically deferred right after construction.
func (e *Entity) Release() {
	e.tree.Release()
}
