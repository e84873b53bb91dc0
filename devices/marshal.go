package devices

import (
	"fmt"

	"github.com/jbweber/virtbind/bind"
	"github.com/jbweber/virtbind/xmltree"
)

// Marshal returns the catalog-driven marshal pair for heterogeneous device
// lists.
//
// From claims any child whose tag the catalog resolves and re-roots a
// device of that type over the child node itself, sharing it with the
// owning document. Children with unknown tags are skipped without error,
// which is how the device list partitions a parent it shares with
// non-device children such as <emulator>.
//
// To accepts devices only; it verifies the value's tag is in the catalog
// and that its concrete kind matches what the catalog would resolve for
// that tag, then adopts a deep copy of the value's subtree.
func Marshal() (bind.ToNode, bind.FromNode) {
	to := func(value any, index int, owner *bind.Entity) (*xmltree.Node, error) {
		d, ok := value.(Device)
		if !ok {
			return nil, fmt.Errorf("device %d: %w: expected device entity, got %T",
				index, bind.ErrShape, value)
		}
		if err := checkCatalog(d); err != nil {
			return nil, fmt.Errorf("device %d: %w", index, err)
		}
		return d.Base().Tree().Root().Clone(), nil
	}
	from := func(node *xmltree.Node, index int, owner *bind.Entity) (any, bool, error) {
		factory, err := Resolve(node.Tag)
		if err != nil {
			return nil, false, nil
		}
		d := factory()
		if err := d.Base().LoadTree(xmltree.Wrap(node)); err != nil {
			return nil, false, err
		}
		return d, true, nil
	}
	return to, from
}

// EntityOrMapMarshal returns a marshal pair for a fixed-tag list whose
// items may be either flat attribute maps or sub-entities built by factory,
// dispatched by runtime shape. Any other shape fails with ErrShape.
func EntityOrMapMarshal(tag string, factory func() *bind.Entity) (bind.ToNode, bind.FromNode) {
	mapTo, _ := bind.MapMarshal(tag)
	want := factory().Kind()

	to := func(value any, index int, owner *bind.Entity) (*xmltree.Node, error) {
		switch v := value.(type) {
		case bind.Binder:
			e := v.Base()
			if e.Kind() != want {
				return nil, fmt.Errorf("item %d: %w: expected %s, got %s",
					index, bind.ErrShape, want, e.Kind())
			}
			return e.Tree().Root().Clone(), nil
		case map[string]string, map[string]any:
			return mapTo(v, index, owner)
		default:
			return nil, fmt.Errorf("item %d: %w: expected %s or flat attribute map, got %T",
				index, bind.ErrShape, want, value)
		}
	}
	from := func(node *xmltree.Node, index int, owner *bind.Entity) (any, bool, error) {
		if node.Tag != tag {
			return nil, false, nil
		}
		e := factory()
		if err := e.LoadTree(xmltree.Wrap(node)); err != nil {
			return nil, false, err
		}
		return e, true, nil
	}
	return to, from
}

// checkCatalog verifies a device's tag resolves in the catalog and that
// its concrete kind matches the catalog's type for that tag.
func checkCatalog(d Device) error {
	e := d.Base()
	factory, err := Resolve(e.Tag())
	if err != nil {
		return err
	}
	if want := factory().Base().Kind(); e.Kind() != want {
		return fmt.Errorf("%w: tag <%s> resolves to %s, got %s",
			bind.ErrShape, e.Tag(), want, e.Kind())
	}
	return nil
}
