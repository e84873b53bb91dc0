package bind

import (
	"fmt"

	"github.com/jbweber/virtbind/xmltree"
)

// ToNode converts one list item into a child node. index is the item's
// position in the sequence being written; owner is the entity whose slot is
// being set.
type ToNode func(value any, index int, owner *Entity) (*xmltree.Node, error)

// FromNode converts one child node back into a list item. Returning
// ok=false rejects the node without error: it belongs to a different
// list-valued slot sharing the same parent. index counts only the nodes
// this descriptor has accepted so far.
type FromNode func(node *xmltree.Node, index int, owner *Entity) (value any, ok bool, err error)

// ElementList binds an ordered sequence of children directly under Path.
//
// Get visits the parent's children in document order and collects every
// node From accepts. Several ElementList slots may share one parent node
// and partition its children by tag, each From claiming only its own.
//
// Set first removes exactly the children this descriptor currently claims,
// then appends one node per item, in order. Items flow through To, which
// decides what shapes are acceptable.
type ElementList struct {
	Path string
	To   ToNode
	From FromNode
}

func (l *ElementList) Get(e *Entity) (any, error) {
	parent := e.tree.Find(l.Path)
	if parent == nil {
		return nil, fmt.Errorf("element %q: %w", l.Path, ErrNotFound)
	}
	out := []any{}
	for _, c := range parent.Children {
		v, ok, err := l.From(c, len(out), e)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (l *ElementList) Set(e *Entity, value any) error {
	items, err := anySlice(value)
	if err != nil {
		return fmt.Errorf("element %q: %w", l.Path, err)
	}

	// Convert the whole sequence before touching the tree, so a failing
	// item leaves the existing entries in place.
	nodes := make([]*xmltree.Node, len(items))
	for i, item := range items {
		n, err := l.To(item, i, e)
		if err != nil {
			return err
		}
		nodes[i] = n
	}

	parent := e.tree.CreateAlong(l.Path)

	// Drop only the children this descriptor claims; siblings owned by
	// other list slots on the same parent stay in place.
	kept := parent.Children[:0:0]
	claimed := 0
	for _, c := range parent.Children {
		_, ok, err := l.From(c, claimed, e)
		if err != nil {
			return err
		}
		if ok {
			claimed++
			continue
		}
		kept = append(kept, c)
	}
	parent.Children = kept

	for _, n := range nodes {
		parent.Append(n)
	}
	return nil
}

func (l *ElementList) Delete(e *Entity) error {
	parent := e.tree.Find(l.Path)
	if parent == nil {
		return nil
	}
	kept := parent.Children[:0:0]
	claimed := 0
	for _, c := range parent.Children {
		_, ok, err := l.From(c, claimed, e)
		if err != nil {
			return err
		}
		if ok {
			claimed++
			continue
		}
		kept = append(kept, c)
	}
	parent.Children = kept
	return nil
}

// MapMarshal returns a marshal pair for a homogeneous list of flat
// attribute maps under a fixed child tag. From rejects children with any
// other tag, so maps with different tags can partition one parent.
func MapMarshal(tag string) (ToNode, FromNode) {
	to := func(value any, index int, owner *Entity) (*xmltree.Node, error) {
		attrs, err := stringMap(value)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", index, err)
		}
		n := xmltree.NewNode(tag)
		for k, v := range attrs {
			n.SetAttr(k, v)
		}
		return n, nil
	}
	from := func(node *xmltree.Node, index int, owner *Entity) (any, bool, error) {
		if node.Tag != tag {
			return nil, false, nil
		}
		out := make(map[string]string, len(node.Attrs))
		for k, v := range node.Attrs {
			out[k] = v
		}
		return out, true, nil
	}
	return to, from
}

// anySlice accepts the sequence shapes list setters take.
func anySlice(value any) ([]any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case []map[string]string:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected ordered sequence, got %T", ErrShape, value)
	}
}
