package xmltree

import (
	"encoding/xml"
	"sort"
	"strings"
)

// Node is one element of a parsed XML document: a tag name, an unordered
// attribute map, optional text content, and an ordered list of children.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// NewNode returns a childless, attribute-free element with the given tag.
func NewNode(tag string) *Node {
	return &Node{
		Tag:   tag,
		Attrs: make(map[string]string),
	}
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// SetAttr sets the named attribute, initializing the attribute map if the
// node was built literally.
func (n *Node) SetAttr(name, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[name] = value
}

// DeleteAttr removes the named attribute. Removing an absent attribute is a
// no-op.
func (n *Node) DeleteAttr(name string) {
	delete(n.Attrs, name)
}

// Append adds child as the last child of n.
func (n *Node) Append(child *Node) {
	n.Children = append(n.Children, child)
}

// Child returns the first child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildrenByTag returns all direct children with the given tag, in document
// order.
func (n *Node) ChildrenByTag(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// RemoveChild detaches child from n. It reports whether child was a direct
// child of n.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of n sharing no state with the original.
func (n *Node) Clone() *Node {
	out := NewNode(n.Tag)
	out.Text = n.Text
	for k, v := range n.Attrs {
		out.Attrs[k] = v
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, c.Clone())
	}
	return out
}

// XML serializes the subtree rooted at n. Attributes are emitted in sorted
// order so output is deterministic.
func (n *Node) XML() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(n.Tag)

	names := make([]string, 0, len(n.Attrs))
	for name := range n.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(escape(n.Attrs[name]))
		b.WriteByte('"')
	}

	if n.Text == "" && len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}

	b.WriteByte('>')
	if n.Text != "" {
		b.WriteString(escape(n.Text))
	}
	for _, c := range n.Children {
		c.write(b)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

func escape(s string) string {
	var b strings.Builder
	// EscapeText only fails on writer errors, which strings.Builder never
	// produces.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
