package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrParse reports malformed XML input. It is always wrapped with detail and
// always fatal: no Tree is produced alongside it.
var ErrParse = errors.New("malformed XML")

// Tree owns one parsed XML document, the originally parsed text used by
// Restore, and at most one temp-file materialization used by Write.
type Tree struct {
	root       *Node
	backup     string
	sourcePath string
	tempPath   string
}

// Parse builds a Tree from literal XML text.
func Parse(text string) (*Tree, error) {
	root, err := decode(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	return &Tree{root: root, backup: text}, nil
}

// ParseFile builds a Tree from the XML document at path, recording path as
// the tree's provenance.
func ParseFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	t, err := Parse(string(data))
	if err != nil {
		return nil, err
	}
	t.sourcePath = path
	return t, nil
}

// Wrap builds a Tree over an already-built node. The node is shared, not
// copied: mutations through the returned Tree are visible to whoever else
// holds the node. Restore reverts to the node's state at wrap time.
func Wrap(root *Node) *Tree {
	return &Tree{root: root, backup: root.XML()}
}

// Root returns the document's top node.
func (t *Tree) Root() *Node {
	return t.root
}

// SourcePath returns the file the document was parsed from, or "" when the
// source was literal text or an existing node.
func (t *Tree) SourcePath() string {
	return t.sourcePath
}

// Find returns the first node at the slash-separated path relative to the
// root, or nil when any segment is absent. "." and "" name the root.
func (t *Tree) Find(path string) *Node {
	n := t.root
	for _, seg := range segments(path) {
		n = n.Child(seg)
		if n == nil {
			return nil
		}
	}
	return n
}

// FindAll returns every node reachable at path, in document order. All
// intermediate segments fan out over every matching child, so
// FindAll("devices/disk") returns each disk of each devices element.
func (t *Tree) FindAll(path string) []*Node {
	nodes := []*Node{t.root}
	for _, seg := range segments(path) {
		var next []*Node
		for _, n := range nodes {
			next = append(next, n.ChildrenByTag(seg)...)
		}
		nodes = next
	}
	return nodes
}

// Remove detaches node from its parent anywhere in the document. It reports
// whether the node was found; the root itself cannot be removed.
func (t *Tree) Remove(node *Node) bool {
	if node == t.root {
		return false
	}
	return removeFrom(t.root, node)
}

func removeFrom(parent, target *Node) bool {
	if parent.RemoveChild(target) {
		return true
	}
	for _, c := range parent.Children {
		if removeFrom(c, target) {
			return true
		}
	}
	return false
}

// CreateAlong walks path from the root, creating each missing segment, and
// returns the final node. An existing first match is reused at every step,
// so CreateAlong never duplicates intermediate elements.
func (t *Tree) CreateAlong(path string) *Node {
	n := t.root
	for _, seg := range segments(path) {
		c := n.Child(seg)
		if c == nil {
			c = NewNode(seg)
			n.Append(c)
		}
		n = c
	}
	return n
}

// XML serializes the current state of the document.
func (t *Tree) XML() string {
	return t.root.XML()
}

// Write materializes the current document into a temp file owned by the
// tree and returns its path. The file is created on first use and rewritten
// in place on every call; Release removes it.
func (t *Tree) Write() (string, error) {
	if t.tempPath == "" {
		f, err := os.CreateTemp("", "virtbind-*.xml")
		if err != nil {
			return "", fmt.Errorf("failed to create temp file: %w", err)
		}
		t.tempPath = f.Name()
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close temp file: %w", err)
		}
	}
	if err := os.WriteFile(t.tempPath, []byte(t.XML()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", t.tempPath, err)
	}
	return t.tempPath, nil
}

// Restore discards every in-memory mutation since parse time, reverting the
// document to the originally captured content. The temp file, if any, is
// left as last written.
func (t *Tree) Restore() error {
	root, err := decode(strings.NewReader(t.backup))
	if err != nil {
		return err
	}
	t.root = root
	return nil
}

// Clone returns an independent copy of the tree by serializing and reparsing
// the current document. The clone has its own backup and no temp file.
func (t *Tree) Clone() (*Tree, error) {
	return Parse(t.XML())
}

// Release removes the tree's temp file, if one was materialized. It is safe
// to call repeatedly.
func (t *Tree) Release() {
	if t.tempPath != "" {
		_ = os.Remove(t.tempPath)
		t.tempPath = ""
	}
}

func segments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" || path == "." {
		return nil
	}
	return strings.Split(path, "/")
}

// decode builds the node tree with a streaming token walk. Text content is
// whitespace-trimmed; pure-indentation text between children is dropped.
func decode(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			n := NewNode(tok.Name.Local)
			for _, a := range tok.Attr {
				n.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", ErrParse)
				}
				root = n
			} else {
				stack[len(stack)-1].Append(n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			text := strings.TrimSpace(string(tok))
			if text != "" {
				stack[len(stack)-1].Text += text
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrParse)
	}
	return root, nil
}
