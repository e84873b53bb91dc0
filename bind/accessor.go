package bind

import (
	"fmt"
	"strconv"
	"strings"
)

// Accessor is one binding descriptor: a declarative rule mapping a named
// entity slot to one location and shape inside the entity's backing tree.
//
// The set of implementations is closed: Attribute, ElementText, ElementMap,
// ElementNest, ElementList and Forbidden. All dispatch goes through this one
// interface so every kind handles get, set and delete uniformly.
type Accessor interface {
	// Get reads the slot's current value. A missing target yields the
	// declared default when one exists, otherwise an error wrapping
	// ErrNotFound.
	Get(e *Entity) (any, error)

	// Set writes value, creating every missing intermediate node along the
	// anchor path. A structurally wrong value yields an error wrapping
	// ErrShape.
	Set(e *Entity, value any) error

	// Delete removes the slot's target. Deleting an absent target is a
	// no-op.
	Delete(e *Entity) error
}

// Coerce selects how ElementText converts between element text and Go
// values.
type Coerce int

const (
	// CoerceString binds text verbatim.
	CoerceString Coerce = iota
	// CoerceInt parses base-10; blank text reads as 0 unless a default
	// overrides.
	CoerceInt
	// CoerceBool maps the libvirt convention "yes"/"no" to true/false.
	CoerceBool
)

// Attribute binds one attribute of the node at Path. Delete removes only
// the attribute, leaving the node in place.
type Attribute struct {
	Path string
	Name string
	// Default, when non-nil, is returned by Get instead of ErrNotFound.
	Default any
}

func (a *Attribute) Get(e *Entity) (any, error) {
	n := e.tree.Find(a.Path)
	if n != nil {
		if v, ok := n.Attr(a.Name); ok {
			return v, nil
		}
	}
	if a.Default != nil {
		return a.Default, nil
	}
	return nil, fmt.Errorf("attribute %s at %q: %w", a.Name, a.Path, ErrNotFound)
}

func (a *Attribute) Set(e *Entity, value any) error {
	s, err := stringValue(value)
	if err != nil {
		return fmt.Errorf("attribute %s: %w", a.Name, err)
	}
	e.tree.CreateAlong(a.Path).SetAttr(a.Name, s)
	return nil
}

func (a *Attribute) Delete(e *Entity) error {
	if n := e.tree.Find(a.Path); n != nil {
		n.DeleteAttr(a.Name)
	}
	return nil
}

// ElementText binds the text content of the node at Path, with an optional
// coercion. Delete removes the node.
type ElementText struct {
	Path   string
	Coerce Coerce
	// Default, when non-nil, is returned by Get instead of ErrNotFound,
	// and overrides the blank-text-is-zero rule of CoerceInt.
	Default any
}

func (t *ElementText) Get(e *Entity) (any, error) {
	n := e.tree.Find(t.Path)
	if n == nil {
		if t.Default != nil {
			return t.Default, nil
		}
		return nil, fmt.Errorf("element %q: %w", t.Path, ErrNotFound)
	}
	switch t.Coerce {
	case CoerceInt:
		if n.Text == "" {
			if t.Default != nil {
				return t.Default, nil
			}
			return 0, nil
		}
		v, err := strconv.Atoi(n.Text)
		if err != nil {
			return nil, fmt.Errorf("element %q: %w: expected base-10 integer text, got %q",
				t.Path, ErrShape, n.Text)
		}
		return v, nil
	case CoerceBool:
		switch n.Text {
		case "yes":
			return true, nil
		case "no":
			return false, nil
		}
		return nil, fmt.Errorf("element %q: %w: expected \"yes\" or \"no\" text, got %q",
			t.Path, ErrShape, n.Text)
	default:
		return n.Text, nil
	}
}

func (t *ElementText) Set(e *Entity, value any) error {
	var text string
	switch t.Coerce {
	case CoerceInt:
		switch v := value.(type) {
		case int:
			text = strconv.Itoa(v)
		case string:
			if _, err := strconv.Atoi(v); err != nil {
				return fmt.Errorf("element %q: %w: expected integer, got %q", t.Path, ErrShape, v)
			}
			text = v
		default:
			return fmt.Errorf("element %q: %w: expected integer, got %T", t.Path, ErrShape, value)
		}
	case CoerceBool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("element %q: %w: expected bool, got %T", t.Path, ErrShape, value)
		}
		if b {
			text = "yes"
		} else {
			text = "no"
		}
	default:
		s, err := stringValue(value)
		if err != nil {
			return fmt.Errorf("element %q: %w", t.Path, err)
		}
		text = s
	}
	e.tree.CreateAlong(t.Path).Text = text
	return nil
}

func (t *ElementText) Delete(e *Entity) error {
	if n := e.tree.Find(t.Path); n != nil {
		e.tree.Remove(n)
	}
	return nil
}

// ElementMap binds the entire attribute set of the node at Path as one flat
// string map. Set replaces the whole map: keys absent from the new value are
// dropped, never merged. Delete removes the node.
type ElementMap struct {
	Path string
}

func (m *ElementMap) Get(e *Entity) (any, error) {
	n := e.tree.Find(m.Path)
	if n == nil {
		return nil, fmt.Errorf("element %q: %w", m.Path, ErrNotFound)
	}
	out := make(map[string]string, len(n.Attrs))
	for k, v := range n.Attrs {
		out[k] = v
	}
	return out, nil
}

func (m *ElementMap) Set(e *Entity, value any) error {
	attrs, err := stringMap(value)
	if err != nil {
		return fmt.Errorf("element %q: %w", m.Path, err)
	}
	n := e.tree.CreateAlong(m.Path)
	n.Attrs = make(map[string]string, len(attrs))
	for k, v := range attrs {
		n.Attrs[k] = v
	}
	return nil
}

func (m *ElementMap) Delete(e *Entity) error {
	if n := e.tree.Find(m.Path); n != nil {
		e.tree.Remove(n)
	}
	return nil
}

// Forbidden is a named slot that always fails. Subtypes bind it over a
// generically inherited slot name to withhold that binding in favor of a
// derived alternative exposed elsewhere.
type Forbidden struct{}

func (Forbidden) Get(e *Entity) (any, error) {
	return nil, fmt.Errorf("forbidden slot: %w", ErrUnboundProperty)
}

func (Forbidden) Set(e *Entity, value any) error {
	return fmt.Errorf("forbidden slot: %w", ErrUnboundProperty)
}

func (Forbidden) Delete(e *Entity) error {
	return fmt.Errorf("forbidden slot: %w", ErrUnboundProperty)
}

// stringValue accepts the scalar shapes setters take for string-valued
// targets.
func stringValue(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case bool:
		if v {
			return "yes", nil
		}
		return "no", nil
	default:
		return "", fmt.Errorf("%w: expected string, got %T", ErrShape, value)
	}
}

// stringMap accepts the flat-map shapes ElementMap and marshal functions
// take: map[string]string directly, or map[string]any with scalar values
// (the shape YAML payloads decode to).
func stringMap(value any) (map[string]string, error) {
	switch v := value.(type) {
	case map[string]string:
		return v, nil
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, item := range v {
			s, err := stringValue(item)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected flat string map, got %T", ErrShape, value)
	}
}

// splitPath separates an anchor path into its parent path and leaf tag.
func splitPath(path string) (parent, leaf string) {
	path = strings.Trim(path, "/")
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return ".", path
	}
	return path[:i], path[i+1:]
}
