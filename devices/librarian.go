package devices

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jbweber/virtbind/bind"
)

// Device is any entity usable as a domain device. Concrete device types
// satisfy it by embedding *bind.Entity.
type Device interface {
	bind.Binder
}

// Factory constructs an empty device of one concrete type.
type Factory func() Device

// catalog is the librarian: the fixed, closed mapping from device tag to
// the entity type that interprets that tag's subtree.
var catalog = map[string]Factory{
	"memory":     func() Device { return NewMemory() },
	"disk":       func() Device { return NewDisk() },
	"interface":  func() Device { return NewInterface() },
	"controller": func() Device { return NewController() },
	"console":    func() Device { return NewConsole() },
	"channel":    func() Device { return NewChannel() },
}

// UnknownTagError reports a tag outside the catalog. Its message enumerates
// the valid tags.
type UnknownTagError struct {
	Tag   string
	Known []string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown device tag %q: known tags are %s",
		e.Tag, strings.Join(e.Known, ", "))
}

// Resolve returns the factory for tag, or an *UnknownTagError listing the
// catalog.
func Resolve(tag string) (Factory, error) {
	f, ok := catalog[tag]
	if !ok {
		return nil, &UnknownTagError{Tag: tag, Known: Tags()}
	}
	return f, nil
}

// Tags returns the catalog's tags in sorted order.
func Tags() []string {
	out := make([]string, 0, len(catalog))
	for tag := range catalog {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
