package devices

import "fmt"

// List is the registry-checked typed collection of a domain's devices.
// Every insertion is verified against the catalog: the device's tag must
// resolve, and its concrete type must be the one the catalog names for
// that tag. Mismatches are rejected before the list changes.
type List struct {
	items []Device
}

// NewList returns an empty device list.
func NewList(items ...Device) (*List, error) {
	l := &List{}
	for _, d := range items {
		if err := l.Append(d); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Append adds d at the end of the list after catalog verification.
func (l *List) Append(d Device) error {
	if err := checkCatalog(d); err != nil {
		return fmt.Errorf("device list: %w", err)
	}
	l.items = append(l.items, d)
	return nil
}

// Len returns the number of devices.
func (l *List) Len() int { return len(l.items) }

// At returns the device at index i.
func (l *List) At(i int) Device { return l.items[i] }

// Devices returns the devices in insertion order. The slice is a copy; the
// devices themselves are shared.
func (l *List) Devices() []Device {
	out := make([]Device, len(l.items))
	copy(out, l.items)
	return out
}

// ByTag returns the devices whose root tag is tag, in insertion order.
func (l *List) ByTag(tag string) []Device {
	var out []Device
	for _, d := range l.items {
		if d.Base().Tag() == tag {
			out = append(out, d)
		}
	}
	return out
}
