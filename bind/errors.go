package bind

import "errors"

// Error taxonomy for the binding layer.
//
// ErrNotFound is the recoverable one: it signals that a bound slot's target
// node or attribute is currently absent, and is caught internally by
// SetupAttrs, FetchAttrs and Equal to implement optional-field semantics.
// The other two are programmer errors and always propagate.
var (
	// ErrNotFound reports that a slot's target path or attribute is absent
	// from the backing tree.
	ErrNotFound = errors.New("not found in backing tree")

	// ErrUnboundProperty reports access to a slot name that has no binding,
	// or to a Forbidden slot.
	ErrUnboundProperty = errors.New("unbound property")

	// ErrShape reports a value of the wrong structural shape passed to a
	// setter, a marshal function, or a registry-checked collection. Wrapped
	// messages state the expected and actual shapes.
	ErrShape = errors.New("wrong value shape")
)
