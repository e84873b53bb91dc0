package bind

import (
	"errors"
	"fmt"
	"sort"
)

// ResetMap is a nested SetupAttrs payload carrying replace semantics: the
// bound child is rebuilt from scratch, seeded only by the payload, instead
// of merged into. The policy rides on the payload's type rather than on a
// reserved key, so no field name is off limits.
type ResetMap map[string]any

// Reset wraps a nested payload in replace semantics for SetupAttrs.
func Reset(values map[string]any) ResetMap {
	return ResetMap(values)
}

// SetupAttrs bulk-assigns slots from a structured payload.
//
// Scalar, map and sequence payloads assign their slots directly. A nested
// map payload on an ElementNest slot merges: the existing child sub-entity
// is fetched and recursively updated, leaving its unmentioned fields
// untouched. A ResetMap payload, or a nested map when no child exists yet,
// builds a fresh child from the payload alone.
//
// An unknown key is a fatal programmer error naming the key
// (ErrUnboundProperty). Keys are applied in sorted order so failures are
// deterministic.
func (e *Entity) SetupAttrs(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		a, err := e.accessor(k)
		if err != nil {
			return err
		}
		if nest, ok := a.(*ElementNest); ok {
			if err := e.setupNested(k, nest, values[k]); err != nil {
				return err
			}
			continue
		}
		if err := a.Set(e, values[k]); err != nil {
			return err
		}
	}
	return nil
}

func (e *Entity) setupNested(name string, nest *ElementNest, value any) error {
	var payload map[string]any
	replace := false
	switch v := value.(type) {
	case ResetMap:
		payload, replace = map[string]any(v), true
	case map[string]any:
		payload = v
	default:
		// Not a structured payload; let the accessor shape-check it
		// (a sub-entity assigned directly is fine).
		return nest.Set(e, value)
	}

	if !replace {
		existing, err := nest.Get(e)
		if err == nil {
			// Merge through the shared child node.
			return existing.(*Entity).SetupAttrs(payload)
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	sub := nest.New()
	if err := sub.SetupAttrs(payload); err != nil {
		return fmt.Errorf("slot %q: %w", name, err)
	}
	return nest.Set(e, sub)
}

// FetchAttrs is the structural inverse of SetupAttrs: it reads every
// comparable, non-forbidden slot and returns the results keyed by slot
// name. Slots whose target is currently absent are omitted rather than
// reported as errors.
//
// Entity-valued slots recurse into nested maps, mirroring the payloads
// SetupAttrs takes. Entity-sequence slots keep their typed sub-entities:
// a flat map cannot carry a polymorphic child's tag, so flattening them
// would make the result unusable as a SetupAttrs payload.
func (e *Entity) FetchAttrs() (map[string]any, error) {
	out := make(map[string]any)
	for _, name := range e.order {
		if e.skipCompare(name) {
			continue
		}
		v, err := e.slots[name].Get(e)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fetching slot %q: %w", name, err)
		}
		fv, err := fetchValue(v)
		if err != nil {
			return nil, fmt.Errorf("fetching slot %q: %w", name, err)
		}
		out[name] = fv
	}
	return out, nil
}

func fetchValue(v any) (any, error) {
	switch v := v.(type) {
	case *Entity:
		return v.FetchAttrs()
	default:
		return v, nil
	}
}
