package bind

import (
	"errors"
	"fmt"
	"reflect"
)

// absent is the sentinel Equal substitutes for a slot whose Get reported
// ErrNotFound. Absent on both sides compares equal; absent on one side
// only compares unequal.
type absentValue struct{}

// malformedValue stands in for a slot whose Get failed on the stored data
// itself, such as non-numeric text under an int coercion. Carrying the
// failure message keeps Equal reflexive: the same defect on both sides
// compares equal, anything else compares unequal.
type malformedValue struct {
	msg string
}

// Equal reports whether e and other are structurally equal: same concrete
// kind, and every comparable slot reads equal on both sides, with absence
// tolerated symmetrically. Entity-valued and entity-sequence-valued slots
// are compared recursively.
//
// Equal never fails on account of absent data. The only error it returns
// wraps ErrUnboundProperty, which indicates a programming defect rather
// than a data difference.
func (e *Entity) Equal(other Binder) (bool, error) {
	if other == nil {
		return false, nil
	}
	o := other.Base()
	if o == nil || e.kind != o.kind {
		return false, nil
	}

	for _, name := range unionSlots(e, o) {
		if e.skipCompare(name) || o.skipCompare(name) {
			continue
		}
		av, err := compareGet(e, name)
		if err != nil {
			return false, err
		}
		bv, err := compareGet(o, name)
		if err != nil {
			return false, err
		}
		eq, err := valueEqual(av, bv)
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

// skipCompare reports whether a slot is excluded from equality: declared
// uncomparable, or bound Forbidden (withheld, so there is nothing to read).
func (e *Entity) skipCompare(name string) bool {
	if _, ok := e.uncomparable[name]; ok {
		return true
	}
	_, forbidden := e.slots[name].(Forbidden)
	return forbidden
}

// compareGet reads a slot for equality. Absence and malformed stored data
// are comparison signals, not failures; only ErrUnboundProperty escapes.
func compareGet(e *Entity, name string) (any, error) {
	v, err := e.Get(name)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, ErrNotFound):
		return absentValue{}, nil
	case errors.Is(err, ErrUnboundProperty):
		return nil, fmt.Errorf("comparing slot %q: %w", name, err)
	default:
		return malformedValue{msg: err.Error()}, nil
	}
}

func unionSlots(a, b *Entity) []string {
	names := append([]string(nil), a.order...)
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		seen[n] = struct{}{}
	}
	for _, n := range b.order {
		if _, ok := seen[n]; !ok {
			names = append(names, n)
		}
	}
	return names
}

func valueEqual(a, b any) (bool, error) {
	if ab, ok := a.(Binder); ok {
		bb, ok := b.(Binder)
		if !ok {
			return false, nil
		}
		return ab.Base().Equal(bb)
	}
	if as, ok := a.([]any); ok {
		bs, ok := b.([]any)
		if !ok || len(as) != len(bs) {
			return false, nil
		}
		for i := range as {
			eq, err := valueEqual(as[i], bs[i])
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	}
	return reflect.DeepEqual(a, b), nil
}
