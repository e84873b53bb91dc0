// Package bind implements declarative, bidirectional binding between XML
// documents and typed entities.
//
// An Entity owns one xmltree.Tree and a fixed table of named slots, each
// bound by exactly one Accessor. The accessor kinds form a closed set:
//
//   - Attribute: one attribute of one node
//   - ElementText: one node's text content, with optional int/bool coercion
//   - ElementMap: the whole attribute map of one node
//   - ElementNest: a child node as a full sub-entity
//   - ElementList: an ordered, possibly heterogeneous child sequence,
//     converted item-by-item through a ToNode/FromNode marshal pair
//   - Forbidden: a withheld slot that always fails
//
// Reads and writes auto-create or tolerate missing structure: Set builds
// every missing intermediate node along a slot's anchor path, Delete of an
// absent target is a no-op, and Get of an absent optional target reports
// ErrNotFound, which the bulk operations and Equal translate into absence
// semantics rather than failures.
//
// Typical declaration, from a device constructor:
//
//	e := bind.New("memory device", "memory")
//	e.Bind("model", &bind.Attribute{Path: ".", Name: "model"})
//	e.Bind("target", &bind.ElementNest{Path: "target", New: newMemoryTarget})
//
// Bulk structured access works with plain map payloads:
//
//	err := e.SetupAttrs(map[string]any{
//	    "model":  "dimm",
//	    "target": map[string]any{"size": 524288, "size_unit": "KiB"},
//	})
//
// Nested maps merge into an existing child; wrap them with bind.Reset to
// rebuild the child from the payload alone. FetchAttrs is the inverse,
// omitting absent slots.
//
// Entities are single-threaded by design: no operation locks, and Copy is
// not transactional against concurrent mutation of its source.
package bind
