// Package devices declares the domain device entities and the closed tag
// catalog (the librarian) that maps a device element's tag to the entity
// type interpreting its subtree.
//
// Each device type is declarative configuration of the bind engine: a
// constructor that binds slot names to locations in the device's XML shape
// and thin typed helpers over the generic accessors. The engine does the
// actual work.
//
// The catalog is fixed at process start from the known libvirt device tags;
// there is no runtime plugin discovery. Resolve rejects unknown tags with
// an UnknownTagError enumerating the catalog, and List rejects insertions
// whose concrete type does not match what Resolve returns for their tag.
package devices
