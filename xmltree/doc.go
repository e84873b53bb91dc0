// Package xmltree provides the backing document store for XML-bound entities.
//
// A Tree owns one parsed XML document plus its provenance (the original
// serialized text and, when parsed from disk, the source path) and at most
// one temp-file materialization used to hand the document to external tools
// such as schema validators.
//
// The package deliberately implements only what the binding layer needs:
//   - Parsing from literal text, a file, or an existing node (Parse,
//     ParseFile, Wrap)
//   - Simple slash-separated path lookup (Find, FindAll) and creation
//     (CreateAlong)
//   - Node detachment (Remove) and full-document serialization (XML)
//   - Temp-file materialization (Write) and rollback to the originally
//     parsed content (Restore)
//
// It is not a general query or transform language; paths are plain child-tag
// chains relative to the root, with "." naming the root itself.
//
// Trees are not safe for concurrent mutation. Callers that share a Tree
// across goroutines must provide their own locking.
package xmltree
