// Package pbx is the typed object model of a project file.
//
// A project file stores its graph as one flat map of records keyed by
// identifier, each record naming its kind in an isa field. This package turns
// that map into typed Go objects and back.
//
// # Object Model
//
// Every record kind has a struct. Structs embed the shared layers they need:
// Base (identity cell, comment bag, preserved unknown fields), FileElement for
// nodes of the file tree, and the target, build phase and group layers. Fields
// that appear on disk carry a pbx struct tag:
//
//	Path     string           `pbx:"path"`
//	Children []*objectref.Cell `pbx:"children,refs"`
//
// Tag options: ref (single reference), refs (ordered references), dict (raw
// nested dictionary), settings (build settings), required (decode fails when
// missing) and nocomment (reference written without a display name).
//
// # Identity
//
// Every object owns one objectref.Cell. Every edge to that object holds the
// same cell, so fixing or invalidating an identifier is seen by all referrers.
// Objects live in an objectstore.Store owned by the Document.
//
// # Decoding
//
// Decoding runs in two phases. The first materializes every record and its
// scalar fields, remembering the raw identifiers it references. The second
// resolves those identifiers into the shared cells, so forward references
// always succeed. Identifiers that name no record become detached cells that
// fail with objectref.ErrObjectNotFound when resolved.
package pbx
