// Package refgen assigns permanent identifiers to objects that still carry
// temporary ones, deterministically.
//
// # Algorithm
//
// The generator walks the graph from the project in a fixed order: each
// target (with its configurations, build phases and their files, rules,
// dependencies and package products), the main group tree, the products
// group, subproject references, package references and finally the project's
// configuration list. Every object it reaches has an identifier path: the
// (kind, display name) segments from the project down to the object.
//
// A temporary object gets the SHA-256 digest of its joined path, rendered in
// the configured objectid.Format. When that identifier is already used in the
// graph, "#1", "#2", ... is appended to the path and the digest recomputed,
// so the result depends only on graph content and traversal position.
//
// Objects that already carry permanent identifiers keep them. Temporary
// objects the walk never reaches are reported, rejected or deleted according
// to the unreachable policy.
package refgen
