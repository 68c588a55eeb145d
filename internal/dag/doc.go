// Package dag holds a small directed acyclic graph of named nodes. It is
// used to order targets by their dependencies and to reject dependency
// cycles before a project is changed.
package dag
