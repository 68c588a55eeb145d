// Package inmemorystore provides a thread-safe, in-memory implementation
// of the objectstore.Store interface. It is the store every document uses;
// project graphs always fit comfortably in memory.
package inmemorystore
