/*
Package objectid provides the identifier value type that links objects in a
project graph.

Every object in a project file is addressed by an opaque string. An identifier
is either temporary (process-local, created for new objects, never written to
disk) or permanent (read from disk or assigned by the reference generator
before a save). This package owns the textual rules for both classes and the
two renderings of a permanent identifier.
*/
package objectid
