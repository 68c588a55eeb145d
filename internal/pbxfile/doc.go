// Package pbxfile reads and writes project files.
//
// Read parses the text dialect and decodes the object graph. Write renders a
// document in the layout the IDE produces: objects grouped into per-kind
// sections, build files and file references on a single line and every
// identifier annotated with its display name. Output is buffered, so a failed
// write leaves the destination untouched.
package pbxfile
