// Package workspace reads and writes workspace contents files
// (contents.xcworkspacedata): an XML list of project and file references,
// optionally nested in groups.
package workspace
