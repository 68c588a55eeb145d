// Package plist implements the text property-list dialect used by project
// files: nested dictionaries and arrays of strings, with inline comment
// annotations.
//
// # Data Model
//
// Every scalar is a string; numbers and booleans are decimal or YES/NO text
// interpreted by the caller. <hex> blocks are kept apart as Data so they are
// written back in the same form. Containers are Array and Dict. Dict keeps keys in
// insertion order so a producer decides the output order.
//
// Two writer-only values exist: Ref, an identifier followed by an inline
// comment, and key comments on Dict entries. Comments are never interpreted on
// read.
//
// # Syntax
//
//	// !$*UTF8*$!
//	{
//		key = value;
//		list = (
//			a,
//			"quoted value",
//		);
//		ref = 0A1B2C3D4E5F60718293A4B5 /* main.c */;
//	}
//
// # Quoting
//
// A string is written bare when it is non-empty, made only of ASCII letters,
// digits and the characters _ $ / : . and contains neither // nor ___.
// Everything else is quoted, escaping backslash, double quote, newline and
// tab. Unescape(Escape(s)) == s for every s.
package plist
