package plist

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Header is the first line of every document.
const Header = "// !$*UTF8*$!"

// ErrInvalidComment is returned when a comment would terminate early.
var ErrInvalidComment = errors.New("plist: comment contains */")

// SetInline marks a dictionary to be written on a single line, together with
// everything nested in it.
func (d *Dict) SetInline(inline bool) {
	d.inline = inline
}

// Inline reports whether the dictionary is written on a single line.
func (d *Dict) Inline() bool {
	return d != nil && d.inline
}

// SortKeys reorders the keys with less. Keys for which neither is less keep
// their relative order.
func (d *Dict) SortKeys(less func(a, b string) bool) {
	sort.SliceStable(d.keys, func(i, j int) bool { return less(d.keys[i], d.keys[j]) })
}

// Encoder writes values in the text dialect. Errors are sticky: after the
// first failure every method is a no-op and Err reports the failure.
type Encoder struct {
	w   io.Writer
	err error
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Err returns the first error encountered.
func (e *Encoder) Err() error {
	return e.err
}

// Raw writes s verbatim.
func (e *Encoder) Raw(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

// Indent writes n tabs.
func (e *Encoder) Indent(n int) {
	e.Raw(strings.Repeat("\t", n))
}

// Comment writes " /* text */".
func (e *Encoder) Comment(text string) {
	if text == "" {
		return
	}
	if strings.Contains(text, "*/") {
		e.fail(fmt.Errorf("%w: %q", ErrInvalidComment, text))
		return
	}
	e.Raw(" /* " + text + " */")
}

// Entry writes one dictionary entry on its own line at the given depth.
func (e *Encoder) Entry(depth int, key, keyComment string, v Value) {
	e.Indent(depth)
	e.Raw(Escape(key))
	e.Comment(keyComment)
	e.Raw(" = ")
	e.Value(v, depth)
	e.Raw(";\n")
}

// Value writes v. Containers open on the current line and close at depth;
// inline dictionaries stay on one line.
func (e *Encoder) Value(v Value, depth int) {
	switch tv := v.(type) {
	case String:
		e.Raw(Escape(string(tv)))
	case Data:
		e.Raw("<" + string(tv) + ">")
	case Ref:
		e.Raw(Escape(tv.ID))
		e.Comment(tv.Comment)
	case Array:
		e.Raw("(\n")
		for _, item := range tv {
			e.Indent(depth + 1)
			e.Value(item, depth+1)
			e.Raw(",\n")
		}
		e.Indent(depth)
		e.Raw(")")
	case *Dict:
		if tv.Inline() {
			e.InlineValue(tv)
			return
		}
		e.Raw("{\n")
		for _, k := range tv.keys {
			e.Entry(depth+1, k, tv.KeyComment(k), tv.values[k])
		}
		e.Indent(depth)
		e.Raw("}")
	case nil:
		e.fail(errors.New("plist: nil value"))
	default:
		e.fail(fmt.Errorf("plist: unsupported value %T", v))
	}
}

// InlineValue writes v on a single line.
func (e *Encoder) InlineValue(v Value) {
	switch tv := v.(type) {
	case Array:
		e.Raw("(")
		for _, item := range tv {
			e.InlineValue(item)
			e.Raw(", ")
		}
		e.Raw(")")
	case *Dict:
		e.Raw("{")
		for _, k := range tv.keys {
			e.Raw(Escape(k))
			e.Comment(tv.KeyComment(k))
			e.Raw(" = ")
			e.InlineValue(tv.values[k])
			e.Raw("; ")
		}
		e.Raw("}")
	default:
		e.Value(v, 0)
	}
}

func (e *Encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// Encode writes a complete document: the header line followed by root.
func Encode(w io.Writer, root *Dict) error {
	enc := NewEncoder(w)
	enc.Raw(Header + "\n")
	enc.Value(root, 0)
	enc.Raw("\n")
	return enc.Err()
}
