package plist

// Value is one of String, Data, Array, *Dict or Ref.
type Value interface {
	isValue()
}

// String is a scalar.
type String string

// Data is a <hex> value, holding its hex digits without whitespace.
type Data string

// Array is an ordered list of values.
type Array []Value

// Ref is an identifier written with an inline comment. It is produced by
// encoders only; the parser returns identifiers as plain String values.
type Ref struct {
	ID      string
	Comment string
}

func (String) isValue() {}
func (Data) isValue()   {}
func (Array) isValue()  {}
func (*Dict) isValue()  {}
func (Ref) isValue()    {}

// Dict is a dictionary that remembers key insertion order.
type Dict struct {
	keys        []string
	values      map[string]Value
	keyComments map[string]string
	inline      bool
}

// NewDict creates an empty dictionary.
func NewDict() *Dict {
	return &Dict{values: make(map[string]Value)}
}

// Set stores a value. A new key is appended; an existing key keeps its place.
func (d *Dict) Set(key string, v Value) {
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// SetString is shorthand for Set(key, String(s)).
func (d *Dict) SetString(key, s string) {
	d.Set(key, String(s))
}

// SetKeyComment attaches an inline comment written after the key.
func (d *Dict) SetKeyComment(key, comment string) {
	if d.keyComments == nil {
		d.keyComments = make(map[string]string)
	}
	d.keyComments[key] = comment
}

// KeyComment returns the inline comment for a key, if any.
func (d *Dict) KeyComment(key string) string {
	return d.keyComments[key]
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.values[key]
	return v, ok
}

// String returns the scalar stored under key. ok is false if the key is
// missing or holds a container.
func (d *Dict) String(key string) (string, bool) {
	v, ok := d.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(String)
	return string(s), ok
}

// Delete removes a key.
func (d *Dict) Delete(key string) {
	if _, exists := d.values[key]; !exists {
		return
	}
	delete(d.values, key)
	delete(d.keyComments, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Clone returns a deep copy.
func (d *Dict) Clone() *Dict {
	if d == nil {
		return nil
	}
	out := NewDict()
	out.inline = d.inline
	for _, k := range d.keys {
		out.Set(k, CloneValue(d.values[k]))
		if c, ok := d.keyComments[k]; ok {
			out.SetKeyComment(k, c)
		}
	}
	return out
}

// CloneValue deep-copies any value.
func CloneValue(v Value) Value {
	switch tv := v.(type) {
	case *Dict:
		return tv.Clone()
	case Array:
		out := make(Array, len(tv))
		for i, item := range tv {
			out[i] = CloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Strings converts an array of scalars into a string slice. ok is false if
// any element is a container.
func Strings(v Value) ([]string, bool) {
	arr, ok := v.(Array)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(String)
		if !ok {
			return nil, false
		}
		out = append(out, string(s))
	}
	return out, true
}

// StringArray builds an Array from strings.
func StringArray(items []string) Array {
	out := make(Array, len(items))
	for i, s := range items {
		out[i] = String(s)
	}
	return out
}
