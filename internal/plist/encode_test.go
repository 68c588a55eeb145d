package plist

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Layout(t *testing.T) {
	root := NewDict()
	root.SetString("archiveVersion", "1")
	root.Set("classes", NewDict())
	root.Set("files", Array{Ref{ID: "AAAA", Comment: "main.c in Sources"}})
	root.Set("empty", Array{})

	inline := NewDict()
	inline.SetInline(true)
	inline.SetString("isa", "PBXBuildFile")
	inline.Set("fileRef", Ref{ID: "BBBB", Comment: "main.c"})
	settings := NewDict()
	settings.Set("ATTRIBUTES", StringArray([]string{"Public"}))
	inline.Set("settings", settings)
	root.Set("AAAA", inline)
	root.SetKeyComment("AAAA", "main.c in Sources")

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, root))

	want := strings.Join([]string{
		"// !$*UTF8*$!",
		"{",
		"\tarchiveVersion = 1;",
		"\tclasses = {",
		"\t};",
		"\tfiles = (",
		"\t\tAAAA /* main.c in Sources */,",
		"\t);",
		"\tempty = (",
		"\t);",
		"\tAAAA /* main.c in Sources */ = {isa = PBXBuildFile; fileRef = BBBB /* main.c */; settings = {ATTRIBUTES = (Public, ); }; };",
		"}",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestEncode_ParsesBack(t *testing.T) {
	root := NewDict()
	root.SetString("name", "My App")
	root.Set("flags", StringArray([]string{"-ObjC", "$(inherited)"}))
	nested := NewDict()
	nested.SetString("SWIFT_VERSION", "5.0")
	root.Set("buildSettings", nested)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, root))

	parsed, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, root.Keys(), parsed.Keys())
	name, _ := parsed.String("name")
	assert.Equal(t, "My App", name)
	flags, _ := parsed.Get("flags")
	items, _ := Strings(flags)
	assert.Equal(t, []string{"-ObjC", "$(inherited)"}, items)
}

func TestEncode_DataRoundTrip(t *testing.T) {
	input := "// !$*UTF8*$!\n{\n\ttoken = <0fbd7771 2c>;\n\tlist = (\n\t\t<AB>,\n\t);\n}\n"
	root, err := Parse([]byte(input))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, root))
	assert.Equal(t, "// !$*UTF8*$!\n{\n\ttoken = <0fbd77712c>;\n\tlist = (\n\t\t<AB>,\n\t);\n}\n", buf.String())

	again, err := Parse(buf.Bytes())
	require.NoError(t, err)
	v, _ := again.Get("token")
	assert.Equal(t, Data("0fbd77712c"), v)
	_, isString := again.String("token")
	assert.False(t, isString)
}

func TestEncode_RejectsCommentTerminator(t *testing.T) {
	root := NewDict()
	root.Set("ref", Ref{ID: "AAAA", Comment: "evil */ comment"})

	var buf bytes.Buffer
	err := Encode(&buf, root)
	assert.ErrorIs(t, err, ErrInvalidComment)
}

func TestDict_SortKeysAndDelete(t *testing.T) {
	d := NewDict()
	d.SetString("c", "3")
	d.SetString("a", "1")
	d.SetString("b", "2")
	d.SortKeys(func(a, b string) bool { return a < b })
	assert.Equal(t, []string{"a", "b", "c"}, d.Keys())

	d.Delete("b")
	assert.Equal(t, []string{"a", "c"}, d.Keys())
	_, ok := d.Get("b")
	assert.False(t, ok)

	clone := d.Clone()
	clone.SetString("a", "changed")
	v, _ := d.String("a")
	assert.Equal(t, "1", v)
}
