package plist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "main.c", want: "main.c"},
		{in: "$(SRCROOT)/x", want: `"$(SRCROOT)/x"`},
		{in: "$SRCROOT", want: "$SRCROOT"},
		{in: "path/to:file_1.swift", want: "path/to:file_1.swift"},
		{in: "", want: `""`},
		{in: "two words", want: `"two words"`},
		{in: "a//b", want: `"a//b"`},
		{in: "a___b", want: `"a___b"`},
		{in: "a__b", want: "a__b"},
		{in: "say \"hi\"", want: `"say \"hi\""`},
		{in: "x\ny\tz", want: `"x\ny\tz"`},
		{in: `c:\dir`, want: `"c:\\dir"`},
		{in: "-ObjC", want: `"-ObjC"`},
		{in: "<group>", want: `"<group>"`},
		{in: "é", want: `"é"`},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Escape(tc.in))
		})
	}
}

func TestUnescape_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"with space",
		"quote\"inside",
		`back\slash`,
		"\\\"",
		"new\nline",
		"tab\tbed",
		"carriage\rreturn",
		"/* not a comment */",
		"// neither",
		"a___b",
		"ünïcödé ✓",
		"trailing\\",
		"{braces} (parens) = ; ,",
	}
	for _, in := range inputs {
		got, err := Unescape(Escape(in))
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, in, got)
	}
}

func TestUnescape_Errors(t *testing.T) {
	_, err := Unescape(`"open`)
	assert.Error(t, err)

	_, err = Unescape(`a b`)
	assert.Error(t, err)

	_, err = Unescape(`{`)
	assert.Error(t, err)
}
