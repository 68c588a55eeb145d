package plist

import (
	"strings"
)

// NeedsQuotes reports whether s must be written as a quoted string.
func NeedsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for i := 0; i < len(s); i++ {
		if !isSafeChar(s[i]) {
			return true
		}
	}
	return strings.Contains(s, "//") || strings.Contains(s, "___")
}

func isSafeChar(ch byte) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return true
	}
	switch ch {
	case '_', '$', '/', ':', '.':
		return true
	}
	return false
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
)

// Escape returns s as it appears in the text form: bare when safe, otherwise
// double-quoted with backslash escapes.
func Escape(s string) string {
	if !NeedsQuotes(s) {
		return s
	}
	return `"` + escaper.Replace(s) + `"`
}

// Unescape decodes a single string token as written by Escape or by any
// other producer of the dialect.
func Unescape(token string) (string, error) {
	lex := NewLexer(token)
	tok, err := lex.Next()
	if err != nil {
		return "", err
	}
	if tok.Type != TokenString {
		return "", &ParseError{Message: "expected string, got " + tok.Type.String(), Pos: tok.Pos}
	}
	end, err := lex.Next()
	if err != nil {
		return "", err
	}
	if end.Type != TokenEOF {
		return "", &ParseError{Message: "trailing input after string", Pos: end.Pos}
	}
	return tok.Value, nil
}
