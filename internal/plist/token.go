package plist

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType identifies a lexer token.
type TokenType uint8

const (
	TokenEOF TokenType = iota

	TokenString    // quoted or bare string
	TokenData      // <hex data>
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLParen    // (
	TokenRParen    // )
	TokenEq        // =
	TokenSemicolon // ;
	TokenComma     // ,
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenString:
		return "STRING"
	case TokenData:
		return "DATA"
	case TokenLBrace:
		return "{"
	case TokenRBrace:
		return "}"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenEq:
		return "="
	case TokenSemicolon:
		return ";"
	case TokenComma:
		return ","
	default:
		return "UNKNOWN"
	}
}

// Position is a location in the input.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a lexer token.
type Token struct {
	Type  TokenType
	Value string
	Pos   Position
}

// ParseError reports a syntax error with its location.
type ParseError struct {
	Message string
	Pos     Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("plist: %s at %s", e.Message, e.Pos)
}

// Lexer tokenizes plist text.
type Lexer struct {
	input string
	pos   int
	line  int
	col   int
}

// NewLexer creates a lexer over input.
func NewLexer(input string) *Lexer {
	input = strings.TrimPrefix(input, "\ufeff")
	return &Lexer{input: input, line: 1, col: 1}
}

// Next returns the next token. At end of input it returns TokenEOF forever.
func (l *Lexer) Next() (Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return Token{}, err
	}
	start := l.currentPos()
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: start}, nil
	}

	ch := l.input[l.pos]
	switch ch {
	case '{':
		l.advance()
		return Token{Type: TokenLBrace, Value: "{", Pos: start}, nil
	case '}':
		l.advance()
		return Token{Type: TokenRBrace, Value: "}", Pos: start}, nil
	case '(':
		l.advance()
		return Token{Type: TokenLParen, Value: "(", Pos: start}, nil
	case ')':
		l.advance()
		return Token{Type: TokenRParen, Value: ")", Pos: start}, nil
	case '=':
		l.advance()
		return Token{Type: TokenEq, Value: "=", Pos: start}, nil
	case ';':
		l.advance()
		return Token{Type: TokenSemicolon, Value: ";", Pos: start}, nil
	case ',':
		l.advance()
		return Token{Type: TokenComma, Value: ",", Pos: start}, nil
	case '"', '\'':
		return l.scanQuoted(ch)
	case '<':
		return l.scanData()
	}

	if isBareChar(ch) {
		return l.scanBare(), nil
	}
	return Token{}, &ParseError{Message: fmt.Sprintf("unexpected character %q", ch), Pos: start}
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.input[l.pos:], s)
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for l.pos < len(l.input) {
		switch {
		case isSpace(l.input[l.pos]):
			l.advance()
		case l.hasPrefix("//"):
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance()
			}
		case l.hasPrefix("/*"):
			start := l.currentPos()
			l.advance()
			l.advance()
			for !l.hasPrefix("*/") {
				if l.pos >= len(l.input) {
					return &ParseError{Message: "unterminated comment", Pos: start}
				}
				l.advance()
			}
			l.advance()
			l.advance()
		default:
			return nil
		}
	}
	return nil
}

// scanBare reads an unquoted string. A bare string ends at whitespace, a
// delimiter or the start of a comment.
func (l *Lexer) scanBare() Token {
	start := l.currentPos()
	begin := l.pos
	for l.pos < len(l.input) && isBareChar(l.input[l.pos]) {
		if l.hasPrefix("//") || l.hasPrefix("/*") {
			break
		}
		l.advance()
	}
	return Token{Type: TokenString, Value: l.input[begin:l.pos], Pos: start}
}

func (l *Lexer) scanQuoted(quote byte) (Token, error) {
	start := l.currentPos()
	l.advance()

	var sb strings.Builder
	for {
		if l.pos >= len(l.input) {
			return Token{}, &ParseError{Message: "unterminated string", Pos: start}
		}
		ch := l.input[l.pos]
		if ch == quote {
			l.advance()
			break
		}
		if ch != '\\' {
			sb.WriteByte(ch)
			l.advance()
			continue
		}

		l.advance()
		if l.pos >= len(l.input) {
			return Token{}, &ParseError{Message: "unterminated escape", Pos: l.currentPos()}
		}
		escaped := l.input[l.pos]
		l.advance()
		switch escaped {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'U', 'u':
			if l.pos+4 > len(l.input) {
				return Token{}, &ParseError{Message: "short unicode escape", Pos: l.currentPos()}
			}
			code, err := strconv.ParseUint(l.input[l.pos:l.pos+4], 16, 32)
			if err != nil {
				return Token{}, &ParseError{Message: "invalid unicode escape", Pos: l.currentPos()}
			}
			for range 4 {
				l.advance()
			}
			sb.WriteRune(rune(code))
		default:
			// Backslash, quotes and anything unrecognized pass through.
			sb.WriteByte(escaped)
		}
	}
	return Token{Type: TokenString, Value: sb.String(), Pos: start}, nil
}

func (l *Lexer) scanData() (Token, error) {
	start := l.currentPos()
	l.advance()
	var sb strings.Builder
	for {
		if l.pos >= len(l.input) {
			return Token{}, &ParseError{Message: "unterminated data", Pos: start}
		}
		ch := l.input[l.pos]
		l.advance()
		if ch == '>' {
			break
		}
		if isSpace(ch) {
			continue
		}
		if !isHexDigit(ch) {
			return Token{}, &ParseError{Message: fmt.Sprintf("invalid data character %q", ch), Pos: start}
		}
		sb.WriteByte(ch)
	}
	return Token{Type: TokenData, Value: sb.String(), Pos: start}, nil
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// isBareChar is the lenient read-side set. Anything that is not whitespace,
// a quote or a structural delimiter may appear in a bare word.
func isBareChar(ch byte) bool {
	if isSpace(ch) {
		return false
	}
	switch ch {
	case '{', '}', '(', ')', '=', ';', ',', '"', '\'', '<', '>':
		return false
	}
	return true
}
