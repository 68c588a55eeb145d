package plist

import (
	"fmt"
)

// Parse reads a document whose top-level value must be a dictionary.
func Parse(data []byte) (*Dict, error) {
	p := &parser{lex: NewLexer(string(data))}
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok.Type != TokenLBrace {
		return nil, p.errorf("expected top-level dictionary, got %s", p.tok.Type)
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != TokenEOF {
		return nil, p.errorf("unexpected %s after top-level dictionary", p.tok.Type)
	}
	return v.(*Dict), nil
}

// ParseValue reads a single value of any kind.
func ParseValue(data []byte) (Value, error) {
	p := &parser{lex: NewLexer(string(data))}
	if err := p.next(); err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != TokenEOF {
		return nil, p.errorf("unexpected %s after value", p.tok.Type)
	}
	return v, nil
}

type parser struct {
	lex *Lexer
	tok Token
}

func (p *parser) next() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Message: fmt.Sprintf(format, args...), Pos: p.tok.Pos}
}

func (p *parser) expect(t TokenType) error {
	if p.tok.Type != t {
		return p.errorf("expected %s, got %s", t, p.tok.Type)
	}
	return p.next()
}

func (p *parser) parseValue() (Value, error) {
	switch p.tok.Type {
	case TokenString:
		v := String(p.tok.Value)
		if err := p.next(); err != nil {
			return nil, err
		}
		return v, nil
	case TokenData:
		v := Data(p.tok.Value)
		if err := p.next(); err != nil {
			return nil, err
		}
		return v, nil
	case TokenLBrace:
		return p.parseDict()
	case TokenLParen:
		return p.parseArray()
	default:
		return nil, p.errorf("unexpected %s", p.tok.Type)
	}
}

func (p *parser) parseDict() (*Dict, error) {
	if err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	d := NewDict()
	for p.tok.Type != TokenRBrace {
		if p.tok.Type != TokenString {
			return nil, p.errorf("expected key, got %s", p.tok.Type)
		}
		key := p.tok.Value
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expect(TokenEq); err != nil {
			return nil, err
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		d.Set(key, v)
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return d, nil
}

func (p *parser) parseArray() (Array, error) {
	if err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	arr := Array{}
	for p.tok.Type != TokenRParen {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
		if p.tok.Type == TokenComma {
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		if p.tok.Type != TokenRParen {
			return nil, p.errorf("expected , or ), got %s", p.tok.Type)
		}
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return arr, nil
}
