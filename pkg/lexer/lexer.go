// Package lexer tokenizes SOL25 concrete syntax — the textual notation
// underlying the end-to-end scenarios and the original front end SOL25
// programs are normally distributed in, before being compiled down to
// the XML AST pkg/xmlast consumes. Supplying source text directly is a
// convenience on top of the XML-AST interface, not a replacement for
// it.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"sol25/pkg/runtime"
)

// Kind identifies a token's lexical category.
type Kind int

const (
	EOF Kind = iota
	ClassKw
	SelfKw
	SuperKw
	NilKw
	TrueKw
	FalseKw
	BuiltinClass // Object, Nil, True, False, Integer, String, Block
	Identifier
	ClassIdentifier
	Assign
	Dot
	Colon
	LBrace
	RBrace
	LBracket
	RBracket
	LParen
	RParen
	Pipe
	String
	Integer
)

var keywords = map[string]Kind{
	"class": ClassKw,
	"self":  SelfKw,
	"super": SuperKw,
	"nil":   NilKw,
	"true":  TrueKw,
	"false": FalseKw,
}

var builtinClassNames = map[string]bool{
	"Object":  true,
	"Nil":     true,
	"True":    true,
	"False":   true,
	"Integer": true,
	"String":  true,
	"Block":   true,
}

// Token is one lexical unit. Value holds the literal text for
// Identifier, ClassIdentifier, BuiltinClass, the keyword kinds, String
// (already unescaped), and Integer; it is empty for every other kind.
type Token struct {
	Kind  Kind
	Value string
}

// Lex tokenizes src in full, returning every token up to and including
// a trailing EOF. It fails with a runtime.StructureError-categorized
// error on any character that cannot start a valid token or on an
// unterminated string or comment.
func Lex(src string) ([]Token, error) {
	l := &scanner{src: src}
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) next() (Token, error) {
	if err := s.skipTrivia(); err != nil {
		return Token{}, err
	}
	if s.pos >= len(s.src) {
		return Token{Kind: EOF}, nil
	}
	c := s.src[s.pos]

	switch {
	case c == ':':
		if s.peekAt(1) == '=' {
			s.pos += 2
			return Token{Kind: Assign}, nil
		}
		s.pos++
		return Token{Kind: Colon}, nil
	case c == '.':
		s.pos++
		return Token{Kind: Dot}, nil
	case c == '{':
		s.pos++
		return Token{Kind: LBrace}, nil
	case c == '}':
		s.pos++
		return Token{Kind: RBrace}, nil
	case c == '[':
		s.pos++
		return Token{Kind: LBracket}, nil
	case c == ']':
		s.pos++
		return Token{Kind: RBracket}, nil
	case c == '(':
		s.pos++
		return Token{Kind: LParen}, nil
	case c == ')':
		s.pos++
		return Token{Kind: RParen}, nil
	case c == '|':
		s.pos++
		return Token{Kind: Pipe}, nil
	case c == '\'':
		return s.lexString()
	case c >= '0' && c <= '9':
		return s.lexInteger(), nil
	case c == '+' || c == '-':
		if n := s.peekAt(1); n >= '0' && n <= '9' {
			return s.lexInteger(), nil
		}
		return Token{}, runtime.NewError(runtime.StructureError, "unexpected character %q at offset %d", c, s.pos)
	case isIdentStart(c):
		return s.lexWord(), nil
	default:
		return Token{}, runtime.NewError(runtime.StructureError, "unexpected character %q at offset %d", c, s.pos)
	}
}

func (s *scanner) peekAt(offset int) byte {
	if s.pos+offset >= len(s.src) {
		return 0
	}
	return s.src[s.pos+offset]
}

func (s *scanner) skipTrivia() error {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.pos++
		case c == '"':
			if err := s.skipComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (s *scanner) skipComment() error {
	start := s.pos
	s.pos++ // opening quote
	for s.pos < len(s.src) && s.src[s.pos] != '"' {
		s.pos++
	}
	if s.pos >= len(s.src) {
		return runtime.NewError(runtime.StructureError, "unterminated comment starting at offset %d", start)
	}
	s.pos++ // closing quote
	return nil
}

func (s *scanner) lexInteger() Token {
	start := s.pos
	if s.src[s.pos] == '+' || s.src[s.pos] == '-' {
		s.pos++
	}
	for s.pos < len(s.src) && s.src[s.pos] >= '0' && s.src[s.pos] <= '9' {
		s.pos++
	}
	return Token{Kind: Integer, Value: s.src[start:s.pos]}
}

// lexString handles three escapes, \n, \\ and \', inside
// single-quoted text.
func (s *scanner) lexString() (Token, error) {
	start := s.pos
	s.pos++ // opening quote
	var b strings.Builder
	for {
		if s.pos >= len(s.src) {
			return Token{}, runtime.NewError(runtime.StructureError, "unterminated string literal starting at offset %d", start)
		}
		c := s.src[s.pos]
		if c == '\'' {
			s.pos++
			return Token{Kind: String, Value: b.String()}, nil
		}
		if c == '\\' {
			switch s.peekAt(1) {
			case 'n':
				b.WriteByte('\n')
			case '\\':
				b.WriteByte('\\')
			case '\'':
				b.WriteByte('\'')
			default:
				return Token{}, runtime.NewError(runtime.StructureError, "invalid escape sequence at offset %d", s.pos)
			}
			s.pos += 2
			continue
		}
		b.WriteByte(c)
		s.pos++
	}
}

func (s *scanner) lexWord() Token {
	start := s.pos
	for s.pos < len(s.src) && isIdentCont(s.src[s.pos]) {
		s.pos++
	}
	word := s.src[start:s.pos]

	if kind, ok := keywords[word]; ok {
		return Token{Kind: kind, Value: word}
	}
	if builtinClassNames[word] {
		return Token{Kind: BuiltinClass, Value: word}
	}
	r, _ := utf8.DecodeRuneInString(word)
	if unicode.IsUpper(r) {
		return Token{Kind: ClassIdentifier, Value: word}
	}
	return Token{Kind: Identifier, Value: word}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
