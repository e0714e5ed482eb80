package types

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Filename string
	// Index is the zero-based position of the token in the stream.
	Index int
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota
	ILLEGAL

	ASSIGN
	PRINT

	PLUS
	MINUS
	STAR
	SLASH

	NEGATE
	SQRT

	IDENT
	INT
)

func (t TokenKind) String() string {
	data := map[TokenKind]string{
		EOF:     "EOF",
		ILLEGAL: "ILLEGAL",
		ASSIGN:  "ASSIGN",
		PRINT:   "PRINT",
		PLUS:    "PLUS",
		MINUS:   "MINUS",
		STAR:    "STAR",
		SLASH:   "SLASH",
		NEGATE:  "NEGATE",
		SQRT:    "SQRT",
		IDENT:   "IDENT",
		INT:     "INT",
	}
	return data[t]
}

// IsBinary reports whether the kind is one of + - * /.
func (t TokenKind) IsBinary() bool {
	return t >= PLUS && t <= SLASH
}

// IsUnary reports whether the kind is _ or #.
func (t TokenKind) IsUnary() bool {
	return t == NEGATE || t == SQRT
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

type Token struct {
	Kind     TokenKind
	Text     string
	Location Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}
