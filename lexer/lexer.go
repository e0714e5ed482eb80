package lexer

import (
	"bufio"
	"io"
	"unicode"

	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/dendron/errors"
	"github.com/pontaoski/dendron/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/dendron", "lexer")

var operators = map[string]types.TokenKind{
	":=": types.ASSIGN,
	"@":  types.PRINT,
	"+":  types.PLUS,
	"-":  types.MINUS,
	"*":  types.STAR,
	"/":  types.SLASH,
	"_":  types.NEGATE,
	"#":  types.SQRT,
}

// Lexer is a cursor over an immutable token sequence. Tokens are never
// removed; Lex only advances the cursor.
type Lexer struct {
	tokens []types.Token
	cursor int
	end    types.Position
}

// NewLexer reads all of reader and splits it into whitespace separated
// tokens, remembering where each one started.
func NewLexer(reader io.Reader, filename string) (*Lexer, error) {
	l := &Lexer{}
	r := bufio.NewReader(reader)
	pos := types.Position{Line: 1, Column: 0, Filename: filename}

	var word []rune
	var from types.Position
	flush := func(to types.Position) {
		if len(word) == 0 {
			return
		}
		from.Index = len(l.tokens)
		to.Index = from.Index
		l.tokens = append(l.tokens, classify(string(word), types.Span{From: from, To: to}))
		word = word[:0]
	}

	last := pos
	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		pos.Column++
		switch {
		case ch == '\n':
			flush(last)
			pos.Line++
			pos.Column = 0
		case unicode.IsSpace(ch):
			flush(last)
		default:
			if len(word) == 0 {
				from = pos
			}
			word = append(word, ch)
		}
		last = pos
	}
	flush(last)

	l.end = pos
	l.end.Index = len(l.tokens)
	plog.Debugf("%s: read %d tokens", filename, len(l.tokens))
	return l, nil
}

// FromStrings builds a lexer over tokens that were already split, such as
// command line arguments.
func FromStrings(words []string) *Lexer {
	l := &Lexer{}
	for i, word := range words {
		pos := types.Position{Index: i}
		l.tokens = append(l.tokens, classify(word, types.SingleCharSpan(pos)))
	}
	l.end = types.Position{Index: len(words)}
	return l
}

func firstChar(r rune) bool {
	return unicode.IsLetter(r)
}

func isInteger(s string) bool {
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func classify(word string, span types.Span) types.Token {
	tok := types.Token{Kind: types.ILLEGAL, Text: word, Location: span}

	if kind, ok := operators[word]; ok {
		tok.Kind = kind
		return tok
	}

	switch {
	case word == "":
	case firstChar([]rune(word)[0]):
		tok.Kind = types.IDENT
	case isInteger(word):
		tok.Kind = types.INT
	}
	return tok
}

// Len is the number of tokens not yet consumed.
func (l *Lexer) Len() int {
	return len(l.tokens) - l.cursor
}

func (l *Lexer) Done() bool {
	return l.cursor >= len(l.tokens)
}

// Reset rewinds the cursor to the first token.
func (l *Lexer) Reset() {
	l.cursor = 0
}

// Tokens returns the underlying sequence.
func (l *Lexer) Tokens() []types.Token {
	return l.tokens
}

func (l *Lexer) eof() types.Token {
	return types.Token{Kind: types.EOF, Location: types.SingleCharSpan(l.end)}
}

func (l *Lexer) Peek() (types.Token, string) {
	if l.Done() {
		return l.eof(), ""
	}
	tok := l.tokens[l.cursor]
	return tok, tok.Text
}

func (l *Lexer) PeekIs(k ...types.TokenKind) bool {
	token, _ := l.Peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true
		}
	}

	return false
}

func (l *Lexer) Lex() (types.Token, string) {
	tok, lit := l.Peek()
	if tok.Kind != types.EOF {
		l.cursor++
	}
	return tok, lit
}

// LexExpecting consumes one token and panics with a Dendron error when it is
// not one of k: PrematureEnd for an exhausted stream, IllegalValue otherwise.
func (l *Lexer) LexExpecting(expected string, k ...types.TokenKind) (types.Token, string) {
	token, lit := l.Lex()
	if token.Kind == types.EOF {
		panic(errors.PrematureEnd{
			Expected: expected,
			Location: token.Location,
		})
	}
	for _, kind := range k {
		if token.Kind == kind {
			return token, lit
		}
	}

	panic(errors.IllegalValue{
		Value:    lit,
		Location: token.Location,
	})
}
