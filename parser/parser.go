// Package parser builds a Dendron syntax tree from prefix notation tokens by
// recursive descent with one token of lookahead and no backtracking.
package parser

import (
	"io"
	"strconv"

	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/dendron/ast"
	"github.com/pontaoski/dendron/errors"
	"github.com/pontaoski/dendron/lexer"
	"github.com/pontaoski/dendron/types"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/dendron", "parser")

var binaryOps = map[types.TokenKind]ast.BinaryOperator{
	types.PLUS:  ast.Add,
	types.MINUS: ast.Subtract,
	types.STAR:  ast.Multiply,
	types.SLASH: ast.Divide,
}

var unaryOps = map[types.TokenKind]ast.UnaryOperator{
	types.NEGATE: ast.Negate,
	types.SQRT:   ast.SquareRoot,
}

type Parser struct {
	l   *lexer.Lexer
	ast ast.Program
}

func NewParser(l *lexer.Lexer) Parser {
	a := ast.Program{}
	return Parser{l, a}
}

// Parse consumes the whole token stream. Any failure is returned as a
// tracerr-wrapped Dendron error and no program is produced.
func (p *Parser) Parse() (prog ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(errors.Error)
			if ok {
				prog, err = ast.Program{}, tracerr.Wrap(rerr)
			} else {
				panic(r)
			}
		}
	}()

	for !p.l.Done() {
		p.ast.Add(p.parseStatement())
	}

	plog.Debugf("parsed %d statements", len(p.ast.Statements))
	return p.ast, nil
}

// Parse parses already split tokens.
func Parse(tokens []string) (ast.Program, error) {
	p := NewParser(lexer.FromStrings(tokens))
	return p.Parse()
}

// ParseReader splits reader on whitespace and parses the result.
func ParseReader(reader io.Reader, filename string) (ast.Program, error) {
	l, err := lexer.NewLexer(reader, filename)
	if err != nil {
		return ast.Program{}, tracerr.Wrap(err)
	}
	p := NewParser(l)
	return p.Parse()
}

func (p *Parser) parseStatement() ast.Statement {
	tok, _ := p.l.LexExpecting("statement", types.ASSIGN, types.PRINT)

	switch tok.Kind {
	case types.ASSIGN:
		_, name := p.l.LexExpecting("identifier", types.IDENT)
		return ast.Assignment{
			Ident: name,
			Value: p.parseExpression(),
		}
	case types.PRINT:
		return ast.Print{
			Printee: p.parseExpression(),
		}
	}

	panic("unhandled")
}

func (p *Parser) parseExpression() ast.Expression {
	tok, lit := p.l.LexExpecting("expression",
		types.PLUS, types.MINUS, types.STAR, types.SLASH,
		types.NEGATE, types.SQRT,
		types.IDENT, types.INT,
	)

	switch {
	case tok.Kind.IsBinary():
		left := p.parseExpression()
		right := p.parseExpression()
		return ast.BinaryOp{
			Op:    binaryOps[tok.Kind],
			Left:  left,
			Right: right,
		}
	case tok.Kind.IsUnary():
		return ast.UnaryOp{
			Op:      unaryOps[tok.Kind],
			Operand: p.parseExpression(),
		}
	case tok.Kind == types.IDENT:
		return ast.Variable(lit)
	case tok.Kind == types.INT:
		parsed, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			panic(errors.IllegalValue{Value: lit, Location: tok.Location})
		}
		return ast.Constant(parsed)
	}

	panic("unhandled")
}
