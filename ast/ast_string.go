package ast

import (
	"fmt"
	"strings"
)

func expressionString(e Expression) string {
	switch v := e.(type) {
	case BinaryOp:
		return fmt.Sprintf("( %s %s %s )", expressionString(v.Left), v.Op, expressionString(v.Right))
	case UnaryOp:
		return string(v.Op) + expressionString(v.Operand)
	case Variable:
		return string(v)
	case Constant:
		return fmt.Sprint(int64(v))
	}

	panic("unhandled")
}

func statementString(s Statement) string {
	switch v := s.(type) {
	case Assignment:
		return v.Ident + " := " + expressionString(v.Value)
	case Print:
		return "PRINT " + expressionString(v.Printee)
	}

	panic("unhandled")
}

func (v BinaryOp) String() string   { return expressionString(v) }
func (v UnaryOp) String() string    { return expressionString(v) }
func (v Variable) String() string   { return expressionString(v) }
func (v Constant) String() string   { return expressionString(v) }
func (v Assignment) String() string { return statementString(v) }
func (v Print) String() string      { return statementString(v) }

// String is the infix display of the program, one statement per line.
func (p Program) String() string {
	var b strings.Builder
	for _, s := range p.Statements {
		b.WriteString(statementString(s))
		b.WriteByte('\n')
	}
	return b.String()
}
