package ast

import (
	"fmt"
	"io"

	"github.com/pontaoski/dendron/errors"
	"github.com/pontaoski/dendron/machine"
	"github.com/pontaoski/dendron/symtab"
)

// Evaluate computes the value of e against store.
func Evaluate(e Expression, store *symtab.Table) (int64, error) {
	switch expr := e.(type) {
	case BinaryOp:
		left, err := Evaluate(expr.Left, store)
		if err != nil {
			return 0, err
		}
		right, err := Evaluate(expr.Right, store)
		if err != nil {
			return 0, err
		}

		switch expr.Op {
		case Add:
			return left + right, nil
		case Subtract:
			return left - right, nil
		case Multiply:
			return left * right, nil
		case Divide:
			if right == 0 {
				return 0, errors.DivideByZero{Expr: expr.String()}
			}
			return left / right, nil
		}
		panic("unhandled")
	case UnaryOp:
		val, err := Evaluate(expr.Operand, store)
		if err != nil {
			return 0, err
		}

		switch expr.Op {
		case Negate:
			return -val, nil
		case SquareRoot:
			return machine.Sqrt(val)
		}
		panic("unhandled")
	case Variable:
		return store.Get(string(expr))
	case Constant:
		return int64(expr), nil
	}

	panic("unhandled")
}

// Execute runs s against store. Print output goes to out.
func Execute(s Statement, store *symtab.Table, out io.Writer) error {
	switch stmt := s.(type) {
	case Assignment:
		val, err := Evaluate(stmt.Value, store)
		if err != nil {
			return err
		}
		store.Set(stmt.Ident, val)
		return nil
	case Print:
		val, err := Evaluate(stmt.Printee, store)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "=== %d\n", val)
		return err
	}

	panic("unhandled")
}

// Execute runs every statement in order against one shared store, stopping
// at the first error. Output written before the error stays written.
func (p Program) Execute(store *symtab.Table, out io.Writer) error {
	for _, s := range p.Statements {
		if err := Execute(s, store, out); err != nil {
			return err
		}
	}
	return nil
}
