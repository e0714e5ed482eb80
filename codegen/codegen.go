// Package codegen lowers a Dendron program to an LLVM IR module whose main
// function behaves like the stack machine: the same prints, the same
// DivideByZero and NegativeRoot failures.
package codegen

import (
	"fmt"
	"math"

	"github.com/coreos/pkg/capnslog"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/pontaoski/dendron/ast"
	"github.com/pontaoski/dendron/errors"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/dendron", "codegen")

type ctx struct {
	module   *ir.Module
	fn       *ir.Func
	block    *ir.Block
	builtins map[string]value.Value

	// vars holds one stack slot per assigned name, allocated up front in
	// the entry block.
	vars    map[string]value.Value
	defined map[string]bool

	stringConstants map[string]*ir.Global
	guards          int
}

// lookup fails when name is read before any assignment to it. Dendron has
// no control flow, so program order decides this statically.
func (c *ctx) lookup(name string) value.Value {
	if !c.defined[name] {
		panic(errors.Uninitialized{Name: name})
	}
	return c.vars[name]
}

func (c *ctx) str(s string) value.Value {
	data := s + "\x00"
	glob, ok := c.stringConstants[s]
	if !ok {
		glob = c.module.NewGlobalDef(fmt.Sprintf(".str.%d", len(c.stringConstants)), constant.NewCharArrayFromString(data))
		glob.Immutable = true
		c.stringConstants[s] = glob
	}

	zero := constant.NewInt(types.I32, 0)
	return c.block.NewGetElementPtr(types.NewArray(uint64(len(data)), Byte), glob, zero, zero)
}

// guard branches to a block that reports message and exits with the abort
// status when failed is true. Code generation continues in the other block.
func (c *ctx) guard(failed value.Value, message string) {
	c.guards++
	fail := c.fn.NewBlock(fmt.Sprintf("fail.%d", c.guards))
	cont := c.fn.NewBlock(fmt.Sprintf("cont.%d", c.guards))
	c.block.NewCondBr(failed, fail, cont)

	c.block = fail
	c.block.NewCall(c.builtins["printf"], c.str(message+"\n"))
	c.block.NewCall(c.builtins["exit"], constant.NewInt(Status, errors.Abort))
	c.block.NewUnreachable()

	c.block = cont
}

func codegenExpression(c *ctx, e ast.Expression) value.Value {
	zero := constant.NewInt(Int, 0)

	switch expr := e.(type) {
	case ast.Constant:
		return constant.NewInt(Int, int64(expr))
	case ast.Variable:
		return c.block.NewLoad(Int, c.lookup(string(expr)))
	case ast.BinaryOp:
		left := codegenExpression(c, expr.Left)
		right := codegenExpression(c, expr.Right)

		switch expr.Op {
		case ast.Add:
			return c.block.NewAdd(left, right)
		case ast.Subtract:
			return c.block.NewSub(left, right)
		case ast.Multiply:
			return c.block.NewMul(left, right)
		case ast.Divide:
			c.guard(c.block.NewICmp(enum.IPredEQ, right, zero), errors.KindDivideByZero.String())

			// MinInt64 / -1 traps in sdiv; dividing by 1 gives the wrapped result.
			overflow := c.block.NewAnd(
				c.block.NewICmp(enum.IPredEQ, left, constant.NewInt(Int, math.MinInt64)),
				c.block.NewICmp(enum.IPredEQ, right, constant.NewInt(Int, -1)),
			)
			divisor := c.block.NewSelect(overflow, constant.NewInt(Int, 1), right)
			return c.block.NewSDiv(left, divisor)
		}
	case ast.UnaryOp:
		operand := codegenExpression(c, expr.Operand)

		switch expr.Op {
		case ast.Negate:
			return c.block.NewSub(zero, operand)
		case ast.SquareRoot:
			c.guard(c.block.NewICmp(enum.IPredSLT, operand, zero), errors.KindNegativeRoot.String())
			return c.block.NewCall(c.builtins["isqrt"], operand)
		}
	}

	panic("unhandled")
}

func codegenStatement(c *ctx, s ast.Statement) {
	switch stmt := s.(type) {
	case ast.Assignment:
		val := codegenExpression(c, stmt.Value)
		c.block.NewStore(val, c.vars[stmt.Ident])
		c.defined[stmt.Ident] = true
	case ast.Print:
		val := codegenExpression(c, stmt.Printee)
		c.block.NewCall(c.builtins["printf"], c.str("%lld\n"), val)
	default:
		panic("unhandled")
	}
}

// assigned lists every assigned name once, in first assignment order.
func assigned(p ast.Program) (names []string) {
	seen := map[string]bool{}
	for _, s := range p.Statements {
		if a, ok := s.(ast.Assignment); ok && !seen[a.Ident] {
			seen[a.Ident] = true
			names = append(names, a.Ident)
		}
	}
	return
}

// Generate builds a module with a main function running p.
func Generate(p ast.Program) (m *ir.Module, err error) {
	defer func() {
		if v := recover(); v != nil {
			derr, ok := v.(errors.Error)
			if !ok {
				panic(v)
			}
			m, err = nil, tracerr.Wrap(derr)
		}
	}()

	modu := ir.NewModule()
	c := &ctx{
		module:          modu,
		builtins:        addBuiltins(modu),
		vars:            map[string]value.Value{},
		defined:         map[string]bool{},
		stringConstants: map[string]*ir.Global{},
	}

	c.fn = modu.NewFunc("main", Status)
	c.block = c.fn.NewBlock("entry")

	for _, name := range assigned(p) {
		slot := c.block.NewAlloca(Int)
		slot.SetName(name + ".addr")
		c.vars[name] = slot
	}

	for _, s := range p.Statements {
		codegenStatement(c, s)
	}
	c.block.NewRet(constant.NewInt(Status, 0))

	plog.Debugf("generated %d blocks for %d statements", len(c.fn.Blocks), len(p.Statements))
	return modu, nil
}
