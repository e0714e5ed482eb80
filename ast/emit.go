package ast

import "github.com/pontaoski/dendron/machine"

var binaryInstructions = map[BinaryOperator]machine.Instruction{
	Add:      machine.Add{},
	Subtract: machine.Subtract{},
	Multiply: machine.Multiply{},
	Divide:   machine.Divide{},
}

var unaryInstructions = map[UnaryOperator]machine.Instruction{
	Negate:     machine.Negate{},
	SquareRoot: machine.SquareRoot{},
}

// EmitExpression returns the instructions leaving the value of e on top of
// the stack. Operands are emitted left then right, so binary instructions
// find the right operand on top.
func EmitExpression(e Expression) []machine.Instruction {
	switch expr := e.(type) {
	case BinaryOp:
		ins := EmitExpression(expr.Left)
		ins = append(ins, EmitExpression(expr.Right)...)
		return append(ins, binaryInstructions[expr.Op])
	case UnaryOp:
		return append(EmitExpression(expr.Operand), unaryInstructions[expr.Op])
	case Variable:
		return []machine.Instruction{machine.Load(expr)}
	case Constant:
		return []machine.Instruction{machine.PushConstant(expr)}
	}

	panic("unhandled")
}

func EmitStatement(s Statement) []machine.Instruction {
	switch stmt := s.(type) {
	case Assignment:
		return append(EmitExpression(stmt.Value), machine.Store(stmt.Ident))
	case Print:
		return append(EmitExpression(stmt.Printee), machine.Print{})
	}

	panic("unhandled")
}

// Emit compiles the program into one flat instruction sequence.
func (p Program) Emit() []machine.Instruction {
	var ins []machine.Instruction
	for _, s := range p.Statements {
		ins = append(ins, EmitStatement(s)...)
	}
	return ins
}
