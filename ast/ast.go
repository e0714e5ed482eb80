// Package ast is the Dendron tree model. Statements and expressions are
// closed sets of variants; every traversal is a type switch over them.
package ast

//go:generate sh -c "cd ../tool && go run . ../ast/nodes.adt ../ast/nodes_gen.go ast"

type BinaryOperator string

const (
	Add      BinaryOperator = "+"
	Subtract BinaryOperator = "-"
	Multiply BinaryOperator = "*"
	Divide   BinaryOperator = "/"
)

type UnaryOperator string

const (
	Negate     UnaryOperator = "_"
	SquareRoot UnaryOperator = "#"
)

// Program is the root of a parsed Dendron source. Statements run and emit in
// slice order.
type Program struct {
	Statements []Statement
}

func (p *Program) Add(s Statement) {
	p.Statements = append(p.Statements, s)
}
