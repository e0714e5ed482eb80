// Package machine is the Dendron stack machine: a value stack, a variable
// store and a strictly linear instruction sequence.
package machine

import (
	"fmt"
	"io"

	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/dendron/errors"
	"github.com/pontaoski/dendron/symtab"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/dendron", "machine")

type Machine struct {
	stack []int64
	table *symtab.Table
	out   io.Writer

	// pc is the index of the instruction being executed.
	pc int
	in Instruction
}

// Report describes the machine state after a program ran.
type Report struct {
	// Leftover is the number of values still on the stack. A well formed
	// program leaves none.
	Leftover int
	Symbols  *symtab.Table
}

func (r Report) Summary() string {
	return fmt.Sprintf("Machine: execution ended with %d items left on the stack.", r.Leftover)
}

// Dump writes the end-of-execution summary followed by the symbol table.
func (r Report) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", r.Summary()); err != nil {
		return err
	}
	return r.Symbols.Dump(w)
}

// New creates a machine whose PRINT instructions write to out.
func New(out io.Writer) *Machine {
	m := &Machine{out: out}
	m.reset()
	return m
}

func (m *Machine) reset() {
	m.stack = nil
	m.table = symtab.New()
	m.pc = 0
	m.in = nil
}

// Stack returns a copy of the value stack, bottom first.
func (m *Machine) Stack() []int64 {
	return append([]int64(nil), m.stack...)
}

func (m *Machine) push(v int64) {
	m.stack = append(m.stack, v)
}

func (m *Machine) pop() int64 {
	if len(m.stack) == 0 {
		panic(errors.StackUnderflow{
			Instruction: Mnemonic(m.in),
			Index:       m.pc,
		})
	}

	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v
}

// Execute runs program from a clean state. On failure the returned report
// describes the state at the failing instruction.
func (m *Machine) Execute(program []Instruction) (r Report, err error) {
	m.reset()

	defer func() {
		if v := recover(); v != nil {
			derr, ok := v.(errors.Error)
			if !ok {
				panic(v)
			}
			err = derr
		}
		r = Report{Leftover: len(m.stack), Symbols: m.table}
		if err == nil && r.Leftover > 0 {
			plog.Warningf("execution ended with %d items left on the stack", r.Leftover)
		}
	}()

	for m.pc = range program {
		m.in = program[m.pc]
		plog.Tracef("%4d %-12s %v", m.pc, Mnemonic(m.in), m.stack)
		if err := m.step(m.in); err != nil {
			return Report{}, err
		}
	}

	return Report{}, nil
}

func (m *Machine) step(in Instruction) error {
	switch v := in.(type) {
	case PushConstant:
		m.push(int64(v))
	case Load:
		val, err := m.table.Get(string(v))
		if err != nil {
			return err
		}
		m.push(val)
	case Store:
		m.table.Set(string(v), m.pop())
	case Add:
		a, b := m.pop(), m.pop()
		m.push(b + a)
	case Subtract:
		a, b := m.pop(), m.pop()
		m.push(b - a)
	case Multiply:
		a, b := m.pop(), m.pop()
		m.push(b * a)
	case Divide:
		a, b := m.pop(), m.pop()
		if a == 0 {
			return errors.DivideByZero{Expr: fmt.Sprintf("%d / %d", b, a)}
		}
		m.push(b / a)
	case Negate:
		m.push(-m.pop())
	case SquareRoot:
		val, err := Sqrt(m.pop())
		if err != nil {
			return err
		}
		m.push(val)
	case Print:
		if _, err := fmt.Fprintf(m.out, "*** %d\n", m.pop()); err != nil {
			return err
		}
	default:
		panic("unhandled")
	}

	return nil
}
