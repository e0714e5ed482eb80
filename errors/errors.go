// Package errors holds the Dendron error taxonomy. Every failure the parser,
// interpreter or machine can report is one of the types below; all of them
// are fatal for the run that produced them.
package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/pontaoski/dendron/types"
	"github.com/ztrue/tracerr"
)

// Abort is the exit status the driver uses for any reported error.
const Abort = 1

type Kind int

const (
	Unknown Kind = iota
	KindDivideByZero
	KindIllegalValue
	KindUninitialized
	KindPrematureEnd
	KindNegativeRoot
	KindStackUnderflow
)

func (k Kind) String() string {
	data := map[Kind]string{
		Unknown:            "unknown error",
		KindDivideByZero:   "divide by zero",
		KindIllegalValue:   "illegal value encountered in source",
		KindUninitialized:  "uninitialized variable in expression",
		KindPrematureEnd:   "premature end of statement",
		KindNegativeRoot:   "square root of negative value",
		KindStackUnderflow: "machine stack underflow",
	}
	return data[k]
}

// Error is implemented by every error in the taxonomy.
type Error interface {
	error
	Kind() Kind
	// Info is the optional context printed after the kind message.
	Info() string
}

func format(e Error) string {
	if info := e.Info(); info != "" {
		return fmt.Sprintf("%s: %s", e.Kind(), info)
	}
	return e.Kind().String()
}

type DivideByZero struct {
	// Expr is the infix form of the division, when known.
	Expr string
}

func (e DivideByZero) Kind() Kind    { return KindDivideByZero }
func (e DivideByZero) Info() string  { return e.Expr }
func (e DivideByZero) Error() string { return format(e) }

type IllegalValue struct {
	Value    string
	Location types.Span
}

func (e IllegalValue) Kind() Kind { return KindIllegalValue }
func (e IllegalValue) Info() string {
	if e.Location.From.Line == 0 {
		return fmt.Sprintf("%q", e.Value)
	}
	return fmt.Sprintf("%q at %s", e.Value, e.Location.From)
}
func (e IllegalValue) Error() string { return format(e) }

type Uninitialized struct {
	Name string
	// Suggestion is the closest bound name, if any.
	Suggestion string
}

func (e Uninitialized) Kind() Kind { return KindUninitialized }
func (e Uninitialized) Info() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (did you mean %s?)", e.Name, e.Suggestion)
	}
	return e.Name
}
func (e Uninitialized) Error() string { return format(e) }

type PrematureEnd struct {
	// Expected names what the parser was looking for.
	Expected string
	Location types.Span
}

func (e PrematureEnd) Kind() Kind { return KindPrematureEnd }
func (e PrematureEnd) Info() string {
	if e.Expected == "" {
		return ""
	}
	return "expected " + e.Expected
}
func (e PrematureEnd) Error() string { return format(e) }

type NegativeRoot struct {
	Value int64
}

func (e NegativeRoot) Kind() Kind    { return KindNegativeRoot }
func (e NegativeRoot) Info() string  { return fmt.Sprint(e.Value) }
func (e NegativeRoot) Error() string { return format(e) }

type StackUnderflow struct {
	Instruction string
	// Index is the position of the failing instruction in the program.
	Index int
}

func (e StackUnderflow) Kind() Kind { return KindStackUnderflow }
func (e StackUnderflow) Info() string {
	return fmt.Sprintf("%s at instruction %d", e.Instruction, e.Index)
}
func (e StackUnderflow) Error() string { return format(e) }

// As unwraps tracerr wrapping and reports whether err is a Dendron error.
func As(err error) (Error, bool) {
	if err == nil {
		return nil, false
	}
	var derr Error
	if stderrors.As(tracerr.Unwrap(err), &derr) {
		return derr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or Unknown for foreign errors.
func KindOf(err error) Kind {
	if derr, ok := As(err); ok {
		return derr.Kind()
	}
	return Unknown
}
