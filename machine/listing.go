package machine

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pontaoski/dendron/errors"
	"github.com/pontaoski/dendron/lexer"
	"github.com/pontaoski/dendron/types"
	"github.com/ztrue/tracerr"
)

// Listing writes program one mnemonic per line.
func Listing(w io.Writer, program []Instruction) error {
	for _, in := range program {
		if _, err := fmt.Fprintln(w, Mnemonic(in)); err != nil {
			return err
		}
	}
	return nil
}

type operandFunc func(l *lexer.Lexer) Instruction

func nullary(in Instruction) operandFunc {
	return func(*lexer.Lexer) Instruction { return in }
}

// mnemonics maps every accepted mnemonic to its decoder. The short SUB, MUL
// and DIV forms are accepted alongside the listing forms.
var mnemonics = map[string]operandFunc{
	"PUSH": func(l *lexer.Lexer) Instruction {
		tok, lit := l.LexExpecting("integer operand", types.INT)
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			panic(errors.IllegalValue{Value: lit, Location: tok.Location})
		}
		return PushConstant(v)
	},
	"LOAD": func(l *lexer.Lexer) Instruction {
		_, name := l.LexExpecting("variable operand", types.IDENT)
		return Load(name)
	},
	"STORE": func(l *lexer.Lexer) Instruction {
		_, name := l.LexExpecting("variable operand", types.IDENT)
		return Store(name)
	},
	"ADD":      nullary(Add{}),
	"SUBTRACT": nullary(Subtract{}),
	"SUB":      nullary(Subtract{}),
	"MULTIPLY": nullary(Multiply{}),
	"MUL":      nullary(Multiply{}),
	"DIVIDE":   nullary(Divide{}),
	"DIV":      nullary(Divide{}),
	"NEG":      nullary(Negate{}),
	"SQRT":     nullary(SquareRoot{}),
	"PRINT":    nullary(Print{}),
}

// Assemble reads a listing back into instructions. Unknown mnemonics and
// malformed operands are IllegalValue errors; a missing operand is
// PrematureEnd.
func Assemble(r io.Reader, filename string) (program []Instruction, err error) {
	l, err := lexer.NewLexer(r, filename)
	if err != nil {
		return nil, err
	}

	defer func() {
		if v := recover(); v != nil {
			derr, ok := v.(errors.Error)
			if !ok {
				panic(v)
			}
			program, err = nil, tracerr.Wrap(derr)
		}
	}()

	for !l.Done() {
		tok, mnemonic := l.Lex()
		decode, ok := mnemonics[mnemonic]
		if !ok {
			panic(errors.IllegalValue{Value: mnemonic, Location: tok.Location})
		}
		program = append(program, decode(l))
	}

	plog.Debugf("%s: assembled %d instructions", filename, len(program))
	return program, nil
}
