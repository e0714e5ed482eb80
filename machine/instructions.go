package machine

import (
	"fmt"
	"math"

	"github.com/pontaoski/dendron/errors"
)

//go:generate sh -c "cd ../tool && go run . ../machine/instructions.adt ../machine/instructions_gen.go machine"

// Mnemonic returns the listing form of in.
func Mnemonic(in Instruction) string {
	switch v := in.(type) {
	case PushConstant:
		return fmt.Sprintf("PUSH %d", int64(v))
	case Load:
		return "LOAD " + string(v)
	case Store:
		return "STORE " + string(v)
	case Add:
		return "ADD"
	case Subtract:
		return "SUBTRACT"
	case Multiply:
		return "MULTIPLY"
	case Divide:
		return "DIVIDE"
	case Negate:
		return "NEG"
	case SquareRoot:
		return "SQRT"
	case Print:
		return "PRINT"
	}

	panic("unhandled")
}

func (v PushConstant) String() string { return Mnemonic(v) }
func (v Load) String() string         { return Mnemonic(v) }
func (v Store) String() string        { return Mnemonic(v) }
func (v Add) String() string          { return Mnemonic(v) }
func (v Subtract) String() string     { return Mnemonic(v) }
func (v Multiply) String() string     { return Mnemonic(v) }
func (v Divide) String() string       { return Mnemonic(v) }
func (v Negate) String() string       { return Mnemonic(v) }
func (v SquareRoot) String() string   { return Mnemonic(v) }
func (v Print) String() string        { return Mnemonic(v) }

// Sqrt is the truncating integer square root shared by the interpreter and
// the machine. Negative operands fail with NegativeRoot.
func Sqrt(n int64) (int64, error) {
	if n < 0 {
		return 0, errors.NegativeRoot{Value: n}
	}

	// float64 loses precision above 2^53, so correct the estimate.
	r := uint64(math.Sqrt(float64(n)))
	u := uint64(n)
	for r*r > u {
		r--
	}
	for (r+1)*(r+1) <= u {
		r++
	}
	return int64(r), nil
}
