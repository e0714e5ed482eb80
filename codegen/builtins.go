package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

var (
	Int    = types.I64
	Status = types.I32
	Byte   = types.I8
	Float  = types.Double
)

func addBuiltins(m *ir.Module) (ret map[string]value.Value) {
	ret = make(map[string]value.Value)

	funcs := []func(*ir.Module) (string, value.Value){
		addPrintf,
		addExit,
		addSqrt,
	}
	for _, fn := range funcs {
		k, v := fn(m)
		ret[k] = v
	}
	ret["isqrt"] = addIsqrt(m, ret["sqrt"])

	return
}

func addPrintf(m *ir.Module) (string, value.Value) {
	fn := m.NewFunc("printf", Status, ir.NewParam("format", types.NewPointer(Byte)))
	fn.Sig.Variadic = true

	return "printf", fn
}

func addExit(m *ir.Module) (string, value.Value) {
	return "exit", m.NewFunc("exit", types.Void, ir.NewParam("status", Status))
}

func addSqrt(m *ir.Module) (string, value.Value) {
	return "sqrt", m.NewFunc("llvm.sqrt.f64", Float, ir.NewParam("x", Float))
}

// addIsqrt defines the floor square root of a non-negative i64. The double
// estimate is off by one above 2^53, so it is corrected in both directions
// with unsigned compares.
func addIsqrt(m *ir.Module, sqrt value.Value) value.Value {
	n := ir.NewParam("n", Int)
	fn := m.NewFunc("dendron.isqrt", Int, n)

	entry := fn.NewBlock("entry")
	down := fn.NewBlock("down")
	downBody := fn.NewBlock("down.body")
	up := fn.NewBlock("up")
	upBody := fn.NewBlock("up.body")
	done := fn.NewBlock("done")
	one := constant.NewInt(Int, 1)

	slot := entry.NewAlloca(Int)
	slot.SetName("r.addr")
	estimate := entry.NewCall(sqrt, entry.NewSIToFP(n, Float))
	entry.NewStore(entry.NewFPToUI(estimate, Int), slot)
	entry.NewBr(down)

	r := down.NewLoad(Int, slot)
	down.NewCondBr(down.NewICmp(enum.IPredUGT, down.NewMul(r, r), n), downBody, up)

	downBody.NewStore(downBody.NewSub(downBody.NewLoad(Int, slot), one), slot)
	downBody.NewBr(down)

	next := up.NewAdd(up.NewLoad(Int, slot), one)
	up.NewCondBr(up.NewICmp(enum.IPredULE, up.NewMul(next, next), n), upBody, done)

	upBody.NewStore(next, slot)
	upBody.NewBr(up)

	done.NewRet(done.NewLoad(Int, slot))

	return fn
}
