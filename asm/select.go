package asm

import (
	"github.com/skx/cc/internal/ice"
	"github.com/skx/cc/tacky"
)

// arithOps maps the tacky BinaryOp values select lowers straight to a
// single AIR Binary instruction.
var arithOps = map[tacky.BinaryOp]BinaryOp{
	tacky.Add:    Add,
	tacky.Sub:    Sub,
	tacky.BitAnd: And,
	tacky.BitOr:  Or,
	tacky.BitXor: Xor,
	tacky.Shl:    Sal,
	tacky.Shr:    Sar,
}

// Select is the F pass: it turns TIR into AIR one instruction at a
// time, with no cross-instruction lookahead. Every TIR shape the
// parser and the D pass can actually produce has a selection rule
// here except !, && and || and the relational operators - reaching
// one of those is an internal compiler error, since this instruction
// set has no way to express short-circuit control flow or comparisons.
func Select(tir *tacky.Program) (*Program, error) {
	out := &Program{}

	for _, fn := range tir.Functions {
		afn := &Function{Name: fn.Name}
		for _, instr := range fn.Instructions {
			if err := selectInstr(afn, instr); err != nil {
				return nil, err
			}
		}
		out.Functions = append(out.Functions, afn)
	}

	return out, nil
}

func selectInstr(fn *Function, instr tacky.Instruction) error {
	switch instr.Kind {
	case tacky.InstrReturn:
		fn.Instructions = append(fn.Instructions,
			Mov(value(instr.Val), Reg(AX)),
			Ret(),
		)
		return nil

	case tacky.InstrUnary:
		return selectUnary(fn, instr)

	case tacky.InstrBinary:
		return selectBinary(fn, instr)

	default:
		return ice.Newf("select: unreachable tacky instruction kind %v", instr.Kind)
	}
}

func selectUnary(fn *Function, instr tacky.Instruction) error {
	dst := Pseudo(instr.Dst)

	switch instr.UnaryOp {
	case tacky.Complement:
		fn.Instructions = append(fn.Instructions, Mov(value(instr.Src), dst), UnaryInstr(Not, dst))
		return nil
	case tacky.Negate:
		fn.Instructions = append(fn.Instructions, Mov(value(instr.Src), dst), UnaryInstr(Neg, dst))
		return nil
	case tacky.Not:
		return ice.Newf("select: logical not has no AIR lowering (no branch instructions in this instruction set)")
	default:
		return ice.Newf("select: unreachable unary operator %v", instr.UnaryOp)
	}
}

func selectBinary(fn *Function, instr tacky.Instruction) error {
	dst := Pseudo(instr.Dst)
	src1 := value(instr.Src1)
	src2 := value(instr.Src2)

	if op, ok := arithOps[instr.BinaryOp]; ok {
		fn.Instructions = append(fn.Instructions, Mov(src1, dst), BinaryInstr(op, src2, dst))
		return nil
	}

	switch instr.BinaryOp {
	case tacky.Mul:
		fn.Instructions = append(fn.Instructions, Mov(src1, dst), BinaryInstr(Mult, src2, dst))
		return nil

	case tacky.Div:
		fn.Instructions = append(fn.Instructions,
			Mov(src1, Reg(AX)),
			Cdq(),
			Idiv(src2),
			Mov(Reg(AX), dst),
		)
		return nil

	case tacky.Mod:
		fn.Instructions = append(fn.Instructions,
			Mov(src1, Reg(AX)),
			Cdq(),
			Idiv(src2),
			Mov(Reg(DX), dst),
		)
		return nil

	case tacky.LogAnd, tacky.LogOr:
		return ice.Newf("select: %q has no AIR lowering (no branch instructions in this instruction set)", instr.BinaryOp)

	default:
		// Reached by a relational operator (<, <=, >, >=, ==, !=):
		// the grammar and the D pass both accept it, but no TIR
		// BinaryOp constant exists for it, so it can never match
		// arithOps or any case above. See DESIGN.md.
		return ice.Newf("select: unreachable binary operator %q", instr.BinaryOp)
	}
}

// value converts a tacky.Value operand to its AIR Operand: a constant
// becomes an Immediate, a named temporary or source variable becomes
// a Pseudo, replaced with a real Stack slot by the H pass.
func value(v tacky.Value) Operand {
	if v.Kind == tacky.ValConstant {
		return Immediate(v.Int)
	}
	return Pseudo(v.Name)
}
