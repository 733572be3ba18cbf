package asm

import "github.com/skx/cc/stack"

// align16 rounds n up to the next multiple of 16, the stack alignment
// the SysV calling convention requires at a call boundary.
func align16(n int) int {
	if n%16 == 0 {
		return n
	}
	return n + (16 - n%16)
}

// Legalize is the I pass: it walks a function's instructions once,
// pushing each instruction onto a work stack either unchanged or
// split into the two-or-three instruction sequence that makes it
// legal, then prepends the AllocateStack prologue sized from
// stackSize (the total H handed back for this function, before
// 16-byte alignment).
func Legalize(fn *Function, stackSize int) {
	buf := stack.New[Instruction]()

	for _, instr := range fn.Instructions {
		for _, fixed := range legalizeInstr(instr) {
			buf.Push(fixed)
		}
	}

	fixed := buf.Items()
	out := make([]Instruction, 0, len(fixed)+1)
	out = append(out, AllocateStack(align16(stackSize+8)))
	out = append(out, fixed...)
	fn.Instructions = out
}

func isMemory(op Operand) bool {
	return op.Kind == OpStack
}

func legalizeInstr(instr Instruction) []Instruction {
	switch instr.Kind {
	case InstrMov:
		if isMemory(instr.Src) && isMemory(instr.Dst) {
			return []Instruction{
				Mov(instr.Src, Reg(R10)),
				Mov(Reg(R10), instr.Dst),
			}
		}
		return []Instruction{instr}

	case InstrIdiv:
		if instr.Operand.Kind == OpImmediate {
			return []Instruction{
				Mov(instr.Operand, Reg(R10)),
				Idiv(Reg(R10)),
			}
		}
		return []Instruction{instr}

	case InstrBinary:
		return legalizeBinary(instr)

	default:
		return []Instruction{instr}
	}
}

func legalizeBinary(instr Instruction) []Instruction {
	switch instr.BinaryOp {
	case Add, Sub, And, Or, Xor, Sal, Sar:
		if isMemory(instr.Src) && isMemory(instr.Dst) {
			return []Instruction{
				Mov(instr.Src, Reg(R10)),
				BinaryInstr(instr.BinaryOp, Reg(R10), instr.Dst),
			}
		}
		return []Instruction{instr}

	case Mult:
		// imul cannot write directly to a memory destination.
		if isMemory(instr.Dst) {
			return []Instruction{
				Mov(instr.Dst, Reg(R11)),
				BinaryInstr(Mult, instr.Src, Reg(R11)),
				Mov(Reg(R11), instr.Dst),
			}
		}
		return []Instruction{instr}

	default:
		return []Instruction{instr}
	}
}
