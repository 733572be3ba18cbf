// Package emit implements the J pass: it serializes legalized AIR
// into GNU assembler (GAS) text for x86-64 Linux, using the 32-bit
// registers and the SysV stack-frame convention.
package emit

import (
	"fmt"
	"strings"

	"github.com/skx/cc/asm"
	"github.com/skx/cc/internal/ice"
)

// reg32 names the 32-bit form of each register this compiler ever
// selects.
var reg32 = map[asm.Register]string{
	asm.AX:  "%eax",
	asm.DX:  "%edx",
	asm.R10: "%r10d",
	asm.R11: "%r11d",
}

// Emit turns a legalized AIR program into GAS text.
func Emit(prog *asm.Program) (string, error) {
	var b strings.Builder

	for _, fn := range prog.Functions {
		if err := emitFunction(&b, fn); err != nil {
			return "", err
		}
	}

	b.WriteString("\t.section .note.GNU-stack,\"\",@progbits\n")
	return b.String(), nil
}

func emitFunction(b *strings.Builder, fn *asm.Function) error {
	fmt.Fprintf(b, "\t.globl %s\n", fn.Name)
	fmt.Fprintf(b, "%s:\n", fn.Name)
	fmt.Fprintf(b, "\tpushq\t%%rbp\n")
	fmt.Fprintf(b, "\tmovq\t%%rsp, %%rbp\n")

	for _, instr := range fn.Instructions {
		if err := emitInstruction(b, instr); err != nil {
			return err
		}
	}

	return nil
}

func emitInstruction(b *strings.Builder, instr asm.Instruction) error {
	for _, op := range []asm.Operand{instr.Src, instr.Dst, instr.Operand} {
		if op.Kind == asm.OpPseudo {
			return ice.Newf("emit: pseudo operand %q survived stack-slot replacement", op.Name)
		}
	}

	switch instr.Kind {
	case asm.InstrAllocateStack:
		fmt.Fprintf(b, "\tsubq\t$%d, %%rsp\n", instr.Size)

	case asm.InstrMov:
		fmt.Fprintf(b, "\tmovl\t%s, %s\n", operand(instr.Src), operand(instr.Dst))

	case asm.InstrUnary:
		mnemonic, ok := unaryMnemonic[instr.UnaryOp]
		if !ok {
			return ice.Newf("emit: unreachable unary operator %v", instr.UnaryOp)
		}
		fmt.Fprintf(b, "\t%s\t%s\n", mnemonic, operand(instr.Dst))

	case asm.InstrBinary:
		return emitBinary(b, instr)

	case asm.InstrIdiv:
		fmt.Fprintf(b, "\tidivl\t%s\n", operand(instr.Operand))

	case asm.InstrCdq:
		fmt.Fprintf(b, "\tcdq\n")

	case asm.InstrRet:
		fmt.Fprintf(b, "\tmovq\t%%rbp, %%rsp\n")
		fmt.Fprintf(b, "\tpopq\t%%rbp\n")
		fmt.Fprintf(b, "\tret\n")

	default:
		return ice.Newf("emit: unreachable instruction kind %v", instr.Kind)
	}

	return nil
}

var unaryMnemonic = map[asm.UnaryOp]string{
	asm.Neg: "negl",
	asm.Not: "notl",
}

var binaryMnemonic = map[asm.BinaryOp]string{
	asm.Add:  "addl",
	asm.Sub:  "subl",
	asm.And:  "andl",
	asm.Or:   "orl",
	asm.Xor:  "xorl",
	asm.Sal:  "sall",
	asm.Sar:  "sarl",
	asm.Mult: "imull",
}

func emitBinary(b *strings.Builder, instr asm.Instruction) error {
	mnemonic, ok := binaryMnemonic[instr.BinaryOp]
	if !ok {
		return ice.Newf("emit: unreachable binary operator %v", instr.BinaryOp)
	}
	fmt.Fprintf(b, "\t%s\t%s, %s\n", mnemonic, operand(instr.Src), operand(instr.Dst))
	return nil
}

func operand(op asm.Operand) string {
	switch op.Kind {
	case asm.OpImmediate:
		return fmt.Sprintf("$%d", op.Imm)
	case asm.OpRegister:
		return reg32[op.Reg]
	case asm.OpStack:
		return fmt.Sprintf("%d(%%rbp)", op.Off)
	default:
		return "<invalid-operand>"
	}
}
