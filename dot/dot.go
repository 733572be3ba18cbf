// Package dot renders each pipeline stage's tree as Graphviz DOT text,
// for developers debugging the compiler itself. No pass depends on
// this package; it only ever reads a tree another pass already built.
package dot

import (
	"fmt"
	"strings"

	"github.com/skx/cc/asm"
	"github.com/skx/cc/ast"
	"github.com/skx/cc/tacky"
)

// dumper accumulates DOT node/edge statements and hands out unique
// node IDs as it walks a tree.
type dumper struct {
	b      strings.Builder
	nextID int
}

func (d *dumper) id() string {
	id := fmt.Sprintf("n%d", d.nextID)
	d.nextID++
	return id
}

func (d *dumper) node(id, label string) {
	fmt.Fprintf(&d.b, "\t%s [label=%q];\n", id, label)
}

func (d *dumper) edge(from, to string) {
	fmt.Fprintf(&d.b, "\t%s -> %s;\n", from, to)
}

// AST renders a source AST as a DOT digraph.
func AST(prog *ast.Program) string {
	d := &dumper{}
	d.b.WriteString("digraph ast {\n")

	root := d.id()
	d.node(root, "Program")
	for _, fn := range prog.Functions {
		fnID := d.dumpFunction(fn)
		d.edge(root, fnID)
	}

	d.b.WriteString("}\n")
	return d.b.String()
}

func (d *dumper) dumpFunction(fn *ast.Function) string {
	id := d.id()
	d.node(id, fmt.Sprintf("Function\\n%s %s", fn.ReturnType, fn.Name))

	for _, stmt := range fn.Body.Statements {
		stmtID := d.id()
		d.node(stmtID, "return")
		d.edge(id, stmtID)
		d.edge(stmtID, d.dumpExpr(stmt.Expr))
	}

	return id
}

func (d *dumper) dumpExpr(expr *ast.Expression) string {
	id := d.id()

	switch expr.Kind {
	case ast.ExprInteger:
		d.node(id, fmt.Sprintf("%d", expr.Value))

	case ast.ExprUnary:
		d.node(id, string(expr.UnaryOp))
		d.edge(id, d.dumpExpr(expr.Operand))

	case ast.ExprBinary:
		d.node(id, string(expr.BinOp))
		d.edge(id, d.dumpExpr(expr.Left))
		d.edge(id, d.dumpExpr(expr.Right))
	}

	return id
}

// Tacky renders a TIR program as a DOT digraph: one cluster per
// function, one node per instruction, in program order.
func Tacky(prog *tacky.Program) string {
	var b strings.Builder
	b.WriteString("digraph tacky {\n")

	for fi, fn := range prog.Functions {
		fmt.Fprintf(&b, "\tsubgraph cluster_%d {\n\t\tlabel=%q;\n", fi, fn.Name)

		var prev string
		for ii, instr := range fn.Instructions {
			id := fmt.Sprintf("f%d_i%d", fi, ii)
			fmt.Fprintf(&b, "\t\t%s [label=%q];\n", id, instrLabel(instr))
			if prev != "" {
				fmt.Fprintf(&b, "\t\t%s -> %s;\n", prev, id)
			}
			prev = id
		}

		b.WriteString("\t}\n")
	}

	b.WriteString("}\n")
	return b.String()
}

// Asm renders an AIR program as a DOT digraph, in the same
// one-cluster-per-function shape Tacky uses. It accepts the AIR at
// any stage: pseudo operands, stack slots and registers all render.
func Asm(prog *asm.Program) string {
	var b strings.Builder
	b.WriteString("digraph asm {\n")

	for fi, fn := range prog.Functions {
		fmt.Fprintf(&b, "\tsubgraph cluster_%d {\n\t\tlabel=%q;\n", fi, fn.Name)

		var prev string
		for ii, instr := range fn.Instructions {
			id := fmt.Sprintf("f%d_i%d", fi, ii)
			fmt.Fprintf(&b, "\t\t%s [label=%q];\n", id, asmInstrLabel(instr))
			if prev != "" {
				fmt.Fprintf(&b, "\t\t%s -> %s;\n", prev, id)
			}
			prev = id
		}

		b.WriteString("\t}\n")
	}

	b.WriteString("}\n")
	return b.String()
}

var regLabel = map[asm.Register]string{
	asm.AX:  "AX",
	asm.DX:  "DX",
	asm.R10: "R10",
	asm.R11: "R11",
}

var asmUnaryLabel = map[asm.UnaryOp]string{
	asm.Neg: "Neg",
	asm.Not: "Not",
}

var asmBinaryLabel = map[asm.BinaryOp]string{
	asm.Add:  "Add",
	asm.Sub:  "Sub",
	asm.And:  "And",
	asm.Or:   "Or",
	asm.Xor:  "Xor",
	asm.Sal:  "Sal",
	asm.Sar:  "Sar",
	asm.Mult: "Mult",
}

func operandLabel(op asm.Operand) string {
	switch op.Kind {
	case asm.OpImmediate:
		return fmt.Sprintf("$%d", op.Imm)
	case asm.OpRegister:
		return regLabel[op.Reg]
	case asm.OpPseudo:
		return op.Name
	case asm.OpStack:
		return fmt.Sprintf("%d(rbp)", op.Off)
	default:
		return "?"
	}
}

func asmInstrLabel(instr asm.Instruction) string {
	switch instr.Kind {
	case asm.InstrMov:
		return fmt.Sprintf("Mov %s -> %s", operandLabel(instr.Src), operandLabel(instr.Dst))
	case asm.InstrUnary:
		return fmt.Sprintf("%s %s", asmUnaryLabel[instr.UnaryOp], operandLabel(instr.Dst))
	case asm.InstrBinary:
		return fmt.Sprintf("%s %s -> %s", asmBinaryLabel[instr.BinaryOp], operandLabel(instr.Src), operandLabel(instr.Dst))
	case asm.InstrIdiv:
		return fmt.Sprintf("Idiv %s", operandLabel(instr.Operand))
	case asm.InstrCdq:
		return "Cdq"
	case asm.InstrAllocateStack:
		return fmt.Sprintf("AllocateStack %d", instr.Size)
	case asm.InstrRet:
		return "Ret"
	default:
		return "?"
	}
}

func instrLabel(instr tacky.Instruction) string {
	switch instr.Kind {
	case tacky.InstrReturn:
		return "Return"
	case tacky.InstrUnary:
		return fmt.Sprintf("Unary %s -> %s", instr.UnaryOp, instr.Dst)
	case tacky.InstrBinary:
		return fmt.Sprintf("Binary %s -> %s", instr.BinaryOp, instr.Dst)
	default:
		return "?"
	}
}
