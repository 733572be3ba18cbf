package tacky

import (
	"fmt"

	"github.com/skx/cc/ast"
)

// translator holds the per-program state the D pass threads through
// its recursion: just the fresh-temporary counter, since temporaries
// are named uniquely across the whole program, not per function.
type translator struct {
	nextTemp int
}

// Translate linearizes a source AST into TIR. The only rejection this
// pass performs is on a function's declared return type: everything
// else the parser accepted, this pass accepts too.
func Translate(prog *ast.Program) (*Program, error) {
	tr := &translator{}

	out := &Program{}
	for _, fn := range prog.Functions {
		if fn.ReturnType != ast.Integer {
			return nil, &UnsupportedTypeError{Function: fn.Name, Type: fn.ReturnType, Pos: fn.Pos}
		}

		tfn := &Function{Name: fn.Name}
		for _, stmt := range fn.Body.Statements {
			tr.translateStatement(tfn, stmt)
		}
		out.Functions = append(out.Functions, tfn)
	}

	return out, nil
}

func (tr *translator) newTemp() string {
	name := fmt.Sprintf("_tacky_temp_%d", tr.nextTemp)
	tr.nextTemp++
	return name
}

func (tr *translator) translateStatement(fn *Function, stmt *ast.Statement) {
	v := tr.translateExpr(fn, stmt.Expr)
	fn.Instructions = append(fn.Instructions, ReturnInstr(v))
}

// translateExpr emits the instructions that compute expr's value and
// returns the Value holding the result: either an immediate Constant
// for a literal, or the Var naming the temporary the last emitted
// instruction wrote.
func (tr *translator) translateExpr(fn *Function, expr *ast.Expression) Value {
	switch expr.Kind {
	case ast.ExprInteger:
		return Constant(expr.Value)

	case ast.ExprUnary:
		src := tr.translateExpr(fn, expr.Operand)
		dst := tr.newTemp()
		fn.Instructions = append(fn.Instructions, UnaryInstr(unaryOp(expr.UnaryOp), src, dst))
		return Var(dst)

	case ast.ExprBinary:
		src1 := tr.translateExpr(fn, expr.Left)
		src2 := tr.translateExpr(fn, expr.Right)
		dst := tr.newTemp()
		fn.Instructions = append(fn.Instructions, BinaryInstr(binaryOp(expr.BinOp), src1, src2, dst))
		return Var(dst)

	default:
		panic(fmt.Sprintf("tacky: unreachable expression kind %v", expr.Kind))
	}
}

// unaryOp and binaryOp translate ast operator tags to tacky operator
// tags. The two enums share their underlying literal spellings
// ("~", "-", "!", "+", ...), so the conversion is a plain cast rather
// than a lookup table.
func unaryOp(op ast.UnaryOp) UnaryOp   { return UnaryOp(op) }
func binaryOp(op ast.BinaryOp) BinaryOp { return BinaryOp(op) }
