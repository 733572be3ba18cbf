package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skx/cc/ast"
	"github.com/skx/cc/lexer"
	"github.com/skx/cc/stream"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(stream.New(lexer.New(src)))
	prog, err := p.Parse()
	require.NoError(t, err)
	return prog
}

func TestSimpleReturn(t *testing.T) {
	prog := parse(t, "int main() { return 2; }")

	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	require.Equal(t, "main", fn.Name)
	require.Equal(t, ast.Integer, fn.ReturnType)
	require.Empty(t, fn.Args)
	require.Len(t, fn.Body.Statements, 1)

	expr := fn.Body.Statements[0].Expr
	require.Equal(t, ast.ExprInteger, expr.Kind)
	require.Equal(t, int64(2), expr.Value)
}

func TestNestedUnary(t *testing.T) {
	prog := parse(t, "int main() { return -(~2); }")

	expr := prog.Functions[0].Body.Statements[0].Expr
	require.Equal(t, ast.ExprUnary, expr.Kind)
	require.Equal(t, ast.OpNegate, expr.UnaryOp)

	inner := expr.Operand
	require.Equal(t, ast.ExprUnary, inner.Kind)
	require.Equal(t, ast.OpComplement, inner.UnaryOp)
	require.Equal(t, int64(2), inner.Operand.Value)
}

// TestPrecedenceClimbing checks that `1 + 2 * 3` parses as
// `1 + (2 * 3)`, not `(1 + 2) * 3` - multiplication binds tighter.
func TestPrecedenceClimbing(t *testing.T) {
	prog := parse(t, "int main() { return 1 + 2 * 3; }")

	top := prog.Functions[0].Body.Statements[0].Expr
	require.Equal(t, ast.ExprBinary, top.Kind)
	require.Equal(t, ast.OpAdd, top.BinOp)
	require.Equal(t, int64(1), top.Left.Value)

	right := top.Right
	require.Equal(t, ast.ExprBinary, right.Kind)
	require.Equal(t, ast.OpMul, right.BinOp)
	require.Equal(t, int64(2), right.Left.Value)
	require.Equal(t, int64(3), right.Right.Value)
}

// TestLeftAssociativity checks that `8 - 4 - 2` parses left-to-right:
// `(8 - 4) - 2`, not `8 - (4 - 2)`.
func TestLeftAssociativity(t *testing.T) {
	prog := parse(t, "int main() { return 8 - 4 - 2; }")

	top := prog.Functions[0].Body.Statements[0].Expr
	require.Equal(t, ast.OpSub, top.BinOp)
	require.Equal(t, int64(2), top.Right.Value)

	left := top.Left
	require.Equal(t, ast.OpSub, left.BinOp)
	require.Equal(t, int64(8), left.Left.Value)
	require.Equal(t, int64(4), left.Right.Value)
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	prog := parse(t, "int main() { return (1 + 2) * 3; }")

	top := prog.Functions[0].Body.Statements[0].Expr
	require.Equal(t, ast.OpMul, top.BinOp)
	require.Equal(t, ast.OpAdd, top.Left.BinOp)
	require.Equal(t, int64(3), top.Right.Value)
}

// TestLogicalAndNotParse exercises the grammar's acceptance of !, &&
// and || - these parse into ordinary AST shapes, even though later
// stages of the pipeline don't all support them.
func TestLogicalAndNotParse(t *testing.T) {
	prog := parse(t, "int main() { return !1 || 2 && 3; }")

	top := prog.Functions[0].Body.Statements[0].Expr
	require.Equal(t, ast.OpLogOr, top.BinOp)
	require.Equal(t, ast.ExprUnary, top.Left.Kind)
	require.Equal(t, ast.OpNot, top.Left.UnaryOp)

	right := top.Right
	require.Equal(t, ast.OpLogAnd, right.BinOp)
}

func TestMultipleFunctions(t *testing.T) {
	prog := parse(t, `
		int helper() { return 1; }
		int main() { return 2; }
	`)

	require.Len(t, prog.Functions, 2)
	require.Equal(t, "helper", prog.Functions[0].Name)
	require.Equal(t, "main", prog.Functions[1].Name)
}

func TestFunctionArguments(t *testing.T) {
	prog := parse(t, "int add(int a, int b) { return 0; }")

	fn := prog.Functions[0]
	require.Len(t, fn.Args, 2)
	require.Equal(t, "a", fn.Args[0].Name)
	require.Equal(t, ast.Integer, fn.Args[0].Type)
	require.Equal(t, "b", fn.Args[1].Name)
}

func TestVoidFunction(t *testing.T) {
	prog := parse(t, "void noop() { return 0; }")
	require.Equal(t, ast.Void, prog.Functions[0].ReturnType)
}

func TestDuplicateFunctionIsError(t *testing.T) {
	p := New(stream.New(lexer.New(`
		int main() { return 1; }
		int main() { return 2; }
	`)))
	_, err := p.Parse()
	require.Error(t, err)

	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
}

func TestMissingSemicolonIsSyntaxError(t *testing.T) {
	p := New(stream.New(lexer.New("int main() { return 1 }")))
	_, err := p.Parse()
	require.Error(t, err)
}

func TestMissingReturnTypeStopsCleanly(t *testing.T) {
	// A leading token that cannot start a function ends the
	// top-level loop without error - an empty program is valid
	// input as far as the parser is concerned.
	p := New(stream.New(lexer.New("main() { return 1; }")))
	prog, err := p.Parse()
	require.NoError(t, err)
	require.Empty(t, prog.Functions)
}
