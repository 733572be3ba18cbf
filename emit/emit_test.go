package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skx/cc/asm"
	"github.com/skx/cc/lexer"
	"github.com/skx/cc/parser"
	"github.com/skx/cc/stream"
	"github.com/skx/cc/tacky"
)

func pipeline(t *testing.T, src string) *asm.Program {
	t.Helper()
	p := parser.New(stream.New(lexer.New(src)))
	prog, err := p.Parse()
	require.NoError(t, err)
	tir, err := tacky.Translate(prog)
	require.NoError(t, err)
	air, err := asm.Select(tir)
	require.NoError(t, err)
	for _, fn := range air.Functions {
		size := asm.ReplacePseudos(fn)
		asm.Legalize(fn, size)
	}
	return air
}

// TestReturnConstantFormatsLikeHandwrittenAsm is S1: the simplest
// possible program's text output, checked literally.
func TestReturnConstantFormatsLikeHandwrittenAsm(t *testing.T) {
	air := pipeline(t, "int main() { return 2; }")
	out, err := Emit(air)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(out, "\t.globl main\nmain:\n"))
	require.Contains(t, out, "\tmovl\t$2, %eax\n")
	require.Contains(t, out, "\tmovq\t%rbp, %rsp\n\tpopq\t%rbp\n\tret\n")
}

func TestOutputEndsWithNoteGNUStackSection(t *testing.T) {
	air := pipeline(t, "int main() { return 0; }")
	out, err := Emit(air)
	require.NoError(t, err)

	require.True(t, strings.HasSuffix(out, "\t.section .note.GNU-stack,\"\",@progbits\n"))
}

func TestAllocateStackPrecedesFunctionBody(t *testing.T) {
	air := pipeline(t, "int main() { return -(~2); }")
	out, err := Emit(air)
	require.NoError(t, err)

	require.Contains(t, out, "\tsubq\t$")
	require.Contains(t, out, "\tnegl\t")
	require.Contains(t, out, "\tnotl\t")
	require.Less(t, strings.Index(out, "\tsubq\t$"), strings.Index(out, "\tnotl\t"))
}

// TestRelationalNeverReachesEmit checks that a relational comparison
// fails during select, before emit ever sees a function - this
// instruction set has no comparison instructions at all.
func TestRelationalNeverReachesEmit(t *testing.T) {
	p := parser.New(stream.New(lexer.New("int main() { return 1 < 2; }")))
	prog, err := p.Parse()
	require.NoError(t, err)
	tir, err := tacky.Translate(prog)
	require.NoError(t, err)

	_, err = asm.Select(tir)
	require.Error(t, err)
}

func TestDivisionEmitsCdqAndIdivl(t *testing.T) {
	air := pipeline(t, "int main() { return 7 / 2; }")
	out, err := Emit(air)
	require.NoError(t, err)

	require.Contains(t, out, "\tcdq\n")
	require.Contains(t, out, "\tidivl\t")
}
