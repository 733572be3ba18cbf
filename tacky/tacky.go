// Package tacky defines the three-address intermediate representation
// (TIR) the compiler linearizes the source AST into, and the D pass
// that builds it.
//
// As with the ast package, each IR node family is a struct tagged
// with a Kind, not an interface hierarchy: a consumer dispatches on
// Kind with a type switch rather than a dynamic downcast.
package tacky

// ValueKind discriminates the Value union.
type ValueKind byte

const (
	ValConstant ValueKind = iota
	ValVar
)

// Value is an operand of an Instruction: a literal constant, or a
// reference to a named temporary or source variable.
type Value struct {
	Kind ValueKind
	Int  int64
	Name string
}

// Constant builds a literal Value.
func Constant(n int64) Value {
	return Value{Kind: ValConstant, Int: n}
}

// Var builds a named-temporary Value.
func Var(name string) Value {
	return Value{Kind: ValVar, Name: name}
}

// UnaryOp is one of the unary TIR operators.
type UnaryOp string

const (
	Complement UnaryOp = "~"
	Negate     UnaryOp = "-"
	Not        UnaryOp = "!"
)

// BinaryOp is one of the binary TIR operators. Notably absent:
// the relational operators (<, <=, >, >=, ==, !=). The grammar and
// the precedence table accept them, so the parser and this package's
// translator both see them, but no TIR variant exists to hold one -
// a relational ast.BinaryOp threaded through Translate produces a
// tacky.BinaryOp value unequal to any constant below, which select's
// exhaustive switch then rejects as unreachable. See DESIGN.md.
type BinaryOp string

const (
	Add    BinaryOp = "+"
	Sub    BinaryOp = "-"
	Mul    BinaryOp = "*"
	Div    BinaryOp = "/"
	Mod    BinaryOp = "%"
	BitAnd BinaryOp = "&"
	BitOr  BinaryOp = "|"
	BitXor BinaryOp = "^"
	Shl    BinaryOp = "<<"
	Shr    BinaryOp = ">>"
	LogAnd BinaryOp = "&&"
	LogOr  BinaryOp = "||"
)

// InstrKind discriminates the Instruction union.
type InstrKind byte

const (
	InstrReturn InstrKind = iota
	InstrUnary
	InstrBinary
)

// Instruction is a sum type: Return(val) | Unary{op,src,dst} |
// Binary{op,src1,src2,dst}, discriminated by Kind.
type Instruction struct {
	Kind InstrKind

	// InstrReturn
	Val Value

	// InstrUnary
	UnaryOp UnaryOp
	Src     Value

	// InstrBinary
	BinaryOp BinaryOp
	Src1     Value
	Src2     Value

	// InstrUnary / InstrBinary
	Dst string
}

// ReturnInstr builds an InstrReturn node.
func ReturnInstr(v Value) Instruction {
	return Instruction{Kind: InstrReturn, Val: v}
}

// UnaryInstr builds an InstrUnary node.
func UnaryInstr(op UnaryOp, src Value, dst string) Instruction {
	return Instruction{Kind: InstrUnary, UnaryOp: op, Src: src, Dst: dst}
}

// BinaryInstr builds an InstrBinary node.
func BinaryInstr(op BinaryOp, src1, src2 Value, dst string) Instruction {
	return Instruction{Kind: InstrBinary, BinaryOp: op, Src1: src1, Src2: src2, Dst: dst}
}

// Function is a named function body: a flat instruction list, already
// linearized out of its source statement tree.
type Function struct {
	Name         string
	Instructions []Instruction
}

// Program is the root of the TIR: an ordered sequence of functions.
type Program struct {
	Functions []*Function
}
