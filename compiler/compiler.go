// The compiler-package contains the core of our compiler.
//
// In brief we go through a multi-step process:
//
//  1.  Use the lexer, wrapped in a Stream, to tokenize the source.
//
//  2.  Parse the token-stream into a source AST.
//
//  3.  Translate the AST into three-address IR ("tacky").
//
//  4.  Select pseudo-machine assembly (AIR) from the IR.
//
//  5.  Replace pseudo-registers with real stack slots, and legalize
//      any instruction x86-64 can't actually encode.
//
//  6.  Emit GNU-assembler text for the result.
//
package compiler

import (
	"fmt"

	"github.com/skx/cc/asm"
	"github.com/skx/cc/ast"
	"github.com/skx/cc/dot"
	"github.com/skx/cc/emit"
	"github.com/skx/cc/lexer"
	"github.com/skx/cc/parser"
	"github.com/skx/cc/stream"
	"github.com/skx/cc/tacky"
)

// Compiler holds our object-state.
type Compiler struct {

	// debug holds a flag to decide whether DOT dumps are collected.
	// It has no effect on the generated assembly.
	debug bool

	// source holds the program text we're compiling.
	source string

	// dumps holds the DOT-format tree dumps collected along the way,
	// keyed by pipeline stage, when debug is enabled.
	dumps map[string]string
}

//
// Our public API consists of the four functions:
//  New
//  SetDebug
//  Compile
//  Dumps
//
// The rest of the code is an implementation detail.
//

// New creates a new compiler, given the program source in the constructor.
func New(input string) *Compiler {
	c := &Compiler{source: input, debug: false}
	return c
}

// SetDebug changes the debug-flag, which controls DOT dump collection.
func (c *Compiler) SetDebug(val bool) {
	c.debug = val
}

// Dumps returns the DOT-format tree dumps collected during the last
// Compile call, when SetDebug(true) was in effect. Empty otherwise.
func (c *Compiler) Dumps() map[string]string {
	return c.dumps
}

// Compile converts the input program into x86-64 GNU-assembler text.
func (c *Compiler) Compile() (string, error) {
	c.dumps = nil

	prog, err := c.parse()
	if err != nil {
		return "", err
	}

	tir, err := tacky.Translate(prog)
	if err != nil {
		return "", err
	}
	if c.debug {
		c.dump("tacky", dot.Tacky(tir))
	}

	air, err := asm.Select(tir)
	if err != nil {
		return "", err
	}

	for _, fn := range air.Functions {
		size := asm.ReplacePseudos(fn)
		asm.Legalize(fn, size)
	}
	if c.debug {
		c.dump("asm", dot.Asm(air))
	}

	return emit.Emit(air)
}

// parse lexes and parses our source into a source AST.
func (c *Compiler) parse() (*ast.Program, error) {
	lexed := lexer.New(c.source)
	s := stream.New(lexed)
	p := parser.New(s)

	prog, err := p.Parse()
	if err != nil {
		return nil, err
	}

	// The parser stops cleanly on a token that can't start a
	// function, so an input that never gets going parses to an
	// empty program. There is nothing to compile in that case.
	if len(prog.Functions) == 0 {
		return nil, fmt.Errorf("input contains no function definitions")
	}

	if c.debug {
		c.dump("ast", dot.AST(prog))
	}

	return prog, nil
}

func (c *Compiler) dump(stage, text string) {
	if c.dumps == nil {
		c.dumps = make(map[string]string)
	}
	c.dumps[stage] = text
}
