// Package main is the command-line driver: it wires the configured
// compiler pipeline to a single positional-argument contract and,
// optionally, to gcc for assembling and running the result.
package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mna/mainer"

	"github.com/skx/cc/compiler"
	"github.com/skx/cc/config"
)

const binName = "cc"

var usage = fmt.Sprintf(`usage: %s [<option>...] <source-file> <output-asm-file>

Compile a small C-like program to x86-64 GNU-assembler text.

Valid flag options are:
       -d --debug      Write a DOT dump of each pipeline stage beside the
                        output file (or into $CC_DOT_DIR).
       -c --compile    Assemble the generated output into a binary via gcc.
       -r --run        Run the binary, implies --compile.
       -o --output     Path of the assembled binary (default: a.out).
`, binName)

// Cmd is the command-line driver's own state, populated by mainer
// from flags, with Debug first defaulted from the environment by
// config.Load.
type Cmd struct {
	Debug   bool   `flag:"d,debug"`
	Compile bool   `flag:"c,compile"`
	Run     bool   `flag:"r,run"`
	Output  string `flag:"o,output"`

	args   []string
	dotDir string
}

// SetArgs stores the positional arguments mainer parsed out.
func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

// Validate enforces the two-positional-argument contract: a source
// file to read, and a path to write the generated assembly to.
func (c *Cmd) Validate() error {
	if len(c.args) != 2 {
		return fmt.Errorf("expected exactly 2 arguments (source-file, output-asm-file), got %d", len(c.args))
	}
	if c.Output == "" {
		c.Output = "a.out"
	}
	if c.Run {
		c.Compile = true
	}
	return nil
}

// Main is the sole entry point mainer dispatches to.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: reading configuration: %s\n", binName, err)
		return mainer.Failure
	}
	c.Debug = cfg.Debug
	c.dotDir = cfg.DotDir

	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	// Argument misuse exits 1 like every other failure, not with a
	// distinct code.
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: invalid arguments: %s\n%s", binName, err, usage)
		return mainer.Failure
	}

	source, err := os.ReadFile(c.args[0])
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: reading %s: %s\n", binName, c.args[0], err)
		return mainer.Failure
	}

	comp := compiler.New(string(source))
	comp.SetDebug(c.Debug)

	out, err := comp.Compile()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: compiling %s: %s\n", binName, c.args[0], err)
		return mainer.Failure
	}

	if err := os.WriteFile(c.args[1], []byte(out), 0o644); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: writing %s: %s\n", binName, c.args[1], err)
		return mainer.Failure
	}

	if c.Debug {
		dir := c.dotDir
		if dir == "" {
			dir = filepath.Dir(c.args[1])
		}
		base := filepath.Base(c.args[1])
		for stage, text := range comp.Dumps() {
			path := filepath.Join(dir, base+"."+stage+".dot")
			if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
				fmt.Fprintf(stdio.Stderr, "%s: writing %s: %s\n", binName, path, err)
			}
		}
	}

	if !c.Compile {
		return mainer.Success
	}

	if err := c.assemble(stdio); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", binName, err)
		return mainer.Failure
	}

	if !c.Run {
		return mainer.Success
	}

	if err := c.execute(stdio); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", binName, err)
		return mainer.Failure
	}

	return mainer.Success
}

// assemble shells out to gcc to turn the already-written assembly
// file at c.args[1] into a binary at c.Output.
func (c *Cmd) assemble(stdio mainer.Stdio) error {
	asmText, err := os.ReadFile(c.args[1])
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.args[1], err)
	}

	gcc := exec.Command("gcc", "-static", "-o", c.Output, "-x", "assembler", "-")
	gcc.Stdout = stdio.Stdout
	gcc.Stderr = stdio.Stderr
	gcc.Stdin = bytes.NewReader(asmText)

	if err := gcc.Run(); err != nil {
		return fmt.Errorf("launching gcc: %w", err)
	}
	return nil
}

// execute runs the binary assemble produced.
func (c *Cmd) execute(stdio mainer.Stdio) error {
	exe := exec.Command(c.Output)
	exe.Stdout = stdio.Stdout
	exe.Stderr = stdio.Stderr

	if err := exe.Run(); err != nil {
		return fmt.Errorf("launching %s: %w", c.Output, err)
	}
	return nil
}
