package parser

import (
	"fmt"

	"github.com/skx/cc/token"
)

// SyntaxError reports that the token stream does not match the
// grammar: a missing required token, an unexpected leading token where
// an operand was required, or similar.
type SyntaxError struct {
	Msg string
	Pos token.Pos
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: syntax error: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

func syntaxErrorf(pos token.Pos, format string, args ...interface{}) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Pos: pos}
}
