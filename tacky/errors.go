package tacky

import (
	"fmt"

	"github.com/skx/cc/ast"
	"github.com/skx/cc/token"
)

// UnsupportedTypeError reports that a function declares a return type
// the translator cannot lower: the language's only supported return
// type is int.
type UnsupportedTypeError struct {
	Function string
	Type     ast.TypeTag
	Pos      token.Pos
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%d:%d: function %q: unsupported return type %q", e.Pos.Line, e.Pos.Column, e.Function, e.Type)
}
