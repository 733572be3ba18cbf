// Package ice holds the "internal compiler error" type: the error
// raised when a later pass is handed a shape it was never meant to
// see, because an earlier pass was supposed to have ruled it out.
package ice

import "fmt"

// Error reports that the compiler reached a state that is unreachable
// given the passes that ran before it, or that the select pass met an
// operator the parser and the D pass accept but that has no AIR
// lowering (!, &&, || and the relational operators).
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("internal compiler error: %s", e.Msg)
}

// Newf builds an *Error from a format string.
func Newf(format string, args ...interface{}) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}
