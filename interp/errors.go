package interp

import (
	"fmt"

	"github.com/fen-lang/fen/compiler"
)

// RuntimeError reports an evaluation failure: an undefined name, a kind
// mismatch, an arity mismatch, an illegal break/return, or an unsupported
// member/index/iterable combination. It aborts evaluation of the current
// top-level unit.
type RuntimeError struct {
	Pos     compiler.Position
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func runtimeErrorf(pos compiler.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// notFoundError reports resolution of an undefined variable.
func notFoundError(pos compiler.Position, name string) *RuntimeError {
	return runtimeErrorf(pos, "undefined variable %q", name)
}
