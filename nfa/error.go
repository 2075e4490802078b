package nfa

import (
	"errors"
	"fmt"
)

// ErrTooComplex is returned when a pattern's compiled form would exceed an
// internal safety bound (currently just the repeat-count bound also
// enforced by the parser; kept here too since the compiler must not trust
// callers that bypass the parser).
var ErrTooComplex = errors.New("nfa: pattern too complex to compile")

// CompileError wraps a compilation failure. Unlike a parser SyntaxError, it
// reports an AST the compiler rejects: a repeat count above
// ast.DefaultRepeatMax, or a Kind that lower does not handle.
type CompileError struct {
	Err error
}

func (e *CompileError) Error() string { return fmt.Sprintf("nfa: compile error: %s", e.Err) }
func (e *CompileError) Unwrap() error { return e.Err }

// BuildError reports a builder invariant violation: an edge left unpatched
// after reify. It indicates a bug in the lowering code, not a malformed
// pattern, so callers outside this package never see one returned —
// builder.reify panics with its message. An edge patched twice is caught
// separately by builder.connect, which panics with its own message.
type BuildError struct {
	Message string
	State   StateID
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("nfa: builder invariant violated at state %d: %s", e.State, e.Message)
}
