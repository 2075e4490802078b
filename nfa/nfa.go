// Package nfa compiles a regex AST into a graph of states with labeled,
// priority-ordered out-edges, the nondeterministic finite automaton the VM
// package simulates.
//
// Two labels suffice: Epsilon (a non-consuming fan-out, used for
// alternation and quantifier splits) and Range (consume one code point
// within [Lo, Hi]). There is no dedicated Match/Accept state: an edge
// target equal to the total state count is the accept sentinel, written in
// by the final "reify" step (see builder.reify).
package nfa

import (
	"fmt"

	"github.com/runematch/runematch/internal/conv"
)

// StateID indexes into a Program's state vector.
type StateID uint32

// InvalidState marks an edge slot reserved by the builder but not yet
// patched. It never appears in a finished Program.
const InvalidState = StateID(0xFFFFFFFF)

// Label tags which of a State's two possible shapes is meaningful.
type Label uint8

const (
	// Epsilon is a non-consuming fan-out to len(Out) successor states, in
	// priority order (index 0 = highest priority).
	Epsilon Label = iota
	// Range consumes exactly one code point c with Lo <= c <= Hi and
	// transitions to Out[0].
	Range
)

// State is one node for the compiled graph.
type State struct {
	Label  Label
	Lo, Hi rune     // meaningful iff Label == Range
	Out    []StateID
}

// Program is an immutable, compiled NFA: a state vector plus the entry
// point. It never mutates after Compile returns, and is safe to share
// across any number of concurrent VM runs.
type Program struct {
	States []State
	Start  StateID
}

// Accept is the sentinel edge target denoting a successful match: it
// equals the total number of states, which is never a valid State index.
func (p *Program) Accept() StateID {
	return StateID(conv.IntToUint32(len(p.States)))
}

// IsAccept reports whether target is the accept sentinel for this Program.
func (p *Program) IsAccept(target StateID) bool {
	return target == p.Accept()
}

func (p *Program) String() string {
	return fmt.Sprintf("Program{states: %d, start: %d}", len(p.States), p.Start)
}
