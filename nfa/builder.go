package nfa

import "github.com/runematch/runematch/internal/conv"

// edgeRef names one reserved, not-yet-patched out-edge slot: the idx-th
// entry of state's Out slice. Lowering functions thread these around as
// "dangling edges" — the builder's reserve-then-patch protocol, adapted
// from the teacher's byte-oriented builder to this package's simpler
// two-label state shape.
type edgeRef struct {
	state StateID
	idx   int
}

// builder accumulates states for a single Program. It is not safe for
// concurrent use and is discarded after Compile returns.
type builder struct {
	states []State
}

// addState appends a new state with n reserved (unpatched) out-edges and
// returns its id.
func (b *builder) addState(label Label, lo, hi rune, n int) StateID {
	out := make([]StateID, n)
	for i := range out {
		out[i] = InvalidState
	}
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{Label: label, Lo: lo, Hi: hi, Out: out})
	return id
}

// addEpsilon creates an Epsilon state with n reserved out-edges, used for
// both alternation fan-out (n = number of branches) and quantifier splits
// (n = 2).
func (b *builder) addEpsilon(n int) StateID {
	return b.addState(Epsilon, 0, 0, n)
}

// addRange creates a Range state with a single reserved out-edge and
// returns both its id and a ref to that edge.
func (b *builder) addRange(lo, hi rune) (StateID, edgeRef) {
	id := b.addState(Range, lo, hi, 1)
	return id, edgeRef{state: id, idx: 0}
}

// edge names the idx-th out-edge of state as an edgeRef, for wiring a
// quantifier split's individual branches without creating a new state.
func (b *builder) edge(state StateID, idx int) edgeRef {
	return edgeRef{state: state, idx: idx}
}

// connect patches every edge in refs to target. Each ref must currently be
// unpatched; patching one twice is a builder bug (a lowering function
// reused a dangling edge it had already consumed) and panics rather than
// silently overwriting, since a silent overwrite would drop an edge and
// desync the graph without any symptom at compile time.
func (b *builder) connect(refs []edgeRef, target StateID) {
	for _, r := range refs {
		if b.states[r.state].Out[r.idx] != InvalidState {
			panic("nfa: dangling edge patched twice")
		}
		b.states[r.state].Out[r.idx] = target
	}
}

// reify patches every edge remaining in tails to the accept sentinel and
// returns the finished state vector. It panics if any edge anywhere in the
// graph was left unpatched, since that can only mean a lowering function
// forgot to wire a reserved edge — an invariant violation, not a
// user-triggerable error (see spec §7's programmer-error category).
func (b *builder) reify(tails []edgeRef) []State {
	accept := StateID(conv.IntToUint32(len(b.states)))
	b.connect(tails, accept)

	for i, s := range b.states {
		for _, o := range s.Out {
			if o == InvalidState {
				panic((&BuildError{
					State:   StateID(i),
					Message: "unpatched edge after reify",
				}).Error())
			}
		}
	}
	return b.states
}
