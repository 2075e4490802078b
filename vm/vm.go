// Package vm simulates a compiled nfa.Program over a stream of code points,
// the same priority-ordered thread-set ("Pike VM") technique the teacher's
// nfa.PikeVM uses for bytes, adapted here to runes and stripped of capture
// tracking (out of this engine's scope).
package vm

import (
	"github.com/runematch/runematch/internal/sparse"
	"github.com/runematch/runematch/nfa"
)

// threadList holds the current generation's live thread program counters,
// deduplicated by a sparse set the way the teacher's PikeVM dedupes byte
// threads, plus whether this generation has already reached accept.
type threadList struct {
	seen    *sparse.SparseSet
	pcs     []nfa.StateID
	matched bool
}

func newThreadList(capacity int) *threadList {
	return &threadList{
		seen: sparse.NewSparseSet(uint32(capacity)),
		pcs:  make([]nfa.StateID, 0, capacity),
	}
}

func (t *threadList) reset() {
	t.seen.Clear()
	t.pcs = t.pcs[:0]
	t.matched = false
}

// Matcher drives one streaming run of a Program. It is not safe for
// concurrent use; callers needing concurrent matches against the same
// Program each create their own Matcher (Program itself is immutable and
// freely shared).
type Matcher struct {
	prog         *nfa.Program
	clist, nlist *threadList
}

// NewMatcher creates a Matcher positioned at prog's start state, with the
// start state's epsilon closure already computed (so a pattern that
// matches the empty string is already IsMatch() == true before Feed is
// ever called).
func NewMatcher(prog *nfa.Program) *Matcher {
	n := len(prog.States)
	m := &Matcher{prog: prog, clist: newThreadList(n), nlist: newThreadList(n)}
	m.Reset()
	return m
}

// Reset returns the Matcher to its freshly-compiled state, for reuse
// across repeated matches against the same Program without reallocating
// its thread lists.
func (m *Matcher) Reset() {
	m.clist.reset()
	m.addThread(m.clist, m.prog.Start)
}

// addThread computes the epsilon closure of pc into list: Epsilon states
// fan out recursively in out-edge order (priority order is preserved
// because each recursive call appends to list.pcs before its sibling
// edges are visited), Range states are recorded as live threads, and
// reaching the accept sentinel marks the generation matched without being
// added as a thread (accept is not a real state).
func (m *Matcher) addThread(list *threadList, pc nfa.StateID) {
	if m.prog.IsAccept(pc) {
		list.matched = true
		return
	}
	if list.seen.Contains(uint32(pc)) {
		return
	}
	list.seen.Insert(uint32(pc))

	s := m.prog.States[pc]
	if s.Label == nfa.Epsilon {
		for _, out := range s.Out {
			m.addThread(list, out)
		}
		return
	}
	list.pcs = append(list.pcs, pc)
}

// Feed advances the simulation by one code point: every live Range thread
// whose [Lo, Hi] contains r survives into the next generation (via its
// epsilon closure); every other thread dies. Feed is the per-character
// step named `feed` in spec §4.F.
func (m *Matcher) Feed(r rune) {
	m.nlist.reset()
	for _, pc := range m.clist.pcs {
		s := m.prog.States[pc]
		if r >= s.Lo && r <= s.Hi {
			m.addThread(m.nlist, s.Out[0])
		}
	}
	m.clist, m.nlist = m.nlist, m.clist
}

// IsMatch reports whether the current generation has reached accept.
func (m *Matcher) IsMatch() bool { return m.clist.matched }

// IsDead reports whether the current generation has no live threads and
// has not matched, meaning no further Feed call can ever produce a match.
// Callers may use this to short-circuit a streaming loop early.
func (m *Matcher) IsDead() bool { return !m.clist.matched && len(m.clist.pcs) == 0 }

// Match runs prog over input from the start and reports whether some
// prefix of input drives it into an accepting configuration — spec §6's
// "true iff some prefix of the input drives the automaton into an
// accepting configuration after consuming that prefix". It returns as
// soon as a match is found, without consuming the remainder of input.
func Match(prog *nfa.Program, input []rune) bool {
	m := NewMatcher(prog)
	if m.IsMatch() {
		return true
	}
	for _, r := range input {
		if m.IsDead() {
			return false
		}
		m.Feed(r)
		if m.IsMatch() {
			return true
		}
	}
	return false
}
