package nfa

import (
	"fmt"

	"github.com/runematch/runematch/ast"
)

// Compile lowers an AST into a Program. The lowering walks the tree once,
// threading a "dangling edge" set (spec's `prev`) forward: each atom
// connects the edges handed to it by its predecessor and hands back its
// own unconnected out-edges for whatever comes next. The final leftover
// set is patched to the accept sentinel by reify.
//
// A dedicated root Epsilon state (Program.Start) holds the single entry
// edge; it exists so every lowering rule has a real state to patch into
// even for the very first atom in the pattern.
func Compile(n ast.Node) (*Program, error) {
	b := &builder{}
	root := b.addEpsilon(1)
	tails, err := lower(b, n, []edgeRef{b.edge(root, 0)})
	if err != nil {
		return nil, err
	}
	return &Program{States: b.reify(tails), Start: root}, nil
}

// lower compiles n, connecting prev's dangling edges into n's first real
// state and returning n's own dangling out-edges.
func lower(b *builder, n ast.Node, prev []edgeRef) ([]edgeRef, error) {
	switch n.Kind {
	case ast.KindEmpty:
		return prev, nil

	case ast.KindNone:
		// No string matches. prev still needs a real target or reify will
		// find it unpatched, so route it into a dead end with no out-edges:
		// the thread simply disappears from the VM's epsilon closure
		// instead of reaching accept.
		dead := b.addState(Epsilon, 0, 0, 0)
		b.connect(prev, dead)
		return nil, nil

	case ast.KindLiteral:
		id, out := b.addRange(n.Lo, n.Hi)
		b.connect(prev, id)
		return []edgeRef{out}, nil

	case ast.KindConcat:
		last := prev
		var err error
		for _, c := range n.Children {
			last, err = lower(b, c, last)
			if err != nil {
				return nil, err
			}
		}
		return last, nil

	case ast.KindAlt:
		return lowerAlt(b, n, prev)

	case ast.KindRepeat:
		return lowerRepeat(b, n, prev)

	case ast.KindCapture:
		// A capture marks a sub-match the VM never extracts; it lowers
		// transparently and matches the same language as its inner node.
		return lower(b, *n.Inner, prev)

	case ast.KindAssertion:
		// Parsed for compatibility but not executed (see spec §4.C, §9):
		// the assertion's inner node contributes no states at all, so the
		// body never consumes input. This is the same handling as Empty.
		return prev, nil

	default:
		return nil, &CompileError{Err: fmt.Errorf("unhandled ast.Kind %d", n.Kind)}
	}
}

func lowerAlt(b *builder, n ast.Node, prev []edgeRef) ([]edgeRef, error) {
	if len(n.Children) == 0 {
		return prev, nil
	}
	f := b.addEpsilon(len(n.Children))
	b.connect(prev, f)

	var tails []edgeRef
	for i, c := range n.Children {
		out, err := lower(b, c, []edgeRef{b.edge(f, i)})
		if err != nil {
			return nil, err
		}
		tails = append(tails, out...)
	}
	return tails, nil
}

// lowerRepeat implements spec §4.E's repetition rules. Priority is encoded
// directly in a split state's out-edge order (index 0 tried first); greedy
// puts "keep going" first, non-greedy puts "exit" first.
func lowerRepeat(b *builder, n ast.Node, prev []edgeRef) ([]edgeRef, error) {
	if n.Min > ast.DefaultRepeatMax || (n.HasMax && n.Max > ast.DefaultRepeatMax) {
		return nil, &CompileError{Err: fmt.Errorf("%w: repeat count exceeds %d", ErrTooComplex, ast.DefaultRepeatMax)}
	}

	if !n.HasMax {
		if n.Min == 0 {
			return lowerUnboundedOptional(b, *n.Inner, prev, n.Greedy)
		}
		return lowerUnboundedAtLeast(b, *n.Inner, prev, n.Min, n.Greedy)
	}
	return lowerBounded(b, *n.Inner, prev, n.Min, n.Max, n.Greedy)
}

// lowerBounded unrolls min mandatory copies of e followed by (max - min)
// optional copies, each guarded by its own split so the thread can exit
// after any of them.
func lowerBounded(b *builder, e ast.Node, prev []edgeRef, min, max int, greedy ast.Greediness) ([]edgeRef, error) {
	last := prev
	var err error
	for i := 0; i < min; i++ {
		last, err = lower(b, e, last)
		if err != nil {
			return nil, err
		}
	}

	var tails []edgeRef
	for i := min; i < max; i++ {
		f := b.addEpsilon(2)
		b.connect(last, f)
		cont, exit := splitEdges(b, f, greedy)
		tails = append(tails, exit)
		last, err = lower(b, e, []edgeRef{cont})
		if err != nil {
			return nil, err
		}
	}
	tails = append(tails, last...)
	return tails, nil
}

// lowerUnboundedAtLeast compiles e{min,} for min >= 1: min-1 unrolled
// copies, then a loop over one more copy with a back-edge to its entry.
func lowerUnboundedAtLeast(b *builder, e ast.Node, prev []edgeRef, min int, greedy ast.Greediness) ([]edgeRef, error) {
	last := prev
	var err error
	for i := 0; i < min-1; i++ {
		last, err = lower(b, e, last)
		if err != nil {
			return nil, err
		}
	}

	anchor := b.addEpsilon(1)
	b.connect(last, anchor)
	bodyTail, err := lower(b, e, []edgeRef{b.edge(anchor, 0)})
	if err != nil {
		return nil, err
	}

	f := b.addEpsilon(2)
	b.connect(bodyTail, f)
	back, exit := splitEdges(b, f, greedy)
	b.connect([]edgeRef{back}, anchor)
	return []edgeRef{exit}, nil
}

// lowerUnboundedOptional compiles e* as an optional wrapping e+, per spec
// §4.E.
func lowerUnboundedOptional(b *builder, e ast.Node, prev []edgeRef, greedy ast.Greediness) ([]edgeRef, error) {
	f := b.addEpsilon(2)
	b.connect(prev, f)
	cont, exit := splitEdges(b, f, greedy)

	plusTail, err := lowerUnboundedAtLeast(b, e, []edgeRef{cont}, 1, greedy)
	if err != nil {
		return nil, err
	}
	return append([]edgeRef{exit}, plusTail...), nil
}

// splitEdges returns f's two reserved edges as (continue, exit), ordered
// so that the higher-priority (index 0) choice matches greedy's
// preference: greedy prefers to continue, non-greedy prefers to exit.
func splitEdges(b *builder, f StateID, greedy ast.Greediness) (cont, exit edgeRef) {
	e0, e1 := b.edge(f, 0), b.edge(f, 1)
	if greedy {
		return e0, e1
	}
	return e1, e0
}
