// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the compiler. Node is a tagged sum matched exhaustively by
// both the compiler and the parser's own smart constructors.
package ast

// DefaultRepeatMax bounds both a parsed {m,n} count and the number of
// copies the compiler unrolls for a bounded Repeat. Spec.md names 100_000
// as the chosen value; both the parser and the compiler enforce it
// independently, since the compiler must not trust a caller that
// constructs a Node by hand instead of going through the parser.
const DefaultRepeatMax = 100_000

// Greediness controls repetition priority: a Greedy repeat prefers to keep
// consuming, a NonGreedy repeat prefers to exit early.
type Greediness bool

const (
	NonGreedy Greediness = false
	Greedy    Greediness = true
)

// AssertKind distinguishes positive from negative lookaround.
type AssertKind int

const (
	AssertPositive AssertKind = iota
	AssertNegative
)

// Node is a regex AST node. Exactly one of the embedded variant types is
// meaningful for a given Kind; the compiler switches on Kind.
type Node struct {
	Kind Kind

	// Literal
	Lo, Hi rune

	// Concat, Alt
	Children []Node

	// Repeat
	Inner   *Node
	Min     int
	Max     int  // only meaningful if HasMax
	HasMax  bool // false denotes unbounded (spec's max = None)
	Greedy  Greediness

	// Capture, Assertion
	Assert AssertKind
}

// Kind tags the variant a Node holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindLiteral
	KindConcat
	KindAlt
	KindRepeat
	KindCapture
	KindAssertion
	// KindNone matches no string at all. It only arises from negating a
	// character class that already spans the full code-point range (spec
	// §4.A); it is distinct from KindEmpty, which matches the empty
	// string.
	KindNone
)

// Empty returns the node that matches only the empty string.
func Empty() Node { return Node{Kind: KindEmpty} }

// None returns the node that matches no string at all.
func None() Node { return Node{Kind: KindNone} }

// Literal returns a node matching any code point in [lo, hi]. A single
// character is represented with lo == hi.
func Literal(lo, hi rune) Node { return Node{Kind: KindLiteral, Lo: lo, Hi: hi} }

// Concat builds a sequential composition, eliding Empty children and
// flattening the trivial cases (0 children → Empty, 1 child → that child)
// the way the parser's smart constructors are specified to.
func Concat(children ...Node) Node {
	var kept []Node
	for _, c := range children {
		if c.Kind == KindEmpty {
			continue
		}
		kept = append(kept, c)
	}
	switch len(kept) {
	case 0:
		return Empty()
	case 1:
		return kept[0]
	default:
		return Node{Kind: KindConcat, Children: kept}
	}
}

// Alt builds an alternation; priority is list order, leftmost-highest.
// A single alternative collapses to that alternative.
func Alt(children ...Node) Node {
	if len(children) == 1 {
		return children[0]
	}
	return Node{Kind: KindAlt, Children: children}
}

// Repeat builds a bounded or unbounded repetition of inner. hasMax=false
// denotes an unbounded upper bound (spec's max = None).
func Repeat(inner Node, min, max int, hasMax bool, greedy Greediness) Node {
	innerCopy := inner
	return Node{
		Kind:   KindRepeat,
		Inner:  &innerCopy,
		Min:    min,
		Max:    max,
		HasMax: hasMax,
		Greedy: greedy,
	}
}

// Capture wraps inner in a structural capturing-group marker. The core
// compiler lowers it transparently (matches the same language as inner);
// capture-slot extraction is outside this engine's scope.
func Capture(inner Node) Node {
	innerCopy := inner
	return Node{Kind: KindCapture, Inner: &innerCopy}
}

// Assertion wraps inner in a lookaround marker. It is parsed for syntax
// compatibility but the compiler lowers it transparently to Empty, since
// the VM does not execute lookaround (see spec §4.C, §9).
func Assertion(kind AssertKind, inner Node) Node {
	innerCopy := inner
	return Node{Kind: KindAssertion, Inner: &innerCopy, Assert: kind}
}
