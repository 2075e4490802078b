package ast_test

import (
	"testing"

	"github.com/runematch/runematch/ast"
)

func TestConcatElidesEmptyChildren(t *testing.T) {
	n := ast.Concat(ast.Empty(), ast.Literal('a', 'a'), ast.Empty())
	if n.Kind != ast.KindLiteral {
		t.Fatalf("got %+v, want the lone Literal child (Empty elided)", n)
	}
}

func TestConcatOfOnlyEmptyIsEmpty(t *testing.T) {
	n := ast.Concat(ast.Empty(), ast.Empty())
	if n.Kind != ast.KindEmpty {
		t.Fatalf("got %+v, want KindEmpty", n)
	}
}

func TestConcatOfZeroChildrenIsEmpty(t *testing.T) {
	if n := ast.Concat(); n.Kind != ast.KindEmpty {
		t.Fatalf("got %+v, want KindEmpty", n)
	}
}

func TestConcatFlattensSingleChild(t *testing.T) {
	n := ast.Concat(ast.Literal('a', 'a'))
	if n.Kind != ast.KindLiteral {
		t.Fatalf("got %+v, want the lone child returned directly", n)
	}
}

func TestAltCollapsesSingleChild(t *testing.T) {
	n := ast.Alt(ast.Literal('a', 'a'))
	if n.Kind != ast.KindLiteral {
		t.Fatalf("got %+v, want the lone alternative returned directly", n)
	}
}

func TestAltKeepsMultipleChildren(t *testing.T) {
	n := ast.Alt(ast.Literal('a', 'a'), ast.Literal('b', 'b'))
	if n.Kind != ast.KindAlt || len(n.Children) != 2 {
		t.Fatalf("got %+v, want a two-way Alt", n)
	}
}

func TestRepeatAndCaptureCopyInner(t *testing.T) {
	inner := ast.Literal('a', 'a')
	r := ast.Repeat(inner, 1, 3, true, ast.Greedy)
	if r.Inner == nil || r.Inner.Kind != ast.KindLiteral || r.Inner.Lo != 'a' {
		t.Fatalf("Repeat.Inner = %+v, want a copy of Literal('a','a')", r.Inner)
	}

	c := ast.Capture(inner)
	if c.Inner == nil || c.Inner.Kind != ast.KindLiteral {
		t.Fatalf("Capture.Inner = %+v, want a copy of inner", c.Inner)
	}

	asrt := ast.Assertion(ast.AssertNegative, inner)
	if asrt.Kind != ast.KindAssertion || asrt.Assert != ast.AssertNegative {
		t.Fatalf("got %+v, want a negative Assertion", asrt)
	}
}
