package parser

import (
	"testing"

	"github.com/runematch/runematch/ast"
)

func mustParse(t *testing.T, pattern string) ast.Node {
	t.Helper()
	n, err := Parse(pattern, Options{})
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return n
}

func TestParseLiteralConcat(t *testing.T) {
	n := mustParse(t, "ab")
	if n.Kind != ast.KindConcat || len(n.Children) != 2 {
		t.Fatalf("got %+v, want a two-element concat", n)
	}
}

func TestParseAlternationPriorityOrder(t *testing.T) {
	n := mustParse(t, "a|b|c")
	if n.Kind != ast.KindAlt || len(n.Children) != 3 {
		t.Fatalf("got %+v, want a three-way alternation", n)
	}
}

func TestParseGroupKinds(t *testing.T) {
	cases := []struct {
		pattern  string
		wantKind ast.Kind
	}{
		{"(a)", ast.KindCapture},
		{"(?:a)", ast.KindLiteral},
		{"(?=a)", ast.KindAssertion},
		{"(?!a)", ast.KindAssertion},
		{"(?#comment)", ast.KindEmpty},
	}
	for _, c := range cases {
		n := mustParse(t, c.pattern)
		if n.Kind != c.wantKind {
			t.Errorf("Parse(%q).Kind = %v, want %v", c.pattern, n.Kind, c.wantKind)
		}
	}
}

func TestParseUnknownExtensionIsSyntaxError(t *testing.T) {
	if _, err := Parse("(?P<name>a)", Options{}); err == nil {
		t.Fatal("expected an unsupported (?P<...>...) extension to be a SyntaxError")
	}
}

func TestParseMismatchedParenthesis(t *testing.T) {
	if _, err := Parse("(a", Options{}); err == nil {
		t.Fatal("expected an unclosed group to be a SyntaxError")
	}
	if _, err := Parse("a)", Options{}); err == nil {
		t.Fatal("expected an extra ')' to be a SyntaxError")
	}
}

func TestParseQuantifierGreedyFlip(t *testing.T) {
	n := mustParse(t, "a+?")
	if n.Kind != ast.KindRepeat || n.Greedy != ast.NonGreedy {
		t.Fatalf("got %+v, want a non-greedy repeat", n)
	}
}

func TestParseDoubleNonGreedyIsSyntaxError(t *testing.T) {
	if _, err := Parse("a??", Options{}); err != nil {
		t.Fatal("a?? is '?' on a bare atom, then '?' making that optional non-greedy: should parse, not error")
	}
	if _, err := Parse("a+??", Options{}); err == nil {
		t.Fatal("expected flipping an already non-greedy repeat to error with 'multiple repeat'")
	}
}

func TestParseStackedRepeatIsSyntaxError(t *testing.T) {
	if _, err := Parse("a**", Options{}); err == nil {
		t.Fatal("expected stacked '*' to be a SyntaxError")
	}
	if _, err := Parse("a+{2}", Options{}); err == nil {
		t.Fatal("expected stacking '{2}' onto a repeat to be a SyntaxError")
	}
}

func TestParseNothingToRepeat(t *testing.T) {
	cases := []string{"*", "+", "?", "{2}"}
	for _, p := range cases {
		if _, err := Parse(p, Options{}); err == nil {
			t.Errorf("Parse(%q): expected 'nothing to repeat' error", p)
		}
	}
}

func TestParseCountedRepetitionForms(t *testing.T) {
	cases := []struct {
		pattern  string
		min, max int
		hasMax   bool
	}{
		{"a{3}", 3, 3, true},
		{"a{2,}", 2, 0, false},
		{"a{2,5}", 2, 5, true},
		{"a{,5}", 0, 5, true},
	}
	for _, c := range cases {
		n := mustParse(t, c.pattern)
		if n.Kind != ast.KindRepeat {
			t.Fatalf("Parse(%q): got %+v, want Repeat", c.pattern, n)
		}
		if n.Min != c.min || n.HasMax != c.hasMax || (c.hasMax && n.Max != c.max) {
			t.Errorf("Parse(%q) = {min:%d max:%d hasMax:%v}, want {min:%d max:%d hasMax:%v}",
				c.pattern, n.Min, n.Max, n.HasMax, c.min, c.max, c.hasMax)
		}
	}
}

func TestParseBadRepetitionRange(t *testing.T) {
	if _, err := Parse("a{5,2}", Options{}); err == nil {
		t.Fatal("expected {5,2} (max < min) to be a SyntaxError")
	}
}

func TestParseStrictBracesRejectUnparsable(t *testing.T) {
	if _, err := Parse("a{", Options{}); err == nil {
		t.Fatal("expected strict mode to reject an unparsable '{' with a SyntaxError")
	}
}

func TestParsePermissiveBracesFallBackToLiteral(t *testing.T) {
	n, err := Parse("a{", Options{PermissiveBraces: true})
	if err != nil {
		t.Fatalf("Parse with PermissiveBraces: %v", err)
	}
	if n.Kind != ast.KindConcat || len(n.Children) != 2 {
		t.Fatalf("got %+v, want a two-literal concat (a, then literal '{')", n)
	}
}

func TestParseCharClassRangeAndDash(t *testing.T) {
	// A single contiguous range collapses to a bare Literal: ast.Alt of one
	// child returns that child directly.
	n := mustParse(t, "[a-z]")
	if n.Kind != ast.KindLiteral || n.Lo != 'a' || n.Hi != 'z' {
		t.Fatalf("got %+v, want Literal('a','z')", n)
	}

	// A trailing '-' with no right-hand operand is literal.
	n = mustParse(t, "[a-]")
	if n.Kind != ast.KindAlt || len(n.Children) != 2 {
		t.Fatalf("Parse(\"[a-]\") = %+v, want a 2-alternative class (a, -)", n)
	}
}

func TestParseCharClassNegationToNone(t *testing.T) {
	n := mustParse(t, `[^\x00-\U0010FFFF]`)
	if n.Kind != ast.KindNone {
		t.Fatalf("got %+v, want KindNone for a full-range negation", n)
	}
}

func TestParseEmptyCharClassIsSyntaxError(t *testing.T) {
	if _, err := Parse("[]", Options{}); err == nil {
		t.Fatal("expected an empty bracket expression to be a SyntaxError")
	}
}

func TestParseEscapes(t *testing.T) {
	cases := []string{`\d`, `\D`, `\s`, `\S`, `\w`, `\W`, `\n`, `\.`, `\x41`, `A`, `\U00000041`}
	for _, p := range cases {
		if _, err := Parse(p, Options{}); err != nil {
			t.Errorf("Parse(%q): %v", p, err)
		}
	}
}

func TestParseInvalidEscapeIsSyntaxError(t *testing.T) {
	if _, err := Parse(`\q`, Options{}); err == nil {
		t.Fatal(`expected \q to be an invalid-escape SyntaxError`)
	}
}

func TestRetreatWithoutAdvancePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected retreat without a prior advance to panic")
		}
	}()
	p := &parser{runes: []rune("a"), lastAdvance: -1}
	p.retreat()
}
