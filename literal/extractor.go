// Package literal extracts required literal substrings from a regex AST,
// grounded on the teacher's regexp/syntax-based literal extractor but
// walking this module's own ast.Node tree instead.
//
// Extraction here is deliberately conservative: it only ever returns a
// literal set when every traversed branch reduces to one, and it marks
// anything else "inexact" — callers (the prefilter package) treat an
// inexact result as "do not filter", never as a partial answer.
package literal

import "github.com/runematch/runematch/ast"

// Seq is a required literal set: if Exact is true, a haystack that
// contains none of Literals cannot possibly match the pattern the set was
// extracted from.
type Seq struct {
	Literals []string
	Exact    bool
}

// These bounds are small and fixed rather than user-tunable; the
// extraction this package does (pure literal alternations/runs) is narrow
// enough that runaway blow-up isn't the practical concern it is for the
// teacher's general regexp/syntax walk.
const (
	maxLiterals   = 64
	maxLiteralLen = 64
)

// Extract walks n and returns the required literal set that must appear
// in any matching input, or an inexact empty Seq if n contains any
// sub-pattern extraction can't account for (a range class, an optional or
// starred sub-pattern, an assertion, and so on).
func Extract(n ast.Node) Seq {
	switch n.Kind {
	case ast.KindEmpty:
		return Seq{Literals: []string{""}, Exact: true}

	case ast.KindNone:
		// Matches nothing: vacuously, there is no required literal that
		// helps — treat as unfilterable rather than claim the empty set
		// of literals is "exact" (which would reject every haystack).
		return Seq{}

	case ast.KindLiteral:
		if n.Lo != n.Hi {
			return Seq{}
		}
		return Seq{Literals: []string{string(n.Lo)}, Exact: true}

	case ast.KindConcat:
		return extractConcat(n.Children)

	case ast.KindAlt:
		return extractAlt(n.Children)

	case ast.KindRepeat:
		// Optional (min == 0) or not, a repeat never reduces to one fixed
		// required literal once its count can vary ("a{2,}" has no single
		// required run to anchor a literal prefilter on), so extraction
		// doesn't attempt to look through it.
		return Seq{}

	case ast.KindCapture:
		return Extract(*n.Inner)

	case ast.KindAssertion:
		// The compiler drops a lookaround body, so its literals are not
		// required to appear in a matching input.
		return Seq{}

	default:
		return Seq{}
	}
}

func extractConcat(children []ast.Node) Seq {
	acc := []string{""}
	for _, c := range children {
		part := Extract(c)
		if !part.Exact {
			// Stop at the first non-literal boundary; what's accumulated
			// so far is still a valid required prefix.
			break
		}
		acc = crossProduct(acc, part.Literals)
		if len(acc) > maxLiterals {
			return Seq{}
		}
	}
	if len(acc) == 1 && acc[0] == "" {
		return Seq{}
	}
	return Seq{Literals: acc, Exact: true}
}

func extractAlt(children []ast.Node) Seq {
	var all []string
	for _, c := range children {
		part := Extract(c)
		if !part.Exact {
			// One un-literal-able branch means the alternation as a whole
			// can match without any of the accumulated literals present.
			return Seq{}
		}
		all = append(all, part.Literals...)
		if len(all) > maxLiterals {
			return Seq{}
		}
	}
	return Seq{Literals: all, Exact: true}
}

func crossProduct(prefixes, suffixes []string) []string {
	out := make([]string, 0, len(prefixes)*len(suffixes))
	for _, p := range prefixes {
		for _, s := range suffixes {
			combined := p + s
			if len(combined) > maxLiteralLen {
				combined = combined[:maxLiteralLen]
			}
			out = append(out, combined)
		}
	}
	return out
}
