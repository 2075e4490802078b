// Package prefilter wraps an Aho-Corasick automaton over a literal.Seq to
// give the façade a cheap "can this haystack possibly match" check before
// it pays for a full VM run, the same role ahoCorasick plays in the
// teacher's meta engine (see meta/ismatch.go's e.ahoCorasick.IsMatch).
package prefilter

import "github.com/coregx/ahocorasick"

// Prefilter answers whether a haystack could possibly contain a match. A
// false result is conclusive (no match is possible); a true result means
// the caller still has to run the real matcher.
type Prefilter struct {
	auto *ahocorasick.Automaton
}

// New builds a Prefilter from a required literal set. It returns
// (nil, false) when literals isn't usable for filtering (empty — an empty
// set would reject every haystack, which is never correct for a pattern
// that can match something — or containing the empty string), or when the
// automaton fails to build. Callers pass only the Literals of an exact
// literal.Seq; New does not check exactness itself.
func New(literals []string) (*Prefilter, bool) {
	if len(literals) == 0 {
		return nil, false
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		if lit == "" {
			// A required-but-empty literal (e.g. from an Empty AST node)
			// means every haystack satisfies it — filtering can't help.
			return nil, false
		}
		builder.AddPattern([]byte(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, false
	}
	return &Prefilter{auto: auto}, true
}

// MayMatch reports whether haystack contains at least one of the
// Prefilter's literals. false is a conclusive "cannot match".
func (pf *Prefilter) MayMatch(haystack []byte) bool {
	return pf.auto.IsMatch(haystack)
}
