// Package runematch is a regex engine over Unicode scalar values.
//
// A pattern compiles to a single NFA and every match runs a priority-
// ordered thread-set simulation ("Pike VM") over the pattern's code
// points, never backtracking, so worst-case time is linear in input
// length for a fixed pattern — no catastrophic backtracking regardless of
// pattern shape.
//
// Capture-group extraction, backreferences, executed lookaround, anchors,
// case-insensitive matching, and byte-oriented matching are out of scope:
// groups and lookaround parse for syntax compatibility. A group lowers
// transparently (it matches what its body matches); a lookaround lowers to
// nothing, so its body is never checked (see the ast and nfa packages).
//
// Basic usage:
//
//	re, err := runematch.Compile(`[a-z]+@[a-z]+\.[a-z]+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.Matches([]rune("user@example.com")) {
//	    fmt.Println("matched!")
//	}
package runematch

import (
	"github.com/runematch/runematch/ast"
	"github.com/runematch/runematch/charclass"
	"github.com/runematch/runematch/literal"
	"github.com/runematch/runematch/nfa"
	"github.com/runematch/runematch/parser"
	"github.com/runematch/runematch/prefilter"
	"github.com/runematch/runematch/vm"
)

// Config controls pattern-compilation behavior that spec's source
// material left divergent across iterations (see SPEC_FULL.md §6 and
// DESIGN.md's Open Question decisions).
type Config struct {
	// StrictRepetitionBraces rejects a "{" that doesn't parse as a valid
	// counted repetition with a SyntaxError. When false, such a "{" falls
	// back to matching itself literally. Default true.
	StrictRepetitionBraces bool

	// RepeatMax bounds a literal {m,n} count at parse time. Zero means
	// ast.DefaultRepeatMax. The compiler applies its own bound of
	// ast.DefaultRepeatMax regardless, so counts above that fail to
	// compile even when RepeatMax allows them.
	RepeatMax int

	// DisablePrefilter skips building the Aho-Corasick prefilter behind
	// Regex.Search even when the pattern's literal set would support one.
	// Useful for benchmarking the VM in isolation.
	DisablePrefilter bool
}

// DefaultConfig returns the default compilation configuration: strict
// brace parsing, the default repeat bound, and the prefilter enabled.
func DefaultConfig() Config {
	return Config{StrictRepetitionBraces: true}
}

// Regex is a compiled pattern. It is immutable after Compile returns and
// safe for concurrent use: each call to Matches or Search creates its own
// vm.Matcher over the shared, read-only nfa.Program.
type Regex struct {
	pattern string

	anchored *nfa.Program // compiled from the pattern as written
	search   *nfa.Program // compiled from (?:.*?)+pattern, for Search

	pf *prefilter.Prefilter // nil if no usable literal set was extracted
}

// Compile parses and compiles pattern with the default Config.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics instead of returning an error,
// for patterns known valid at init time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("runematch: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// CompileWithConfig parses and compiles pattern under cfg.
func CompileWithConfig(pattern string, cfg Config) (*Regex, error) {
	opts := parser.Options{
		RepeatMax:        cfg.RepeatMax,
		PermissiveBraces: !cfg.StrictRepetitionBraces,
	}

	n, err := parser.Parse(pattern, opts)
	if err != nil {
		return nil, err
	}

	anchored, err := nfa.Compile(n)
	if err != nil {
		return nil, err
	}

	searchAST := ast.Concat(
		ast.Repeat(ast.Literal(0, charclass.MaxRune), 0, 0, false, ast.NonGreedy),
		n,
	)
	search, err := nfa.Compile(searchAST)
	if err != nil {
		return nil, err
	}

	re := &Regex{pattern: pattern, anchored: anchored, search: search}

	if !cfg.DisablePrefilter {
		if seq := literal.Extract(n); seq.Exact {
			if pf, ok := prefilter.New(seq.Literals); ok {
				re.pf = pf
			}
		}
	}

	return re, nil
}

// Matches reports whether some prefix of input drives the pattern into an
// accepting configuration, i.e. an anchored-at-start streaming match
// (spec §6). It returns as soon as a match is found.
func (r *Regex) Matches(input []rune) bool {
	return vm.Match(r.anchored, input)
}

// MatchesString is Matches for a string input.
func (r *Regex) MatchesString(s string) bool {
	return r.Matches([]rune(s))
}

// Search reports whether the pattern matches anywhere in input — the
// "scan anywhere" variant built by prepending a non-greedy `.*?`, per
// spec §9's Open Question. When the pattern's required literal set was
// extractable, a haystack missing every required literal is rejected by
// the Aho-Corasick prefilter before the VM ever runs.
func (r *Regex) Search(input []rune) bool {
	if r.pf != nil && !r.pf.MayMatch([]byte(string(input))) {
		return false
	}
	return vm.Match(r.search, input)
}

// SearchString is Search for a string input.
func (r *Regex) SearchString(s string) bool {
	return r.Search([]rune(s))
}

// String returns the source pattern text.
func (r *Regex) String() string {
	return r.pattern
}
