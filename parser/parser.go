// Package parser turns pattern text into an ast.Node tree.
//
// The parser is a single-pass recursive-descent cursor over the pattern's
// runes, with one-rune pushback ("retreat") used to implement
// lookahead-by-one without a separate peek buffer. Counted repetitions
// ("{...}") are ambiguous with a literal brace, so they are parsed with
// backtracking: the cursor is cloned, the repetition is attempted, and the
// clone is only committed on success.
package parser

import (
	"fmt"

	"github.com/runematch/runematch/ast"
	"github.com/runematch/runematch/charclass"
)

// Options controls parse-time behavior that spec.md flags as divergent
// across source iterations (see spec §9).
type Options struct {
	// RepeatMax bounds {m,n} counts. Zero means ast.DefaultRepeatMax.
	RepeatMax int

	// PermissiveBraces, when true, falls back to treating an unparsable
	// "{" as a literal character instead of raising a SyntaxError. The
	// spec's default behavior is strict (false).
	PermissiveBraces bool
}

func (o Options) repeatMax() int {
	if o.RepeatMax <= 0 {
		return ast.DefaultRepeatMax
	}
	return o.RepeatMax
}

// SyntaxError reports a malformed pattern. Pos is a rune offset into the
// pattern, or -1 if not localized to a single position.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("regex syntax error at position %d: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("regex syntax error: %s", e.Msg)
}

func syntaxErr(pos int, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Parse parses pattern into an AST. It is the only exported entry point;
// everything else in this package is parser internals.
func Parse(pattern string, opts Options) (ast.Node, error) {
	p := &parser{runes: []rune(pattern), opts: opts, lastAdvance: -1}
	n, err := p.parseAlt()
	if err != nil {
		return ast.Node{}, err
	}
	if p.hasInput() {
		// parseAlt only returns on end-of-input or an extra ')'.
		return ast.Node{}, syntaxErr(p.pos, "unbalanced parenthesis")
	}
	return n, nil
}

// parser is the cursor over the pattern text.
type parser struct {
	runes []rune
	pos   int
	opts  Options

	// lastAdvance is the cursor position immediately before the most
	// recent successful advance, or -1 if retreat is not currently legal.
	// retreat is a programmer error (panic) when called out of turn —
	// see spec §7's "retreat without a prior advance".
	lastAdvance int
}

func (p *parser) hasInput() bool { return p.pos < len(p.runes) }

// advance consumes and returns the next rune, or (0, false) at end of input.
func (p *parser) advance() (rune, bool) {
	if !p.hasInput() {
		p.lastAdvance = -1
		return 0, false
	}
	p.lastAdvance = p.pos
	r := p.runes[p.pos]
	p.pos++
	return r, true
}

// retreat pushes the most recently advanced rune back onto the input.
// Legal only immediately after a successful advance.
func (p *parser) retreat() {
	if p.lastAdvance < 0 {
		panic("parser: retreat without a prior advance")
	}
	p.pos = p.lastAdvance
	p.lastAdvance = -1
}

// snapshot/restore implement the clone-and-backtrack protocol {…} parsing
// needs: attempt the repetition on a copy of the cursor, and only adopt the
// copy's position if parsing succeeded.
type snapshot struct {
	pos         int
	lastAdvance int
}

func (p *parser) snapshot() snapshot { return snapshot{pos: p.pos, lastAdvance: p.lastAdvance} }
func (p *parser) restore(s snapshot) {
	p.pos = s.pos
	p.lastAdvance = s.lastAdvance
}

// parseAlt parses `concat ('|' concat)*`.
func (p *parser) parseAlt() (ast.Node, error) {
	var items []ast.Node
	for {
		item, err := p.parseConcat()
		if err != nil {
			return ast.Node{}, err
		}
		items = append(items, item)

		r, ok := p.advance()
		if !ok {
			break
		}
		switch r {
		case ')':
			p.retreat()
			goto done
		case '|':
			continue
		default:
			panic("parser: parseConcat returned with unconsumed non-delimiter input")
		}
	}
done:
	return ast.Alt(items...), nil
}

// parseConcat parses a run of atoms, applying postfix quantifiers as they
// are encountered (spec: `?` after a non-repeat atom wraps it; `?` after a
// greedy repeat flips greediness; `?` after a non-greedy repeat is an
// error; `*`/`+`/`{…}` require a preceding atom and cannot stack).
func (p *parser) parseConcat() (ast.Node, error) {
	var items []ast.Node

	for {
		r, ok := p.advance()
		if !ok {
			break
		}
		switch r {
		case '|', ')':
			p.retreat()
			goto done

		case '(':
			n, err := p.parseGroup()
			if err != nil {
				return ast.Node{}, err
			}
			if n.Kind != ast.KindEmpty {
				items = append(items, n)
			}

		case '.':
			items = append(items, ast.Literal(0, charclass.MaxRune))

		case '[':
			n, err := p.parseClass()
			if err != nil {
				return ast.Node{}, err
			}
			items = append(items, n)

		case '\\':
			n, err := p.parseEscape()
			if err != nil {
				return ast.Node{}, err
			}
			items = append(items, n)

		case '?':
			n, err := popRepeatable(&items, p.pos)
			if err != nil {
				return ast.Node{}, err
			}
			if n.Kind == ast.KindRepeat {
				if n.Greedy == ast.NonGreedy {
					return ast.Node{}, syntaxErr(p.pos, "multiple repeat")
				}
				n.Greedy = ast.NonGreedy
				items = append(items, n)
			} else {
				items = append(items, ast.Repeat(n, 0, 1, true, ast.Greedy))
			}

		case '+':
			if err := addRepeat(&items, p.pos, 1, 0, false); err != nil {
				return ast.Node{}, err
			}

		case '*':
			if err := addRepeat(&items, p.pos, 0, 0, false); err != nil {
				return ast.Node{}, err
			}

		case '{':
			if min, max, hasMax, ok := p.tryParseRepetition(); ok {
				if err := addRepeat(&items, p.pos, min, max, hasMax); err != nil {
					return ast.Node{}, err
				}
			} else if p.opts.PermissiveBraces {
				items = append(items, ast.Literal('{', '{'))
			} else {
				return ast.Node{}, syntaxErr(p.pos, "invalid repetition syntax")
			}

		default:
			items = append(items, ast.Literal(r, r))
		}
	}
done:
	return ast.Concat(items...), nil
}

// popRepeatable pops the last item to attach a quantifier to, or reports
// "nothing to repeat" if there is none.
func popRepeatable(items *[]ast.Node, pos int) (ast.Node, error) {
	n := len(*items)
	if n == 0 {
		return ast.Node{}, syntaxErr(pos, "nothing to repeat")
	}
	last := (*items)[n-1]
	*items = (*items)[:n-1]
	return last, nil
}

// addRepeat pops the last item, wraps it in Repeat(min, max), and pushes
// the result back. Repeats cannot stack directly ("a**" is an error).
func addRepeat(items *[]ast.Node, pos int, min, max int, hasMax bool) error {
	n, err := popRepeatable(items, pos)
	if err != nil {
		return err
	}
	if n.Kind == ast.KindRepeat {
		return syntaxErr(pos, "multiple repeat")
	}
	*items = append(*items, ast.Repeat(n, min, max, hasMax, ast.Greedy))
	return nil
}

// parseGroup parses the body of a group, having already consumed '('.
func (p *parser) parseGroup() (ast.Node, error) {
	var result ast.Node

	r, ok := p.advance()
	if ok && r == '?' {
		kind, ok := p.advance()
		if !ok {
			return ast.Node{}, syntaxErr(p.pos, "unexpected end of pattern")
		}
		switch kind {
		case ':':
			n, err := p.parseAlt()
			if err != nil {
				return ast.Node{}, err
			}
			result = n
		case '#':
			if err := p.skipComment(); err != nil {
				return ast.Node{}, err
			}
			result = ast.Empty()
		case '=':
			n, err := p.parseAlt()
			if err != nil {
				return ast.Node{}, err
			}
			result = ast.Assertion(ast.AssertPositive, n)
		case '!':
			n, err := p.parseAlt()
			if err != nil {
				return ast.Node{}, err
			}
			result = ast.Assertion(ast.AssertNegative, n)
		default:
			return ast.Node{}, syntaxErr(p.pos, "unknown extension (?%c", kind)
		}
	} else {
		if ok {
			p.retreat()
		}
		n, err := p.parseAlt()
		if err != nil {
			return ast.Node{}, err
		}
		result = ast.Capture(n)
	}

	closing, ok := p.advance()
	if !ok || closing != ')' {
		return ast.Node{}, syntaxErr(p.pos, "mismatched parenthesis")
	}
	return result, nil
}

// skipComment consumes up to (but not including) the closing ')' of a
// (?#...) group.
func (p *parser) skipComment() error {
	for {
		r, ok := p.advance()
		if !ok {
			return syntaxErr(p.pos, "unbalanced parenthesis")
		}
		if r == ')' {
			p.retreat()
			return nil
		}
	}
}

// tryParseRepetition attempts to parse a counted repetition body (the part
// after '{'), backtracking on failure. Accepted forms: {N} {M,} {,N} {M,N}
// {,}.
func (p *parser) tryParseRepetition() (min, max int, hasMax bool, ok bool) {
	saved := p.snapshot()

	minVal, haveMin := p.parseNumber()

	r, advanced := p.advance()
	if advanced && r == ',' {
		maxVal, haveMax := p.parseNumber()
		closing, advanced2 := p.advance()
		if !advanced2 || closing != '}' {
			p.restore(saved)
			return 0, 0, false, false
		}
		lo := 0
		if haveMin {
			lo = minVal
		}
		if haveMax && maxVal < lo {
			p.restore(saved)
			return 0, 0, false, false
		}
		if lo > p.opts.repeatMax() || (haveMax && maxVal > p.opts.repeatMax()) {
			p.restore(saved)
			return 0, 0, false, false
		}
		return lo, maxVal, haveMax, true
	}

	if advanced && r == '}' {
		if !haveMin {
			p.restore(saved)
			return 0, 0, false, false
		}
		if minVal > p.opts.repeatMax() {
			p.restore(saved)
			return 0, 0, false, false
		}
		return minVal, minVal, true, true
	}

	p.restore(saved)
	return 0, 0, false, false
}

// parseNumber parses a run of ASCII digits, retreating past the first
// non-digit. Returns (0, false) if no digits were present.
func (p *parser) parseNumber() (int, bool) {
	n := 0
	have := false
	for {
		r, ok := p.advance()
		if !ok {
			break
		}
		if r < '0' || r > '9' {
			p.retreat()
			break
		}
		have = true
		n = n*10 + int(r-'0')
		if n > ast.DefaultRepeatMax*10 {
			// Stop runaway accumulation on pathological input; the
			// repeatMax() bound check above will reject this anyway.
			n = ast.DefaultRepeatMax * 10
		}
	}
	return n, have
}
