package parser

import (
	"github.com/runematch/runematch/ast"
	"github.com/runematch/runematch/charclass"
)

// parseClass parses a bracket expression `[...]`, having already consumed
// the opening '['.
func (p *parser) parseClass() (ast.Node, error) {
	ranges, matchesSomething, err := p.parseClassBody()
	if err != nil {
		return ast.Node{}, err
	}
	if !matchesSomething {
		return ast.None(), nil
	}
	c, err := charclass.New(ranges)
	if err != nil {
		return ast.Node{}, err
	}
	return classToNode(c), nil
}

// parseClassBody parses the body of a bracket expression (after the
// opening '[', stopping after the closing ']'), handling the leading '^'
// negation marker. matchesSomething is false iff the class negates to the
// empty set (spec §4.A's "empty-negation" edge case).
func (p *parser) parseClassBody() (ranges []charclass.Range, matchesSomething bool, err error) {
	negated := false
	if r, ok := p.advance(); ok && r == '^' {
		negated = true
	} else if ok {
		p.retreat()
	} else {
		return nil, false, syntaxErr(p.pos, "unbalanced parenthesis")
	}

	var tokens []charclass.Range

	for {
		r, ok := p.advance()
		if !ok {
			return nil, false, syntaxErr(p.pos, "expecting ']'")
		}
		if r == ']' {
			break
		}
		p.retreat()

		tok, err := p.readClassToken()
		if err != nil {
			return nil, false, err
		}

		lo, isChar := singleRune(tok)
		if !isChar {
			tokens = append(tokens, tok...)
			continue
		}

		// Might be the left-hand side of a '-' range.
		dash, ok := p.advance()
		if !ok || dash != '-' {
			if ok {
				p.retreat()
			}
			tokens = append(tokens, charclass.Range{Lo: lo, Hi: lo})
			continue
		}

		afterDash := p.snapshot()
		next, ok := p.advance()
		if ok && next == ']' {
			// No right-hand token: '-' is a literal, and the ']' belongs
			// to the enclosing loop.
			p.retreat()
			tokens = append(tokens, charclass.Range{Lo: lo, Hi: lo}, charclass.Range{Lo: '-', Hi: '-'})
			continue
		}
		p.restore(afterDash)

		rhs, err := p.readClassToken()
		if err != nil {
			return nil, false, err
		}
		hi, rhsIsChar := singleRune(rhs)
		if !rhsIsChar {
			// The right-hand side doesn't reduce to a single code point
			// (e.g. a nested class): '-' is a literal and rhs is its own
			// token.
			tokens = append(tokens, charclass.Range{Lo: lo, Hi: lo}, charclass.Range{Lo: '-', Hi: '-'})
			tokens = append(tokens, rhs...)
			continue
		}
		if lo > hi {
			return nil, false, syntaxErr(p.pos, "bad character range %q-%q", lo, hi)
		}
		tokens = append(tokens, charclass.Range{Lo: lo, Hi: hi})
	}

	if len(tokens) == 0 {
		return nil, false, syntaxErr(p.pos, "empty character class")
	}

	if !negated {
		return tokens, true, nil
	}

	c, err := charclass.New(tokens)
	if err != nil {
		return nil, false, err
	}
	neg, ok := c.Negate()
	if !ok {
		return nil, false, nil
	}
	return neg.Ranges(), true, nil
}

// singleRune reports whether ranges reduces to exactly one code point,
// returning it if so.
func singleRune(ranges []charclass.Range) (rune, bool) {
	if len(ranges) == 1 && ranges[0].Lo == ranges[0].Hi {
		return ranges[0].Lo, true
	}
	return 0, false
}

// readClassToken reads one class token: a literal rune, an escape, or a
// nested bracket expression, each reduced to its range list.
func (p *parser) readClassToken() ([]charclass.Range, error) {
	r, ok := p.advance()
	if !ok {
		return nil, syntaxErr(p.pos, "expecting ']'")
	}
	switch r {
	case '\\':
		return p.readClassEscape()
	case '[':
		ranges, matchesSomething, err := p.parseClassBody()
		if err != nil {
			return nil, err
		}
		if !matchesSomething {
			return nil, nil
		}
		return ranges, nil
	default:
		return []charclass.Range{{Lo: r, Hi: r}}, nil
	}
}

// readClassEscape parses an escape sequence inside a bracket expression,
// having already consumed the backslash.
func (p *parser) readClassEscape() ([]charclass.Range, error) {
	c, err := p.parseEscapeClass()
	if err != nil {
		return nil, err
	}
	return c.Ranges(), nil
}
