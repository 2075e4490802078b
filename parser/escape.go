package parser

import (
	"github.com/runematch/runematch/ast"
	"github.com/runematch/runematch/charclass"
)

// parseEscape parses an escape sequence in concatenation context (outside
// a bracket expression), having already consumed the backslash, and
// reifies it as an AST node the way the parser's smart constructors do for
// character-class syntax (spec's cc_to_expr).
func (p *parser) parseEscape() (ast.Node, error) {
	c, err := p.parseEscapeClass()
	if err != nil {
		return ast.Node{}, err
	}
	return classToNode(c), nil
}

func classToNode(c charclass.Class) ast.Node {
	ranges := c.Ranges()
	alts := make([]ast.Node, len(ranges))
	for i, r := range ranges {
		alts[i] = ast.Literal(r.Lo, r.Hi)
	}
	return ast.Alt(alts...)
}

// parseEscapeClass parses an escape sequence (outer or inside a bracket
// expression) into the class of code points it denotes, having already
// consumed the backslash.
func (p *parser) parseEscapeClass() (charclass.Class, error) {
	r, ok := p.advance()
	if !ok {
		return charclass.Class{}, syntaxErr(p.pos, "invalid escape")
	}

	switch r {
	case 'n':
		return charclass.FromChar('\n'), nil
	case 'r':
		return charclass.FromChar('\r'), nil
	case 't':
		return charclass.FromChar('\t'), nil

	case 'd':
		return charclass.Digit, nil
	case 's':
		return charclass.Space, nil
	case 'w':
		return charclass.Word, nil

	case 'D':
		return negateOrErr(charclass.Digit, p.pos)
	case 'S':
		return negateOrErr(charclass.Space, p.pos)
	case 'W':
		return negateOrErr(charclass.Word, p.pos)

	case 'x':
		return p.parseHexEscape(2)
	case 'u':
		return p.parseHexEscape(4)
	case 'U':
		return p.parseHexEscape(8)

	default:
		if charclass.Punct.Includes(r) {
			return charclass.FromChar(r), nil
		}
		return charclass.Class{}, syntaxErr(p.pos, "invalid escape \\%c", r)
	}
}

func negateOrErr(c charclass.Class, pos int) (charclass.Class, error) {
	neg, ok := c.Negate()
	if !ok {
		// Unreachable for the fixed ASCII builtins: none of them spans
		// the full code-point range.
		return charclass.Class{}, syntaxErr(pos, "negated class matches nothing")
	}
	return neg, nil
}

// parseHexEscape consumes exactly nDigits hex digits and returns the
// single-code-point class they denote.
func (p *parser) parseHexEscape(nDigits int) (charclass.Class, error) {
	var acc rune
	for i := 0; i < nDigits; i++ {
		r, ok := p.advance()
		if !ok {
			return charclass.Class{}, syntaxErr(p.pos, "invalid escape: unexpected end of pattern")
		}
		d, ok := hexDigit(r)
		if !ok {
			return charclass.Class{}, syntaxErr(p.pos, "invalid escape: %q is not a hex digit", r)
		}
		acc = acc*16 + d
	}
	if acc > charclass.MaxRune {
		return charclass.Class{}, syntaxErr(p.pos, "character out of range: %#x", acc)
	}
	return charclass.FromChar(acc), nil
}

func hexDigit(r rune) (rune, bool) {
	switch {
	case r >= '0' && r <= '9':
		return r - '0', true
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10, true
	case r >= 'A' && r <= 'F':
		return r - 'A' + 10, true
	default:
		return 0, false
	}
}
