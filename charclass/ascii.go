package charclass

// Builtin holds the fixed table of POSIX-style ASCII character classes,
// keyed by their bracket-expression name (e.g. "[[:alpha:]]" → "alpha").
// Each entry is a pre-normalized Class with static lifetime; callers borrow
// it rather than copying, since Class is immutable after construction.
var Builtin = map[string]Class{
	"alnum":  mustClass(Range{'0', '9'}, Range{'A', 'Z'}, Range{'a', 'z'}),
	"alpha":  mustClass(Range{'A', 'Z'}, Range{'a', 'z'}),
	"ascii":  mustClass(Range{0x00, 0x7F}),
	"blank":  mustClass(Range{'\t', '\t'}, Range{' ', ' '}),
	"cntrl":  mustClass(Range{0x00, 0x1F}, Range{0x7F, 0x7F}),
	"digit":  mustClass(Range{'0', '9'}),
	"graph":  mustClass(Range{'!', '~'}),
	"lower":  mustClass(Range{'a', 'z'}),
	"print":  mustClass(Range{' ', '~'}),
	"punct":  mustClass(Range{'!', '/'}, Range{':', '@'}, Range{'[', '`'}, Range{'{', '~'}),
	"space":  mustClass(Range{'\t', '\r'}, Range{' ', ' '}),
	"upper":  mustClass(Range{'A', 'Z'}),
	"word":   mustClass(Range{'0', '9'}, Range{'A', 'Z'}, Range{'_', '_'}, Range{'a', 'z'}),
	"xdigit": mustClass(Range{'0', '9'}, Range{'A', 'F'}, Range{'a', 'f'}),
}

// Digit, Space and Word are the builtins the parser consumes directly for
// \d, \s and \w (and, negated, for \D, \S, \W); Punct decides which
// punctuation a backslash escapes literally.
var (
	Digit = Builtin["digit"]
	Space = Builtin["space"]
	Word  = Builtin["word"]
	Punct = Builtin["punct"]
)

func mustClass(ranges ...Range) Class {
	c, err := New(ranges)
	if err != nil {
		panic(err)
	}
	return c
}
