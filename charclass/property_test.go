package charclass

import (
	"testing"

	"pgregory.net/rapid"
)

// genRanges produces an arbitrary (possibly overlapping, unsorted) list of
// valid ranges over a small alphabet, so coalescing has a realistic chance
// of actually kicking in within a bounded number of rapid draws.
func genRanges(t *rapid.T) []Range {
	n := rapid.IntRange(1, 12).Draw(t, "n")
	ranges := make([]Range, n)
	for i := range ranges {
		lo := rune(rapid.IntRange(0, 60).Draw(t, "lo"))
		width := rune(rapid.IntRange(0, 10).Draw(t, "width"))
		ranges[i] = Range{Lo: lo, Hi: lo + width}
	}
	return ranges
}

func TestPropertyNormalizationIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rs := genRanges(t)
		once, err := New(rs)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		twice, err := New(once.Ranges())
		if err != nil {
			t.Fatalf("New(New(rs).Ranges()): %v", err)
		}
		if !equalRanges(once.Ranges(), twice.Ranges()) {
			t.Fatalf("not idempotent: once=%v twice=%v", once.Ranges(), twice.Ranges())
		}
	})
}

func TestPropertyNegationIsInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rs := genRanges(t)
		c, err := New(rs)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		neg, ok := c.Negate()
		if !ok {
			// c is the full interval; negation of the full interval is
			// the empty class, which has no meaningful double-negation.
			return
		}
		back, ok := neg.Negate()
		if !ok {
			t.Fatalf("Negate().Negate(): ok = false for a non-full class")
		}
		if !equalRanges(c.Ranges(), back.Ranges()) {
			t.Fatalf("negate not involutive: c=%v back=%v", c.Ranges(), back.Ranges())
		}
	})
}

func TestPropertyRangesAreSortedDisjointNonTouching(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rs := genRanges(t)
		c, err := New(rs)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		got := c.Ranges()
		for i := 0; i+1 < len(got); i++ {
			if got[i].Hi+1 >= got[i+1].Lo {
				t.Fatalf("ranges %v and %v are touching or out of order", got[i], got[i+1])
			}
		}
	})
}

func TestPropertyIncludesAgreesWithLinearScan(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rs := genRanges(t)
		c, err := New(rs)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		probe := rune(rapid.IntRange(-5, 80).Draw(t, "probe"))

		want := false
		for _, r := range rs {
			if probe >= r.Lo && probe <= r.Hi {
				want = true
				break
			}
		}
		if got := c.Includes(probe); got != want {
			t.Fatalf("Includes(%d) = %v, want %v (ranges=%v)", probe, got, want, c.Ranges())
		}
	})
}
