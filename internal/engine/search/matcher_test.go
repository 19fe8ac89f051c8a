package search

import "testing"

// spans drains a matcher against text and returns the (start, end) pairs.
func spans(m *Matcher, text string) [][2]int {
	var out [][2]int
	for {
		loc := m.Next(text)
		if loc == nil {
			return out
		}
		out = append(out, [2]int{loc[0], loc[1]})
	}
}

func TestMatcher_Next(t *testing.T) {
	c := Query{Pattern: "o", MatchCase: true}.Compile()
	m := NewMatcher(c)
	m.Reset(0)

	got := spans(m, "foo of")
	want := [][2]int{{1, 2}, {2, 3}, {4, 5}}
	if len(got) != len(want) {
		t.Fatalf("got %d matches, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMatcher_ResetSkipsEarlierMatches(t *testing.T) {
	c := Query{Pattern: "a", MatchCase: true}.Compile()
	m := NewMatcher(c)

	m.Reset(1)
	got := spans(m, "aaa")
	if len(got) != 2 || got[0] != [2]int{1, 2} {
		t.Fatalf("matches from offset 1 = %v, want [[1 2] [2 3]]", got)
	}

	// A fresh reset rescans from the new offset.
	m.Reset(0)
	if got := spans(m, "aaa"); len(got) != 3 {
		t.Errorf("matches after Reset(0) = %d, want 3", len(got))
	}
}

func TestMatcher_ResetInsideMatch(t *testing.T) {
	// A reset offset falling inside an earlier match must not hide the
	// overlapping match that starts at the offset.
	c := Query{Pattern: "aa", IsRegex: true, MatchCase: true}.Compile()
	m := NewMatcher(c)
	m.Reset(1)

	loc := m.Next("aaa")
	if loc == nil {
		t.Fatal("Next() = nil, want match")
	}
	if loc[0] != 1 || loc[1] != 3 {
		t.Errorf("match = [%d %d], want [1 3]", loc[0], loc[1])
	}
}

func TestMatcher_ResetInsideAnchoredMatch(t *testing.T) {
	// An anchored pattern cannot restart mid-text: no position past the
	// anchor satisfies it, so the scan reports no match.
	c := Query{Pattern: "^a+", IsRegex: true, MatchCase: true}.Compile()
	m := NewMatcher(c)
	m.Reset(1)

	if loc := m.Next("aaa"); loc != nil {
		t.Errorf("match = [%d %d], want none", loc[0], loc[1])
	}
}

func TestMatcher_WordBoundaries(t *testing.T) {
	c := Query{Pattern: "cat", MatchCase: true, WordSeparators: DefaultWordSeparators}.Compile()
	m := NewMatcher(c)
	m.Reset(0)

	got := spans(m, "concatenate cat scatter")
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1", len(got))
	}
	if got[0] != [2]int{12, 15} {
		t.Errorf("match = %v, want [12 15]", got[0])
	}
}

func TestMatcher_SeparatorPatternIsAlwaysBounded(t *testing.T) {
	// A match consisting of separator characters passes the boundary test
	// even when embedded between word characters.
	c := Query{Pattern: ".", MatchCase: true, WordSeparators: DefaultWordSeparators}.Compile()
	m := NewMatcher(c)
	m.Reset(0)

	if got := spans(m, "a.b"); len(got) != 1 {
		t.Errorf("got %d matches, want 1", len(got))
	}
}

func TestMatcher_ZeroWidthPatternTerminates(t *testing.T) {
	c := Query{Pattern: "x*", IsRegex: true, MatchCase: true}.Compile()
	m := NewMatcher(c)
	m.Reset(0)

	got := spans(m, "abc")
	want := [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMatcher_CapturesExposedThroughIndexes(t *testing.T) {
	c := Query{Pattern: "(f)(o+)", IsRegex: true, MatchCase: true}.Compile()
	m := NewMatcher(c)
	m.Reset(0)

	loc := m.Next("xfoox")
	if loc == nil {
		t.Fatal("Next() = nil, want match")
	}
	if loc[0] != 1 || loc[1] != 4 {
		t.Errorf("full match = [%d %d], want [1 4]", loc[0], loc[1])
	}
	if loc[2] != 1 || loc[3] != 2 || loc[4] != 2 || loc[5] != 4 {
		t.Errorf("group indexes = %v, want [1 2 2 4] after full match", loc[2:6])
	}
}
