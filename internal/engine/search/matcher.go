package search

import (
	"regexp"
	"unicode/utf8"
)

// Matcher drives a compiled pattern across one text chunk at a time.
// Call Reset before scanning a new chunk, then Next repeatedly until it
// returns nil. A Matcher is owned by a single scan and is not reentrant;
// concurrent scans require one Matcher each.
type Matcher struct {
	re          *regexp.Regexp
	classifier  *WordClassifier
	leftContext bool

	text    string
	matches [][]int
	next    int
	from    int
	primed  bool

	// Repeat guard: shape of the last match seen, accepted or rejected.
	prevStart int
	prevLen   int
	hasPrev   bool
}

// NewMatcher creates a matcher for a compiled search request.
func NewMatcher(c *Compiled) *Matcher {
	return &Matcher{re: c.re, classifier: c.classifier, leftContext: c.leftContext}
}

// Reset positions the scan at the given 0-based offset within the next
// text passed to Next and clears last-match memory.
func (m *Matcher) Reset(from int) {
	m.from = from
	m.text = ""
	m.matches = nil
	m.next = 0
	m.primed = false
	m.hasPrev = false
}

// Next returns the submatch index slice (as produced by the regexp package)
// of the next acceptable match in text, or nil when the chunk is exhausted.
// Matches starting before the reset offset are skipped; matches failing the
// word-boundary test are rejected and scanning continues. A match identical
// in start and length to the previously seen one terminates the chunk.
func (m *Matcher) Next(text string) []int {
	if !m.primed {
		m.matches = m.re.FindAllStringSubmatchIndex(text, -1)
		if m.from > 0 {
			m.rescanStraddled(text)
		}
		m.text = text
		m.next = 0
		m.primed = true
	}

	for m.next < len(m.matches) {
		loc := m.matches[m.next]
		m.next++

		start, end := loc[0], loc[1]
		if start < m.from {
			continue
		}
		if m.hasPrev && start == m.prevStart && end-start == m.prevLen {
			return nil
		}
		m.prevStart, m.prevLen, m.hasPrev = start, end-start, true

		if m.classifier != nil && !isValidMatch(m.classifier, text, start, end) {
			continue
		}
		return loc
	}
	return nil
}

// rescanStraddled restores scan-cursor semantics after a nonzero Reset.
// The whole-text match set is non-overlapping, so a match beginning at or
// after the reset offset can be hidden inside an earlier match that
// straddles the offset; when that happens the scan is redone on the suffix
// starting at the offset. Patterns inspecting left context keep the
// whole-text matches, since a suffix scan would sever anchors and word
// boundaries from the characters they depend on.
func (m *Matcher) rescanStraddled(text string) {
	if m.leftContext {
		return
	}
	straddled := false
	for _, loc := range m.matches {
		if loc[0] >= m.from {
			break
		}
		if loc[1] > m.from {
			straddled = true
			break
		}
	}
	if !straddled {
		return
	}
	tail := m.re.FindAllStringSubmatchIndex(text[m.from:], -1)
	for _, loc := range tail {
		for i, v := range loc {
			if v >= 0 {
				loc[i] = v + m.from
			}
		}
	}
	m.matches = tail
}

// isValidMatch reports whether both edges of text[start:end] sit on word
// boundaries per the classifier.
func isValidMatch(c *WordClassifier, text string, start, end int) bool {
	return leftIsWordBoundary(c, text, start, end-start) &&
		rightIsWordBoundary(c, text, start, end-start)
}

// leftIsWordBoundary checks the left edge of a match: start of text, a
// non-regular character before the match, or a non-regular first matched
// character all count as boundaries.
func leftIsWordBoundary(c *WordClassifier, text string, start, length int) bool {
	if start == 0 {
		return true
	}
	before, _ := utf8.DecodeLastRuneInString(text[:start])
	if c.Classify(before) != CharRegular {
		return true
	}
	if length > 0 {
		first, _ := utf8.DecodeRuneInString(text[start:])
		if c.Classify(first) != CharRegular {
			return true
		}
	}
	return false
}

// rightIsWordBoundary mirrors leftIsWordBoundary for the right edge.
func rightIsWordBoundary(c *WordClassifier, text string, start, length int) bool {
	end := start + length
	if end == len(text) {
		return true
	}
	after, _ := utf8.DecodeRuneInString(text[end:])
	if c.Classify(after) != CharRegular {
		return true
	}
	if length > 0 {
		last, _ := utf8.DecodeLastRuneInString(text[:end])
		if c.Classify(last) != CharRegular {
			return true
		}
	}
	return false
}
