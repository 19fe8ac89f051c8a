package search

import (
	"strings"

	"github.com/dshills/keysearch/internal/engine/buffer"
)

// DefaultFindMatchesLimit caps FindMatches result counts when the caller
// passes no explicit limit. Keeps interactive queries responsive.
const DefaultFindMatchesLimit = 999

// previousMatchSafetyCap bounds the internal accumulation used by
// multiline previous-match queries, which must see every candidate to
// find the last one.
const previousMatchSafetyCap = 10 * DefaultFindMatchesLimit

// Buffer is the read interface the search engine consumes.
// Implementations expose a line-oriented document with 1-based positions
// and offset conversion consistent with the reported line ending style.
type Buffer interface {
	LineCount() int
	LineContent(line int) string
	LineMaxColumn(line int) int
	LineEnding() buffer.LineEnding
	OffsetAt(p buffer.Position) int
	PositionAt(offset int) buffer.Position
	ValueInRange(r buffer.Range, eol buffer.LineEnding) string
}

// Match is a single search result. Captures is nil unless capture data was
// requested; when present, Captures[0] is the full matched text.
type Match struct {
	Range    buffer.Range
	Captures []string
}

// FindMatches returns up to limit matches of the compiled query inside
// searchRange, in document order. A limit of zero or less applies
// DefaultFindMatchesLimit. A nil compiled query yields no matches.
// Positions inside searchRange must be valid for the buffer.
func FindMatches(buf Buffer, c *Compiled, searchRange buffer.Range, captureMatches bool, limit int) []Match {
	if c == nil || !searchRange.IsValid() {
		return nil
	}
	if limit <= 0 {
		limit = DefaultFindMatchesLimit
	}
	if c.multiline {
		return findMatchesMultiline(buf, c, searchRange, captureMatches, limit)
	}
	return findMatchesLineByLine(buf, c, searchRange, captureMatches, limit)
}

// FindNextMatch returns the first match at or after the given position,
// wrapping past the end of the buffer at most once. Returns nil when the
// buffer holds no match at all.
func FindNextMatch(buf Buffer, c *Compiled, from buffer.Position, captureMatches bool) *Match {
	if c == nil {
		return nil
	}
	m := NewMatcher(c)
	if c.multiline {
		return findNextMatchMultiline(buf, m, from, captureMatches)
	}
	return findNextMatchLineByLine(buf, m, from, captureMatches)
}

// FindPreviousMatch returns the last match strictly before the given
// position, wrapping to the end of the buffer at most once. Returns nil
// when the buffer holds no match at all.
func FindPreviousMatch(buf Buffer, c *Compiled, from buffer.Position, captureMatches bool) *Match {
	if c == nil {
		return nil
	}
	if c.multiline {
		return findPreviousMatchMultiline(buf, c, from, captureMatches)
	}
	m := NewMatcher(c)
	return findPreviousMatchLineByLine(buf, m, from, captureMatches)
}

// Multiline strategy

// findMatchesMultiline scans the whole range as one LF-joined string and
// maps match offsets back to buffer positions. When the buffer's real line
// ending is CRLF every joined line feed stands for two document bytes, so
// each preceding line feed shifts the document offset by one.
func findMatchesMultiline(buf Buffer, c *Compiled, searchRange buffer.Range, captureMatches bool, limit int) []Match {
	base := buf.OffsetAt(searchRange.Start)
	text := buf.ValueInRange(searchRange, buffer.LineEndingLF)

	eolDelta := 0
	if buf.LineEnding() == buffer.LineEndingCRLF {
		eolDelta = 1
	}

	m := NewMatcher(c)
	m.Reset(0)

	var result []Match
	scanned := 0
	lineFeeds := 0
	for {
		loc := m.Next(text)
		if loc == nil {
			break
		}
		start, end := loc[0], loc[1]

		lineFeeds += strings.Count(text[scanned:start], "\n")
		startOffset := base + start + lineFeeds*eolDelta
		lineFeeds += strings.Count(text[start:end], "\n")
		endOffset := base + end + lineFeeds*eolDelta
		scanned = end

		result = append(result, newMatch(
			buf.PositionAt(startOffset), buf.PositionAt(endOffset),
			text, loc, captureMatches))
		if len(result) >= limit {
			break
		}
	}
	return result
}

func findNextMatchMultiline(buf Buffer, m *Matcher, from buffer.Position, captureMatches bool) *Match {
	// Join from the start of the from-line so line-relative anchors stay
	// correct, then skip ahead to the from-column.
	searchStart := buffer.Position{Line: from.Line, Column: 1}
	base := buf.OffsetAt(searchStart)
	text := buf.ValueInRange(buffer.Range{Start: searchStart, End: endPosition(buf)}, buffer.LineEndingLF)

	eolDelta := 0
	if buf.LineEnding() == buffer.LineEndingCRLF {
		eolDelta = 1
	}

	m.Reset(from.Column - 1)
	if loc := m.Next(text); loc != nil {
		start, end := loc[0], loc[1]
		lineFeeds := strings.Count(text[:start], "\n")
		startOffset := base + start + lineFeeds*eolDelta
		lineFeeds += strings.Count(text[start:end], "\n")
		endOffset := base + end + lineFeeds*eolDelta
		match := newMatch(buf.PositionAt(startOffset), buf.PositionAt(endOffset), text, loc, captureMatches)
		return &match
	}

	// Wrap to the start of the buffer. The retried call cannot wrap again.
	if !from.IsDocumentStart() {
		return findNextMatchMultiline(buf, m, buffer.Position{Line: 1, Column: 1}, captureMatches)
	}
	return nil
}

func findPreviousMatchMultiline(buf Buffer, c *Compiled, from buffer.Position, captureMatches bool) *Match {
	// Finding the rightmost match requires seeing every earlier one; the
	// safety cap bounds the work on pathological inputs.
	searchRange := buffer.Range{Start: buffer.Position{Line: 1, Column: 1}, End: from}
	matches := FindMatches(buf, c, searchRange, captureMatches, previousMatchSafetyCap)
	if len(matches) > 0 {
		return &matches[len(matches)-1]
	}

	// Wrap to the end of the buffer. The retried call cannot wrap again.
	if end := endPosition(buf); !from.Equals(end) {
		return findPreviousMatchMultiline(buf, c, end, captureMatches)
	}
	return nil
}

// Line-by-line strategy

func findMatchesLineByLine(buf Buffer, c *Compiled, searchRange buffer.Range, captureMatches bool, limit int) []Match {
	var result []Match
	m := NewMatcher(c)

	if searchRange.IsSingleLine() {
		line := searchRange.Start.Line
		text := buf.LineContent(line)[searchRange.Start.Column-1 : searchRange.End.Column-1]
		return findInLine(c, m, text, line, searchRange.Start.Column-1, captureMatches, limit, result)
	}

	firstLine := searchRange.Start.Line
	text := buf.LineContent(firstLine)[searchRange.Start.Column-1:]
	result = findInLine(c, m, text, firstLine, searchRange.Start.Column-1, captureMatches, limit, result)

	for line := firstLine + 1; line < searchRange.End.Line && len(result) < limit; line++ {
		result = findInLine(c, m, buf.LineContent(line), line, 0, captureMatches, limit, result)
	}

	if len(result) < limit {
		lastLine := searchRange.End.Line
		text = buf.LineContent(lastLine)[:searchRange.End.Column-1]
		result = findInLine(c, m, text, lastLine, 0, captureMatches, limit, result)
	}
	return result
}

// findInLine appends matches found in one line fragment. deltaOffset is the
// 0-based column of the fragment's first byte within the full line.
func findInLine(c *Compiled, m *Matcher, text string, lineNumber, deltaOffset int, captureMatches bool, limit int, result []Match) []Match {
	// Literal fast path: exact substring scanning, same boundary filter,
	// skipped when capture data is requested.
	if c.simpleSearch != "" && !captureMatches {
		searchString := c.simpleSearch
		searchStringLen := len(searchString)
		pos := 0
		for {
			i := strings.Index(text[pos:], searchString)
			if i < 0 {
				break
			}
			at := pos + i
			if c.classifier == nil || isValidMatch(c.classifier, text, at, at+searchStringLen) {
				result = append(result, Match{Range: buffer.NewRange(
					lineNumber, deltaOffset+at+1,
					lineNumber, deltaOffset+at+searchStringLen+1)})
				if len(result) >= limit {
					return result
				}
			}
			pos = at + searchStringLen
		}
		return result
	}

	m.Reset(0)
	for {
		loc := m.Next(text)
		if loc == nil {
			break
		}
		result = append(result, newMatch(
			buffer.Position{Line: lineNumber, Column: deltaOffset + loc[0] + 1},
			buffer.Position{Line: lineNumber, Column: deltaOffset + loc[1] + 1},
			text, loc, captureMatches))
		if len(result) >= limit {
			break
		}
	}
	return result
}

func findNextMatchLineByLine(buf Buffer, m *Matcher, from buffer.Position, captureMatches bool) *Match {
	lineCount := buf.LineCount()
	startLine := from.Line

	// The starting line is searched from the from-column only.
	if r := findFirstMatchInLine(m, buf.LineContent(startLine), startLine, from.Column, captureMatches); r != nil {
		return r
	}

	// Remaining lines, continuing cyclically through the buffer. The last
	// iteration revisits the starting line in full, completing the wrap.
	for i := 1; i <= lineCount; i++ {
		line := (startLine-1+i)%lineCount + 1
		if r := findFirstMatchInLine(m, buf.LineContent(line), line, 1, captureMatches); r != nil {
			return r
		}
	}
	return nil
}

func findFirstMatchInLine(m *Matcher, text string, lineNumber, fromColumn int, captureMatches bool) *Match {
	m.Reset(fromColumn - 1)
	if loc := m.Next(text); loc != nil {
		match := newMatch(
			buffer.Position{Line: lineNumber, Column: loc[0] + 1},
			buffer.Position{Line: lineNumber, Column: loc[1] + 1},
			text, loc, captureMatches)
		return &match
	}
	return nil
}

func findPreviousMatchLineByLine(buf Buffer, m *Matcher, from buffer.Position, captureMatches bool) *Match {
	lineCount := buf.LineCount()
	startLine := from.Line

	// The starting line is truncated to the text before the from-column.
	text := buf.LineContent(startLine)[:from.Column-1]
	if r := findLastMatchInLine(m, text, startLine, captureMatches); r != nil {
		return r
	}

	// Walk backward cyclically. The last iteration revisits the starting
	// line in full, completing the wrap.
	for i := 1; i <= lineCount; i++ {
		line := (lineCount+startLine-1-i)%lineCount + 1
		if r := findLastMatchInLine(m, buf.LineContent(line), line, captureMatches); r != nil {
			return r
		}
	}
	return nil
}

// findLastMatchInLine scans the whole fragment and keeps the rightmost
// valid match; matches cannot be yielded incrementally here.
func findLastMatchInLine(m *Matcher, text string, lineNumber int, captureMatches bool) *Match {
	var best *Match
	m.Reset(0)
	for {
		loc := m.Next(text)
		if loc == nil {
			break
		}
		match := newMatch(
			buffer.Position{Line: lineNumber, Column: loc[0] + 1},
			buffer.Position{Line: lineNumber, Column: loc[1] + 1},
			text, loc, captureMatches)
		best = &match
	}
	return best
}

// newMatch builds a Match from a submatch index slice, extracting capture
// group text only when requested.
func newMatch(start, end buffer.Position, text string, loc []int, captureMatches bool) Match {
	match := Match{Range: buffer.Range{Start: start, End: end}}
	if captureMatches {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			s, e := loc[2*i], loc[2*i+1]
			if s >= 0 {
				groups[i] = text[s:e]
			}
		}
		match.Captures = groups
	}
	return match
}

// endPosition returns the position just past the buffer's last character.
func endPosition(buf Buffer) buffer.Position {
	last := buf.LineCount()
	return buffer.Position{Line: last, Column: buf.LineMaxColumn(last)}
}
