package buffer

import (
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Errors returned by buffer operations.
var (
	ErrPositionOutOfRange = errors.New("position out of range")
	ErrRangeInvalid       = errors.New("invalid range")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	if le == LineEndingCRLF {
		return "\\r\\n"
	}
	return "\\n"
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	if le == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// Buffer is a line-oriented text buffer.
// It always contains at least one (possibly empty) line.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	id         uuid.UUID
	lines      []string
	lineStarts []int // 0-based start offset per line, rebuilt on mutation
	revisionID RevisionID
	lineEnding LineEnding
}

// New creates a new empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		id:         uuid.New(),
		lines:      []string{""},
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
	}

	for _, opt := range opts {
		opt(b)
	}
	b.rebuildStartsLocked()

	return b
}

// FromString creates a buffer with initial content.
// Line breaks of any style in the input are recognized; the buffer's
// configured line ending governs offsets and serialization.
func FromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.lines = splitLines(s)
	b.rebuildStartsLocked()
	return b
}

// FromReader creates a buffer from an io.Reader.
func FromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromString(string(data), opts...), nil
}

// splitLines splits text at LF, CRLF, or lone CR breaks.
// The result always contains at least one element.
func splitLines(text string) []string {
	lines := []string{}
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	lines = append(lines, text[start:])
	return lines
}

// Read Operations

// ID returns the buffer's unique identity.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// LineCount returns the number of lines. It is always at least 1.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LineContent returns the text of a line without its line break.
// Returns "" for a line number outside the buffer.
func (b *Buffer) LineContent(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 1 || line > len(b.lines) {
		return ""
	}
	return b.lines[line-1]
}

// LineMaxColumn returns one plus the byte length of a line, i.e. the
// largest valid column on that line.
func (b *Buffer) LineMaxColumn(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 1 || line > len(b.lines) {
		return 1
	}
	return len(b.lines[line-1]) + 1
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// SetLineEnding sets the buffer's line ending style.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
	b.rebuildStartsLocked()
	b.revisionID = NewRevisionID()
}

// Len returns the total byte length of the buffer, including line breaks
// in the buffer's line ending style.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	starts := b.lineStarts
	last := len(b.lines) - 1
	return starts[last] + len(b.lines[last])
}

// Text returns the full buffer content joined with the buffer's line ending.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, b.lineEnding.Sequence())
}

// IsEmpty returns true if the buffer contains no text.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines) == 1 && b.lines[0] == ""
}

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// Coordinate Conversion

// rebuildStartsLocked recomputes the line-start offset index.
// Called from every mutation path so readers only ever consult the cache.
func (b *Buffer) rebuildStartsLocked() {
	eolLen := len(b.lineEnding.Sequence())
	starts := make([]int, len(b.lines))
	offset := 0
	for i, line := range b.lines {
		starts[i] = offset
		offset += len(line) + eolLen
	}
	b.lineStarts = starts
}

// OffsetAt converts a position to a 0-based document byte offset.
// The position is clamped to the buffer's bounds.
func (b *Buffer) OffsetAt(p Position) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	starts := b.lineStarts
	line := p.Line
	if line < 1 {
		return 0
	}
	if line > len(b.lines) {
		line = len(b.lines)
	}
	col := p.Column
	if col < 1 {
		col = 1
	}
	if max := len(b.lines[line-1]) + 1; col > max {
		col = max
	}
	return starts[line-1] + col - 1
}

// PositionAt converts a 0-based document byte offset to a position.
// Offsets inside a line break clamp to the end of the preceding line;
// offsets past the end of the buffer clamp to the last position.
func (b *Buffer) PositionAt(offset int) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	starts := b.lineStarts
	// First line whose start is past the offset, minus one.
	idx := sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
	col := offset - starts[idx]
	if col > len(b.lines[idx]) {
		col = len(b.lines[idx])
	}
	return Position{Line: idx + 1, Column: col + 1}
}

// FullRange returns the range covering the entire buffer.
func (b *Buffer) FullRange() Range {
	b.mu.RLock()
	defer b.mu.RUnlock()
	last := len(b.lines)
	return Range{
		Start: Position{Line: 1, Column: 1},
		End:   Position{Line: last, Column: len(b.lines[last-1]) + 1},
	}
}

// EndPosition returns the position just past the last character of the buffer.
func (b *Buffer) EndPosition() Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	last := len(b.lines)
	return Position{Line: last, Column: len(b.lines[last-1]) + 1}
}

// ValueInRange reads the text covered by a range, with line breaks
// normalized to the given style regardless of the buffer's own style.
func (b *Buffer) ValueInRange(r Range, eol LineEnding) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !r.IsValid() || r.IsEmpty() {
		return ""
	}

	startLine, startCol := b.clampLocked(r.Start)
	endLine, endCol := b.clampLocked(r.End)

	if startLine == endLine {
		return b.lines[startLine-1][startCol-1 : endCol-1]
	}

	var sb strings.Builder
	sep := eol.Sequence()
	sb.WriteString(b.lines[startLine-1][startCol-1:])
	for line := startLine + 1; line < endLine; line++ {
		sb.WriteString(sep)
		sb.WriteString(b.lines[line-1])
	}
	sb.WriteString(sep)
	sb.WriteString(b.lines[endLine-1][:endCol-1])
	return sb.String()
}

// clampLocked clamps a position to the buffer's bounds.
func (b *Buffer) clampLocked(p Position) (line, col int) {
	line = p.Line
	if line < 1 {
		line = 1
	}
	if line > len(b.lines) {
		line = len(b.lines)
	}
	col = p.Column
	if col < 1 {
		col = 1
	}
	if max := len(b.lines[line-1]) + 1; col > max {
		col = max
	}
	return line, col
}

// Write Operations

// Insert inserts text at the given position.
// Returns the position just past the inserted text.
func (b *Buffer) Insert(p Position, text string) (Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.validLocked(p) {
		return Position{}, ErrPositionOutOfRange
	}
	return b.spliceLocked(p, p, text), nil
}

// Delete removes the text covered by a range.
func (b *Buffer) Delete(r Range) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !r.IsValid() || !b.validLocked(r.Start) || !b.validLocked(r.End) {
		return ErrRangeInvalid
	}
	b.spliceLocked(r.Start, r.End, "")
	return nil
}

// Replace replaces the text covered by a range with new text.
// Returns the position just past the replacement text.
func (b *Buffer) Replace(r Range, text string) (Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !r.IsValid() || !b.validLocked(r.Start) || !b.validLocked(r.End) {
		return Position{}, ErrRangeInvalid
	}
	return b.spliceLocked(r.Start, r.End, text), nil
}

// validLocked reports whether a position addresses a location in the buffer.
func (b *Buffer) validLocked(p Position) bool {
	if p.Line < 1 || p.Line > len(b.lines) {
		return false
	}
	return p.Column >= 1 && p.Column <= len(b.lines[p.Line-1])+1
}

// spliceLocked replaces the text between two valid positions with new text
// and returns the position just past the inserted text.
func (b *Buffer) spliceLocked(start, end Position, text string) Position {
	head := b.lines[start.Line-1][:start.Column-1]
	tail := b.lines[end.Line-1][end.Column-1:]

	segs := splitLines(text)
	segs[0] = head + segs[0]
	endPos := Position{
		Line:   start.Line + len(segs) - 1,
		Column: len(segs[len(segs)-1]) + 1,
	}
	segs[len(segs)-1] += tail

	replaced := make([]string, 0, len(b.lines)-(end.Line-start.Line+1)+len(segs))
	replaced = append(replaced, b.lines[:start.Line-1]...)
	replaced = append(replaced, segs...)
	replaced = append(replaced, b.lines[end.Line:]...)
	b.lines = replaced

	b.rebuildStartsLocked()
	b.revisionID = NewRevisionID()
	return endPos
}
