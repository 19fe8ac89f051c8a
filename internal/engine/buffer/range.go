package buffer

import "fmt"

// Range represents a span of text between two positions.
// Start is inclusive, End is exclusive. An empty range (Start == End) is
// valid and addresses a single location without covering any text.
type Range struct {
	Start Position // Inclusive start position
	End   Position // Exclusive end position
}

// NewRange creates a Range from start and end line/column pairs.
func NewRange(startLine, startColumn, endLine, endColumn int) Range {
	return Range{
		Start: Position{Line: startLine, Column: startColumn},
		End:   Position{Line: endLine, Column: endColumn},
	}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s)", r.Start, r.End)
}

// IsEmpty returns true if the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start.Equals(r.End)
}

// IsValid returns true if the range is ordered (Start <= End).
func (r Range) IsValid() bool {
	return r.Start.Compare(r.End) <= 0
}

// IsSingleLine returns true if the range starts and ends on the same line.
func (r Range) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

// ContainsPosition returns true if the given position lies within the range.
func (r Range) ContainsPosition(p Position) bool {
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) < 0
}

// ContainsRange returns true if the given range lies entirely within this range.
func (r Range) ContainsRange(other Range) bool {
	return other.Start.Compare(r.Start) >= 0 && other.End.Compare(r.End) <= 0
}
