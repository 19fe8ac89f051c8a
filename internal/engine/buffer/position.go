package buffer

import (
	"fmt"
	"sync/atomic"
)

// Position represents a line and column location in a buffer.
// Both Line and Column are 1-based. Column is measured in bytes from the
// start of the line plus one, so Column 1 addresses the start of the line.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column (byte offset within line + 1)
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// Equals returns true if p and other address the same location.
func (p Position) Equals(other Position) bool {
	return p.Line == other.Line && p.Column == other.Column
}

// IsDocumentStart returns true if this is the first position of a document.
func (p Position) IsDocumentStart() bool {
	return p.Line == 1 && p.Column == 1
}

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

// revisionCounter is used to generate unique revision IDs.
var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
// This is thread-safe using atomic operations.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
