// Package buffer provides a thread-safe, line-oriented text buffer used as
// the search engine's document model.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Line-based storage with a line-start offset index
//   - Coordinate conversion between document offsets and line/column positions
//   - Line ending detection and normalization (LF, CRLF)
//   - Range reads with a forced line-ending style
//   - Revision tracking for change management
//
// Basic usage:
//
//	// Create a buffer with some text
//	buf := buffer.FromString("foo bar\nbar foo")
//
//	// Read a line
//	line := buf.LineContent(2) // "bar foo"
//
//	// Insert text at a position
//	buf.Insert(buffer.Position{Line: 1, Column: 1}, "baz ")
//
// Position Types:
//
// Positions are 1-based: Line 1 is the first line and Column 1 is before the
// first character of a line. A column is a byte offset within the line plus
// one, so Column LineMaxColumn(n) addresses the end of line n. Offsets are
// 0-based byte offsets into the document and account for the buffer's line
// ending style (two bytes per break for CRLF).
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read lock,
// while write operations acquire an exclusive write lock. A search running
// against the buffer must not race with writers; callers serialize mutation
// against in-flight reads.
package buffer
