// Package search implements line-oriented text search over a buffer.
//
// Queries are literal or regular-expression patterns, case-sensitive or
// not, optionally filtered to whole words by a configurable word-separator
// set. The package finds all matches in a range, or the next/previous match
// relative to a position with cyclic wraparound across the buffer ends.
//
// A Query is compiled into an executable request:
//
//	c := search.Query{Pattern: "foo", WordSeparators: search.DefaultWordSeparators}.Compile()
//	matches := search.FindMatches(buf, c, buf.FullRange(), false, 0)
//
// Compile returns nil for empty patterns and invalid regular expressions;
// every entry point treats a nil compiled query as "no matches". Patterns
// that can span line breaks (a literal embedded newline, or a \n or \r
// escape in a regex) are matched against the range joined into a single
// LF-separated string, and match offsets are translated back to buffer
// positions accounting for two-byte CRLF breaks. All other patterns are
// matched line by line, using exact substring scanning instead of the
// regexp engine when that is provably equivalent.
//
// Whole-word filtering is not expressed in the pattern (no \b); it is a
// post-filter on match edges driven by the classifier, so separator sets
// other than \w semantics are honored.
//
// The package performs no I/O and keeps no state across calls. A Matcher
// is owned by the call that creates it; concurrent scans need one each.
package search
