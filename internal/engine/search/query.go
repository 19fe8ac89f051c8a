package search

import (
	"regexp"
	"regexp/syntax"
	"strings"
)

// Query describes a single search request as supplied by the user.
type Query struct {
	// Pattern is the text or regular expression to search for.
	Pattern string
	// IsRegex treats Pattern as a regular expression instead of literal text.
	IsRegex bool
	// MatchCase makes matching case-sensitive.
	MatchCase bool
	// WordSeparators enables whole-word filtering using the given separator
	// characters. Empty disables word-boundary filtering.
	WordSeparators string
}

// Compiled is an executable search request produced by Query.Compile.
type Compiled struct {
	re         *regexp.Regexp
	classifier *WordClassifier
	// simpleSearch is set when plain substring scanning is provably
	// equivalent to the regex: literal, single-line, and either
	// case-sensitive or a pattern with no upper/lower distinction.
	simpleSearch string
	multiline    bool
	// leftContext marks patterns containing operators that inspect the
	// text to the left of a position (line starts, word boundaries).
	// Such patterns cannot be re-scanned from a mid-text offset without
	// severing that context.
	leftContext bool
}

// Multiline reports whether matches may span line breaks.
func (c *Compiled) Multiline() bool {
	return c.multiline
}

// Compile validates the query and builds an executable matcher.
// Returns nil for an empty pattern or an unparseable regular expression;
// compilation failure is never surfaced as an error value.
func (q Query) Compile() *Compiled {
	if q.Pattern == "" {
		return nil
	}

	multiline := q.isMultiline()

	expr := q.Pattern
	if !q.IsRegex {
		expr = regexp.QuoteMeta(expr)
	}

	var flags string
	if !q.MatchCase {
		flags += "i"
	}
	if multiline {
		flags += "m"
	}
	if flags != "" {
		expr = "(?" + flags + ")" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil
	}

	c := &Compiled{
		re:          re,
		multiline:   multiline,
		leftContext: usesLeftContext(expr),
	}

	if !q.IsRegex && !multiline &&
		(q.MatchCase || strings.ToLower(q.Pattern) == strings.ToUpper(q.Pattern)) {
		c.simpleSearch = q.Pattern
	}

	if q.WordSeparators != "" {
		c.classifier = NewWordClassifier(q.WordSeparators)
	}

	return c
}

// usesLeftContext reports whether the compiled expression contains an
// operator whose outcome depends on the character before the current
// position: line or text start anchors, or word boundary assertions.
func usesLeftContext(expr string) bool {
	parsed, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return true
	}
	return hasLeftContextOp(parsed)
}

func hasLeftContextOp(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginLine, syntax.OpBeginText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return true
	}
	for _, sub := range re.Sub {
		if hasLeftContextOp(sub) {
			return true
		}
	}
	return false
}

// isMultiline reports whether the pattern can match across line breaks.
// Regex patterns are multiline when they contain an unescaped \n or \r
// escape sequence; literal patterns when they embed a real newline.
func (q Query) isMultiline() bool {
	if !q.IsRegex {
		return strings.Contains(q.Pattern, "\n")
	}
	p := q.Pattern
	for i := 0; i < len(p); i++ {
		if p[i] != '\\' {
			continue
		}
		// Backslash itself: the next byte is the escaped character.
		i++
		if i >= len(p) {
			break
		}
		if p[i] == 'n' || p[i] == 'r' {
			return true
		}
	}
	return false
}
