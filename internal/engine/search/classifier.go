package search

// DefaultWordSeparators is the separator set used for whole-word matching
// when a caller has no configured preference.
const DefaultWordSeparators = "`~!@#$%^&*()-=+[{]}\\|;:'\",.<>/?"

// CharClass categorizes a character for word-boundary decisions.
type CharClass uint8

const (
	// CharRegular is a character that forms part of a word.
	CharRegular CharClass = iota
	// CharWhitespace is a blank or line-break character.
	CharWhitespace
	// CharSeparator is a configured word-separator character.
	CharSeparator
)

// String returns the string representation of the character class.
func (c CharClass) String() string {
	switch c {
	case CharRegular:
		return "regular"
	case CharWhitespace:
		return "whitespace"
	case CharSeparator:
		return "separator"
	default:
		return "unknown"
	}
}

// WordClassifier maps characters to character classes for a configured
// separator set. It is immutable after construction.
type WordClassifier struct {
	ascii      [128]CharClass
	separators map[rune]CharClass
}

// NewWordClassifier builds a classifier from a set of separator characters.
func NewWordClassifier(wordSeparators string) *WordClassifier {
	c := &WordClassifier{
		separators: make(map[rune]CharClass),
	}
	c.ascii[' '] = CharWhitespace
	c.ascii['\t'] = CharWhitespace
	c.ascii['\n'] = CharWhitespace
	c.ascii['\r'] = CharWhitespace
	for _, r := range wordSeparators {
		if r < 128 {
			c.ascii[r] = CharSeparator
		} else {
			c.separators[r] = CharSeparator
		}
	}
	return c
}

// Classify returns the character class of r.
func (c *WordClassifier) Classify(r rune) CharClass {
	if r >= 0 && r < 128 {
		return c.ascii[r]
	}
	return c.separators[r]
}
