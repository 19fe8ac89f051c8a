package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the buffer's line ending style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithLF configures the buffer to use Unix line endings (\n).
func WithLF() Option {
	return WithLineEnding(LineEndingLF)
}

// WithCRLF configures the buffer to use Windows line endings (\r\n).
func WithCRLF() Option {
	return WithLineEnding(LineEndingCRLF)
}

// DetectLineEnding returns a LineEnding based on the most common line ending
// in the text. Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount int

	i := 0
	for i < len(text) {
		if i+1 < len(text) && text[i] == '\r' && text[i+1] == '\n' {
			crlfCount++
			i += 2
		} else if text[i] == '\n' {
			lfCount++
			i++
		} else {
			i++
		}
	}

	if crlfCount > 0 && crlfCount >= lfCount {
		return LineEndingCRLF
	}
	return LineEndingLF
}

// WithDetectedLineEnding sets the buffer's line ending style based on content.
func WithDetectedLineEnding(text string) Option {
	return WithLineEnding(DetectLineEnding(text))
}
