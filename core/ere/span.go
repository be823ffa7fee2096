package ere

import "fmt"

// Span is an inclusive character range over the source document text
// together with the text it covers. Both ends are inclusive: a span of
// length 1 has Start == End.
type Span struct {
	start int
	end   int
	text  string
}

// NewSpan constructs a Span. Offsets are not validated; annotation
// sources occasionally emit zero- or negative-length spans and callers
// are expected to deal with them.
func NewSpan(start, end int, text string) Span {
	return Span{start: start, end: end, text: text}
}

// Start returns the inclusive start offset.
func (s Span) Start() int { return s.start }

// End returns the inclusive end offset.
func (s Span) End() int { return s.end }

// Text returns the covered text.
func (s Span) Text() string { return s.text }

// Len returns the number of characters the span covers.
func (s Span) Len() int { return s.end - s.start + 1 }

// String returns a compact "[start,end] text" form for logs.
func (s Span) String() string {
	return fmt.Sprintf("[%d,%d] %q", s.start, s.end, s.text)
}
