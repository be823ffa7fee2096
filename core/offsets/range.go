package offsets

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/calperum/textkit/core/errors"
)

// Range is an inclusive pair of character offsets. A single character at
// position n is the range [n,n].
type Range struct {
	start CharOffset
	end   CharOffset
}

// NewRange creates an inclusive Range. Both offsets must be non-negative
// and start must not follow end.
func NewRange(start, end int) (Range, error) {
	s, err := NewCharOffset(start)
	if err != nil {
		return Range{}, err
	}
	e, err := NewCharOffset(end)
	if err != nil {
		return Range{}, err
	}
	if s.Follows(e) {
		return Range{}, errors.NewValidation("range", fmt.Sprintf("end %d precedes start %d", end, start))
	}
	return Range{start: s, end: e}, nil
}

// Start returns the first offset covered by the range.
func (r Range) Start() CharOffset {
	return r.start
}

// End returns the last offset covered by the range.
func (r Range) End() CharOffset {
	return r.end
}

// Len returns the number of characters covered by the range.
func (r Range) Len() int {
	return int(r.end-r.start) + 1
}

// Contains reports whether other lies entirely within r.
func (r Range) Contains(other Range) bool {
	return r.start.PrecedesOrEquals(other.start) && other.end.PrecedesOrEquals(r.end)
}

// ContainsOffset reports whether the offset lies within r.
func (r Range) ContainsOffset(o CharOffset) bool {
	return r.start.PrecedesOrEquals(o) && o.PrecedesOrEquals(r.end)
}

// Overlaps reports whether r and other share at least one character.
func (r Range) Overlaps(other Range) bool {
	return r.start.PrecedesOrEquals(other.end) && other.start.PrecedesOrEquals(r.end)
}

// Shift returns a copy of r moved by delta characters. Shifting below
// zero fails.
func (r Range) Shift(delta int) (Range, error) {
	return NewRange(int(r.start)+delta, int(r.end)+delta)
}

// String returns the range as "[start,end]".
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.start, r.end)
}

// rangeGrammar is the participle grammar for character ranges.
// Examples: "12-34", "12:34", "12"
//
//nolint:govet // participle grammar tags are not standard struct tags
type rangeGrammar struct {
	Start int  `parser:"@Int"`
	End   *int `parser:"( ( \"-\" | \":\" ) @Int )?"`
}

// rangeLexer defines the lexer for character ranges.
var rangeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Sep", Pattern: `[-:]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// rangeParser is the participle parser for character ranges.
var rangeParser = participle.MustBuild[rangeGrammar](
	participle.Lexer(rangeLexer),
	participle.Elide("Whitespace"),
)

// ParseRange parses an inclusive character range string.
// Supported formats:
//   - "12-34" (dash-separated pair)
//   - "12:34" (colon-separated pair)
//   - "12" (single offset, start and end coincide)
func ParseRange(s string) (Range, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Range{}, errors.NewParse("range", "", "empty range string")
	}

	parsed, err := rangeParser.ParseString("", trimmed)
	if err != nil {
		return Range{}, errors.NewParse("range", "", fmt.Sprintf("%q is not a character range: %v", trimmed, err))
	}

	end := parsed.Start
	if parsed.End != nil {
		end = *parsed.End
	}
	return NewRange(parsed.Start, end)
}
