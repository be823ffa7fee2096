// Package offsets provides inclusive character-offset arithmetic for
// standoff annotation spans.
package offsets

import (
	"fmt"
	"strconv"

	"github.com/calperum/textkit/core/errors"
)

// CharOffset is a zero-based character position inside a source document.
type CharOffset int

// NewCharOffset creates a CharOffset, rejecting negative positions.
func NewCharOffset(value int) (CharOffset, error) {
	if value < 0 {
		return 0, errors.NewValidation("offset", fmt.Sprintf("negative character offset %d", value))
	}
	return CharOffset(value), nil
}

// Int returns the offset as a plain int.
func (o CharOffset) Int() int {
	return int(o)
}

// Precedes reports whether o is strictly before other.
func (o CharOffset) Precedes(other CharOffset) bool {
	return o < other
}

// PrecedesOrEquals reports whether o is at or before other.
func (o CharOffset) PrecedesOrEquals(other CharOffset) bool {
	return o <= other
}

// Follows reports whether o is strictly after other.
func (o CharOffset) Follows(other CharOffset) bool {
	return o > other
}

// FollowsOrEquals reports whether o is at or after other.
func (o CharOffset) FollowsOrEquals(other CharOffset) bool {
	return o >= other
}

// String returns the offset in decimal form.
func (o CharOffset) String() string {
	return strconv.Itoa(int(o))
}
