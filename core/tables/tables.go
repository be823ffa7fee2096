// Package tables loads multitables from three-field delimited text.
//
// Each input line must split into exactly three fields: row key, column
// key, and value. With a value-list separator configured, the value
// field may carry several values at once. Comment lines are not
// skipped.
package tables

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/calperum/textkit/core/collections"
	"github.com/calperum/textkit/core/converters"
	"github.com/calperum/textkit/core/errors"
)

const maxLineBytes = 1024 * 1024

// Loader reads (row, column, value) triples from delimited text and
// interprets each field with a converter.
type Loader[R comparable, C comparable, V comparable] struct {
	fieldSep string
	valueSep string

	row    converters.Func[R]
	column converters.Func[C]
	value  converters.Func[V]
}

// NewLoader creates a Loader from the three field interpreters. The
// field separator defaults to tab and no value-list separator is set.
func NewLoader[R comparable, C comparable, V comparable](
	row converters.Func[R],
	column converters.Func[C],
	value converters.Func[V],
) *Loader[R, C, V] {
	return &Loader[R, C, V]{
		fieldSep: "\t",
		row:      row,
		column:   column,
		value:    value,
	}
}

// ForStrings creates a Loader that keeps all three fields as strings.
func ForStrings() *Loader[string, string, string] {
	return NewLoader(converters.Identity, converters.Identity, converters.Identity)
}

// WithFieldSeparator replaces the separator used to split lines into
// the three fields.
func (l *Loader[R, C, V]) WithFieldSeparator(sep string) *Loader[R, C, V] {
	l.fieldSep = sep
	return l
}

// WithValueListSeparator makes the value field itself a list split on
// sep, e.g. "," for comma-separated values.
func (l *Loader[R, C, V]) WithValueListSeparator(sep string) *Loader[R, C, V] {
	l.valueSep = sep
	return l
}

// LoadList reads all triples into a ListMultitable, keeping duplicate
// values per cell.
func (l *Loader[R, C, V]) LoadList(r io.Reader) (*collections.ListMultitable[R, C, V], error) {
	table := collections.NewListMultitable[R, C, V]()
	if err := l.load(r, func(row R, col C, value V) {
		table.Put(row, col, value)
	}); err != nil {
		return nil, err
	}
	return table, nil
}

// LoadSet reads all triples into a SetMultitable, dropping duplicate
// values per cell.
func (l *Loader[R, C, V]) LoadSet(r io.Reader) (*collections.SetMultitable[R, C, V], error) {
	table := collections.NewSetMultitable[R, C, V]()
	if err := l.load(r, func(row R, col C, value V) {
		table.Put(row, col, value)
	}); err != nil {
		return nil, err
	}
	return table, nil
}

func (l *Loader[R, C, V]) load(r io.Reader, put func(R, C, V)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		fields := strings.Split(line, l.fieldSep)
		if len(fields) != 3 {
			return errors.NewParse("multitable", "",
				fmt.Sprintf("line %d: %q does not split into row, column, and value fields", lineNo, line))
		}

		row, err := interpret(fields[0], l.row, "row key", lineNo)
		if err != nil {
			return err
		}
		column, err := interpret(fields[1], l.column, "column key", lineNo)
		if err != nil {
			return err
		}

		if l.valueSep != "" {
			for _, raw := range strings.Split(fields[2], l.valueSep) {
				value, err := interpret(raw, l.value, "value", lineNo)
				if err != nil {
					return err
				}
				put(row, column, value)
			}
		} else {
			value, err := interpret(fields[2], l.value, "value", lineNo)
			if err != nil {
				return err
			}
			put(row, column, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.NewIO("read", "", err)
	}
	return nil
}

func interpret[T any](field string, fn converters.Func[T], fieldName string, lineNo int) (T, error) {
	v, err := fn(field)
	if err != nil {
		var zero T
		return zero, &errors.ParseError{
			Format:  "multitable",
			Message: fmt.Sprintf("line %d: bad %s %q", lineNo, fieldName, field),
			Err:     err,
		}
	}
	return v, nil
}
