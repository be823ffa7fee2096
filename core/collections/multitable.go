package collections

// ListMultitable maps (row, column) pairs to ordered lists of values.
// Each row is backed by a ListMultimap over columns.
type ListMultitable[R comparable, C comparable, V any] struct {
	rows map[R]*ListMultimap[C, V]
	size int
}

// NewListMultitable creates an empty ListMultitable.
func NewListMultitable[R comparable, C comparable, V any]() *ListMultitable[R, C, V] {
	return &ListMultitable[R, C, V]{rows: make(map[R]*ListMultimap[C, V])}
}

// Put appends value under (row, col).
func (t *ListMultitable[R, C, V]) Put(row R, col C, value V) {
	m, ok := t.rows[row]
	if !ok {
		m = NewListMultimap[C, V]()
		t.rows[row] = m
	}
	m.Put(col, value)
	t.size++
}

// Get returns a copy of the values stored under (row, col) in insertion
// order, or nil when the cell is absent.
func (t *ListMultitable[R, C, V]) Get(row R, col C) []V {
	m, ok := t.rows[row]
	if !ok {
		return nil
	}
	return m.Get(col)
}

// Row returns the column multimap for row. The second result is false
// when the row is absent.
func (t *ListMultitable[R, C, V]) Row(row R) (*ListMultimap[C, V], bool) {
	m, ok := t.rows[row]
	return m, ok
}

// Rows returns the distinct row keys in unspecified order.
func (t *ListMultitable[R, C, V]) Rows() []R {
	rows := make([]R, 0, len(t.rows))
	for row := range t.rows {
		rows = append(rows, row)
	}
	return rows
}

// Len returns the total number of (row, column, value) triples.
func (t *ListMultitable[R, C, V]) Len() int {
	return t.size
}

// SetMultitable maps (row, column) pairs to sets of values. Putting a
// duplicate triple is a no-op.
type SetMultitable[R comparable, C comparable, V comparable] struct {
	rows map[R]*SetMultimap[C, V]
	size int
}

// NewSetMultitable creates an empty SetMultitable.
func NewSetMultitable[R comparable, C comparable, V comparable]() *SetMultitable[R, C, V] {
	return &SetMultitable[R, C, V]{rows: make(map[R]*SetMultimap[C, V])}
}

// Put records value under (row, col).
func (t *SetMultitable[R, C, V]) Put(row R, col C, value V) {
	m, ok := t.rows[row]
	if !ok {
		m = NewSetMultimap[C, V]()
		t.rows[row] = m
	}
	before := m.Len()
	m.Put(col, value)
	t.size += m.Len() - before
}

// Get returns the values stored under (row, col) in unspecified order,
// or nil when the cell is absent.
func (t *SetMultitable[R, C, V]) Get(row R, col C) []V {
	m, ok := t.rows[row]
	if !ok {
		return nil
	}
	return m.Get(col)
}

// Row returns the column multimap for row. The second result is false
// when the row is absent.
func (t *SetMultitable[R, C, V]) Row(row R) (*SetMultimap[C, V], bool) {
	m, ok := t.rows[row]
	return m, ok
}

// Rows returns the distinct row keys in unspecified order.
func (t *SetMultitable[R, C, V]) Rows() []R {
	rows := make([]R, 0, len(t.rows))
	for row := range t.rows {
		rows = append(rows, row)
	}
	return rows
}

// Len returns the number of distinct (row, column, value) triples.
func (t *SetMultitable[R, C, V]) Len() int {
	return t.size
}
