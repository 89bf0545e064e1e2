package rectype

import (
	"errors"
	"fmt"
)

// ErrEmptyColumnList is returned when constructing a RecordType with no
// columns.
var ErrEmptyColumnList = errors.New("rectype: record type must have at least one column")

// ErrDuplicateColumnName is returned when two columns share a name.
var ErrDuplicateColumnName = errors.New("rectype: duplicate column name")

// dispatchEntry is the compact per-column (scalar type, nullable) pair used
// by the record package's lock-free get/set/clear/read/write/size dispatch
// tables; it never needs to re-derive nullability from the property list on
// a hot path.
type dispatchEntry struct {
	Scalar   ScalarType
	Nullable bool
}

// RecordType is an immutable, shareable description of a record shape: a
// label, an ordered column list, a name-to-index map for O(1) lookup, and a
// compact dispatch table mirroring the columns.
type RecordType struct {
	label     string
	columns   []ColumnDescriptor
	index     map[string]int
	dispatch  []dispatchEntry
}

// NewRecordType constructs a RecordType from an explicit, ordered column
// list. It rejects an empty list and duplicate column names.
func NewRecordType(label string, columns []ColumnDescriptor) (*RecordType, error) {
	if len(columns) == 0 {
		return nil, ErrEmptyColumnList
	}
	index := make(map[string]int, len(columns))
	dispatch := make([]dispatchEntry, len(columns))
	for i, col := range columns {
		if _, exists := index[col.name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumnName, col.name)
		}
		index[col.name] = i
		dispatch[i] = dispatchEntry{Scalar: col.scalar, Nullable: col.nullable}
	}
	return &RecordType{
		label:    label,
		columns:  append([]ColumnDescriptor(nil), columns...),
		index:    index,
		dispatch: dispatch,
	}, nil
}

// Label is the record type's (possibly empty) label.
func (t *RecordType) Label() string { return t.label }

// Len is the number of columns.
func (t *RecordType) Len() int { return len(t.columns) }

// Column returns the column descriptor at position i.
func (t *RecordType) Column(i int) ColumnDescriptor { return t.columns[i] }

// Columns returns the ordered column list. The returned slice must not be
// mutated.
func (t *RecordType) Columns() []ColumnDescriptor { return t.columns }

// IndexOf returns the column index for name, or (-1, false) if unknown.
func (t *RecordType) IndexOf(name string) (int, bool) {
	i, ok := t.index[name]
	if !ok {
		return -1, false
	}
	return i, true
}

// Keys returns the column names in declaration order.
func (t *RecordType) Keys() []string {
	keys := make([]string, len(t.columns))
	for i, c := range t.columns {
		keys[i] = c.name
	}
	return keys
}

// ScalarAt returns the dispatch-table entry for column i, the form used by
// the record package's table-driven encode/decode loops.
func (t *RecordType) ScalarAt(i int) (ScalarType, bool) {
	e := t.dispatch[i]
	return e.Scalar, e.Nullable
}

// Equal reports value equality: same label and same columns in the same
// order.
func (t *RecordType) Equal(other *RecordType) bool {
	if t == other {
		return true
	}
	if other == nil || t.label != other.label || len(t.columns) != len(other.columns) {
		return false
	}
	for i := range t.columns {
		if !t.columns[i].Equal(other.columns[i]) {
			return false
		}
	}
	return true
}
