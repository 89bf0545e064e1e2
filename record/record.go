package record

import (
	"fmt"

	"github.com/solidcoredata/reccodec/bufrange"
	"github.com/solidcoredata/reccodec/rectype"
	"github.com/solidcoredata/reccodec/wire"
)

const sizeUnset = -1

// Record is a mutable value container bound to a rectype.RecordType. It
// holds one columnValue per column plus a cached encoded size invalidated
// by any mutation.
//
// For variable-length columns (bytes, string, charN > 8) the first Get
// materializes a user-facing Go value (a string or a []byte) and caches it
// in obj; later Gets return the same cached value instead of re-copying
// out of raw. This is the Go realization of the lazy-materialize-and-alias
// contract: a garbage-collected runtime has no manual buffer ownership to
// transfer, so there is nothing to alias, but the "materialize once, reuse
// after" half of the contract still matters for avoiding repeat
// allocation on hot repeated-read paths.
type Record struct {
	typ        *rectype.RecordType
	raw        []columnValue
	obj        []any
	cachedSize int
}

// New constructs a record bound to typ with columns populated positionally
// from values, in column declaration order. Columns beyond len(values) are
// left null, which is only legal for nullable columns.
func New(typ *rectype.RecordType, values ...any) (*Record, error) {
	return NewFromSequence(typ, values)
}

// NewFromSequence is the single-slice form of New.
func NewFromSequence(typ *rectype.RecordType, values []any) (*Record, error) {
	r := newEmpty(typ)
	for i := 0; i < typ.Len(); i++ {
		if i < len(values) {
			if err := r.Set(i, values[i]); err != nil {
				return nil, err
			}
			continue
		}
		if err := r.requireNullable(i); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewFromMapping constructs a record from a column-name-to-value mapping.
// An unknown column name is a user error.
func NewFromMapping(typ *rectype.RecordType, values map[string]any) (*Record, error) {
	r := newEmpty(typ)
	seen := make(map[string]bool, len(values))
	for name, v := range values {
		idx, ok := typ.IndexOf(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		if err := r.Set(idx, v); err != nil {
			return nil, err
		}
		seen[name] = true
	}
	for i := 0; i < typ.Len(); i++ {
		if !seen[typ.Column(i).Name()] {
			if err := r.requireNullable(i); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

func newEmpty(typ *rectype.RecordType) *Record {
	return &Record{typ: typ, raw: make([]columnValue, typ.Len()), obj: make([]any, typ.Len()), cachedSize: sizeUnset}
}

func (r *Record) requireNullable(i int) error {
	_, nullable := r.typ.ScalarAt(i)
	if !nullable {
		return fmt.Errorf("%w: column %q", ErrNotNullable, r.typ.Column(i).Name())
	}
	r.raw[i] = nullValue()
	return nil
}

// Type returns the record's bound RecordType.
func (r *Record) Type() *rectype.RecordType { return r.typ }

// Get returns the materialized user value at column i, or nil if null.
// Variable-length columns cache their materialized value after the first
// call; later calls return the cached value without recomputing it.
func (r *Record) Get(i int) (any, error) {
	scalar, _ := r.typ.ScalarAt(i)
	if scalar.IsVariableLength() && r.obj[i] != nil {
		return r.obj[i], nil
	}
	v, err := getTable[scalar](r, i)
	if err != nil {
		return nil, err
	}
	if scalar.IsVariableLength() && v != nil {
		r.obj[i] = v
	}
	return v, nil
}

// GetByName looks up a column by name before calling Get.
func (r *Record) GetByName(name string) (any, error) {
	i, ok := r.typ.IndexOf(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return r.Get(i)
}

// Set assigns column i. v == nil sets the column to null, which is only
// legal for nullable columns.
func (r *Record) Set(i int, v any) error {
	scalar, nullable := r.typ.ScalarAt(i)
	if v == nil {
		if !nullable {
			return fmt.Errorf("%w: column %q", ErrNotNullable, r.typ.Column(i).Name())
		}
		r.raw[i] = nullValue()
		r.obj[i] = nil
		r.cachedSize = sizeUnset
		return nil
	}
	if err := setTable[scalar](r, i, v); err != nil {
		return err
	}
	r.obj[i] = nil
	r.cachedSize = sizeUnset
	return nil
}

// SetByName looks up a column by name before calling Set.
func (r *Record) SetByName(name string, v any) error {
	i, ok := r.typ.IndexOf(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return r.Set(i, v)
}

// Clear resets column i to null, which must be legal for that column.
func (r *Record) Clear(i int) error {
	return r.Set(i, nil)
}

// Del removes the named column's value, equivalent to Clear: mapping-style
// item deletion requires the column be nullable.
func (r *Record) Del(name string) error {
	return r.SetByName(name, nil)
}

// Size returns the exact encoded byte length, computing and caching it if
// necessary.
func (r *Record) Size() int {
	if r.cachedSize != sizeUnset {
		return r.cachedSize
	}
	n := 0
	for i := 0; i < r.typ.Len(); i++ {
		scalar, nullable := r.typ.ScalarAt(i)
		if nullable {
			n++ // one-byte varint tag
		}
		if r.raw[i].length == lengthNull {
			continue
		}
		n += sizeTable[scalar](r.raw[i])
	}
	r.cachedSize = n
	return n
}

// Encode writes the record's columns in declaration order into a freshly
// allocated buffer of exactly Size() bytes.
func (r *Record) Encode() ([]byte, error) {
	buf := make([]byte, r.Size())
	c := wire.NewCursor(buf)
	for i := 0; i < r.typ.Len(); i++ {
		scalar, nullable := r.typ.ScalarAt(i)
		isNull := r.raw[i].length == lengthNull
		if nullable {
			tag := int32(0)
			if isNull {
				tag = 1
			}
			if err := c.WriteVarint32(tag); err != nil {
				return nil, fmt.Errorf("%w: column %q: %v", ErrFormat, r.typ.Column(i).Name(), err)
			}
		}
		if isNull {
			continue
		}
		if err := writeTable[scalar](c, r.raw[i]); err != nil {
			return nil, fmt.Errorf("%w: column %q: %v", ErrFormat, r.typ.Column(i).Name(), err)
		}
	}
	return buf, nil
}

// Decode resets every column and reads the record's columns in declaration
// order from rng within buf, or from the whole of buf if rng is unset. On
// any wire error the record's columns are cleared before the error is
// returned.
func (r *Record) Decode(buf []byte, rng bufrange.BufferRange) error {
	var region []byte
	if rng.IsSet() {
		region = rng.Slice(buf)
	} else {
		region = buf
	}
	c := wire.NewCursor(region)
	if err := r.decodeFrom(c); err != nil {
		r.clearAll()
		return err
	}
	return nil
}

func (r *Record) decodeFrom(c *wire.Cursor) error {
	for i := 0; i < r.typ.Len(); i++ {
		scalar, nullable := r.typ.ScalarAt(i)
		isNull := false
		if nullable {
			tag, err := c.ReadVarint32()
			if err != nil {
				return fmt.Errorf("%w: column %q: %v", ErrFormat, r.typ.Column(i).Name(), err)
			}
			switch tag {
			case 0:
			case 1:
				isNull = true
			default:
				return fmt.Errorf("%w: column %q", ErrBadTag, r.typ.Column(i).Name())
			}
		}
		if isNull {
			r.raw[i] = nullValue()
			r.obj[i] = nil
			continue
		}
		cv, err := readTable[scalar](c)
		if err != nil {
			return fmt.Errorf("%w: column %q: %v", ErrFormat, r.typ.Column(i).Name(), err)
		}
		r.raw[i] = cv
		r.obj[i] = nil
	}
	r.cachedSize = sizeUnset
	return nil
}

func (r *Record) clearAll() {
	for i := range r.raw {
		r.raw[i] = nullValue()
		r.obj[i] = nil
	}
	r.cachedSize = sizeUnset
}

// Keys returns the bound type's column names in declaration order.
func (r *Record) Keys() []string { return r.typ.Keys() }

// Values returns every column's materialized value in declaration order.
func (r *Record) Values() ([]any, error) {
	out := make([]any, r.typ.Len())
	for i := range out {
		v, err := r.Get(i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Items returns (name, value) pairs in declaration order.
func (r *Record) Items() ([]KeyValue, error) {
	out := make([]KeyValue, r.typ.Len())
	for i := range out {
		v, err := r.Get(i)
		if err != nil {
			return nil, err
		}
		out[i] = KeyValue{Key: r.typ.Column(i).Name(), Value: v}
	}
	return out, nil
}

// KeyValue is one entry returned by Items.
type KeyValue struct {
	Key   string
	Value any
}

// AsDict returns every column as a name-to-value map.
func (r *Record) AsDict() (map[string]any, error) {
	out := make(map[string]any, r.typ.Len())
	items, err := r.Items()
	if err != nil {
		return nil, err
	}
	for _, kv := range items {
		out[kv.Key] = kv.Value
	}
	return out, nil
}

// Update assigns every (name, value) pair in values, the mapping-style bulk
// setter.
func (r *Record) Update(values map[string]any) error {
	for name, v := range values {
		if err := r.SetByName(name, v); err != nil {
			return err
		}
	}
	return nil
}

// SetSlice assigns values to the contiguous column range [start, end) in
// order, the sequence-style slice-assignment form.
func (r *Record) SetSlice(start, end int, values []any) error {
	if end-start != len(values) {
		return fmt.Errorf("%w: slice [%d:%d] needs %d values, got %d", ErrTypeMismatch, start, end, end-start, len(values))
	}
	for i := start; i < end; i++ {
		if err := r.Set(i, values[i-start]); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports whether two records have the same bound type and equal
// materialized values in every column.
func (r *Record) Equal(other *Record) (bool, error) {
	if !r.typ.Equal(other.typ) {
		return false, nil
	}
	for i := 0; i < r.typ.Len(); i++ {
		a, err := r.Get(i)
		if err != nil {
			return false, err
		}
		b, err := other.Get(i)
		if err != nil {
			return false, err
		}
		if !valuesEqual(a, b) {
			return false, nil
		}
	}
	return true, nil
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ab, aok := a.([]byte)
	bb, bok := b.([]byte)
	if aok && bok {
		if len(ab) != len(bb) {
			return false
		}
		for i := range ab {
			if ab[i] != bb[i] {
				return false
			}
		}
		return true
	}
	return a == b
}
