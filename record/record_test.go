package record

import (
	"testing"

	"github.com/solidcoredata/reccodec/bufrange"
	"github.com/solidcoredata/reccodec/dt"
	"github.com/solidcoredata/reccodec/rectype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func col(t *testing.T, name, typeName string, props ...string) rectype.ColumnDescriptor {
	t.Helper()
	c, err := rectype.NewColumnDescriptor(name, typeName, props)
	require.NoError(t, err)
	return c
}

func TestNonNullableIntSingleByte(t *testing.T) {
	typ, err := rectype.NewRecordType("", []rectype.ColumnDescriptor{col(t, "x", "int")})
	require.NoError(t, err)
	rec, err := New(typ, int32(1))
	require.NoError(t, err)
	buf, err := rec.Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02}, buf)

	decoded := newEmpty(typ)
	require.NoError(t, decoded.Decode(buf, bufrange.Unset))
	v, err := decoded.Get(0)
	require.NoError(t, err)
	assert.Equal(t, int32(1), v)
}

func TestNullableStringNull(t *testing.T) {
	typ, err := rectype.NewRecordType("", []rectype.ColumnDescriptor{col(t, "s", "string", "nullable")})
	require.NoError(t, err)
	rec, err := New(typ, nil)
	require.NoError(t, err)
	buf, err := rec.Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02}, buf)

	decoded := newEmpty(typ)
	require.NoError(t, decoded.Decode(buf, bufrange.Unset))
	v, err := decoded.Get(0)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestNullableStringHi(t *testing.T) {
	typ, err := rectype.NewRecordType("", []rectype.ColumnDescriptor{col(t, "s", "string", "nullable")})
	require.NoError(t, err)
	rec, err := New(typ, "hi")
	require.NoError(t, err)
	buf, err := rec.Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x04, 'h', 'i'}, buf)

	decoded := newEmpty(typ)
	require.NoError(t, decoded.Decode(buf, bufrange.Unset))
	v, err := decoded.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "hi", v)
}

func TestDateColumnWireForm(t *testing.T) {
	typ, err := rectype.NewRecordType("", []rectype.ColumnDescriptor{col(t, "d", "date")})
	require.NoError(t, err)
	d, err := dt.PackDate(2020, 7, 6)
	require.NoError(t, err)
	rec, err := New(typ, d)
	require.NoError(t, err)
	buf, err := rec.Encode()
	require.NoError(t, err)
	require.Equal(t, 11, len(buf))
	assert.Equal(t, byte(0x14), buf[0])
	assert.Equal(t, "2020-07-06", string(buf[1:]))

	decoded := newEmpty(typ)
	require.NoError(t, decoded.Decode(buf, bufrange.Unset))
	v, err := decoded.Get(0)
	require.NoError(t, err)
	gotYear, gotMonth, gotDay, _, _ := v.(dt.Date).Unpack()
	assert.Equal(t, 2020, gotYear)
	assert.Equal(t, 7, gotMonth)
	assert.Equal(t, 6, gotDay)
}

func TestTimestampRoundTrip(t *testing.T) {
	typ, err := rectype.NewRecordType("", []rectype.ColumnDescriptor{col(t, "ts", "timestamp")})
	require.NoError(t, err)
	rec, err := New(typ, int64(0))
	require.NoError(t, err)
	buf, err := rec.Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, buf)

	decoded := newEmpty(typ)
	require.NoError(t, decoded.Decode(buf, bufrange.Unset))
	v, err := decoded.Get(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
}

func TestSizeMatchesEncodeAndInvalidatesOnSet(t *testing.T) {
	typ, err := rectype.NewRecordType("", []rectype.ColumnDescriptor{col(t, "x", "long")})
	require.NoError(t, err)
	rec, err := New(typ, int64(5))
	require.NoError(t, err)
	buf, err := rec.Encode()
	require.NoError(t, err)
	assert.Equal(t, len(buf), rec.Size())

	require.NoError(t, rec.Set(0, int64(1<<40)))
	buf2, err := rec.Encode()
	require.NoError(t, err)
	assert.Equal(t, len(buf2), rec.Size())
	assert.NotEqual(t, len(buf), len(buf2))
}

func TestUnknownNullableTagRejected(t *testing.T) {
	typ, err := rectype.NewRecordType("", []rectype.ColumnDescriptor{col(t, "s", "string", "nullable")})
	require.NoError(t, err)
	rec := newEmpty(typ)
	err = rec.Decode([]byte{0x04}, bufrange.Unset)
	assert.ErrorIs(t, err, ErrBadTag)
	v, getErr := rec.Get(0)
	require.NoError(t, getErr)
	assert.Nil(t, v, "record must be cleared after a failed decode")
}

func TestCharNLengthEnforced(t *testing.T) {
	typ, err := rectype.NewRecordType("", []rectype.ColumnDescriptor{col(t, "c", "char4")})
	require.NoError(t, err)
	rec, err := New(typ, "abcd")
	require.NoError(t, err)
	err = rec.Set(0, "abcde")
	assert.ErrorIs(t, err, ErrRange)
	v, getErr := rec.Get(0)
	require.NoError(t, getErr)
	assert.Equal(t, "abcd", v, "rejected set must leave the previous value unchanged")
}

func TestInt8RangeEnforced(t *testing.T) {
	typ, err := rectype.NewRecordType("", []rectype.ColumnDescriptor{col(t, "x", "int8")})
	require.NoError(t, err)
	rec, err := New(typ, int8(127))
	require.NoError(t, err)
	err = rec.Set(0, int64(128))
	assert.ErrorIs(t, err, ErrRange)
	v, err := rec.Get(0)
	require.NoError(t, err)
	assert.Equal(t, int8(127), v)
}

func TestNonNullableRejectsNull(t *testing.T) {
	typ, err := rectype.NewRecordType("", []rectype.ColumnDescriptor{col(t, "x", "int")})
	require.NoError(t, err)
	_, err = New(typ, nil)
	assert.ErrorIs(t, err, ErrNotNullable)
}

func TestMappingConstructorUnknownColumn(t *testing.T) {
	typ, err := rectype.NewRecordType("", []rectype.ColumnDescriptor{col(t, "x", "int")})
	require.NoError(t, err)
	_, err = NewFromMapping(typ, map[string]any{"y": int32(1)})
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestMappingConstructorAndAsDict(t *testing.T) {
	typ, err := rectype.NewRecordType("", []rectype.ColumnDescriptor{
		col(t, "x", "int"),
		col(t, "y", "string", "nullable"),
	})
	require.NoError(t, err)
	rec, err := NewFromMapping(typ, map[string]any{"x": int32(7), "y": "hi"})
	require.NoError(t, err)
	dict, err := rec.AsDict()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": int32(7), "y": "hi"}, dict)
}

func TestUpdateAndDel(t *testing.T) {
	typ, err := rectype.NewRecordType("", []rectype.ColumnDescriptor{
		col(t, "x", "int"),
		col(t, "y", "string", "nullable"),
	})
	require.NoError(t, err)
	rec, err := New(typ, int32(1), "hi")
	require.NoError(t, err)
	require.NoError(t, rec.Update(map[string]any{"x": int32(2)}))
	v, _ := rec.GetByName("x")
	assert.Equal(t, int32(2), v)

	require.NoError(t, rec.Del("y"))
	v, _ = rec.GetByName("y")
	assert.Nil(t, v)
}

func TestDecodeRecordsBulk(t *testing.T) {
	typ, err := rectype.NewRecordType("", []rectype.ColumnDescriptor{col(t, "x", "int")})
	require.NoError(t, err)

	var buf []byte
	var ranges []bufrange.BufferRange
	for i := int32(0); i < 5; i++ {
		rec, err := New(typ, i)
		require.NoError(t, err)
		enc, err := rec.Encode()
		require.NoError(t, err)
		ranges = append(ranges, bufrange.New(len(buf), len(enc)))
		buf = append(buf, enc...)
	}

	records, err := DecodeRecords(typ, buf, ranges)
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, rec := range records {
		v, err := rec.Get(0)
		require.NoError(t, err)
		assert.Equal(t, int32(i), v)
	}
}

func TestBytesValueEquality(t *testing.T) {
	typ, err := rectype.NewRecordType("", []rectype.ColumnDescriptor{col(t, "b", "bytes")})
	require.NoError(t, err)
	a, err := New(typ, []byte{1, 2, 3})
	require.NoError(t, err)
	b, err := New(typ, []byte{1, 2, 3})
	require.NoError(t, err)
	eq, err := a.Equal(b)
	require.NoError(t, err)
	assert.True(t, eq)
}
