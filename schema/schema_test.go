package schema

import (
	"testing"

	"github.com/solidcoredata/reccodec/bufrange"
	"github.com/solidcoredata/reccodec/record"
	"github.com/solidcoredata/reccodec/rectype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeafRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		node  *Node
		value any
	}{
		{"boolean", Boolean(), true},
		{"bytes", BytesNode(), []byte{1, 2, 3}},
		{"double", Double(), 3.5},
		{"float", Float(), float32(2.5)},
		{"int", Int(), int32(-12)},
		{"long", Long(), int64(1 << 40)},
		{"string", String(), "hello"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf, err := tc.node.Encode(tc.value)
			require.NoError(t, err)
			got, err := tc.node.Decode(buf, bufrange.Unset)
			require.NoError(t, err)
			assert.Equal(t, tc.value, got)
		})
	}
}

func TestNullableRoundTrip(t *testing.T) {
	n := Nullable(Int())

	buf, err := n.Encode(nil)
	require.NoError(t, err)
	got, err := n.Decode(buf, bufrange.Unset)
	require.NoError(t, err)
	assert.Nil(t, got)

	buf, err = n.Encode(int32(7))
	require.NoError(t, err)
	got, err = n.Decode(buf, bufrange.Unset)
	require.NoError(t, err)
	assert.Equal(t, int32(7), got)
}

func TestArrayRoundTrip(t *testing.T) {
	n := Array(String())
	buf, err := n.Encode([]any{"a", "b", "c"})
	require.NoError(t, err)
	got, err := n.Decode(buf, bufrange.Unset)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c"}, got)
}

func TestEmptyArrayRoundTrip(t *testing.T) {
	n := Array(Int())
	buf, err := n.Encode([]any{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, buf, "an empty array is just the block terminator")
	got, err := n.Decode(buf, bufrange.Unset)
	require.NoError(t, err)
	assert.Equal(t, []any{}, got)
}

func TestMapRoundTrip(t *testing.T) {
	n := Map(Long())
	buf, err := n.Encode(map[string]any{"a": int64(1), "b": int64(2)})
	require.NoError(t, err)
	got, err := n.Decode(buf, bufrange.Unset)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": int64(1), "b": int64(2)}, got)
}

func TestRecordRoundTripWithDefault(t *testing.T) {
	n, err := Record([]Field{
		{Name: "id", Node: Long()},
		{Name: "label", Node: Nullable(String()), HasDefault: true, Default: nil},
		{Name: "score", Node: Int(), HasDefault: true, Default: int32(100)},
	})
	require.NoError(t, err)

	buf, err := n.Encode(map[string]any{"id": int64(42)})
	require.NoError(t, err)
	got, err := n.Decode(buf, bufrange.Unset)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": int64(42), "label": nil, "score": int32(100)}, got)
}

func TestRecordRejectsDuplicateFieldNames(t *testing.T) {
	_, err := Record([]Field{
		{Name: "x", Node: Int()},
		{Name: "x", Node: Long()},
	})
	assert.ErrorIs(t, err, ErrSchema)
}

func TestRecordRejectsBadDefault(t *testing.T) {
	_, err := Record([]Field{
		{Name: "x", Node: Int(), HasDefault: true, Default: "not an int"},
	})
	assert.ErrorIs(t, err, ErrSchema)
}

func TestRecordMissingRequiredFieldErrors(t *testing.T) {
	n, err := Record([]Field{
		{Name: "id", Node: Long()},
	})
	require.NoError(t, err)
	_, err = n.Encode(map[string]any{})
	assert.ErrorIs(t, err, ErrValue)
}

func col(t *testing.T, name, typeName string, props ...string) rectype.ColumnDescriptor {
	t.Helper()
	c, err := rectype.NewColumnDescriptor(name, typeName, props)
	require.NoError(t, err)
	return c
}

func TestEmbeddedSchemaObjectRoundTrip(t *testing.T) {
	inner, err := Record([]Field{
		{Name: "label", Node: String()},
	})
	require.NoError(t, err)
	outer := Object(FromSchema(inner))

	buf, err := outer.Encode(map[string]any{"label": "hi"})
	require.NoError(t, err)

	got, err := outer.Decode(buf, bufrange.Unset)
	require.NoError(t, err)
	rng, ok := got.(bufrange.BufferRange)
	require.True(t, ok, "object decodes to a BufferRange, not a materialized value")

	inner2, err := inner.Decode(buf, rng)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"label": "hi"}, inner2)
}

func TestEmbeddedRecordTypeRoundTrip(t *testing.T) {
	rt, err := rectype.NewRecordType("point", []rectype.ColumnDescriptor{
		col(t, "x", "int"),
		col(t, "y", "int"),
	})
	require.NoError(t, err)
	n := Object(FromRecordType(rt))

	r, err := record.New(rt, int32(3), int32(4))
	require.NoError(t, err)

	buf, err := n.Encode(r)
	require.NoError(t, err)

	got, err := n.Decode(buf, bufrange.Unset)
	require.NoError(t, err)
	rng, ok := got.(bufrange.BufferRange)
	require.True(t, ok, "object decodes to a BufferRange, not a materialized value")

	recs, err := record.DecodeRecords(rt, buf, []bufrange.BufferRange{rng})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	x, err := recs[0].GetByName("x")
	require.NoError(t, err)
	assert.Equal(t, int32(3), x)
}

func TestObjectArrayRoundTrip(t *testing.T) {
	rt, err := rectype.NewRecordType("point", []rectype.ColumnDescriptor{
		col(t, "x", "int"),
	})
	require.NoError(t, err)
	n := ObjectArray(FromRecordType(rt))

	r1, err := record.New(rt, int32(1))
	require.NoError(t, err)
	r2, err := record.New(rt, int32(2))
	require.NoError(t, err)

	buf, err := n.Encode([]any{r1, r2})
	require.NoError(t, err)

	got, err := n.Decode(buf, bufrange.Unset)
	require.NoError(t, err)
	ranges, ok := got.([]bufrange.BufferRange)
	require.True(t, ok, "object_array decodes to a sequence of BufferRanges, not materialized values")
	require.Len(t, ranges, 2)

	recs, err := record.DecodeRecords(rt, buf, ranges)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	v0, err := recs[0].GetByName("x")
	require.NoError(t, err)
	assert.Equal(t, int32(1), v0)
	v1, err := recs[1].GetByName("x")
	require.NoError(t, err)
	assert.Equal(t, int32(2), v1)
}
