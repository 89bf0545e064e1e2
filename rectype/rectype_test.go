package rectype

import (
	"testing"

	"github.com/solidcoredata/reccodec/bufrange"
	"github.com/solidcoredata/reccodec/internal/wireblock"
	"github.com/solidcoredata/reccodec/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColumnDescriptorDerivesNullable(t *testing.T) {
	col, err := NewColumnDescriptor("x", "int", []string{"nullable"})
	require.NoError(t, err)
	assert.True(t, col.Nullable())
	assert.Equal(t, Int, col.Type())
}

func TestNewColumnDescriptorRejectsUnknownType(t *testing.T) {
	_, err := NewColumnDescriptor("x", "bogus", nil)
	assert.ErrorIs(t, err, ErrUnknownScalarType)
}

func TestNewColumnDescriptorRejectsEmptyName(t *testing.T) {
	_, err := NewColumnDescriptor("", "int", nil)
	assert.ErrorIs(t, err, ErrEmptyColumnName)
}

func TestNewRecordTypeRejectsEmptyAndDuplicates(t *testing.T) {
	_, err := NewRecordType("t", nil)
	assert.ErrorIs(t, err, ErrEmptyColumnList)

	x, _ := NewColumnDescriptor("x", "int", nil)
	x2, _ := NewColumnDescriptor("x", "long", nil)
	_, err = NewRecordType("t", []ColumnDescriptor{x, x2})
	assert.ErrorIs(t, err, ErrDuplicateColumnName)
}

func TestRecordTypeIndexAndEquality(t *testing.T) {
	x, _ := NewColumnDescriptor("x", "int", nil)
	y, _ := NewColumnDescriptor("y", "string", []string{"nullable"})
	rt, err := NewRecordType("t", []ColumnDescriptor{x, y})
	require.NoError(t, err)

	idx, ok := rt.IndexOf("y")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, []string{"x", "y"}, rt.Keys())

	rt2, err := NewRecordType("t", []ColumnDescriptor{x, y})
	require.NoError(t, err)
	assert.True(t, rt.Equal(rt2))
}

func TestFromTypeSchemaBaseTypes(t *testing.T) {
	def := `{"type":"record","fields":[
		{"name":"a","type":"string"},
		{"name":"b","type":["null","long"]}
	]}`
	rt, err := FromTypeSchema("mytype", def, nil)
	require.NoError(t, err)
	assert.Equal(t, String, rt.Column(0).Type())
	assert.False(t, rt.Column(0).Nullable())
	assert.Equal(t, Long, rt.Column(1).Type())
	assert.True(t, rt.Column(1).Nullable())
}

func TestFromTypeSchemaPropertyOverride(t *testing.T) {
	def := `{"type":"record","fields":[{"name":"d","type":"string"}]}`
	props := map[string][]string{"d": {"date"}}
	rt, err := FromTypeSchema("", def, props)
	require.NoError(t, err)
	assert.Equal(t, Date, rt.Column(0).Type())
}

func TestToTypeSchemaRoundTripsNonBaseTypes(t *testing.T) {
	col, _ := NewColumnDescriptor("created", "date", nil)
	rt, err := NewRecordType("evt", []ColumnDescriptor{col})
	require.NoError(t, err)

	ts, err := rt.ToTypeSchema()
	require.NoError(t, err)
	assert.Contains(t, ts.TypeDefinition, `"type":"string"`)
	assert.Contains(t, ts.Properties["created"], "date")

	rt2, err := FromTypeSchema(ts.Label, ts.TypeDefinition, ts.Properties)
	require.NoError(t, err)
	assert.Equal(t, Date, rt2.Column(0).Type())
}

func TestToTypeSchemaRoundTripsCharN(t *testing.T) {
	col, _ := NewColumnDescriptor("code", "char16", nil)
	rt, err := NewRecordType("evt", []ColumnDescriptor{col})
	require.NoError(t, err)

	ts, err := rt.ToTypeSchema()
	require.NoError(t, err)
	assert.Contains(t, ts.TypeDefinition, `"type":"string"`)
	assert.Contains(t, ts.Properties["code"], "char16")

	rt2, err := FromTypeSchema(ts.Label, ts.TypeDefinition, ts.Properties)
	require.NoError(t, err)
	assert.Equal(t, Char16, rt2.Column(0).Type())
}

func TestUniquifyNames(t *testing.T) {
	got := uniquifyNames([]string{"a", "a", "b"})
	assert.Equal(t, []string{"a", "a_2", "b"}, got)
}

func TestUniquifyNamesChain(t *testing.T) {
	got := uniquifyNames([]string{"a", "a_2", "a"})
	assert.Equal(t, []string{"a", "a_2", "a_3"}, got)
}

func TestFromDynamicSchema(t *testing.T) {
	def := `{"type":"record","fields":[
		{"name":"col0","type":"long"},
		{"name":"col1","type":"string"},
		{"name":"names","type":{"type":"array","items":"string"}},
		{"name":"types","type":{"type":"array","items":"string"}}
	]}`
	buf := make([]byte, 128)
	c := wire.NewCursor(buf)
	// column 0's and column 1's value arrays: each a negative-count block
	// with declared byte size, carrying two opaque 4-byte items.
	for i := 0; i < 2; i++ {
		require.NoError(t, c.WriteVarint64(-2))
		require.NoError(t, c.WriteVarint64(8))
		c.Pos += 8
		require.NoError(t, c.WriteVarint64(0))
	}

	require.NoError(t, wireblock.WriteBlocks(c, []string{"a", "a"}, func(cc *wire.Cursor, s string) error {
		return cc.WriteBytes([]byte(s))
	}))
	require.NoError(t, wireblock.WriteBlocks(c, []string{"long", "string"}, func(cc *wire.Cursor, s string) error {
		return cc.WriteBytes([]byte(s))
	}))

	rt, err := FromDynamicSchema(def, buf[:c.Pos], bufrange.Unset)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a_2"}, rt.Keys())
	assert.Equal(t, Long, rt.Column(0).Type())
	assert.Equal(t, String, rt.Column(1).Type())
}

func TestFromDynamicSchemaRejectsPositiveCountColumn(t *testing.T) {
	def := `{"type":"record","fields":[
		{"name":"col0","type":"long"},
		{"name":"names","type":{"type":"array","items":"string"}},
		{"name":"types","type":{"type":"array","items":"string"}}
	]}`
	buf := make([]byte, 32)
	c := wire.NewCursor(buf)
	require.NoError(t, c.WriteVarint64(2)) // positive count, unsupported
	_, err := FromDynamicSchema(def, buf[:c.Pos], bufrange.Unset)
	assert.ErrorIs(t, err, wire.Overflow)
}
