package rectype

import (
	"encoding/json"
	"fmt"

	"github.com/solidcoredata/reccodec/bufrange"
	"github.com/solidcoredata/reccodec/internal/wireblock"
	"github.com/solidcoredata/reccodec/wire"
)

// DynamicFieldCount returns the number of data columns (N) declared by a
// dynamic-schema type definition, i.e. the field count minus the trailing
// names and types fields.
func DynamicFieldCount(typeDefinitionJSON string) (int, error) {
	var schema avroRecordSchema
	if err := json.Unmarshal([]byte(typeDefinitionJSON), &schema); err != nil {
		return 0, fmt.Errorf("rectype: malformed dynamic type definition: %w", err)
	}
	if len(schema.Fields) < 2 {
		return 0, fmt.Errorf("rectype: dynamic schema must declare at least a names and types field")
	}
	return len(schema.Fields) - 2, nil
}

// FromDynamicSchema constructs a RecordType from a columnar "dynamic"
// response: typeDefinitionJSON describes an Avro record with N+2 fields (N
// data columns plus a trailing column-names array and a trailing
// column-type-names array). buf holds the wire-encoded record; rng
// restricts parsing to a sub-range of buf, or use bufrange.Unset to parse
// the whole buffer.
//
// Each of the N column value arrays is skipped rather than decoded — its
// scalar type is not known until the trailing type-names array has been
// read — so every column array in buf must use the negative-count,
// byte-size-declared block form; a positive-count block is reported as a
// format error.
func FromDynamicSchema(typeDefinitionJSON string, buf []byte, rng bufrange.BufferRange) (*RecordType, error) {
	var schema avroRecordSchema
	if err := json.Unmarshal([]byte(typeDefinitionJSON), &schema); err != nil {
		return nil, fmt.Errorf("rectype: malformed dynamic type definition: %w", err)
	}
	if len(schema.Fields) < 2 {
		return nil, fmt.Errorf("rectype: dynamic schema must declare at least a names and types field")
	}
	n := len(schema.Fields) - 2

	var region []byte
	if rng.IsSet() {
		region = rng.Slice(buf)
	} else {
		region = buf
	}
	c := wire.NewCursor(region)

	for i := 0; i < n; i++ {
		if _, err := wireblock.SkipOpaqueBlocks(c); err != nil {
			return nil, fmt.Errorf("rectype: skipping column %d of dynamic schema: %w", i, err)
		}
	}

	names, err := wireblock.ReadBlocks(c, readAvroString)
	if err != nil {
		return nil, fmt.Errorf("rectype: reading dynamic schema column names: %w", err)
	}
	typeNames, err := wireblock.ReadBlocks(c, readAvroString)
	if err != nil {
		return nil, fmt.Errorf("rectype: reading dynamic schema column types: %w", err)
	}
	if len(names) != n || len(typeNames) != n {
		return nil, fmt.Errorf("rectype: dynamic schema declared %d columns, got %d names and %d types", n, len(names), len(typeNames))
	}

	uniqueNames := uniquifyNames(names)
	columns := make([]ColumnDescriptor, n)
	for i := range columns {
		scalar, ok := ParseScalarType(typeNames[i])
		if !ok {
			mapped, ok2 := avroBaseToScalar[typeNames[i]]
			if !ok2 {
				return nil, fmt.Errorf("%w: %q", ErrUnknownScalarType, typeNames[i])
			}
			scalar = mapped
		}
		columns[i] = newColumnFromSchema(uniqueNames[i], scalar, false, nil)
	}
	return NewRecordType("", columns)
}

func readAvroString(c *wire.Cursor) (string, error) {
	b, err := c.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// uniquifyNames renames duplicates so no two entries are equal, each
// renamed entry taking the form "name_k" for the smallest k >= 2 not
// already assigned.
func uniquifyNames(raw []string) []string {
	assigned := make(map[string]bool, len(raw))
	out := make([]string, len(raw))
	for i, name := range raw {
		if !assigned[name] {
			out[i] = name
			assigned[name] = true
			continue
		}
		for k := 2; ; k++ {
			candidate := fmt.Sprintf("%s_%d", name, k)
			if !assigned[candidate] {
				out[i] = candidate
				assigned[candidate] = true
				break
			}
		}
	}
	return out
}
