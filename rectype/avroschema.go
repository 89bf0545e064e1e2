package rectype

import (
	"encoding/json"
	"fmt"
)

// avroBaseToScalar maps the Avro primitive type names this codec understands
// as the base carrier for a scalar type.
var avroBaseToScalar = map[string]ScalarType{
	"bytes":  Bytes,
	"double": Double,
	"float":  Float,
	"int":    Int,
	"long":   Long,
	"string": String,
}

// scalarToAvroBase is the inverse mapping used when rendering a RecordType
// back to an Avro type definition: every scalar type that is not itself an
// Avro base type is rendered using the base type that carries its bits.
var scalarToAvroBase = map[ScalarType]string{
	Bytes:        "bytes",
	Double:       "double",
	Float:        "float",
	Int:          "int",
	Int8:         "int",
	Int16:        "int",
	Long:         "long",
	String:       "string",
	Date:         "string",
	DateTimeType: "string",
	Time:         "string",
	Timestamp:    "long",
	Char1:        "string",
	Char2:        "string",
	Char4:        "string",
	Char8:        "string",
	Char16:       "string",
	Char32:       "string",
	Char64:       "string",
	Char128:      "string",
	Char256:      "string",
}

type avroRecordSchema struct {
	Type   string      `json:"type"`
	Name   string      `json:"name,omitempty"`
	Fields []avroField `json:"fields"`
}

type avroField struct {
	Name string          `json:"name"`
	Type json.RawMessage `json:"type"`
}

// parseAvroFieldType interprets a field's "type" entry: either a bare type
// name, or a two-element union with "null" (order-independent).
func parseAvroFieldType(raw json.RawMessage) (base string, nullable bool, err error) {
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain, false, nil
	}
	var union []json.RawMessage
	if err := json.Unmarshal(raw, &union); err != nil {
		return "", false, fmt.Errorf("rectype: unsupported avro field type %s", raw)
	}
	var names []string
	for _, u := range union {
		var name string
		if err := json.Unmarshal(u, &name); err != nil {
			return "", false, fmt.Errorf("rectype: unsupported avro union member %s", u)
		}
		names = append(names, name)
	}
	for _, n := range names {
		if n == "null" {
			nullable = true
			continue
		}
		base = n
	}
	if base == "" {
		return "", false, fmt.Errorf("rectype: avro union %s has no non-null member", raw)
	}
	return base, nullable, nil
}

// FromTypeSchema constructs a RecordType from an Avro-style JSON record
// schema and a per-column property map. A field's scalar type is taken
// from the first property in its property list that names a known scalar
// type, overriding the Avro base type; otherwise the Avro base type itself
// (one of bytes, double, float, int, long, string) is used.
func FromTypeSchema(label, typeDefinitionJSON string, properties map[string][]string) (*RecordType, error) {
	var schema avroRecordSchema
	if err := json.Unmarshal([]byte(typeDefinitionJSON), &schema); err != nil {
		return nil, fmt.Errorf("rectype: malformed type definition: %w", err)
	}
	if schema.Type != "record" {
		return nil, fmt.Errorf("rectype: type definition root must be \"record\", got %q", schema.Type)
	}
	columns := make([]ColumnDescriptor, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		base, unionNullable, err := parseAvroFieldType(f.Type)
		if err != nil {
			return nil, err
		}
		props := properties[f.Name]
		scalar, overridden := scalarFromProperties(props)
		if !overridden {
			mapped, ok := avroBaseToScalar[base]
			if !ok {
				return nil, fmt.Errorf("%w: avro base type %q", ErrUnknownScalarType, base)
			}
			scalar = mapped
		}
		nullable := unionNullable || containsString(props, nullableProperty)
		columns = append(columns, newColumnFromSchema(f.Name, scalar, nullable, props))
	}
	return NewRecordType(label, columns)
}

func scalarFromProperties(props []string) (ScalarType, bool) {
	for _, p := range props {
		if s, ok := ParseScalarType(p); ok {
			return s, true
		}
	}
	return 0, false
}

// TypeSchema is the rendered form produced by ToTypeSchema: an Avro-style
// JSON type definition alongside the per-column properties that recover
// scalar types an Avro base type cannot express on its own.
type TypeSchema struct {
	Label          string
	TypeDefinition string
	Properties     map[string][]string
}

// ToTypeSchema renders t back to an Avro-style JSON record schema plus a
// properties map. Scalar types that are not themselves Avro base types are
// rendered with their carrier base type, and the scalar type name is
// recorded in that column's properties.
func (t *RecordType) ToTypeSchema() (TypeSchema, error) {
	schema := avroRecordSchema{Type: "record", Name: t.label, Fields: make([]avroField, len(t.columns))}
	properties := make(map[string][]string, len(t.columns))
	for i, col := range t.columns {
		base, ok := scalarToAvroBase[col.scalar]
		if !ok {
			return TypeSchema{}, fmt.Errorf("%w: %s", ErrUnknownScalarType, col.scalar)
		}
		var typeJSON json.RawMessage
		var err error
		if col.nullable {
			typeJSON, err = json.Marshal([]string{"null", base})
		} else {
			typeJSON, err = json.Marshal(base)
		}
		if err != nil {
			return TypeSchema{}, err
		}
		schema.Fields[i] = avroField{Name: col.name, Type: typeJSON}

		props := append([]string(nil), col.properties...)
		if avroBaseToScalar[base] != col.scalar && !containsString(props, col.scalar.String()) {
			props = append(props, col.scalar.String())
		}
		properties[col.name] = props
	}
	buf, err := json.Marshal(schema)
	if err != nil {
		return TypeSchema{}, err
	}
	return TypeSchema{Label: t.label, TypeDefinition: string(buf), Properties: properties}, nil
}
