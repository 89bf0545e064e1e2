package rectype

import (
	"errors"
	"fmt"
)

// ErrUnknownScalarType is returned when a column names a scalar type
// outside the closed enumeration.
var ErrUnknownScalarType = errors.New("rectype: unknown scalar type")

// ErrEmptyColumnName is returned for a column descriptor with no name.
var ErrEmptyColumnName = errors.New("rectype: column name must not be empty")

const nullableProperty = "nullable"

// ColumnDescriptor is an immutable description of one record column: its
// name, scalar type, nullability, and the ordered property list it was
// declared with. Nullability is derived from the presence of the
// "nullable" property, never stored independently.
type ColumnDescriptor struct {
	name       string
	scalar     ScalarType
	nullable   bool
	properties []string
}

// NewColumnDescriptor builds a column descriptor from a name, a scalar
// type name, and an ordered property list. Nullability is derived from
// whether "nullable" appears in properties.
func NewColumnDescriptor(name, scalarTypeName string, properties []string) (ColumnDescriptor, error) {
	if name == "" {
		return ColumnDescriptor{}, ErrEmptyColumnName
	}
	scalar, ok := ParseScalarType(scalarTypeName)
	if !ok {
		return ColumnDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownScalarType, scalarTypeName)
	}
	props := append([]string(nil), properties...)
	nullable := containsString(props, nullableProperty)
	return ColumnDescriptor{name: name, scalar: scalar, nullable: nullable, properties: props}, nil
}

// newColumnFromSchema builds a descriptor during schema-driven
// construction, canonicalizing the property list so "nullable" is present
// iff nullable is true, regardless of what the source schema declared.
func newColumnFromSchema(name string, scalar ScalarType, nullable bool, properties []string) ColumnDescriptor {
	props := make([]string, 0, len(properties)+1)
	for _, p := range properties {
		if p != nullableProperty {
			props = append(props, p)
		}
	}
	if nullable {
		props = append(props, nullableProperty)
	}
	return ColumnDescriptor{name: name, scalar: scalar, nullable: nullable, properties: props}
}

// Name is the column's name.
func (c ColumnDescriptor) Name() string { return c.name }

// Type is the column's scalar type.
func (c ColumnDescriptor) Type() ScalarType { return c.scalar }

// Nullable reports whether the column accepts a null value.
func (c ColumnDescriptor) Nullable() bool { return c.nullable }

// Properties returns the column's declared property list. The returned
// slice must not be mutated by the caller.
func (c ColumnDescriptor) Properties() []string { return c.properties }

// Equal reports value equality: same name, scalar type, nullability, and
// property list (order-sensitive).
func (c ColumnDescriptor) Equal(other ColumnDescriptor) bool {
	if c.name != other.name || c.scalar != other.scalar || c.nullable != other.nullable {
		return false
	}
	if len(c.properties) != len(other.properties) {
		return false
	}
	for i := range c.properties {
		if c.properties[i] != other.properties[i] {
			return false
		}
	}
	return true
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
