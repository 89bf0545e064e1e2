// Package schema implements the generic SchemaNode tree codec: a small set
// of composable node kinds (nullable, boolean, bytes, double, float, int,
// long, string, array, map, record, object, object array) that encode and
// decode arbitrary value trees over the same wire primitives the record
// package uses, including zero-copy embedding of opaque pre-encoded
// objects by buffer range.
package schema

import (
	"errors"
	"fmt"

	"github.com/solidcoredata/reccodec/rectype"
)

// Kind is the closed set of SchemaNode variants.
type Kind int

const (
	KindNullable Kind = iota
	KindBoolean
	KindBytes
	KindDouble
	KindFloat
	KindInt
	KindLong
	KindString
	KindArray
	KindMap
	KindRecord
	KindObject
	KindObjectArray
)

func (k Kind) String() string {
	switch k {
	case KindNullable:
		return "nullable"
	case KindBoolean:
		return "boolean"
	case KindBytes:
		return "bytes"
	case KindDouble:
		return "double"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindRecord:
		return "record"
	case KindObject:
		return "object"
	case KindObjectArray:
		return "object_array"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrSchema reports a static problem with a schema tree: Record reports
// duplicate field names and a default value that fails to validate against
// its field's node; encode reports an object node with neither a schema nor
// a record type. The other constructors do not check their child nodes.
var ErrSchema = errors.New("schema: invalid schema definition")

// Embedded names the schema-or-record-type that parameterizes an `object`
// or `object_array` node. Exactly one of Schema or RecordType is set; this
// is the tagged sum type design notes §9 calls for in place of a runtime
// type test.
type Embedded struct {
	Schema     *Node
	RecordType *rectype.RecordType
}

// FromSchema wraps a Node as an embedded-object parameter.
func FromSchema(n *Node) Embedded { return Embedded{Schema: n} }

// FromRecordType wraps a RecordType as an embedded-object parameter.
func FromRecordType(rt *rectype.RecordType) Embedded { return Embedded{RecordType: rt} }

// Field is one named member of a `record` node. A field with HasDefault
// set substitutes Default whenever an encode input omits it or maps it to
// null for a non-nullable node.
type Field struct {
	Name       string
	Node       *Node
	Default    any
	HasDefault bool
}

// Node is an immutable, recursive schema tree node.
type Node struct {
	kind     Kind
	child    *Node // nullable, array item, map value
	fields   []Field
	embedded Embedded
}

// Boolean, BytesNode, Double, Float, Int, Long, and String build leaf nodes.
func Boolean() *Node   { return &Node{kind: KindBoolean} }
func BytesNode() *Node { return &Node{kind: KindBytes} }
func Double() *Node    { return &Node{kind: KindDouble} }
func Float() *Node     { return &Node{kind: KindFloat} }
func Int() *Node       { return &Node{kind: KindInt} }
func Long() *Node      { return &Node{kind: KindLong} }
func String() *Node    { return &Node{kind: KindString} }

// Nullable wraps child so it additionally accepts a null value.
func Nullable(child *Node) *Node { return &Node{kind: KindNullable, child: child} }

// Array builds an array-of-item node.
func Array(item *Node) *Node { return &Node{kind: KindArray, child: item} }

// Map builds a map-of-value node; keys are always strings.
func Map(value *Node) *Node { return &Node{kind: KindMap, child: value} }

// Object builds an embedded-object node.
func Object(inner Embedded) *Node { return &Node{kind: KindObject, embedded: inner} }

// ObjectArray builds an array-of-embedded-object node.
func ObjectArray(inner Embedded) *Node { return &Node{kind: KindObjectArray, embedded: inner} }

// Record builds a record-of-fields node. Field names must be unique and
// every default value must validate against its own field's node.
func Record(fields []Field) (*Node, error) {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			return nil, fmt.Errorf("%w: duplicate field name %q", ErrSchema, f.Name)
		}
		seen[f.Name] = true
		if f.HasDefault {
			if _, err := prepareValue(f.Node, f.Default, f.Name); err != nil {
				return nil, fmt.Errorf("%w: field %q default value: %v", ErrSchema, f.Name, err)
			}
		}
	}
	return &Node{kind: KindRecord, fields: append([]Field(nil), fields...)}, nil
}

// Kind returns the node's variant.
func (n *Node) Kind() Kind { return n.kind }
