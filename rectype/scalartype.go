// Package rectype implements the closed scalar type enumeration and the
// ColumnDescriptor/RecordType value types that describe the shape of a
// record, including the Avro-flavored JSON schema constructors used by
// external collaborators.
package rectype

import "fmt"

// ScalarType is the closed set of per-column types a record codec column
// may hold.
type ScalarType int

const (
	Bytes ScalarType = iota
	Char1
	Char2
	Char4
	Char8
	Char16
	Char32
	Char64
	Char128
	Char256
	Date
	DateTimeType
	Double
	Float
	Int
	Int8
	Int16
	Long
	String
	Time
	Timestamp
	scalarTypeCount
)

// ScalarTypeCount is the number of members of the closed ScalarType
// enumeration, used to size dispatch tables indexed by ScalarType.
const ScalarTypeCount = int(scalarTypeCount)

var scalarTypeNames = [scalarTypeCount]string{
	Bytes:        "bytes",
	Char1:        "char1",
	Char2:        "char2",
	Char4:        "char4",
	Char8:        "char8",
	Char16:       "char16",
	Char32:       "char32",
	Char64:       "char64",
	Char128:      "char128",
	Char256:      "char256",
	Date:         "date",
	DateTimeType: "datetime",
	Double:       "double",
	Float:        "float",
	Int:          "int",
	Int8:         "int8",
	Int16:        "int16",
	Long:         "long",
	String:       "string",
	Time:         "time",
	Timestamp:    "timestamp",
}

// charWidths maps the charN types to their maximum byte length N.
var charWidths = map[ScalarType]int{
	Char1: 1, Char2: 2, Char4: 4, Char8: 8, Char16: 16,
	Char32: 32, Char64: 64, Char128: 128, Char256: 256,
}

// String returns the scalar type's wire name, e.g. "int8" or "char16".
func (s ScalarType) String() string {
	if s < 0 || int(s) >= len(scalarTypeNames) {
		return fmt.Sprintf("ScalarType(%d)", int(s))
	}
	return scalarTypeNames[s]
}

// Valid reports whether s is one of the closed enumeration members.
func (s ScalarType) Valid() bool {
	return s >= 0 && s < scalarTypeCount
}

// CharWidth returns the maximum byte length for a charN type and true, or
// (0, false) for any other scalar type.
func (s ScalarType) CharWidth() (int, bool) {
	n, ok := charWidths[s]
	return n, ok
}

// IsVariableLength reports whether the type's wire form is length-prefixed
// bytes of variable size (bytes, string, charN with N > 8).
func (s ScalarType) IsVariableLength() bool {
	switch s {
	case Bytes, String:
		return true
	}
	if n, ok := s.CharWidth(); ok {
		return n > 8
	}
	return false
}

// IsInlineFixed reports whether the type's raw value fits inline in the
// 8-byte ColumnValue union without a heap buffer: numeric scalars and
// charN with N <= 8.
func (s ScalarType) IsInlineFixed() bool {
	switch s {
	case Double, Float, Int, Int8, Int16, Long, Timestamp, Date, DateTimeType, Time:
		return true
	}
	if n, ok := s.CharWidth(); ok {
		return n <= 8
	}
	return false
}

var scalarTypeByName = func() map[string]ScalarType {
	m := make(map[string]ScalarType, len(scalarTypeNames))
	for i, name := range scalarTypeNames {
		m[name] = ScalarType(i)
	}
	return m
}()

// ParseScalarType looks up a scalar type by its wire name.
func ParseScalarType(name string) (ScalarType, bool) {
	s, ok := scalarTypeByName[name]
	return s, ok
}
