// Package record implements Record, the mutable value container bound to a
// rectype.RecordType, along with its table-driven per-column encode/decode
// dispatch and bulk decode helpers.
package record

import "github.com/solidcoredata/reccodec/dt"

// columnValue is the raw per-column value union. length is the tag: -1
// means null, 0 means "present" for a fixed-width column, and any value
// >= 0 is the actual byte count of a variable-length column's payload.
//
// Exactly one of the typed fields is meaningful for a given column's
// scalar type; which one is determined entirely by the column's static
// type, never inspected at runtime, so there is no room for the union to
// disagree with itself.
type columnValue struct {
	length int
	bytes  []byte  // bytes, string, charN with N > 8
	inline [8]byte // charN with N <= 8
	f32    float32
	f64    float64
	i32    int32 // int, int8, int16
	i64    int64 // long
	date   dt.Date
	tm     dt.Time
	dtm    dt.DateTime
	ts     int64 // timestamp, epoch ms
}

const (
	lengthNull    = -1
	lengthPresent = 0
)

func nullValue() columnValue { return columnValue{length: lengthNull} }
