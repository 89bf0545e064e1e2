package record

import "errors"

// The wrapped errors surfaced at the record package's public boundary,
// corresponding to the format/range/type/schema error kinds. Wire-level
// wire.Code values never cross this boundary unwrapped.
var (
	ErrFormat        = errors.New("record: malformed wire data")
	ErrRange         = errors.New("record: value out of range")
	ErrTypeMismatch  = errors.New("record: value has the wrong type for its column")
	ErrUnknownColumn = errors.New("record: unknown column name")
	ErrNotNullable   = errors.New("record: column does not accept null")
	ErrBadTag        = errors.New("record: unrecognized nullable tag")
)
