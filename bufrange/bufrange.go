// Package bufrange defines BufferRange, an immutable reference to a region
// of a larger byte buffer used throughout the record and schema codecs to
// avoid copying.
package bufrange

import "fmt"

// BufferRange identifies [Start, Start+Length) within some buffer the
// caller already holds. Length == -1 means "unset" (no range), distinct
// from a zero-length range which is a legitimate empty slice.
type BufferRange struct {
	Start  int
	Length int
}

// New constructs a BufferRange, panicking if start is negative or length is
// less than -1. Construction-time validation mirrors the rest of the codec:
// malformed ranges are a programmer error, not a decode-time condition.
func New(start, length int) BufferRange {
	if start < 0 {
		panic(fmt.Sprintf("bufrange: negative start %d", start))
	}
	if length < -1 {
		panic(fmt.Sprintf("bufrange: length %d below -1", length))
	}
	return BufferRange{Start: start, Length: length}
}

// Unset is the canonical "no range" value.
var Unset = BufferRange{Start: 0, Length: -1}

// IsSet reports whether r refers to an actual range.
func (r BufferRange) IsSet() bool { return r.Length != -1 }

// End returns the exclusive end offset. It is only meaningful when IsSet.
func (r BufferRange) End() int { return r.Start + r.Length }

// Slice returns the sub-slice of buf that r refers to.
func (r BufferRange) Slice(buf []byte) []byte {
	return buf[r.Start:r.End()]
}

// String renders the range for diagnostics.
func (r BufferRange) String() string {
	if !r.IsSet() {
		return "BufferRange(unset)"
	}
	return fmt.Sprintf("BufferRange(%d, %d)", r.Start, r.Length)
}
