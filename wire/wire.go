// Package wire implements the low-level binary primitives the record and
// schema codecs are built on: zig-zag varints, length-prefixed byte blobs,
// little-endian floats, ASCII digit runs and whitespace skipping.
//
// Every reader/writer operates over a Cursor, a (buffer, position) pair.
// Readers never panic; they return one of the Code values below. After an
// error the cursor may have advanced partway (a varint or length prefix
// already consumed), so callers must not keep using a cursor after an error
// without resetting its position.
package wire

import (
	"math"
)

// Code is the closed error taxonomy every wire-level operation reports.
type Code int

const (
	// OK is the zero value and is never itself returned as an error; callers
	// test err == nil rather than err == wire.OK.
	OK Code = iota
	// EOF means the buffer ran out before a value could be fully read.
	EOF
	// Overflow means the bytes were present but do not form a legal value
	// (bad varint continuation, an out-of-range tag, a negative length).
	Overflow
	// OOM means an allocation failed. No primitive in this package returns
	// it: a length prefix larger than the remaining buffer is reported as
	// EOF.
	OOM
)

func (c Code) Error() string {
	switch c {
	case OK:
		return "wire: ok"
	case EOF:
		return "wire: unexpected end of buffer"
	case Overflow:
		return "wire: malformed or out-of-range value"
	case OOM:
		return "wire: allocation failed"
	default:
		return "wire: unknown error"
	}
}

// Cursor is a position within a byte buffer shared by all read/write
// primitives in this package. A single Cursor value is used both to read
// an existing buffer and to write into a pre-sized destination buffer;
// which mode is in play is determined entirely by which methods the
// caller invokes.
type Cursor struct {
	Buf []byte
	Pos int
}

// NewCursor returns a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{Buf: buf}
}

// End is the exclusive end position of the underlying buffer.
func (c *Cursor) End() int { return len(c.Buf) }

// Remaining is the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.Buf) - c.Pos }

// Done reports whether the cursor has consumed the entire buffer.
func (c *Cursor) Done() bool { return c.Pos >= len(c.Buf) }

func (c *Cursor) need(n int) error {
	if n < 0 {
		return Overflow
	}
	if c.Pos+n > len(c.Buf) {
		return EOF
	}
	return nil
}

// ReadBool reads a single byte and accepts only 0 or 1.
func (c *Cursor) ReadBool() (bool, error) {
	if err := c.need(1); err != nil {
		return false, err
	}
	b := c.Buf[c.Pos]
	switch b {
	case 0:
		c.Pos++
		return false, nil
	case 1:
		c.Pos++
		return true, nil
	default:
		return false, Overflow
	}
}

// WriteBool writes a single 0/1 byte.
func (c *Cursor) WriteBool(v bool) error {
	if err := c.need(1); err != nil {
		return err
	}
	if v {
		c.Buf[c.Pos] = 1
	} else {
		c.Buf[c.Pos] = 0
	}
	c.Pos++
	return nil
}

// readUvarint reads an unsigned LEB128 value bounded to maxBytes groups.
func (c *Cursor) readUvarint(maxBytes int) (uint64, error) {
	var result uint64
	var shift uint
	for i := 0; i < maxBytes; i++ {
		if err := c.need(1); err != nil {
			return 0, err
		}
		b := c.Buf[c.Pos]
		c.Pos++
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, Overflow
}

func writeUvarint(buf []byte, pos int, v uint64) (int, error) {
	for {
		if pos >= len(buf) {
			return pos, EOF
		}
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			buf[pos] = b | 0x80
			pos++
			continue
		}
		buf[pos] = b
		pos++
		return pos, nil
	}
}

func sizeUvarint(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

func zigzagEncode32(v int32) uint32 { return uint32((v << 1) ^ (v >> 31)) }
func zigzagDecode32(v uint32) int32 { return int32(v>>1) ^ -int32(v&1) }
func zigzagEncode64(v int64) uint64 { return uint64((v << 1) ^ (v >> 63)) }
func zigzagDecode64(v uint64) int64 { return int64(v>>1) ^ -int64(v&1) }

// ReadVarint32 reads a zig-zag encoded signed 32-bit integer, bounded to 5
// continuation bytes.
func (c *Cursor) ReadVarint32() (int32, error) {
	u, err := c.readUvarint(5)
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, Overflow
	}
	return zigzagDecode32(uint32(u)), nil
}

// WriteVarint32 writes a zig-zag encoded signed 32-bit integer.
func (c *Cursor) WriteVarint32(v int32) error {
	pos, err := writeUvarint(c.Buf, c.Pos, uint64(zigzagEncode32(v)))
	if err != nil {
		return err
	}
	c.Pos = pos
	return nil
}

// ReadVarint64 reads a zig-zag encoded signed 64-bit integer, bounded to 10
// continuation bytes.
func (c *Cursor) ReadVarint64() (int64, error) {
	u, err := c.readUvarint(10)
	if err != nil {
		return 0, err
	}
	return zigzagDecode64(u), nil
}

// WriteVarint64 writes a zig-zag encoded signed 64-bit integer.
func (c *Cursor) WriteVarint64(v int64) error {
	pos, err := writeUvarint(c.Buf, c.Pos, zigzagEncode64(v))
	if err != nil {
		return err
	}
	c.Pos = pos
	return nil
}

// SizeVarint32 returns the exact encoded byte length of v.
func SizeVarint32(v int32) int { return sizeUvarint(uint64(zigzagEncode32(v))) }

// SizeVarint64 returns the exact encoded byte length of v.
func SizeVarint64(v int64) int { return sizeUvarint(zigzagEncode64(v)) }

// ReadBytes reads a varint length followed by that many raw bytes and
// returns a slice aliasing the underlying buffer (no copy).
func (c *Cursor) ReadBytes() ([]byte, error) {
	n, err := c.ReadVarint64()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, Overflow
	}
	if err := c.need(int(n)); err != nil {
		return nil, err
	}
	b := c.Buf[c.Pos : c.Pos+int(n)]
	c.Pos += int(n)
	return b, nil
}

// WriteBytes writes a varint length prefix followed by b.
func (c *Cursor) WriteBytes(b []byte) error {
	if err := c.WriteVarint64(int64(len(b))); err != nil {
		return err
	}
	if err := c.need(len(b)); err != nil {
		return err
	}
	copy(c.Buf[c.Pos:], b)
	c.Pos += len(b)
	return nil
}

// SizeBytes returns the exact encoded byte length of a length-prefixed blob.
func SizeBytes(b []byte) int { return SizeVarint64(int64(len(b))) + len(b) }

// ReadFloat32 reads 4 little-endian bytes as an IEEE 754 binary32.
func (c *Cursor) ReadFloat32() (float32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	bits := uint32(c.Buf[c.Pos]) | uint32(c.Buf[c.Pos+1])<<8 | uint32(c.Buf[c.Pos+2])<<16 | uint32(c.Buf[c.Pos+3])<<24
	c.Pos += 4
	return math.Float32frombits(bits), nil
}

// WriteFloat32 writes v as 4 little-endian bytes.
func (c *Cursor) WriteFloat32(v float32) error {
	if err := c.need(4); err != nil {
		return err
	}
	bits := math.Float32bits(v)
	c.Buf[c.Pos] = byte(bits)
	c.Buf[c.Pos+1] = byte(bits >> 8)
	c.Buf[c.Pos+2] = byte(bits >> 16)
	c.Buf[c.Pos+3] = byte(bits >> 24)
	c.Pos += 4
	return nil
}

// ReadFloat64 reads 8 little-endian bytes as an IEEE 754 binary64.
func (c *Cursor) ReadFloat64() (float64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	var bits uint64
	for i := 0; i < 8; i++ {
		bits |= uint64(c.Buf[c.Pos+i]) << (8 * i)
	}
	c.Pos += 8
	return math.Float64frombits(bits), nil
}

// WriteFloat64 writes v as 8 little-endian bytes.
func (c *Cursor) WriteFloat64(v float64) error {
	if err := c.need(8); err != nil {
		return err
	}
	bits := math.Float64bits(v)
	for i := 0; i < 8; i++ {
		c.Buf[c.Pos+i] = byte(bits >> (8 * i))
	}
	c.Pos += 8
	return nil
}

// ReadASCIIDigits reads between min and max '0'-'9' bytes, then validates the
// parsed integer falls within [minValue, maxValue]. It is used to parse the
// ASCII date/time wire representations.
func (c *Cursor) ReadASCIIDigits(min, max, minValue, maxValue int) (int, error) {
	start := c.Pos
	n := 0
	for n < max && c.Pos < len(c.Buf) && c.Buf[c.Pos] >= '0' && c.Buf[c.Pos] <= '9' {
		c.Pos++
		n++
	}
	if n < min {
		c.Pos = start
		return 0, Overflow
	}
	value := 0
	for _, b := range c.Buf[start:c.Pos] {
		value = value*10 + int(b-'0')
	}
	if value < minValue || value > maxValue {
		c.Pos = start
		return 0, Overflow
	}
	return value, nil
}

// WriteASCIIDigits writes value zero-padded to width digits.
func (c *Cursor) WriteASCIIDigits(value, width int) error {
	if err := c.need(width); err != nil {
		return err
	}
	for i := width - 1; i >= 0; i-- {
		c.Buf[c.Pos+i] = byte('0' + value%10)
		value /= 10
	}
	c.Pos += width
	return nil
}

// SkipWhitespace skips space, tab, LF, VT, FF and CR. If min > 0 it is an
// error to skip fewer than min bytes.
func (c *Cursor) SkipWhitespace(min int) error {
	n := 0
	for c.Pos < len(c.Buf) && isWhitespace(c.Buf[c.Pos]) {
		c.Pos++
		n++
	}
	if n < min {
		return Overflow
	}
	return nil
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// ReadByte reads a single raw byte, for literal separators ('-', ':', '.').
func (c *Cursor) ReadByte() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	b := c.Buf[c.Pos]
	c.Pos++
	return b, nil
}

// WriteByte writes a single raw byte.
func (c *Cursor) WriteByte(b byte) error {
	if err := c.need(1); err != nil {
		return err
	}
	c.Buf[c.Pos] = b
	c.Pos++
	return nil
}

// ExpectByte reads one byte and verifies it equals want, reporting Overflow
// on mismatch.
func (c *Cursor) ExpectByte(want byte) error {
	b, err := c.ReadByte()
	if err != nil {
		return err
	}
	if b != want {
		return Overflow
	}
	return nil
}
