// Package wireblock implements the block framing shared by the generic
// schema codec's array/map nodes and the record type model's dynamic-schema
// parser: one or more (count, items...) groups terminated by a zero count,
// where a negative count is followed by a byte-size varint.
//
// The source this format was distilled from treats the negative-count form
// inconsistently between a path that only needs to skip a block and a path
// that needs to read it: the skip path trusts the declared byte size, the
// read path does not. In this package ReadBlocks always decodes items one
// at a time regardless of sign and uses a negative count's byte size purely
// as a post-hoc consistency check; SkipOpaqueBlocks, for callers that cannot
// decode the items, skips by the declared byte size.
package wireblock

import "github.com/solidcoredata/reccodec/wire"

// ReadBlocks decodes every item in a block sequence.
func ReadBlocks[T any](c *wire.Cursor, readItem func(*wire.Cursor) (T, error)) ([]T, error) {
	var out []T
	for {
		count, err := c.ReadVarint64()
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return out, nil
		}
		n := count
		declareSize := false
		var declaredSize int64
		if n < 0 {
			n = -n
			declaredSize, err = c.ReadVarint64()
			if err != nil {
				return nil, err
			}
			if declaredSize < 0 {
				return nil, wire.Overflow
			}
			declareSize = true
		}
		start := c.Pos
		for i := int64(0); i < n; i++ {
			item, err := readItem(c)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		if declareSize && int64(c.Pos-start) != declaredSize {
			return nil, wire.Overflow
		}
	}
}

// WriteBlocks writes items as a single positive-count block followed by the
// zero-count terminator. This codec never emits negative-count blocks; it
// only needs to accept them on decode for interoperability.
func WriteBlocks[T any](c *wire.Cursor, items []T, writeItem func(*wire.Cursor, T) error) error {
	if len(items) > 0 {
		if err := c.WriteVarint64(int64(len(items))); err != nil {
			return err
		}
		for _, item := range items {
			if err := writeItem(c, item); err != nil {
				return err
			}
		}
	}
	return c.WriteVarint64(0)
}

// SizeBlocks returns the exact encoded size of WriteBlocks's output for
// items: WriteBlocks always emits a trailing zero-count terminator, even
// after a non-empty block, so that terminator's size is added unconditionally.
func SizeBlocks[T any](items []T, sizeItem func(T) int) int {
	n := wire.SizeVarint64(0) // terminator
	if len(items) > 0 {
		n += wire.SizeVarint64(int64(len(items)))
		for _, item := range items {
			n += sizeItem(item)
		}
	}
	return n
}

// SkipOpaqueBlocks skips a block sequence whose item encoding is unknown to
// the caller. Only negative-count (byte-size-declared) blocks can be
// skipped this way; a positive count with no size hint is reported as
// wire.Overflow since there is no way to know how many bytes it occupies.
// It returns the total number of items skipped across all blocks.
func SkipOpaqueBlocks(c *wire.Cursor) (int, error) {
	total := 0
	for {
		count, err := c.ReadVarint64()
		if err != nil {
			return 0, err
		}
		if count == 0 {
			return total, nil
		}
		if count > 0 {
			return 0, wire.Overflow
		}
		size, err := c.ReadVarint64()
		if err != nil {
			return 0, err
		}
		if size < 0 {
			return 0, wire.Overflow
		}
		if c.Pos+int(size) > c.End() {
			return 0, wire.EOF
		}
		c.Pos += int(size)
		total += int(-count)
	}
}
