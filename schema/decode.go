package schema

import (
	"fmt"

	"github.com/solidcoredata/reccodec/bufrange"
	"github.com/solidcoredata/reccodec/internal/wireblock"
	"github.com/solidcoredata/reccodec/wire"
)

// Decode reads one value of n's shape from rng within buf, or from the
// whole of buf if rng is unset. Arrays decode to []any, maps and records to
// map[string]any, and embedded object/object_array nodes decode to
// bufrange.BufferRange values (or a []bufrange.BufferRange for
// object_array) pointing back into buf rather than a materialized value:
// the cursor tracks absolute offsets into buf throughout, so the caller can
// hand a range straight to the embedded Node's own Decode or to
// RecordType.DecodeRecords without recopying.
func (n *Node) Decode(buf []byte, rng bufrange.BufferRange) (any, error) {
	start, end := 0, len(buf)
	if rng.IsSet() {
		start, end = rng.Start, rng.End()
	}
	c := &wire.Cursor{Buf: buf[:end], Pos: start}
	v, err := decodeNode(n, c, buf)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// decodeNode reads a value for n from c, which is positioned somewhere
// inside origBuf at an absolute offset. origBuf is threaded through purely
// so object/object_array nodes can build BufferRanges against it rather
// than against whatever slice c.Buf happens to be.
func decodeNode(n *Node, c *wire.Cursor, origBuf []byte) (any, error) {
	if n.kind == KindNullable {
		tag, err := c.ReadVarint32()
		if err != nil {
			return nil, err
		}
		switch tag {
		case 0:
			return decodeNode(n.child, c, origBuf)
		case 1:
			return nil, nil
		default:
			return nil, fmt.Errorf("%w: bad nullable tag", ErrValue)
		}
	}
	switch n.kind {
	case KindBoolean:
		return c.ReadBool()
	case KindBytes:
		b, err := c.ReadBytes()
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindString:
		b, err := c.ReadBytes()
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case KindDouble:
		return c.ReadFloat64()
	case KindFloat:
		return c.ReadFloat32()
	case KindInt:
		return c.ReadVarint32()
	case KindLong:
		return c.ReadVarint64()
	case KindArray:
		items, err := wireblock.ReadBlocks(c, func(cc *wire.Cursor) (any, error) {
			return decodeNode(n.child, cc, origBuf)
		})
		if err != nil {
			return nil, err
		}
		return toAnySlice(items), nil
	case KindMap:
		entries, err := wireblock.ReadBlocks(c, func(cc *wire.Cursor) (mapEntry, error) {
			key, err := cc.ReadBytes()
			if err != nil {
				return mapEntry{}, err
			}
			val, err := decodeNode(n.child, cc, origBuf)
			if err != nil {
				return mapEntry{}, err
			}
			return mapEntry{Key: string(key), Value: val}, nil
		})
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, len(entries))
		for _, e := range entries {
			out[e.Key] = e.Value
		}
		return out, nil
	case KindRecord:
		out := make(map[string]any, len(n.fields))
		for _, f := range n.fields {
			v, err := decodeNode(f.Node, c, origBuf)
			if err != nil {
				return nil, fmt.Errorf("record field %q: %w", f.Name, err)
			}
			out[f.Name] = v
		}
		return out, nil
	case KindObject:
		rng, err := decodeBlobRange(c)
		if err != nil {
			return nil, err
		}
		return rng, nil
	case KindObjectArray:
		items, err := wireblock.ReadBlocks(c, func(cc *wire.Cursor) (bufrange.BufferRange, error) {
			return decodeBlobRange(cc)
		})
		if err != nil {
			return nil, err
		}
		return items, nil
	default:
		return nil, fmt.Errorf("%w: unknown node kind %s", ErrSchema, n.kind)
	}
}

type mapEntry struct {
	Key   string
	Value any
}

func toAnySlice[T any](items []T) []any {
	out := make([]any, len(items))
	for i, v := range items {
		out[i] = v
	}
	return out
}

// decodeBlobRange reads a length-prefixed blob's framing and returns its
// absolute BufferRange into the original buffer, without resolving it
// against any schema or record type: the caller (or the collaborator it
// hands the range to) decides how to interpret that range, so the blob's
// bytes are never copied or eagerly decoded here.
func decodeBlobRange(c *wire.Cursor) (bufrange.BufferRange, error) {
	n, err := c.ReadVarint64()
	if err != nil {
		return bufrange.BufferRange{}, err
	}
	if n < 0 {
		return bufrange.BufferRange{}, wire.Overflow
	}
	blobStart := c.Pos
	if blobStart+int(n) > len(c.Buf) {
		return bufrange.BufferRange{}, wire.EOF
	}
	c.Pos += int(n)
	return bufrange.New(blobStart, int(n)), nil
}
