package schema

import (
	"errors"
	"fmt"

	"github.com/solidcoredata/reccodec/internal/wireblock"
	"github.com/solidcoredata/reccodec/record"
	"github.com/solidcoredata/reccodec/wire"
)

// ErrValue reports a value that does not match its node's declared shape
// or range at encode time: a non-iterable where an array was required, a
// non-mapping where a map or record was required, an out-of-range number,
// a missing non-nullable field with no default. Decode also reports it for
// a nullable tag other than 0 or 1.
var ErrValue = errors.New("schema: value does not match schema")

// prepared is the intermediate tree built by prepareValue: every field the
// write phase needs, precomputed, so write itself can never fail on a
// value-shape problem, only on running out of destination buffer.
type prepared struct {
	node     *Node
	isNull   bool
	boolVal  bool
	bytesVal []byte
	f64      float64
	f32      float32
	i32      int32
	i64      int64
	strVal   string
	child    *prepared       // nullable
	items    []prepared      // array
	mapItems []preparedEntry // map
	fields   []prepared      // record, aligned with node.fields
	blob     []byte          // object / object_array item: fully pre-encoded
	size     int
}

type preparedEntry struct {
	Key   string
	Value prepared
}

// Encode runs the three-phase encode: validate happened at schema
// construction, prepare traverses value and computes the exact size, write
// blasts the prepared tree into a freshly sized buffer.
func (n *Node) Encode(value any) ([]byte, error) {
	p, err := prepareValue(n, value, "value")
	if err != nil {
		return nil, err
	}
	buf := make([]byte, p.size)
	c := wire.NewCursor(buf)
	if err := p.write(c); err != nil {
		return nil, fmt.Errorf("schema: writing prepared value: %w", err)
	}
	return buf, nil
}

func pathErr(path string, err error) error {
	return fmt.Errorf("%s: %w", path, err)
}

func prepareValue(n *Node, value any, path string) (prepared, error) {
	if n.kind == KindNullable {
		if value == nil {
			return prepared{node: n, isNull: true, size: 1}, nil
		}
		child, err := prepareValue(n.child, value, path)
		if err != nil {
			return prepared{}, err
		}
		return prepared{node: n, child: &child, size: 1 + child.size}, nil
	}
	if value == nil {
		return prepared{}, pathErr(path, fmt.Errorf("%w: null is not legal for a non-nullable %s node", ErrValue, n.kind))
	}
	switch n.kind {
	case KindBoolean:
		b, ok := value.(bool)
		if !ok {
			return prepared{}, pathErr(path, fmt.Errorf("%w: expected bool", ErrValue))
		}
		return prepared{node: n, boolVal: b, size: 1}, nil
	case KindBytes:
		b, ok := value.([]byte)
		if !ok {
			return prepared{}, pathErr(path, fmt.Errorf("%w: expected []byte", ErrValue))
		}
		return prepared{node: n, bytesVal: b, size: wire.SizeBytes(b)}, nil
	case KindString:
		s, ok := value.(string)
		if !ok {
			return prepared{}, pathErr(path, fmt.Errorf("%w: expected string", ErrValue))
		}
		return prepared{node: n, strVal: s, size: wire.SizeBytes([]byte(s))}, nil
	case KindDouble:
		f, ok := toFloat(value)
		if !ok {
			return prepared{}, pathErr(path, fmt.Errorf("%w: expected a number", ErrValue))
		}
		return prepared{node: n, f64: f, size: 8}, nil
	case KindFloat:
		f, ok := toFloat(value)
		if !ok {
			return prepared{}, pathErr(path, fmt.Errorf("%w: expected a number", ErrValue))
		}
		return prepared{node: n, f32: float32(f), size: 4}, nil
	case KindInt:
		i, ok := toInt(value)
		if !ok {
			return prepared{}, pathErr(path, fmt.Errorf("%w: expected an integer", ErrValue))
		}
		if i < -1<<31 || i > 1<<31-1 {
			return prepared{}, pathErr(path, fmt.Errorf("%w: %d is out of range for an int node", ErrValue, i))
		}
		return prepared{node: n, i32: int32(i), size: wire.SizeVarint32(int32(i))}, nil
	case KindLong:
		i, ok := toInt(value)
		if !ok {
			return prepared{}, pathErr(path, fmt.Errorf("%w: expected an integer", ErrValue))
		}
		return prepared{node: n, i64: i, size: wire.SizeVarint64(i)}, nil
	case KindArray:
		return prepareArray(n, value, path)
	case KindMap:
		return prepareMap(n, value, path)
	case KindRecord:
		return prepareRecord(n, value, path)
	case KindObject:
		return prepareObject(n, value, path)
	case KindObjectArray:
		return prepareObjectArray(n, value, path)
	default:
		return prepared{}, pathErr(path, fmt.Errorf("%w: unknown node kind", ErrSchema))
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

func prepareArray(n *Node, value any, path string) (prepared, error) {
	items, ok := value.([]any)
	if !ok {
		return prepared{}, pathErr(path, fmt.Errorf("%w: expected an array", ErrValue))
	}
	out := make([]prepared, len(items))
	for i, item := range items {
		p, err := prepareValue(n.child, item, fmt.Sprintf("%s → array item %d", path, i))
		if err != nil {
			return prepared{}, err
		}
		out[i] = p
	}
	size := wireblock.SizeBlocks(out, func(p prepared) int { return p.size })
	return prepared{node: n, items: out, size: size}, nil
}

func prepareMap(n *Node, value any, path string) (prepared, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return prepared{}, pathErr(path, fmt.Errorf("%w: expected a map", ErrValue))
	}
	out := make([]preparedEntry, 0, len(m))
	for k, v := range m {
		p, err := prepareValue(n.child, v, fmt.Sprintf("%s → map key %s → value", path, k))
		if err != nil {
			return prepared{}, err
		}
		out = append(out, preparedEntry{Key: k, Value: p})
	}
	size := wireblock.SizeBlocks(out, func(e preparedEntry) int { return wire.SizeBytes([]byte(e.Key)) + e.Value.size })
	return prepared{node: n, mapItems: out, size: size}, nil
}

func prepareRecord(n *Node, value any, path string) (prepared, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return prepared{}, pathErr(path, fmt.Errorf("%w: expected a map for record fields", ErrValue))
	}
	out := make([]prepared, len(n.fields))
	size := 0
	for i, f := range n.fields {
		v, present := m[f.Name]
		fieldPath := fmt.Sprintf("%s → record field %s", path, f.Name)
		if (!present || v == nil) && f.Node.kind != KindNullable {
			if f.HasDefault {
				v = f.Default
			} else {
				return prepared{}, pathErr(fieldPath, fmt.Errorf("%w: missing required value and no default", ErrValue))
			}
		} else if !present {
			v = nil
		}
		p, err := prepareValue(f.Node, v, fieldPath)
		if err != nil {
			return prepared{}, err
		}
		out[i] = p
		size += p.size
	}
	return prepared{node: n, fields: out, size: size}, nil
}

func prepareObject(n *Node, value any, path string) (prepared, error) {
	blob, err := encodeEmbedded(n.embedded, value, path)
	if err != nil {
		return prepared{}, err
	}
	return prepared{node: n, blob: blob, size: wire.SizeBytes(blob)}, nil
}

func prepareObjectArray(n *Node, value any, path string) (prepared, error) {
	items, ok := value.([]any)
	if !ok {
		return prepared{}, pathErr(path, fmt.Errorf("%w: expected an array", ErrValue))
	}
	out := make([]prepared, len(items))
	for i, item := range items {
		blob, err := encodeEmbedded(n.embedded, item, fmt.Sprintf("%s → array item %d", path, i))
		if err != nil {
			return prepared{}, err
		}
		out[i] = prepared{blob: blob, size: wire.SizeBytes(blob)}
	}
	size := wireblock.SizeBlocks(out, func(p prepared) int { return p.size })
	return prepared{node: n, items: out, size: size}, nil
}

// encodeEmbedded dispatches an embedded object's value to either its
// SchemaNode or its RecordType, per the tagged-union design in node.go.
func encodeEmbedded(e Embedded, value any, path string) ([]byte, error) {
	switch {
	case e.Schema != nil:
		buf, err := e.Schema.Encode(value)
		if err != nil {
			return nil, err
		}
		return buf, nil
	case e.RecordType != nil:
		rec, ok := value.(*record.Record)
		if !ok {
			return nil, pathErr(path, fmt.Errorf("%w: expected a *record.Record bound to the embedded record type", ErrValue))
		}
		if !rec.Type().Equal(e.RecordType) {
			return nil, pathErr(path, fmt.Errorf("%w: record is not bound to the embedded record type", ErrValue))
		}
		buf, err := rec.Encode()
		if err != nil {
			return nil, err
		}
		return buf, nil
	default:
		return nil, pathErr(path, fmt.Errorf("%w: object node has neither schema nor record type", ErrSchema))
	}
}

func (p *prepared) write(c *wire.Cursor) error {
	if p.node.kind == KindNullable {
		if p.isNull {
			return c.WriteVarint32(1)
		}
		if err := c.WriteVarint32(0); err != nil {
			return err
		}
		return p.child.write(c)
	}
	switch p.node.kind {
	case KindBoolean:
		return c.WriteBool(p.boolVal)
	case KindBytes:
		return c.WriteBytes(p.bytesVal)
	case KindString:
		return c.WriteBytes([]byte(p.strVal))
	case KindDouble:
		return c.WriteFloat64(p.f64)
	case KindFloat:
		return c.WriteFloat32(p.f32)
	case KindInt:
		return c.WriteVarint32(p.i32)
	case KindLong:
		return c.WriteVarint64(p.i64)
	case KindArray:
		return wireblock.WriteBlocks(c, p.items, func(cc *wire.Cursor, item prepared) error { return item.write(cc) })
	case KindMap:
		return wireblock.WriteBlocks(c, p.mapItems, func(cc *wire.Cursor, e preparedEntry) error {
			if err := cc.WriteBytes([]byte(e.Key)); err != nil {
				return err
			}
			return e.Value.write(cc)
		})
	case KindRecord:
		for i := range p.fields {
			if err := p.fields[i].write(c); err != nil {
				return err
			}
		}
		return nil
	case KindObject:
		return c.WriteBytes(p.blob)
	case KindObjectArray:
		return wireblock.WriteBlocks(c, p.items, func(cc *wire.Cursor, item prepared) error {
			return cc.WriteBytes(item.blob)
		})
	default:
		return fmt.Errorf("%w: unknown node kind %s", ErrSchema, p.node.kind)
	}
}
