package record

import (
	"context"
	"fmt"

	"github.com/solidcoredata/reccodec/bufrange"
	"github.com/solidcoredata/reccodec/internal/wireblock"
	"github.com/solidcoredata/reccodec/rectype"
	"github.com/solidcoredata/reccodec/wire"
	"golang.org/x/sync/errgroup"
)

// DecodeRecords decodes one record per entry in ranges, all bound to typ.
// Each range's decode is independent pure-byte work with no shared
// mutable state, so the shells are filled concurrently via errgroup — the
// Go realization of "release the host lock around bulk decode".
func DecodeRecords(typ *rectype.RecordType, buf []byte, ranges []bufrange.BufferRange) ([]*Record, error) {
	records := make([]*Record, len(ranges))
	g, _ := errgroup.WithContext(context.Background())
	for i, rng := range ranges {
		i, rng := i, rng
		g.Go(func() error {
			rec := newEmpty(typ)
			if err := rec.Decode(buf, rng); err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// DecodeDynamicRecords parses a columnar "dynamic" response (see
// rectype.FromDynamicSchema) and returns one Record per row. The N column
// value arrays and the RecordType they describe are recovered from the
// same buffer: the RecordType is derived first (which requires the column
// arrays to use negative-count, byte-size-declared block framing), then
// every column is re-read from the buffer's start, now with a known scalar
// type per column, so ordinary positive- or negative-count block framing
// is accepted on this second pass.
func DecodeDynamicRecords(typeDefinitionJSON string, buf []byte, rng bufrange.BufferRange) ([]*Record, error) {
	typ, err := rectype.FromDynamicSchema(typeDefinitionJSON, buf, rng)
	if err != nil {
		return nil, err
	}
	n, err := rectype.DynamicFieldCount(typeDefinitionJSON)
	if err != nil {
		return nil, err
	}

	var region []byte
	if rng.IsSet() {
		region = rng.Slice(buf)
	} else {
		region = buf
	}
	c := wire.NewCursor(region)

	columns := make([][]columnValue, n)
	for i := 0; i < n; i++ {
		scalar, _ := typ.ScalarAt(i)
		values, err := wireblock.ReadBlocks(c, func(cc *wire.Cursor) (columnValue, error) {
			return readTable[scalar](cc)
		})
		if err != nil {
			return nil, fmt.Errorf("%w: dynamic column %d: %v", ErrFormat, i, err)
		}
		columns[i] = values
	}

	rowCount := 0
	if n > 0 {
		rowCount = len(columns[0])
		for i, col := range columns {
			if len(col) != rowCount {
				return nil, fmt.Errorf("%w: dynamic column %d has %d rows, column 0 has %d", ErrFormat, i, len(col), rowCount)
			}
		}
	}

	records := make([]*Record, rowCount)
	g := new(errgroup.Group)
	for row := 0; row < rowCount; row++ {
		row := row
		g.Go(func() error {
			raw := make([]columnValue, n)
			for col := 0; col < n; col++ {
				raw[col] = columns[col][row]
			}
			records[row] = &Record{typ: typ, raw: raw, obj: make([]any, n), cachedSize: sizeUnset}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
