package wireblock

import (
	"testing"

	"github.com/solidcoredata/reccodec/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readStringItem(c *wire.Cursor) (string, error) {
	b, err := c.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func writeStringItem(c *wire.Cursor, s string) error {
	return c.WriteBytes([]byte(s))
}

func sizeStringItem(s string) int { return wire.SizeBytes([]byte(s)) }

func TestWriteReadBlocksRoundTrip(t *testing.T) {
	items := []string{"a", "bb", "ccc"}
	buf := make([]byte, SizeBlocks(items, sizeStringItem))
	w := wire.NewCursor(buf)
	require.NoError(t, WriteBlocks(w, items, writeStringItem))
	assert.Equal(t, len(buf), w.Pos)

	r := wire.NewCursor(buf)
	got, err := ReadBlocks(r, readStringItem)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestEmptyBlockIsJustTerminator(t *testing.T) {
	buf := make([]byte, SizeBlocks([]string(nil), sizeStringItem))
	w := wire.NewCursor(buf)
	require.NoError(t, WriteBlocks(w, nil, writeStringItem))
	assert.Equal(t, 1, len(buf))
	assert.Equal(t, byte(0), buf[0])
}

func TestReadBlocksNegativeCountValidatesSize(t *testing.T) {
	buf := make([]byte, 32)
	w := wire.NewCursor(buf)
	require.NoError(t, w.WriteVarint64(-2))
	payloadStart := w.Pos
	require.NoError(t, w.WriteVarint64(1)) // one-byte placeholder size, fixed below
	itemsStart := w.Pos
	require.NoError(t, writeStringItem(w, "x"))
	require.NoError(t, writeStringItem(w, "y"))
	actualSize := w.Pos - itemsStart
	sizeCursor := wire.NewCursor(buf[payloadStart:])
	require.NoError(t, sizeCursor.WriteVarint64(int64(actualSize)))
	require.NoError(t, w.WriteVarint64(0))

	r := wire.NewCursor(buf[:w.Pos])
	got, err := ReadBlocks(r, readStringItem)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got)
}

func TestSkipOpaqueBlocksRejectsPositiveCount(t *testing.T) {
	buf := make([]byte, 4)
	w := wire.NewCursor(buf)
	require.NoError(t, w.WriteVarint64(3))
	r := wire.NewCursor(buf[:w.Pos])
	_, err := SkipOpaqueBlocks(r)
	assert.Equal(t, wire.Overflow, err)
}

func TestSkipOpaqueBlocksNegativeCount(t *testing.T) {
	buf := make([]byte, 16)
	w := wire.NewCursor(buf)
	require.NoError(t, w.WriteVarint64(-3))
	require.NoError(t, w.WriteVarint64(5))
	w.Pos += 5
	require.NoError(t, w.WriteVarint64(0))

	r := wire.NewCursor(buf[:w.Pos])
	n, err := SkipOpaqueBlocks(r)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, r.Done())
}
