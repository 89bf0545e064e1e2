package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarint32RoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 63, -64, 64, -65, 1 << 20, -(1 << 20), 2147483647, -2147483648}
	for _, v := range values {
		buf := make([]byte, 16)
		w := NewCursor(buf)
		require.NoError(t, w.WriteVarint32(v))
		assert.Equal(t, SizeVarint32(v), w.Pos)

		r := NewCursor(buf[:w.Pos])
		got, err := r.ReadVarint32()
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.True(t, r.Done())
	}
}

func TestVarint64RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 1 << 40, -(1 << 40), 9223372036854775807, -9223372036854775808}
	for _, v := range values {
		buf := make([]byte, 16)
		w := NewCursor(buf)
		require.NoError(t, w.WriteVarint64(v))
		assert.Equal(t, SizeVarint64(v), w.Pos)

		r := NewCursor(buf[:w.Pos])
		got, err := r.ReadVarint64()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestReadVarintTruncated(t *testing.T) {
	// A continuation byte with no follow-up byte must report EOF, not panic.
	r := NewCursor([]byte{0x80})
	_, err := r.ReadVarint32()
	assert.Equal(t, EOF, err)
}

func TestReadVarintOverflow(t *testing.T) {
	// Ten continuation bytes never terminate within the 5-byte 32-bit bound.
	buf := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00}
	r := NewCursor(buf)
	_, err := r.ReadVarint32()
	assert.Equal(t, Overflow, err)
}

func TestBytesRoundTrip(t *testing.T) {
	payload := []byte("hello, record")
	buf := make([]byte, SizeBytes(payload))
	w := NewCursor(buf)
	require.NoError(t, w.WriteBytes(payload))
	assert.Equal(t, len(buf), w.Pos)

	r := NewCursor(buf)
	got, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestBytesAliasesBuffer(t *testing.T) {
	buf := make([]byte, SizeBytes([]byte("abc")))
	w := NewCursor(buf)
	require.NoError(t, w.WriteBytes([]byte("abc")))

	r := NewCursor(buf)
	got, err := r.ReadBytes()
	require.NoError(t, err)
	got[0] = 'z'
	assert.Equal(t, byte('z'), buf[len(buf)-3])
}

func TestFloatRoundTrip(t *testing.T) {
	buf := make([]byte, 12)
	w := NewCursor(buf)
	require.NoError(t, w.WriteFloat32(3.5))
	require.NoError(t, w.WriteFloat64(-2.25))

	r := NewCursor(buf)
	f32, err := r.ReadFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), f32)
	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, -2.25, f64)
}

func TestASCIIDigitsRoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	w := NewCursor(buf)
	require.NoError(t, w.WriteASCIIDigits(42, 4))

	r := NewCursor(buf)
	got, err := r.ReadASCIIDigits(4, 4, 0, 9999)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestASCIIDigitsRangeRejected(t *testing.T) {
	buf := []byte("13")
	r := NewCursor(buf)
	_, err := r.ReadASCIIDigits(2, 2, 0, 12)
	assert.Equal(t, Overflow, err)
	// a rejected parse must not consume input
	assert.Equal(t, 0, r.Pos)
}

func TestExpectByte(t *testing.T) {
	r := NewCursor([]byte("-"))
	require.NoError(t, r.ExpectByte('-'))

	r2 := NewCursor([]byte(":"))
	assert.Equal(t, Overflow, r2.ExpectByte('-'))
}

func TestWriteOverflowsDestination(t *testing.T) {
	buf := make([]byte, 1)
	w := NewCursor(buf)
	err := w.WriteVarint64(1 << 40)
	assert.Equal(t, EOF, err)
}
