package bufrange

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnsetIsNotSet(t *testing.T) {
	assert.False(t, Unset.IsSet())
}

func TestNewAndSlice(t *testing.T) {
	buf := []byte("hello world")
	r := New(6, 5)
	assert.True(t, r.IsSet())
	assert.Equal(t, 11, r.End())
	assert.Equal(t, "world", string(r.Slice(buf)))
}

func TestZeroLengthIsSet(t *testing.T) {
	r := New(3, 0)
	assert.True(t, r.IsSet())
	assert.Equal(t, []byte{}, r.Slice([]byte("abcdef")))
}

func TestEqualityByValue(t *testing.T) {
	assert.Equal(t, New(1, 2), New(1, 2))
	assert.NotEqual(t, New(1, 2), New(1, 3))
}

func TestNewPanicsOnInvalidInput(t *testing.T) {
	assert.Panics(t, func() { New(-1, 0) })
	assert.Panics(t, func() { New(0, -2) })
}
