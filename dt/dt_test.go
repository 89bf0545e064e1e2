package dt

import (
	"testing"

	"github.com/solidcoredata/reccodec/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpackDateRoundTrip(t *testing.T) {
	d, err := PackDate(2020, 7, 6)
	require.NoError(t, err)
	year, month, day, doy, dow := d.Unpack()
	assert.Equal(t, 2020, year)
	assert.Equal(t, 7, month)
	assert.Equal(t, 6, day)
	assert.Equal(t, 188, doy)
	_ = dow
}

func TestComputeDaysLeapRule(t *testing.T) {
	_, _, err := ComputeDays(2000, 2, 29)
	assert.NoError(t, err)
	_, _, err = ComputeDays(1900, 2, 29)
	assert.Equal(t, ErrOutOfRange, err)
	_, _, err = ComputeDays(2001, 2, 29)
	assert.Equal(t, ErrOutOfRange, err)
	_, _, err = ComputeDays(2004, 2, 29)
	assert.NoError(t, err)
}

func TestComputeDaysYearBounds(t *testing.T) {
	_, _, err := ComputeDays(999, 1, 1)
	assert.Equal(t, ErrOutOfRange, err)
	_, _, err = ComputeDays(2901, 1, 1)
	assert.Equal(t, ErrOutOfRange, err)
	_, _, err = ComputeDays(MinYear, 1, 1)
	assert.NoError(t, err)
	_, _, err = ComputeDays(MaxYear, 12, 31)
	assert.NoError(t, err)
}

func TestEpochMsRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 86400000, -86400000, 1000000000000, MinEpochMs, MaxEpochMs}
	for _, ms := range values {
		v, err := EpochMsToDateTime(ms)
		require.NoError(t, err)
		got := DateTimeToEpochMs(v)
		assert.Equal(t, ms, got, "round trip for %d", ms)
	}
}

func TestEpochZeroIsUnixEpoch(t *testing.T) {
	v, err := EpochMsToDateTime(0)
	require.NoError(t, err)
	year, month, day, hour, minute, second, ms, _, _ := v.Unpack()
	assert.Equal(t, 1970, year)
	assert.Equal(t, 1, month)
	assert.Equal(t, 1, day)
	assert.Equal(t, 0, hour)
	assert.Equal(t, 0, minute)
	assert.Equal(t, 0, second)
	assert.Equal(t, 0, ms)
}

func TestDateASCIIRoundTrip(t *testing.T) {
	d, err := PackDate(2020, 7, 6)
	require.NoError(t, err)
	buf := make([]byte, SizeDateASCII)
	w := wire.NewCursor(buf)
	require.NoError(t, WriteDateASCII(w, d))
	assert.Equal(t, "2020-07-06", string(buf))

	r := wire.NewCursor(buf)
	got, err := ReadDateASCII(r)
	require.NoError(t, err)
	year, month, day, _, _ := got.Unpack()
	assert.Equal(t, 2020, year)
	assert.Equal(t, 7, month)
	assert.Equal(t, 6, day)
}

func TestTimeASCIIRoundTrip(t *testing.T) {
	tm, err := PackTime(13, 5, 9, 250)
	require.NoError(t, err)
	buf := make([]byte, SizeTimeASCII)
	w := wire.NewCursor(buf)
	require.NoError(t, WriteTimeASCII(w, tm))
	assert.Equal(t, "13:05:09.250", string(buf))
}

func TestDateTimeDefaultSubstitution(t *testing.T) {
	var zero DateTime
	buf := make([]byte, SizeDateTimeASCII)
	w := wire.NewCursor(buf)
	require.NoError(t, WriteDateTimeASCII(w, zero))
	assert.Equal(t, "1000-01-01 00:00:00.000", string(buf))
}

func TestDateTimeASCIIDateOnlyParses(t *testing.T) {
	r := wire.NewCursor([]byte("2020-07-06"))
	v, err := ReadDateTimeASCII(r)
	require.NoError(t, err)
	year, month, day, hour, _, _, _, _, _ := v.Unpack()
	assert.Equal(t, 2020, year)
	assert.Equal(t, 7, month)
	assert.Equal(t, 6, day)
	assert.Equal(t, 0, hour)
}
