package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFrame(t *testing.T) {
	cases := []struct {
		frame, rate int
		want        string
	}{
		{0, 25, "00:00:00:00"},
		{24, 25, "00:00:00:24"},
		{25, 25, "00:00:01:00"},
		{90000, 25, "01:00:00:00"},
		{89999, 25, "00:59:59:24"},
		{1800, 30, "00:01:00:00"},
		{-1, 25, Zero},
		{-5000, 30, Zero},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FromFrame(c.frame, c.rate), "frame=%d rate=%d", c.frame, c.rate)
	}
}

func TestFromFrameHoursOverflowWidth(t *testing.T) {
	tc := FromFrame(100*3600*25, 25)
	assert.Equal(t, "100:00:00:00", tc)
	// the strict parse pattern rejects the three digit hour field
	assert.Equal(t, 0, ToFrame(tc, 25))
}

func TestRoundTrip(t *testing.T) {
	for _, rate := range []int{1, 24, 25, 30, 50, 60} {
		for _, f := range []int{0, 1, rate - 1, rate, 59*60*rate + 7, 99*3600*rate + rate - 1} {
			require.Equal(t, f, ToFrame(FromFrame(f, rate), rate), "frame=%d rate=%d", f, rate)
		}
	}
}

func TestToFrame(t *testing.T) {
	assert.Equal(t, 0, ToFrame("bad-format", 25))
	assert.Equal(t, 0, ToFrame("1:00:00:00", 25))
	assert.Equal(t, 0, ToFrame("00:00:00:00:00", 25))
	assert.Equal(t, 90000, ToFrame("01:00:00:00", 25))
	// ranges are not validated when parsing
	assert.Equal(t, 99*60*25+99*25+99, ToFrame("00:99:99:99", 25))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("00:59:59:24", 25))
	assert.True(t, Valid("99:00:00:00", 25))
	assert.False(t, Valid("00:60:00:00", 25))
	assert.False(t, Valid("00:00:60:00", 25))
	assert.False(t, Valid("00:00:00:25", 25))
	assert.True(t, Valid("00:00:00:29", 30))
	assert.False(t, Valid("bad", 25))
	assert.False(t, Valid("", 25))
}

func TestComplete(t *testing.T) {
	got, ok := Complete("01", 25)
	require.True(t, ok)
	assert.Equal(t, "01:00:00:00", got)

	got, ok = Complete("01:30", 25)
	require.True(t, ok)
	assert.Equal(t, "01:30:00:00", got)

	got, ok = Complete("01:30:15", 25)
	require.True(t, ok)
	assert.Equal(t, "01:30:15:00", got)

	got, ok = Complete("00:00:10:12", 25)
	require.True(t, ok)
	assert.Equal(t, "00:00:10:12", got)

	_, ok = Complete("00:75", 25)
	assert.False(t, ok)
	_, ok = Complete("00:00:00:30", 25)
	assert.False(t, ok)
	_, ok = Complete("abc", 25)
	assert.False(t, ok)
}

func TestNonPositiveFramerateFallsBack(t *testing.T) {
	assert.Equal(t, FromFrame(50, DefaultFramerate), FromFrame(50, 0))
	assert.Equal(t, ToFrame("00:00:02:00", DefaultFramerate), ToFrame("00:00:02:00", -3))
	assert.False(t, Valid("00:00:00:00", 0))
}
