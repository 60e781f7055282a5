package datespan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	in := time.Date(2025, 6, 9, 14, 35, 12, 999, loc)
	out := Midnight(in)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, loc), out)
	assert.Equal(t, loc, out.Location())
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC)
	out := EndOfDay(in)
	assert.Equal(t, 9, out.Day())
	assert.True(t, out.Before(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, out.After(time.Date(2025, 6, 9, 23, 59, 59, 0, time.UTC)))
}

func TestDays(t *testing.T) {
	start := time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 11, 3, 0, 0, 0, time.UTC)

	days := Days(start, end)
	require.Len(t, days, 3)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), days[1])
	assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), days[2])
}

func TestDays_SingleDayAndInverted(t *testing.T) {
	day := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	assert.Len(t, Days(day, day), 1)
	assert.Nil(t, Days(day.AddDate(0, 0, 1), day))
}

func TestDays_CrossesMonthBoundary(t *testing.T) {
	days := Days(
		time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
	)
	require.Len(t, days, 4)
	assert.Equal(t, time.July, days[2].Month())
}

func TestIsWeekend(t *testing.T) {
	assert.False(t, IsWeekend(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)))  // Monday
	assert.False(t, IsWeekend(time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC))) // Friday
	assert.True(t, IsWeekend(time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)))  // Saturday
	assert.True(t, IsWeekend(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))  // Sunday
}

func TestIsFullDay(t *testing.T) {
	midnight := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsFullDay(midnight, midnight.AddDate(0, 0, 1)))
	assert.False(t, IsFullDay(midnight, midnight.Add(8*time.Hour)))
	assert.False(t, IsFullDay(midnight.Add(time.Minute), midnight.AddDate(0, 0, 1)))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 6, 9, 1, 0, 0, 0, time.UTC)
	b := time.Date(2025, 6, 9, 23, 0, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, b.AddDate(0, 0, 1)))
	assert.False(t, SameDay(a, b.AddDate(1, 0, 0)))
}

func TestMinutesOfDay(t *testing.T) {
	assert.Equal(t, 0, MinutesOfDay(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 7*60+30, MinutesOfDay(time.Date(2025, 6, 9, 7, 30, 0, 0, time.UTC)))
	assert.Equal(t, 23*60+59, MinutesOfDay(time.Date(2025, 6, 9, 23, 59, 59, 0, time.UTC)))
}

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("07:30")
	require.NoError(t, err)
	assert.Equal(t, 450, minutes)

	minutes, err = ParseClock("17:30")
	require.NoError(t, err)
	assert.Equal(t, 1050, minutes)

	minutes, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	for _, bad := range []string{"", "7", "24:00", "12:60", "ab:cd", "12:34:56"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
