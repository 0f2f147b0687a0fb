package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGrid_MondayFirstMonth_NoLeadingCells(t *testing.T) {
	t.Parallel()

	// January 2024 starts on a Monday.
	cells := MonthGrid(2024, time.January)

	require.Len(t, cells, 31)
	require.False(t, cells[0].Empty())
	assert.Equal(t, 1, cells[0].Day.Day())
	assert.Equal(t, 31, cells[30].Day.Day())
}

func TestMonthGrid_LeadingPlaceholders(t *testing.T) {
	t.Parallel()

	// March 2024 starts on a Friday: four empty cells (Mon-Thu).
	cells := MonthGrid(2024, time.March)

	require.Len(t, cells, 4+31)
	for i := 0; i < 4; i++ {
		assert.True(t, cells[i].Empty(), "cell %d should be a placeholder", i)
	}
	require.False(t, cells[4].Empty())
	assert.Equal(t, 1, cells[4].Day.Day())
}

func TestMonthGrid_SundayStart_SixLeadingCells(t *testing.T) {
	t.Parallel()

	// September 2024 starts on a Sunday, the last column of a Monday grid.
	cells := MonthGrid(2024, time.September)

	require.Len(t, cells, 6+30)
	for i := 0; i < 6; i++ {
		assert.True(t, cells[i].Empty())
	}
	assert.Equal(t, 1, cells[6].Day.Day())
}

func TestMonthGrid_NoTrailingFill(t *testing.T) {
	t.Parallel()

	// April 2024: 1 leading placeholder + 30 days = 31 cells, not a
	// multiple of 7. The last row is intentionally short.
	cells := MonthGrid(2024, time.April)
	assert.Equal(t, 31, len(cells))
}

func TestMonthGrid_LeapFebruary(t *testing.T) {
	t.Parallel()

	cells := MonthGrid(2024, time.February)

	// February 2024 starts on a Thursday: three placeholders, 29 days.
	require.Len(t, cells, 3+29)
	assert.Equal(t, 29, cells[len(cells)-1].Day.Day())
}

func TestWeekStrip_CenteredOnSelected(t *testing.T) {
	t.Parallel()

	selected := time.Date(2024, time.June, 15, 13, 45, 0, 0, time.Local)
	days := WeekStrip(selected)

	require.Equal(t, 7, len(days))
	assert.Equal(t, 12, days[0].Day())
	assert.Equal(t, 15, days[3].Day())
	assert.Equal(t, 18, days[6].Day())
	for i := 1; i < 7; i++ {
		assert.Equal(t, 24*time.Hour, days[i].Sub(days[i-1]))
	}
}

func TestWeekStrip_CrossesMonthBoundary(t *testing.T) {
	t.Parallel()

	selected := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	days := WeekStrip(selected)

	assert.Equal(t, time.February, days[0].Month())
	assert.Equal(t, 27, days[0].Day())
	assert.Equal(t, time.March, days[3].Month())
	assert.Equal(t, 1, days[3].Day())
	assert.Equal(t, 4, days[6].Day())
}

func TestWeekStrip_CrossesYearBoundary(t *testing.T) {
	t.Parallel()

	selected := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)
	days := WeekStrip(selected)

	assert.Equal(t, 2024, days[0].Year())
	assert.Equal(t, 29, days[0].Day())
	assert.Equal(t, 2025, days[6].Year())
	assert.Equal(t, 4, days[6].Day())
}

func TestSameDay(t *testing.T) {
	t.Parallel()

	morning := time.Date(2024, time.January, 5, 8, 0, 0, 0, time.Local)
	evening := time.Date(2024, time.January, 5, 23, 59, 0, 0, time.Local)
	nextDay := time.Date(2024, time.January, 6, 0, 0, 0, 0, time.Local)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(evening, nextDay))
}

func TestDateOf_TruncatesToMidnight(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, time.July, 9, 18, 30, 12, 99, time.Local)
	d := DateOf(ts)

	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, 0, d.Minute())
	assert.True(t, SameDay(ts, d))
}

func TestParseDay_RoundTrip(t *testing.T) {
	t.Parallel()

	d, err := ParseDay("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", FormatDay(d))

	_, err = ParseDay("01.03.2024")
	assert.Error(t, err)
}
