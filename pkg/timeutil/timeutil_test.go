package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDay(t *testing.T) {
	in := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, Date(2024, time.March, 10), StartOfDay(in))

	// The calendar date comes from the value's own location.
	local := time.Date(2024, 3, 10, 1, 0, 0, 0, time.FixedZone("UTC+5", 5*60*60))
	assert.Equal(t, Date(2024, time.March, 10), StartOfDay(local))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", Date(2024, 1, 1), time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC), 0},
		{"next day", Date(2024, 1, 1), Date(2024, 1, 2), 1},
		{"late to early", time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC), 1},
		{"month boundary", Date(2024, 1, 31), Date(2024, 2, 1), 1},
		{"leap day", Date(2024, 2, 28), Date(2024, 3, 1), 2},
		{"backwards", Date(2024, 1, 5), Date(2024, 1, 1), -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.a, tt.b))
		})
	}
}

func TestIsConsecutiveDay(t *testing.T) {
	assert.True(t, IsConsecutiveDay(Date(2023, 12, 31), Date(2024, 1, 1)))
	assert.False(t, IsConsecutiveDay(Date(2024, 1, 1), Date(2024, 1, 1)))
	assert.False(t, IsConsecutiveDay(Date(2024, 1, 1), Date(2024, 1, 3)))
	assert.True(t, IsSameDay(Date(2024, 1, 1), time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, Date(2024, time.February, 29), d)
	assert.Equal(t, "2024-02-29", FormatDateStr(d))

	_, err = ParseDate("29.02.2024")
	assert.Error(t, err)
}
