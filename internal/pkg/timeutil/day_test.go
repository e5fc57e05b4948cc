package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundMinutes(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want int
	}{
		{"zero", 0, 0},
		{"under half minute", 29 * time.Second, 0},
		{"exactly half minute rounds up", 30 * time.Second, 1},
		{"five minutes", 5 * time.Minute, 5},
		{"90500ms rounds to 2", 90500 * time.Millisecond, 2},
		{"90499ms rounds to 2", 90499 * time.Millisecond, 2},
		{"89999ms rounds to 1", 89999 * time.Millisecond, 1},
		{"59 minutes 29s", 59*time.Minute + 29*time.Second, 59},
		{"59 minutes 30s", 59*time.Minute + 30*time.Second, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundMinutes(tt.d))
		})
	}
}

func TestDayOf(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 2024-03-15 01:30 UTC is 08:30 the same day in Jakarta (UTC+7).
	now := time.Date(2024, 3, 15, 1, 30, 0, 0, time.UTC)
	day := DayOf(now, jakarta)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, jakarta), day.Start)
	assert.Equal(t, 24*time.Hour, day.End.Sub(day.Start))
}

func TestDayOf_CrossesMidnightBoundary(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 2024-03-15 20:00 UTC is already 2024-03-16 03:00 in Jakarta.
	now := time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC)
	day := DayOf(now, jakarta)

	assert.Equal(t, 16, day.Start.Day())
}

func TestDayContains_HalfOpen(t *testing.T) {
	day := DayOf(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), time.UTC)

	assert.True(t, day.Contains(day.Start))
	assert.True(t, day.Contains(day.End.Add(-time.Nanosecond)))
	assert.False(t, day.Contains(day.End))
	assert.False(t, day.Contains(day.Start.Add(-time.Nanosecond)))
}
