package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActiveBreak(t *testing.T) {
	start := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Minute)
	dur := 10

	t.Run("no breaks", func(t *testing.T) {
		att := Attendance{}
		assert.Nil(t, att.ActiveBreak())
	})

	t.Run("all breaks closed", func(t *testing.T) {
		att := Attendance{Breaks: []Break{
			{ID: "b1", StartTime: start, EndTime: &end, Duration: &dur},
		}}
		assert.Nil(t, att.ActiveBreak())
	})

	t.Run("one active break", func(t *testing.T) {
		att := Attendance{Breaks: []Break{
			{ID: "b1", StartTime: start, EndTime: &end, Duration: &dur},
			{ID: "b2", StartTime: end.Add(time.Hour)},
		}}
		active := att.ActiveBreak()
		assert.NotNil(t, active)
		assert.Equal(t, "b2", active.ID)
	})
}

func TestSumBreakMinutes(t *testing.T) {
	d1, d2 := 10, 25
	att := Attendance{Breaks: []Break{
		{Duration: &d1},
		{Duration: &d2},
		{}, // active break, no duration yet
	}}
	assert.Equal(t, 35, att.SumBreakMinutes())
}

func TestCheckedFlags(t *testing.T) {
	now := time.Now()

	att := Attendance{}
	assert.False(t, att.IsCheckedIn())
	assert.False(t, att.IsCheckedOut())

	att.CheckIn = &now
	assert.True(t, att.IsCheckedIn())
	assert.False(t, att.IsCheckedOut())

	att.CheckOut = &now
	assert.True(t, att.IsCheckedOut())
}
