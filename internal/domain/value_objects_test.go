package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTask(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Task
	}{
		{"upper cases", "Buy milk", "BUY MILK"},
		{"trims surrounding space", "  call mom \t", "CALL MOM"},
		{"joins lines", "first\nsecond\r\nthird", "FIRST SECOND THIRD"},
		{"empty", "", ""},
		{"only whitespace", " \n\t ", ""},
		{"already normalized", "BUY MILK", "BUY MILK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTask(tt.input))
		})
	}
}

func TestNewTaskType(t *testing.T) {
	got, err := NewTaskType("programming")
	require.NoError(t, err)
	assert.Equal(t, TaskTypeProgramming, got)

	got, err = NewTaskType("")
	require.NoError(t, err)
	assert.Equal(t, TaskTypeOther, got)

	_, err = NewTaskType("chores")
	assert.ErrorIs(t, err, ErrInvalidTaskType)
}

func TestNewTaskPriority(t *testing.T) {
	got, err := NewTaskPriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, TaskPriorityHigh, got)

	got, err = NewTaskPriority(" ")
	require.NoError(t, err)
	assert.Equal(t, TaskPriorityAverage, got)

	_, err = NewTaskPriority("urgent")
	assert.ErrorIs(t, err, ErrInvalidTaskPriority)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.May, Day: 1}, d)
	assert.Equal(t, "2024-05-01", d.String())

	for _, bad := range []string{"", "01/05/2024", "2024-02-30", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDeadline, "input %q", bad)
	}
}

func TestDate_DaysUntil(t *testing.T) {
	deadline := Date{Year: 2024, Month: time.May, Day: 1}
	ref := Date{Year: 2024, Month: time.May, Day: 3}

	assert.Equal(t, -2, ref.DaysUntil(deadline))
	assert.Equal(t, 2, deadline.DaysUntil(ref))
	assert.Equal(t, 0, ref.DaysUntil(ref))

	// Crosses a leap day and a year boundary.
	assert.Equal(t, 366, Date{2024, time.January, 1}.DaysUntil(Date{2025, time.January, 1}))
	assert.Equal(t, Date{2024, time.March, 1}, Date{2024, time.February, 28}.AddDays(2))

	// Spans longer than time.Duration can hold.
	today := Date{2026, time.October, 17}
	assert.Equal(t, 172836, today.DaysUntil(Date{2500, time.January, 1}))
	assert.Equal(t, -119358, today.DaysUntil(Date{1700, time.January, 1}))
	assert.Equal(t, 3652058, Date{1, time.January, 1}.DaysUntil(Date{9999, time.December, 31}))
	assert.Equal(t, DeadlineOverdue, ClassifyDaysRemaining(today.DaysUntil(Date{1700, time.January, 1})))
}

func TestToday_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2024, time.May, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, Date{2024, time.May, 1}, Today(now, time.UTC))
	assert.Equal(t, Date{2024, time.May, 2}, Today(now, tokyo))
}

func TestClassifyDaysRemaining(t *testing.T) {
	assert.Equal(t, DeadlineOverdue, ClassifyDaysRemaining(-2))
	assert.Equal(t, DeadlineDueToday, ClassifyDaysRemaining(0))
	assert.Equal(t, DeadlineUpcoming, ClassifyDaysRemaining(5))
}

func TestRejection(t *testing.T) {
	reason, ok := Rejection(ErrNoSelection)
	assert.True(t, ok)
	assert.Equal(t, ReasonNoSelection, reason)

	assert.True(t, IsRejection(ErrDuplicatePending))
	assert.False(t, IsRejection(ErrMalformedDocument))
	assert.False(t, IsRejection(nil))
}
