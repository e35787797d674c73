package habit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habit-hero/habit-hero/pkg/timeutil"
)

func testHabit(baseXP int) *Habit {
	return &Habit{ID: "habit-1", UserID: "user-1", Name: "Read", BaseXP: baseXP, Active: true}
}

func TestCalculateNewStreak_NoPreviousState(t *testing.T) {
	today := timeutil.Date(2024, time.May, 10)

	s := CalculateNewStreak(nil, testHabit(10), today)

	require.NotNil(t, s)
	assert.Equal(t, "user-1", s.UserID)
	assert.Equal(t, "habit-1", s.HabitID)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 1, s.LongestStreak)
	assert.Equal(t, today, s.LastCompletedDay)
}

func TestCalculateNewStreak(t *testing.T) {
	today := timeutil.Date(2024, time.May, 10)

	tests := []struct {
		name        string
		existing    StreakState
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "consecutive day extends",
			existing:    StreakState{CurrentStreak: 3, LongestStreak: 3, LastCompletedDay: today.AddDate(0, 0, -1)},
			wantCurrent: 4,
			wantLongest: 4,
		},
		{
			name:        "consecutive day keeps larger longest",
			existing:    StreakState{CurrentStreak: 2, LongestStreak: 9, LastCompletedDay: today.AddDate(0, 0, -1)},
			wantCurrent: 3,
			wantLongest: 9,
		},
		{
			name:        "gap resets",
			existing:    StreakState{CurrentStreak: 7, LongestStreak: 7, LastCompletedDay: today.AddDate(0, 0, -2)},
			wantCurrent: 1,
			wantLongest: 7,
		},
		{
			name:        "same day resets",
			existing:    StreakState{CurrentStreak: 4, LongestStreak: 5, LastCompletedDay: today},
			wantCurrent: 1,
			wantLongest: 5,
		},
		{
			name:        "no recorded day resets",
			existing:    StreakState{CurrentStreak: 4, LongestStreak: 4},
			wantCurrent: 1,
			wantLongest: 4,
		},
		{
			name:        "completion day in the future resets",
			existing:    StreakState{CurrentStreak: 2, LongestStreak: 2, LastCompletedDay: today.AddDate(0, 0, 1)},
			wantCurrent: 1,
			wantLongest: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := tt.existing
			existing.UserID, existing.HabitID = "user-1", "habit-1"

			s := CalculateNewStreak(&existing, testHabit(10), today)

			assert.Equal(t, tt.wantCurrent, s.CurrentStreak)
			assert.Equal(t, tt.wantLongest, s.LongestStreak)
			assert.Equal(t, today, s.LastCompletedDay)
			assert.GreaterOrEqual(t, s.LongestStreak, s.CurrentStreak)
		})
	}
}

func TestCalculateNewStreak_DayBoundaryIgnoresTimeOfDay(t *testing.T) {
	yesterdayLate := time.Date(2024, time.May, 9, 23, 59, 0, 0, time.UTC)
	todayEarly := time.Date(2024, time.May, 10, 0, 1, 0, 0, time.UTC)
	existing := &StreakState{CurrentStreak: 1, LongestStreak: 1, LastCompletedDay: timeutil.StartOfDay(yesterdayLate)}

	s := CalculateNewStreak(existing, testHabit(10), todayEarly)

	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, timeutil.Date(2024, time.May, 10), s.LastCompletedDay)
}

func TestCalculateNewStreak_DoesNotMutateExisting(t *testing.T) {
	today := timeutil.Date(2024, time.May, 10)
	existing := &StreakState{CurrentStreak: 3, LongestStreak: 3, LastCompletedDay: today.AddDate(0, 0, -1)}

	_ = CalculateNewStreak(existing, testHabit(10), today)

	assert.Equal(t, 3, existing.CurrentStreak)
}

func TestXPGain(t *testing.T) {
	tests := []struct {
		baseXP int
		streak int
		want   int
	}{
		{baseXP: 10, streak: 0, want: 10},
		{baseXP: 10, streak: 1, want: 10},
		{baseXP: 10, streak: 4, want: 10},
		{baseXP: 10, streak: 5, want: 11},
		{baseXP: 10, streak: 10, want: 12},
		{baseXP: 20, streak: 15, want: 26},
		{baseXP: 10, streak: 25, want: 15},
		{baseXP: 10, streak: 100, want: 15},
		{baseXP: 0, streak: 30, want: 0},
	}

	for _, tt := range tests {
		got := XPGain(testHabit(tt.baseXP), &StreakState{CurrentStreak: tt.streak})
		assert.Equal(t, tt.want, got, "base=%d streak=%d", tt.baseXP, tt.streak)
	}
}

func TestXPGain_MonotoneInStreak(t *testing.T) {
	h := testHabit(37)
	prev := 0
	for streak := 0; streak <= 60; streak++ {
		got := XPGain(h, &StreakState{CurrentStreak: streak})
		assert.GreaterOrEqual(t, got, prev, "streak=%d", streak)
		assert.GreaterOrEqual(t, got, h.BaseXP)
		assert.LessOrEqual(t, got, int(float64(h.BaseXP)*1.5))
		prev = got
	}
}

func TestDefaultBaseXP(t *testing.T) {
	tests := map[int]int{
		0:   5,
		9:   5,
		10:  5,
		19:  5,
		20:  10,
		45:  20,
		100: 50,
		240: 50,
	}
	for minutes, want := range tests {
		assert.Equal(t, want, DefaultBaseXP(minutes), "minutes=%d", minutes)
	}
}

func TestLogID(t *testing.T) {
	day := time.Date(2024, time.January, 5, 17, 30, 0, 0, time.UTC)
	assert.Equal(t, "log-habit-abc-2024-01-05", LogID("habit-abc", day))
}
