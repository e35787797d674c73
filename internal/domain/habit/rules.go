package habit

import (
	"math"
	"time"

	"github.com/habit-hero/habit-hero/pkg/timeutil"
)

// Streak bonus: +10% per full 5 days of streak, capped at +50%.
const (
	StreakBonusStep    = 5
	StreakBonusPerStep = 0.1
	StreakBonusCap     = 0.5
)

// CalculateNewStreak returns the streak after completing h on today.
//
// A completion on the day right after the last one extends the streak.
// Any other case, including a second completion on the same day, restarts
// it at 1. The longest streak never decreases.
func CalculateNewStreak(existing *StreakState, h *Habit, today time.Time) *StreakState {
	today = timeutil.StartOfDay(today)

	if existing == nil {
		return &StreakState{
			UserID:           h.UserID,
			HabitID:          h.ID,
			CurrentStreak:    1,
			LongestStreak:    1,
			LastCompletedDay: today,
		}
	}

	current := 1
	if existing.HasLastCompletedDay() && timeutil.DaysBetween(existing.LastCompletedDay, today) == 1 {
		current = existing.CurrentStreak + 1
	}

	longest := existing.LongestStreak
	if current > longest {
		longest = current
	}

	return &StreakState{
		UserID:           existing.UserID,
		HabitID:          existing.HabitID,
		CurrentStreak:    current,
		LongestStreak:    longest,
		LastCompletedDay: today,
	}
}

// XPGain returns the XP earned for completing h with streak s.
func XPGain(h *Habit, s *StreakState) int {
	steps := s.CurrentStreak / StreakBonusStep
	multiplier := 1.0 + math.Min(float64(steps)*StreakBonusPerStep, StreakBonusCap)
	return int(float64(h.BaseXP) * multiplier)
}
