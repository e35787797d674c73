// Package habit contains habits, their daily completion logs and
// per-habit streaks, plus the pure rules that turn a completion
// into a streak update and an XP award.
package habit

import (
	"fmt"
	"time"

	"github.com/habit-hero/habit-hero/pkg/timeutil"
)

// Bounds for the default base XP derived from estimated minutes.
const (
	MinDefaultBaseXP = 5
	MaxDefaultBaseXP = 50
)

// Habit is a recurring behaviour built from cue, action and reward.
type Habit struct {
	ID               string
	UserID           string
	Name             string
	Cue              string
	Action           string
	Reward           string
	EstimatedMinutes int
	BaseXP           int
	IsBadHabit       bool
	ReplacesHabitID  string // empty when the habit replaces nothing
	Active           bool
}

// BelongsTo reports whether the habit is owned by userID.
func (h *Habit) BelongsTo(userID string) bool {
	return h.UserID == userID
}

// DefaultBaseXP derives base XP from estimated minutes:
// 5 XP per full 10 minutes, bounded to [5, 50].
func DefaultBaseXP(estimatedMinutes int) int {
	xp := (estimatedMinutes / 10) * 5
	if xp < MinDefaultBaseXP {
		return MinDefaultBaseXP
	}
	if xp > MaxDefaultBaseXP {
		return MaxDefaultBaseXP
	}
	return xp
}

// Log records one completion of a habit on a calendar day.
type Log struct {
	ID          string
	UserID      string
	HabitID     string
	Day         time.Time // UTC midnight
	CompletedAt time.Time
	XPEarned    int
}

// LogID is deterministic per habit and day, so a second completion of the
// same habit on the same day replaces the first log.
func LogID(habitID string, day time.Time) string {
	return fmt.Sprintf("log-%s-%s", habitID, timeutil.FormatDateStr(day))
}

// StreakState tracks consecutive-day completions of one habit by one user.
type StreakState struct {
	UserID           string
	HabitID          string
	CurrentStreak    int
	LongestStreak    int
	LastCompletedDay time.Time // zero when never completed
}

// HasLastCompletedDay reports whether a completion day was recorded.
func (s *StreakState) HasLastCompletedDay() bool {
	return !s.LastCompletedDay.IsZero()
}
