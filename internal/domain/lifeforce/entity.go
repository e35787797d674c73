// Package lifeforce contains the daily self-assessment of exercise and diet.
package lifeforce

import (
	"time"

	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/pkg/timeutil"
)

// Score bounds and the XP awarded per score point.
const (
	MinScore   = 0
	MaxScore   = 3
	XPPerPoint = 5
)

// Check is one user's assessment for one calendar day.
// Saving a second check for the same day replaces the first.
type Check struct {
	ID            string
	UserID        string
	Day           time.Time // UTC midnight
	ExerciseScore int
	DietScore     int
}

// NewCheck builds a check with both scores clamped to [0, 3].
func NewCheck(id, userID string, day time.Time, exercise, diet int) *Check {
	return &Check{
		ID:            id,
		UserID:        userID,
		Day:           timeutil.StartOfDay(day),
		ExerciseScore: ClampScore(exercise),
		DietScore:     ClampScore(diet),
	}
}

// ClampScore bounds a raw score to [0, 3].
func ClampScore(score int) int {
	return shared.ClampInt(score, MinScore, MaxScore)
}

// XP returns the experience awarded for the check.
func (c *Check) XP() int {
	return (c.ExerciseScore + c.DietScore) * XPPerPoint
}
