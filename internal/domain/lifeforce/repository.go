package lifeforce

import (
	"context"
	"time"
)

// Repository persists at most one check per (user, day).
type Repository interface {
	// GetForDay returns the check or shared.ErrLifeForceNotFound.
	GetForDay(ctx context.Context, userID string, day time.Time) (*Check, error)

	// Save creates or replaces the check for (c.UserID, c.Day).
	Save(ctx context.Context, c *Check) error
}
