// Package focus contains timed focus sessions. Sessions are persisted by
// the storage adapters but no use case awards XP for them yet.
package focus

import (
	"context"
	"time"
)

// Session is a block of focused work.
type Session struct {
	ID              string
	UserID          string
	DurationMinutes int
	StartedAt       time.Time
	CompletedAt     *time.Time // nil while in progress
	XPEarned        int
}

// IsCompleted reports whether the session has been finished.
func (s *Session) IsCompleted() bool {
	return s.CompletedAt != nil
}

// Repository persists focus sessions.
type Repository interface {
	// Get returns the session or shared.ErrFocusSessionNotFound.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Save creates or replaces a session.
	Save(ctx context.Context, s *Session) error
}
