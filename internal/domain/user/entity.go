// Package user contains the User entity: a person tracking habits
// together with the long-term vision that motivates them.
package user

import (
	"strings"
	"time"
)

// User is immutable after creation.
type User struct {
	ID             string
	LongTermVision string
	CreatedAt      time.Time
}

// New creates a user. createdAt is stored in UTC.
func New(id, vision string, createdAt time.Time) *User {
	return &User{
		ID:             id,
		LongTermVision: strings.TrimSpace(vision),
		CreatedAt:      createdAt.UTC(),
	}
}
