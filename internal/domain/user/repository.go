package user

import "context"

// Repository persists users.
type Repository interface {
	// Get returns the user or shared.ErrUserNotFound.
	Get(ctx context.Context, userID string) (*User, error)

	// Save creates or replaces a user.
	Save(ctx context.Context, u *User) error
}
