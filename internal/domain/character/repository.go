package character

import "context"

// Repository persists characters keyed by user id.
type Repository interface {
	// GetForUser returns the user's character or shared.ErrCharacterNotFound.
	GetForUser(ctx context.Context, userID string) (*Character, error)

	// Save creates or replaces the character for c.UserID.
	Save(ctx context.Context, c *Character) error
}
