package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/habit-hero/habit-hero/internal/domain/character"
	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// USER REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// UserRepository implements user.Repository for PostgreSQL.
type UserRepository struct {
	conn *Connection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(conn *Connection) *UserRepository {
	return &UserRepository{conn: conn}
}

// Get returns a user by ID.
func (r *UserRepository) Get(ctx context.Context, userID string) (*user.User, error) {
	query := `SELECT id, long_term_vision, created_at FROM users WHERE id = $1`

	var u user.User
	err := r.conn.QueryRow(ctx, query, userID).Scan(&u.ID, &u.LongTermVision, &u.CreatedAt)
	if IsNoRows(err) {
		return nil, shared.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

// Save inserts or replaces a user.
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, long_term_vision, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			long_term_vision = EXCLUDED.long_term_vision,
			created_at = EXCLUDED.created_at
	`

	if _, err := r.conn.Exec(ctx, query, u.ID, u.LongTermVision, u.CreatedAt); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// CHARACTER REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// CharacterRepository implements character.Repository for PostgreSQL.
type CharacterRepository struct {
	conn *Connection
}

// NewCharacterRepository creates a new CharacterRepository.
func NewCharacterRepository(conn *Connection) *CharacterRepository {
	return &CharacterRepository{conn: conn}
}

// GetForUser returns the character of a user.
func (r *CharacterRepository) GetForUser(ctx context.Context, userID string) (*character.Character, error) {
	query := `
		SELECT user_id, level, xp, xp_to_next_level, appearance
		FROM characters
		WHERE user_id = $1
	`

	var (
		c              character.Character
		appearanceJSON []byte
	)
	err := r.conn.QueryRow(ctx, query, userID).Scan(
		&c.UserID,
		&c.Level,
		&c.XP,
		&c.XPToNextLevel,
		&appearanceJSON,
	)
	if IsNoRows(err) {
		return nil, shared.ErrCharacterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	c.Appearance = make(map[string]string)
	if len(appearanceJSON) > 0 {
		if err := json.Unmarshal(appearanceJSON, &c.Appearance); err != nil {
			return nil, fmt.Errorf("failed to decode appearance: %w", err)
		}
	}
	return &c, nil
}

// Save inserts or replaces a character.
func (r *CharacterRepository) Save(ctx context.Context, c *character.Character) error {
	query := `
		INSERT INTO characters (user_id, level, xp, xp_to_next_level, appearance, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			level = EXCLUDED.level,
			xp = EXCLUDED.xp,
			xp_to_next_level = EXCLUDED.xp_to_next_level,
			appearance = EXCLUDED.appearance,
			updated_at = NOW()
	`

	appearance := c.Appearance
	if appearance == nil {
		appearance = map[string]string{}
	}
	appearanceJSON, err := json.Marshal(appearance)
	if err != nil {
		return fmt.Errorf("failed to marshal appearance: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, c.UserID, c.Level, c.XP, c.XPToNextLevel, appearanceJSON); err != nil {
		return fmt.Errorf("failed to save character: %w", err)
	}
	return nil
}
