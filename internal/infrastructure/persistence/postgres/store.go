package postgres

import (
	"github.com/habit-hero/habit-hero/internal/domain/character"
	"github.com/habit-hero/habit-hero/internal/domain/focus"
	"github.com/habit-hero/habit-hero/internal/domain/habit"
	"github.com/habit-hero/habit-hero/internal/domain/lifeforce"
	"github.com/habit-hero/habit-hero/internal/domain/user"
)

// Store groups the PostgreSQL repositories sharing one connection.
type Store struct {
	Users      *UserRepository
	Characters *CharacterRepository
	Habits     *HabitRepository
	Logs       *HabitLogRepository
	Streaks    *StreakRepository
	LifeForce  *LifeForceRepository
	Focus      *FocusSessionRepository
}

// NewStore creates all repositories on conn.
func NewStore(conn *Connection) *Store {
	return &Store{
		Users:      NewUserRepository(conn),
		Characters: NewCharacterRepository(conn),
		Habits:     NewHabitRepository(conn),
		Logs:       NewHabitLogRepository(conn),
		Streaks:    NewStreakRepository(conn),
		LifeForce:  NewLifeForceRepository(conn),
		Focus:      NewFocusSessionRepository(conn),
	}
}

// Compile-time interface checks.
var (
	_ user.Repository        = (*UserRepository)(nil)
	_ character.Repository   = (*CharacterRepository)(nil)
	_ habit.Repository       = (*HabitRepository)(nil)
	_ habit.LogRepository    = (*HabitLogRepository)(nil)
	_ habit.StreakRepository = (*StreakRepository)(nil)
	_ lifeforce.Repository   = (*LifeForceRepository)(nil)
	_ focus.Repository       = (*FocusSessionRepository)(nil)
)
