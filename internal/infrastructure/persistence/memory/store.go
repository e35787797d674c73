// Package memory implements every domain repository on top of in-process
// maps. It is the default storage for the CLI and the backing store of the
// application tests. Values are copied on the way in and out so callers
// never share state with the store.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/habit-hero/habit-hero/internal/domain/character"
	"github.com/habit-hero/habit-hero/internal/domain/focus"
	"github.com/habit-hero/habit-hero/internal/domain/habit"
	"github.com/habit-hero/habit-hero/internal/domain/lifeforce"
	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/internal/domain/user"
	"github.com/habit-hero/habit-hero/pkg/timeutil"
)

// Store groups the in-memory repositories.
type Store struct {
	Users      *UserRepository
	Characters *CharacterRepository
	Habits     *HabitRepository
	Logs       *HabitLogRepository
	Streaks    *StreakRepository
	LifeForce  *LifeForceRepository
	Focus      *FocusSessionRepository
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		Users:      NewUserRepository(),
		Characters: NewCharacterRepository(),
		Habits:     NewHabitRepository(),
		Logs:       NewHabitLogRepository(),
		Streaks:    NewStreakRepository(),
		LifeForce:  NewLifeForceRepository(),
		Focus:      NewFocusSessionRepository(),
	}
}

func dayKey(userID string, day time.Time) string {
	return userID + "|" + timeutil.FormatDateStr(day)
}

// ══════════════════════════════════════════════════════════════════════════════
// USERS
// ══════════════════════════════════════════════════════════════════════════════

// UserRepository implements user.Repository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

// NewUserRepository creates an empty UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]user.User)}
}

// Get implements user.Repository.
func (r *UserRepository) Get(_ context.Context, userID string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, shared.ErrUserNotFound
	}
	return &u, nil
}

// Save implements user.Repository.
func (r *UserRepository) Save(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[u.ID] = *u
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// CHARACTERS
// ══════════════════════════════════════════════════════════════════════════════

// CharacterRepository implements character.Repository.
type CharacterRepository struct {
	mu         sync.RWMutex
	characters map[string]character.Character
}

// NewCharacterRepository creates an empty CharacterRepository.
func NewCharacterRepository() *CharacterRepository {
	return &CharacterRepository{characters: make(map[string]character.Character)}
}

// GetForUser implements character.Repository.
func (r *CharacterRepository) GetForUser(_ context.Context, userID string) (*character.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.characters[userID]
	if !ok {
		return nil, shared.ErrCharacterNotFound
	}
	return cloneCharacter(c), nil
}

// Save implements character.Repository.
func (r *CharacterRepository) Save(_ context.Context, c *character.Character) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.characters[c.UserID] = *cloneCharacter(*c)
	return nil
}

func cloneCharacter(c character.Character) *character.Character {
	c.Appearance = maps.Clone(c.Appearance)
	if c.Appearance == nil {
		c.Appearance = make(map[string]string)
	}
	return &c
}

// ══════════════════════════════════════════════════════════════════════════════
// HABITS
// ══════════════════════════════════════════════════════════════════════════════

// HabitRepository implements habit.Repository.
type HabitRepository struct {
	mu     sync.RWMutex
	habits map[string]habit.Habit
	order  []string // insertion order of habit IDs
}

// NewHabitRepository creates an empty HabitRepository.
func NewHabitRepository() *HabitRepository {
	return &HabitRepository{habits: make(map[string]habit.Habit)}
}

// Get implements habit.Repository.
func (r *HabitRepository) Get(_ context.Context, habitID string) (*habit.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.habits[habitID]
	if !ok {
		return nil, shared.ErrHabitNotFound
	}
	return &h, nil
}

// ListForUser implements habit.Repository. Inactive habits are skipped and
// the result keeps creation order.
func (r *HabitRepository) ListForUser(_ context.Context, userID string) ([]*habit.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*habit.Habit, 0)
	for _, id := range r.order {
		h := r.habits[id]
		if h.UserID == userID && h.Active {
			result = append(result, &h)
		}
	}
	return result, nil
}

// Save implements habit.Repository.
func (r *HabitRepository) Save(_ context.Context, h *habit.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.habits[h.ID]; !exists {
		r.order = append(r.order, h.ID)
	}
	r.habits[h.ID] = *h
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HABIT LOGS
// ══════════════════════════════════════════════════════════════════════════════

// HabitLogRepository implements habit.LogRepository.
type HabitLogRepository struct {
	mu   sync.RWMutex
	logs map[string]habit.Log
}

// NewHabitLogRepository creates an empty HabitLogRepository.
func NewHabitLogRepository() *HabitLogRepository {
	return &HabitLogRepository{logs: make(map[string]habit.Log)}
}

// ListForDay implements habit.LogRepository. Logs are ordered by completion time.
func (r *HabitLogRepository) ListForDay(_ context.Context, userID string, day time.Time) ([]*habit.Log, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*habit.Log, 0)
	for _, l := range r.logs {
		if l.UserID == userID && timeutil.IsSameDay(l.Day, day) {
			result = append(result, &l)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CompletedAt.Equal(result[j].CompletedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CompletedAt.Before(result[j].CompletedAt)
	})
	return result, nil
}

// Save implements habit.LogRepository.
func (r *HabitLogRepository) Save(_ context.Context, l *habit.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs[l.ID] = *l
	return nil
}

// Len returns the number of stored logs.
func (r *HabitLogRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.logs)
}

// ══════════════════════════════════════════════════════════════════════════════
// STREAKS
// ══════════════════════════════════════════════════════════════════════════════

// StreakRepository implements habit.StreakRepository.
type StreakRepository struct {
	mu      sync.RWMutex
	streaks map[string]habit.StreakState
}

// NewStreakRepository creates an empty StreakRepository.
func NewStreakRepository() *StreakRepository {
	return &StreakRepository{streaks: make(map[string]habit.StreakState)}
}

func streakKey(userID, habitID string) string {
	return userID + "|" + habitID
}

// Get implements habit.StreakRepository.
func (r *StreakRepository) Get(_ context.Context, userID, habitID string) (*habit.StreakState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.streaks[streakKey(userID, habitID)]
	if !ok {
		return nil, shared.ErrStreakNotFound
	}
	return &s, nil
}

// Save implements habit.StreakRepository.
func (r *StreakRepository) Save(_ context.Context, s *habit.StreakState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.streaks[streakKey(s.UserID, s.HabitID)] = *s
	return nil
}

// Len returns the number of stored streaks.
func (r *StreakRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.streaks)
}

// ══════════════════════════════════════════════════════════════════════════════
// LIFE FORCE
// ══════════════════════════════════════════════════════════════════════════════

// LifeForceRepository implements lifeforce.Repository.
type LifeForceRepository struct {
	mu     sync.RWMutex
	checks map[string]lifeforce.Check
}

// NewLifeForceRepository creates an empty LifeForceRepository.
func NewLifeForceRepository() *LifeForceRepository {
	return &LifeForceRepository{checks: make(map[string]lifeforce.Check)}
}

// GetForDay implements lifeforce.Repository.
func (r *LifeForceRepository) GetForDay(_ context.Context, userID string, day time.Time) (*lifeforce.Check, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.checks[dayKey(userID, day)]
	if !ok {
		return nil, shared.ErrLifeForceNotFound
	}
	return &c, nil
}

// Save implements lifeforce.Repository. A later check for the same day
// replaces the earlier one.
func (r *LifeForceRepository) Save(_ context.Context, c *lifeforce.Check) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.checks[dayKey(c.UserID, c.Day)] = *c
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// FOCUS SESSIONS
// ══════════════════════════════════════════════════════════════════════════════

// FocusSessionRepository implements focus.Repository.
type FocusSessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]focus.Session
}

// NewFocusSessionRepository creates an empty FocusSessionRepository.
func NewFocusSessionRepository() *FocusSessionRepository {
	return &FocusSessionRepository{sessions: make(map[string]focus.Session)}
}

// Get implements focus.Repository.
func (r *FocusSessionRepository) Get(_ context.Context, sessionID string) (*focus.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, shared.ErrFocusSessionNotFound
	}
	if s.CompletedAt != nil {
		completed := *s.CompletedAt
		s.CompletedAt = &completed
	}
	return &s, nil
}

// Save implements focus.Repository.
func (r *FocusSessionRepository) Save(_ context.Context, s *focus.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *s
	if s.CompletedAt != nil {
		completed := *s.CompletedAt
		stored.CompletedAt = &completed
	}
	r.sessions[s.ID] = stored
	return nil
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
