package command

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/internal/infrastructure/persistence/memory"
)

func TestCreateUserHandler_Handle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Date(2024, 2, 1, 10, 30, 0, 0, time.FixedZone("UTC+5", 5*60*60))
	h := NewCreateUserHandler(store.Users, store.Characters, &sequentialIDs{}, fixedClock(now), discardLogger())

	res, err := h.Handle(ctx, CreateUserCommand{LongTermVision: "  Become a calm, strong writer  "})
	require.NoError(t, err)

	assert.Equal(t, "user-1", res.User.ID)
	assert.Equal(t, "Become a calm, strong writer", res.User.LongTermVision)
	assert.Equal(t, now.UTC(), res.User.CreatedAt)
	assert.Equal(t, time.UTC, res.User.CreatedAt.Location())

	assert.Equal(t, "user-1", res.Character.UserID)
	assert.Equal(t, 1, res.Character.Level)
	assert.Equal(t, 0, res.Character.XP)
	assert.Equal(t, 100, res.Character.XPToNextLevel)
	assert.Empty(t, res.Character.Appearance)

	storedUser, err := store.Users.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, res.User, storedUser)

	storedChar, err := store.Characters.GetForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, res.Character, storedChar)
}

func TestCreateUserHandler_ValidationError(t *testing.T) {
	store := memory.NewStore()
	h := NewCreateUserHandler(store.Users, store.Characters, &sequentialIDs{}, fixedClock(time.Now()), nil)

	_, err := h.Handle(context.Background(), CreateUserCommand{LongTermVision: strings.Repeat("x", 4001)})

	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestCreateUserHandler_CharacterSaveFails(t *testing.T) {
	store := memory.NewStore()
	h := NewCreateUserHandler(store.Users, failingCharacters{}, &sequentialIDs{}, fixedClock(time.Now()), discardLogger())

	_, err := h.Handle(context.Background(), CreateUserCommand{})

	assert.ErrorIs(t, err, errStorageDown)
}
