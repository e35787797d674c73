package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/habit-hero/habit-hero/internal/domain/character"
	"github.com/habit-hero/habit-hero/internal/domain/habit"
	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/internal/infrastructure/persistence/memory"
)

var errStorageDown = errors.New("storage down")

// sequentialIDs hands out prefix-1, prefix-2, ...
type sequentialIDs struct {
	n int
}

func (g *sequentialIDs) NewID(prefix string) string {
	g.n++
	return fmt.Sprintf("%s-%d", prefix, g.n)
}

func fixedClock(t time.Time) shared.Clock {
	return shared.ClockFunc(func() time.Time { return t })
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// failingCharacters fails every call.
type failingCharacters struct{}

func (failingCharacters) GetForUser(context.Context, string) (*character.Character, error) {
	return nil, errStorageDown
}

func (failingCharacters) Save(context.Context, *character.Character) error {
	return errStorageDown
}

// recordingStreaks counts writes on top of an in-memory repository.
type recordingStreaks struct {
	*memory.StreakRepository
	saves int
}

func (r *recordingStreaks) Save(ctx context.Context, s *habit.StreakState) error {
	r.saves++
	return r.StreakRepository.Save(ctx, s)
}
