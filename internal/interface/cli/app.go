package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/habit-hero/habit-hero/config"
	"github.com/habit-hero/habit-hero/internal/application/command"
	"github.com/habit-hero/habit-hero/internal/application/query"
	"github.com/habit-hero/habit-hero/internal/domain/character"
	"github.com/habit-hero/habit-hero/internal/domain/focus"
	"github.com/habit-hero/habit-hero/internal/domain/habit"
	"github.com/habit-hero/habit-hero/internal/domain/lifeforce"
	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/internal/domain/user"
	"github.com/habit-hero/habit-hero/internal/infrastructure/identity"
	"github.com/habit-hero/habit-hero/internal/infrastructure/persistence/memory"
	"github.com/habit-hero/habit-hero/internal/infrastructure/persistence/postgres"
	rediscache "github.com/habit-hero/habit-hero/internal/infrastructure/persistence/redis"
	"github.com/habit-hero/habit-hero/pkg/retry"
)

// ErrMigrationsNeedPostgres is returned by migrate subcommands on the memory driver.
var ErrMigrationsNeedPostgres = errors.New("migrations require STORAGE_DRIVER=postgres")

// ══════════════════════════════════════════════════════════════════════════════
// APPLICATION WIRING
// ══════════════════════════════════════════════════════════════════════════════

// App holds the repositories and collaborators one CLI invocation runs on.
type App struct {
	Users      user.Repository
	Characters character.Repository
	Habits     habit.Repository
	Logs       habit.LogRepository
	Streaks    habit.StreakRepository
	LifeForce  lifeforce.Repository
	Focus      focus.Repository

	IDs    shared.IDGenerator
	Clock  shared.Clock
	Logger *slog.Logger

	// Conn is nil on the memory driver.
	Conn *postgres.Connection

	closers []func()
}

// OpenOptions tweaks how an App is opened.
type OpenOptions struct {
	// SkipMigrations disables DB_AUTO_MIGRATE for this invocation.
	SkipMigrations bool
}

// Opener creates the App for a command.
type Opener func(ctx context.Context, opts OpenOptions) (*App, error)

// NewMemoryApp wires an App on top of an in-memory store.
func NewMemoryApp(store *memory.Store, ids shared.IDGenerator, clock shared.Clock, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		Users:      store.Users,
		Characters: store.Characters,
		Habits:     store.Habits,
		Logs:       store.Logs,
		Streaks:    store.Streaks,
		LifeForce:  store.LifeForce,
		Focus:      store.Focus,
		IDs:        ids,
		Clock:      clock,
		Logger:     logger,
	}
}

// ConfigOpener returns an Opener that selects storage from cfg.
func ConfigOpener(cfg *config.Config, logger *slog.Logger) Opener {
	return func(ctx context.Context, opts OpenOptions) (*App, error) {
		switch cfg.Storage.Driver {
		case config.StoragePostgres:
			return openPostgres(ctx, cfg, opts, logger)
		default:
			logger.Debug("using in-memory storage")
			return NewMemoryApp(memory.NewStore(), identity.UUIDGenerator{}, identity.SystemClock{}, logger), nil
		}
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, opts OpenOptions, logger *slog.Logger) (*App, error) {
	poolOpts := postgres.PoolOptions{
		MaxConns:        cfg.Database.MaxOpenConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
	}

	conn, err := retry.DoWithData(ctx, func(ctx context.Context) (*postgres.Connection, error) {
		return postgres.NewConnectionFromURL(ctx, cfg.Database.URL, poolOpts)
	},
		retry.WithMaxAttempts(cfg.Database.ConnectAttempts),
		retry.WithRetryIf(func(err error) bool {
			return !errors.Is(err, postgres.ErrInvalidDatabaseURL)
		}),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Warn("database connection failed, retrying",
				"attempt", attempt,
				"delay", delay,
				"error", err,
			)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("connected to PostgreSQL")

	if cfg.Database.AutoMigrate && !opts.SkipMigrations {
		applied, err := postgres.NewMigrator(conn).Migrate(ctx)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		if applied > 0 {
			logger.Info("migrations applied", "count", applied)
		}
	}

	store := postgres.NewStore(conn)
	app := &App{
		Users:      store.Users,
		Characters: store.Characters,
		Habits:     store.Habits,
		Logs:       store.Logs,
		Streaks:    store.Streaks,
		LifeForce:  store.LifeForce,
		Focus:      store.Focus,
		IDs:        identity.UUIDGenerator{},
		Clock:      identity.SystemClock{},
		Logger:     logger,
		Conn:       conn,
	}
	app.closers = append(app.closers, conn.Close)

	// Redis is optional: a failed connection only disables the cache.
	if cfg.Redis.Enabled {
		rcfg := rediscache.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}
		cache, err := rediscache.NewCache(ctx, rcfg)
		if err != nil {
			logger.Warn("redis unavailable, character cache disabled", "error", err)
		} else {
			logger.Info("connected to Redis", "addr", rcfg.Addr())
			app.Characters = rediscache.NewCharacterCache(store.Characters, cache, cfg.Redis.CharacterTTL, logger)
			app.closers = append(app.closers, func() { _ = cache.Close() })
		}
	}

	return app, nil
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (a *App) createUser() *command.CreateUserHandler {
	return command.NewCreateUserHandler(a.Users, a.Characters, a.IDs, a.Clock, a.Logger)
}

func (a *App) createHabit() *command.CreateHabitHandler {
	return command.NewCreateHabitHandler(a.Habits, a.IDs, a.Logger)
}

func (a *App) completeHabit() *command.CompleteHabitHandler {
	return command.NewCompleteHabitHandler(a.Habits, a.Logs, a.Streaks, a.Characters, a.Clock, a.Logger)
}

func (a *App) logLifeForce() *command.LogLifeForceHandler {
	return command.NewLogLifeForceHandler(a.LifeForce, a.Characters, a.IDs, a.Clock, a.Logger)
}

func (a *App) listHabits() *query.ListHabitsHandler {
	return query.NewListHabitsHandler(a.Habits)
}

func (a *App) dailySummary() *query.GetDailySummaryHandler {
	return query.NewGetDailySummaryHandler(a.Logs, a.LifeForce, a.Characters, a.Clock)
}
