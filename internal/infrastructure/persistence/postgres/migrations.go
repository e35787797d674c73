package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATOR
// ══════════════════════════════════════════════════════════════════════════════

// Migration represents a database migration.
type Migration struct {
	Version   int
	Name      string
	UpSQL     string
	DownSQL   string
	AppliedAt time.Time
	IsApplied bool
}

// Migrator applies the embedded schema migrations.
type Migrator struct {
	conn       *Connection
	migrations []Migration
	tableName  string
}

// NewMigrator creates a migrator with the embedded migrations.
func NewMigrator(conn *Connection) *Migrator {
	return &Migrator{
		conn:       conn,
		migrations: GetMigrations(),
		tableName:  "schema_migrations",
	}
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`, m.tableName)

	if _, err := m.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func (m *Migrator) applied(ctx context.Context) (map[int]time.Time, error) {
	rows, err := m.conn.Query(ctx, fmt.Sprintf("SELECT version, applied_at FROM %s", m.tableName))
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var (
			version   int
			appliedAt time.Time
		)
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[version] = appliedAt
	}
	return applied, rows.Err()
}

// Migrate applies all pending migrations in version order and returns how
// many were applied.
func (m *Migrator) Migrate(ctx context.Context) (int, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mig := range m.migrations {
		if _, done := applied[mig.Version]; done {
			continue
		}

		err := m.conn.WithTx(ctx, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, mig.UpSQL); err != nil {
				return err
			}
			_, err := tx.Exec(ctx,
				fmt.Sprintf("INSERT INTO %s (version, name) VALUES ($1, $2)", m.tableName),
				mig.Version, mig.Name)
			return err
		})
		if err != nil {
			return count, fmt.Errorf("%w: version %d: %v", ErrMigrationFailed, mig.Version, err)
		}
		count++
	}
	return count, nil
}

// Rollback reverts the most recently applied migration. It is a no-op when
// nothing has been applied.
func (m *Migrator) Rollback(ctx context.Context) error {
	if err := m.ensureTable(ctx); err != nil {
		return err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return err
	}

	last := 0
	for v := range applied {
		if v > last {
			last = v
		}
	}
	if last == 0 {
		return nil
	}

	var target *Migration
	for i := range m.migrations {
		if m.migrations[i].Version == last {
			target = &m.migrations[i]
			break
		}
	}
	if target == nil || target.DownSQL == "" {
		return fmt.Errorf("%w: missing down SQL for migration %d", ErrMigrationFailed, last)
	}

	return m.conn.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, target.DownSQL); err != nil {
			return fmt.Errorf("failed to rollback migration %d: %w", last, err)
		}
		_, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE version = $1", m.tableName), last)
		return err
	})
}

// Status lists every known migration with its applied state.
func (m *Migrator) Status(ctx context.Context) ([]Migration, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]Migration, len(m.migrations))
	copy(result, m.migrations)
	for i := range result {
		if at, ok := applied[result[i].Version]; ok {
			result[i].IsApplied = true
			result[i].AppliedAt = at
		}
	}
	return result, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// EMBEDDED MIGRATIONS
// ══════════════════════════════════════════════════════════════════════════════

// GetMigrations returns all embedded migrations ordered by version.
func GetMigrations() []Migration {
	migrations := []Migration{
		{Version: 1, Name: "create_users_characters", UpSQL: migration001Up, DownSQL: migration001Down},
		{Version: 2, Name: "create_habits", UpSQL: migration002Up, DownSQL: migration002Down},
		{Version: 3, Name: "create_life_force_focus", UpSQL: migration003Up, DownSQL: migration003Down},
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations
}

const migration001Up = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    long_term_vision TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS characters (
    user_id TEXT PRIMARY KEY,
    level INTEGER NOT NULL DEFAULT 1,
    xp INTEGER NOT NULL DEFAULT 0,
    xp_to_next_level INTEGER NOT NULL DEFAULT 100,
    appearance JSONB NOT NULL DEFAULT '{}'::jsonb,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_level CHECK (level >= 1),
    CONSTRAINT valid_xp CHECK (xp >= 0)
);
`

const migration001Down = `
DROP TABLE IF EXISTS characters;
DROP TABLE IF EXISTS users;
`

const migration002Up = `
CREATE TABLE IF NOT EXISTS habits (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    cue TEXT NOT NULL DEFAULT '',
    action TEXT NOT NULL DEFAULT '',
    reward TEXT NOT NULL DEFAULT '',
    estimated_minutes INTEGER NOT NULL DEFAULT 0,
    base_xp INTEGER NOT NULL,
    is_bad_habit BOOLEAN NOT NULL DEFAULT FALSE,
    replaces_habit_id TEXT,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_base_xp CHECK (base_xp >= 0)
);

CREATE INDEX IF NOT EXISTS idx_habits_user_active ON habits(user_id, created_at) WHERE active;

CREATE TABLE IF NOT EXISTS habit_logs (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    habit_id TEXT NOT NULL,
    day DATE NOT NULL,
    completed_at TIMESTAMPTZ NOT NULL,
    xp_earned INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_habit_logs_user_day ON habit_logs(user_id, day);

CREATE TABLE IF NOT EXISTS habit_streaks (
    user_id TEXT NOT NULL,
    habit_id TEXT NOT NULL,
    current_streak INTEGER NOT NULL,
    longest_streak INTEGER NOT NULL,
    last_completed_day DATE,

    PRIMARY KEY (user_id, habit_id),
    CONSTRAINT valid_streak CHECK (current_streak >= 0 AND longest_streak >= current_streak)
);
`

const migration002Down = `
DROP TABLE IF EXISTS habit_streaks;
DROP TABLE IF EXISTS habit_logs;
DROP TABLE IF EXISTS habits;
`

const migration003Up = `
CREATE TABLE IF NOT EXISTS life_force_checks (
    id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    day DATE NOT NULL,
    exercise_score SMALLINT NOT NULL,
    diet_score SMALLINT NOT NULL,

    PRIMARY KEY (user_id, day),
    CONSTRAINT valid_exercise CHECK (exercise_score BETWEEN 0 AND 3),
    CONSTRAINT valid_diet CHECK (diet_score BETWEEN 0 AND 3)
);

CREATE TABLE IF NOT EXISTS focus_sessions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    duration_minutes INTEGER NOT NULL,
    started_at TIMESTAMPTZ NOT NULL,
    completed_at TIMESTAMPTZ,
    xp_earned INTEGER NOT NULL DEFAULT 0
);
`

const migration003Down = `
DROP TABLE IF EXISTS focus_sessions;
DROP TABLE IF EXISTS life_force_checks;
`
