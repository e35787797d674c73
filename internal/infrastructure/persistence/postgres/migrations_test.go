package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMigrations(t *testing.T) {
	migrations := GetMigrations()

	assert.NotEmpty(t, migrations)
	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version, "versions must be contiguous")
		assert.NotEmpty(t, m.Name)
		assert.NotEmpty(t, strings.TrimSpace(m.UpSQL), "migration %d has no up SQL", m.Version)
		assert.NotEmpty(t, strings.TrimSpace(m.DownSQL), "migration %d has no down SQL", m.Version)
	}
}

func TestGetMigrations_CreatesEveryTable(t *testing.T) {
	var up strings.Builder
	for _, m := range GetMigrations() {
		up.WriteString(m.UpSQL)
	}

	for _, table := range []string{
		"users", "characters", "habits", "habit_logs", "habit_streaks", "life_force_checks", "focus_sessions",
	} {
		assert.Contains(t, up.String(), "CREATE TABLE IF NOT EXISTS "+table+" ", table)
	}
}
