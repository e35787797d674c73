package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/habit-hero/habit-hero/internal/application/command"
	"github.com/habit-hero/habit-hero/internal/application/query"
	"github.com/habit-hero/habit-hero/internal/domain/character"
	"github.com/habit-hero/habit-hero/internal/domain/habit"
	"github.com/habit-hero/habit-hero/internal/infrastructure/persistence/postgres"
	"github.com/habit-hero/habit-hero/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONSOLE PRESENTER
// Turns command and query results into plain text lines.
// ══════════════════════════════════════════════════════════════════════════════

const progressBarWidth = 20

func characterLine(c *character.Character) string {
	return fmt.Sprintf("Character Level: %d | XP: %d/%d", c.Level, c.XP, c.XPToNextLevel)
}

func progressBar(c *character.Character) string {
	filled := c.ProgressPercent() * progressBarWidth / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", progressBarWidth-filled) + "]"
}

func streakLine(s *habit.StreakState) string {
	return fmt.Sprintf("Current streak: %d day(s) | Longest streak: %d day(s)", s.CurrentStreak, s.LongestStreak)
}

func printUserCreated(w io.Writer, res *command.CreateUserResult) {
	fmt.Fprintf(w, "User: %s\n", res.User.ID)
	if res.User.LongTermVision != "" {
		fmt.Fprintf(w, "Vision: %s\n", res.User.LongTermVision)
	}
	fmt.Fprintln(w, characterLine(res.Character))
}

func printHabitCreated(w io.Writer, h *habit.Habit) {
	fmt.Fprintf(w, "Habit: %s (%s)\n", h.Name, h.ID)
	fmt.Fprintf(w, "Base XP: %d | Minutes: %d\n", h.BaseXP, h.EstimatedMinutes)
	if h.IsBadHabit {
		fmt.Fprintln(w, "Bad habit: yes")
	}
	if h.ReplacesHabitID != "" {
		fmt.Fprintf(w, "Replaces: %s\n", h.ReplacesHabitID)
	}
}

func printHabitList(w io.Writer, habits []*habit.Habit) {
	if len(habits) == 0 {
		fmt.Fprintln(w, "No habits yet.")
		return
	}
	for _, h := range habits {
		fmt.Fprintf(w, "- %s (XP: %d, Active: %t) [%s]\n", h.Name, h.BaseXP, h.Active, h.ID)
	}
}

func printCompletion(w io.Writer, res *command.CompleteHabitResult) {
	fmt.Fprintf(w, "Completed on %s: +%d XP\n", timeutil.FormatDateStr(res.Log.Day), res.Log.XPEarned)
	fmt.Fprintln(w, streakLine(res.Streak))
	if res.Character != nil {
		fmt.Fprintln(w, characterLine(res.Character))
	}
	if res.LevelsGained > 0 {
		fmt.Fprintf(w, "Level up! +%d level(s)\n", res.LevelsGained)
	}
}

func printLifeForce(w io.Writer, res *command.LogLifeForceResult) {
	fmt.Fprintf(w, "Life Force logged for %s: exercise=%d, diet=%d, XP awarded=%d\n",
		timeutil.FormatDateStr(res.Check.Day), res.Check.ExerciseScore, res.Check.DietScore, res.XPGained)
	if res.Character != nil {
		fmt.Fprintln(w, characterLine(res.Character))
	}
}

func printSummary(w io.Writer, s *query.DailySummary) {
	fmt.Fprintf(w, "=== Daily Summary %s ===\n", timeutil.FormatDateStr(s.Day))
	fmt.Fprintf(w, "Habits completed: %d (+%d XP)\n", s.CompletedCount(), s.HabitXP)
	for _, l := range s.Logs {
		fmt.Fprintf(w, "  - %s +%d XP\n", l.HabitID, l.XPEarned)
	}
	if s.LifeForce != nil {
		fmt.Fprintf(w, "Life Force: exercise=%d, diet=%d (+%d XP)\n",
			s.LifeForce.ExerciseScore, s.LifeForce.DietScore, s.LifeForceXP)
	} else {
		fmt.Fprintln(w, "Life Force: not logged")
	}
	fmt.Fprintf(w, "Total XP: %d\n", s.TotalXP())
	if s.Character != nil {
		fmt.Fprintf(w, "%s %s\n", characterLine(s.Character), progressBar(s.Character))
	}
}

func printMigrations(w io.Writer, migrations []postgres.Migration) {
	for _, m := range migrations {
		state := "pending"
		if m.IsApplied {
			state = "applied " + m.AppliedAt.UTC().Format(timeutil.FormatDateTime)
		}
		fmt.Fprintf(w, "%03d %-32s %s\n", m.Version, m.Name, state)
	}
}
