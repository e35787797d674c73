// Package command contains write operations (CQRS - Commands).
package command

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/pkg/logger"
)

// Shared validator instance; validator caches struct metadata.
var validate = validator.New()

// validateCommand checks struct tags and wraps failures as validation errors.
func validateCommand(domain, op string, cmd interface{}) error {
	if err := validate.Struct(cmd); err != nil {
		return shared.WrapError(domain, op, shared.ErrValidation, "invalid command", err)
	}
	return nil
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	return logger.OrDefault(l)
}
