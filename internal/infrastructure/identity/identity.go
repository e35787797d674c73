// Package identity provides the production implementations of the
// shared.IDGenerator and shared.Clock capabilities.
package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/habit-hero/habit-hero/internal/domain/shared"
)

// UUIDGenerator produces ids of the form "<prefix>-<32 hex digits>".
type UUIDGenerator struct{}

// NewID implements shared.IDGenerator.
func (UUIDGenerator) NewID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	if prefix == "" {
		return hex
	}
	return prefix + "-" + hex
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now implements shared.Clock.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

var (
	_ shared.IDGenerator = UUIDGenerator{}
	_ shared.Clock       = SystemClock{}
)
