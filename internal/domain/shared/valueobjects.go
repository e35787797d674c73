package shared

import (
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// Injected Capabilities
// ═══════════════════════════════════════════════════════════════════════════

// IDGenerator produces unique identifiers with a readable prefix,
// e.g. NewID("habit") -> "habit-3f2a...".
type IDGenerator interface {
	NewID(prefix string) string
}

// Clock supplies the current instant. Use cases never call time.Now directly.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time {
	return f()
}

// ═══════════════════════════════════════════════════════════════════════════
// Numeric Helpers
// ═══════════════════════════════════════════════════════════════════════════

// ClampInt bounds v to the closed range [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
