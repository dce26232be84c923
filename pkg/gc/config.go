// Package gc implements the generational, moving garbage collector that
// backs every heap allocation in the core: a bump-allocating young
// semispace collected by Cheney-style copying, tenuring into an old
// generation collected by mark-compact, dynamic heap growth, a
// remembered set, and a shadow stack of mutator-pinned roots.
//
// See DESIGN.md for the one deliberate representational choice: objects
// live as Go values indexed by a logical (generation, slot) Ref rather
// than at raw memory addresses, which is what lets heap growth skip a
// global pointer-relocation pass (a Ref stays valid across a
// generation's slice being resized; only the moving collectors
// themselves rewrite Refs, and only for objects that actually move).
package gc

import "log/slog"

// Config holds the tuning constants that affect observable sizing and
// tenuring — a reimplementation may choose its own values provided the
// data-model invariants hold.
type Config struct {
	// InitialSize is GC_INITIAL_SIZE: the young generation's starting
	// byte budget.
	InitialSize int
	// OldToYoungRatio is GC_OLD_TO_YOUNG_RATIO: the old generation's
	// starting budget is InitialSize * OldToYoungRatio.
	OldToYoungRatio int
	// GrowRatio is GC_GROW_RATIO: both generations' budgets multiply by
	// this on every Grow.
	GrowRatio int
	// ThresholdAge is GC_THRESHOLD_AGE: a young object survives this many
	// minor collections before being tenured.
	ThresholdAge uint8
	// Logger receives a trace of each minor/major collection and each
	// growth, at Debug level. A nil Logger disables tracing.
	Logger *slog.Logger
}

// DefaultConfig matches the historical init(ctx) defaults:
// GC_INITIAL_SIZE = 2^20, GC_OLD_TO_YOUNG_RATIO = 2, GC_GROW_RATIO = 2,
// GC_THRESHOLD_AGE = 8.
func DefaultConfig() Config {
	return Config{
		InitialSize:     1 << 20,
		OldToYoungRatio: 2,
		GrowRatio:       2,
		ThresholdAge:    8,
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
