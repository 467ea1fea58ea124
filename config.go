package asymptote

import (
	"fmt"
	"log/slog"
	"time"
)

// Config controls measurement and sampling.
type Config struct {
	StabilityBudget    time.Duration // Per-size batch time limit for the stability seek (default: 10s)
	SamplingBudget     time.Duration // Wall-clock limit for the whole sample sequence (default: 30s)
	SizeGrowth         float64       // Input size multiplier between samples (default: 1.1)
	RepetitionGrowth   float64       // Repetition multiplier between rounds (default: 1.5)
	Tolerance          float64       // Relative deviation that counts as stable (default: 0.05)
	InitialRepetitions int           // Repetitions in the first round (default: 10)
	InitialSize        uint64        // First input size (default: 1)
	MaxRepetitions     int           // Upper bound on repetitions per batch (0 = unbounded)
	CollectGarbage     bool          // Run runtime.GC before each timed batch

	Clock  Clock        // Time source (default: SystemClock)
	Logger *slog.Logger // Debug output (nil = discard)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		StabilityBudget:    10 * time.Second,
		SamplingBudget:     30 * time.Second,
		SizeGrowth:         1.1,
		RepetitionGrowth:   1.5,
		Tolerance:          0.05,
		InitialRepetitions: 10,
		InitialSize:        1,
		MaxRepetitions:     1 << 26,
	}
}

// Validate checks that every tunable is in range.
func (c Config) Validate() error {
	switch {
	case c.StabilityBudget <= 0:
		return fmt.Errorf("%w: stability budget must be positive, got %v", ErrInvalidConfig, c.StabilityBudget)
	case c.SamplingBudget <= 0:
		return fmt.Errorf("%w: sampling budget must be positive, got %v", ErrInvalidConfig, c.SamplingBudget)
	case c.SizeGrowth <= 1:
		return fmt.Errorf("%w: size growth must be > 1, got %g", ErrInvalidConfig, c.SizeGrowth)
	case c.RepetitionGrowth <= 1:
		return fmt.Errorf("%w: repetition growth must be > 1, got %g", ErrInvalidConfig, c.RepetitionGrowth)
	case c.Tolerance <= 0 || c.Tolerance >= 1:
		return fmt.Errorf("%w: tolerance must be in (0, 1), got %g", ErrInvalidConfig, c.Tolerance)
	case c.InitialRepetitions < 1:
		return fmt.Errorf("%w: initial repetitions must be >= 1, got %d", ErrInvalidConfig, c.InitialRepetitions)
	case c.InitialSize < 1:
		return fmt.Errorf("%w: initial size must be >= 1, got %d", ErrInvalidConfig, c.InitialSize)
	case c.MaxRepetitions < 0:
		return fmt.Errorf("%w: max repetitions must not be negative, got %d", ErrInvalidConfig, c.MaxRepetitions)
	case c.MaxRepetitions > 0 && c.MaxRepetitions < c.InitialRepetitions:
		return fmt.Errorf("%w: max repetitions %d below initial repetitions %d",
			ErrInvalidConfig, c.MaxRepetitions, c.InitialRepetitions)
	}
	return nil
}

func (c Config) clock() Clock {
	if c.Clock == nil {
		return SystemClock{}
	}
	return c.Clock
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
