package asymptote

import (
	"math"
	"runtime"
	"time"
)

// Measurement is the outcome of a stability seek at one input size.
type Measurement struct {
	PerOp       uint64        // Stabilized per-operation cost (ns)
	Repetitions int           // Repetitions in the batch PerOp was taken from
	Rounds      int           // Batches timed
	Converged   bool          // False when the budget or repetition cap ended the seek
	Batch       time.Duration // Elapsed time of the final batch
	Spread      Spread        // Per-op dispersion across rounds
}

// Stabilize times growing batches of run until two consecutive batches agree
// within cfg.Tolerance, and returns the per-operation cost of the larger batch.
//
// Each round multiplies the repetition count by cfg.RepetitionGrowth and
// compares the new batch time against the previous batch time scaled by the
// same factor. The seek continues while the previous batch took less than
// cfg.StabilityBudget. Running out of budget is not an error: the last batch
// is returned as a best estimate with Converged=false.
//
// An invalid cfg is replaced by DefaultConfig, keeping its Clock and Logger.
func Stabilize[A, B any](cfg Config, gen func() A, run func(A) B) Measurement {
	if err := cfg.Validate(); err != nil {
		cfg.logger().Debug("stabilize: using default config", "err", err)
		def := DefaultConfig()
		def.Clock, def.Logger = cfg.Clock, cfg.Logger
		cfg = def
	}

	clock := cfg.clock()
	factor := cfg.RepetitionGrowth
	spread := newSpreadTracker()

	batch := func(n int) time.Duration {
		if cfg.CollectGarbage {
			runtime.GC()
		}
		d := Time(clock, n, gen, run)
		if err := spread.Record(perOp(d, n)); err != nil {
			cfg.logger().Debug("spread round dropped", "err", err)
		}
		return d
	}

	n := cfg.InitialRepetitions
	last := batch(n)
	rounds := 1

	for last < cfg.StabilityBudget {
		next := int(math.Ceil(float64(n) * factor))
		if next <= n {
			next = n + 1
		}
		if cfg.MaxRepetitions > 0 && next > cfg.MaxRepetitions {
			break
		}

		this := batch(next)
		rounds++

		if this > 0 {
			deviation := math.Abs(1 - float64(last)*factor/float64(this))
			if deviation < cfg.Tolerance {
				return Measurement{
					PerOp:       perOp(this, next),
					Repetitions: next,
					Rounds:      rounds,
					Converged:   true,
					Batch:       this,
					Spread:      spread.Summary(),
				}
			}
		}

		last = this
		n = next
	}

	return Measurement{
		PerOp:       perOp(last, n),
		Repetitions: n,
		Rounds:      rounds,
		Converged:   false,
		Batch:       last,
		Spread:      spread.Summary(),
	}
}

func perOp(d time.Duration, n int) uint64 {
	if n <= 0 || d <= 0 {
		return 0
	}
	return uint64(d) / uint64(n)
}
