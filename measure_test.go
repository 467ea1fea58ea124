package asymptote

import (
	"testing"
	"time"
)

func fakeConfig(clock Clock) Config {
	cfg := DefaultConfig()
	cfg.Clock = clock
	return cfg
}

// TestStabilize_NoiselessConverges verifies a perfectly linear synthetic
// timer converges on the second round with the true per-op cost.
func TestStabilize_NoiselessConverges(t *testing.T) {
	clock := newFakeClock()
	cfg := fakeConfig(clock)

	gen := func() int { return 0 }
	run := func(a int) int {
		clock.Advance(100 * time.Nanosecond)
		return a
	}

	m := Stabilize(cfg, gen, run)

	if !m.Converged {
		t.Fatal("Expected convergence for noiseless timer")
	}
	if m.Rounds != 2 {
		t.Errorf("Expected 2 rounds, got %d", m.Rounds)
	}
	if m.Repetitions != 15 {
		t.Errorf("Expected 15 repetitions (10 × 1.5), got %d", m.Repetitions)
	}
	if m.PerOp != 100 {
		t.Errorf("Expected 100ns/op, got %d", m.PerOp)
	}
	if m.Batch != 1500*time.Nanosecond {
		t.Errorf("Expected final batch of 1.5µs, got %v", m.Batch)
	}

	t.Logf("✓ Converged: %dns/op after %d rounds (%d reps)", m.PerOp, m.Rounds, m.Repetitions)
}

// TestStabilize_BudgetExhausted verifies a never-settling timer returns the
// last batch as a best estimate instead of failing.
func TestStabilize_BudgetExhausted(t *testing.T) {
	clock := newFakeClock()
	cfg := fakeConfig(clock)
	cfg.StabilityBudget = time.Millisecond

	// Per-op cost alternates between 100ns and 300ns on every batch,
	// so consecutive batches never agree.
	batch := 0
	fresh := false
	gen := func() int {
		fresh = true
		return 0
	}
	run := func(a int) int {
		if fresh {
			batch++
			fresh = false
		}
		if batch%2 == 1 {
			clock.Advance(100 * time.Nanosecond)
		} else {
			clock.Advance(300 * time.Nanosecond)
		}
		return a
	}

	m := Stabilize(cfg, gen, run)

	if m.Converged {
		t.Fatal("Alternating timer should not converge")
	}
	if m.Batch < cfg.StabilityBudget {
		t.Errorf("Expected final batch ≥ budget %v, got %v", cfg.StabilityBudget, m.Batch)
	}
	if m.PerOp != 100 && m.PerOp != 300 {
		t.Errorf("Expected best estimate of 100 or 300 ns/op, got %d", m.PerOp)
	}
	if m.Rounds != batch {
		t.Errorf("Expected %d rounds, got %d", batch, m.Rounds)
	}

	t.Logf("✓ Best estimate: %dns/op after %d rounds (batch %v)", m.PerOp, m.Rounds, m.Batch)
}

// TestStabilize_RepetitionCap verifies a zero-cost operation on a clock that
// never moves still terminates.
func TestStabilize_RepetitionCap(t *testing.T) {
	clock := newFakeClock()
	cfg := fakeConfig(clock)
	cfg.MaxRepetitions = 1000

	m := Stabilize(cfg, func() int { return 0 }, func(a int) int { return a })

	if m.Converged {
		t.Error("Zero-elapsed batches should not count as converged")
	}
	if m.Repetitions > cfg.MaxRepetitions {
		t.Errorf("Repetitions %d exceed cap %d", m.Repetitions, cfg.MaxRepetitions)
	}
	if m.PerOp != 0 {
		t.Errorf("Expected 0ns/op, got %d", m.PerOp)
	}
}

// TestStabilize_SpreadRecorded verifies every round lands in the spread summary.
func TestStabilize_SpreadRecorded(t *testing.T) {
	clock := newFakeClock()
	cfg := fakeConfig(clock)

	run := func(a int) int {
		clock.Advance(250 * time.Nanosecond)
		return a
	}

	m := Stabilize(cfg, func() int { return 0 }, run)

	if m.Spread.Rounds != int64(m.Rounds) {
		t.Errorf("Expected %d rounds in spread, got %d", m.Rounds, m.Spread.Rounds)
	}
	if m.Spread.Min != 250 || m.Spread.Max != 250 || m.Spread.Median != 250 {
		t.Errorf("Expected min=max=median=250, got %+v", m.Spread)
	}
	if m.Spread.Ratio != 0 {
		t.Errorf("Expected zero spread, got %.4f", m.Spread.Ratio)
	}
}

// TestStabilize_SystemClock runs a real operation under a short budget.
func TestStabilize_SystemClock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StabilityBudget = 50 * time.Millisecond

	gen := func() []int { return make([]int, 1024) }
	run := func(v []int) int {
		sum := 0
		for i := range v {
			sum += v[i] + i
		}
		return sum
	}

	m := Stabilize(cfg, gen, run)

	if m.Rounds < 1 {
		t.Errorf("Expected at least one round, got %d", m.Rounds)
	}
	if m.Repetitions < cfg.InitialRepetitions {
		t.Errorf("Expected ≥ %d repetitions, got %d", cfg.InitialRepetitions, m.Repetitions)
	}

	t.Logf("sum(1024): %dns/op, converged=%v, rounds=%d, spread=%.3f",
		m.PerOp, m.Converged, m.Rounds, m.Spread.Ratio)
}

// TestStabilize_InvalidConfigUsesDefaults verifies a config that could never
// converge is replaced by the defaults instead of looping.
func TestStabilize_InvalidConfigUsesDefaults(t *testing.T) {
	clock := newFakeClock()
	cfg := fakeConfig(clock)
	cfg.RepetitionGrowth = 0
	cfg.Tolerance = 0

	gen := func() int { return 0 }
	run := func(a int) int {
		clock.Advance(100 * time.Nanosecond)
		return a
	}

	m := Stabilize(cfg, gen, run)

	if !m.Converged || m.Rounds != 2 || m.Repetitions != 15 {
		t.Errorf("Expected default convergence (2 rounds, 15 reps), got %+v", m)
	}
	if m.PerOp != 100 {
		t.Errorf("Expected 100ns/op on the supplied clock, got %d", m.PerOp)
	}

	t.Logf("✓ Fell back to defaults: %dns/op", m.PerOp)
}
