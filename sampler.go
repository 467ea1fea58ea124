package asymptote

import (
	"iter"
	"math"
	"time"
)

// Sample is one (input size, stabilized per-operation cost) observation.
type Sample struct {
	Size uint64 `json:"size"`    // Input size passed to the generator
	Cost uint64 `json:"cost_ns"` // Per-operation cost in nanoseconds
}

// Sampler produces samples at geometrically growing input sizes until the
// sampling budget elapses.
//
// A Sampler is single-use and forward-only: the budget is measured from
// NewSampler, so once it is exhausted the sequence cannot be restarted.
// It is not safe for concurrent use.
type Sampler[A, B any] struct {
	cfg   Config
	clock Clock
	gen   func(size uint64) A
	run   func(A) B

	start time.Time
	size  uint64
	last  Measurement
	count int
	done  bool
}

// NewSampler starts the sampling clock. cfg should already be validated.
func NewSampler[A, B any](gen func(size uint64) A, run func(A) B, cfg Config) *Sampler[A, B] {
	clock := cfg.clock()
	return &Sampler[A, B]{
		cfg:   cfg,
		clock: clock,
		gen:   gen,
		run:   run,
		start: clock.Now(),
		size:  cfg.InitialSize,
	}
}

// Next measures the next input size. It blocks for as long as the stability
// seek takes and returns false once the sampling budget has elapsed.
func (s *Sampler[A, B]) Next() (Sample, bool) {
	if s.done {
		return Sample{}, false
	}
	if s.Elapsed() >= s.cfg.SamplingBudget {
		s.done = true
		return Sample{}, false
	}

	size := s.size
	m := Stabilize(s.cfg, func() A { return s.gen(size) }, s.run)
	s.last = m
	s.count++
	if size == math.MaxUint64 {
		// Sizes must keep increasing; there is nowhere left to grow.
		s.done = true
	} else {
		s.size = nextSize(size, s.cfg.SizeGrowth)
	}

	s.cfg.logger().Debug("sample",
		"size", size,
		"cost_ns", m.PerOp,
		"reps", m.Repetitions,
		"rounds", m.Rounds,
		"converged", m.Converged,
		"spread", m.Spread.Ratio,
	)

	return Sample{Size: size, Cost: m.PerOp}, true
}

// All returns the remaining samples as a lazy sequence.
func (s *Sampler[A, B]) All() iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		for {
			sample, ok := s.Next()
			if !ok || !yield(sample) {
				return
			}
		}
	}
}

// Last returns the measurement behind the most recent sample.
func (s *Sampler[A, B]) Last() Measurement { return s.last }

// Count returns the number of samples produced so far.
func (s *Sampler[A, B]) Count() int { return s.count }

// Elapsed returns the time since the sampler was created.
func (s *Sampler[A, B]) Elapsed() time.Duration {
	return s.clock.Now().Sub(s.start)
}

// nextSize grows size by factor, rounding up, and always advances by at least one.
func nextSize(size uint64, factor float64) uint64 {
	if size == math.MaxUint64 {
		return size
	}
	grown := math.Ceil(float64(size) * factor)
	if grown >= math.MaxUint64 {
		return math.MaxUint64
	}
	next := uint64(grown)
	if next <= size {
		next = size + 1
	}
	return next
}
