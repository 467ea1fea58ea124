// Package asymptote estimates the time complexity of an operation empirically.
//
// # Overview
//
// asymptote measures the wall-clock cost of an operation at geometrically
// growing input sizes and fits the resulting (size, cost) samples against
// candidate growth terms with ordinary least squares:
//
//	cost(n) = c + a₁·n + a₂·n² + a₃·log₂ n + a₄·n·log₂ n
//
// Only the terms the caller selects are fitted. The fit reports one coefficient
// per term, the constant overhead c, and R².
//
// # Architecture
//
// The package components, leaves first:
//
//   - Time       - times one batch of pre-generated inputs
//   - Stabilize  - grows the batch until consecutive batches agree within tolerance
//   - Sampler    - lazy sequence of samples at growing sizes, bounded by a time budget
//   - Analyze    - least-squares fit of samples against selected components
//   - Rank       - best single-component explanation of the samples
//   - Run        - drives a Sampler and re-fits after every sample
//
// # Quick Start
//
//	gen := func(n uint64) []int {
//	    return rand.Perm(int(n))
//	}
//	sortInts := func(v []int) []int {
//	    slices.Sort(v)
//	    return v
//	}
//
//	report, err := asymptote.Run(ctx, "sort", []asymptote.Component{asymptote.NLogN},
//	    gen, sortInts, asymptote.DefaultConfig(), func(p asymptote.Progress) {
//	        fmt.Printf("\r%-20s %v", p.Name, p.Results)
//	    })
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Stability
//
// A single timed call is dominated by clock resolution and scheduler jitter.
// Stabilize times batches of n calls, multiplying n by RepetitionGrowth each
// round, and stops once
//
//	|1 - prev·growth / this| < Tolerance
//
// Batches longer than StabilityBudget end the seek with a best estimate
// instead of an error. The comparison is against the previous batch only, so
// one noisy round can delay convergence by a round.
//
// # Budgets
//
// Sampling stops once SamplingBudget has elapsed since the Sampler was
// created. Neither budget is an error: the caller simply gets fewer samples
// or a less certain estimate.
//
// # Testing
//
// Use the assertions to check complexity properties in tests:
//
//	func TestLookupIsLogarithmic(t *testing.T) {
//	    cfg := asymptote.DefaultConfig()
//	    cfg.SamplingBudget = 2 * time.Second
//	    cfg.StabilityBudget = 200 * time.Millisecond
//
//	    asymptote.AssertComplexity(t, gen, lookup, asymptote.LogN, cfg,
//	        asymptote.DefaultAssertionConfig())
//	}
//
// The result is a statistical fit, not a proof of a complexity bound.
package asymptote
