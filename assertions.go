package asymptote

import (
	"fmt"
	"testing"
)

// AssertionConfig contains thresholds for complexity assertions.
type AssertionConfig struct {
	// Minimum R² for the fit to be trusted
	MinRSquared float64

	// How far below the best single-component R² the expected
	// component may fall and still count as dominant
	Margin float64
}

// DefaultAssertionConfig returns conservative thresholds.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		MinRSquared: 0.95, // 95% of cost variance explained
		Margin:      0.01, // Within 1% R² of the best candidate
	}
}

// AssertFit verifies the fit is well defined and explains the data.
func AssertFit(t testing.TB, results Results, cfg AssertionConfig) {
	t.Helper()

	if results.Degenerate {
		t.Errorf("Degenerate fit: R² undefined for components %v over %d samples",
			results.Selected, results.Samples)
		return
	}

	if results.RSquared < cfg.MinRSquared {
		t.Errorf("Poor model fit: R² = %.4f (min: %.4f)\n"+
			"Components %v don't explain the data. Check for measurement noise or a missing term.",
			results.RSquared, cfg.MinRSquared, results.Selected)
	}

	t.Logf("✓ Model fit: R² = %.4f over %d samples", results.RSquared, results.Samples)
}

// AssertDominant verifies want is the best single-component explanation of
// the samples (or within cfg.Margin of it).
//
// Ranking property:
//
//	R²(want) ≥ max R²(c) - Margin for every candidate c
func AssertDominant(t testing.TB, samples []Sample, want Component, cfg AssertionConfig) {
	t.Helper()

	fits, err := Rank(samples)
	if err != nil {
		t.Fatalf("Failed to rank components: %v", err)
	}

	best := fits[0]
	var (
		got   Fit
		found bool
	)
	for _, f := range fits {
		if f.Component == want {
			got, found = f, true
		}
	}

	if !found {
		t.Fatalf("Component %s missing from ranking", want)
	}

	if got.Results.RSquared < best.Results.RSquared-cfg.Margin {
		t.Errorf("Complexity mismatch: expected %s (R² = %.4f), best is %s (R² = %.4f)",
			want, got.Results.RSquared, best.Component, best.Results.RSquared)
		return
	}

	if got.Results.RSquared < cfg.MinRSquared {
		t.Errorf("Weak fit for %s: R² = %.4f (min: %.4f)", want, got.Results.RSquared, cfg.MinRSquared)
		return
	}

	t.Logf("✓ Dominant term: %s (R² = %.4f)", want, got.Results.RSquared)
}

// AssertComplexity samples run with cfg and asserts want dominates the
// measured cost. It uses the full sampling budget, so keep cfg.SamplingBudget
// small in tests.
func AssertComplexity[A, B any](
	t testing.TB,
	gen func(size uint64) A,
	run func(A) B,
	want Component,
	cfg Config,
	acfg AssertionConfig,
) []Sample {
	t.Helper()

	samples, err := Collect(gen, run, cfg)
	if err != nil {
		t.Fatalf("Sampling failed: %v", err)
	}
	if len(samples) < 3 {
		t.Fatalf("Only %d samples collected; raise SamplingBudget", len(samples))
	}

	AssertDominant(t, samples, want, acfg)
	return samples
}

// PrintAnalysis outputs a detailed breakdown of the fit to the test log.
func PrintAnalysis(t testing.TB, samples []Sample, results Results) {
	t.Helper()

	t.Logf("\n=== Complexity Analysis ===")
	t.Logf("Coefficients:")
	t.Logf("  constant    = %12.3f ns", results.Constant)
	for _, term := range results.Terms() {
		t.Logf("  %-10s  = %12.6f ns", term.Component, term.Coefficient)
	}
	if results.Degenerate {
		t.Logf("  R²          = n/a (degenerate)")
	} else {
		t.Logf("  R²          = %.4f", results.RSquared)
	}

	t.Logf("\nMeasured vs Predicted:")
	t.Logf("  Size        Measured      Predicted     Error")
	t.Logf("  ----------  ------------  ------------  --------")
	for _, s := range samples {
		predicted := results.Predict(s.Size)
		t.Logf("  %-10d  %12d  %12.1f  %s", s.Size, s.Cost, predicted, percentError(float64(s.Cost), predicted))
	}

	t.Logf("\nInterpretation:")
	switch {
	case results.Degenerate:
		t.Logf("  ✗ No meaningful fit - add components or vary the input size")
	case results.RSquared > 0.98:
		t.Logf("  ✓ Excellent model fit (R² > 0.98)")
	case results.RSquared > 0.95:
		t.Logf("  ✓ Good model fit (R² > 0.95)")
	case results.RSquared > 0.90:
		t.Logf("  ⚠ Fair model fit (R² > 0.90)")
	default:
		t.Logf("  ✗ Poor model fit (R² < 0.90) - wrong components or measurement noise")
	}
}

func percentError(measured, predicted float64) string {
	if measured == 0 {
		return "-"
	}
	return fmt.Sprintf("%7.1f%%", (predicted-measured)/measured*100)
}
