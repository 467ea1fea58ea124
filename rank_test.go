package asymptote

import (
	"errors"
	"math"
	"testing"
)

// TestRank_IdentifiesGrowth verifies the true growth term ranks first.
func TestRank_IdentifiesGrowth(t *testing.T) {
	tests := []struct {
		name string
		cost func(x uint64) uint64
		want Component
	}{
		{"linear", func(x uint64) uint64 { return 5*x + 3 }, N},
		{"quadratic", func(x uint64) uint64 { return x * x }, N2},
		{"logarithmic", func(x uint64) uint64 { return uint64(math.Round(100 * math.Log2(float64(x)))) }, LogN},
		{"linearithmic", func(x uint64) uint64 { return uint64(math.Round(3 * float64(x) * math.Log2(float64(x)))) }, NLogN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := makeSamples(1000, tt.cost)

			fits, err := Rank(samples)
			if err != nil {
				t.Fatalf("Rank failed: %v", err)
			}
			if len(fits) != len(AllComponents) {
				t.Fatalf("Expected %d fits, got %d", len(AllComponents), len(fits))
			}
			if fits[0].Component != tt.want {
				t.Errorf("Expected %s first, got %s (R² = %.4f)",
					tt.want, fits[0].Component, fits[0].Results.RSquared)
			}
			for i := 1; i < len(fits); i++ {
				if fits[i-1].Results.RSquared < fits[i].Results.RSquared {
					t.Errorf("Fits not sorted by R² at %d", i)
				}
			}

			for _, f := range fits {
				t.Logf("  %-6s R² = %.6f", f.Component, f.Results.RSquared)
			}
		})
	}
}

// TestRank_Candidates verifies only the requested candidates are fitted.
func TestRank_Candidates(t *testing.T) {
	samples := makeSamples(100, func(x uint64) uint64 { return x * x })

	fits, err := Rank(samples, LogN, N, LogN)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(fits) != 2 {
		t.Fatalf("Expected 2 fits, got %d", len(fits))
	}

	best, err := Best(samples, LogN, N)
	if err != nil {
		t.Fatalf("Best failed: %v", err)
	}
	if best.Component != N {
		t.Errorf("Expected n to beat logn on n² data, got %s", best.Component)
	}
}

func TestRank_InsufficientSamples(t *testing.T) {
	_, err := Rank([]Sample{{1, 1}, {2, 2}})
	if !errors.Is(err, ErrInsufficientSamples) {
		t.Errorf("Expected ErrInsufficientSamples, got %v", err)
	}
}
