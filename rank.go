package asymptote

import (
	"fmt"
	"slices"
)

// Fit is a single-component model and its fit quality.
type Fit struct {
	Component Component
	Results   Results
}

// Rank fits the samples against each candidate component on its own and
// returns the fits ordered by R², best first. Ties keep canonical order.
// With no candidates every component is tried.
func Rank(samples []Sample, candidates ...Component) ([]Fit, error) {
	if len(candidates) == 0 {
		candidates = AllComponents
	}

	fits := make([]Fit, 0, len(candidates))
	for _, c := range Normalize(candidates) {
		res, err := Analyze([]Component{c}, samples)
		if err != nil {
			return nil, fmt.Errorf("failed to fit %s: %w", c, err)
		}
		fits = append(fits, Fit{Component: c, Results: res})
	}

	slices.SortStableFunc(fits, func(a, b Fit) int {
		if a.Results.RSquared > b.Results.RSquared {
			return -1
		}
		if a.Results.RSquared < b.Results.RSquared {
			return 1
		}
		return 0
	})

	return fits, nil
}

// Best returns the best single-component fit.
func Best(samples []Sample, candidates ...Component) (Fit, error) {
	fits, err := Rank(samples, candidates...)
	if err != nil {
		return Fit{}, err
	}
	return fits[0], nil
}
