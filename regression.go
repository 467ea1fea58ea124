package asymptote

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Results is the outcome of fitting samples against a set of components.
//
// Results carries no state between calls: Analyze rebuilds it from scratch
// every time, so two calls with the same inputs produce identical values.
type Results struct {
	RSquared   float64               `json:"r_squared"`  // Coefficient of determination (0 when Degenerate)
	Constant   float64               `json:"constant"`   // Intercept: fixed per-operation overhead (ns)
	Components map[Component]float64 `json:"components"` // Coefficient per selected component (ns per unit of transform)
	Selected   []Component           `json:"selected"`   // Normalized component set, canonical order
	Samples    int                   `json:"samples"`    // Number of samples fitted
	Degenerate bool                  `json:"degenerate"` // R² is undefined (no components, or no variance in cost)
}

// Term is one component and its fitted coefficient.
type Term struct {
	Component   Component
	Coefficient float64
}

// Analyze fits cost = constant + Σ coefficient·transform(size) over the
// selected components by ordinary least squares.
//
// The component set is sorted and de-duplicated first, so selection order
// and repeated entries do not affect the result. At least len(components)+2
// samples are required, and every sample size must be at least 1.
func Analyze(components []Component, samples []Sample) (Results, error) {
	selected := Normalize(components)
	for _, c := range selected {
		if !c.Valid() {
			return Results{}, fmt.Errorf("%w: %d", ErrInvalidComponent, int(c))
		}
	}

	need := len(selected) + 2
	if len(samples) < need {
		return Results{}, fmt.Errorf("%w: need at least %d samples for %d components, got %d",
			ErrInsufficientSamples, need, len(selected), len(samples))
	}

	rows := len(samples)
	y := make([]float64, rows)
	columns := make(map[Component][]float64, len(AllComponents))
	for _, c := range AllComponents {
		columns[c] = make([]float64, rows)
	}

	sizes := make(map[uint64]struct{}, len(samples))
	for i, s := range samples {
		if s.Size == 0 {
			return Results{}, fmt.Errorf("%w: sample %d", ErrZeroSize, i)
		}
		sizes[s.Size] = struct{}{}
		x := float64(s.Size)
		y[i] = float64(s.Cost)
		for _, c := range AllComponents {
			columns[c][i] = c.Transform(x)
		}
	}

	// Each component needs a size of its own beyond the one that pins the intercept.
	if len(selected) > 0 && len(sizes) <= len(selected) {
		return Results{}, fmt.Errorf("%w: %d distinct sizes cannot determine %d components and a constant",
			ErrSingularFit, len(sizes), len(selected))
	}

	// Intercept in column 0, then one column per selected component.
	design := mat.NewDense(rows, len(selected)+1, nil)
	for i := 0; i < rows; i++ {
		design.Set(i, 0, 1)
		for j, c := range selected {
			design.Set(i, j+1, columns[c][i])
		}
	}

	params, err := leastSquares(design, y)
	if err != nil {
		return Results{}, err
	}

	out := Results{
		Constant:   params[0],
		Components: make(map[Component]float64, len(selected)),
		Selected:   selected,
		Samples:    rows,
	}
	for j, c := range selected {
		out.Components[c] = params[j+1]
	}

	if len(selected) == 0 || stat.Variance(y, nil) == 0 {
		out.Degenerate = true
		return out, nil
	}

	var fitted mat.VecDense
	fitted.MulVec(design, mat.NewVecDense(len(params), params))
	r2 := stat.RSquaredFrom(fitted.RawVector().Data, y, nil)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		out.Degenerate = true
		return out, nil
	}
	out.RSquared = r2

	return out, nil
}

// leastSquares solves design·β ≈ y. SolveVec reports a mat.Condition error
// once the condition number exceeds mat.ConditionTolerance; such a solution
// is numerically meaningless and is rejected.
func leastSquares(design *mat.Dense, y []float64) ([]float64, error) {
	var beta mat.VecDense
	if err := beta.SolveVec(design, mat.NewVecDense(len(y), y)); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("%w: condition number %.3g exceeds %.3g",
				ErrSingularFit, float64(cond), float64(mat.ConditionTolerance))
		}
		return nil, fmt.Errorf("%w: %v", ErrSingularFit, err)
	}

	params := make([]float64, beta.Len())
	for i := range params {
		params[i] = beta.AtVec(i)
		if math.IsNaN(params[i]) || math.IsInf(params[i], 0) {
			return nil, fmt.Errorf("%w: non-finite coefficient", ErrSingularFit)
		}
	}
	return params, nil
}

// Terms returns the fitted coefficients in canonical component order.
func (r Results) Terms() []Term {
	terms := make([]Term, 0, len(r.Selected))
	for _, c := range r.Selected {
		terms = append(terms, Term{Component: c, Coefficient: r.Components[c]})
	}
	return terms
}

// Predict estimates the per-operation cost (ns) at the given size.
func (r Results) Predict(size uint64) float64 {
	x := float64(size)
	total := r.Constant
	for _, t := range r.Terms() {
		total += t.Coefficient * t.Component.Transform(x)
	}
	return total
}

// String renders each coefficient as a duration followed by R².
func (r Results) String() string {
	var sb strings.Builder
	for _, t := range r.Terms() {
		d := time.Duration(math.Round(t.Coefficient))
		fmt.Fprintf(&sb, "%v %s ", d, t.Component)
	}
	if r.Degenerate {
		return fmt.Sprintf("%-20s R² = n/a", sb.String())
	}
	return fmt.Sprintf("%-20s R² = %.2f", sb.String(), r.RSquared)
}
