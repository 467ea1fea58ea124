// Package report renders and persists asymptote runs.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexshd/asymptote"
)

// Coefficient formats a per-unit cost in nanoseconds. Sub-microsecond values
// keep fractional nanoseconds since most coefficients live there.
func Coefficient(ns float64) string {
	switch abs := math.Abs(ns); {
	case math.IsNaN(ns) || math.IsInf(ns, 0):
		return fmt.Sprint(ns)
	case abs < 10:
		return fmt.Sprintf("%.3fns", ns)
	case abs < 1000:
		return fmt.Sprintf("%.1fns", ns)
	default:
		return time.Duration(math.Round(ns)).String()
	}
}

// Fit renders the fitted terms and R² on one line, e.g.
// "3.127ns n  R² = 0.99".
func Fit(r asymptote.Results) string {
	var terms []string
	for _, t := range r.Terms() {
		terms = append(terms, Coefficient(t.Coefficient)+" "+t.Component.String())
	}
	return fmt.Sprintf("%s  R² = %s", strings.Join(terms, " + "), RSquared(r))
}

// RSquared formats R², or "n/a" for a degenerate fit.
func RSquared(r asymptote.Results) string {
	if r.Degenerate {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", r.RSquared)
}
