package asymptote

import "errors"

var (
	// ErrInsufficientSamples is returned when a fit is attempted with fewer
	// samples than free parameters plus one.
	ErrInsufficientSamples = errors.New("insufficient samples for regression")

	// ErrInvalidComponent is returned for a Component outside {N, N2, LogN, NLogN}.
	ErrInvalidComponent = errors.New("invalid complexity component")

	// ErrZeroSize is returned when a sample has size 0 (log₂ 0 is undefined).
	ErrZeroSize = errors.New("sample size must be at least 1")

	// ErrSingularFit is returned when the least-squares solver cannot produce
	// a solution at all.
	ErrSingularFit = errors.New("least-squares fit failed")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid config")
)
