package asymptote

import (
	"context"
	"fmt"
	"time"
)

// Progress is passed to the observer after every re-fit during Run.
type Progress struct {
	Name        string
	Sample      Sample      // Sample that triggered the re-fit
	Measurement Measurement // Stability seek behind Sample
	Samples     int         // Samples accumulated so far
	Elapsed     time.Duration
	Results     Results
}

// Report is the final outcome of Run.
type Report struct {
	Name       string        `json:"name"`
	Components []Component   `json:"components"`
	Samples    []Sample      `json:"samples"`
	Results    Results       `json:"results"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Run samples run at growing input sizes and fits the samples against
// components, calling observe (if non-nil) after every re-fit.
//
// Each re-fit uses the full sample history. Run stops when the sampling budget
// elapses or ctx is done; in the latter case the partial report is returned
// together with ctx.Err().
func Run[A, B any](
	ctx context.Context,
	name string,
	components []Component,
	gen func(size uint64) A,
	run func(A) B,
	cfg Config,
	observe func(Progress),
) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	selected := Normalize(components)
	for _, c := range selected {
		if !c.Valid() {
			return Report{}, fmt.Errorf("%w: %d", ErrInvalidComponent, int(c))
		}
	}
	minSamples := len(selected) + 2

	log := cfg.logger().With("name", name)
	sampler := NewSampler(gen, run, cfg)
	report := Report{Name: name, Components: selected}

	for sample := range sampler.All() {
		report.Samples = append(report.Samples, sample)

		if len(report.Samples) >= minSamples {
			res, err := Analyze(selected, report.Samples)
			if err != nil {
				return report, fmt.Errorf("analysis of %s failed at size %d: %w", name, sample.Size, err)
			}
			report.Results = res
			if observe != nil {
				observe(Progress{
					Name:        name,
					Sample:      sample,
					Measurement: sampler.Last(),
					Samples:     len(report.Samples),
					Elapsed:     sampler.Elapsed(),
					Results:     res,
				})
			}
		}

		if err := ctx.Err(); err != nil {
			report.Elapsed = sampler.Elapsed()
			log.Debug("run interrupted", "samples", len(report.Samples), "err", err)
			return report, err
		}
	}

	report.Elapsed = sampler.Elapsed()
	if len(report.Samples) < minSamples {
		return report, fmt.Errorf("%s: %w: collected %d samples, need %d",
			name, ErrInsufficientSamples, len(report.Samples), minSamples)
	}

	log.Debug("run finished", "samples", len(report.Samples), "elapsed", report.Elapsed)
	return report, nil
}

// Collect drains a fresh sampler and returns every sample it produced.
func Collect[A, B any](gen func(size uint64) A, run func(A) B, cfg Config) ([]Sample, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var samples []Sample
	for s := range NewSampler(gen, run, cfg).All() {
		samples = append(samples, s)
	}
	return samples, nil
}
