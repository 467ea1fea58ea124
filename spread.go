package asymptote

import (
	"fmt"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	spreadMinNanos = 1
	spreadMaxNanos = int64(3600) * 1e9 // 1 hour
	spreadSigFigs  = 3
)

// Spread summarizes the per-operation cost observed across the rounds of a
// single stability seek.
//
// A converged seek usually shows a small spread; a large spread at a given
// size means the estimate is still dominated by scheduling or cache noise.
type Spread struct {
	Rounds int64   // Rounds recorded
	Min    uint64  // Smallest per-op cost (ns)
	Max    uint64  // Largest per-op cost (ns)
	Median uint64  // Median per-op cost (ns)
	Ratio  float64 // (Max-Min)/Median, 0 when Median is 0
}

// spreadTracker records per-round per-op costs in an HDR histogram.
type spreadTracker struct {
	hist *hdrhistogram.Histogram
}

func newSpreadTracker() *spreadTracker {
	return &spreadTracker{
		hist: hdrhistogram.New(spreadMinNanos, spreadMaxNanos, spreadSigFigs),
	}
}

// Record adds one round. Values are clamped into [spreadMinNanos,
// spreadMaxNanos], the bounds the histogram was created with, so an error
// here means the histogram itself is misconfigured.
func (s *spreadTracker) Record(perOp uint64) error {
	v := int64(spreadMinNanos)
	if perOp > uint64(spreadMaxNanos) {
		v = spreadMaxNanos
	} else if perOp > spreadMinNanos {
		v = int64(perOp)
	}
	if err := s.hist.RecordValue(v); err != nil {
		return fmt.Errorf("record %dns: %w", v, err)
	}
	return nil
}

// Summary returns the spread across every recorded round.
func (s *spreadTracker) Summary() Spread {
	if s.hist.TotalCount() == 0 {
		return Spread{}
	}
	out := Spread{
		Rounds: s.hist.TotalCount(),
		Min:    uint64(s.hist.Min()),
		Max:    uint64(s.hist.Max()),
		Median: uint64(s.hist.ValueAtQuantile(50)),
	}
	if out.Median > 0 {
		out.Ratio = float64(out.Max-out.Min) / float64(out.Median)
	}
	return out
}
