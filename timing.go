package asymptote

import (
	"runtime"
	"sync/atomic"
	"time"
)

// Clock is the time source used for every measurement.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the monotonic wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// sink holds the most recent result batch. Publishing through an atomic
// store makes the batch observable to other goroutines, so the compiler
// cannot treat the stored results as dead.
var sink atomic.Pointer[any]

// Time runs gen n times to build the inputs, then runs run over every input
// while the clock runs, and returns the elapsed time of the run phase only.
//
// Every result is stored before the clock stops. Results and inputs are kept
// reachable until after the clock stops and released before Time returns.
func Time[A, B any](clock Clock, n int, gen func() A, run func(A) B) time.Duration {
	if n <= 0 {
		return 0
	}

	inputs := make([]A, n)
	for i := range inputs {
		inputs[i] = gen()
	}
	out := make([]B, n)

	start := clock.Now()
	for i := range inputs {
		out[i] = run(inputs[i])
	}
	elapsed := clock.Now().Sub(start)

	var kept any = out
	sink.Store(&kept)
	runtime.KeepAlive(inputs)
	runtime.KeepAlive(out)
	sink.Store(nil)

	if elapsed < 0 {
		return 0
	}
	return elapsed
}
