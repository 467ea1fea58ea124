// Package workload provides built-in operations with known growth rates.
//
// Each workload pairs an input generator with the operation under test and
// records the component expected to dominate its cost, so the CLI can show
// both what was measured and what theory predicts.
package workload

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/alexshd/asymptote"
)

// ErrUnknown is returned by Lookup for names not in the registry.
var ErrUnknown = errors.New("unknown workload")

// Workload is a named operation that can be sampled by asymptote.Run.
type Workload struct {
	Name        string
	Description string
	Expected    asymptote.Component   // Dominant growth term in theory
	Components  []asymptote.Component // Components fitted when none are requested

	run func(ctx context.Context, name string, components []asymptote.Component,
		cfg asymptote.Config, observe func(asymptote.Progress)) (asymptote.Report, error)
}

// Run samples the workload. An empty components list uses w.Components.
func (w Workload) Run(
	ctx context.Context,
	components []asymptote.Component,
	cfg asymptote.Config,
	observe func(asymptote.Progress),
) (asymptote.Report, error) {
	if len(components) == 0 {
		components = w.Components
	}
	return w.run(ctx, w.Name, components, cfg, observe)
}

// define binds a typed generator and operation into a Workload.
func define[A, B any](
	name, description string,
	expected asymptote.Component,
	components []asymptote.Component,
	gen func(size uint64) A,
	op func(A) B,
) Workload {
	return Workload{
		Name:        name,
		Description: description,
		Expected:    expected,
		Components:  components,
		run: func(ctx context.Context, name string, components []asymptote.Component,
			cfg asymptote.Config, observe func(asymptote.Progress)) (asymptote.Report, error) {
			return asymptote.Run(ctx, name, components, gen, op, cfg, observe)
		},
	}
}

var registry = []Workload{
	define("sort", "slices.Sort on shuffled uint64s",
		asymptote.NLogN, []asymptote.Component{asymptote.NLogN},
		shuffled, sortUnstable),
	define("sort-stable", "slices.SortStableFunc on shuffled uint64s",
		asymptote.NLogN, []asymptote.Component{asymptote.NLogN},
		shuffled, sortStable),
	define("sum", "sum of a random slice",
		asymptote.N, []asymptote.Component{asymptote.N},
		random, sum),
	define("map-build", "insert every element into a map",
		asymptote.N, []asymptote.Component{asymptote.N},
		random, buildMap),
	define("binary-search", "slices.BinarySearch over a sorted slice",
		asymptote.LogN, []asymptote.Component{asymptote.LogN},
		sortedWithTarget, binarySearch),
	define("insertion-sort", "insertion sort on shuffled uint64s",
		asymptote.N2, []asymptote.Component{asymptote.N2, asymptote.N},
		shuffled, insertionSort),
}

// All returns every registered workload ordered by name.
func All() []Workload {
	out := slices.Clone(registry)
	slices.SortFunc(out, func(a, b Workload) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Names returns the registered workload names in order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, w := range all {
		names[i] = w.Name
	}
	return names
}

// Lookup finds a workload by name.
func Lookup(name string) (Workload, error) {
	for _, w := range registry {
		if w.Name == name {
			return w, nil
		}
	}
	return Workload{}, fmt.Errorf("%w %q (available: %s)", ErrUnknown, name, strings.Join(Names(), ", "))
}
