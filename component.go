package asymptote

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Component is a candidate growth term whose contribution to the cost of an
// operation is estimated by Analyze.
//
// Components are totally ordered (N < N2 < LogN < NLogN); that order is the
// canonical order used for normalization and for reporting.
type Component int

const (
	N     Component = iota // n
	N2                     // n²
	LogN                   // log₂ n
	NLogN                  // n·log₂ n
)

// AllComponents lists every component in canonical order.
var AllComponents = []Component{N, N2, LogN, NLogN}

// Valid reports whether c is one of the defined components.
func (c Component) Valid() bool {
	return c >= N && c <= NLogN
}

// String returns the display label.
func (c Component) String() string {
	switch c {
	case N:
		return "n"
	case N2:
		return "n²"
	case LogN:
		return "logn"
	case NLogN:
		return "nlogn"
	default:
		return fmt.Sprintf("Component(%d)", int(c))
	}
}

// Key returns the regression column name for the component.
func (c Component) Key() string {
	switch c {
	case N:
		return "X_N"
	case N2:
		return "X_N2"
	case LogN:
		return "X_LOGN"
	case NLogN:
		return "X_NLOGN"
	default:
		return ""
	}
}

// Transform maps an input size to the component's covariate value.
func (c Component) Transform(size float64) float64 {
	switch c {
	case N:
		return size
	case N2:
		return size * size
	case LogN:
		return math.Log2(size)
	case NLogN:
		return size * math.Log2(size)
	default:
		return math.NaN()
	}
}

// MarshalText encodes the component as its parseable name.
func (c Component) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidComponent, int(c))
	}
	return []byte(componentNames[c]), nil
}

// UnmarshalText accepts any spelling understood by ParseComponent.
func (c *Component) UnmarshalText(text []byte) error {
	parsed, err := ParseComponent(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var componentNames = map[Component]string{
	N:     "n",
	N2:    "n2",
	LogN:  "logn",
	NLogN: "nlogn",
}

var componentAliases = map[string]Component{
	"n":         N,
	"o(n)":      N,
	"linear":    N,
	"n2":        N2,
	"n^2":       N2,
	"n²":        N2,
	"o(n^2)":    N2,
	"quadratic": N2,
	"logn":      LogN,
	"log n":     LogN,
	"log":       LogN,
	"o(logn)":   LogN,
	"nlogn":     NLogN,
	"n log n":   NLogN,
	"nlog":      NLogN,
	"o(nlogn)":  NLogN,
}

// ParseComponent parses a component name such as "n", "n^2", "logn" or "nlogn".
func ParseComponent(s string) (Component, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := componentAliases[key]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidComponent, s)
}

// ParseComponents parses a comma separated component list ("n,nlogn").
// Empty entries are skipped.
func ParseComponents(s string) ([]Component, error) {
	var out []Component
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := ParseComponent(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Normalize returns a sorted, de-duplicated copy of components.
// The input slice is not modified.
func Normalize(components []Component) []Component {
	out := slices.Clone(components)
	slices.Sort(out)
	return slices.Compact(out)
}
