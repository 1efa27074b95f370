package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/Sqizeeeeee/sem11/src/types"
)

// Complexity exponents of the two algorithms.
const (
	StandardExponent = 3.0
	StrassenExponent = 2.807
)

// Theoretical returns size^exponent for every size.
func Theoretical(sizes []float64, exponent float64) []float64 {
	out := make([]float64, len(sizes))
	for i, n := range sizes {
		out[i] = math.Pow(n, exponent)
	}
	return out
}

// Normalize divides every value by the series' own maximum, so the largest becomes 1.
// A zero maximum yields NaN values (0/0), which are returned as is.
func Normalize(vals []float64) []float64 {
	out := make([]float64, len(vals))
	if len(vals) == 0 {
		return out
	}
	max := math.Inf(-1)
	for _, v := range vals {
		if v > max {
			max = v
		}
	}
	for i, v := range vals {
		out[i] = v / max
	}
	return out
}

// Ratio is one speedup sample. Value is the raw IEEE quotient; DivByZero is set when the divisor was zero.
type Ratio struct {
	Value     float64
	DivByZero bool
}

// SpeedupRatio returns standard.time_ms[i] / strassen.time_ms[i] for each shared row.
// Ratios above 1 mean Strassen was faster at that size.
func SpeedupRatio(p types.Pair) []Ratio {
	n := p.Len()
	out := make([]Ratio, n)
	for i := 0; i < n; i++ {
		num, den := p.Standard.Points[i].TimeMs, p.Strassen.Points[i].TimeMs
		out[i] = Ratio{Value: num / den, DivByZero: den == 0}
	}
	return out
}

// ZeroPolicy decides what happens to speedup ratios whose Strassen time is zero.
type ZeroPolicy string

const (
	// ZeroPropagate keeps the raw value (+Inf or NaN) and lets the renderer decide.
	ZeroPropagate ZeroPolicy = "propagate"
	// ZeroSkip drops undefined points from the plotted ratio line.
	ZeroSkip ZeroPolicy = "skip"
	// ZeroFail aborts the view with a DerivationError.
	ZeroFail ZeroPolicy = "fail"
)

// ParseZeroPolicy accepts propagate, skip or fail (empty means propagate).
func ParseZeroPolicy(s string) (ZeroPolicy, error) {
	switch p := ZeroPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ZeroPropagate, nil
	case ZeroPropagate, ZeroSkip, ZeroFail:
		return p, nil
	default:
		return "", fmt.Errorf("unknown zero-ratio policy %q (want propagate|skip|fail)", s)
	}
}

// ApplyZeroPolicy returns the plotted (size, ratio) points for rs under policy.
func ApplyZeroPolicy(view string, sizes []float64, rs []Ratio, policy ZeroPolicy) ([]float64, []float64, error) {
	xs := make([]float64, 0, len(rs))
	ys := make([]float64, 0, len(rs))
	for i, r := range rs {
		if r.DivByZero {
			switch policy {
			case ZeroSkip:
				continue
			case ZeroFail:
				return nil, nil, &DerivationError{View: view, Index: i, Size: int(sizes[i]), Err: ErrDivisionByZero}
			}
		}
		xs = append(xs, sizes[i])
		ys = append(ys, r.Value)
	}
	return xs, ys, nil
}
