package render

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// niceStep picks a tick step of 1, 2, 2.5 or 5 times a power of ten that splits span into about n intervals.
func niceStep(span float64, n int) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n))))
	best, bestScore := mag, math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		if score := math.Abs(math.Ceil(span/step) - float64(n)); score < bestScore {
			best, bestScore = step, score
		}
	}
	return best
}

// linearBounds pads [lo,hi] by 5% and widens it to whole tick steps, so the frame starts and ends on a tick.
// A single value gets a window of 10% (at least 1) on either side.
func linearBounds(lo, hi float64, n int) (float64, float64) {
	if math.IsNaN(lo) || math.IsNaN(hi) || n < 1 {
		return lo, hi
	}
	if hi <= lo {
		d := math.Max(math.Abs(lo)*0.1, 1)
		lo, hi = lo-d, hi+d
	}
	pad := (hi - lo) * 0.05
	lo, hi = lo-pad, hi+pad
	step := niceStep(hi-lo, n)
	return math.Floor(lo/step) * step, math.Ceil(hi/step) * step
}

// niceTicks places ticks on multiples of the nice step that fall inside [min, max].
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	step := niceStep(max-min, n-1)
	var ticks []chart.Tick
	for v := math.Ceil(min/step-1e-9) * step; v <= max+step*1e-6 && len(ticks) <= n+2; v += step {
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
	}
	return ticks
}

// logBounds returns log10 bounds around [min,max] padded by 5% of the decade span.
func logBounds(min, max float64) (float64, float64) {
	a, b := math.Log10(min), math.Log10(max)
	if b <= a {
		a, b = a-0.5, b+0.5
	}
	pad := (b - a) * 0.05
	return a - pad, b + pad
}

// logTicks places ticks for an axis already transformed with log10. Values are labelled in data units.
// Decades first, then 1-2-5 steps, then every mantissa, so short ranges still get at least two ticks.
func logTicks(lmin, lmax float64) []chart.Tick {
	for _, mantissas := range [][]float64{{1}, {1, 2, 5}, {1, 2, 3, 4, 5, 6, 7, 8, 9}} {
		var ticks []chart.Tick
		for k := math.Floor(lmin); k <= math.Ceil(lmax); k++ {
			for _, m := range mantissas {
				v := m * math.Pow(10, k)
				lv := math.Log10(v)
				if lv < lmin || lv > lmax {
					continue
				}
				ticks = append(ticks, chart.Tick{Value: lv, Label: formatTick(v)})
			}
		}
		if len(ticks) >= 2 {
			return ticks
		}
	}
	return []chart.Tick{
		{Value: lmin, Label: formatTick(math.Pow(10, lmin))},
		{Value: lmax, Label: formatTick(math.Pow(10, lmax))},
	}
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	case av >= 0.01:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.0e", v)
	}
}
