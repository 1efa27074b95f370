package views

import (
	"fmt"

	"github.com/Sqizeeeeee/sem11/src/analysis"
	"github.com/Sqizeeeeee/sem11/src/theme"
	"github.com/Sqizeeeeee/sem11/src/types"
)

// Output stems, one per view.
const (
	StemTimeComparison      = "time_comparison"
	StemTheoreticalVsActual = "theoretical_vs_actual"
	StemSpeedupRatio        = "speedup_ratio"
	StemLogLogComparison    = "log_scale_comparison"
)

// Builder derives the figure of one view.
type Builder func(p types.Pair, st theme.Style, policy analysis.ZeroPolicy) (Figure, error)

// View names a chart and how to build it.
type View struct {
	Name  string
	Stem  string
	Build Builder
}

// All returns the four comparison views in render order.
func All() []View {
	return []View{
		{Name: "time comparison", Stem: StemTimeComparison, Build: TimeComparison},
		{Name: "theoretical vs actual", Stem: StemTheoreticalVsActual, Build: TheoreticalVsActual},
		{Name: "speedup ratio", Stem: StemSpeedupRatio, Build: SpeedupRatio},
		{Name: "log-scale", Stem: StemLogLogComparison, Build: LogLogComparison},
	}
}

func actualLines(p types.Pair, stdName, strName string) []Line {
	return []Line{
		{Name: stdName, X: p.Standard.Sizes(), Y: p.Standard.Times(), Role: theme.StandardActual, Width: 3, Alpha: 1, Marker: theme.MarkerCircle, MarkerSize: 8},
		{Name: strName, X: p.Strassen.Sizes(), Y: p.Strassen.Times(), Role: theme.StrassenActual, Width: 3, Alpha: 1, Marker: theme.MarkerSquare, MarkerSize: 8},
	}
}

// TimeComparison plots raw elapsed times on linear axes.
func TimeComparison(p types.Pair, st theme.Style, _ analysis.ZeroPolicy) (Figure, error) {
	p = p.Trimmed()
	return Figure{
		View:    "time comparison",
		Stem:    StemTimeComparison,
		Title:   "Practical Performance: Time Comparison",
		X:       Axis{Label: "Matrix Size (n x n)"},
		Y:       Axis{Label: "Time (ms)"},
		Lines:   actualLines(p, "Standard O(n^3)", "Strassen O(n^2.81)"),
		Caption: caption(p),
	}, nil
}

// TheoreticalVsActual compares curve shapes: n^3 and n^2.807 against measured times, each divided by its own maximum.
func TheoreticalVsActual(p types.Pair, st theme.Style, _ analysis.ZeroPolicy) (Figure, error) {
	p = p.Trimmed()
	n := p.Standard.Sizes()
	return Figure{
		View:  "theoretical vs actual",
		Stem:  StemTheoreticalVsActual,
		Title: "Theoretical vs Actual Complexity",
		X:     Axis{Label: "Matrix Size"},
		Y:     Axis{Label: "Normalized Values", Min: fptr(0), Max: fptr(1.05)},
		Lines: []Line{
			{Name: "Theoretical O(n^3)", X: n, Y: analysis.Normalize(analysis.Theoretical(n, analysis.StandardExponent)), Role: theme.StandardTheory, Width: 2, Dashed: true, Alpha: 0.6},
			{Name: "Theoretical O(n^2.81)", X: n, Y: analysis.Normalize(analysis.Theoretical(n, analysis.StrassenExponent)), Role: theme.StrassenTheory, Width: 2, Dashed: true, Alpha: 0.6},
			{Name: "Standard Actual", X: n, Y: analysis.Normalize(p.Standard.Times()), Role: theme.StandardActual, Width: 3, Alpha: 0.9, Marker: theme.MarkerCircle, MarkerSize: 6},
			{Name: "Strassen Actual", X: n, Y: analysis.Normalize(p.Strassen.Times()), Role: theme.StrassenActual, Width: 3, Alpha: 0.9, Marker: theme.MarkerSquare, MarkerSize: 6},
		},
		Caption: caption(p),
	}, nil
}

// SpeedupRatio plots standard/strassen per size with a break-even line at 1 and the two advantage regions shaded.
func SpeedupRatio(p types.Pair, st theme.Style, policy analysis.ZeroPolicy) (Figure, error) {
	p = p.Trimmed()
	xs, ys, err := analysis.ApplyZeroPolicy(StemSpeedupRatio, p.Standard.Sizes(), analysis.SpeedupRatio(p), policy)
	if err != nil {
		return Figure{}, err
	}
	return Figure{
		View:  "speedup ratio",
		Stem:  StemSpeedupRatio,
		Title: "Speedup Ratio Analysis",
		X:     Axis{Label: "Matrix Size"},
		Y:     Axis{Label: "Speedup Ratio (Standard/Strassen)"},
		Lines: []Line{
			{Name: "Speedup", X: xs, Y: ys, Role: theme.Speedup, Width: 3, Alpha: 1, Marker: theme.MarkerTriangle, MarkerSize: 10},
		},
		RefLines: []RefLine{
			{Name: "Break-even", Y: 1, Role: theme.BreakEven, Width: 2, Dashed: true, Alpha: 0.7},
		},
		Bands: []Band{
			{Name: "Strassen faster", Polygons: SplitBand(xs, ys, 1, true), Base: 1, Role: theme.StrassenActual, Alpha: st.FillAlpha},
			{Name: "Standard faster", Polygons: SplitBand(xs, ys, 1, false), Base: 1, Role: theme.StandardActual, Alpha: st.FillAlpha},
		},
		Caption: caption(p),
	}, nil
}

// LogLogComparison plots raw times with both axes log-scaled.
func LogLogComparison(p types.Pair, st theme.Style, _ analysis.ZeroPolicy) (Figure, error) {
	p = p.Trimmed()
	return Figure{
		View:    "log-scale",
		Stem:    StemLogLogComparison,
		Title:   "Log-Log Scale Comparison",
		X:       Axis{Label: "Matrix Size (log scale)", Log: true},
		Y:       Axis{Label: "Time (ms, log scale)", Log: true},
		Lines:   actualLines(p, "Standard", "Strassen"),
		Caption: caption(p),
	}, nil
}

func caption(p types.Pair) string {
	if p.Len() == 0 {
		return "no rows"
	}
	return fmt.Sprintf("%d rows, n=%d..%d", p.Len(), p.Standard.Points[0].Size, p.Standard.Points[p.Len()-1].Size)
}
