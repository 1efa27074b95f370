package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"

	"github.com/Sqizeeeeee/sem11/src/types"
)

// Row is one line of the comparison table. Ratio is nil when the Strassen time was zero.
type Row struct {
	Size       int      `json:"size"`
	StandardMs float64  `json:"standard_ms"`
	StrassenMs float64  `json:"strassen_ms"`
	Ratio      *float64 `json:"ratio"`
}

// Fit is a least-squares line through log(time) against log(size); Exponent is the slope.
type Fit struct {
	Exponent  float64 `json:"exponent"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	Samples   int     `json:"samples"`
}

// Summary aggregates the loaded pair for the console table and the optional JSON report.
type Summary struct {
	Rows               []Row     `json:"rows"`
	StandardFit        *Fit      `json:"standard_fit,omitempty"`
	StrassenFit        *Fit      `json:"strassen_fit,omitempty"`
	Crossovers         []float64 `json:"crossovers"`
	StrassenFasterRows int       `json:"strassen_faster_rows"`
	StandardFasterRows int       `json:"standard_faster_rows"`
}

// Summarize builds the per-row table, empirical exponents and break-even crossings.
func Summarize(p types.Pair) Summary {
	ratios := SpeedupRatio(p)
	sum := Summary{Rows: make([]Row, len(ratios)), Crossovers: []float64{}}
	for i, r := range ratios {
		row := Row{
			Size:       p.Standard.Points[i].Size,
			StandardMs: p.Standard.Points[i].TimeMs,
			StrassenMs: p.Strassen.Points[i].TimeMs,
		}
		if !r.DivByZero {
			v := r.Value
			row.Ratio = &v
			switch {
			case v > 1:
				sum.StrassenFasterRows++
			case v < 1:
				sum.StandardFasterRows++
			}
		}
		sum.Rows[i] = row
	}
	trimmed := p.Trimmed()
	sum.StandardFit = FitExponent(trimmed.Standard)
	sum.StrassenFit = FitExponent(trimmed.Strassen)
	sum.Crossovers = Crossovers(trimmed.Standard.Sizes(), ratios)
	return sum
}

// FitExponent regresses log(time) on log(size). Rows with non-positive time are skipped.
// Returns nil when fewer than two distinct sizes remain.
func FitExponent(s types.Series) *Fit {
	var xs, ys []float64
	distinct := map[int]struct{}{}
	for _, o := range s.Points {
		if o.TimeMs <= 0 {
			continue
		}
		xs = append(xs, math.Log(float64(o.Size)))
		ys = append(ys, math.Log(o.TimeMs))
		distinct[o.Size] = struct{}{}
	}
	if len(distinct) < 2 {
		return nil
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)
	if math.IsNaN(r2) {
		// constant times: every residual is zero
		r2 = 1
	}
	return &Fit{Exponent: beta, Intercept: alpha, RSquared: r2, Samples: len(xs)}
}

// Crossovers returns the sizes where the speedup ratio crosses 1, interpolated linearly between neighbouring rows.
// Undefined ratios break the scan.
func Crossovers(sizes []float64, rs []Ratio) []float64 {
	out := []float64{}
	for i := 0; i+1 < len(rs); i++ {
		a, b := rs[i], rs[i+1]
		if a.DivByZero || b.DivByZero || math.IsNaN(a.Value) || math.IsNaN(b.Value) {
			continue
		}
		da, db := a.Value-1, b.Value-1
		switch {
		case da == 0:
			if len(out) == 0 || out[len(out)-1] != sizes[i] {
				out = append(out, sizes[i])
			}
		case da*db < 0:
			out = append(out, sizes[i]+(sizes[i+1]-sizes[i])*(-da)/(db-da))
		}
	}
	if n := len(rs); n > 0 && !rs[n-1].DivByZero && rs[n-1].Value == 1 {
		if len(out) == 0 || out[len(out)-1] != sizes[n-1] {
			out = append(out, sizes[n-1])
		}
	}
	return out
}

// WriteTable prints the comparison table and fitted exponents.
func (s Summary) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Size\tStandard(ms)\tStrassen(ms)\tRatio")
	for _, r := range s.Rows {
		ratio := "undefined"
		if r.Ratio != nil {
			ratio = fmt.Sprintf("%.3f", *r.Ratio)
		}
		fmt.Fprintf(tw, "%dx%d\t%.3f\t%.3f\t%s\n", r.Size, r.Size, r.StandardMs, r.StrassenMs, ratio)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		fit  *Fit
		want float64
	}{{"standard", s.StandardFit, StandardExponent}, {"strassen", s.StrassenFit, StrassenExponent}} {
		if f.fit == nil {
			fmt.Fprintf(w, "%s: empirical exponent n/a (need two distinct sizes)\n", f.name)
			continue
		}
		fmt.Fprintf(w, "%s: empirical exponent %.3f (theory %.3f, r2=%.3f)\n", f.name, f.fit.Exponent, f.want, f.fit.RSquared)
	}
	if len(s.Crossovers) == 0 {
		_, err := fmt.Fprintf(w, "break-even: none (strassen faster rows=%d, standard faster rows=%d)\n", s.StrassenFasterRows, s.StandardFasterRows)
		return err
	}
	for _, x := range s.Crossovers {
		fmt.Fprintf(w, "break-even: ~%.0f\n", x)
	}
	return nil
}

// WriteJSON writes the summary as indented JSON to path, overwriting it.
func (s Summary) WriteJSON(path string) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write summary %s: %w", path, err)
	}
	return nil
}
