// Package views turns a loaded benchmark pair into backend-neutral figures: the plotted sequences, reference lines,
// shaded bands and axis settings of each comparison chart. Builders are pure; rendering lives in package render.
package views

import (
	"math"

	"github.com/Sqizeeeeee/sem11/src/theme"
)

// Point is a vertex in data coordinates.
type Point struct{ X, Y float64 }

// Line is one plotted sequence.
type Line struct {
	Name       string
	X, Y       []float64
	Role       theme.Role
	Width      float64 // points
	Dashed     bool
	Alpha      float64
	Marker     theme.Marker
	MarkerSize float64 // points
}

// RefLine is a horizontal reference line spanning the whole X range.
type RefLine struct {
	Name   string
	Y      float64
	Role   theme.Role
	Width  float64
	Dashed bool
	Alpha  float64
}

// Band is a shaded region made of closed polygons, each bounded by the curve and the horizontal line y=Base.
type Band struct {
	Name     string
	Polygons [][]Point
	Base     float64
	Role     theme.Role
	Alpha    float64
}

// Axis describes one axis. Min/Max are fixed bounds when set, otherwise the renderer fits the data.
type Axis struct {
	Label string
	Log   bool
	Min   *float64
	Max   *float64
}

// Figure is everything one chart draws.
type Figure struct {
	View     string // human readable view name
	Stem     string // output file name without extension
	Title    string
	X, Y     Axis
	Lines    []Line
	RefLines []RefLine
	Bands    []Band
	Caption  string
}

// Values returns every plotted X and Y value, reference lines and band vertices included.
func (f Figure) Values() (xs, ys []float64) {
	for _, l := range f.Lines {
		xs = append(xs, l.X...)
		ys = append(ys, l.Y...)
	}
	for _, r := range f.RefLines {
		ys = append(ys, r.Y)
	}
	for _, b := range f.Bands {
		for _, poly := range b.Polygons {
			for _, p := range poly {
				xs = append(xs, p.X)
				ys = append(ys, p.Y)
			}
		}
	}
	return xs, ys
}

// SplitBand returns the polygons enclosed between the curve (xs, ys) and the horizontal baseline on one side of it:
// above=true keeps the parts where y > base, above=false where y < base. Runs are cut at the interpolated crossing
// so no polygon spans both sides. Non-finite samples break a run.
func SplitBand(xs, ys []float64, base float64, above bool) [][]Point {
	in := func(y float64) bool {
		if above {
			return y > base
		}
		return y < base
	}
	var polys [][]Point
	var cur []Point
	flush := func() {
		if len(cur) >= 2 {
			poly := make([]Point, 0, len(cur)+2)
			poly = append(poly, cur...)
			poly = append(poly, Point{cur[len(cur)-1].X, base}, Point{cur[0].X, base})
			polys = append(polys, poly)
		}
		cur = nil
	}
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	for i := 0; i < n; i++ {
		x, y := xs[i], ys[i]
		if !finite(x) || !finite(y) {
			flush()
			continue
		}
		if i > 0 && finite(xs[i-1]) && finite(ys[i-1]) {
			px, py := xs[i-1], ys[i-1]
			prevIn, nowIn := in(py), in(y)
			d0, d1 := py-base, y-base
			switch {
			case prevIn && !nowIn:
				if d0*d1 < 0 {
					cur = append(cur, Point{px + (x-px)*(-d0)/(d1-d0), base})
				} else {
					cur = append(cur, Point{x, y})
				}
				flush()
			case !prevIn && nowIn:
				if d0*d1 < 0 {
					cur = append(cur, Point{px + (x-px)*(-d0)/(d1-d0), base})
				} else {
					cur = append(cur, Point{px, py})
				}
			}
		}
		if in(y) {
			cur = append(cur, Point{x, y})
		}
	}
	flush()
	return polys
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func fptr(v float64) *float64 { return &v }
