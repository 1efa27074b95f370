package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Sqizeeeeee/sem11/src/theme"
	"github.com/Sqizeeeeee/sem11/src/views"
)

// plotRenderer draws SVG figures with gonum/plot.
type plotRenderer struct{}

func (plotRenderer) Ext() string { return "svg" }

func (plotRenderer) Render(fig views.Figure, st theme.Style, w io.Writer) error {
	// plot.LogScale panics on non-positive values.
	fig = logVisible(fig)
	text := st.Color(theme.Text)

	p := plot.New()
	p.BackgroundColor = st.Color(theme.Background)
	p.Title.Text = fig.Title
	p.Title.TextStyle.Color = text
	p.Title.TextStyle.Font.Size = vg.Points(st.TitleFontSize)
	p.Title.Padding = vg.Points(8)
	styleAxis(&p.X, fig.X, st)
	styleAxis(&p.Y, fig.Y, st)

	grid := plotter.NewGrid()
	grid.Vertical.Color = st.ColorAlpha(theme.Text, st.GridAlpha)
	grid.Horizontal.Color = st.ColorAlpha(theme.Text, st.GridAlpha)
	p.Add(grid)

	p.Legend.TextStyle.Color = text
	p.Legend.TextStyle.Font.Size = vg.Points(st.LegendFontSize)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = vg.Points(8)
	p.Legend.YOffs = vg.Points(-8)

	for _, l := range fig.Lines {
		if len(l.X) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(l.X))
		for i := range l.X {
			pts[i] = plotter.XY{X: l.X[i], Y: l.Y[i]}
		}
		line, scatter, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("line %q: %w", l.Name, err)
		}
		col := st.ColorAlpha(l.Role, l.Alpha)
		line.LineStyle = lineStyle(col, l.Width, l.Dashed)
		if l.Marker == theme.MarkerNone {
			p.Add(line)
			p.Legend.Add(l.Name, line)
			continue
		}
		scatter.GlyphStyle = draw.GlyphStyle{Color: col, Radius: vg.Points(l.MarkerSize / 2), Shape: glyph(l.Marker)}
		p.Add(line, scatter)
		p.Legend.Add(l.Name, line, scatter)
	}

	xs, _ := fig.Values()
	xmin, xmax, ok := extent(xs)
	if !ok {
		return fmt.Errorf("figure %q has no data", fig.Stem)
	}
	for _, r := range fig.RefLines {
		ref, err := plotter.NewLine(plotter.XYs{{X: xmin, Y: r.Y}, {X: xmax, Y: r.Y}})
		if err != nil {
			return fmt.Errorf("reference line %q: %w", r.Name, err)
		}
		ref.LineStyle = lineStyle(st.ColorAlpha(r.Role, r.Alpha), r.Width, r.Dashed)
		p.Add(ref)
		p.Legend.Add(r.Name, ref)
	}
	for _, b := range fig.Bands {
		var first *plotter.Polygon
		for _, poly := range b.Polygons {
			pts := make(plotter.XYs, len(poly))
			for i, pt := range poly {
				pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
			}
			pg, err := plotter.NewPolygon(pts)
			if err != nil {
				return fmt.Errorf("band %q: %w", b.Name, err)
			}
			pg.Color = st.ColorAlpha(b.Role, b.Alpha)
			pg.LineStyle.Width = 0
			p.Add(pg)
			if first == nil {
				first = pg
			}
		}
		if first != nil {
			p.Legend.Add(b.Name, first)
		}
	}

	if fig.Y.Min != nil {
		p.Y.Min = *fig.Y.Min
	}
	if fig.Y.Max != nil {
		p.Y.Max = *fig.Y.Max
	}

	wt, err := p.WriterTo(vg.Length(st.WidthIn)*vg.Inch, vg.Length(st.HeightIn)*vg.Inch, "svg")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func styleAxis(a *plot.Axis, ax views.Axis, st theme.Style) {
	text := st.Color(theme.Text)
	a.Label.Text = ax.Label
	a.Label.TextStyle.Color = text
	a.Label.TextStyle.Font.Size = vg.Points(st.LabelFontSize)
	a.LineStyle.Color = text
	a.Tick.LineStyle.Color = text
	a.Tick.Label.Color = text
	a.Tick.Label.Font.Size = vg.Points(st.LabelFontSize - 2)
	if ax.Log {
		a.Scale = plot.LogScale{}
		a.Tick.Marker = plot.LogTicks{Prec: -1}
	}
}

func lineStyle(col color.Color, width float64, dashed bool) draw.LineStyle {
	ls := draw.LineStyle{Color: col, Width: vg.Points(width)}
	if dashed {
		ls.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	}
	return ls
}

func glyph(m theme.Marker) draw.GlyphDrawer {
	switch m {
	case theme.MarkerSquare:
		return draw.SquareGlyph{}
	case theme.MarkerTriangle:
		return draw.TriangleGlyph{}
	default:
		return draw.CircleGlyph{}
	}
}
