package render

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/Sqizeeeeee/sem11/src/theme"
	"github.com/Sqizeeeeee/sem11/src/views"
)

// chartRenderer draws PNG figures with go-chart. Log axes are drawn by plotting log10 values
// against ticks labelled in data units.
type chartRenderer struct {
	captions bool
}

func (c *chartRenderer) Ext() string { return "png" }

func (c *chartRenderer) Render(fig views.Figure, st theme.Style, w io.Writer) error {
	fig = logVisible(fig)
	if err := checkFinite(fig); err != nil {
		return err
	}
	tx, ty := scaleFunc(fig.X.Log), scaleFunc(fig.Y.Log)
	px := func(pt float64) float64 { return pt * st.DPI / 72 }

	xsAll, ysAll := fig.Values()
	xmin, xmax, okX := extent(apply(tx, xsAll))
	ymin, ymax, okY := extent(apply(ty, ysAll))
	if !okX || !okY {
		return fmt.Errorf("figure %q has no data", fig.Stem)
	}

	series := []chart.Series{}
	for _, l := range fig.Lines {
		if len(l.X) == 0 {
			continue
		}
		xs, ys := apply(tx, l.X), apply(ty, l.Y)
		if len(xs) == 1 {
			// go-chart needs two X values to build a range
			xs, ys = []float64{xs[0], xs[0]}, []float64{ys[0], ys[0]}
		}
		col := st.ColorAlpha(l.Role, l.Alpha)
		style := chart.Style{StrokeColor: col, StrokeWidth: px(l.Width)}
		if l.Dashed {
			style.StrokeDashArray = []float64{px(4), px(2)}
		}
		if l.Marker != theme.MarkerNone {
			style.DotColor = col
			style.DotWidth = px(l.MarkerSize) / 2
		}
		series = append(series, chart.ContinuousSeries{Name: l.Name, XValues: xs, YValues: ys, Style: style})
	}
	for _, r := range fig.RefLines {
		style := chart.Style{StrokeColor: st.ColorAlpha(r.Role, r.Alpha), StrokeWidth: px(r.Width)}
		if r.Dashed {
			style.StrokeDashArray = []float64{px(4), px(2)}
		}
		y := ty(r.Y)
		series = append(series, chart.ContinuousSeries{Name: r.Name, XValues: []float64{xmin, xmax}, YValues: []float64{y, y}, Style: style})
	}
	for _, b := range fig.Bands {
		fill := st.ColorAlpha(b.Role, b.Alpha)
		polys := make([][]views.Point, len(b.Polygons))
		for i, poly := range b.Polygons {
			polys[i] = make([]views.Point, len(poly))
			for j, p := range poly {
				polys[i][j] = views.Point{X: tx(p.X), Y: ty(p.Y)}
			}
		}
		series = append(series, bandSeries{name: b.Name, polygons: polys, style: chart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: px(6)}})
	}

	xr, xticks := axisRange(fig.X, xmin, xmax)
	yr, yticks := axisRange(fig.Y, ymin, ymax)

	text := st.Color(theme.Text)
	bg := st.Color(theme.Background)
	labelStyle := chart.Style{FontColor: text, FontSize: st.LabelFontSize}
	tickStyle := chart.Style{FontColor: text, StrokeColor: text, StrokeWidth: px(0.8), FontSize: st.LabelFontSize - 2}
	gridStyle := chart.Style{StrokeColor: st.ColorAlpha(theme.Text, st.GridAlpha), StrokeWidth: px(0.8)}

	wpx, hpx := st.PixelSize()
	pad := int(px(14))
	ch := chart.Chart{
		Title:      fig.Title,
		TitleStyle: chart.Style{FontColor: text, FontSize: st.TitleFontSize},
		Width:      wpx,
		Height:     hpx,
		DPI:        st.DPI,
		Background: chart.Style{FillColor: bg, Padding: chart.Box{Top: pad * 3, Left: pad, Right: pad * 2, Bottom: pad}},
		Canvas:     chart.Style{FillColor: bg},
		XAxis: chart.XAxis{
			Name:           fig.X.Label,
			NameStyle:      labelStyle,
			Style:          tickStyle,
			Range:          xr,
			Ticks:          xticks,
			GridMajorStyle: gridStyle,
			GridMinorStyle: chart.Style{Hidden: true},
		},
		YAxis: chart.YAxis{
			Name:           fig.Y.Label,
			NameStyle:      labelStyle,
			Style:          tickStyle,
			Range:          yr,
			Ticks:          yticks,
			GridMajorStyle: gridStyle,
			GridMinorStyle: chart.Style{Hidden: true},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch, chart.Style{
		FillColor:   bg,
		FontColor:   text,
		FontSize:    st.LegendFontSize,
		StrokeColor: st.Color(theme.Grid),
	})}

	if !c.captions {
		return ch.Render(chart.PNG, w)
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return fmt.Errorf("decode rendered chart: %w", err)
	}
	return png.Encode(w, drawCaption(img, fig.Caption, st))
}

// axisRange picks fixed bounds and ticks for one axis. lo/hi are already in plotted (possibly log10) units.
func axisRange(a views.Axis, lo, hi float64) (*chart.ContinuousRange, []chart.Tick) {
	if a.Log {
		lmin, lmax := logBounds(math.Pow(10, lo), math.Pow(10, hi))
		return &chart.ContinuousRange{Min: lmin, Max: lmax}, logTicks(lmin, lmax)
	}
	min, max := linearBounds(lo, hi, 6)
	if a.Min != nil {
		min = *a.Min
	}
	if a.Max != nil {
		max = *a.Max
	}
	return &chart.ContinuousRange{Min: min, Max: max}, niceTicks(min, max, 6)
}

func scaleFunc(log bool) func(float64) float64 {
	if log {
		return math.Log10
	}
	return func(v float64) float64 { return v }
}

func apply(f func(float64) float64, vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = f(v)
	}
	return out
}

// bandSeries fills polygons given in plotted units. It contributes nothing to the axis ranges.
type bandSeries struct {
	name     string
	polygons [][]views.Point
	style    chart.Style
}

func (b bandSeries) GetName() string           { return b.name }
func (b bandSeries) GetStyle() chart.Style     { return b.style }
func (b bandSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (b bandSeries) Validate() error           { return nil }

func (b bandSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, _ chart.Style) {
	for _, poly := range b.polygons {
		if len(poly) < 3 {
			continue
		}
		r.SetFillColor(b.style.FillColor)
		for i, p := range poly {
			x := canvasBox.Left + xrange.Translate(p.X)
			y := canvasBox.Bottom - yrange.Translate(p.Y)
			if i == 0 {
				r.MoveTo(x, y)
				continue
			}
			r.LineTo(x, y)
		}
		r.Close()
		r.Fill()
	}
}
