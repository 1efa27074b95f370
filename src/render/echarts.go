package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sqizeeeeee/sem11/src/theme"
	"github.com/Sqizeeeeee/sem11/src/views"
)

// echartsRenderer writes a standalone interactive HTML page per figure.
// echarts area fills always run to the axis, so a band is drawn as its outline plus one mark area per curve segment.
type echartsRenderer struct{}

func (echartsRenderer) Ext() string { return "html" }

func (echartsRenderer) Render(fig views.Figure, st theme.Style, w io.Writer) error {
	fig = logVisible(fig)
	if err := checkFinite(fig); err != nil {
		return err
	}
	text := st.Hex(theme.Text)
	wpx, hpx := st.PixelSize()
	// CSS pixels: keep the page at screen density rather than print DPI.
	wpx, hpx = int(float64(wpx)*96/st.DPI), int(float64(hpx)*96/st.DPI)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       fig.Title,
			Width:           fmt.Sprintf("%dpx", wpx),
			Height:          fmt.Sprintf("%dpx", hpx),
			BackgroundColor: st.Hex(theme.Background),
			ChartID:         fig.Stem,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:      fig.Title,
			Subtitle:   fig.Caption,
			TitleStyle: &opts.TextStyle{Color: text},
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom", TextStyle: &opts.TextStyle{Color: text}}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(xAxisOpts(fig.X, st)),
		charts.WithYAxisOpts(yAxisOpts(fig.Y, st)),
	)

	xs, _ := fig.Values()
	xmin, xmax, _ := extent(xs)
	for _, l := range fig.Lines {
		data := make([]opts.LineData, len(l.X))
		for i := range l.X {
			data[i] = opts.LineData{Value: []interface{}{l.X[i], l.Y[i]}}
		}
		ls := opts.LineStyle{Color: st.Hex(l.Role), Width: float32(l.Width), Type: "solid"}
		if l.Dashed {
			ls.Type = "dashed"
		}
		so := []charts.SeriesOpts{
			charts.WithLineStyleOpts(ls),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: st.Hex(l.Role)}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(l.Marker != theme.MarkerNone), Symbol: l.Marker.String(), SymbolSize: l.MarkerSize}),
		}
		line.AddSeries(l.Name, data, so...)
	}
	for _, r := range fig.RefLines {
		ls := opts.LineStyle{Color: st.Hex(r.Role), Width: float32(r.Width), Type: "solid"}
		if r.Dashed {
			ls.Type = "dashed"
		}
		data := []opts.LineData{{Value: []interface{}{xmin, r.Y}}, {Value: []interface{}{xmax, r.Y}}}
		line.AddSeries(r.Name, data,
			charts.WithLineStyleOpts(ls),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: st.Hex(r.Role)}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		)
	}
	for _, b := range fig.Bands {
		var data []opts.LineData
		var areas []opts.MarkAreaNameCoordItem
		for _, poly := range b.Polygons {
			if len(poly) == 0 {
				continue
			}
			for _, p := range poly {
				data = append(data, opts.LineData{Value: []interface{}{p.X, p.Y}})
			}
			data = append(data, opts.LineData{Value: []interface{}{poly[0].X, poly[0].Y}})
			// a null point separates polygons
			data = append(data, opts.LineData{Value: "-"})
			areas = append(areas, bandAreas(b, poly, rgba(st, b.Role, b.Alpha))...)
		}
		line.AddSeries(b.Name, data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: st.Hex(b.Role), Width: 1, Type: "solid"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: st.Hex(b.Role)}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithMarkAreaNameCoordItemOpts(areas...),
		)
	}
	return line.Render(w)
}

func axisType(log bool) string {
	if log {
		return "log"
	}
	return "value"
}

// bandAreas shades one band polygon with rectangles between the baseline and the segment midpoint height,
// which covers the same area as the trapezoid under each segment. The last two vertices close the polygon
// along the baseline and are not part of the curve.
func bandAreas(b views.Band, poly []views.Point, color string) []opts.MarkAreaNameCoordItem {
	if len(poly) < 4 {
		return nil
	}
	curve := poly[:len(poly)-2]
	areas := make([]opts.MarkAreaNameCoordItem, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		mid := (curve[i-1].Y + curve[i].Y) / 2
		areas = append(areas, opts.MarkAreaNameCoordItem{
			Coordinate0: []interface{}{curve[i-1].X, b.Base},
			Coordinate1: []interface{}{curve[i].X, mid},
			ItemStyle:   &opts.ItemStyle{Color: color},
			Label:       &opts.Label{Show: opts.Bool(false)},
		})
	}
	return areas
}

func rgba(st theme.Style, r theme.Role, alpha float64) string {
	c := st.ColorAlpha(r, alpha)
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", c.R, c.G, c.B, float64(c.A)/255)
}

func splitLine(st theme.Style) *opts.SplitLine {
	return &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: rgba(st, theme.Text, st.GridAlpha)}}
}

func xAxisOpts(a views.Axis, st theme.Style) opts.XAxis {
	x := opts.XAxis{
		Name:      a.Label,
		Type:      axisType(a.Log),
		SplitLine: splitLine(st),
		AxisLabel: &opts.AxisLabel{Color: st.Hex(theme.Text)},
	}
	if a.Min != nil {
		x.Min = *a.Min
	}
	if a.Max != nil {
		x.Max = *a.Max
	}
	return x
}

func yAxisOpts(a views.Axis, st theme.Style) opts.YAxis {
	y := opts.YAxis{
		Name:      a.Label,
		Type:      axisType(a.Log),
		SplitLine: splitLine(st),
		AxisLabel: &opts.AxisLabel{Color: st.Hex(theme.Text)},
	}
	if a.Min != nil {
		y.Min = *a.Min
	}
	if a.Max != nil {
		y.Max = *a.Max
	}
	return y
}
