package render

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gonum.org/v1/plot/plotter"

	"github.com/Sqizeeeeee/sem11/src/analysis"
	"github.com/Sqizeeeeee/sem11/src/theme"
	"github.com/Sqizeeeeee/sem11/src/types"
	"github.com/Sqizeeeeee/sem11/src/views"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func scenario() types.Pair {
	return types.Pair{
		Standard: types.Series{Name: types.StandardName, Points: []types.Observation{{Size: 64, TimeMs: 10}, {Size: 128, TimeMs: 80}}},
		Strassen: types.Series{Name: types.StrassenName, Points: []types.Observation{{Size: 64, TimeMs: 12}, {Size: 128, TimeMs: 70}}},
	}
}

// smallStyle keeps test images small.
func smallStyle(t *testing.T) theme.Style {
	t.Helper()
	st, err := theme.Dark().WithDPI(60)
	require.NoError(t, err)
	return st
}

func buildAll(t *testing.T, p types.Pair) []views.Figure {
	t.Helper()
	var figs []views.Figure
	for _, v := range views.All() {
		fig, err := v.Build(p, smallStyle(t), analysis.ZeroPropagate)
		require.NoError(t, err)
		figs = append(figs, fig)
	}
	return figs
}

func TestNew_Formats(t *testing.T) {
	for format, ext := range map[string]string{"": "png", "PNG": "png", "svg": "svg", "html": "html"} {
		r, err := New(format, Options{})
		require.NoError(t, err, format)
		require.Equal(t, ext, r.Ext())
	}
	_, err := New("gif", Options{})
	require.Error(t, err)
}

func TestSave_PNG_AllViews(t *testing.T) {
	r, err := New("png", Options{})
	require.NoError(t, err)
	st := smallStyle(t)
	dir := t.TempDir()
	for _, fig := range buildAll(t, scenario()) {
		path, err := Save(r, fig, st, dir)
		require.NoError(t, err, fig.Stem)
		require.Equal(t, filepath.Join(dir, fig.Stem+".png"), path)
		f, err := os.Open(path)
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		w, h := st.PixelSize()
		require.Equal(t, w, img.Bounds().Dx())
		require.Equal(t, h, img.Bounds().Dy())
	}
}

func TestSave_VectorAndHTML_AllViews(t *testing.T) {
	st := smallStyle(t)
	for _, format := range []string{"svg", "html"} {
		r, err := New(format, Options{})
		require.NoError(t, err)
		dir := t.TempDir()
		for _, fig := range buildAll(t, scenario()) {
			path, err := Save(r, fig, st, dir)
			require.NoError(t, err, "%s %s", format, fig.Stem)
			b, err := os.ReadFile(path)
			require.NoError(t, err)
			require.NotEmpty(t, b)
			switch format {
			case "svg":
				require.Contains(t, string(b), "<svg")
			case "html":
				require.Contains(t, string(b), fig.Title)
			}
		}
	}
}

func TestSave_Deterministic(t *testing.T) {
	st := smallStyle(t)
	for _, format := range Formats {
		r, err := New(format, Options{Captions: true})
		require.NoError(t, err)
		a, b := t.TempDir(), t.TempDir()
		for _, fig := range buildAll(t, scenario()) {
			pa, err := Save(r, fig, st, a)
			require.NoError(t, err)
			pb, err := Save(r, fig, st, b)
			require.NoError(t, err)
			ba, _ := os.ReadFile(pa)
			bb, _ := os.ReadFile(pb)
			require.True(t, bytes.Equal(ba, bb), "%s %s differs between runs", format, fig.Stem)
		}
	}
}

func TestSave_CaptionChangesPNG(t *testing.T) {
	st := smallStyle(t)
	fig := buildAll(t, scenario())[0]
	var plain, captioned bytes.Buffer
	require.NoError(t, (&chartRenderer{}).Render(fig, st, &plain))
	require.NoError(t, (&chartRenderer{captions: true}).Render(fig, st, &captioned))
	require.False(t, bytes.Equal(plain.Bytes(), captioned.Bytes()))
}

func TestSave_InfiniteRatioFails(t *testing.T) {
	p := scenario()
	p.Strassen.Points[1].TimeMs = 0
	st := smallStyle(t)
	fig, err := views.SpeedupRatio(p, st, analysis.ZeroPropagate)
	require.NoError(t, err)

	for _, format := range Formats {
		r, err := New(format, Options{})
		require.NoError(t, err)
		_, err = Save(r, fig, st, t.TempDir())
		var re *RenderError
		require.ErrorAs(t, err, &re, format)
		require.Equal(t, "speedup ratio", re.View)
		if format == "svg" {
			require.True(t, errors.Is(err, plotter.ErrInfinity), "gonum error should surface: %v", err)
		}
	}

	fig, err = views.SpeedupRatio(p, st, analysis.ZeroSkip)
	require.NoError(t, err)
	r, _ := New("png", Options{})
	_, err = Save(r, fig, st, t.TempDir())
	require.NoError(t, err)
}

func TestSave_LogAxisDropsZero(t *testing.T) {
	p := scenario()
	p.Standard.Points[0].TimeMs = 0
	st := smallStyle(t)
	fig, err := views.LogLogComparison(p, st, analysis.ZeroPropagate)
	require.NoError(t, err)
	for _, format := range Formats {
		r, _ := New(format, Options{})
		path, err := Save(r, fig, st, t.TempDir())
		require.NoError(t, err, format)
		require.FileExists(t, path)
	}
}

func TestLogVisible(t *testing.T) {
	fig := views.Figure{
		Stem:  "log_scale_comparison",
		X:     views.Axis{Log: true},
		Y:     views.Axis{Log: true},
		Lines: []views.Line{{Name: "Standard", X: []float64{64, 128, 256}, Y: []float64{0, 5, -1}}},
		RefLines: []views.RefLine{
			{Name: "zero", Y: 0},
			{Name: "one", Y: 1},
		},
	}
	got := logVisible(fig)
	require.Equal(t, []float64{128}, got.Lines[0].X)
	require.Equal(t, []float64{5}, got.Lines[0].Y)
	require.Len(t, got.RefLines, 1)
	require.Equal(t, "one", got.RefLines[0].Name)
	require.Equal(t, []float64{0, 5, -1}, fig.Lines[0].Y, "input must not change")

	linear := fig
	linear.X.Log, linear.Y.Log = false, false
	require.Equal(t, linear, logVisible(linear))
}

func TestSave_MissingDir(t *testing.T) {
	r, _ := New("png", Options{})
	fig := buildAll(t, scenario())[0]
	_, err := Save(r, fig, smallStyle(t), filepath.Join(t.TempDir(), "missing"))
	var re *RenderError
	require.ErrorAs(t, err, &re)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSave_OverwritesExisting(t *testing.T) {
	r, _ := New("svg", Options{})
	fig := buildAll(t, scenario())[0]
	dir := t.TempDir()
	path := Path(r, fig, dir)
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	_, err := Save(r, fig, smallStyle(t), dir)
	require.NoError(t, err)
	b, _ := os.ReadFile(path)
	require.NotEqual(t, "stale", string(b))
}
