// Package render turns a views.Figure into a chart artifact. Three backends share one interface:
// png (go-chart), svg (gonum/plot) and html (go-echarts).
package render

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sqizeeeeee/sem11/src/logging"
	"github.com/Sqizeeeeee/sem11/src/theme"
	"github.com/Sqizeeeeee/sem11/src/views"
)

// Renderer draws one figure with the given style.
type Renderer interface {
	Render(fig views.Figure, st theme.Style, w io.Writer) error
	Ext() string
}

// Options tunes backends; fields a backend does not support are ignored.
type Options struct {
	Captions bool // stamp the figure caption onto PNG output
}

// Formats lists the supported output formats.
var Formats = []string{"png", "svg", "html"}

// New returns the renderer for format.
func New(format string, opts Options) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "png":
		return &chartRenderer{captions: opts.Captions}, nil
	case "svg":
		return &plotRenderer{}, nil
	case "html":
		return &echartsRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want %s)", format, strings.Join(Formats, "|"))
	}
}

// RenderError reports a figure that could not be drawn or written.
type RenderError struct {
	View string
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s (%s): %v", e.View, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Path returns where Save writes fig.
func Path(r Renderer, fig views.Figure, dir string) string {
	return filepath.Join(dir, fig.Stem+"."+r.Ext())
}

// Save renders fig into memory and writes it to dir/<stem>.<ext>, overwriting any existing file.
// The canvas buffer lives only for this call, so nothing leaks between views.
func Save(r Renderer, fig views.Figure, st theme.Style, dir string) (string, error) {
	path := Path(r, fig, dir)
	var buf bytes.Buffer
	if err := r.Render(fig, st, &buf); err != nil {
		return path, &RenderError{View: fig.View, Path: path, Err: err}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, &RenderError{View: fig.View, Path: path, Err: err}
	}
	return path, nil
}

// checkFinite rejects NaN and ±Inf anywhere in the plotted data.
func checkFinite(fig views.Figure) error {
	for _, l := range fig.Lines {
		for i := range l.X {
			if !finite(l.X[i]) || !finite(l.Y[i]) {
				return fmt.Errorf("line %q: non-finite point (%v, %v) at index %d", l.Name, l.X[i], l.Y[i], i)
			}
		}
	}
	return nil
}

// logVisible returns fig with samples that a log axis cannot place (zero, negative or NaN) removed from every line
// and reference line. Each dropped sample is logged; the input figure is left untouched.
func logVisible(fig views.Figure) views.Figure {
	if !fig.X.Log && !fig.Y.Log {
		return fig
	}
	ok := func(v float64, log bool) bool { return !log || v > 0 }
	lines := make([]views.Line, 0, len(fig.Lines))
	for _, l := range fig.Lines {
		kept := l
		kept.X, kept.Y = nil, nil
		for i := range l.X {
			if ok(l.X[i], fig.X.Log) && ok(l.Y[i], fig.Y.Log) {
				kept.X = append(kept.X, l.X[i])
				kept.Y = append(kept.Y, l.Y[i])
				continue
			}
			logging.Warnf("[%s] line %q: dropping (%v, %v) at index %d, not shown on a log axis", fig.Stem, l.Name, l.X[i], l.Y[i], i)
		}
		lines = append(lines, kept)
	}
	refs := make([]views.RefLine, 0, len(fig.RefLines))
	for _, r := range fig.RefLines {
		if !ok(r.Y, fig.Y.Log) {
			logging.Warnf("[%s] reference line %q at %v not shown on a log axis", fig.Stem, r.Name, r.Y)
			continue
		}
		refs = append(refs, r)
	}
	fig.Lines, fig.RefLines = lines, refs
	return fig
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// extent returns min and max of the finite values in vs.
func extent(vs []float64) (float64, float64, bool) {
	min, max := math.MaxFloat64, -math.MaxFloat64
	for _, v := range vs {
		if !finite(v) {
			continue
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max, min <= max
}
