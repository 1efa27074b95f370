// matmulview shows rendered comparison charts one at a time in a window. Closing the window or pressing Next
// moves on to the following chart; the program exits after the last one.
//
// Usage:
//
//	matmulview [-timeout 5s] graphs/time_comparison.png graphs/speedup_ratio.png ...
//
// With -timeout each chart advances on its own, so a batch run can show its charts and finish unattended.
// matmulplot --show launches this program with the charts it just wrote.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type viewer struct {
	app     fyne.App
	window  fyne.Window
	paths   []string
	index   int
	gen     int // bumped per chart so a stale timer cannot skip the next one
	timeout time.Duration

	caption *widget.Label
	image   *canvas.Image
}

func newViewer(a fyne.App, paths []string, timeout time.Duration) *viewer {
	v := &viewer{app: a, paths: paths, timeout: timeout, index: -1}
	v.window = a.NewWindow("matmulplot")
	v.window.Resize(fyne.NewSize(1000, 640))
	v.caption = widget.NewLabel("")
	v.image = canvas.NewImageFromFile("")
	v.image.FillMode = canvas.ImageFillContain
	next := widget.NewButton("Next", v.advance)
	v.window.SetContent(container.NewBorder(container.NewHBox(v.caption, next), nil, nil, nil, v.image))
	v.window.SetCloseIntercept(v.advance)
	return v
}

// advance shows the next chart or quits after the last.
func (v *viewer) advance() {
	v.index++
	v.gen++
	if v.index >= len(v.paths) {
		v.app.Quit()
		return
	}
	path := v.paths[v.index]
	v.caption.SetText(fmt.Sprintf("%s (%d/%d)", filepath.Base(path), v.index+1, len(v.paths)))
	v.image.File = path
	v.image.Refresh()
	if v.timeout > 0 {
		gen := v.gen
		time.AfterFunc(v.timeout, func() {
			fyne.Do(func() {
				if v.gen == gen {
					v.advance()
				}
			})
		})
	}
}

func main() {
	timeout := flag.Duration("timeout", 0, "Advance to the next chart after this long (0 waits for the window to close)")
	flag.Parse()
	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: matmulview [-timeout 5s] chart.png ...")
		os.Exit(2)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			fmt.Fprintf(os.Stderr, "[view] %v\n", err)
			os.Exit(1)
		}
	}

	a := app.NewWithID("com.matmulplot.viewer")
	v := newViewer(a, paths, *timeout)
	v.advance()
	v.window.ShowAndRun()
}
