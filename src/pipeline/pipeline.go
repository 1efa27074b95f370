// Package pipeline runs one batch: load both benchmark tables, build the style, and write the four comparison charts.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Sqizeeeeee/sem11/src/analysis"
	"github.com/Sqizeeeeee/sem11/src/logging"
	"github.com/Sqizeeeeee/sem11/src/render"
	"github.com/Sqizeeeeee/sem11/src/theme"
	"github.com/Sqizeeeeee/sem11/src/views"
)

// Config controls one run.
type Config struct {
	StandardPath string
	StrassenPath string
	OutDir       string
	Format       string  // png, svg or html
	DPI          float64 // 0 keeps the theme default
	CreateOutDir bool
	StrictAlign  bool   // fail when rows are not index-aligned
	ZeroRatio    string // propagate, skip or fail
	Captions     bool
	SummaryJSON  string            // optional path for the summary report
	Colors       map[string]string // role -> #RRGGBB overrides
}

// DefaultConfig mirrors running the tool with no arguments.
func DefaultConfig() Config {
	return Config{
		StandardPath: "data/standard_results.csv",
		StrassenPath: "data/strassen_results.csv",
		OutDir:       "graphs",
		Format:       "png",
		CreateOutDir: true,
		StrictAlign:  true,
		ZeroRatio:    string(analysis.ZeroPropagate),
	}
}

// Style builds the chart style for cfg.
func (cfg Config) Style() (theme.Style, error) {
	st := theme.Dark()
	if cfg.DPI != 0 {
		var err error
		if st, err = st.WithDPI(cfg.DPI); err != nil {
			return st, err
		}
	}
	if len(cfg.Colors) > 0 {
		return st.WithOverrides(cfg.Colors)
	}
	return st, nil
}

// Run executes the whole pipeline. The first error stops it; artifacts already written stay in place.
// Progress lines go to out.
func Run(ctx context.Context, cfg Config, out io.Writer) ([]string, error) {
	defer logging.TimeTrack(time.Now(), "pipeline")

	policy, err := analysis.ParseZeroPolicy(cfg.ZeroRatio)
	if err != nil {
		return nil, err
	}
	r, err := render.New(cfg.Format, render.Options{Captions: cfg.Captions})
	if err != nil {
		return nil, err
	}

	pair, err := analysis.LoadPair(cfg.StandardPath, cfg.StrassenPath)
	if err != nil {
		return nil, err
	}
	logging.Infof("loaded %d standard and %d strassen rows", pair.Standard.Len(), pair.Strassen.Len())
	if err := analysis.CheckAligned(pair); err != nil {
		if cfg.StrictAlign {
			return nil, err
		}
		logging.Warnf("%v; using the first %d rows", err, pair.Len())
	}
	pair = pair.Trimmed()

	st, err := cfg.Style()
	if err != nil {
		return nil, err
	}

	summary := analysis.Summarize(pair)
	fmt.Fprintln(out, "Comparative analysis:")
	if err := summary.WriteTable(out); err != nil {
		return nil, err
	}

	if cfg.CreateOutDir {
		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("create out dir: %w", err)
		}
	}

	var written []string
	for _, v := range views.All() {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		fmt.Fprintf(out, "Creating %s plot...\n", v.Name)
		fig, err := v.Build(pair, st, policy)
		if err != nil {
			return written, err
		}
		path, err := render.Save(r, fig, st, cfg.OutDir)
		if err != nil {
			return written, err
		}
		written = append(written, path)
		fmt.Fprintf(out, "[render] wrote %s\n", path)
	}

	if cfg.SummaryJSON != "" {
		if err := summary.WriteJSON(cfg.SummaryJSON); err != nil {
			return written, err
		}
		fmt.Fprintf(out, "[summary] wrote %s\n", cfg.SummaryJSON)
	}
	fmt.Fprintf(out, "All plots saved to %s/ folder!\n", cfg.OutDir)
	return written, nil
}
