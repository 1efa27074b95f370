// matmulplot entrypoint: compare standard O(n^3) and Strassen O(n^2.807) matrix multiplication benchmarks.
//
// Running with no arguments reads data/standard_results.csv and data/strassen_results.csv and writes four charts
// to graphs/: time_comparison, theoretical_vs_actual, speedup_ratio and log_scale_comparison.
//
// Design notes:
//   - Settings come from flags, MATMULPLOT_* environment variables, or a YAML/JSON file given with --config,
//     in that order of precedence (viper).
//   - The two tables are index-aligned; a mismatch fails unless --strict-align=false.
//   - Any failure stops the run with exit code 1. Charts written before the failure are left in place.
//   - --show opens the written PNG/SVG charts in the matmulview window (cmd/matmulview) once the batch is done.
//     It is off by default so batch and CI runs stay headless.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Sqizeeeeee/sem11/src/logging"
	"github.com/Sqizeeeeee/sem11/src/pipeline"
)

const (
	envPrefix  = "MATMULPLOT"
	viewerName = "matmulview"
)

// previewFunc displays charts that were just written.
type previewFunc func(ctx context.Context, paths []string, timeout time.Duration) error

func newRootCmd(preview previewFunc) (*cobra.Command, error) {
	v := viper.New()
	def := pipeline.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "matmulplot",
		Short:         "Render standard vs Strassen benchmark comparison charts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path := v.GetString("config"); path != "" {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config: %w", err)
				}
			}
			logging.SetOutput(cmd.ErrOrStderr())
			if err := logging.SetLogLevel(v.GetString("log-level")); err != nil {
				return err
			}
			cfg := configFromViper(v)
			logging.Debugf("[init] config: %+v", cfg)
			written, err := pipeline.Run(cmd.Context(), cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if !v.GetBool("show") {
				return nil
			}
			shown := previewable(written)
			if len(shown) == 0 {
				logging.Warnf("[show] no png or svg charts to display (format %s)", cfg.Format)
				return nil
			}
			return preview(cmd.Context(), shown, v.GetDuration("show-timeout"))
		},
	}

	f := cmd.Flags()
	f.String("config", "", "Optional config file (yaml or json)")
	f.String("standard", def.StandardPath, "CSV with standard multiplication results (columns size,time_ms)")
	f.String("strassen", def.StrassenPath, "CSV with Strassen multiplication results (columns size,time_ms)")
	f.String("out-dir", def.OutDir, "Directory for the chart files")
	f.String("format", def.Format, "Chart format (png|svg|html)")
	f.Float64("dpi", 0, "Render resolution in dots per inch (0 = theme default 300)")
	f.Bool("create-out-dir", def.CreateOutDir, "Create the output directory if missing")
	f.Bool("strict-align", def.StrictAlign, "Fail when the two tables differ in length or sizes")
	f.String("zero-ratio", def.ZeroRatio, "Speedup ratio with a zero Strassen time (propagate|skip|fail)")
	f.Bool("captions", def.Captions, "Stamp a row-count caption onto PNG charts")
	f.String("summary-json", def.SummaryJSON, "Also write the comparison summary as JSON to this path")
	f.String("log-level", "info", "Log level (debug|info|warn|error)")
	f.Bool("show", false, "Display each written chart in a window (needs the matmulview binary)")
	f.Duration("show-timeout", 0, "With --show, advance to the next chart after this long (0 waits for the window to close)")
	if err := v.BindPFlags(f); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd, nil
}

func configFromViper(v *viper.Viper) pipeline.Config {
	return pipeline.Config{
		StandardPath: v.GetString("standard"),
		StrassenPath: v.GetString("strassen"),
		OutDir:       v.GetString("out-dir"),
		Format:       v.GetString("format"),
		DPI:          v.GetFloat64("dpi"),
		CreateOutDir: v.GetBool("create-out-dir"),
		StrictAlign:  v.GetBool("strict-align"),
		ZeroRatio:    v.GetString("zero-ratio"),
		Captions:     v.GetBool("captions"),
		SummaryJSON:  v.GetString("summary-json"),
		Colors:       v.GetStringMapString("colors"),
	}
}

// previewable keeps the charts the viewer can open.
func previewable(paths []string) []string {
	var out []string
	for _, p := range paths {
		switch strings.ToLower(filepath.Ext(p)) {
		case ".png", ".svg":
			out = append(out, p)
		}
	}
	return out
}

// launchViewer runs matmulview on paths and waits for it to exit.
func launchViewer(ctx context.Context, paths []string, timeout time.Duration) error {
	bin, err := viewerPath()
	if err != nil {
		return err
	}
	args := append([]string{"-timeout", timeout.String()}, paths...)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	logging.Debugf("[show] %s %s", bin, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", viewerName, err)
	}
	return nil
}

// viewerPath prefers a viewer installed next to this binary, then $PATH.
func viewerPath() (string, error) {
	if self, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(self), viewerName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	p, err := exec.LookPath(viewerName)
	if err != nil {
		return "", fmt.Errorf("--show needs %s (go install ./cmd/%s): %w", viewerName, viewerName, err)
	}
	return p, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cmd, err := newRootCmd(launchViewer)
	if err == nil {
		err = cmd.ExecuteContext(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "[error] %v\n", err)
		stop()
		os.Exit(1)
	}
}
