package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Sqizeeeeee/sem11/src/analysis"
)

func writeInputs(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	std := filepath.Join(dir, "standard_results.csv")
	str := filepath.Join(dir, "strassen_results.csv")
	require.NoError(t, os.WriteFile(std, []byte("size,time_ms\n64,10\n128,80\n"), 0o644))
	require.NoError(t, os.WriteFile(str, []byte("size,time_ms\n64,12\n128,70\n"), 0o644))
	return dir, std, str
}

type recordedPreview struct {
	calls   int
	paths   []string
	timeout time.Duration
}

func (r *recordedPreview) preview(_ context.Context, paths []string, timeout time.Duration) error {
	r.calls++
	r.paths, r.timeout = paths, timeout
	return nil
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWith(t, (&recordedPreview{}).preview, args...)
}

func executeWith(t *testing.T, preview previewFunc, args ...string) (string, error) {
	t.Helper()
	cmd, err := newRootCmd(preview)
	require.NoError(t, err)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), err
}

func TestRoot_FlagsDriveRun(t *testing.T) {
	dir, std, str := writeInputs(t)
	out := filepath.Join(dir, "charts")
	stdout, err := execute(t, "--standard", std, "--strassen", str, "--out-dir", out, "--format", "svg", "--dpi", "60")
	require.NoError(t, err)
	require.Contains(t, stdout, "Creating time comparison plot...")
	for _, name := range []string{"time_comparison.svg", "theoretical_vs_actual.svg", "speedup_ratio.svg", "log_scale_comparison.svg"} {
		require.FileExists(t, filepath.Join(out, name))
	}
}

func TestRoot_ConfigFile(t *testing.T) {
	dir, std, str := writeInputs(t)
	out := filepath.Join(dir, "from-config")
	cfg := filepath.Join(dir, "matmulplot.yaml")
	content := "standard: " + std + "\nstrassen: " + str + "\nout-dir: " + out + "\ndpi: 60\nsummary-json: " +
		filepath.Join(dir, "summary.json") + "\ncolors:\n  speedup: \"#00FF00\"\n"
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o644))

	_, err := execute(t, "--config", cfg)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(out, "speedup_ratio.png"))
	require.FileExists(t, filepath.Join(dir, "summary.json"))
}

func TestRoot_EnvOverridesDefault(t *testing.T) {
	dir, std, str := writeInputs(t)
	t.Setenv("MATMULPLOT_STANDARD", std)
	t.Setenv("MATMULPLOT_STRASSEN", str)
	t.Setenv("MATMULPLOT_OUT_DIR", filepath.Join(dir, "env"))
	t.Setenv("MATMULPLOT_FORMAT", "html")
	t.Setenv("MATMULPLOT_DPI", "60")
	_, err := execute(t)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "env", "time_comparison.html"))
}

func TestRoot_MissingInputFails(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "--standard", filepath.Join(dir, "none.csv"), "--out-dir", filepath.Join(dir, "g"))
	var dle *analysis.DataLoadError
	require.ErrorAs(t, err, &dle)
}

func TestRoot_RejectsArgs(t *testing.T) {
	_, err := execute(t, "extra")
	require.Error(t, err)
}

func TestRoot_ShowOpensWrittenCharts(t *testing.T) {
	dir, std, str := writeInputs(t)
	out := filepath.Join(dir, "charts")
	rec := &recordedPreview{}
	_, err := executeWith(t, rec.preview, "--standard", std, "--strassen", str, "--out-dir", out, "--dpi", "60",
		"--show", "--show-timeout", "2s")
	require.NoError(t, err)
	require.Equal(t, 1, rec.calls)
	require.Equal(t, []string{
		filepath.Join(out, "time_comparison.png"),
		filepath.Join(out, "theoretical_vs_actual.png"),
		filepath.Join(out, "speedup_ratio.png"),
		filepath.Join(out, "log_scale_comparison.png"),
	}, rec.paths)
	require.Equal(t, 2*time.Second, rec.timeout)
}

func TestRoot_ShowOffByDefault(t *testing.T) {
	dir, std, str := writeInputs(t)
	rec := &recordedPreview{}
	_, err := executeWith(t, rec.preview, "--standard", std, "--strassen", str, "--out-dir", filepath.Join(dir, "g"), "--dpi", "60")
	require.NoError(t, err)
	require.Zero(t, rec.calls)
}

func TestRoot_ShowSkipsHTML(t *testing.T) {
	dir, std, str := writeInputs(t)
	rec := &recordedPreview{}
	_, err := executeWith(t, rec.preview, "--standard", std, "--strassen", str, "--out-dir", filepath.Join(dir, "g"),
		"--format", "html", "--show")
	require.NoError(t, err)
	require.Zero(t, rec.calls)
}

func TestRoot_ShowErrorFails(t *testing.T) {
	dir, std, str := writeInputs(t)
	boom := errors.New("no display")
	fail := func(context.Context, []string, time.Duration) error { return boom }
	_, err := executeWith(t, fail, "--standard", std, "--strassen", str, "--out-dir", filepath.Join(dir, "g"), "--dpi", "60", "--show")
	require.ErrorIs(t, err, boom)
}

func TestPreviewable(t *testing.T) {
	require.Equal(t, []string{"a.png", "b.SVG"}, previewable([]string{"a.png", "b.SVG", "c.html"}))
	require.Empty(t, previewable([]string{"c.html"}))
}
