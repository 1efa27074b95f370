package main

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"
)

func TestViewer_AdvancesThroughCharts(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	paths := []string{"graphs/time_comparison.png", "graphs/speedup_ratio.png"}

	v := newViewer(a, paths, 0)
	v.advance()
	require.Equal(t, "time_comparison.png (1/2)", v.caption.Text)
	require.Equal(t, paths[0], v.image.File)

	v.advance()
	require.Equal(t, "speedup_ratio.png (2/2)", v.caption.Text)
	require.Equal(t, paths[1], v.image.File)

	v.advance()
	require.Equal(t, 2, v.index)
}
