package analysis

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sqizeeeeee/sem11/src/types"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadSeries_PreservesRowOrder(t *testing.T) {
	p := writeCSV(t, "standard_results.csv", "size,time_ms\n16,0.02\n64,1.5\n128,12.25\n256,98\n")
	s, err := LoadSeries(p, types.StandardName)
	require.NoError(t, err)
	require.Equal(t, types.StandardName, s.Name)
	require.Equal(t, []types.Observation{{Size: 16, TimeMs: 0.02}, {Size: 64, TimeMs: 1.5}, {Size: 128, TimeMs: 12.25}, {Size: 256, TimeMs: 98}}, s.Points)
	for i := 1; i < s.Len(); i++ {
		require.LessOrEqual(t, s.Points[i-1].Size, s.Points[i].Size)
	}
}

func TestParseSeries_ColumnsByNameExtraIgnored(t *testing.T) {
	in := "\ufeffTime_MS , iterations, Size\n1.5, 10, 64\n\n12.5, 10, 128\n"
	s, err := ParseSeries(strings.NewReader(in), "mem", types.StrassenName)
	require.NoError(t, err)
	require.Equal(t, []types.Observation{{Size: 64, TimeMs: 1.5}, {Size: 128, TimeMs: 12.5}}, s.Points)
}

func TestLoadSeries_Missing(t *testing.T) {
	_, err := LoadSeries(filepath.Join(t.TempDir(), "nope.csv"), types.StandardName)
	var dle *DataLoadError
	require.ErrorAs(t, err, &dle)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseSeries_Errors(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		line   int
		column string
	}{
		{"empty", "", 0, ""},
		{"header only", "size,time_ms\n", 0, ""},
		{"missing size", "n,time_ms\n1,2\n", 1, ColumnSize},
		{"missing time", "size,seconds\n1,2\n", 1, ColumnTimeMs},
		{"bad size", "size,time_ms\n64,1\nabc,2\n", 3, ColumnSize},
		{"zero size", "size,time_ms\n0,1\n", 2, ColumnSize},
		{"bad time", "size,time_ms\n64,fast\n", 2, ColumnTimeMs},
		{"negative time", "size,time_ms\n64,-1\n", 2, ColumnTimeMs},
		{"ragged row", "size,time_ms\n64,1\n128\n", 3, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSeries(strings.NewReader(tc.in), "in.csv", types.StandardName)
			var dle *DataLoadError
			require.ErrorAs(t, err, &dle)
			require.Equal(t, "in.csv", dle.Path)
			require.Equal(t, tc.line, dle.Line)
			require.Equal(t, tc.column, dle.Column)
		})
	}
}

func TestLoadPair_FirstFailureWins(t *testing.T) {
	good := writeCSV(t, "s.csv", "size,time_ms\n64,10\n")
	bad := writeCSV(t, "b.csv", "size\n64\n")
	_, err := LoadPair(good, bad)
	var dle *DataLoadError
	require.ErrorAs(t, err, &dle)
	require.Equal(t, bad, dle.Path)

	p, err := LoadPair(good, good)
	require.NoError(t, err)
	require.Equal(t, types.StrassenName, p.Strassen.Name)
	require.Equal(t, 1, p.Len())
}

func TestCheckAligned(t *testing.T) {
	a := types.Series{Points: []types.Observation{{Size: 64, TimeMs: 1}, {Size: 128, TimeMs: 2}}}
	require.NoError(t, CheckAligned(types.Pair{Standard: a, Strassen: a}))

	short := types.Series{Points: a.Points[:1]}
	var ae *AlignmentError
	require.ErrorAs(t, CheckAligned(types.Pair{Standard: a, Strassen: short}), &ae)
	require.Equal(t, -1, ae.Index)

	shifted := types.Series{Points: []types.Observation{{Size: 64, TimeMs: 1}, {Size: 256, TimeMs: 2}}}
	require.ErrorAs(t, CheckAligned(types.Pair{Standard: a, Strassen: shifted}), &ae)
	require.Equal(t, 1, ae.Index)
	require.Equal(t, 256, ae.StrassenSize)
}
