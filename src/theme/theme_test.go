package theme

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestDark_Deterministic(t *testing.T) {
	a, b := Dark(), Dark()
	for _, r := range Roles() {
		require.Equal(t, a.Color(r), b.Color(r), "role %s", r)
	}
	require.Equal(t, "#FF6B6B", a.Hex(StandardActual))
	require.Equal(t, "#4ECDC4", a.Hex(StrassenActual))
	require.Equal(t, "#0A0A0A", a.Hex(Background))
	require.Equal(t, drawing.ColorWhite, a.Color(BreakEven))
	w, h := a.PixelSize()
	require.Equal(t, 3000, w)
	require.Equal(t, 1800, h)
}

func TestWithOverrides_CopiesPalette(t *testing.T) {
	base := Dark()
	st, err := base.WithOverrides(map[string]string{"Speedup": "#00ff00", "grid": "111111"})
	require.NoError(t, err)
	require.Equal(t, "#00FF00", st.Hex(Speedup))
	require.Equal(t, "#111111", st.Hex(Grid))
	require.Equal(t, "#FFD93D", base.Hex(Speedup), "base style must not change")

	_, err = base.WithOverrides(map[string]string{"axis": "#ffffff"})
	require.Error(t, err)
	_, err = base.WithOverrides(map[string]string{"grid": "#12345"})
	require.Error(t, err)
}

func TestWithDPI(t *testing.T) {
	st, err := Dark().WithDPI(100)
	require.NoError(t, err)
	w, h := st.PixelSize()
	require.Equal(t, 1000, w)
	require.Equal(t, 600, h)
	_, err = Dark().WithDPI(0)
	require.Error(t, err)
}

func TestColorAlpha(t *testing.T) {
	c := Dark().ColorAlpha(StrassenActual, 0.3)
	require.Equal(t, uint8(77), c.A)
	require.Equal(t, uint8(0x4E), c.R)
	require.Equal(t, uint8(255), Dark().ColorAlpha(Text, 2).A)
}
