// Package theme defines the chart Style Configuration. A Style is built once and passed to every view and renderer;
// nothing here mutates global rendering state.
package theme

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Role is a semantic slot in the palette.
type Role string

const (
	StandardActual Role = "standard_actual"
	StrassenActual Role = "strassen_actual"
	StandardTheory Role = "standard_theory"
	StrassenTheory Role = "strassen_theory"
	Speedup        Role = "speedup"
	BreakEven      Role = "break_even"
	Background     Role = "background"
	Grid           Role = "grid"
	Text           Role = "text"
)

// Marker is the point glyph drawn at each sample.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerCircle
	MarkerSquare
	MarkerTriangle
)

func (m Marker) String() string {
	switch m {
	case MarkerCircle:
		return "circle"
	case MarkerSquare:
		return "rect"
	case MarkerTriangle:
		return "triangle"
	default:
		return "none"
	}
}

// Style is the fixed mapping from roles to display attributes plus figure geometry.
type Style struct {
	colors map[Role]drawing.Color

	WidthIn  float64 // figure width in inches
	HeightIn float64
	DPI      float64

	TitleFontSize  float64 // points
	LabelFontSize  float64
	LegendFontSize float64

	GridAlpha float64
	FillAlpha float64
}

var hexColor = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// Dark returns the dark theme used for every chart. The result is the same on every call.
func Dark() Style {
	return Style{
		colors: map[Role]drawing.Color{
			StandardActual: drawing.ColorFromHex("FF6B6B"),
			StrassenActual: drawing.ColorFromHex("4ECDC4"),
			StandardTheory: drawing.ColorFromHex("8B0000"),
			StrassenTheory: drawing.ColorFromHex("006D6D"),
			Speedup:        drawing.ColorFromHex("FFD93D"),
			BreakEven:      drawing.ColorWhite,
			Background:     drawing.ColorFromHex("0A0A0A"),
			Grid:           drawing.ColorFromHex("2A2A2A"),
			Text:           drawing.ColorFromHex("E8E8E8"),
		},
		WidthIn:        10,
		HeightIn:       6,
		DPI:            300,
		TitleFontSize:  14,
		LabelFontSize:  12,
		LegendFontSize: 11,
		GridAlpha:      0.2,
		FillAlpha:      0.3,
	}
}

// Roles lists every known role in sorted order.
func Roles() []Role {
	rs := make([]Role, 0, len(Dark().colors))
	for r := range Dark().colors {
		rs = append(rs, r)
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return rs
}

// Color returns the opaque color for a role (black for unknown roles).
func (s Style) Color(r Role) drawing.Color {
	c, ok := s.colors[r]
	if !ok {
		return drawing.ColorBlack
	}
	return c
}

// ColorAlpha returns the role color with alpha in [0,1] applied.
func (s Style) ColorAlpha(r Role, alpha float64) drawing.Color {
	return s.Color(r).WithAlpha(alphaByte(alpha))
}

// Hex formats a role color as #RRGGBB.
func (s Style) Hex(r Role) string {
	c := s.Color(r)
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// PixelSize is the figure size in pixels at the configured DPI.
func (s Style) PixelSize() (int, int) {
	return int(math.Round(s.WidthIn * s.DPI)), int(math.Round(s.HeightIn * s.DPI))
}

// WithDPI returns a copy rendering at dpi.
func (s Style) WithDPI(dpi float64) (Style, error) {
	if dpi <= 0 || math.IsNaN(dpi) || math.IsInf(dpi, 0) {
		return s, fmt.Errorf("dpi must be positive, got %v", dpi)
	}
	s.DPI = dpi
	return s, nil
}

// WithOverrides returns a copy with role colors replaced by hex values (#RRGGBB).
func (s Style) WithOverrides(hex map[string]string) (Style, error) {
	colors := make(map[Role]drawing.Color, len(s.colors))
	for r, c := range s.colors {
		colors[r] = c
	}
	for name, v := range hex {
		role := Role(strings.ToLower(strings.TrimSpace(name)))
		if _, ok := colors[role]; !ok {
			return s, fmt.Errorf("unknown color role %q", name)
		}
		v = strings.TrimSpace(v)
		if !hexColor.MatchString(v) {
			return s, fmt.Errorf("color %s: invalid hex %q", role, v)
		}
		colors[role] = drawing.ColorFromHex(strings.TrimPrefix(v, "#"))
	}
	s.colors = colors
	return s, nil
}

func alphaByte(a float64) uint8 {
	switch {
	case a <= 0:
		return 0
	case a >= 1:
		return 255
	default:
		return uint8(math.Round(a * 255))
	}
}
