package render

import (
	"image"
	"math"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Sqizeeeeee/sem11/src/theme"
)

// drawCaption stamps text into the bottom-left corner of img, in the text color over a translucent box in the
// background color. basicfont is a 7x13 bitmap, so the stamp is drawn at 1x and scaled up with the DPI.
func drawCaption(img image.Image, text string, st theme.Style) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	face := basicfont.Face7x13
	pad := 4
	m := face.Metrics()
	stamp := image.NewRGBA(image.Rect(0, 0, font.MeasureString(face, text).Ceil()+2*pad, (m.Ascent+m.Descent).Ceil()+2*pad))
	draw.Draw(stamp, stamp.Bounds(), image.NewUniform(st.ColorAlpha(theme.Background, 0.8)), image.Point{}, draw.Src)
	dr := &font.Drawer{Dst: stamp, Src: image.NewUniform(st.Color(theme.Text)), Face: face, Dot: fixed.P(pad, pad+m.Ascent.Ceil())}
	dr.DrawString(text)

	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	scale := captionScale(st.DPI)
	margin := 2 * scale
	sw, sh := stamp.Bounds().Dx()*scale, stamp.Bounds().Dy()*scale
	dst := image.Rect(b.Min.X+margin, b.Max.Y-margin-sh, b.Min.X+margin+sw, b.Max.Y-margin)
	draw.NearestNeighbor.Scale(out, dst, stamp, stamp.Bounds(), draw.Over, nil)
	return out
}

// captionScale is the integer zoom for the bitmap font: 1 at screen density, 3 at 300 DPI.
func captionScale(dpi float64) int {
	if s := int(math.Round(dpi / 100)); s > 1 {
		return s
	}
	return 1
}
