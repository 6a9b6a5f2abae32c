package render

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// headingGlyphs are ordered clockwise from north, matching headings measured from +y towards +x.
var headingGlyphs = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// Project maps a world point onto a cols x rows character grid covering the
// domain, row 0 at the top. ok is false for points outside the domain, which
// fish briefly are before they wrap.
func Project(p geometry.Vector2D, d flock.Domain, cols, rows int) (col, row int, ok bool) {
	if cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	sx, sy := ToScreen(p, d)
	fx := sx / (2 * d.Width) * float64(cols)
	fy := sy / (2 * d.Height) * float64(rows)
	if !(fx >= 0 && fx < float64(cols) && fy >= 0 && fy < float64(rows)) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// HeadingGlyph returns the arrow closest to the heading.
func HeadingGlyph(heading float64) rune {
	if math.IsNaN(heading) || math.IsInf(heading, 0) {
		return '?'
	}
	sector := int(math.Round(heading/(math.Pi/4))) % len(headingGlyphs)
	if sector < 0 {
		sector += len(headingGlyphs)
	}
	return headingGlyphs[sector]
}
