package imaging

import (
	"image"
	"image/color"

	"github.com/ironsheep/palette-tools-mcp/internal/mmcq"
)

// Glyph metrics of the built-in 3x5 font.
const (
	glyphAdvance = 4
	glyphHeight  = 5
)

// glyphs covers what hex color codes need.
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	'A': {"010", "101", "111", "101", "101"},
	'B': {"110", "101", "110", "101", "110"},
	'C': {"011", "100", "100", "100", "011"},
	'D': {"110", "101", "101", "101", "110"},
	'E': {"111", "100", "110", "100", "111"},
	'F': {"111", "100", "110", "100", "100"},
	'#': {"101", "111", "101", "111", "101"},
}

// labelWidth is the width in pixels of text drawn by drawLabel.
func labelWidth(text string) int {
	return len(text) * glyphAdvance
}

// drawLabel writes text with its top-left corner at (x, y). Unknown runes
// advance the cursor without drawing; pixels outside img are skipped.
func drawLabel(img *image.RGBA, x, y int, text string, fg color.RGBA) {
	bounds := img.Bounds()
	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += glyphAdvance
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel != '1' {
					continue
				}
				p := image.Pt(cx+col, y+row)
				if p.In(bounds) {
					img.SetRGBA(p.X, p.Y, fg)
				}
			}
		}
		cx += glyphAdvance
	}
}

// labelColor picks black or white text, whichever reads better on bg.
func labelColor(bg mmcq.Color) color.RGBA {
	l, _, _ := toColorful(bg).Lab()
	if l > 0.5 {
		return color.RGBA{0, 0, 0, 255}
	}
	return color.RGBA{255, 255, 255, 255}
}
