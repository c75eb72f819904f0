package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/ironsheep/palette-tools-mcp/internal/mmcq"
)

// Default swatch geometry.
const (
	DefaultSwatchCellSize = 64
	MaxSwatchDimension    = 4096

	labelMargin = 2
)

// bandStart is the first swatch column showing palette entry i when n bands
// are stretched over width columns by nearest neighbour sampling.
func bandStart(i, n, width int) int {
	return (i*width + n - 1) / n
}

// SwatchResult is a rendered palette strip.
type SwatchResult struct {
	EncodedImage
	Palette []string `json:"palette"`
}

// RenderSwatch draws the palette as equal-width vertical bands, most dominant
// color on the left.
//
// With labels set, each band wide enough to hold it gets its hex code in the
// top-left corner, drawn in black or white for contrast.
//
// A width or height of zero defaults to DefaultSwatchCellSize per color and
// DefaultSwatchCellSize respectively.
//
// # Errors
//
//   - Returns error if the palette is empty
//   - Returns error if width is smaller than the number of colors
//   - Returns error if either dimension exceeds MaxSwatchDimension
func RenderSwatch(p *PaletteResult, width, height int, labels bool) (*SwatchResult, error) {
	n := len(p.Colors)
	if n == 0 {
		return nil, fmt.Errorf("cannot render an empty palette")
	}
	if width == 0 {
		width = min(n*DefaultSwatchCellSize, MaxSwatchDimension)
	}
	if height == 0 {
		height = DefaultSwatchCellSize
	}
	if width < n || height < 1 {
		return nil, fmt.Errorf("swatch %dx%d too small for %d colors", width, height, n)
	}
	if width > MaxSwatchDimension || height > MaxSwatchDimension {
		return nil, fmt.Errorf("swatch %dx%d exceeds %d pixels per side", width, height, MaxSwatchDimension)
	}

	colors := make([]mmcq.Color, n)
	strip := image.NewRGBA(image.Rect(0, 0, n, 1))
	for i, c := range p.Colors {
		colors[i] = paletteColor(c)
		strip.Set(i, 0, colors[i])
	}
	swatch := transform.Resize(strip, width, height, transform.NearestNeighbor)

	if labels {
		for i, c := range colors {
			x0, x1 := bandStart(i, n, width), bandStart(i+1, n, width)
			text := p.Colors[i].Hex
			if x1-x0 < labelWidth(text)+labelMargin || height < glyphHeight+2*labelMargin {
				continue
			}
			drawLabel(swatch, x0+labelMargin, labelMargin, text, labelColor(c))
		}
	}

	encoded, err := encodePNG(swatch)
	if err != nil {
		return nil, err
	}
	return &SwatchResult{EncodedImage: *encoded, Palette: p.Strings()}, nil
}
