package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ironsheep/palette-tools-mcp/internal/mmcq"
)

var _ draw.Quantizer = Quantizer{}

// Quantizer implements draw.Quantizer with median cut quantization, so it can
// drive image/gif encoding directly.
type Quantizer struct {
	// Quality is the pixel sampling stride. Zero samples every pixel.
	Quality int
	// IgnoreWhite skips near-white pixels while building the palette.
	IgnoreWhite bool
}

// Quantize appends up to cap(p)-len(p) colors extracted from m to p. If
// nothing can be extracted p is returned unchanged.
func (q Quantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	n := min(cap(p)-len(p), mmcq.MaxColors)
	if n < 1 {
		return p
	}

	cm, err := mmcq.Quantize(RGBAPixels(m), n, q.Quality, q.IgnoreWhite)
	if err != nil {
		return p
	}
	for _, c := range cm.Palette() {
		p = append(p, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
	}
	return p
}
