package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/palette-tools-mcp/internal/mmcq"
)

// RemapResult is an image redrawn with palette colors only.
type RemapResult struct {
	EncodedImage
	Palette []string `json:"palette"`
}

// RemapToPalette replaces every pixel of img with its nearest palette color.
// Alpha is preserved.
//
// # Errors
//
//   - Returns error if the palette is empty
//   - Returns error if the result cannot be encoded
func RemapToPalette(img image.Image, p *PaletteResult) (*RemapResult, error) {
	cm := p.ColorMap()
	if cm == nil || cm.Len() == 0 {
		return nil, fmt.Errorf("cannot remap to an empty palette")
	}

	out := imaging.Clone(img)
	// Each distinct source color is looked up once.
	lookup := make(map[mmcq.Color]mmcq.Color)
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := out.NRGBAAt(x, y)
			src := mmcq.Color{R: px.R, G: px.G, B: px.B}
			dst, ok := lookup[src]
			if !ok {
				dst, _ = cm.NearestColor(src)
				lookup[src] = dst
			}
			out.SetNRGBA(x, y, color.NRGBA{R: dst.R, G: dst.G, B: dst.B, A: px.A})
		}
	}

	encoded, err := encodePNG(out)
	if err != nil {
		return nil, err
	}
	return &RemapResult{EncodedImage: *encoded, Palette: p.Strings()}, nil
}
