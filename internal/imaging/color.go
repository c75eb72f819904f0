package imaging

import (
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/palette-tools-mcp/internal/mmcq"
	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	CSS  string    `json:"css"`  // Functional format "rgb(R,G,B)"
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Returns an error if (x, y) lies outside the image bounds. 16-bit images are
// reduced to 8 bits per channel.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, a := img.At(x, y).RGBA()
	// Convert from 16-bit to 8-bit
	c := mmcq.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}

	result := describeColor(c)
	result.RGBA.A = uint8(a >> 8)
	return &result, nil
}

// describeColor expands a palette color into every supported format. The
// alpha component is reported as fully opaque.
func describeColor(c mmcq.Color) ColorResult {
	return ColorResult{
		Hex:  hexString(c),
		CSS:  c.String(),
		RGB:  RGBColor{R: c.R, G: c.G, B: c.B},
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: 255},
		HSL:  toHSL(c),
	}
}

func toColorful(c mmcq.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// hexString formats c as "#RRGGBB".
func hexString(c mmcq.Color) string {
	return strings.ToUpper(toColorful(c).Hex())
}

// toHSL converts c to whole-number HSL, truncating fractions.
func toHSL(c mmcq.Color) HSLColor {
	h, s, l := toColorful(c).Hsl()
	return HSLColor{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}

// ParseColor parses "#RRGGBB", "#RGB", "RRGGBB" or "rgb(R,G,B)".
func ParseColor(s string) (mmcq.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "rgb(") {
		var r, g, b int
		if _, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "rgb(%d,%d,%d)", &r, &g, &b); err != nil {
			return mmcq.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		for _, v := range []int{r, g, b} {
			if v < 0 || v > 255 {
				return mmcq.Color{}, fmt.Errorf("invalid color %q: component %d outside 0-255", s, v)
			}
		}
		return mmcq.Color{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
	}

	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return mmcq.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return mmcq.Color{R: r, G: g, B: b}, nil
}

// ColorFrequency represents a color and its share of the analyzed pixels.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#RRGGBB"
	Percentage float64  `json:"percentage"` // Percentage of sampled pixels (0-100)
	RGB        RGBColor `json:"rgb"`        // RGB components
}

// DominantColorsResult contains the most prominent colors in an image.
//
// Colors are ordered by dominance, most dominant first.
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"` // Colors by dominance (descending)
}

// DominantColors extracts up to count prominent colors from an image or
// region using median cut quantization over every pixel.
//
// Unlike ExtractPalette, count is only limited to [1, 255] and white is not
// ignored. Fully transparent images yield an empty result.
func DominantColors(img image.Image, count int, region *Region) (*DominantColorsResult, error) {
	if region != nil {
		cropped, err := cropRegion(img, *region)
		if err != nil {
			return nil, err
		}
		img = cropped
	}

	count = max(1, min(count, mmcq.MaxColors))
	cm, err := mmcq.Quantize(RGBAPixels(img), count, 1, false)
	if err != nil {
		return nil, fmt.Errorf("failed to quantize image: %w", err)
	}

	boxes := cm.Boxes()
	total := 0
	for _, b := range boxes {
		total += b.Count()
	}

	colors := make([]ColorFrequency, 0, len(boxes))
	for i, c := range cm.Palette() {
		colors = append(colors, ColorFrequency{
			Hex:        hexString(c),
			Percentage: float64(boxes[i].Count()) / float64(total) * 100,
			RGB:        RGBColor{R: c.R, G: c.G, B: c.B},
		})
	}

	return &DominantColorsResult{Colors: colors}, nil
}
