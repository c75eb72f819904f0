package imaging

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/palette-tools-mcp/internal/mmcq"
)

// Palette option limits. Requests outside these ranges are clamped.
const (
	MinColorCount = 1
	MaxColorCount = 20
	MinQuality    = 1
	MaxQuality    = 10

	DefaultColorCount = 5
	DefaultQuality    = 10
)

// PaletteOptions controls palette extraction.
type PaletteOptions struct {
	// ColorCount is the maximum number of palette colors, clamped to [1, 20].
	ColorCount int

	// Quality is the pixel sampling stride, clamped to [1, 10]. 1 samples every
	// pixel; higher values are faster and less accurate.
	Quality int

	// IgnoreWhite skips pixels whose channels all exceed 250.
	IgnoreWhite bool

	// MaxDimension downsizes images whose width or height exceeds it before
	// sampling. Zero disables resizing. Only used for image input.
	MaxDimension int

	// Region restricts extraction to part of the image. Only used for image
	// input.
	Region *Region
}

// DefaultPaletteOptions returns five colors, quality 10, white ignored.
func DefaultPaletteOptions() PaletteOptions {
	return PaletteOptions{
		ColorCount:  DefaultColorCount,
		Quality:     DefaultQuality,
		IgnoreWhite: true,
	}
}

// Normalize clamps ColorCount and Quality into their public ranges.
func (o PaletteOptions) Normalize() PaletteOptions {
	o.ColorCount = max(MinColorCount, min(o.ColorCount, MaxColorCount))
	o.Quality = max(MinQuality, min(o.Quality, MaxQuality))
	o.MaxDimension = max(o.MaxDimension, 0)
	return o
}

// PaletteEntry is one extracted color.
type PaletteEntry struct {
	ColorResult

	// Population is the number of sampled pixels represented by this color.
	Population int `json:"population"`

	// Percentage is Population relative to all sampled pixels (0-100).
	Percentage float64 `json:"percentage"`
}

// PaletteResult contains an extracted palette, most dominant color first.
//
// An image whose sampled pixels are all transparent (or all white with
// IgnoreWhite) yields an empty Colors slice and no error.
type PaletteResult struct {
	Colors        []PaletteEntry `json:"colors"`
	SampledPixels int            `json:"sampled_pixels"`
	ColorCount    int            `json:"color_count"`
	Quality       int            `json:"quality"`
	IgnoreWhite   bool           `json:"ignore_white"`

	colorMap *mmcq.ColorMap
}

// Strings returns the palette as "rgb(R,G,B)" strings.
func (p *PaletteResult) Strings() []string {
	out := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		out[i] = c.CSS
	}
	return out
}

// ColorMap returns the quantization result backing the palette.
func (p *PaletteResult) ColorMap() *mmcq.ColorMap {
	return p.colorMap
}

// ValidateBuffer checks that pix holds at least one whole RGBA pixel and no
// partial trailing pixel.
func ValidateBuffer(pix []byte) error {
	if len(pix) < 4 || len(pix)%4 != 0 {
		return fmt.Errorf("invalid source buffer size or format: %d bytes", len(pix))
	}
	return nil
}

// ExtractPalette extracts the dominant colors of a raw RGBA buffer.
//
// Options are normalized before use; MaxDimension and Region are ignored.
//
// # Errors
//
//   - Returns error if the buffer is empty or not a whole number of pixels
func ExtractPalette(pix []byte, opts PaletteOptions) (*PaletteResult, error) {
	if err := ValidateBuffer(pix); err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	cm, err := mmcq.Quantize(pix, opts.ColorCount, opts.Quality, opts.IgnoreWhite)
	if err != nil {
		return nil, fmt.Errorf("failed to quantize pixels: %w", err)
	}
	if cm.Len() == 0 {
		log.Printf("No pixels left after filtering %d bytes (ignore_white=%v)", len(pix), opts.IgnoreWhite)
	}

	return newPaletteResult(cm, opts), nil
}

// ExtractPaletteFromImage crops img to opts.Region, downsizes it to
// opts.MaxDimension and extracts its palette.
//
// # Errors
//
//   - Returns error if the region lies outside the image or is empty
func ExtractPaletteFromImage(img image.Image, opts PaletteOptions) (*PaletteResult, error) {
	opts = opts.Normalize()

	if opts.Region != nil {
		cropped, err := cropRegion(img, *opts.Region)
		if err != nil {
			return nil, err
		}
		img = cropped
	}
	img = downscale(img, opts.MaxDimension)

	return ExtractPalette(RGBAPixels(img), opts)
}

func newPaletteResult(cm *mmcq.ColorMap, opts PaletteOptions) *PaletteResult {
	boxes := cm.Boxes()
	total := 0
	for _, b := range boxes {
		total += b.Count()
	}

	entries := make([]PaletteEntry, 0, len(boxes))
	for i, c := range cm.Palette() {
		n := boxes[i].Count()
		entry := PaletteEntry{ColorResult: describeColor(c), Population: n}
		if total > 0 {
			entry.Percentage = float64(n) / float64(total) * 100
		}
		entries = append(entries, entry)
	}

	return &PaletteResult{
		Colors:        entries,
		SampledPixels: total,
		ColorCount:    opts.ColorCount,
		Quality:       opts.Quality,
		IgnoreWhite:   opts.IgnoreWhite,
		colorMap:      cm,
	}
}

// PaletteFuture is the pending result of ExtractPaletteAsync.
type PaletteFuture struct {
	done   chan struct{}
	result *PaletteResult
	err    error
}

// ExtractPaletteAsync runs ExtractPalette on its own goroutine. The buffer is
// copied first, so the caller may reuse pix immediately.
func ExtractPaletteAsync(pix []byte, opts PaletteOptions) *PaletteFuture {
	owned := append([]byte(nil), pix...)
	f := &PaletteFuture{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.result, f.err = ExtractPalette(owned, opts)
	}()
	return f
}

// Wait blocks until the palette is ready or ctx is done.
func (f *PaletteFuture) Wait(ctx context.Context) (*PaletteResult, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// NearestResult pairs a query color with its closest palette color.
type NearestResult struct {
	Query   ColorResult `json:"query"`
	Nearest ColorResult `json:"nearest"`
	// Distance is the Manhattan distance |dr|+|dg|+|db|.
	Distance int `json:"distance"`
}

// NearestPaletteColor finds the palette color closest to query.
//
// # Errors
//
//   - Returns error if the palette is empty
func NearestPaletteColor(p *PaletteResult, query mmcq.Color) (*NearestResult, error) {
	nearest, ok := p.colorMap.NearestColor(query)
	if !ok {
		return nil, fmt.Errorf("palette is empty")
	}
	return &NearestResult{
		Query:    describeColor(query),
		Nearest:  describeColor(nearest),
		Distance: query.Distance(nearest),
	}, nil
}
