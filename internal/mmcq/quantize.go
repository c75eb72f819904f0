package mmcq

import (
	"errors"
	"fmt"
	"slices"
)

// MaxColors is the largest palette Quantize accepts.
const MaxColors = 255

// fractByPopulation is the share of the palette allocated by pixel count
// before switching to count*volume.
const fractByPopulation = 0.75

var (
	// ErrInvalidInput is returned for an empty pixel buffer or a color count
	// outside [1, MaxColors].
	ErrInvalidInput = errors.New("invalid input")

	// ErrOutOfRange is returned when box bounds fall outside the quantized cube.
	ErrOutOfRange = errors.New("bounds out of range")
)

// Quantize reduces an RGBA buffer to at most maxColors representative colors.
//
// Parameters:
//   - pixels: RGBA bytes, four per pixel. The length should be a multiple of
//     4; a trailing partial pixel is ignored.
//   - maxColors: palette size limit in [1, MaxColors].
//   - quality: sampling stride in pixels. Values below 1 are treated as 1.
//   - ignoreWhite: skip pixels whose channels all exceed 250.
//
// Pixels with alpha <= 125 are always skipped. When every sampled pixel is
// skipped the returned ColorMap is empty.
func Quantize(pixels []byte, maxColors, quality int, ignoreWhite bool) (*ColorMap, error) {
	if len(pixels) == 0 {
		return nil, fmt.Errorf("%w: empty pixel buffer", ErrInvalidInput)
	}
	if maxColors < 1 || maxColors > MaxColors {
		return nil, fmt.Errorf("%w: maxColors %d outside [1,%d]", ErrInvalidInput, maxColors, MaxColors)
	}
	quality = max(quality, 1)

	hist, vbox := buildHistogram(pixels, quality, ignoreWhite)
	if hist.Total() == 0 {
		return NewColorMap(nil), nil
	}

	q := &refinement{queue: []*VBox{vbox}}

	target := int(fractByPopulation * float64(maxColors))
	q.iterate(compareByCount, target)

	q.sort(compareByProduct)
	q.iterate(compareByProduct, maxColors)

	boxes := append(q.queue, q.settled...)
	slices.SortStableFunc(boxes, compareByProduct)
	slices.Reverse(boxes)

	return NewColorMap(boxes), nil
}
